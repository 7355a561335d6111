// Package registry implements the default module registry: a cache-then-
// load table of named GlobalScopes, keyed by module name, with a file
// search path and request deduplication for concurrent loads of the same
// module. Grounded on the teacher's internal/module.ModuleLoader
// (cache map + searchPath + mutex + findModule/loadAndCompile shape),
// generalised from vm.Module/bytecode compilation (the teacher has a
// compiler+VM; quill's core does not) to scope.GlobalScope population via
// a host-supplied Install hook, the same package-level-hook pattern
// internal/sysfn uses for Names/Stdout.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"quill/internal/name"
	"quill/internal/reader"
	"quill/internal/scope"
)

// Installer populates a freshly-created GlobalScope from source text —
// parsing with internal/reader is always available, but turning the
// resulting Values into actual value/macro/constant bindings requires a
// compiler this package doesn't have. A host wires Install once at
// startup; left nil, LoadModule can still serve builtins registered via
// RegisterBuiltin but fails closed on any file-backed module.
type Installer func(src *scope.GlobalScope, text string) error

// Registry is a cache-then-load table of named module scopes. The zero
// value is not usable; use New.
type Registry struct {
	nm         *name.Store
	master     *scope.MasterScope
	searchPath []string
	install    Installer

	builtins map[string]*scope.GlobalScope

	group singleflight.Group
	cache map[string]*scope.GlobalScope
	mu    sync.RWMutex
}

// New builds a Registry backed by nm/master, with the default search path
// (current directory, ./lib, ./modules) the teacher's getDefaultSearchPath
// uses, generalised to quill module files instead of ".sn" scripts.
func New(nm *name.Store, master *scope.MasterScope, install Installer) *Registry {
	return &Registry{
		nm:         nm,
		master:     master,
		install:    install,
		searchPath: []string{".", "./lib", "./modules"},
		builtins:   map[string]*scope.GlobalScope{},
		cache:      map[string]*scope.GlobalScope{},
	}
}

// AddSearchPath appends dir to the directories searched for a module file.
func (r *Registry) AddSearchPath(dir string) {
	r.searchPath = append(r.searchPath, dir)
}

// SearchPath returns the current module search path.
func (r *Registry) SearchPath() []string {
	out := make([]string, len(r.searchPath))
	copy(out, r.searchPath)
	return out
}

// RegisterBuiltin makes scope available under name without touching the
// filesystem, mirroring the teacher's loadBuiltinModule special-casing of
// "math"/"string"/"array"/etc. — quill has no fixed builtin-module list of
// its own, so a host registers whichever ones it wants.
func (r *Registry) RegisterBuiltin(name string, s *scope.GlobalScope) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[name] = s
}

// LoadModule resolves modName to a *scope.GlobalScope: a registered
// builtin first, then the cache, then a fresh parse-and-install of a
// located source file. Concurrent callers requesting the same modName
// share a single load via singleflight rather than racing to compile it
// twice.
func (r *Registry) LoadModule(modName string) (*scope.GlobalScope, error) {
	r.mu.RLock()
	if s, ok := r.builtins[modName]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	if s, ok := r.cache[modName]; ok {
		r.mu.RUnlock()
		return s, nil
	}
	r.mu.RUnlock()

	v, err, _ := r.group.Do(modName, func() (interface{}, error) {
		r.mu.RLock()
		if s, ok := r.cache[modName]; ok {
			r.mu.RUnlock()
			return s, nil
		}
		r.mu.RUnlock()

		path, err := r.findModule(modName)
		if err != nil {
			return nil, err
		}
		s, err := r.loadAndInstall(modName, path)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[modName] = s
		r.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*scope.GlobalScope), nil
}

// findModule locates modName's source file on the search path, trying a
// direct "<name>.ql" file, a "<name>/index.ql" package directory, and a
// slash-separated nested path — the same three-way fallback the teacher's
// findModule uses for ".sn" files.
func (r *Registry) findModule(modName string) (string, error) {
	if strings.HasSuffix(modName, ".ql") {
		if fileExists(modName) {
			return modName, nil
		}
		return "", fmt.Errorf("registry: module file not found: %s", modName)
	}
	for _, dir := range r.searchPath {
		if p := filepath.Join(dir, modName+".ql"); fileExists(p) {
			return p, nil
		}
		if p := filepath.Join(dir, modName, "index.ql"); fileExists(p) {
			return p, nil
		}
		parts := strings.Split(modName, "/")
		if p := filepath.Join(dir, filepath.Join(parts...)+".ql"); fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("registry: module not found: %s", modName)
}

func (r *Registry) loadAndInstall(modName, path string) (*scope.GlobalScope, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: failed to read module %s: %w", modName, err)
	}

	// Parsing needs no Installer; it rejects a malformed module before an
	// Installer ever runs, same as the
	// teacher's parser.Parse()+p.Errors check ahead of compilation.
	if _, err := reader.ParseExprs(string(text), r.nm); err != nil {
		return nil, fmt.Errorf("registry: parse error in module %s: %w", modName, err)
	}

	s := scope.New(modName, r.nm, r.master)
	if r.install == nil {
		return nil, fmt.Errorf("registry: no installer configured, cannot populate module %s", modName)
	}
	if err := r.install(s, string(text)); err != nil {
		return nil, fmt.Errorf("registry: failed to install module %s: %w", modName, err)
	}
	return s, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ClearCache drops every cached (non-builtin) module, so a later
// LoadModule re-reads and re-installs from disk.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = map[string]*scope.GlobalScope{}
}
