package registry

import (
	"os"
	"path/filepath"
	"testing"

	"quill/internal/name"
	"quill/internal/scope"
)

func newTestRegistry(t *testing.T, install Installer) (*Registry, *name.Store) {
	t.Helper()
	nm := name.NewStore()
	master := scope.NewMasterScope(nm)
	return New(nm, master, install), nm
}

func TestRegisterBuiltinServesWithoutFilesystem(t *testing.T) {
	r, nm := newTestRegistry(t, nil)
	want := scope.New("math", nm, scope.NewMasterScope(nm))
	r.RegisterBuiltin("math", want)

	got, err := r.LoadModule("math")
	if err != nil {
		t.Fatalf("LoadModule(math): %v", err)
	}
	if got != want {
		t.Errorf("LoadModule(math) returned a different scope than registered")
	}
}

func TestLoadModuleMissingFileErrors(t *testing.T) {
	r, _ := newTestRegistry(t, nil)
	if _, err := r.LoadModule("does-not-exist"); err == nil {
		t.Fatal("expected an error loading a module with no matching file")
	}
}

func TestLoadModuleInstallsAndCaches(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.ql"), []byte("(define x 1)"), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}

	installCalls := 0
	install := func(s *scope.GlobalScope, text string) error {
		installCalls++
		return nil
	}
	r, _ := newTestRegistry(t, install)
	r.AddSearchPath(dir)

	first, err := r.LoadModule("greet")
	if err != nil {
		t.Fatalf("LoadModule(greet): %v", err)
	}
	if first.Name() != "greet" {
		t.Errorf("loaded scope name = %q, want greet", first.Name())
	}
	if installCalls != 1 {
		t.Errorf("install called %d times, want 1", installCalls)
	}

	second, err := r.LoadModule("greet")
	if err != nil {
		t.Fatalf("LoadModule(greet) second time: %v", err)
	}
	if first != second {
		t.Error("second LoadModule returned a different scope, want the cached one")
	}
	if installCalls != 1 {
		t.Errorf("install called %d times after cache hit, want still 1", installCalls)
	}
}

func TestLoadModuleWithoutInstallerFailsClosed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bare.ql"), []byte("(define x 1)"), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}
	r, _ := newTestRegistry(t, nil)
	r.AddSearchPath(dir)

	if _, err := r.LoadModule("bare"); err == nil {
		t.Fatal("expected an error loading a file-backed module with no Installer configured")
	}
}

func TestLoadModuleParseErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.ql"), []byte("(define x"), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}
	r, _ := newTestRegistry(t, func(*scope.GlobalScope, string) error { return nil })
	r.AddSearchPath(dir)

	if _, err := r.LoadModule("broken"); err == nil {
		t.Fatal("expected a parse error loading a syntactically broken module")
	}
}

func TestClearCacheForcesReload(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.ql"), []byte("(define x 1)"), 0o644); err != nil {
		t.Fatalf("writing fixture module: %v", err)
	}
	installCalls := 0
	install := func(*scope.GlobalScope, string) error {
		installCalls++
		return nil
	}
	r, _ := newTestRegistry(t, install)
	r.AddSearchPath(dir)

	if _, err := r.LoadModule("m"); err != nil {
		t.Fatalf("LoadModule(m): %v", err)
	}
	r.ClearCache()
	if _, err := r.LoadModule("m"); err != nil {
		t.Fatalf("LoadModule(m) after ClearCache: %v", err)
	}
	if installCalls != 2 {
		t.Errorf("install called %d times across a ClearCache, want 2", installCalls)
	}
}
