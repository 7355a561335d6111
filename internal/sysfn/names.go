package sysfn

import "quill/internal/name"

// Names is the process-wide name.Store used to render Name handles back
// to text in error messages. internal/scope sets this once, at
// NewMasterScope time, to the same Store every GlobalScope shares — the
// system function table itself has no Store of its own to avoid needing
// one threaded through every Callback's signature.
var Names *name.Store

func nameString(n name.Name) string {
	if Names == nil {
		return "?"
	}
	s, ok := Names.Get(n)
	if !ok {
		return "?"
	}
	return s
}
