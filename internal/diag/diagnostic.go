package diag

import (
	"co/internal/source"
)

// Note attaches secondary information to a diagnostic. The span is optional
// (an empty-file zero span means the note has no location of its own).
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported issue with a primary location and optional notes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
