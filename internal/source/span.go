package source

import (
	"fmt"
)

// Span is a half-open byte region [Start, End) inside a single file.
// Every syntax-tree node and every diagnostic carries one.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the union of two spans of the same file.
// Spans of different files are not comparable; the receiver wins.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Before is the zero-width location immediately preceding the span.
func (s Span) Before() Span {
	return Span{File: s.File, Start: s.Start, End: s.Start}
}

// After is the zero-width location immediately following the span.
func (s Span) After() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}
