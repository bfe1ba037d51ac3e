package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	a := Span{File: 0, Start: 4, End: 8}
	b := Span{File: 0, Start: 6, End: 12}
	got := a.Cover(b)
	if got.Start != 4 || got.End != 12 {
		t.Fatalf("Cover = %v, want 4-12", got)
	}
	other := Span{File: 1, Start: 0, End: 2}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files must keep the receiver, got %v", got)
	}
}

func TestSpanEdges(t *testing.T) {
	sp := Span{File: 0, Start: 4, End: 8}
	before := sp.Before()
	if !before.Empty() || before.Start != 4 {
		t.Fatalf("Before = %v", before)
	}
	after := sp.After()
	if !after.Empty() || after.Start != 8 {
		t.Fatalf("After = %v", after)
	}
}

func TestFileSetPositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("test.co", []byte("int x;\nvoid main() {\n}\n"))

	cases := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{4, 1, 5},
		{7, 2, 1},
		{12, 2, 6},
		{21, 3, 1},
	}
	for _, tc := range cases {
		pos := fs.Position(id, tc.offset)
		if pos.Line != tc.line || pos.Col != tc.col {
			t.Errorf("Position(%d) = %v, want %d:%d", tc.offset, pos, tc.line, tc.col)
		}
	}

	if got := fs.LineText(id, 2); got != "void main() {" {
		t.Fatalf("LineText(2) = %q", got)
	}
}

func TestFileSetNormalizesInput(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("test.co", []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n"))
	f := fs.Get(id)
	if string(f.Content) != "int x;\nint y;\n" {
		t.Fatalf("content not normalized: %q", f.Content)
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("main")
	b := in.Intern("main")
	if a != b {
		t.Fatalf("same string interned twice: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("real string must not be NoStringID")
	}
	if got := in.MustLookup(a); got != "main" {
		t.Fatalf("MustLookup = %q", got)
	}
	if got, _ := in.Lookup(NoStringID); got != "" {
		t.Fatalf("NoStringID must be empty, got %q", got)
	}
}
