package diagfmt

import (
	"strings"
	"testing"

	"co/internal/diag"
	"co/internal/source"
)

func TestPrettyRendersHeaderAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("main.co", []byte("void main() { println(y); }\n"))
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.UnknownName, source.Span{File: id, Start: 22, End: 23}, "unknown name 'y'"))

	var out strings.Builder
	Pretty(&out, bag, fs, Options{Color: false})
	got := out.String()

	if !strings.Contains(got, "main.co:1:23: error E0017: unknown name 'y'") {
		t.Fatalf("header missing:\n%s", got)
	}
	if !strings.Contains(got, "void main() { println(y); }") {
		t.Fatalf("source line missing:\n%s", got)
	}
	if !strings.Contains(got, "^") {
		t.Fatalf("caret missing:\n%s", got)
	}
}

func TestPrettyRendersNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("main.co", []byte("int foo() { return 1; }\nint foo() { return 2; }\n"))
	d := diag.NewError(diag.DuplicateFunctionDefinition,
		source.Span{File: id, Start: 28, End: 31}, "duplicate").
		WithNote(source.Span{File: id, Start: 4, End: 7}, "first defined here")
	bag := diag.NewBag(4)
	bag.Add(d)

	var out strings.Builder
	Pretty(&out, bag, fs, Options{Color: false})
	got := out.String()

	if !strings.Contains(got, "main.co:2:5") {
		t.Fatalf("primary location missing:\n%s", got)
	}
	if !strings.Contains(got, "first defined here") {
		t.Fatalf("note missing:\n%s", got)
	}
	if !strings.Contains(got, "main.co:1:5") {
		t.Fatalf("note location missing:\n%s", got)
	}
}

func TestCaretWidthFollowsSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("main.co", []byte("foobar\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.UnknownName, source.Span{File: id, Start: 0, End: 6}, "x"))

	var out strings.Builder
	Pretty(&out, bag, fs, Options{Color: false})
	if !strings.Contains(out.String(), "^~~~~~") {
		t.Fatalf("underline must span the region:\n%s", out.String())
	}
}
