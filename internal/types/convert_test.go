package types

import (
	"testing"

	"co/internal/source"
)

func newTestInterner() (*Interner, *source.Interner) {
	strings := source.NewInterner()
	return NewInterner(strings), strings
}

func TestConversionRules(t *testing.T) {
	in, strings := newTestInterner()
	b := in.Builtins()
	point := in.NewValueType(strings.Intern("Point"), false, source.Span{})
	pointRef, _ := in.Reference(point)
	intRef, _ := in.Reference(b.Int)

	cases := []struct {
		name string
		from TypeID
		to   TypeID
		want bool
	}{
		{"identity", b.Int, b.Int, true},
		{"deref", intRef, b.Int, true},
		{"no address taking", b.Int, intRef, false},
		{"no numeric widening", b.Int, b.Double, false},
		{"unrelated", point, b.Int, false},
		{"reference identity", pointRef, pointRef, true},
		{"deref user type", pointRef, point, true},
		{"unknown converts out", b.Unknown, point, true},
		{"unknown converts in", point, b.Unknown, true},
		{"cross references", intRef, pointRef, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := in.ConvertibleTo(tc.from, tc.to); got != tc.want {
				t.Fatalf("ConvertibleTo(%s, %s) = %v, want %v",
					in.Name(tc.from), in.Name(tc.to), got, tc.want)
			}
		})
	}
}

func TestLeastUpperBound(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	intRef, _ := in.Reference(b.Int)

	if got, ok := in.LeastUpperBound(b.Int, b.Int); !ok || got != b.Int {
		t.Fatalf("lub(int, int) = %v, %v", got, ok)
	}
	if got, ok := in.LeastUpperBound(b.Int, intRef); !ok || got != b.Int {
		t.Fatalf("lub(int, int&) = %v, %v; the dereferenced side wins", got, ok)
	}
	if _, ok := in.LeastUpperBound(b.Int, b.Double); ok {
		t.Fatalf("lub(int, double) must not exist")
	}
}

func TestReferenceIsUnique(t *testing.T) {
	in, strings := newTestInterner()
	point := in.NewValueType(strings.Intern("Point"), false, source.Span{})
	first, created := in.Reference(point)
	if !created {
		t.Fatalf("first reference must be fresh")
	}
	second, createdAgain := in.Reference(point)
	if createdAgain || second != first {
		t.Fatalf("reference must be identity-unique: %v vs %v", first, second)
	}
	if got := in.Elem(first); got != point {
		t.Fatalf("Elem = %v", got)
	}
	if in.Name(first) != "Point&" {
		t.Fatalf("Name = %q", in.Name(first))
	}
}

func TestReferenceToReferencePanics(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	ref, _ := in.Reference(b.Int)
	defer func() {
		if recover() == nil {
			t.Fatalf("referencing a reference must panic; the resolver rejects it first")
		}
	}()
	in.Reference(ref)
}

func TestUnknownSentinel(t *testing.T) {
	in, _ := newTestInterner()
	b := in.Builtins()
	if !in.IsUnknown(b.Unknown) {
		t.Fatalf("builtin unknown not recognised")
	}
	if in.IsUnknown(b.Int) {
		t.Fatalf("int flagged unknown")
	}
	if !in.IsUnknown(NoTypeID) {
		t.Fatalf("the invalid ID counts as unknown")
	}
}
