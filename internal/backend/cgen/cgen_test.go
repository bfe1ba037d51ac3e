package cgen

import (
	"bytes"
	"strings"
	"testing"

	"co/internal/ast"
	"co/internal/diag"
	"co/internal/lexer"
	"co/internal/parser"
	"co/internal/sema"
	"co/internal/source"
	"co/internal/symbols"
)

func emitSnippet(t *testing.T, src string) (string, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.co", []byte(src))
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), reporter, nil).Tokenize()
	builder := ast.NewBuilder(source.NewInterner())
	parser.New(toks, builder, reporter, nil).ParseFile()
	prog := sema.Analyze(builder, sema.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("snippet does not analyse cleanly: %v", bag.Items())
	}
	var out bytes.Buffer
	err := Process(prog, &out)
	return out.String(), err
}

func mustEmit(t *testing.T, src string) string {
	t.Helper()
	c, err := emitSnippet(t, src)
	if err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	return c
}

func TestEmitHappyPath(t *testing.T) {
	c := mustEmit(t, `
		void main() {
			int x = 5;
			writeIntLn(x);
		}
	`)
	for _, want := range []string{
		"#include <stdint.h>",
		"static void co_main(void)",
		"int32_t co_x = _id(5);",
		"_writeIntLn((*(&co_x)));",
		"int main(void) {",
		"co_main();",
	} {
		if !strings.Contains(c, want) {
			t.Fatalf("emitted C lacks %q:\n%s", want, c)
		}
	}
}

func TestEmitAssignment(t *testing.T) {
	c := mustEmit(t, `
		void main() {
			int x = 3;
			x = 5;
		}
	`)
	if !strings.Contains(c, "_assign((&co_x), 5);") {
		t.Fatalf("assignment not lowered through _assign:\n%s", c)
	}
}

func TestEmitStructsInDependencyOrder(t *testing.T) {
	c := mustEmit(t, `
		type Line { Point a; Point b; }
		type Point { int x; int y; }
		void main() {
			Line l;
			writeIntLn(l.a.x);
		}
	`)
	pointDef := strings.Index(c, "struct co_Point {")
	lineDef := strings.Index(c, "struct co_Line {")
	if pointDef < 0 || lineDef < 0 {
		t.Fatalf("struct definitions missing:\n%s", c)
	}
	if pointDef > lineDef {
		t.Fatalf("Point must be laid out before Line")
	}
}

func TestEmitMethodsAndConstructors(t *testing.T) {
	c := mustEmit(t, `
		type Point {
			int x;
			int y;
			Point(int px, int py) { x = px; y = py; }
			int sum() { return x + y; }
		}
		void main() {
			Point p = Point(1, 2);
			writeIntLn(p.sum());
		}
	`)
	for _, want := range []string{
		"static co_Point co_Point_Point(int32_t co_px, int32_t co_py)",
		"static int32_t co_Point_sum(co_Point* co_this)",
		"co_Point co_p = co_Point_Point(1, 2);",
		"co_Point_sum((&co_p))",
	} {
		if !strings.Contains(c, want) {
			t.Fatalf("emitted C lacks %q:\n%s", want, c)
		}
	}
}

func TestEmitGlobals(t *testing.T) {
	c := mustEmit(t, `
		int counter = 10;
		void main() {
			writeIntLn(counter);
		}
	`)
	for _, want := range []string{
		"static int32_t co_counter;",
		"static void _initGlobals(void)",
		"co_counter = _id(10);",
		"_initGlobals();",
	} {
		if !strings.Contains(c, want) {
			t.Fatalf("emitted C lacks %q:\n%s", want, c)
		}
	}
}

func TestEmitRejectsCyclicLayout(t *testing.T) {
	_, err := emitSnippet(t, `
		type A { B b; }
		type B { A a; }
		void main() { A a; }
	`)
	if err == nil || !strings.Contains(err.Error(), "cyclic") {
		t.Fatalf("cyclic layout must be fatal, got %v", err)
	}
}

func TestEmitSkipsUnreachable(t *testing.T) {
	c := mustEmit(t, `
		void used() { }
		void unused() { }
		void main() { used(); }
	`)
	if !strings.Contains(c, "co_used") {
		t.Fatalf("reachable function missing")
	}
	if strings.Contains(c, "co_unused") {
		t.Fatalf("unreachable function must not be emitted:\n%s", c)
	}
}

func TestNameGenCollisions(t *testing.T) {
	g := &NameGen{
		names: map[symbols.SymbolID]string{},
		used:  map[string]int{},
	}
	first := g.fresh("co_foo")
	second := g.fresh("co_foo")
	third := g.fresh("co_foo")
	if first != "co_foo" || second != "co_foo_1" || third != "co_foo_2" {
		t.Fatalf("collision suffixes wrong: %q %q %q", first, second, third)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("Point"); got != "Point" {
		t.Fatalf("sanitize = %q", got)
	}
	if got := sanitize("weird name"); got != "weird_name" {
		t.Fatalf("sanitize = %q", got)
	}
	if got := sanitize(""); got != "_" {
		t.Fatalf("sanitize empty = %q", got)
	}
}

func TestIntMinLiteral(t *testing.T) {
	c := mustEmit(t, `
		void main() {
			int x = -2147483648;
			writeIntLn(x);
		}
	`)
	if !strings.Contains(c, "(-2147483647 - 1)") {
		t.Fatalf("INT32_MIN must avoid the overflowing literal:\n%s", c)
	}
}

func TestReferenceVariables(t *testing.T) {
	c := mustEmit(t, `
		void main() {
			int x = 1;
			int& r = x;
			r = 5;
			writeIntLn(x);
		}
	`)
	for _, want := range []string{
		"int32_t* co_r = (&co_x);",
		"_assign(co_r, 5);",
	} {
		if !strings.Contains(c, want) {
			t.Fatalf("emitted C lacks %q:\n%s", want, c)
		}
	}
}
