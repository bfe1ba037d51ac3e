package sema

import (
	"testing"

	"co/internal/ast"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/lexer"
	"co/internal/parser"
	"co/internal/source"
)

func analyzeSnippet(t *testing.T, src string) (*hir.Program, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.co", []byte(src))
	bag := diag.NewBag(64)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), reporter, nil).Tokenize()
	builder := ast.NewBuilder(source.NewInterner())
	parser.New(toks, builder, reporter, nil).ParseFile()
	prog := Analyze(builder, Options{Reporter: reporter})
	bag.Sort()
	return prog, bag
}

func errorCodes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			out = append(out, d.Code)
		}
	}
	return out
}

func warningCodes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			out = append(out, d.Code)
		}
	}
	return out
}

func wantExactErrors(t *testing.T, bag *diag.Bag, want ...diag.Code) {
	t.Helper()
	got := errorCodes(bag)
	if len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("errors = %v, want %v", got, want)
		}
	}
}

func TestHappyPath(t *testing.T) {
	prog, bag := analyzeSnippet(t, `
		void main() {
			int x = 5;
			writeIntLn(x);
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	if !prog.Main.IsValid() {
		t.Fatalf("main not found")
	}
	if prog.BodyOf(prog.Main) == nil {
		t.Fatalf("main has no analysed body")
	}
}

func TestUnknownNameSuppressesCascade(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void main() {
			println(y);
		}
	`)
	wantExactErrors(t, bag, diag.UnknownName)
}

func TestForwardReferencesAmongGlobals(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void main() { helper(start); }
		void helper(Pair p) { }
		Pair start;
		type Pair { int a; int b; }
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("forward references must resolve, got %v", bag.Items())
	}
}

func TestOverloadResolutionPicksExactMatch(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void f(int a) { }
		void f(double a) { }
		void main() { f(1.0); f(2); }
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("errors = %v", errorCodes(bag))
	}
}

func TestReferenceOverloadBeatsConversion(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void f(int a) { }
		void f(int& a) { }
		void main() {
			int x = 1;
			f(x);
			f(2);
		}
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("errors = %v", errorCodes(bag))
	}
}

func TestAmbiguousOverloadHasCandidateNotes(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void f(int& a, int b) { }
		void f(int a, int& b) { }
		void main() {
			int x = 1;
			int y = 2;
			f(x, y);
		}
	`)
	wantExactErrors(t, bag, diag.AmbiguousOverloadedCall)
	var found *diag.Diagnostic
	for i := range bag.Items() {
		if bag.Items()[i].Code == diag.AmbiguousOverloadedCall {
			found = &bag.Items()[i]
		}
	}
	if found == nil || len(found.Notes) != 2 {
		t.Fatalf("ambiguity must carry one note per candidate, got %+v", found)
	}
}

func TestNoImplicitAddressTaking(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void g(int& a) { }
		void main() { g(1); }
	`)
	wantExactErrors(t, bag, diag.InvalidCallArguments)
}

func TestDuplicateFunctionHasNote(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		int foo() { return 1; }
		int foo() { return 2; }
		void main() { }
	`)
	wantExactErrors(t, bag, diag.DuplicateFunctionDefinition)
	for _, d := range bag.Items() {
		if d.Code == diag.DuplicateFunctionDefinition {
			if len(d.Notes) != 1 {
				t.Fatalf("duplicate must point at the first definition, notes = %v", d.Notes)
			}
			if d.Notes[0].Span.Start >= d.Primary.Start {
				t.Fatalf("note must point before the duplicate")
			}
		}
	}
}

func TestMissingReturnOnOneBranch(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		int f() {
			if (true) { return 1; }
		}
		void main() { f(); }
	`)
	wantExactErrors(t, bag, diag.MissingReturnStatement)
}

func TestReturnPathThroughBothBranches(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		int sign(int n) {
			if (n < 0) { return -1; } else { return 1; }
		}
		void main() { sign(3); }
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("errors = %v", errorCodes(bag))
	}
}

func TestAssignmentDesugarsToReferenceMethod(t *testing.T) {
	prog, bag := analyzeSnippet(t, `
		void main() {
			int x = 3;
			x = 5;
			int y = 4;
			x = y;
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	body := prog.BodyOf(prog.Main)
	intType := prog.Table.Types.Builtins().Int
	intRef, _ := prog.Table.Types.Lookup(intType)

	assignStmt, ok := body.Stmts[1].(*hir.ExprStmt)
	if !ok {
		t.Fatalf("stmt 1 = %T", body.Stmts[1])
	}
	call, ok := assignStmt.E.(*hir.MethodCall)
	if !ok {
		t.Fatalf("x = 5 must desugar to a method call, got %T", assignStmt.E)
	}
	recv, ok := call.Recv.(*hir.VarRef)
	if !ok {
		t.Fatalf("assign receiver = %T, want VarRef", call.Recv)
	}
	if recv.Type() != intRef.Ref {
		t.Fatalf("receiver type = %v, want int&", recv.Type())
	}
	if _, isLit := call.Args[0].(*hir.IntLit); !isLit {
		t.Fatalf("rhs literal must stay undereferenced, got %T", call.Args[0])
	}

	second, _ := body.Stmts[3].(*hir.ExprStmt)
	secondCall, _ := second.E.(*hir.MethodCall)
	if _, isDeref := secondCall.Args[0].(*hir.Deref); !isDeref {
		t.Fatalf("x = y must dereference the right side, got %T", secondCall.Args[0])
	}
}

func TestVarRefRoundTrip(t *testing.T) {
	prog, bag := analyzeSnippet(t, `
		void main() {
			int x = 1;
			writeIntLn(x);
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	body := prog.BodyOf(prog.Main)
	call := body.Stmts[1].(*hir.ExprStmt).E.(*hir.Call)
	deref, ok := call.Args[0].(*hir.Deref)
	if !ok {
		t.Fatalf("by-value argument must be dereferenced, got %T", call.Args[0])
	}
	intType := prog.Table.Types.Builtins().Int
	if deref.Type() != intType {
		t.Fatalf("deref type = %v, want int", deref.Type())
	}
	ref, ok := deref.Inner.(*hir.VarRef)
	if !ok {
		t.Fatalf("deref inner = %T", deref.Inner)
	}
	if prog.Table.Types.Elem(ref.Type()) != intType {
		t.Fatalf("VarRef type must be int&")
	}
}

func TestOperatorDesugaring(t *testing.T) {
	prog, bag := analyzeSnippet(t, `
		void main() {
			int x = 1;
			bool b = x < 2;
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	body := prog.BodyOf(prog.Main)
	init := body.Stmts[1].(*hir.VarCtorCall)
	cmp, ok := init.Args[0].(*hir.MethodCall)
	if !ok {
		t.Fatalf("x < 2 must be a method call, got %T", init.Args[0])
	}
	sym := prog.Table.Symbol(cmp.Method)
	if prog.Table.Strings.MustLookup(sym.Name) != "lessThan" {
		t.Fatalf("operator '<' maps to %q", prog.Table.Strings.MustLookup(sym.Name))
	}
	if cmp.Type() != prog.Table.Types.Builtins().Bool {
		t.Fatalf("comparison type = %v", cmp.Type())
	}
}

func TestUndefinedOperator(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		type Point { int x; }
		void main() {
			Point p;
			Point q;
			p + q;
		}
	`)
	wantExactErrors(t, bag, diag.UndefinedOperator)
}

func TestConditionMustBeBool(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void main() {
			if (1) { }
			while (2.5) { }
		}
	`)
	wantExactErrors(t, bag, diag.InvalidConditionType, diag.InvalidConditionType)
}

func TestLiteralBounds(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void main() {
			int a = 2147483647;
			int b = -2147483648;
			int c = 2147483648;
			int d = -2147483649;
		}
	`)
	wantExactErrors(t, bag, diag.NumericLiteralTooBig, diag.NumericLiteralTooSmall)
}

func TestThisOutsideMethod(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		void main() { this; }
	`)
	wantExactErrors(t, bag, diag.ThisReferenceOutsideMethod)
}

func TestMethodBodySeesFieldsAndThis(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		type Counter {
			int value;
			void bump() { value = value + 1; }
			int get() { return this.value; }
		}
		void main() {
			Counter c;
			c.bump();
			writeIntLn(c.get());
		}
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("errors = %v", bag.Items())
	}
}

func TestConstructorRules(t *testing.T) {
	t.Run("copy constructor rejected", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P(P other) { } }
			void main() { }
		`)
		wantExactErrors(t, bag, diag.CopyConstructorDefinition)
	})
	t.Run("user default constructor replaces synthesised", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P() { x = 7; } }
			void main() { P p; }
		`)
		if len(errorCodes(bag)) != 0 {
			t.Fatalf("errors = %v", bag.Items())
		}
	})
	t.Run("duplicate constructor", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P(int a) { } P(int b) { } }
			void main() { }
		`)
		wantExactErrors(t, bag, diag.DuplicateConstructorDefinition)
	})
	t.Run("return from constructor", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P(int v) { return; } }
			void main() { }
		`)
		wantExactErrors(t, bag, diag.ReturnFromConstructor)
	})
}

func TestVariableInitializers(t *testing.T) {
	t.Run("incompatible initializer", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { int x = true; }
		`)
		wantExactErrors(t, bag, diag.IncompatibleVariableInitializer)
	})
	t.Run("non-plain type needs initializer", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P(int v) { } }
			void main() { P p; }
		`)
		wantExactErrors(t, bag, diag.NonPlainVariableWithoutInit)
	})
	t.Run("constructor call initializer", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; P(int v) { x = v; } }
			void main() { P p = P(3); }
		`)
		if len(errorCodes(bag)) != 0 {
			t.Fatalf("errors = %v", bag.Items())
		}
	})
	t.Run("reference variable binds", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() {
				int x = 1;
				int& r = x;
				r = 5;
			}
		`)
		if len(errorCodes(bag)) != 0 {
			t.Fatalf("errors = %v", bag.Items())
		}
	})
	t.Run("reference variable rejects rvalue", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { int& r = 5; }
		`)
		wantExactErrors(t, bag, diag.IncompatibleVariableInitializer)
	})
}

func TestNativeAndBodyRules(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"native function with body", "native int f() { return 1; } void main() { }", diag.NativeFunctionWithBody},
		{"function without body", "int f(); void main() { }", diag.FunctionDefinitionWithoutBody},
		{"native method with body", "type T { native void m() { } } void main() { }", diag.NativeMethodWithBody},
		{"method without body", "type T { void m(); } void main() { }", diag.MethodDefinitionWithoutBody},
		{"native constructor with body", "type T { native T(int v) { } } void main() { }", diag.NativeConstructorWithBody},
		{"constructor without body", "type T { T(int v); } void main() { }", diag.ConstructorDefinitionWithoutBody},
		{"reference marker on function", "void f&() { } void main() { }", diag.ReferenceMarkerInFunction},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := analyzeSnippet(t, tc.src)
			wantExactErrors(t, bag, tc.code)
		})
	}
}

func TestMainValidation(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, bag := analyzeSnippet(t, "void helper() { }")
		wantExactErrors(t, bag, diag.MissingMainFunction)
	})
	t.Run("wrong signature", func(t *testing.T) {
		_, bag := analyzeSnippet(t, "int main() { return 0; }")
		wantExactErrors(t, bag, diag.InvalidMainFunctionSignature)
	})
	t.Run("overloaded", func(t *testing.T) {
		_, bag := analyzeSnippet(t, "void main() { } void main(int a) { }")
		wantExactErrors(t, bag, diag.InvalidMainFunctionSignature)
	})
	t.Run("not a function", func(t *testing.T) {
		_, bag := analyzeSnippet(t, "int main;")
		wantExactErrors(t, bag, diag.MainIsNotFunction)
	})
}

func TestMemberAccessErrors(t *testing.T) {
	t.Run("unknown member", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type Point { int x; }
			void main() { Point p; p.z; }
		`)
		wantExactErrors(t, bag, diag.UnknownObjectMember)
	})
	t.Run("static access", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { int.plus; }
		`)
		wantExactErrors(t, bag, diag.UnknownStaticMemberName)
	})
	t.Run("reference method through rvalue", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			int f() { return 1; }
			void main() {
				int x = 1;
				f().assign(2);
			}
		`)
		wantExactErrors(t, bag, diag.ReferenceMethodFromNonReference)
	})
}

func TestCasts(t *testing.T) {
	t.Run("numeric conversions", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() {
				int x = 5;
				double d = double(x);
				int y = int(d);
			}
		`)
		if len(errorCodes(bag)) != 0 {
			t.Fatalf("errors = %v", bag.Items())
		}
	})
	t.Run("non-type cast target", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { int x = 1; x&(2); }
		`)
		wantExactErrors(t, bag, diag.NonTypeExpressionAsCastTarget)
	})
	t.Run("no conversion function", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			type P { int x; }
			void main() { P p; int y = int(p); }
		`)
		wantExactErrors(t, bag, diag.NoTypeConversionFunction)
	})
}

func TestCallErrors(t *testing.T) {
	t.Run("not callable", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { int x = 1; x(); }
		`)
		wantExactErrors(t, bag, diag.ExpressionIsNotCallable)
	})
	t.Run("function as value", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void f() { }
			void main() { int x = f; }
		`)
		wantExactErrors(t, bag, diag.InvalidReferenceAsExpression)
	})
	t.Run("bad argument type", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void f(int a) { }
			void main() { f(true); }
		`)
		wantExactErrors(t, bag, diag.InvalidCallArguments)
	})
}

func TestTypeResolutionErrors(t *testing.T) {
	t.Run("unknown type suppresses cascade", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() { Foo x; x = 1; }
		`)
		wantExactErrors(t, bag, diag.UnknownName)
	})
	t.Run("non-type as type", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void f() { }
			void main() { f x; }
		`)
		wantExactErrors(t, bag, diag.InvalidReferenceAsType)
	})
	t.Run("reference to reference", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void g(int&& a) { }
			void main() { }
		`)
		wantExactErrors(t, bag, diag.OverreferencedType)
	})
}

func TestNameCollisions(t *testing.T) {
	t.Run("global name taken", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			int x;
			double x;
			void main() { }
		`)
		wantExactErrors(t, bag, diag.EntityNameTaken)
	})
	t.Run("shadowing warns", func(t *testing.T) {
		_, bag := analyzeSnippet(t, `
			void main() {
				int x = 1;
				{
					int x = 2;
				}
			}
		`)
		if len(errorCodes(bag)) != 0 {
			t.Fatalf("errors = %v", bag.Items())
		}
		warns := warningCodes(bag)
		if len(warns) != 1 || warns[0] != diag.ShadowedDefinition {
			t.Fatalf("warnings = %v", warns)
		}
	})
}

func TestUnreachableCode(t *testing.T) {
	_, bag := analyzeSnippet(t, `
		int f() {
			return 1;
			f();
		}
		void main() { f(); }
	`)
	if len(errorCodes(bag)) != 0 {
		t.Fatalf("errors = %v", bag.Items())
	}
	warns := warningCodes(bag)
	if len(warns) != 1 || warns[0] != diag.UnreachableCode {
		t.Fatalf("warnings = %v", warns)
	}
}

func TestTypedTreeHasNoInvalidNodesOnSuccess(t *testing.T) {
	prog, bag := analyzeSnippet(t, `
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
	if bag.Len() != 0 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	for _, body := range prog.Bodies {
		assertNoInvalid(t, prog, body.Block)
	}
}

func assertNoInvalid(t *testing.T, prog *hir.Program, s hir.Stmt) {
	t.Helper()
	var visitExpr func(e hir.Expr)
	visitExpr = func(e hir.Expr) {
		if e == nil {
			return
		}
		if _, bad := e.(*hir.Invalid); bad {
			t.Fatalf("typed tree contains an invalid expression")
		}
		if _, ok := prog.Table.Types.Lookup(e.Type()); !ok {
			t.Fatalf("expression %T has an unregistered type", e)
		}
		switch v := e.(type) {
		case *hir.Call:
			for _, a := range v.Args {
				visitExpr(a)
			}
		case *hir.MethodCall:
			visitExpr(v.Recv)
			for _, a := range v.Args {
				visitExpr(a)
			}
		case *hir.FieldAccess:
			visitExpr(v.Recv)
		case *hir.Deref:
			visitExpr(v.Inner)
		}
	}
	var visitStmt func(st hir.Stmt)
	visitStmt = func(st hir.Stmt) {
		switch v := st.(type) {
		case *hir.Block:
			for _, inner := range v.Stmts {
				visitStmt(inner)
			}
		case *hir.ExprStmt:
			visitExpr(v.E)
		case *hir.VarCtorCall:
			for _, a := range v.Args {
				visitExpr(a)
			}
		case *hir.If:
			visitExpr(v.Cond)
			visitStmt(v.Then)
			if v.Else != nil {
				visitStmt(v.Else)
			}
		case *hir.While:
			visitExpr(v.Cond)
			visitStmt(v.Body)
		case *hir.Return:
			if v.Value != nil {
				visitExpr(v.Value)
			}
		}
	}
	visitStmt(s)
}
