package parser

import (
	"testing"

	"co/internal/ast"
	"co/internal/diag"
	"co/internal/lexer"
	"co/internal/source"
	"co/internal/token"
)

func parseSnippet(t *testing.T, src string) (*ast.Builder, ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("test.co", []byte(src))
	bag := diag.NewBag(32)
	reporter := &diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), reporter, nil).Tokenize()
	builder := ast.NewBuilder(source.NewInterner())
	file := New(toks, builder, reporter, nil).ParseFile()
	return builder, file, bag
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

func TestParseTypeDefinition(t *testing.T) {
	b, file, bag := parseSnippet(t, `
		type Point {
			int x, y;
			double norm() { return 0.0; }
			Point(int x, int y) { }
			native void reset&(int v);
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(file.Items) != 1 {
		t.Fatalf("items = %d", len(file.Items))
	}
	item := b.Item(file.Items[0])
	if item.Kind != ast.ItemType || b.Name(item.Name) != "Point" {
		t.Fatalf("item = %+v", item)
	}
	if len(item.Members) != 4 {
		t.Fatalf("members = %d", len(item.Members))
	}
	if item.Members[0].Kind != ast.MemberField || len(item.Members[0].Decls) != 2 {
		t.Fatalf("first member: %+v", item.Members[0])
	}
	if item.Members[1].Kind != ast.MemberMethod || b.Name(item.Members[1].Name) != "norm" {
		t.Fatalf("second member: %+v", item.Members[1])
	}
	ctor := item.Members[2]
	if ctor.Kind != ast.MemberConstructor || len(ctor.Params) != 2 {
		t.Fatalf("third member: %+v", ctor)
	}
	ref := item.Members[3]
	if ref.Kind != ast.MemberMethod || !ref.Native || !ref.RefMarker || ref.Body.IsValid() {
		t.Fatalf("fourth member: %+v", ref)
	}
}

func TestParsePrecedence(t *testing.T) {
	b, file, bag := parseSnippet(t, "void main() { x = 1 + 2 * 3; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	body := b.Stmt(b.Item(file.Items[0]).Body)
	stmt := b.Stmt(body.Stmts[0])
	assign := b.Expr(stmt.Expr)
	if assign.Op != token.Assign {
		t.Fatalf("top operator = %v", assign.Op)
	}
	plus := b.Expr(assign.Right)
	if plus.Op != token.Plus {
		t.Fatalf("right of '=' = %v, want '+'", plus.Op)
	}
	times := b.Expr(plus.Right)
	if times.Op != token.Star {
		t.Fatalf("'*' must bind tighter than '+', got %v", times.Op)
	}
}

func TestParseAssignIsRightAssociative(t *testing.T) {
	b, file, bag := parseSnippet(t, "void main() { a = b = c; }")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	body := b.Stmt(b.Item(file.Items[0]).Body)
	outer := b.Expr(b.Stmt(body.Stmts[0]).Expr)
	if outer.Op != token.Assign {
		t.Fatalf("outer = %v", outer.Op)
	}
	inner := b.Expr(outer.Right)
	if inner.Kind != ast.ExprInfix || inner.Op != token.Assign {
		t.Fatalf("a = (b = c) expected, inner = %+v", inner)
	}
}

func TestParseVarDefVersusExpression(t *testing.T) {
	b, file, bag := parseSnippet(t, `
		void main() {
			Point p;
			int& r = x;
			p = q;
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	body := b.Stmt(b.Item(file.Items[0]).Body)
	if got := b.Stmt(body.Stmts[0]).Kind; got != ast.StmtVars {
		t.Fatalf("stmt 0 = %v, want vars", got)
	}
	refDef := b.Stmt(body.Stmts[1])
	if refDef.Kind != ast.StmtVars {
		t.Fatalf("stmt 1 = %v, want vars", refDef.Kind)
	}
	if b.Type(refDef.Type).Kind != ast.TypeExprRef {
		t.Fatalf("stmt 1 type is not a reference")
	}
	if got := b.Stmt(body.Stmts[2]).Kind; got != ast.StmtExpr {
		t.Fatalf("stmt 2 = %v, want expr", got)
	}
}

func TestParseIfElseWhileReturn(t *testing.T) {
	b, file, bag := parseSnippet(t, `
		int f(int n) {
			while (n > 0) {
				if (n == 1) { return 1; } else { n = n - 1; }
			}
			return 0;
		}
	`)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	body := b.Stmt(b.Item(file.Items[0]).Body)
	loop := b.Stmt(body.Stmts[0])
	if loop.Kind != ast.StmtWhile {
		t.Fatalf("stmt 0 = %v", loop.Kind)
	}
	cond := b.Stmt(b.Stmt(loop.Body).Stmts[0])
	if cond.Kind != ast.StmtIf || !cond.Else.IsValid() {
		t.Fatalf("if/else not parsed: %+v", cond)
	}
	ret := b.Stmt(body.Stmts[1])
	if ret.Kind != ast.StmtReturn || !ret.Expr.IsValid() {
		t.Fatalf("trailing return: %+v", ret)
	}
}

func TestParserDiagnostics(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing initializer", "void main() { int x = ; }", diag.MissingVariableInitializer},
		{"missing right operand", "void main() { x = 1 + ; }", diag.MissingRightOperand},
		{"keyword as identifier", "type while { }", diag.KeywordAsIdentifier},
		{"missing closing paren", "void main() { f(1; }", diag.MissingClosingDelimiter},
		{"unknown specifier", "inline type T { }", diag.UnknownSpecifier},
		{"expected expression", "void main() { ); }", diag.ExpectedExpression},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, bag := parseSnippet(t, tc.src)
			codes := errorCodes(bag)
			if len(codes) == 0 {
				t.Fatalf("no diagnostics for %q", tc.src)
			}
			for _, code := range codes {
				if code == tc.code {
					return
				}
			}
			t.Fatalf("codes = %v, want %v present", codes, tc.code)
		})
	}
}

func TestParserRecovers(t *testing.T) {
	_, file, bag := parseSnippet(t, `
		void broken( { }
		void ok() { }
	`)
	if len(errorCodes(bag)) == 0 {
		t.Fatalf("expected diagnostics for the broken definition")
	}
	found := false
	b := ast.NewBuilder(source.NewInterner())
	_ = b
	for range file.Items {
		found = true
	}
	if !found {
		t.Fatalf("parser dropped everything after the error")
	}
}
