package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"co/internal/ast"
	"co/internal/diag"
	"co/internal/diagfmt"
	"co/internal/lexer"
	"co/internal/locale"
	"co/internal/parser"
	"co/internal/source"
)

var parseCmd = &cobra.Command{
	Use:          "parse <input.co>",
	Short:        "Dump the raw syntax tree of a CO source file",
	Args:         cobra.ExactArgs(1),
	RunE:         parseExecution,
	SilenceUsage: true,
}

func parseExecution(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	fileID, err := fs.Load(args[0])
	if err != nil {
		return err
	}
	localeFlag, _ := cmd.Flags().GetString("locale")
	maxDiag, _ := cmd.Flags().GetInt("max-diagnostics")
	if maxDiag <= 0 {
		maxDiag = 100
	}
	bag := diag.NewBag(maxDiag)
	reporter := &diag.BagReporter{Bag: bag}
	msgs := locale.NewCatalog(locale.Detect(localeFlag))

	toks := lexer.New(fs.Get(fileID), reporter, msgs).Tokenize()
	builder := ast.NewBuilder(source.NewInterner())
	file := parser.New(toks, builder, reporter, msgs).ParseFile()

	dumpFile(builder, file)

	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{Color: colorEnabled(cmd)})
	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func dumpFile(b *ast.Builder, file ast.File) {
	fmt.Println("Program")
	for _, itemID := range file.Items {
		dumpItem(b, itemID, 1)
	}
}

func dumpItem(b *ast.Builder, id ast.ItemID, depth int) {
	item := b.Item(id)
	ind := strings.Repeat("  ", depth)
	switch item.Kind {
	case ast.ItemType:
		fmt.Printf("%sTypeDefinition %s\n", ind, b.Name(item.Name))
		for i := range item.Members {
			dumpMember(b, &item.Members[i], depth+1)
		}
	case ast.ItemFunc:
		fmt.Printf("%sFunctionDefinition %s/%d\n", ind, b.Name(item.Name), len(item.Params))
		if item.Body.IsValid() {
			dumpStmt(b, item.Body, depth+1)
		}
	case ast.ItemVars:
		fmt.Printf("%sVariablesDefinition\n", ind)
		for _, d := range item.Decls {
			dumpDecl(b, d, depth+1)
		}
	}
}

func dumpMember(b *ast.Builder, m *ast.Member, depth int) {
	ind := strings.Repeat("  ", depth)
	switch m.Kind {
	case ast.MemberField:
		for _, d := range m.Decls {
			fmt.Printf("%sFieldDefinition %s\n", ind, b.Name(d.Name))
		}
	case ast.MemberMethod:
		fmt.Printf("%sMethodDefinition %s/%d\n", ind, b.Name(m.Name), len(m.Params))
		if m.Body.IsValid() {
			dumpStmt(b, m.Body, depth+1)
		}
	case ast.MemberConstructor:
		fmt.Printf("%sConstructorDefinition %s/%d\n", ind, b.Name(m.Name), len(m.Params))
		if m.Body.IsValid() {
			dumpStmt(b, m.Body, depth+1)
		}
	}
}

func dumpDecl(b *ast.Builder, d ast.VarDecl, depth int) {
	ind := strings.Repeat("  ", depth)
	fmt.Printf("%sVariableDefinition %s\n", ind, b.Name(d.Name))
	if d.Init.IsValid() {
		dumpExpr(b, d.Init, depth+1)
	}
}

func dumpStmt(b *ast.Builder, id ast.StmtID, depth int) {
	s := b.Stmt(id)
	ind := strings.Repeat("  ", depth)
	switch s.Kind {
	case ast.StmtBlock:
		fmt.Printf("%sCodeBlock\n", ind)
		for _, sid := range s.Stmts {
			dumpStmt(b, sid, depth+1)
		}
	case ast.StmtExpr:
		fmt.Printf("%sExpressionStatement\n", ind)
		dumpExpr(b, s.Expr, depth+1)
	case ast.StmtVars:
		fmt.Printf("%sVariablesDefinition\n", ind)
		for _, d := range s.Decls {
			dumpDecl(b, d, depth+1)
		}
	case ast.StmtIf:
		fmt.Printf("%sIfElseStatement\n", ind)
		dumpExpr(b, s.Expr, depth+1)
		dumpStmt(b, s.Then, depth+1)
		if s.Else.IsValid() {
			dumpStmt(b, s.Else, depth+1)
		}
	case ast.StmtWhile:
		fmt.Printf("%sWhileStatement\n", ind)
		dumpExpr(b, s.Expr, depth+1)
		dumpStmt(b, s.Body, depth+1)
	case ast.StmtReturn:
		fmt.Printf("%sReturnStatement\n", ind)
		if s.Expr.IsValid() {
			dumpExpr(b, s.Expr, depth+1)
		}
	default:
		fmt.Printf("%sBadStatement\n", ind)
	}
}

func dumpExpr(b *ast.Builder, id ast.ExprID, depth int) {
	e := b.Expr(id)
	ind := strings.Repeat("  ", depth)
	switch e.Kind {
	case ast.ExprParen:
		fmt.Printf("%sParen\n", ind)
		dumpExpr(b, e.Inner, depth+1)
	case ast.ExprIntLit:
		fmt.Printf("%sIntLiteral %s\n", ind, e.Text)
	case ast.ExprFloatLit:
		fmt.Printf("%sDoubleLiteral %s\n", ind, e.Text)
	case ast.ExprBoolLit:
		fmt.Printf("%sBoolLiteral %v\n", ind, e.Bool)
	case ast.ExprName:
		fmt.Printf("%sSymbolReference %s\n", ind, b.Name(e.Name))
	case ast.ExprThis:
		fmt.Printf("%sThis\n", ind)
	case ast.ExprCall:
		fmt.Printf("%sFunctionCall\n", ind)
		dumpExpr(b, e.Object, depth+1)
		for _, a := range e.Args {
			dumpExpr(b, a, depth+1)
		}
	case ast.ExprMember:
		fmt.Printf("%sMemberAccess %s\n", ind, b.Name(e.Name))
		dumpExpr(b, e.Object, depth+1)
	case ast.ExprInfix:
		fmt.Printf("%sInfixOperation %s\n", ind, e.Op)
		dumpExpr(b, e.Left, depth+1)
		dumpExpr(b, e.Right, depth+1)
	case ast.ExprPrefix:
		fmt.Printf("%sPrefixOperation %s\n", ind, e.Op)
		dumpExpr(b, e.Inner, depth+1)
	case ast.ExprTypeRef:
		fmt.Printf("%sTypeReferencing\n", ind)
	default:
		fmt.Printf("%sBadExpression\n", ind)
	}
}
