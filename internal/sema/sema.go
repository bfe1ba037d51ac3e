// Package sema turns the raw syntax tree into a typed tree rooted at the
// symbol table. It runs four ordered passes: register types, register type
// members as stubs, register globals, analyse bodies. Later passes see
// everything earlier passes registered, so forward references among
// globals need no ordering.
package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/symbols"
	"co/internal/types"
)

// Options configure one semantic pass.
type Options struct {
	Reporter diag.Reporter
	Messages *locale.Catalog
}

// Analyze runs all passes over the parsed file and returns the typed
// program. The program may be partial: invalid regions carry the unknown
// sentinel and are safe to walk.
func Analyze(builder *ast.Builder, opts Options) *hir.Program {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	msgs := opts.Messages
	if msgs == nil {
		msgs = locale.NewCatalog(locale.En)
	}
	table := symbols.NewTable(builder.Strings, nil)
	table.InstallPrelude()

	c := &checker{
		builder:  builder,
		table:    table,
		reporter: reporter,
		msgs:     msgs,
		prog: &hir.Program{
			Table: table,
		},
	}
	c.registerTypes()
	c.registerMembers()
	c.registerGlobals()
	c.analyseBodies()
	c.validateEntry()
	return c.prog
}

type pendingKind uint8

const (
	pendingFunction pendingKind = iota
	pendingMethod
	pendingConstructor
)

// pendingBody links a registered stub to the raw body it still owes.
type pendingBody struct {
	kind pendingKind
	sym  symbols.SymbolID
	body ast.StmtID
}

// pendingGlobal is one global declarator awaiting initializer analysis.
type pendingGlobal struct {
	sym  symbols.SymbolID
	typ  types.TypeID
	init ast.ExprID
	span source.Span
}

type checker struct {
	builder  *ast.Builder
	table    *symbols.Table
	reporter diag.Reporter
	msgs     *locale.Catalog

	prog     *hir.Program
	itemType map[ast.ItemID]types.TypeID
	bodies   []pendingBody
	globals  []pendingGlobal
}

func (c *checker) report(d diag.Diagnostic) {
	c.reporter.Report(d)
}

func (c *checker) errorf(code diag.Code, sp source.Span, a locale.Args) {
	c.report(diag.NewError(code, sp, c.msgs.Format(code, a)))
}

func (c *checker) warnf(code diag.Code, sp source.Span, a locale.Args) {
	c.report(diag.NewWarning(code, sp, c.msgs.Format(code, a)))
}

func (c *checker) unknown() types.TypeID {
	return c.table.Types.Builtins().Unknown
}

func (c *checker) name(id source.StringID) string {
	return c.table.Strings.MustLookup(id)
}

// entityKind maps a symbol kind to the grammatical noun diagnostics use.
func entityKind(k symbols.SymbolKind) locale.EntityKind {
	switch k {
	case symbols.SymbolType:
		return locale.KindType
	case symbols.SymbolVariable:
		return locale.KindVariable
	case symbols.SymbolFunction, symbols.SymbolOverloadedFunction:
		return locale.KindFunction
	case symbols.SymbolMethod, symbols.SymbolOverloadedMethod:
		return locale.KindMethod
	case symbols.SymbolConstructor:
		return locale.KindConstructor
	case symbols.SymbolNamespace:
		return locale.KindNamespace
	default:
		return locale.KindEntity
	}
}

// validateEntry checks that the root namespace holds a non-overloaded
// `main` of type () -> void.
func (c *checker) validateEntry() {
	mainName := c.table.Strings.Intern("main")
	sym, ok := c.table.ResolveLocal(c.table.Root, mainName)
	if !ok {
		c.errorf(diag.MissingMainFunction, c.builder.File.Span.Before(), locale.Args{})
		return
	}
	s := c.table.Symbol(sym)
	switch s.Kind {
	case symbols.SymbolFunction:
		sig := s.Sig
		if len(sig.ParamTypes) != 0 || sig.Result != c.table.Types.Builtins().Void {
			c.errorf(diag.InvalidMainFunctionSignature, s.Span, locale.Args{})
			return
		}
		c.prog.Main = sym
	case symbols.SymbolOverloadedFunction:
		c.errorf(diag.InvalidMainFunctionSignature, s.Span, locale.Args{})
	default:
		c.errorf(diag.MainIsNotFunction, s.Span, locale.Args{Kind: entityKind(s.Kind)})
	}
}
