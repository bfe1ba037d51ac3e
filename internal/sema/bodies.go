package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/locale"
)

// analyseBodies is pass 4: global initializers first, then every pending
// body in registration order. All inter-entity references go through the
// tables built by passes 1-3, so ordering among definitions is free.
func (c *checker) analyseBodies() {
	for _, g := range c.globals {
		ctx := &bodyCtx{kind: locale.KindFunction}
		decl := ast.VarDecl{NameSpan: g.span, Init: g.init}
		if init := c.varInit(c.table.Root, g.sym, g.typ, decl, ctx); init != nil {
			if vcc, ok := init.(*hir.VarCtorCall); ok {
				c.prog.Globals = append(c.prog.Globals, hir.Global{Init: vcc})
			}
		}
	}
	for _, pb := range c.bodies {
		c.analyseBody(pb)
	}
}

func (c *checker) analyseBody(pb pendingBody) {
	sym := c.table.Symbol(pb.sym)
	sig := sym.Sig
	ctx := &bodyCtx{
		expectedRet: sig.Result,
	}
	switch pb.kind {
	case pendingFunction:
		ctx.kind = locale.KindFunction
	case pendingMethod:
		ctx.kind = locale.KindMethod
		ctx.container = sym.Type
	case pendingConstructor:
		ctx.kind = locale.KindConstructor
		ctx.container = sym.Type
		ctx.inConstructor = true
	}
	block := c.blockStmt(sig.BodyScope, pb.body, ctx)

	voidType := c.table.Types.Builtins().Void
	needsReturn := !ctx.inConstructor &&
		sig.Result != voidType &&
		!c.table.Types.IsUnknown(sig.Result)
	if needsReturn && !stmtReturns(block) {
		c.errorf(diag.MissingReturnStatement, block.Span().After(), locale.Args{})
	}
	c.prog.Bodies = append(c.prog.Bodies, hir.Body{Sym: pb.sym, Block: block})
}
