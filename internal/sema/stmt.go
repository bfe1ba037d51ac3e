package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/locale"
	"co/internal/symbols"
	"co/internal/token"
	"co/internal/types"
)

// blockStmt analyses one raw block in a fresh inner scope. Statements past
// a return get a single unreachable-code warning but are still analysed.
func (c *checker) blockStmt(parent symbols.ScopeID, id ast.StmtID, ctx *bodyCtx) *hir.Block {
	raw := c.builder.Stmt(id)
	scope := c.table.NewScope(symbols.ScopeBlock, parent)
	var stmts []hir.Stmt
	returned, warned := false, false
	for _, sid := range raw.Stmts {
		if returned && !warned {
			c.warnf(diag.UnreachableCode, c.builder.Stmt(sid).Span, locale.Args{})
			warned = true
		}
		for _, st := range c.stmtIn(scope, sid, ctx) {
			stmts = append(stmts, st)
			if stmtReturns(st) {
				returned = true
			}
		}
	}
	return hir.NewBlock(scope, stmts, raw.Span)
}

// branch analyses a branch of if/while: a block keeps its own scope, a
// bare statement is wrapped into a synthetic block so its declarations
// cannot leak.
func (c *checker) branch(parent symbols.ScopeID, id ast.StmtID, ctx *bodyCtx) hir.Stmt {
	raw := c.builder.Stmt(id)
	if raw == nil {
		return nil
	}
	if raw.Kind == ast.StmtBlock {
		return c.blockStmt(parent, id, ctx)
	}
	scope := c.table.NewScope(symbols.ScopeBlock, parent)
	return hir.NewBlock(scope, c.stmtIn(scope, id, ctx), raw.Span)
}

// stmtIn analyses one raw statement. A variables definition expands into
// one constructor call per declarator, hence the slice result.
func (c *checker) stmtIn(scope symbols.ScopeID, id ast.StmtID, ctx *bodyCtx) []hir.Stmt {
	raw := c.builder.Stmt(id)
	if raw == nil {
		return nil
	}
	switch raw.Kind {
	case ast.StmtBlock:
		return []hir.Stmt{c.blockStmt(scope, id, ctx)}
	case ast.StmtExpr:
		return c.exprStmt(scope, raw, ctx)
	case ast.StmtVars:
		return c.varsStmt(scope, raw, ctx)
	case ast.StmtIf:
		cond := c.condition(scope, raw.Expr, "if", ctx)
		then := c.branch(scope, raw.Then, ctx)
		var els hir.Stmt
		if raw.Else.IsValid() {
			els = c.branch(scope, raw.Else, ctx)
		}
		return []hir.Stmt{hir.NewIf(cond, then, els, raw.Span)}
	case ast.StmtWhile:
		cond := c.condition(scope, raw.Expr, "while", ctx)
		body := c.branch(scope, raw.Body, ctx)
		return []hir.Stmt{hir.NewWhile(cond, body, raw.Span)}
	case ast.StmtReturn:
		return c.returnStmt(scope, raw, ctx)
	default:
		return nil
	}
}

func (c *checker) exprStmt(scope symbols.ScopeID, raw *ast.Stmt, ctx *bodyCtx) []hir.Stmt {
	e := c.checkValue(c.expr(scope, raw.Expr, ctx))
	// An operator expression evaluated purely for its value is suspicious;
	// calls stay silent since effects are their point.
	if astExpr := c.builder.Expr(raw.Expr); astExpr != nil {
		discards := astExpr.Kind == ast.ExprPrefix ||
			(astExpr.Kind == ast.ExprInfix && astExpr.Op != token.Assign)
		if discards {
			if _, bad := e.(*hir.Invalid); !bad {
				c.warnf(diag.ReturnValueIgnored, astExpr.Span, locale.Args{})
			}
		}
	}
	return []hir.Stmt{hir.NewExprStmt(e, raw.Span)}
}

func (c *checker) condition(scope symbols.ScopeID, id ast.ExprID, stmtName string, ctx *bodyCtx) hir.Expr {
	e := c.rvalue(scope, id, ctx)
	boolType := c.table.Types.Builtins().Bool
	if !c.table.Types.ConvertibleTo(e.Type(), boolType) {
		c.errorf(diag.InvalidConditionType, e.Span(), locale.Args{
			Stmt:     stmtName,
			TypeName: c.table.Types.Name(e.Type()),
		})
		return c.invalid(e.Span())
	}
	return e
}

func (c *checker) varsStmt(scope symbols.ScopeID, raw *ast.Stmt, ctx *bodyCtx) []hir.Stmt {
	varType := c.resolveTypeExpr(scope, raw.Type)
	var stmts []hir.Stmt
	for _, decl := range raw.Decls {
		// Shadowing an outer local or parameter is legal but noisy.
		if prev, ok := c.table.Resolve(scope, decl.Name); ok {
			prevSym := c.table.Symbol(prev)
			if prevScope := c.table.Scope(prevSym.Scope); prevScope != nil && prevScope.Kind != symbols.ScopeNamespace {
				c.warnf(diag.ShadowedDefinition, decl.NameSpan, locale.Args{Name: c.name(decl.Name)})
			}
		}
		id, conflict := c.table.Bind(scope, symbols.Symbol{
			Name: decl.Name,
			Kind: symbols.SymbolVariable,
			Span: decl.NameSpan,
			Type: varType,
		})
		if conflict != nil {
			c.reportNameTaken(decl.Name, decl.NameSpan, conflict.Prev)
			continue
		}
		if init := c.varInit(scope, id, varType, decl, ctx); init != nil {
			stmts = append(stmts, init)
		}
	}
	return stmts
}

// varInit synthesises the constructor call of one declarator.
func (c *checker) varInit(scope symbols.ScopeID, varSym symbols.SymbolID,
	varType types.TypeID, decl ast.VarDecl, ctx *bodyCtx) hir.Stmt {
	if c.table.Types.IsUnknown(varType) {
		if decl.Init.IsValid() {
			c.expr(scope, decl.Init, ctx) // surface the initializer's own errors
		}
		return nil
	}

	// A reference variable binds its initializer instead of copying it.
	if c.table.Types.IsReference(varType) {
		if !decl.Init.IsValid() {
			c.errorf(diag.NonPlainVariableWithoutInit, decl.NameSpan, locale.Args{
				TypeName: c.table.Types.Name(varType),
			})
			return nil
		}
		init := c.checkValue(c.expr(scope, decl.Init, ctx))
		if c.table.Types.IsUnknown(init.Type()) {
			return nil
		}
		if init.Type() != varType {
			c.errorf(diag.IncompatibleVariableInitializer, init.Span(), locale.Args{
				TypeName:   c.table.Types.Name(varType),
				SecondType: c.table.Types.Name(init.Type()),
			})
			return nil
		}
		return hir.NewVarCtorCall(varSym, symbols.NoSymbolID, []hir.Expr{init}, decl.NameSpan)
	}

	ctors := c.table.Constructors(varType)
	if !decl.Init.IsValid() {
		chosen, _, status := c.table.ResolveOverload(ctors, nil)
		if status != symbols.ResolveOK {
			c.errorf(diag.NonPlainVariableWithoutInit, decl.NameSpan, locale.Args{
				TypeName: c.table.Types.Name(varType),
			})
			return nil
		}
		return hir.NewVarCtorCall(varSym, chosen, nil, decl.NameSpan)
	}

	init := c.checkValue(c.expr(scope, decl.Init, ctx))
	if c.table.Types.IsUnknown(init.Type()) {
		return nil
	}
	chosen, ties, status := c.table.ResolveOverload(ctors, []types.TypeID{init.Type()})
	switch status {
	case symbols.ResolveNoMatch:
		c.errorf(diag.IncompatibleVariableInitializer, init.Span(), locale.Args{
			TypeName:   c.table.Types.Name(varType),
			SecondType: c.table.Types.Name(init.Type()),
		})
		return nil
	case symbols.ResolveAmbiguous:
		d := diag.NewError(diag.AmbiguousOverloadedCall, init.Span(),
			c.msgs.Format(diag.AmbiguousOverloadedCall, locale.Args{
				Kind: locale.KindConstructor,
				Name: c.table.Types.Name(varType),
			}))
		for _, t := range ties {
			d = d.WithNote(c.table.Symbol(t).Span, c.msgs.Candidate(c.table.SignatureString(t)))
		}
		c.report(d)
		return nil
	}
	sig := c.table.Symbol(chosen).Sig
	conv, _ := c.convert(init, sig.ParamTypes[0])
	return hir.NewVarCtorCall(varSym, chosen, []hir.Expr{conv}, decl.NameSpan)
}

func (c *checker) returnStmt(scope symbols.ScopeID, raw *ast.Stmt, ctx *bodyCtx) []hir.Stmt {
	if ctx.inConstructor {
		c.errorf(diag.ReturnFromConstructor, raw.Span, locale.Args{})
		return nil
	}
	voidType := c.table.Types.Builtins().Void
	if !raw.Expr.IsValid() {
		if ctx.expectedRet != voidType && !c.table.Types.IsUnknown(ctx.expectedRet) {
			c.errorf(diag.ReturnWithoutValue, raw.Span, locale.Args{
				TypeName: c.table.Types.Name(ctx.expectedRet),
			})
		}
		return []hir.Stmt{hir.NewReturn(nil, raw.Span)}
	}
	value := c.checkValue(c.expr(scope, raw.Expr, ctx))
	conv, ok := c.convert(value, ctx.expectedRet)
	if !ok {
		c.errorf(diag.IncompatibleReturnType, value.Span(), locale.Args{
			TypeName:   c.table.Types.Name(value.Type()),
			SecondType: c.table.Types.Name(ctx.expectedRet),
		})
		return []hir.Stmt{hir.NewReturn(value, raw.Span)}
	}
	return []hir.Stmt{hir.NewReturn(conv, raw.Span)}
}

// stmtReturns reports whether every control path through the statement
// ends in a return: a return itself, a block containing a returning
// statement (everything after it is dead anyway), or an if/else whose both
// branches return.
func stmtReturns(s hir.Stmt) bool {
	switch v := s.(type) {
	case *hir.Return:
		return true
	case *hir.Block:
		for _, st := range v.Stmts {
			if stmtReturns(st) {
				return true
			}
		}
		return false
	case *hir.If:
		return v.Else != nil && stmtReturns(v.Then) && stmtReturns(v.Else)
	default:
		return false
	}
}
