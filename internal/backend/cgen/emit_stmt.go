package cgen

import (
	"fmt"
	"strings"

	"co/internal/hir"
	"co/internal/symbols"
	"co/internal/types"
)

func indentOf(depth int) string {
	return strings.Repeat("    ", depth)
}

func (e *Emitter) emitBlockBody(b *hir.Block, depth int) error {
	for _, s := range b.Stmts {
		if err := e.emitStmt(s, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitStmt(s hir.Stmt, depth int) error {
	ind := indentOf(depth)
	switch v := s.(type) {
	case *hir.Block:
		e.printf("%s{\n", ind)
		if err := e.emitBlockBody(v, depth+1); err != nil {
			return err
		}
		e.printf("%s}\n", ind)
	case *hir.ExprStmt:
		expr, err := e.emitExpr(v.E)
		if err != nil {
			return err
		}
		e.printf("%s%s;\n", ind, expr)
	case *hir.VarCtorCall:
		sym := e.table.Symbol(v.Var)
		value, err := e.ctorValue(sym.Type, v.Ctor, v.Args)
		if err != nil {
			return err
		}
		e.printf("%s%s %s = %s;\n", ind, e.cType(sym.Type), e.names.Local(v.Var), value)
	case *hir.If:
		cond, err := e.emitExpr(v.Cond)
		if err != nil {
			return err
		}
		e.printf("%sif (%s) {\n", ind, cond)
		if err := e.emitBranch(v.Then, depth+1); err != nil {
			return err
		}
		if v.Else != nil {
			e.printf("%s} else {\n", ind)
			if err := e.emitBranch(v.Else, depth+1); err != nil {
				return err
			}
		}
		e.printf("%s}\n", ind)
	case *hir.While:
		cond, err := e.emitExpr(v.Cond)
		if err != nil {
			return err
		}
		e.printf("%swhile (%s) {\n", ind, cond)
		if err := e.emitBranch(v.Body, depth+1); err != nil {
			return err
		}
		e.printf("%s}\n", ind)
	case *hir.Return:
		if v.Value == nil {
			e.printf("%sreturn;\n", ind)
			return nil
		}
		value, err := e.emitExpr(v.Value)
		if err != nil {
			return err
		}
		e.printf("%sreturn %s;\n", ind, value)
	default:
		return fmt.Errorf("cgen: unexpected statement %T", s)
	}
	return nil
}

// emitBranch flattens the block a branch was wrapped into; the emitStmt
// caller already printed the surrounding braces.
func (e *Emitter) emitBranch(s hir.Stmt, depth int) error {
	if b, ok := s.(*hir.Block); ok {
		return e.emitBlockBody(b, depth)
	}
	return e.emitStmt(s, depth)
}

// ctorValue renders the initializer expression of a constructed variable.
func (e *Emitter) ctorValue(varType types.TypeID, ctor symbols.SymbolID, args []hir.Expr) (string, error) {
	// A reference variable binds its initializer directly.
	if !ctor.IsValid() {
		if len(args) != 1 {
			return "", fmt.Errorf("cgen: reference binding without an initializer")
		}
		return e.emitExpr(args[0])
	}
	sym := e.table.Symbol(ctor)
	if sym.Native {
		return e.nativeCtorValue(ctor, sym, args)
	}
	rendered, err := e.emitArgs(args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", e.names.Name(ctor), rendered), nil
}

// nativeCtorValue handles the synthesised constructors: default and copy
// for user types, table-mapped helpers for the primitives.
func (e *Emitter) nativeCtorValue(ctor symbols.SymbolID, sym *symbols.Symbol, args []hir.Expr) (string, error) {
	container := sym.Type
	info := e.table.Types.MustLookup(container)
	if !info.Native {
		switch len(args) {
		case 0:
			return e.typeName(container) + "_default()", nil
		case 1:
			// The copy constructor copies by value, which C does for free.
			return e.emitExpr(args[0])
		}
		return "", fmt.Errorf("cgen: no native mapping for %q", e.table.SignatureString(ctor))
	}
	helper, err := e.helperFor(ctor)
	if err != nil {
		return "", err
	}
	rendered, err := e.emitArgs(args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", helper, rendered), nil
}

func (e *Emitter) emitArgs(args []hir.Expr) (string, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s, err := e.emitExpr(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}
