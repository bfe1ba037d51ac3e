package cgen

import (
	"fmt"

	"co/internal/hir"
	"co/internal/symbols"
	"co/internal/types"
)

// collect walks the typed tree from main and records every reachable
// callable, global and type in discovery order.
func (e *Emitter) collect() error {
	if !e.prog.Main.IsValid() {
		return fmt.Errorf("cgen: program has no entry point")
	}
	e.visitCallable(e.prog.Main)
	for len(e.worklist) > 0 {
		sym := e.worklist[0]
		e.worklist = e.worklist[1:]
		if block := e.prog.BodyOf(sym); block != nil {
			e.walkStmt(block)
		}
	}
	return e.sortTypes()
}

func (e *Emitter) visitCallable(sym symbols.SymbolID) {
	if e.seenCallables[sym] {
		return
	}
	e.seenCallables[sym] = true
	s := e.table.Symbol(sym)
	if s.Sig != nil {
		for _, pt := range s.Sig.ParamTypes {
			e.visitType(pt)
		}
		e.visitType(s.Sig.Result)
	}
	if s.Type.IsValid() {
		e.visitType(s.Type)
	}
	if !s.Native {
		e.worklist = append(e.worklist, sym)
	}
	switch s.Kind {
	case symbols.SymbolFunction:
		e.funcs = append(e.funcs, sym)
	case symbols.SymbolMethod:
		e.methods = append(e.methods, sym)
	case symbols.SymbolConstructor:
		e.ctors = append(e.ctors, sym)
	}
}

func (e *Emitter) visitGlobal(sym symbols.SymbolID) {
	if e.seenGlobals[sym] {
		return
	}
	e.seenGlobals[sym] = true
	e.globalsOrder = append(e.globalsOrder, sym)
	e.visitType(e.table.Symbol(sym).Type)
	// The global's initializer pulls its own dependencies in.
	for _, g := range e.prog.Globals {
		if g.Init.Var == sym {
			if g.Init.Ctor.IsValid() {
				e.visitCallable(g.Init.Ctor)
			}
			for _, a := range g.Init.Args {
				e.walkExpr(a)
			}
		}
	}
}

func (e *Emitter) visitType(t types.TypeID) {
	if !t.IsValid() || e.seenTypes[t] {
		return
	}
	e.seenTypes[t] = true
	info := e.table.Types.MustLookup(t)
	switch info.Kind {
	case types.KindReference:
		e.visitType(info.Elem)
	case types.KindValue:
		if !info.Native {
			e.typesOrder = append(e.typesOrder, t)
		}
		for _, f := range info.Fields {
			e.visitType(f.Type)
		}
	}
}

func (e *Emitter) walkStmt(s hir.Stmt) {
	switch v := s.(type) {
	case *hir.Block:
		for _, st := range v.Stmts {
			e.walkStmt(st)
		}
	case *hir.ExprStmt:
		e.walkExpr(v.E)
	case *hir.VarCtorCall:
		e.visitType(e.table.Symbol(v.Var).Type)
		if v.Ctor.IsValid() {
			e.visitCallable(v.Ctor)
		}
		for _, a := range v.Args {
			e.walkExpr(a)
		}
	case *hir.If:
		e.walkExpr(v.Cond)
		e.walkStmt(v.Then)
		if v.Else != nil {
			e.walkStmt(v.Else)
		}
	case *hir.While:
		e.walkExpr(v.Cond)
		e.walkStmt(v.Body)
	case *hir.Return:
		if v.Value != nil {
			e.walkExpr(v.Value)
		}
	}
}

func (e *Emitter) walkExpr(x hir.Expr) {
	switch v := x.(type) {
	case *hir.VarRef:
		e.markVar(v.Var)
	case *hir.RefVarRef:
		e.markVar(v.Var)
	case *hir.Call:
		e.visitCallable(v.Fn)
		for _, a := range v.Args {
			e.walkExpr(a)
		}
	case *hir.MethodCall:
		e.visitCallable(v.Method)
		e.walkExpr(v.Recv)
		for _, a := range v.Args {
			e.walkExpr(a)
		}
	case *hir.FieldAccess:
		e.walkExpr(v.Recv)
	case *hir.Deref:
		e.walkExpr(v.Inner)
	}
}

func (e *Emitter) markVar(sym symbols.SymbolID) {
	s := e.table.Symbol(sym)
	if sc := e.table.Scope(s.Scope); sc != nil && sc.Kind == symbols.ScopeNamespace {
		e.visitGlobal(sym)
	} else {
		e.visitType(s.Type)
	}
}

// sortTypes orders the reachable user types so that every by-value field
// dependency precedes its user. A cycle in the layout graph cannot be
// compiled.
func (e *Emitter) sortTypes() error {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	state := make(map[types.TypeID]int, len(e.typesOrder))
	var sorted []types.TypeID
	var visit func(t types.TypeID) error
	visit = func(t types.TypeID) error {
		switch state[t] {
		case black:
			return nil
		case grey:
			return fmt.Errorf("cgen: cyclic field layout involving type %q", e.table.Types.Name(t))
		}
		state[t] = grey
		info := e.table.Types.MustLookup(t)
		for _, f := range info.Fields {
			finfo := e.table.Types.MustLookup(f.Type)
			if finfo.Kind == types.KindValue && !finfo.Native {
				if err := visit(f.Type); err != nil {
					return err
				}
			}
		}
		state[t] = black
		sorted = append(sorted, t)
		return nil
	}
	for _, t := range e.typesOrder {
		if err := visit(t); err != nil {
			return err
		}
	}
	e.typesOrder = sorted
	return nil
}
