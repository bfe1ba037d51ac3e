package cgen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"co/internal/hir"
	"co/internal/symbols"
)

func (e *Emitter) emitExpr(x hir.Expr) (string, error) {
	switch v := x.(type) {
	case *hir.IntLit:
		if v.Value == math.MinInt32 {
			// The literal 2147483648 does not fit a C int.
			return "(-2147483647 - 1)", nil
		}
		return strconv.FormatInt(int64(v.Value), 10), nil
	case *hir.DoubleLit:
		s := strconv.FormatFloat(v.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case *hir.BoolLit:
		if v.Value {
			return "1", nil
		}
		return "0", nil
	case *hir.VarRef:
		return "(&" + e.varName(v.Var) + ")", nil
	case *hir.RefVarRef:
		return e.varName(v.Var), nil
	case *hir.Deref:
		inner, err := e.emitExpr(v.Inner)
		if err != nil {
			return "", err
		}
		return "(*" + inner + ")", nil
	case *hir.FieldAccess:
		return e.emitFieldAccess(v)
	case *hir.Call:
		return e.emitCall(v)
	case *hir.MethodCall:
		return e.emitMethodCall(v)
	default:
		return "", fmt.Errorf("cgen: unexpected expression %T", x)
	}
}

func (e *Emitter) varName(sym symbols.SymbolID) string {
	s := e.table.Symbol(sym)
	if sc := e.table.Scope(s.Scope); sc != nil && sc.Kind == symbols.ScopeNamespace {
		return e.names.Name(sym)
	}
	return e.names.Local(sym)
}

func (e *Emitter) emitFieldAccess(v *hir.FieldAccess) (string, error) {
	recv, err := e.emitExpr(v.Recv)
	if err != nil {
		return "", err
	}
	field := e.names.Field(v.Field)
	if e.table.Types.IsReference(v.Recv.Type()) {
		if e.table.Types.IsReference(v.Type()) {
			return fmt.Sprintf("(&(%s)->%s)", recv, field), nil
		}
		return fmt.Sprintf("((%s)->%s)", recv, field), nil
	}
	return fmt.Sprintf("((%s).%s)", recv, field), nil
}

func (e *Emitter) emitCall(v *hir.Call) (string, error) {
	sym := e.table.Symbol(v.Fn)
	if sym.Kind == symbols.SymbolConstructor {
		return e.ctorValue(sym.Type, v.Fn, v.Args)
	}
	args, err := e.emitArgs(v.Args)
	if err != nil {
		return "", err
	}
	if sym.Native {
		helper, err := e.helperFor(v.Fn)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s(%s)", helper, args), nil
	}
	return fmt.Sprintf("%s(%s)", e.names.Name(v.Fn), args), nil
}

func (e *Emitter) emitMethodCall(v *hir.MethodCall) (string, error) {
	sym := e.table.Symbol(v.Method)
	name := e.table.Strings.MustLookup(sym.Name)

	// assign is generic over every reference type and has no table entry.
	if sym.Native && name == "assign" && e.table.Types.IsReference(sym.Type) {
		ptr, err := e.emitExpr(v.Recv)
		if err != nil {
			return "", err
		}
		val, err := e.emitExpr(v.Args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("_assign(%s, %s)", ptr, val), nil
	}

	if sym.Native {
		helper, err := e.helperFor(v.Method)
		if err != nil {
			return "", err
		}
		recv, err := e.receiverValue(v.Recv)
		if err != nil {
			return "", err
		}
		args, err := e.emitArgs(v.Args)
		if err != nil {
			return "", err
		}
		if args == "" {
			return fmt.Sprintf("%s(%s)", helper, recv), nil
		}
		return fmt.Sprintf("%s(%s, %s)", helper, recv, args), nil
	}

	recv, err := e.receiverPointer(v.Recv)
	if err != nil {
		return "", err
	}
	args, err := e.emitArgs(v.Args)
	if err != nil {
		return "", err
	}
	if args == "" {
		return fmt.Sprintf("%s(%s)", e.names.Name(v.Method), recv), nil
	}
	return fmt.Sprintf("%s(%s, %s)", e.names.Name(v.Method), recv, args), nil
}

// receiverValue renders a receiver as a plain value for the primitive
// helpers.
func (e *Emitter) receiverValue(recv hir.Expr) (string, error) {
	s, err := e.emitExpr(recv)
	if err != nil {
		return "", err
	}
	if e.table.Types.IsReference(recv.Type()) {
		return "(*" + s + ")", nil
	}
	return s, nil
}

// receiverPointer renders a receiver as the this-pointer of a user method.
// An rvalue receiver is materialised through a C99 compound literal.
func (e *Emitter) receiverPointer(recv hir.Expr) (string, error) {
	s, err := e.emitExpr(recv)
	if err != nil {
		return "", err
	}
	if e.table.Types.IsReference(recv.Type()) {
		return s, nil
	}
	return fmt.Sprintf("((%s[]){%s})", e.cType(recv.Type()), s), nil
}
