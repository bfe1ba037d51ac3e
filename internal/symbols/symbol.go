package symbols

import (
	"co/internal/ast"
	"co/internal/source"
	"co/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolNamespace
	SymbolType
	SymbolVariable
	SymbolFunction
	SymbolMethod
	SymbolConstructor
	SymbolOverloadedFunction
	SymbolOverloadedMethod
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolNamespace:
		return "namespace"
	case SymbolType:
		return "type"
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolConstructor:
		return "constructor"
	case SymbolOverloadedFunction:
		return "overloaded function"
	case SymbolOverloadedMethod:
		return "overloaded method"
	default:
		return "invalid"
	}
}

// IsCallable reports whether the symbol can stand in call position on its
// own (overload sets resolve to one of their members first).
func (k SymbolKind) IsCallable() bool {
	switch k {
	case SymbolFunction, SymbolMethod, SymbolConstructor:
		return true
	default:
		return false
	}
}

// Signature describes a callable: its parameters, result and raw body.
type Signature struct {
	Params     []SymbolID // parameter variables, in order
	ParamTypes []types.TypeID
	Result     types.TypeID
	Body       ast.StmtID // NoStmtID for natives and bodiless stubs
	BodyScope  ScopeID    // function scope holding the parameters
}

// Symbol describes one named entity.
type Symbol struct {
	Name   source.StringID
	Kind   SymbolKind
	Scope  ScopeID // enclosing scope; NoScopeID for type members
	Span   source.Span
	Native bool

	// Type is the variable's type, the type symbol's payload, or the
	// container of a method/constructor.
	Type types.TypeID
	Sig  *Signature

	// Overloads lists the members of an overload-set symbol.
	Overloads []SymbolID
}

// IsCopyConstructor reports whether sym is the copy constructor of its
// container: exactly one parameter typed as the container itself.
func (s *Symbol) IsCopyConstructor() bool {
	return s.Kind == SymbolConstructor &&
		s.Sig != nil &&
		len(s.Sig.ParamTypes) == 1 &&
		s.Sig.ParamTypes[0] == s.Type
}
