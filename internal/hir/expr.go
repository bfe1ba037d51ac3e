// Package hir is the typed tree produced by semantic analysis and consumed
// by the backend. Reference semantics are explicit: a variable reference is
// always reference-typed and every implicit dereference is its own node, so
// the backend walk stays purely mechanical.
package hir

import (
	"co/internal/source"
	"co/internal/symbols"
	"co/internal/types"
)

// Expr is a typed expression node.
type Expr interface {
	Type() types.TypeID
	Span() source.Span
	isExpr()
}

// Meta carries the type and span every expression node embeds.
type Meta struct {
	T  types.TypeID
	Sp source.Span
}

// At builds the meta of a node.
func At(t types.TypeID, sp source.Span) Meta {
	return Meta{T: t, Sp: sp}
}

func (m Meta) Type() types.TypeID { return m.T }
func (m Meta) Span() source.Span  { return m.Sp }
func (Meta) isExpr()              {}

// IntLit is a 32-bit signed integer constant.
type IntLit struct {
	Meta
	Value int32
}

// DoubleLit is an IEEE-754 binary64 constant.
type DoubleLit struct {
	Meta
	Value float64
}

// BoolLit is a boolean constant.
type BoolLit struct {
	Meta
	Value bool
}

// VarRef designates the storage of a variable; its type is always the
// reference type of the variable's type.
type VarRef struct {
	Meta
	Var symbols.SymbolID
}

// RefVarRef reads a reference-typed variable; no extra indirection is
// added on top of the reference the variable already holds.
type RefVarRef struct {
	Meta
	Var symbols.SymbolID
}

// FuncRef names a single function outside call position.
type FuncRef struct {
	Meta
	Fn symbols.SymbolID
}

// OverloadRef names an overload set outside call position.
type OverloadRef struct {
	Meta
	Set symbols.SymbolID
}

// TypeRef names a type in expression position; it is only meaningful as a
// cast target and never survives as a value.
type TypeRef struct {
	Meta
	Sym    symbols.SymbolID
	Target types.TypeID
}

// BoundMethodRef pairs a receiver with a method or method overload set; it
// is only meaningful in call position.
type BoundMethodRef struct {
	Meta
	Recv Expr
	Set  symbols.SymbolID
}

// Call invokes a free function or, for casts, a constructor.
type Call struct {
	Meta
	Fn   symbols.SymbolID
	Args []Expr
}

// MethodCall invokes a method on an instance.
type MethodCall struct {
	Meta
	Method symbols.SymbolID
	Recv   Expr
	Args   []Expr
}

// FieldAccess reads a field. When the receiver is a reference the result
// is a reference to the field's type.
type FieldAccess struct {
	Meta
	Recv  Expr
	Field symbols.SymbolID
}

// Deref drops exactly one reference level to produce an rvalue.
type Deref struct {
	Meta
	Inner Expr
}

// Invalid marks an unanalysable expression; its type is the unknown
// sentinel and it propagates silently.
type Invalid struct {
	Meta
}

func NewInvalid(unknown types.TypeID, sp source.Span) *Invalid {
	return &Invalid{Meta: At(unknown, sp)}
}
