package ast

import (
	"co/internal/source"
	"co/internal/token"
)

// ExprKind enumerates raw expression variants.
type ExprKind uint8

const (
	ExprBad ExprKind = iota
	ExprParen
	ExprIntLit
	ExprFloatLit
	ExprBoolLit
	ExprName
	ExprThis
	ExprCall
	ExprMember
	ExprInfix
	ExprPrefix
	// ExprTypeRef is a type expression in value position: the target of a
	// reference-type cast such as `int&(x)`.
	ExprTypeRef
)

// Expr is one raw expression node. Payload fields are populated per kind;
// unused fields stay zero.
type Expr struct {
	Kind ExprKind
	Span source.Span

	Inner    ExprID          // paren: the wrapped expression
	Text     string          // int/float literal spelling
	Bool     bool            // bool literal value
	Name     source.StringID // name reference / member name
	NameSpan source.Span     // member: span of the name after '.'
	Object   ExprID          // member: receiver; call: callee
	Args     []ExprID        // call arguments
	Op       token.Kind      // infix/prefix operator
	Left     ExprID
	Right    ExprID
	TypeRef  TypeExprID      // type referencing: the spelled-out type
}
