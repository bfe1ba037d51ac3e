package ast

import (
	"co/internal/source"
)

// TypeExprKind enumerates raw type expression variants.
type TypeExprKind uint8

const (
	TypeExprBad TypeExprKind = iota
	TypeExprName
	TypeExprRef
	TypeExprVoid
)

// TypeExpr is a raw type expression: a simple name, 'void', or 'T&'.
type TypeExpr struct {
	Kind TypeExprKind
	Span source.Span

	Name source.StringID // simple name
	Elem TypeExprID      // reference: the referenced type expression
}
