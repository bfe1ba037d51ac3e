package ast

import (
	"fmt"

	"fortio.org/safecast"

	"co/internal/source"
)

// Builder owns the arenas behind every raw-tree node of one compilation.
// Index 0 of each arena is reserved for the invalid ID.
type Builder struct {
	Exprs   []Expr
	Stmts   []Stmt
	Types   []TypeExpr
	Items   []Item
	Strings *source.Interner
	File    File
}

func NewBuilder(strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Exprs:   make([]Expr, 1, 64),
		Stmts:   make([]Stmt, 1, 64),
		Types:   make([]TypeExpr, 1, 16),
		Items:   make([]Item, 1, 16),
		Strings: strings,
	}
}

func (b *Builder) AddExpr(e Expr) ExprID {
	n, err := safecast.Conv[uint32](len(b.Exprs))
	if err != nil {
		panic(fmt.Errorf("expr arena overflow: %w", err))
	}
	b.Exprs = append(b.Exprs, e)
	return ExprID(n)
}

func (b *Builder) AddStmt(s Stmt) StmtID {
	n, err := safecast.Conv[uint32](len(b.Stmts))
	if err != nil {
		panic(fmt.Errorf("stmt arena overflow: %w", err))
	}
	b.Stmts = append(b.Stmts, s)
	return StmtID(n)
}

func (b *Builder) AddType(t TypeExpr) TypeExprID {
	n, err := safecast.Conv[uint32](len(b.Types))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	b.Types = append(b.Types, t)
	return TypeExprID(n)
}

func (b *Builder) AddItem(it Item) ItemID {
	n, err := safecast.Conv[uint32](len(b.Items))
	if err != nil {
		panic(fmt.Errorf("item arena overflow: %w", err))
	}
	b.Items = append(b.Items, it)
	return ItemID(n)
}

func (b *Builder) Expr(id ExprID) *Expr {
	if !id.IsValid() || int(id) >= len(b.Exprs) {
		return nil
	}
	return &b.Exprs[id]
}

func (b *Builder) Stmt(id StmtID) *Stmt {
	if !id.IsValid() || int(id) >= len(b.Stmts) {
		return nil
	}
	return &b.Stmts[id]
}

func (b *Builder) Type(id TypeExprID) *TypeExpr {
	if !id.IsValid() || int(id) >= len(b.Types) {
		return nil
	}
	return &b.Types[id]
}

func (b *Builder) Item(id ItemID) *Item {
	if !id.IsValid() || int(id) >= len(b.Items) {
		return nil
	}
	return &b.Items[id]
}

// Name resolves an interned identifier back to its spelling.
func (b *Builder) Name(id source.StringID) string {
	return b.Strings.MustLookup(id)
}
