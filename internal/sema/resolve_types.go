package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/symbols"
	"co/internal/types"
)

// registerTypes is pass 1: every type definition becomes a Type in the
// root namespace. Members wait for pass 2 so types can reference each
// other freely.
func (c *checker) registerTypes() {
	c.itemType = make(map[ast.ItemID]types.TypeID)
	for _, itemID := range c.builder.File.Items {
		item := c.builder.Item(itemID)
		if item.Kind != ast.ItemType {
			continue
		}
		typeID := c.table.Types.NewValueType(item.Name, item.Native, item.NameSpan)
		_, conflict := c.table.Bind(c.table.Root, symbols.Symbol{
			Name:   item.Name,
			Kind:   symbols.SymbolType,
			Span:   item.NameSpan,
			Native: item.Native,
			Type:   typeID,
		})
		if conflict != nil {
			c.reportNameTaken(item.Name, item.NameSpan, conflict.Prev)
			continue
		}
		if !item.Native {
			c.table.SynthesizeConstructors(typeID, item.NameSpan)
		}
		c.itemType[itemID] = typeID
	}
}

func (c *checker) reportNameTaken(name source.StringID, sp source.Span, prev symbols.SymbolID) {
	d := diag.NewError(diag.EntityNameTaken, sp,
		c.msgs.Format(diag.EntityNameTaken, locale.Args{Name: c.name(name)}))
	if prevSym := c.table.Symbol(prev); prevSym != nil && !prevSym.Span.Empty() {
		d = d.WithNote(prevSym.Span, c.msgs.FirstDefinedHere())
	}
	c.report(d)
}

// resolveTypeExpr maps a raw type expression to a Type, reporting through
// the unknown sentinel on failure.
func (c *checker) resolveTypeExpr(scope symbols.ScopeID, id ast.TypeExprID) types.TypeID {
	te := c.builder.Type(id)
	if te == nil {
		return c.unknown()
	}
	switch te.Kind {
	case ast.TypeExprVoid:
		return c.table.Types.Builtins().Void
	case ast.TypeExprName:
		sym, ok := c.table.Resolve(scope, te.Name)
		if !ok {
			c.errorf(diag.UnknownName, te.Span, locale.Args{Name: c.name(te.Name)})
			return c.unknown()
		}
		s := c.table.Symbol(sym)
		if s.Kind != symbols.SymbolType {
			c.errorf(diag.InvalidReferenceAsType, te.Span, locale.Args{
				Name: c.name(te.Name),
				Kind: entityKind(s.Kind),
			})
			return c.unknown()
		}
		return s.Type
	case ast.TypeExprRef:
		inner := c.resolveTypeExpr(scope, te.Elem)
		if c.table.Types.IsUnknown(inner) {
			return c.unknown()
		}
		if c.table.Types.IsReference(inner) {
			c.errorf(diag.OverreferencedType, te.Span, locale.Args{
				TypeName: c.table.Types.Name(inner),
			})
			return c.unknown()
		}
		return c.table.Reference(inner)
	default:
		return c.unknown()
	}
}
