package symbols

import (
	"strings"
)

// SignatureString renders a callable the way the native-mapping tables and
// overload notes expect it: `ret container.name(paramTypes)`, with the
// container part omitted for free functions. Constructors render as
// `container(paramTypes)`.
func (t *Table) SignatureString(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil || sym.Sig == nil {
		return "<invalid>"
	}
	var b strings.Builder
	switch sym.Kind {
	case SymbolConstructor:
		b.WriteString(t.Types.Name(sym.Type))
	default:
		b.WriteString(t.Types.Name(sym.Sig.Result))
		b.WriteByte(' ')
		if sym.Kind == SymbolMethod {
			b.WriteString(t.Types.Name(sym.Type))
			b.WriteByte('.')
		}
		b.WriteString(t.Strings.MustLookup(sym.Name))
	}
	b.WriteByte('(')
	for i, pt := range sym.Sig.ParamTypes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Types.Name(pt))
	}
	b.WriteByte(')')
	return b.String()
}
