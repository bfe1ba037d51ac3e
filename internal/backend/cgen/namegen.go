package cgen

import (
	"fmt"
	"strings"

	"co/internal/symbols"
)

// cKeywords are C identifiers a CO name must not collide with.
var cKeywords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true,
	"else": true, "enum": true, "extern": true, "float": true, "for": true,
	"goto": true, "if": true, "inline": true, "int": true, "long": true,
	"register": true, "restrict": true, "return": true, "short": true,
	"signed": true, "sizeof": true, "static": true, "struct": true,
	"switch": true, "typedef": true, "union": true, "unsigned": true,
	"void": true, "volatile": true, "while": true, "main": true,
}

// NameGen hands every non-native symbol a stable C identifier of the form
// co_<sanitised qualified name>, suffixing _N on collisions.
type NameGen struct {
	table *symbols.Table
	names map[symbols.SymbolID]string
	used  map[string]int
}

func NewNameGen(table *symbols.Table) *NameGen {
	return &NameGen{
		table: table,
		names: make(map[symbols.SymbolID]string),
		used:  make(map[string]int),
	}
}

// Name returns the C identifier of a symbol, generating it on first use.
func (g *NameGen) Name(id symbols.SymbolID) string {
	if n, ok := g.names[id]; ok {
		return n
	}
	n := g.fresh("co_" + sanitize(g.qualified(id)))
	g.names[id] = n
	return n
}

// Local returns a C identifier for a local variable or parameter.
func (g *NameGen) Local(id symbols.SymbolID) string {
	if n, ok := g.names[id]; ok {
		return n
	}
	sym := g.table.Symbol(id)
	base := sanitize(g.table.Strings.MustLookup(sym.Name))
	n := g.fresh("co_" + base)
	g.names[id] = n
	return n
}

// Field renders a struct member name, stepping around C keywords.
func (g *NameGen) Field(id symbols.SymbolID) string {
	sym := g.table.Symbol(id)
	name := sanitize(g.table.Strings.MustLookup(sym.Name))
	if cKeywords[name] {
		name += "_"
	}
	return name
}

func (g *NameGen) qualified(id symbols.SymbolID) string {
	sym := g.table.Symbol(id)
	name := g.table.Strings.MustLookup(sym.Name)
	switch sym.Kind {
	case symbols.SymbolMethod, symbols.SymbolConstructor:
		container := g.table.Types.Name(g.table.Types.Elem(sym.Type))
		return container + "_" + name
	default:
		return name
	}
}

func (g *NameGen) fresh(base string) string {
	count := g.used[base]
	g.used[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, count)
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
