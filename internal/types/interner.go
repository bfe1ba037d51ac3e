package types

import (
	"fmt"

	"fortio.org/safecast"

	"co/internal/source"
)

// Builtins stores TypeIDs of the types every compilation starts with.
type Builtins struct {
	Unknown TypeID
	Void    TypeID
	Int     TypeID
	Double  TypeID
	Bool    TypeID
}

// Interner allocates TypeIDs and keeps every Info of one compilation.
type Interner struct {
	infos    []Info
	builtins Builtins
	strings  *source.Interner
}

// NewInterner seeds the arena with the native primitives. Their members
// are attached later by the symbol prelude.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		infos:   make([]Info, 1, 32), // slot 0 = NoTypeID
		strings: strings,
	}
	in.builtins.Unknown = in.add(Info{Kind: KindUnknown, Name: strings.Intern("<unknown>")})
	in.builtins.Void = in.add(Info{Kind: KindVoid, Native: true, Name: strings.Intern("void")})
	in.builtins.Int = in.NewValueType(strings.Intern("int"), true, source.Span{})
	in.builtins.Double = in.NewValueType(strings.Intern("double"), true, source.Span{})
	in.builtins.Bool = in.NewValueType(strings.Intern("bool"), true, source.Span{})
	return in
}

func (in *Interner) Builtins() Builtins {
	return in.builtins
}

func (in *Interner) add(info Info) TypeID {
	n, err := safecast.Conv[uint32](len(in.infos))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	in.infos = append(in.infos, info)
	return TypeID(n)
}

// NewValueType allocates a fresh value type. Synthesised constructors are
// the symbol layer's job.
func (in *Interner) NewValueType(name source.StringID, native bool, span source.Span) TypeID {
	return in.add(Info{
		Kind:    KindValue,
		Name:    name,
		Native:  native,
		Span:    span,
		Methods: make(map[source.StringID]SymbolRef),
	})
}

// Reference returns the unique reference type of t, building it on first
// use. The second result tells the caller the type was just created and
// still needs its 'assign' method.
func (in *Interner) Reference(t TypeID) (TypeID, bool) {
	info := in.MustLookup(t)
	if info.Kind == KindReference {
		panic("types: reference to a reference type")
	}
	if info.Ref.IsValid() {
		return info.Ref, false
	}
	ref := in.add(Info{
		Kind:    KindReference,
		Name:    info.Name,
		Native:  info.Native,
		Elem:    t,
		Methods: make(map[source.StringID]SymbolRef),
	})
	in.MustLookup(t).Ref = ref
	return ref, true
}

func (in *Interner) Lookup(id TypeID) (*Info, bool) {
	if !id.IsValid() || int(id) >= len(in.infos) {
		return nil, false
	}
	return &in.infos[id], true
}

func (in *Interner) MustLookup(id TypeID) *Info {
	info, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return info
}

// Len reports the number of allocated types excluding the sentinel.
func (in *Interner) Len() int { return len(in.infos) - 1 }

// IsReference reports whether id is a reference type.
func (in *Interner) IsReference(id TypeID) bool {
	info, ok := in.Lookup(id)
	return ok && info.Kind == KindReference
}

// IsUnknown reports whether id is the error sentinel.
func (in *Interner) IsUnknown(id TypeID) bool {
	info, ok := in.Lookup(id)
	return !ok || info.Kind == KindUnknown
}

// Elem returns the referenced type of a reference, or id itself.
func (in *Interner) Elem(id TypeID) TypeID {
	info, ok := in.Lookup(id)
	if !ok || info.Kind != KindReference {
		return id
	}
	return info.Elem
}

// Name renders a type for diagnostics: "int", "Point&".
func (in *Interner) Name(id TypeID) string {
	info, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	base := in.strings.MustLookup(info.Name)
	if info.Kind == KindReference {
		return base + "&"
	}
	return base
}

// Strings exposes the shared identifier interner.
func (in *Interner) Strings() *source.Interner {
	return in.strings
}
