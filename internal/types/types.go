// Package types owns the type arena of one compilation: the native
// primitives, user value types, and their unique reference types.
// Members (fields, methods, constructors) are symbols; this package keeps
// them as opaque handles so the symbol arena can stay on top of it.
package types

import (
	"co/internal/source"
)

// TypeID identifies a type in the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

func (id TypeID) IsValid() bool { return id != NoTypeID }

// SymbolRef is an opaque handle into the symbol arena. The types package
// stores member handles without knowing what a symbol is.
type SymbolRef uint32

// NoSymbolRef marks the absence of a member handle.
const NoSymbolRef SymbolRef = 0

// Kind classifies a type.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindUnknown is the error sentinel: it converts to and from anything
	// so a single root cause yields a single diagnostic.
	KindUnknown
	KindVoid
	KindValue
	KindReference
)

// FieldInfo is one ordered field of a value type.
type FieldInfo struct {
	Name source.StringID
	Type TypeID
	Sym  SymbolRef
}

// Info describes one type. Value types own their members; a reference
// type shares the value type's members and owns 'assign' plus the
// methods declared with '&'.
type Info struct {
	Kind   Kind
	Name   source.StringID
	Native bool
	Span   source.Span

	Elem TypeID // reference: the referenced type
	Ref  TypeID // value: the lazily built unique reference type

	Fields  []FieldInfo
	Methods map[source.StringID]SymbolRef // value may be an overload set
	Ctors   []SymbolRef
}

// IsPlain reports whether the type can be default-constructed; callers
// still need the constructor list to know for sure, this only excludes
// kinds that can never be.
func (i *Info) IsPlain() bool {
	return i.Kind == KindValue
}
