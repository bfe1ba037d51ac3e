package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"co/internal/source"
	"co/internal/types"
)

// Table aggregates the scope and symbol arenas plus shared resources.
// Index 0 of each arena is reserved for the invalid ID.
type Table struct {
	scopes  []Scope
	syms    []Symbol
	Strings *source.Interner
	Types   *types.Interner
	Root    ScopeID
}

func NewTable(strings *source.Interner, interner *types.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	if interner == nil {
		interner = types.NewInterner(strings)
	}
	t := &Table{
		scopes:  make([]Scope, 1, 32),
		syms:    make([]Symbol, 1, 64),
		Strings: strings,
		Types:   interner,
	}
	t.Root = t.NewScope(ScopeNamespace, NoScopeID)
	// The root namespace is itself a symbol so diagnostics can talk about it.
	t.NewSymbol(Symbol{
		Name:  strings.Intern("<root>"),
		Kind:  SymbolNamespace,
		Scope: t.Root,
	})
	return t
}

func (t *Table) NewScope(kind ScopeKind, parent ScopeID) ScopeID {
	n, err := safecast.Conv[uint32](len(t.scopes))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	t.scopes = append(t.scopes, Scope{
		Kind:   kind,
		Parent: parent,
		Names:  make(map[source.StringID]SymbolID),
	})
	return ScopeID(n)
}

func (t *Table) NewSymbol(sym Symbol) SymbolID {
	n, err := safecast.Conv[uint32](len(t.syms))
	if err != nil {
		panic(fmt.Errorf("symbol arena overflow: %w", err))
	}
	t.syms = append(t.syms, sym)
	return SymbolID(n)
}

func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.syms) {
		return nil
	}
	return &t.syms[id]
}

// Resolve walks the scope chain towards the root namespace.
func (t *Table) Resolve(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for scope.IsValid() {
		sc := t.Scope(scope)
		if sc == nil {
			break
		}
		if sym, ok := sc.Names[name]; ok {
			return sym, true
		}
		scope = sc.Parent
	}
	return NoSymbolID, false
}

// ResolveUpTo walks the scope chain but stops before scopes of the given
// kind, so member lookups can slot in between locals and globals.
func (t *Table) ResolveUpTo(scope ScopeID, name source.StringID, stop ScopeKind) (SymbolID, bool) {
	for scope.IsValid() {
		sc := t.Scope(scope)
		if sc == nil || sc.Kind == stop {
			break
		}
		if sym, ok := sc.Names[name]; ok {
			return sym, true
		}
		scope = sc.Parent
	}
	return NoSymbolID, false
}

// ResolveLocal looks the name up in one scope only.
func (t *Table) ResolveLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	sc := t.Scope(scope)
	if sc == nil {
		return NoSymbolID, false
	}
	sym, ok := sc.Names[name]
	return sym, ok
}

// ConflictKind classifies a failed Bind.
type ConflictKind uint8

const (
	// ConflictNameTaken: the name is bound to something that cannot
	// overload with the new symbol.
	ConflictNameTaken ConflictKind = iota + 1
	// ConflictDuplicate: a callable with the same parameter-type tuple
	// already exists under this name.
	ConflictDuplicate
)

// Conflict reports why a Bind failed and what it collided with.
type Conflict struct {
	Kind ConflictKind
	Prev SymbolID
}

// Bind adds a symbol to a scope. Callables of the same callable kind merge
// into an overload set when their parameter-type tuples differ; a repeated
// tuple is a duplicate; any other collision takes the name.
func (t *Table) Bind(scope ScopeID, sym Symbol) (SymbolID, *Conflict) {
	sc := t.Scope(scope)
	if sc == nil {
		panic("symbols: bind into invalid scope")
	}
	sym.Scope = scope
	prev, taken := sc.Names[sym.Name]
	if !taken {
		id := t.NewSymbol(sym)
		sc.Names[sym.Name] = id
		sc.Symbols = append(sc.Symbols, id)
		return id, nil
	}

	prevSym := t.Symbol(prev)
	setKind, ok := overloadSetKind(prevSym.Kind, sym.Kind)
	if !ok {
		return NoSymbolID, &Conflict{Kind: ConflictNameTaken, Prev: prev}
	}
	members := t.OverloadMembers(prev)
	if dup := t.findSameSignature(members, sym.Sig.ParamTypes); dup.IsValid() {
		return NoSymbolID, &Conflict{Kind: ConflictDuplicate, Prev: dup}
	}
	id := t.NewSymbol(sym)
	// Re-fetch: NewSymbol may have grown the arena.
	prevSym = t.Symbol(prev)
	if prevSym.Kind == SymbolOverloadedFunction || prevSym.Kind == SymbolOverloadedMethod {
		prevSym.Overloads = append(prevSym.Overloads, id)
		return id, nil
	}
	// Promote the single callable to an overload set.
	set := t.NewSymbol(Symbol{
		Name:      sym.Name,
		Kind:      setKind,
		Scope:     scope,
		Span:      prevSym.Span,
		Type:      prevSym.Type,
		Overloads: []SymbolID{prev, id},
	})
	sc = t.Scope(scope)
	sc.Names[sym.Name] = set
	sc.Symbols = append(sc.Symbols, id)
	return id, nil
}

// overloadSetKind decides whether two symbol kinds can share a name, and
// which overload-set kind the merge produces.
func overloadSetKind(prev, next SymbolKind) (SymbolKind, bool) {
	switch {
	case prev == SymbolFunction && next == SymbolFunction,
		prev == SymbolOverloadedFunction && next == SymbolFunction:
		return SymbolOverloadedFunction, true
	case prev == SymbolMethod && next == SymbolMethod,
		prev == SymbolOverloadedMethod && next == SymbolMethod:
		return SymbolOverloadedMethod, true
	default:
		return SymbolInvalid, false
	}
}

// OverloadMembers flattens a symbol into the list of concrete callables it
// stands for.
func (t *Table) OverloadMembers(id SymbolID) []SymbolID {
	sym := t.Symbol(id)
	if sym == nil {
		return nil
	}
	if sym.Kind == SymbolOverloadedFunction || sym.Kind == SymbolOverloadedMethod {
		return sym.Overloads
	}
	if sym.Kind.IsCallable() {
		return []SymbolID{id}
	}
	return nil
}

func (t *Table) findSameSignature(members []SymbolID, paramTypes []types.TypeID) SymbolID {
	for _, m := range members {
		sig := t.Symbol(m).Sig
		if sig != nil && slices.Equal(sig.ParamTypes, paramTypes) {
			return m
		}
	}
	return NoSymbolID
}

// BindMember adds a method to a type's member index with the same
// promotion rules as Bind.
func (t *Table) BindMember(container types.TypeID, sym Symbol) (SymbolID, *Conflict) {
	// Fields live on the value type; a method may not reuse their names.
	for _, f := range t.Types.MustLookup(t.Types.Elem(container)).Fields {
		if f.Name == sym.Name {
			return NoSymbolID, &Conflict{Kind: ConflictNameTaken, Prev: SymbolID(f.Sym)}
		}
	}
	info := t.Types.MustLookup(container)
	prevRef, taken := info.Methods[sym.Name]
	if !taken {
		id := t.NewSymbol(sym)
		info.Methods[sym.Name] = types.SymbolRef(id)
		return id, nil
	}
	prev := SymbolID(prevRef)
	prevSym := t.Symbol(prev)
	setKind, ok := overloadSetKind(prevSym.Kind, sym.Kind)
	if !ok {
		return NoSymbolID, &Conflict{Kind: ConflictNameTaken, Prev: prev}
	}
	members := t.OverloadMembers(prev)
	if dup := t.findSameSignature(members, sym.Sig.ParamTypes); dup.IsValid() {
		return NoSymbolID, &Conflict{Kind: ConflictDuplicate, Prev: dup}
	}
	id := t.NewSymbol(sym)
	prevSym = t.Symbol(prev)
	if prevSym.Kind == SymbolOverloadedMethod {
		prevSym.Overloads = append(prevSym.Overloads, id)
		return id, nil
	}
	set := t.NewSymbol(Symbol{
		Name:      sym.Name,
		Kind:      setKind,
		Span:      prevSym.Span,
		Type:      prevSym.Type,
		Overloads: []SymbolID{prev, id},
	})
	t.Types.MustLookup(container).Methods[sym.Name] = types.SymbolRef(set)
	return id, nil
}

// BindConstructor adds a constructor to a type, rejecting a repeated
// parameter-type tuple. A user constructor replaces the synthesised
// native one of the same signature (the default constructor).
func (t *Table) BindConstructor(container types.TypeID, sym Symbol) (SymbolID, *Conflict) {
	info := t.Types.MustLookup(container)
	ctors := make([]SymbolID, 0, len(info.Ctors))
	for _, ref := range info.Ctors {
		ctors = append(ctors, SymbolID(ref))
	}
	if dup := t.findSameSignature(ctors, sym.Sig.ParamTypes); dup.IsValid() {
		if t.Symbol(dup).Native && !sym.Native {
			id := t.NewSymbol(sym)
			for i, ref := range t.Types.MustLookup(container).Ctors {
				if SymbolID(ref) == dup {
					t.Types.MustLookup(container).Ctors[i] = types.SymbolRef(id)
				}
			}
			return id, nil
		}
		return NoSymbolID, &Conflict{Kind: ConflictDuplicate, Prev: dup}
	}
	id := t.NewSymbol(sym)
	t.Types.MustLookup(container).Ctors = append(t.Types.MustLookup(container).Ctors, types.SymbolRef(id))
	return id, nil
}

// DropSynthesizedDefault removes the native zero-argument constructor a
// type received at creation. Declaring any constructor suppresses it.
func (t *Table) DropSynthesizedDefault(container types.TypeID) {
	info := t.Types.MustLookup(container)
	for i, ref := range info.Ctors {
		sym := t.Symbol(SymbolID(ref))
		if sym != nil && sym.Native && sym.Sig != nil && len(sym.Sig.ParamTypes) == 0 {
			info.Ctors = append(info.Ctors[:i], info.Ctors[i+1:]...)
			return
		}
	}
}

// Constructors lists a type's constructors as SymbolIDs.
func (t *Table) Constructors(container types.TypeID) []SymbolID {
	info, ok := t.Types.Lookup(container)
	if !ok {
		return nil
	}
	ctors := make([]SymbolID, 0, len(info.Ctors))
	for _, ref := range info.Ctors {
		ctors = append(ctors, SymbolID(ref))
	}
	return ctors
}

// Member resolves a name inside a type's member index. For reference types
// the value type's members are visible too, with the reference's own
// members (assign) taking precedence.
func (t *Table) Member(container types.TypeID, name source.StringID) (SymbolID, bool) {
	info, ok := t.Types.Lookup(container)
	if !ok {
		return NoSymbolID, false
	}
	if ref, ok := info.Methods[name]; ok {
		return SymbolID(ref), true
	}
	for _, f := range info.Fields {
		if f.Name == name {
			return SymbolID(f.Sym), true
		}
	}
	if info.Kind == types.KindReference {
		return t.Member(info.Elem, name)
	}
	return NoSymbolID, false
}

// AddField appends an ordered field to a value type and creates its
// variable symbol. Field names share the member namespace with methods.
func (t *Table) AddField(container types.TypeID, name source.StringID, fieldType types.TypeID, span source.Span) (SymbolID, *Conflict) {
	if prev, ok := t.Member(container, name); ok {
		return NoSymbolID, &Conflict{Kind: ConflictNameTaken, Prev: prev}
	}
	id := t.NewSymbol(Symbol{
		Name: name,
		Kind: SymbolVariable,
		Span: span,
		Type: fieldType,
	})
	info := t.Types.MustLookup(container)
	info.Fields = append(info.Fields, types.FieldInfo{
		Name: name,
		Type: fieldType,
		Sym:  types.SymbolRef(id),
	})
	return id, nil
}

// Reference returns the unique reference type of t, synthesising its
// native 'assign' method on first creation.
func (t *Table) Reference(base types.TypeID) types.TypeID {
	ref, created := t.Types.Reference(base)
	if created {
		assignName := t.Strings.Intern("assign")
		assign := t.NewSymbol(Symbol{
			Name:   assignName,
			Kind:   SymbolMethod,
			Native: true,
			Type:   ref,
			Sig: &Signature{
				ParamTypes: []types.TypeID{base},
				Result:     ref,
			},
		})
		t.Types.MustLookup(ref).Methods[assignName] = types.SymbolRef(assign)
	}
	return ref
}
