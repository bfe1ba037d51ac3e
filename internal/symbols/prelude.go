package symbols

import (
	"co/internal/source"
	"co/internal/types"
)

// SynthesizeConstructors attaches the default and copy constructors every
// value type receives at creation. Both are native: the backend emits them.
func (t *Table) SynthesizeConstructors(container types.TypeID, span source.Span) {
	info := t.Types.MustLookup(container)
	name := info.Name
	defCtor := t.NewSymbol(Symbol{
		Name:   name,
		Kind:   SymbolConstructor,
		Span:   span,
		Native: true,
		Type:   container,
		Sig:    &Signature{Result: container},
	})
	copyCtor := t.NewSymbol(Symbol{
		Name:   name,
		Kind:   SymbolConstructor,
		Span:   span,
		Native: true,
		Type:   container,
		Sig: &Signature{
			ParamTypes: []types.TypeID{container},
			Result:     container,
		},
	})
	info = t.Types.MustLookup(container)
	info.Ctors = append(info.Ctors, types.SymbolRef(defCtor), types.SymbolRef(copyCtor))
}

// InstallPrelude populates the native surface of a fresh table: operator
// methods and conversions on the primitives, and the native I/O functions
// of the root namespace.
func (t *Table) InstallPrelude() {
	b := t.Types.Builtins()
	intT, dblT, boolT, voidT := b.Int, b.Double, b.Bool, b.Void

	t.SynthesizeConstructors(intT, source.Span{})
	t.SynthesizeConstructors(dblT, source.Span{})
	t.SynthesizeConstructors(boolT, source.Span{})
	t.nativeCtor(intT, dblT)  // int(double) truncates
	t.nativeCtor(dblT, intT)  // double(int) widens

	arith := []string{"plus", "minus", "times", "div"}
	cmp := []string{"lessThan", "greaterThan", "lessOrEquals", "greaterOrEquals", "equals", "notEquals"}
	for _, num := range []types.TypeID{intT, dblT} {
		for _, name := range arith {
			t.nativeMethod(num, name, []types.TypeID{num}, num)
		}
		for _, name := range cmp {
			t.nativeMethod(num, name, []types.TypeID{num}, boolT)
		}
		t.nativeMethod(num, "unaryMinus", nil, num)
		t.nativeMethod(num, "power", []types.TypeID{num}, num)
	}
	t.nativeMethod(intT, "toDouble", nil, dblT)
	t.nativeMethod(dblT, "toInt", nil, intT)

	t.nativeMethod(boolT, "and", []types.TypeID{boolT}, boolT)
	t.nativeMethod(boolT, "or", []types.TypeID{boolT}, boolT)
	t.nativeMethod(boolT, "not", nil, boolT)
	t.nativeMethod(boolT, "equals", []types.TypeID{boolT}, boolT)
	t.nativeMethod(boolT, "notEquals", []types.TypeID{boolT}, boolT)

	for _, arg := range []types.TypeID{intT, dblT, boolT} {
		t.nativeFunc("print", []types.TypeID{arg}, voidT)
		t.nativeFunc("println", []types.TypeID{arg}, voidT)
	}
	t.nativeFunc("writeInt", []types.TypeID{intT}, voidT)
	t.nativeFunc("writeIntLn", []types.TypeID{intT}, voidT)
	t.nativeFunc("writeDouble", []types.TypeID{dblT}, voidT)
	t.nativeFunc("writeDoubleLn", []types.TypeID{dblT}, voidT)
	t.nativeFunc("assert", []types.TypeID{boolT}, voidT)
	t.nativeFunc("readInt", nil, intT)
	t.nativeFunc("readDouble", nil, dblT)

	// The primitives themselves are names in the root namespace.
	for _, id := range []types.TypeID{voidT, intT, dblT, boolT} {
		info := t.Types.MustLookup(id)
		t.Bind(t.Root, Symbol{
			Name:   info.Name,
			Kind:   SymbolType,
			Native: true,
			Type:   id,
		})
	}
}

func (t *Table) nativeMethod(container types.TypeID, name string, params []types.TypeID, result types.TypeID) {
	t.BindMember(container, Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolMethod,
		Native: true,
		Type:   container,
		Sig: &Signature{
			ParamTypes: params,
			Result:     result,
		},
	})
}

func (t *Table) nativeCtor(container types.TypeID, param types.TypeID) {
	t.BindConstructor(container, Symbol{
		Name:   t.Types.MustLookup(container).Name,
		Kind:   SymbolConstructor,
		Native: true,
		Type:   container,
		Sig: &Signature{
			ParamTypes: []types.TypeID{param},
			Result:     container,
		},
	})
}

func (t *Table) nativeFunc(name string, params []types.TypeID, result types.TypeID) {
	t.Bind(t.Root, Symbol{
		Name:   t.Strings.Intern(name),
		Kind:   SymbolFunction,
		Native: true,
		Sig: &Signature{
			ParamTypes: params,
			Result:     result,
		},
	})
}
