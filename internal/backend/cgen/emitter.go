// Package cgen walks the typed tree and emits one self-contained C99
// translation unit. Only entities reachable from main are emitted; types
// are laid out in field-dependency order.
package cgen

import (
	"fmt"
	"io"
	"strings"

	"co/internal/hir"
	"co/internal/symbols"
	"co/internal/types"
)

// Emitter holds the state of one emission.
type Emitter struct {
	prog  *hir.Program
	table *symbols.Table
	names *NameGen

	worklist      []symbols.SymbolID
	seenCallables map[symbols.SymbolID]bool
	seenGlobals   map[symbols.SymbolID]bool
	seenTypes     map[types.TypeID]bool

	funcs        []symbols.SymbolID
	methods      []symbols.SymbolID
	ctors        []symbols.SymbolID
	globalsOrder []symbols.SymbolID
	typesOrder   []types.TypeID

	typeNames map[types.TypeID]string
	buf       strings.Builder
}

// Process walks the program and writes the translation unit.
func Process(prog *hir.Program, out io.Writer) error {
	e := &Emitter{
		prog:          prog,
		table:         prog.Table,
		names:         NewNameGen(prog.Table),
		seenCallables: make(map[symbols.SymbolID]bool),
		seenGlobals:   make(map[symbols.SymbolID]bool),
		seenTypes:     make(map[types.TypeID]bool),
		typeNames:     make(map[types.TypeID]string),
	}
	if err := e.collect(); err != nil {
		return err
	}
	if err := e.emit(); err != nil {
		return err
	}
	_, err := io.WriteString(out, e.buf.String())
	return err
}

func (e *Emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

// cType renders a TypeID as a C type.
func (e *Emitter) cType(t types.TypeID) string {
	b := e.table.Types.Builtins()
	switch t {
	case b.Void:
		return "void"
	case b.Int, b.Bool:
		return "int32_t"
	case b.Double:
		return "double"
	}
	info := e.table.Types.MustLookup(t)
	if info.Kind == types.KindReference {
		return e.cType(info.Elem) + "*"
	}
	return e.typeName(t)
}

func (e *Emitter) typeName(t types.TypeID) string {
	if n, ok := e.typeNames[t]; ok {
		return n
	}
	n := e.names.fresh("co_" + sanitize(e.table.Types.Name(t)))
	e.typeNames[t] = n
	return n
}

func (e *Emitter) emit() error {
	e.buf.WriteString(preamble)

	// Forward typedefs let reference fields point at later structs.
	for _, t := range e.typesOrder {
		n := e.typeName(t)
		e.printf("typedef struct %s %s;\n", n, n)
	}
	if len(e.typesOrder) > 0 {
		e.buf.WriteByte('\n')
	}
	for _, t := range e.typesOrder {
		if err := e.emitStruct(t); err != nil {
			return err
		}
	}

	for _, g := range e.globalsOrder {
		sym := e.table.Symbol(g)
		e.printf("static %s %s;\n", e.cType(sym.Type), e.names.Name(g))
	}
	if len(e.globalsOrder) > 0 {
		e.buf.WriteByte('\n')
	}

	// Prototypes first so definition order never matters.
	userCallables := e.userCallables()
	for _, sym := range userCallables {
		proto, err := e.signature(sym)
		if err != nil {
			return err
		}
		e.printf("%s;\n", proto)
	}
	for _, t := range e.typesOrder {
		e.printf("static %s %s_default(void);\n", e.typeName(t), e.typeName(t))
	}
	e.buf.WriteByte('\n')

	for _, t := range e.typesOrder {
		e.printf("static %s %s_default(void) { %s v = {0}; return v; }\n",
			e.typeName(t), e.typeName(t), e.typeName(t))
	}
	if len(e.typesOrder) > 0 {
		e.buf.WriteByte('\n')
	}

	for _, sym := range userCallables {
		if err := e.emitCallable(sym); err != nil {
			return err
		}
	}

	if err := e.emitInitGlobals(); err != nil {
		return err
	}

	e.printf("int main(void) {\n")
	if len(e.globalsOrder) > 0 {
		e.printf("    _initGlobals();\n")
	}
	e.printf("    %s();\n", e.names.Name(e.prog.Main))
	e.printf("    return 0;\n}\n")
	return nil
}

// userCallables lists every reachable non-native callable in a stable
// order: functions, then methods, then constructors.
func (e *Emitter) userCallables() []symbols.SymbolID {
	var out []symbols.SymbolID
	for _, groups := range [][]symbols.SymbolID{e.funcs, e.methods, e.ctors} {
		for _, sym := range groups {
			if !e.table.Symbol(sym).Native {
				out = append(out, sym)
			}
		}
	}
	return out
}

func (e *Emitter) emitStruct(t types.TypeID) error {
	info := e.table.Types.MustLookup(t)
	n := e.typeName(t)
	e.printf("struct %s {\n", n)
	if len(info.Fields) == 0 {
		// An empty struct is not C99; give it a placeholder byte.
		e.printf("    char _empty;\n")
	}
	for _, f := range info.Fields {
		e.printf("    %s %s;\n", e.cType(f.Type), e.names.Field(symbols.SymbolID(f.Sym)))
	}
	e.printf("};\n\n")
	return nil
}

// signature renders the C prototype head of a user callable. Methods get
// an explicit leading 'this' pointer; constructors return the container by
// value.
func (e *Emitter) signature(sym symbols.SymbolID) (string, error) {
	s := e.table.Symbol(sym)
	sig := s.Sig
	var params []string
	switch s.Kind {
	case symbols.SymbolMethod:
		container := e.table.Types.Elem(s.Type)
		thisName := e.thisName(sig)
		params = append(params, fmt.Sprintf("%s* %s", e.cType(container), thisName))
	case symbols.SymbolConstructor:
		// 'this' lives inside the body, not in the parameter list.
	}
	for _, p := range sig.Params {
		if !p.IsValid() {
			continue
		}
		params = append(params, fmt.Sprintf("%s %s", e.cType(e.table.Symbol(p).Type), e.names.Local(p)))
	}
	if len(params) == 0 {
		params = append(params, "void")
	}
	ret := e.cType(sig.Result)
	if s.Kind == symbols.SymbolConstructor {
		ret = e.cType(s.Type)
	}
	return fmt.Sprintf("static %s %s(%s)", ret, e.names.Name(sym), strings.Join(params, ", ")), nil
}

// thisName resolves the implicit this parameter's C name from the body
// scope.
func (e *Emitter) thisName(sig *symbols.Signature) string {
	thisID := e.table.Strings.Intern("this")
	if sym, ok := e.table.ResolveLocal(sig.BodyScope, thisID); ok {
		return e.names.Local(sym)
	}
	return "co_this"
}

func (e *Emitter) emitCallable(sym symbols.SymbolID) error {
	s := e.table.Symbol(sym)
	head, err := e.signature(sym)
	if err != nil {
		return err
	}
	block := e.prog.BodyOf(sym)
	if block == nil {
		return fmt.Errorf("cgen: missing body for %q", e.table.SignatureString(sym))
	}
	e.printf("%s {\n", head)
	if s.Kind == symbols.SymbolConstructor {
		container := e.cType(s.Type)
		thisName := e.thisName(s.Sig)
		e.printf("    %s %s_v = {0};\n", container, thisName)
		e.printf("    %s* %s = &%s_v;\n", container, thisName, thisName)
	}
	if err := e.emitBlockBody(block, 1); err != nil {
		return err
	}
	if s.Kind == symbols.SymbolConstructor {
		e.printf("    return %s_v;\n", e.thisName(s.Sig))
	}
	e.printf("}\n\n")
	return nil
}

func (e *Emitter) emitInitGlobals() error {
	if len(e.globalsOrder) == 0 {
		return nil
	}
	e.printf("static void _initGlobals(void) {\n")
	// Declaration order, so a global may use the ones above it.
	for _, entry := range e.prog.Globals {
		g := entry.Init.Var
		if !e.seenGlobals[g] {
			continue
		}
		init := e.findGlobalInit(g)
		var value string
		var err error
		if init != nil {
			value, err = e.ctorValue(e.table.Symbol(g).Type, init.Ctor, init.Args)
			if err != nil {
				return err
			}
		} else {
			value, err = e.zeroValue(e.table.Symbol(g).Type)
			if err != nil {
				return err
			}
		}
		e.printf("    %s = %s;\n", e.names.Name(g), value)
	}
	e.printf("}\n\n")
	return nil
}

func (e *Emitter) findGlobalInit(sym symbols.SymbolID) *hir.VarCtorCall {
	for i := range e.prog.Globals {
		if e.prog.Globals[i].Init.Var == sym {
			return e.prog.Globals[i].Init
		}
	}
	return nil
}

func (e *Emitter) zeroValue(t types.TypeID) (string, error) {
	b := e.table.Types.Builtins()
	switch t {
	case b.Int, b.Bool:
		return "0", nil
	case b.Double:
		return "0.0", nil
	}
	info := e.table.Types.MustLookup(t)
	if info.Kind == types.KindReference {
		return "", fmt.Errorf("cgen: reference global without initializer")
	}
	return e.typeName(t) + "_default()", nil
}
