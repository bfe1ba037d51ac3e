package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/symbols"
	"co/internal/types"
)

// registerMembers is pass 2: fields, methods and constructors of every
// type are registered in stub form — parameter and return types resolved,
// bodies deferred to pass 4.
func (c *checker) registerMembers() {
	for _, itemID := range c.builder.File.Items {
		item := c.builder.Item(itemID)
		if item.Kind != ast.ItemType {
			continue
		}
		container, ok := c.itemType[itemID]
		if !ok {
			continue // name collision in pass 1
		}
		for i := range item.Members {
			c.registerMember(container, &item.Members[i])
		}
	}
}

func (c *checker) registerMember(container types.TypeID, m *ast.Member) {
	switch m.Kind {
	case ast.MemberField:
		c.registerField(container, m)
	case ast.MemberMethod:
		c.registerMethod(container, m)
	case ast.MemberConstructor:
		c.registerConstructor(container, m)
	}
}

func (c *checker) registerField(container types.TypeID, m *ast.Member) {
	fieldType := c.resolveTypeExpr(c.table.Root, m.FieldType)
	for _, decl := range m.Decls {
		_, conflict := c.table.AddField(container, decl.Name, fieldType, decl.NameSpan)
		if conflict != nil {
			c.reportNameTaken(decl.Name, decl.NameSpan, conflict.Prev)
		}
	}
}

func (c *checker) registerMethod(container types.TypeID, m *ast.Member) {
	if m.Native && m.Body.IsValid() {
		c.errorf(diag.NativeMethodWithBody, m.NameSpan, locale.Args{Kind: locale.KindMethod})
	}
	if !m.Native && !m.Body.IsValid() {
		c.errorf(diag.MethodDefinitionWithoutBody, m.NameSpan, locale.Args{
			Kind: locale.KindMethod,
			Name: c.name(m.Name),
		})
	}
	// '&' after the name defines the method on the reference type.
	owner := container
	if m.RefMarker {
		owner = c.table.Reference(container)
	}
	result := c.resolveTypeExpr(c.table.Root, m.Return)
	scope, params, paramTypes := c.makeCallableScope(owner, m.Params)
	sym := symbols.Symbol{
		Name:   m.Name,
		Kind:   symbols.SymbolMethod,
		Span:   m.NameSpan,
		Native: m.Native,
		Type:   owner,
		Sig: &symbols.Signature{
			Params:     params,
			ParamTypes: paramTypes,
			Result:     result,
			Body:       m.Body,
			BodyScope:  scope,
		},
	}
	id, conflict := c.table.BindMember(owner, sym)
	if conflict != nil {
		switch conflict.Kind {
		case symbols.ConflictDuplicate:
			c.reportDuplicate(diag.DuplicateMethodDefinition, locale.KindMethod, m.Name, m.NameSpan, conflict.Prev)
		default:
			c.reportNameTaken(m.Name, m.NameSpan, conflict.Prev)
		}
		return
	}
	if m.Body.IsValid() && !m.Native {
		c.bodies = append(c.bodies, pendingBody{kind: pendingMethod, sym: id, body: m.Body})
	}
}

func (c *checker) registerConstructor(container types.TypeID, m *ast.Member) {
	if m.Native && m.Body.IsValid() {
		c.errorf(diag.NativeConstructorWithBody, m.NameSpan, locale.Args{Kind: locale.KindConstructor})
	}
	if !m.Native && !m.Body.IsValid() {
		c.errorf(diag.ConstructorDefinitionWithoutBody, m.NameSpan, locale.Args{
			Kind: locale.KindConstructor,
			Name: c.name(m.Name),
		})
	}
	scope, params, paramTypes := c.makeCallableScope(container, m.Params)
	sym := symbols.Symbol{
		Name:   m.Name,
		Kind:   symbols.SymbolConstructor,
		Span:   m.NameSpan,
		Native: m.Native,
		Type:   container,
		Sig: &symbols.Signature{
			Params:     params,
			ParamTypes: paramTypes,
			Result:     container,
			Body:       m.Body,
			BodyScope:  scope,
		},
	}
	// The copy constructor is synthesised; a user-written one is rejected
	// before the duplicate check so it gets the specific diagnostic.
	if len(paramTypes) == 1 && paramTypes[0] == container {
		c.errorf(diag.CopyConstructorDefinition, m.NameSpan, locale.Args{})
		return
	}
	// Declaring a constructor takes the place of the synthesised default:
	// the type stops being plain unless a zero-argument one comes back.
	c.table.DropSynthesizedDefault(container)
	id, conflict := c.table.BindConstructor(container, sym)
	if conflict != nil {
		c.reportDuplicate(diag.DuplicateConstructorDefinition, locale.KindConstructor, m.Name, m.NameSpan, conflict.Prev)
		return
	}
	if m.Body.IsValid() && !m.Native {
		c.bodies = append(c.bodies, pendingBody{kind: pendingConstructor, sym: id, body: m.Body})
	}
}

// makeCallableScope builds the function scope of a callable: parameters
// and, for members, the implicit 'this' of the container's reference type.
// A container of NoTypeID means a free function.
func (c *checker) makeCallableScope(container types.TypeID, rawParams []ast.Param) (symbols.ScopeID, []symbols.SymbolID, []types.TypeID) {
	scope := c.table.NewScope(symbols.ScopeFunction, c.table.Root)
	if container.IsValid() {
		thisType := container
		if !c.table.Types.IsReference(container) {
			thisType = c.table.Reference(container)
		}
		c.table.Bind(scope, symbols.Symbol{
			Name: c.table.Strings.Intern("this"),
			Kind: symbols.SymbolVariable,
			Type: thisType,
		})
	}
	params := make([]symbols.SymbolID, 0, len(rawParams))
	paramTypes := make([]types.TypeID, 0, len(rawParams))
	for _, p := range rawParams {
		pt := c.resolveTypeExpr(c.table.Root, p.Type)
		id, conflict := c.table.Bind(scope, symbols.Symbol{
			Name: p.Name,
			Kind: symbols.SymbolVariable,
			Span: p.NameSpan,
			Type: pt,
		})
		if conflict != nil {
			c.reportNameTaken(p.Name, p.NameSpan, conflict.Prev)
			id = symbols.NoSymbolID
		}
		params = append(params, id)
		paramTypes = append(paramTypes, pt)
	}
	return scope, params, paramTypes
}

func (c *checker) reportDuplicate(code diag.Code, kind locale.EntityKind, name source.StringID, sp source.Span, prev symbols.SymbolID) {
	d := diag.NewError(code, sp, c.msgs.Format(code, locale.Args{
		Kind: kind,
		Name: c.name(name),
	}))
	if prevSym := c.table.Symbol(prev); prevSym != nil && !prevSym.Span.Empty() {
		d = d.WithNote(prevSym.Span, c.msgs.FirstDefinedHere())
	}
	c.report(d)
}
