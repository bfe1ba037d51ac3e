package sema

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/symbols"
)

// registerGlobals is pass 3: free functions and global variables enter the
// root namespace. Bodies and initializers wait for pass 4.
func (c *checker) registerGlobals() {
	for _, itemID := range c.builder.File.Items {
		item := c.builder.Item(itemID)
		switch item.Kind {
		case ast.ItemFunc:
			c.registerFunction(item)
		case ast.ItemVars:
			c.registerGlobalVars(item)
		}
	}
}

func (c *checker) registerFunction(item *ast.Item) {
	if item.RefMarker {
		c.errorf(diag.ReferenceMarkerInFunction, item.MarkerSpan, locale.Args{})
	}
	if item.Native && item.Body.IsValid() {
		c.errorf(diag.NativeFunctionWithBody, item.NameSpan, locale.Args{Kind: locale.KindFunction})
	}
	if !item.Native && !item.Body.IsValid() {
		c.errorf(diag.FunctionDefinitionWithoutBody, item.NameSpan, locale.Args{
			Kind: locale.KindFunction,
			Name: c.name(item.Name),
		})
	}
	result := c.resolveTypeExpr(c.table.Root, item.Return)
	scope, params, paramTypes := c.makeCallableScope(0, item.Params)
	sym := symbols.Symbol{
		Name:   item.Name,
		Kind:   symbols.SymbolFunction,
		Span:   item.NameSpan,
		Native: item.Native,
		Sig: &symbols.Signature{
			Params:     params,
			ParamTypes: paramTypes,
			Result:     result,
			Body:       item.Body,
			BodyScope:  scope,
		},
	}
	id, conflict := c.table.Bind(c.table.Root, sym)
	if conflict != nil {
		switch conflict.Kind {
		case symbols.ConflictDuplicate:
			c.reportDuplicate(diag.DuplicateFunctionDefinition, locale.KindFunction, item.Name, item.NameSpan, conflict.Prev)
		default:
			c.reportNameTaken(item.Name, item.NameSpan, conflict.Prev)
		}
		return
	}
	if item.Body.IsValid() && !item.Native {
		c.bodies = append(c.bodies, pendingBody{kind: pendingFunction, sym: id, body: item.Body})
	}
}

func (c *checker) registerGlobalVars(item *ast.Item) {
	varType := c.resolveTypeExpr(c.table.Root, item.VarsType)
	for _, decl := range item.Decls {
		id, conflict := c.table.Bind(c.table.Root, symbols.Symbol{
			Name: decl.Name,
			Kind: symbols.SymbolVariable,
			Span: decl.NameSpan,
			Type: varType,
		})
		if conflict != nil {
			c.reportNameTaken(decl.Name, decl.NameSpan, conflict.Prev)
			continue
		}
		c.globals = append(c.globals, pendingGlobal{
			sym:  id,
			typ:  varType,
			init: decl.Init,
			span: decl.NameSpan,
		})
	}
}
