package sema

import (
	"math"
	"strconv"
	"strings"

	"co/internal/ast"
	"co/internal/diag"
	"co/internal/hir"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/symbols"
	"co/internal/token"
	"co/internal/types"
)

// bodyCtx carries the local context of one body: what kind of callable we
// are inside (for diagnostics), its expected return type and container.
type bodyCtx struct {
	kind          locale.EntityKind
	expectedRet   types.TypeID
	container     types.TypeID // valid inside methods and constructors
	inConstructor bool
}

func (c *checker) invalid(sp source.Span) hir.Expr {
	return hir.NewInvalid(c.unknown(), sp)
}

// expr analyses one raw expression without materialising references.
func (c *checker) expr(scope symbols.ScopeID, id ast.ExprID, ctx *bodyCtx) hir.Expr {
	e := c.builder.Expr(id)
	if e == nil {
		return c.invalid(source.Span{})
	}
	switch e.Kind {
	case ast.ExprBad:
		return c.invalid(e.Span)
	case ast.ExprParen:
		return c.expr(scope, e.Inner, ctx)
	case ast.ExprIntLit:
		return c.intLit(e.Text, e.Span, false)
	case ast.ExprFloatLit:
		return c.doubleLit(e.Text, e.Span, false)
	case ast.ExprBoolLit:
		return &hir.BoolLit{Meta: hir.At(c.table.Types.Builtins().Bool, e.Span), Value: e.Bool}
	case ast.ExprName:
		return c.nameExpr(scope, e, ctx)
	case ast.ExprThis:
		return c.thisExpr(scope, e, ctx)
	case ast.ExprMember:
		return c.memberExpr(scope, e, ctx)
	case ast.ExprCall:
		return c.callExpr(scope, e, ctx)
	case ast.ExprInfix:
		return c.infixExpr(scope, e, ctx)
	case ast.ExprPrefix:
		return c.prefixExpr(scope, e, ctx)
	case ast.ExprTypeRef:
		return c.typeRefExpr(scope, e)
	default:
		return c.invalid(e.Span)
	}
}

// typeRefExpr resolves a spelled-out type in value position (a cast
// target like `int&(x)`). A name that is not a type gets the dedicated
// cast-target diagnostic instead of the generic type-resolution one.
func (c *checker) typeRefExpr(scope symbols.ScopeID, e *ast.Expr) hir.Expr {
	if base := c.baseName(e.TypeRef); base.IsValid() {
		te := c.builder.Type(base)
		if sym, ok := c.table.Resolve(scope, te.Name); ok {
			if s := c.table.Symbol(sym); s.Kind != symbols.SymbolType {
				c.errorf(diag.NonTypeExpressionAsCastTarget, te.Span, locale.Args{})
				return c.invalid(e.Span)
			}
		}
	}
	t := c.resolveTypeExpr(scope, e.TypeRef)
	if c.table.Types.IsUnknown(t) {
		return c.invalid(e.Span)
	}
	return &hir.TypeRef{Meta: hir.At(c.unknown(), e.Span), Target: t}
}

// baseName walks a raw type expression down to its simple name.
func (c *checker) baseName(id ast.TypeExprID) ast.TypeExprID {
	te := c.builder.Type(id)
	if te == nil {
		return ast.NoTypeExprID
	}
	switch te.Kind {
	case ast.TypeExprRef:
		return c.baseName(te.Elem)
	case ast.TypeExprName:
		return id
	default:
		return ast.NoTypeExprID
	}
}

// rvalue analyses an expression and materialises a plain value: references
// are dereferenced, non-value references (functions, types) are rejected.
func (c *checker) rvalue(scope symbols.ScopeID, id ast.ExprID, ctx *bodyCtx) hir.Expr {
	return c.materialize(c.checkValue(c.expr(scope, id, ctx)))
}

// checkValue rejects expressions that name something other than a value.
func (c *checker) checkValue(e hir.Expr) hir.Expr {
	switch v := e.(type) {
	case *hir.FuncRef:
		sym := c.table.Symbol(v.Fn)
		c.errorf(diag.InvalidReferenceAsExpression, e.Span(), locale.Args{
			Kind: locale.KindFunction,
			Name: c.name(sym.Name),
		})
		return c.invalid(e.Span())
	case *hir.OverloadRef:
		sym := c.table.Symbol(v.Set)
		c.errorf(diag.InvalidReferenceAsExpression, e.Span(), locale.Args{
			Kind: entityKind(sym.Kind),
			Name: c.name(sym.Name),
		})
		return c.invalid(e.Span())
	case *hir.TypeRef:
		c.errorf(diag.InvalidReferenceAsExpression, e.Span(), locale.Args{
			Kind: locale.KindType,
			Name: c.table.Types.Name(v.Target),
		})
		return c.invalid(e.Span())
	case *hir.BoundMethodRef:
		sym := c.table.Symbol(v.Set)
		c.errorf(diag.InvalidReferenceAsExpression, e.Span(), locale.Args{
			Kind: locale.KindMethod,
			Name: c.name(sym.Name),
		})
		return c.invalid(e.Span())
	}
	return e
}

// materialize drops one reference level when present.
func (c *checker) materialize(e hir.Expr) hir.Expr {
	t := e.Type()
	if !c.table.Types.IsReference(t) {
		return e
	}
	return &hir.Deref{Meta: hir.At(c.table.Types.Elem(t), e.Span()), Inner: e}
}

// convert coerces e to the target type, inserting an implicit dereference
// when that is what it takes. The unknown sentinel converts silently.
func (c *checker) convert(e hir.Expr, to types.TypeID) (hir.Expr, bool) {
	t := e.Type()
	if c.table.Types.IsUnknown(t) || c.table.Types.IsUnknown(to) {
		return e, true
	}
	if t == to {
		return e, true
	}
	if c.table.Types.IsReference(t) && c.table.Types.Elem(t) == to {
		return &hir.Deref{Meta: hir.At(to, e.Span()), Inner: e}, true
	}
	return e, false
}

// --- literals ---

func (c *checker) intLit(text string, sp source.Span, negative bool) hir.Expr {
	intType := c.table.Types.Builtins().Int
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return c.invalid(sp)
	}
	if negative {
		if v > uint64(math.MaxInt32)+1 {
			c.errorf(diag.NumericLiteralTooSmall, sp, locale.Args{TypeName: "int"})
			return c.invalid(sp)
		}
		value := int32(-int64(v))
		return &hir.IntLit{Meta: hir.At(intType, sp), Value: value}
	}
	if v > uint64(math.MaxInt32) {
		c.errorf(diag.NumericLiteralTooBig, sp, locale.Args{TypeName: "int"})
		return c.invalid(sp)
	}
	return &hir.IntLit{Meta: hir.At(intType, sp), Value: int32(v)}
}

func (c *checker) doubleLit(text string, sp source.Span, negative bool) hir.Expr {
	dblType := c.table.Types.Builtins().Double
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		code := diag.NumericLiteralTooBig
		if negative {
			code = diag.NumericLiteralTooSmall
		}
		c.errorf(code, sp, locale.Args{TypeName: "double"})
		return c.invalid(sp)
	}
	if negative {
		v = -v
	}
	return &hir.DoubleLit{Meta: hir.At(dblType, sp), Value: v}
}

// --- names ---

func (c *checker) nameExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	// Inside a member body, locals and parameters win, then the
	// container's members through the implicit 'this', then globals.
	if ctx != nil && ctx.container.IsValid() {
		if sym, ok := c.table.ResolveUpTo(scope, e.Name, symbols.ScopeNamespace); ok {
			return c.symbolExpr(sym, e.Span)
		}
		if this := c.thisRef(scope, e.Span); this != nil {
			if member, ok := c.table.Member(this.Type(), e.Name); ok {
				return c.boundMember(this, member, e.Span)
			}
		}
	}
	if sym, ok := c.table.Resolve(scope, e.Name); ok {
		return c.symbolExpr(sym, e.Span)
	}
	c.errorf(diag.UnknownName, e.Span, locale.Args{Name: c.name(e.Name)})
	return c.invalid(e.Span)
}

func (c *checker) symbolExpr(id symbols.SymbolID, sp source.Span) hir.Expr {
	sym := c.table.Symbol(id)
	switch sym.Kind {
	case symbols.SymbolVariable:
		if c.table.Types.IsReference(sym.Type) {
			return &hir.RefVarRef{Meta: hir.At(sym.Type, sp), Var: id}
		}
		if c.table.Types.IsUnknown(sym.Type) {
			return c.invalid(sp)
		}
		return &hir.VarRef{Meta: hir.At(c.table.Reference(sym.Type), sp), Var: id}
	case symbols.SymbolFunction:
		return &hir.FuncRef{Meta: hir.At(c.unknown(), sp), Fn: id}
	case symbols.SymbolOverloadedFunction:
		return &hir.OverloadRef{Meta: hir.At(c.unknown(), sp), Set: id}
	case symbols.SymbolType:
		return &hir.TypeRef{Meta: hir.At(c.unknown(), sp), Sym: id, Target: sym.Type}
	case symbols.SymbolNamespace:
		c.errorf(diag.InvalidReferenceAsExpression, sp, locale.Args{
			Kind: locale.KindNamespace,
			Name: c.name(sym.Name),
		})
		return c.invalid(sp)
	default:
		return c.invalid(sp)
	}
}

// thisRef resolves the implicit 'this' parameter, or nil outside members.
func (c *checker) thisRef(scope symbols.ScopeID, sp source.Span) hir.Expr {
	id, ok := c.table.Resolve(scope, c.table.Strings.Intern("this"))
	if !ok {
		return nil
	}
	sym := c.table.Symbol(id)
	return &hir.RefVarRef{Meta: hir.At(sym.Type, sp), Var: id}
}

func (c *checker) thisExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	if this := c.thisRef(scope, e.Span); this != nil {
		return this
	}
	c.errorf(diag.ThisReferenceOutsideMethod, e.Span, locale.Args{})
	return c.invalid(e.Span)
}

// --- member access ---

func (c *checker) memberExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	recv := c.expr(scope, e.Object, ctx)
	if _, ok := recv.(*hir.Invalid); ok {
		return c.invalid(e.Span)
	}
	if tr, ok := recv.(*hir.TypeRef); ok {
		// No member of a type is accessible statically.
		c.errorf(diag.UnknownStaticMemberName, e.NameSpan, locale.Args{
			TypeName: c.table.Types.Name(tr.Target),
			Name:     c.name(e.Name),
		})
		return c.invalid(e.Span)
	}
	recv = c.checkValue(recv)
	rt := recv.Type()
	if c.table.Types.IsUnknown(rt) {
		return c.invalid(e.Span)
	}
	member, ok := c.table.Member(rt, e.Name)
	if !ok {
		// A method defined on T& reached through a plain T receiver gets
		// its own diagnostic.
		if !c.table.Types.IsReference(rt) {
			if info, found := c.table.Types.Lookup(rt); found && info.Kind == types.KindValue {
				if refMember, onRef := c.table.Member(c.table.Reference(rt), e.Name); onRef {
					c.errorf(diag.ReferenceMethodFromNonReference, e.NameSpan, locale.Args{
						Name:     c.name(e.Name),
						TypeName: c.table.Types.Name(c.table.Symbol(refMember).Type),
					})
					return c.invalid(e.Span)
				}
			}
		}
		c.errorf(diag.UnknownObjectMember, e.NameSpan, locale.Args{
			TypeName: c.table.Types.Name(rt),
			Name:     c.name(e.Name),
		})
		return c.invalid(e.Span)
	}
	return c.boundMember(recv, member, e.Span)
}

func (c *checker) boundMember(recv hir.Expr, member symbols.SymbolID, sp source.Span) hir.Expr {
	sym := c.table.Symbol(member)
	switch sym.Kind {
	case symbols.SymbolVariable:
		// A field: the result is a reference into the instance when the
		// instance itself is addressable through a reference.
		t := sym.Type
		if c.table.Types.IsReference(recv.Type()) && !c.table.Types.IsReference(t) && !c.table.Types.IsUnknown(t) {
			t = c.table.Reference(t)
		}
		return &hir.FieldAccess{Meta: hir.At(t, sp), Recv: recv, Field: member}
	case symbols.SymbolMethod, symbols.SymbolOverloadedMethod:
		return &hir.BoundMethodRef{Meta: hir.At(c.unknown(), sp), Recv: recv, Set: member}
	default:
		return c.invalid(sp)
	}
}

// --- calls ---

func (c *checker) callExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	callee := c.expr(scope, e.Object, ctx)

	args := make([]hir.Expr, 0, len(e.Args))
	argTypes := make([]types.TypeID, 0, len(e.Args))
	anyUnknown := false
	for _, aid := range e.Args {
		a := c.checkValue(c.expr(scope, aid, ctx))
		args = append(args, a)
		argTypes = append(argTypes, a.Type())
		if c.table.Types.IsUnknown(a.Type()) {
			anyUnknown = true
		}
	}

	switch v := callee.(type) {
	case *hir.Invalid:
		return c.invalid(e.Span)
	case *hir.TypeRef:
		if anyUnknown {
			return c.invalid(e.Span)
		}
		return c.castExpr(v, args, argTypes, e.Span)
	case *hir.FuncRef:
		if anyUnknown {
			return c.invalid(e.Span)
		}
		return c.resolveCall(v.Fn, []symbols.SymbolID{v.Fn}, nil, args, argTypes, e.Span)
	case *hir.OverloadRef:
		if anyUnknown {
			return c.invalid(e.Span)
		}
		return c.resolveCall(v.Set, c.table.OverloadMembers(v.Set), nil, args, argTypes, e.Span)
	case *hir.BoundMethodRef:
		if anyUnknown {
			return c.invalid(e.Span)
		}
		return c.resolveCall(v.Set, c.table.OverloadMembers(v.Set), v.Recv, args, argTypes, e.Span)
	default:
		if c.table.Types.IsUnknown(callee.Type()) {
			return c.invalid(e.Span)
		}
		c.errorf(diag.ExpressionIsNotCallable, callee.Span(), locale.Args{})
		return c.invalid(e.Span)
	}
}

// resolveCall picks the overload and builds the call node, inserting an
// implicit dereference for every by-value argument passed a reference.
func (c *checker) resolveCall(named symbols.SymbolID, candidates []symbols.SymbolID,
	recv hir.Expr, args []hir.Expr, argTypes []types.TypeID, sp source.Span) hir.Expr {
	namedSym := c.table.Symbol(named)
	kind := entityKind(namedSym.Kind)
	chosen, ties, status := c.table.ResolveOverload(candidates, argTypes)
	switch status {
	case symbols.ResolveNoMatch:
		c.errorf(diag.InvalidCallArguments, sp, locale.Args{
			Kind: kind,
			Name: c.name(namedSym.Name),
		})
		return c.invalid(sp)
	case symbols.ResolveAmbiguous:
		d := diag.NewError(diag.AmbiguousOverloadedCall, sp,
			c.msgs.Format(diag.AmbiguousOverloadedCall, locale.Args{
				Kind: kind,
				Name: c.name(namedSym.Name),
			}))
		for _, t := range ties {
			d = d.WithNote(c.table.Symbol(t).Span, c.msgs.Candidate(c.table.SignatureString(t)))
		}
		c.report(d)
		return c.invalid(sp)
	}
	sig := c.table.Symbol(chosen).Sig
	converted := make([]hir.Expr, len(args))
	for i, a := range args {
		conv, _ := c.convert(a, sig.ParamTypes[i])
		converted[i] = conv
	}
	if recv != nil {
		return &hir.MethodCall{Meta: hir.At(sig.Result, sp), Method: chosen, Recv: recv, Args: converted}
	}
	return &hir.Call{Meta: hir.At(sig.Result, sp), Fn: chosen, Args: converted}
}

// castExpr handles `T(...)`: constructor calls, including the single-
// argument conversion form that may also go through a named conversion
// method such as toDouble.
func (c *checker) castExpr(target *hir.TypeRef, args []hir.Expr, argTypes []types.TypeID, sp source.Span) hir.Expr {
	t := target.Target
	ctors := c.table.Constructors(t)
	chosen, ties, status := c.table.ResolveOverload(ctors, argTypes)
	if status == symbols.ResolveOK {
		sig := c.table.Symbol(chosen).Sig
		converted := make([]hir.Expr, len(args))
		for i, a := range args {
			conv, _ := c.convert(a, sig.ParamTypes[i])
			converted[i] = conv
		}
		return &hir.Call{Meta: hir.At(t, sp), Fn: chosen, Args: converted}
	}
	if status == symbols.ResolveAmbiguous {
		d := diag.NewError(diag.AmbiguousOverloadedCall, sp,
			c.msgs.Format(diag.AmbiguousOverloadedCall, locale.Args{
				Kind: locale.KindConstructor,
				Name: c.table.Types.Name(t),
			}))
		for _, tie := range ties {
			d = d.WithNote(c.table.Symbol(tie).Span, c.msgs.Candidate(c.table.SignatureString(tie)))
		}
		c.report(d)
		return c.invalid(sp)
	}
	if len(args) != 1 {
		c.errorf(diag.InvalidCallArguments, sp, locale.Args{
			Kind: locale.KindConstructor,
			Name: c.table.Types.Name(t),
		})
		return c.invalid(sp)
	}
	// Named conversion: a method of the source type called to<Target>.
	srcType := argTypes[0]
	convName := c.table.Strings.Intern("to" + titleCase(c.table.Types.Name(t)))
	if member, ok := c.table.Member(srcType, convName); ok {
		mchosen, _, mstatus := c.table.ResolveOverload(c.table.OverloadMembers(member), nil)
		if mstatus == symbols.ResolveOK {
			sig := c.table.Symbol(mchosen).Sig
			if sig.Result != t {
				c.errorf(diag.InvalidConversionReturnType, sp, locale.Args{
					TypeName:   c.table.Types.Name(sig.Result),
					SecondType: c.table.Types.Name(t),
				})
				return c.invalid(sp)
			}
			return &hir.MethodCall{Meta: hir.At(t, sp), Method: mchosen, Recv: args[0]}
		}
	}
	c.errorf(diag.NoTypeConversionFunction, sp, locale.Args{
		TypeName:   c.table.Types.Name(srcType),
		SecondType: c.table.Types.Name(t),
	})
	return c.invalid(sp)
}

// --- operators ---

// operatorMethod maps an operator token to the method it desugars to.
func operatorMethod(op token.Kind) string {
	switch op {
	case token.Plus:
		return "plus"
	case token.Minus:
		return "minus"
	case token.Star:
		return "times"
	case token.Slash:
		return "div"
	case token.Lt:
		return "lessThan"
	case token.Gt:
		return "greaterThan"
	case token.Le:
		return "lessOrEquals"
	case token.Ge:
		return "greaterOrEquals"
	case token.EqEq:
		return "equals"
	case token.NotEq:
		return "notEquals"
	case token.AmpAmp:
		return "and"
	case token.PipePipe:
		return "or"
	case token.Assign:
		return "assign"
	case token.Bang:
		return "not"
	default:
		return ""
	}
}

func (c *checker) infixExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	if e.Op == token.Assign {
		return c.assignExpr(scope, e, ctx)
	}
	left := c.checkValue(c.expr(scope, e.Left, ctx))
	right := c.checkValue(c.expr(scope, e.Right, ctx))
	if c.table.Types.IsUnknown(left.Type()) || c.table.Types.IsUnknown(right.Type()) {
		return c.invalid(e.Span)
	}
	return c.operatorCall(left, e.Op, []hir.Expr{right}, e.Span)
}

func (c *checker) assignExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	left := c.checkValue(c.expr(scope, e.Left, ctx))
	right := c.checkValue(c.expr(scope, e.Right, ctx))
	if c.table.Types.IsUnknown(left.Type()) || c.table.Types.IsUnknown(right.Type()) {
		return c.invalid(e.Span)
	}
	if !c.table.Types.IsReference(left.Type()) {
		// Assignment is a method of reference types only: an rvalue on the
		// left has nothing to assign into.
		c.errorf(diag.UndefinedOperator, e.Span, locale.Args{
			Text:     "=",
			TypeName: c.table.Types.Name(left.Type()),
		})
		return c.invalid(e.Span)
	}
	return c.operatorCall(left, token.Assign, []hir.Expr{right}, e.Span)
}

// operatorCall desugars an operator application to a method call on the
// left (or only) operand.
func (c *checker) operatorCall(left hir.Expr, op token.Kind, args []hir.Expr, sp source.Span) hir.Expr {
	name := c.table.Strings.Intern(operatorMethod(op))
	member, ok := c.table.Member(left.Type(), name)
	if !ok {
		c.errorf(diag.UndefinedOperator, sp, locale.Args{
			Text:     strings.Trim(op.String(), "'"),
			TypeName: c.table.Types.Name(c.table.Types.Elem(left.Type())),
		})
		return c.invalid(sp)
	}
	argTypes := make([]types.TypeID, len(args))
	for i, a := range args {
		argTypes[i] = a.Type()
	}
	return c.resolveCall(member, c.table.OverloadMembers(member), left, args, argTypes, sp)
}

func (c *checker) prefixExpr(scope symbols.ScopeID, e *ast.Expr, ctx *bodyCtx) hir.Expr {
	// A minus folded onto a literal is a negative constant, which is the
	// only way a too-small literal can be spelled.
	if e.Op == token.Minus {
		inner := c.builder.Expr(e.Inner)
		if inner != nil {
			switch inner.Kind {
			case ast.ExprIntLit:
				return c.intLit(inner.Text, e.Span, true)
			case ast.ExprFloatLit:
				return c.doubleLit(inner.Text, e.Span, true)
			}
		}
	}
	operand := c.checkValue(c.expr(scope, e.Inner, ctx))
	if c.table.Types.IsUnknown(operand.Type()) {
		return c.invalid(e.Span)
	}
	op := e.Op
	if op == token.Minus {
		return c.unaryCall(operand, "unaryMinus", "-", e.Span)
	}
	return c.unaryCall(operand, "not", "!", e.Span)
}

func (c *checker) unaryCall(operand hir.Expr, method, opText string, sp source.Span) hir.Expr {
	name := c.table.Strings.Intern(method)
	member, ok := c.table.Member(operand.Type(), name)
	if !ok {
		c.errorf(diag.UndefinedOperator, sp, locale.Args{
			Text:     opText,
			TypeName: c.table.Types.Name(c.table.Types.Elem(operand.Type())),
		})
		return c.invalid(sp)
	}
	return c.resolveCall(member, c.table.OverloadMembers(member), operand, nil, nil, sp)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
