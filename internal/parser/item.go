package parser

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/token"
)

// parseItem parses one global definition: a type, a free function or a
// group of global variables.
func (p *Parser) parseItem() ast.ItemID {
	start := p.peek().Span
	native, nativeSpan := p.parseSpecifiers()

	if p.at(token.KwType) {
		return p.parseTypeDef(start, native, nativeSpan)
	}
	if !p.at(token.Ident) && !p.at(token.KwVoid) {
		p.report(diag.ExpectedDefinition, p.peek().Span, locale.Args{})
		p.recoverItem()
		return ast.NoItemID
	}

	typ := p.parseTypeExpr()
	nameTok, nameOK := p.expectName()
	if !nameOK {
		p.recoverItem()
		return ast.NoItemID
	}
	marker, markerSpan := p.acceptRefMarker()

	if p.at(token.LParen) {
		return p.parseFuncDef(start, native, nativeSpan, typ, nameTok, marker, markerSpan)
	}
	if marker {
		// '&' on a plain variable name never parses into anything else.
		p.report(diag.UnexpectedToken, markerSpan, locale.Args{Text: token.Amp.String()})
	}
	return p.parseVarsDef(start, typ, nameTok)
}

// parseSpecifiers consumes the 'native' specifier and flags unknown words
// standing where a specifier would.
func (p *Parser) parseSpecifiers() (bool, source.Span) {
	native := false
	var span source.Span
	for {
		if tok, ok := p.accept(token.KwNative); ok {
			native = true
			span = tok.Span
			continue
		}
		// `inline type T {...}` — a stray word in specifier position.
		if p.at(token.Ident) && (p.peekAt(1).Kind == token.KwType || p.peekAt(1).Kind == token.KwNative) {
			p.report(diag.UnknownSpecifier, p.peek().Span, locale.Args{Text: p.peek().Text})
			p.advance()
			continue
		}
		return native, span
	}
}

func (p *Parser) acceptRefMarker() (bool, source.Span) {
	if tok, ok := p.accept(token.Amp); ok {
		return true, tok.Span
	}
	return false, source.Span{}
}

func (p *Parser) parseTypeDef(start source.Span, native bool, nativeSpan source.Span) ast.ItemID {
	p.advance() // 'type'
	nameTok, nameOK := p.expectName()
	if !nameOK {
		p.recoverItem()
		return ast.NoItemID
	}
	if _, ok := p.expect(token.LBrace); !ok {
		p.recoverItem()
		return ast.NoItemID
	}
	var members []ast.Member
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if m, ok := p.parseMember(nameTok.Text); ok {
			members = append(members, m)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end, _ := p.expectClosing(token.RBrace)
	return p.builder.AddItem(ast.Item{
		Kind:       ast.ItemType,
		Span:       start.Cover(end.Span),
		Name:       p.intern(nameTok),
		NameSpan:   nameTok.Span,
		Native:     native,
		NativeSpan: nativeSpan,
		Members:    members,
	})
}

// parseMember parses a field, method or constructor. A member spelled with
// the container's name directly followed by '(' is a constructor.
func (p *Parser) parseMember(typeName string) (ast.Member, bool) {
	start := p.peek().Span
	native, nativeSpan := p.parseSpecifiers()

	if p.at(token.Ident) && p.peek().Text == typeName && p.peekAt(1).Kind == token.LParen {
		nameTok := p.advance()
		params := p.parseParamList()
		body := p.parseBodyOrSemicolon()
		return ast.Member{
			Kind:       ast.MemberConstructor,
			Span:       start.Cover(p.lastSpan()),
			Native:     native,
			NativeSpan: nativeSpan,
			Name:       p.intern(nameTok),
			NameSpan:   nameTok.Span,
			Params:     params,
			Body:       body,
		}, true
	}

	if !p.at(token.Ident) && !p.at(token.KwVoid) {
		p.errorUnexpected()
		return ast.Member{}, false
	}
	typ := p.parseTypeExpr()
	nameTok, nameOK := p.expectName()
	if !nameOK {
		p.recoverMember()
		return ast.Member{}, false
	}
	marker, markerSpan := p.acceptRefMarker()

	if p.at(token.LParen) {
		params := p.parseParamList()
		body := p.parseBodyOrSemicolon()
		return ast.Member{
			Kind:       ast.MemberMethod,
			Span:       start.Cover(p.lastSpan()),
			Native:     native,
			NativeSpan: nativeSpan,
			Return:     typ,
			Name:       p.intern(nameTok),
			NameSpan:   nameTok.Span,
			RefMarker:  marker,
			MarkerSpan: markerSpan,
			Params:     params,
			Body:       body,
		}, true
	}
	if marker {
		p.report(diag.UnexpectedToken, markerSpan, locale.Args{Text: token.Amp.String()})
	}
	decls := p.parseDeclList(nameTok)
	return ast.Member{
		Kind:      ast.MemberField,
		Span:      start.Cover(p.lastSpan()),
		FieldType: typ,
		Decls:     decls,
	}, true
}

func (p *Parser) parseFuncDef(start source.Span, native bool, nativeSpan source.Span,
	ret ast.TypeExprID, nameTok token.Token, marker bool, markerSpan source.Span) ast.ItemID {
	params := p.parseParamList()
	body := p.parseBodyOrSemicolon()
	return p.builder.AddItem(ast.Item{
		Kind:       ast.ItemFunc,
		Span:       start.Cover(p.lastSpan()),
		Name:       p.intern(nameTok),
		NameSpan:   nameTok.Span,
		Native:     native,
		NativeSpan: nativeSpan,
		Return:     ret,
		RefMarker:  marker,
		MarkerSpan: markerSpan,
		Params:     params,
		Body:       body,
	})
}

func (p *Parser) parseVarsDef(start source.Span, typ ast.TypeExprID, nameTok token.Token) ast.ItemID {
	decls := p.parseDeclList(nameTok)
	return p.builder.AddItem(ast.Item{
		Kind:     ast.ItemVars,
		Span:     start.Cover(p.lastSpan()),
		VarsType: typ,
		Decls:    decls,
	})
}

// parseDeclList parses `name [= expr] {, name [= expr]} ;` with the first
// name already consumed.
func (p *Parser) parseDeclList(first token.Token) []ast.VarDecl {
	decls := []ast.VarDecl{p.parseDeclTail(first)}
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		nameTok, ok := p.expectName()
		if !ok {
			break
		}
		decls = append(decls, p.parseDeclTail(nameTok))
	}
	p.expect(token.Semicolon)
	return decls
}

func (p *Parser) parseDeclTail(nameTok token.Token) ast.VarDecl {
	decl := ast.VarDecl{
		Name:     p.intern(nameTok),
		NameSpan: nameTok.Span,
	}
	if eq, ok := p.accept(token.Assign); ok {
		if p.at(token.Semicolon) || p.at(token.Comma) {
			p.report(diag.MissingVariableInitializer, eq.Span.After(), locale.Args{})
			decl.Init = p.builder.AddExpr(ast.Expr{Kind: ast.ExprBad, Span: eq.Span.After()})
		} else {
			decl.Init = p.parseExpr()
		}
	}
	return decl
}

// parseParamList parses '(' param {',' param} ')'.
func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen)
	var params []ast.Param
	if p.at(token.RParen) {
		p.advance()
		return params
	}
	for {
		start := p.peek().Span
		typ := p.parseTypeExpr()
		nameTok, ok := p.expectName()
		if !ok {
			break
		}
		params = append(params, ast.Param{
			Type:     typ,
			Name:     p.intern(nameTok),
			NameSpan: nameTok.Span,
			Span:     start.Cover(nameTok.Span),
		})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expectClosing(token.RParen)
	return params
}

// parseBodyOrSemicolon parses a block body or the ';' of a bodiless
// definition.
func (p *Parser) parseBodyOrSemicolon() ast.StmtID {
	if p.at(token.LBrace) {
		return p.parseBlock()
	}
	p.expect(token.Semicolon)
	return ast.NoStmtID
}

func (p *Parser) lastSpan() source.Span {
	if p.pos == 0 {
		return p.peek().Span
	}
	return p.toks[p.pos-1].Span
}

// recoverItem skips to the start of the next plausible global definition.
func (p *Parser) recoverItem() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		case token.KwType, token.KwNative:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}

// recoverMember skips to the next member boundary inside a type body.
func (p *Parser) recoverMember() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}
