package parser

import (
	"co/internal/ast"
	"co/internal/token"
)

// parseBlock parses '{' {stmt} '}' into a block statement.
func (p *Parser) parseBlock() ast.StmtID {
	open, _ := p.expect(token.LBrace)
	var stmts []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s.IsValid() {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	end, _ := p.expectClosing(token.RBrace)
	return p.builder.AddStmt(ast.Stmt{
		Kind:  ast.StmtBlock,
		Span:  open.Span.Cover(end.Span),
		Stmts: stmts,
	})
}

func (p *Parser) parseStmt() ast.StmtID {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.Semicolon:
		// Empty statement: consume and produce nothing.
		p.advance()
		return ast.NoStmtID
	}
	if p.startsVarsDef() {
		return p.parseVarsStmt()
	}
	return p.parseExprStmt()
}

// startsVarsDef looks ahead for `Ident {'&'} Ident`, the start of a local
// variables definition. Everything else starting with a name is an
// expression.
func (p *Parser) startsVarsDef() bool {
	if p.at(token.KwVoid) {
		return true
	}
	if !p.at(token.Ident) {
		return false
	}
	// Only single '&' markers: `a && b` is an expression, and a statement
	// can never usefully declare a reference to a reference.
	j := 1
	for p.peekAt(j).Kind == token.Amp {
		j++
	}
	return p.peekAt(j).Kind == token.Ident
}

func (p *Parser) parseVarsStmt() ast.StmtID {
	start := p.peek().Span
	typ := p.parseTypeExpr()
	nameTok, ok := p.expectName()
	if !ok {
		return ast.NoStmtID
	}
	decls := p.parseDeclList(nameTok)
	return p.builder.AddStmt(ast.Stmt{
		Kind:  ast.StmtVars,
		Span:  start.Cover(p.lastSpan()),
		Type:  typ,
		Decls: decls,
	})
}

func (p *Parser) parseIf() ast.StmtID {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expectClosing(token.RParen)
	then := p.parseStmt()
	elseStmt := ast.NoStmtID
	if _, ok := p.accept(token.KwElse); ok {
		elseStmt = p.parseStmt()
	}
	return p.builder.AddStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: kw.Span.Cover(p.lastSpan()),
		Expr: cond,
		Then: then,
		Else: elseStmt,
	})
}

func (p *Parser) parseWhile() ast.StmtID {
	kw := p.advance()
	p.expect(token.LParen)
	cond := p.parseExpr()
	p.expectClosing(token.RParen)
	body := p.parseStmt()
	return p.builder.AddStmt(ast.Stmt{
		Kind: ast.StmtWhile,
		Span: kw.Span.Cover(p.lastSpan()),
		Expr: cond,
		Body: body,
	})
}

func (p *Parser) parseReturn() ast.StmtID {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon)
	return p.builder.AddStmt(ast.Stmt{
		Kind: ast.StmtReturn,
		Span: kw.Span.Cover(p.lastSpan()),
		Expr: value,
	})
}

func (p *Parser) parseExprStmt() ast.StmtID {
	start := p.peek().Span
	expr := p.parseExpr()
	p.expect(token.Semicolon)
	return p.builder.AddStmt(ast.Stmt{
		Kind: ast.StmtExpr,
		Span: start.Cover(p.lastSpan()),
		Expr: expr,
	})
}
