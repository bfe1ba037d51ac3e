package parser

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/token"
)

// Binding powers of the infix operators; higher binds tighter. '=' is the
// only right-associative operator.
func infixPrec(kind token.Kind) int {
	switch kind {
	case token.Star, token.Slash:
		return 70
	case token.Plus, token.Minus:
		return 60
	case token.Lt, token.Gt, token.Le, token.Ge:
		return 50
	case token.EqEq, token.NotEq:
		return 40
	case token.AmpAmp:
		return 30
	case token.PipePipe:
		return 20
	case token.Assign:
		return 10
	default:
		return 0
	}
}

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	left := p.parseUnary()
	for {
		op := p.peek()
		prec := infixPrec(op.Kind)
		if prec < minPrec {
			return left
		}
		p.advance()
		if !p.startsExpr() {
			p.report(diag.MissingRightOperand, op.Span, locale.Args{Text: op.Kind.String()})
			right := p.builder.AddExpr(ast.Expr{Kind: ast.ExprBad, Span: op.Span.After()})
			left = p.addInfix(op.Kind, left, right)
			return left
		}
		nextMin := prec + 1
		if op.Kind == token.Assign {
			nextMin = prec
		}
		right := p.parseBinary(nextMin)
		left = p.addInfix(op.Kind, left, right)
	}
}

func (p *Parser) addInfix(op token.Kind, left, right ast.ExprID) ast.ExprID {
	span := p.builder.Expr(left).Span.Cover(p.builder.Expr(right).Span)
	return p.builder.AddExpr(ast.Expr{
		Kind:  ast.ExprInfix,
		Span:  span,
		Op:    op,
		Left:  left,
		Right: right,
	})
}

// startsTypeRef looks ahead for `Ident {'&'} '('` with at least one
// marker, the only spelling where a type expression stands as a value.
func (p *Parser) startsTypeRef() bool {
	// Single markers only: `a && (b)` is a logical expression.
	j := 1
	for p.peekAt(j).Kind == token.Amp {
		j++
	}
	return j > 1 && p.peekAt(j).Kind == token.LParen
}

func (p *Parser) startsExpr() bool {
	switch p.peek().Kind {
	case token.IntLit, token.FloatLit, token.Ident, token.KwThis,
		token.KwTrue, token.KwFalse, token.LParen, token.Bang, token.Minus:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	switch p.peek().Kind {
	case token.Bang, token.Minus:
		op := p.advance()
		operand := p.parseUnary()
		return p.builder.AddExpr(ast.Expr{
			Kind:  ast.ExprPrefix,
			Span:  op.Span.Cover(p.builder.Expr(operand).Span),
			Op:    op.Kind,
			Inner: operand,
		})
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			if !p.at(token.RParen) {
				for {
					args = append(args, p.parseExpr())
					if _, ok := p.accept(token.Comma); !ok {
						break
					}
				}
			}
			end, _ := p.expectClosing(token.RParen)
			expr = p.builder.AddExpr(ast.Expr{
				Kind:   ast.ExprCall,
				Span:   p.builder.Expr(expr).Span.Cover(end.Span),
				Object: expr,
				Args:   args,
			})
		case token.Dot:
			p.advance()
			nameTok, ok := p.expectName()
			if !ok {
				return expr
			}
			expr = p.builder.AddExpr(ast.Expr{
				Kind:     ast.ExprMember,
				Span:     p.builder.Expr(expr).Span.Cover(nameTok.Span),
				Object:   expr,
				Name:     p.intern(nameTok),
				NameSpan: nameTok.Span,
			})
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprIntLit, Span: tok.Span, Text: tok.Text})
	case token.FloatLit:
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprFloatLit, Span: tok.Span, Text: tok.Text})
	case token.KwTrue:
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprBoolLit, Span: tok.Span, Bool: true})
	case token.KwFalse:
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprBoolLit, Span: tok.Span, Bool: false})
	case token.KwThis:
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprThis, Span: tok.Span})
	case token.Ident:
		// `Name&(` spells a reference type as a cast target.
		if p.startsTypeRef() {
			start := p.peek().Span
			typ := p.parseTypeExpr()
			return p.builder.AddExpr(ast.Expr{
				Kind:    ast.ExprTypeRef,
				Span:    start.Cover(p.lastSpan()),
				TypeRef: typ,
			})
		}
		p.advance()
		return p.builder.AddExpr(ast.Expr{Kind: ast.ExprName, Span: tok.Span, Name: p.intern(tok)})
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		end, _ := p.expectClosing(token.RParen)
		return p.builder.AddExpr(ast.Expr{
			Kind:  ast.ExprParen,
			Span:  tok.Span.Cover(end.Span),
			Inner: inner,
		})
	}
	p.report(diag.ExpectedExpression, tok.Span, locale.Args{})
	return p.builder.AddExpr(ast.Expr{Kind: ast.ExprBad, Span: tok.Span.Before()})
}
