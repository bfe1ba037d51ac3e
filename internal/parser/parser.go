// Package parser builds the raw (lossless) CO syntax tree from a token
// stream. The parser always produces a tree: unparsable regions become
// Bad nodes carrying their spans, and parsing resumes at the next
// definition or statement boundary.
package parser

import (
	"co/internal/ast"
	"co/internal/diag"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/token"
)

type Parser struct {
	toks     []token.Token
	pos      int
	builder  *ast.Builder
	reporter diag.Reporter
	msgs     *locale.Catalog
}

func New(toks []token.Token, builder *ast.Builder, reporter diag.Reporter, msgs *locale.Catalog) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	if msgs == nil {
		msgs = locale.NewCatalog(locale.En)
	}
	return &Parser{
		toks:     toks,
		builder:  builder,
		reporter: reporter,
		msgs:     msgs,
	}
}

// ParseFile consumes the whole stream into the builder's File.
func (p *Parser) ParseFile() ast.File {
	var items []ast.ItemID
	start := p.peek().Span
	for !p.at(token.EOF) {
		before := p.pos
		item := p.parseItem()
		if item.IsValid() {
			items = append(items, item)
		}
		if p.pos == before {
			// No progress: drop the token so a stray symbol cannot loop forever.
			p.advance()
		}
	}
	file := ast.File{
		Items: items,
		Span:  start.Cover(p.peek().Span),
	}
	p.builder.File = file
	return file
}

// --- token helpers ---

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the token or reports E0010 at the current position.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if tok, ok := p.accept(kind); ok {
		return tok, true
	}
	p.errorUnexpected()
	return token.Token{Kind: token.Invalid, Span: p.peek().Span.Before()}, false
}

// expectClosing is like expect but reports E0008 naming the delimiter.
func (p *Parser) expectClosing(kind token.Kind) (token.Token, bool) {
	if tok, ok := p.accept(kind); ok {
		return tok, true
	}
	p.report(diag.MissingClosingDelimiter, p.peek().Span.Before(), locale.Args{Text: kind.String()})
	return token.Token{Kind: token.Invalid, Span: p.peek().Span.Before()}, false
}

// expectName consumes an identifier; a keyword in its place gets E0009.
func (p *Parser) expectName() (token.Token, bool) {
	if tok, ok := p.accept(token.Ident); ok {
		return tok, true
	}
	if p.peek().Kind.IsKeyword() {
		p.report(diag.KeywordAsIdentifier, p.peek().Span, locale.Args{Text: p.peek().Kind.String()})
		return p.advance(), false
	}
	p.errorUnexpected()
	return token.Token{Kind: token.Invalid, Span: p.peek().Span.Before()}, false
}

func (p *Parser) errorUnexpected() {
	p.report(diag.UnexpectedToken, p.peek().Span, locale.Args{Text: p.peek().Kind.String()})
}

func (p *Parser) report(code diag.Code, sp source.Span, a locale.Args) {
	p.reporter.Report(diag.NewError(code, sp, p.msgs.Format(code, a)))
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.builder.Strings.Intern(tok.Text)
}

// --- type expressions ---

// parseTypeExpr parses `Ident {'&'}` or `void {'&'}`.
func (p *Parser) parseTypeExpr() ast.TypeExprID {
	var id ast.TypeExprID
	start := p.peek().Span
	switch p.peek().Kind {
	case token.KwVoid:
		tok := p.advance()
		id = p.builder.AddType(ast.TypeExpr{Kind: ast.TypeExprVoid, Span: tok.Span})
	case token.Ident:
		tok := p.advance()
		id = p.builder.AddType(ast.TypeExpr{
			Kind: ast.TypeExprName,
			Span: tok.Span,
			Name: p.intern(tok),
		})
	default:
		p.errorUnexpected()
		return p.builder.AddType(ast.TypeExpr{Kind: ast.TypeExprBad, Span: start.Before()})
	}
	for {
		// '&&' in type position is two reference markers.
		wraps := 0
		var ampSpan source.Span
		if amp, ok := p.accept(token.Amp); ok {
			wraps, ampSpan = 1, amp.Span
		} else if amp, ok := p.accept(token.AmpAmp); ok {
			wraps, ampSpan = 2, amp.Span
		}
		if wraps == 0 {
			return id
		}
		for range wraps {
			id = p.builder.AddType(ast.TypeExpr{
				Kind: ast.TypeExprRef,
				Span: start.Cover(ampSpan),
				Elem: id,
			})
		}
	}
}
