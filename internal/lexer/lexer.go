// Package lexer turns CO source text into a token stream.
package lexer

import (
	"strconv"

	"co/internal/diag"
	"co/internal/locale"
	"co/internal/source"
	"co/internal/token"
)

// Lexer scans one file. Diagnostics go to the reporter; the stream always
// terminates with an EOF token so the parser never runs off the end.
type Lexer struct {
	file     source.FileID
	src      []byte
	pos      uint32
	reporter diag.Reporter
	msgs     *locale.Catalog
}

func New(file *source.File, reporter diag.Reporter, msgs *locale.Catalog) *Lexer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	if msgs == nil {
		msgs = locale.NewCatalog(locale.En)
	}
	return &Lexer{
		file:     file.ID,
		src:      file.Content,
		reporter: reporter,
		msgs:     msgs,
	}
}

func (lx *Lexer) report(code diag.Code, sp source.Span, text string) {
	lx.reporter.Report(diag.NewError(code, sp, lx.msgs.Format(code, locale.Args{Text: text})))
}

// Tokenize scans the whole file.
func (lx *Lexer) Tokenize() []token.Token {
	toks := make([]token.Token, 0, len(lx.src)/4+1)
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next scans a single token.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()
	start := lx.pos
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.span(start)}
	}
	c := lx.src[lx.pos]
	switch {
	case isIdentStart(c):
		return lx.scanIdent(start)
	case isDigit(c):
		return lx.scanNumber(start)
	}
	lx.pos++
	switch c {
	case '(':
		return lx.tok(token.LParen, start)
	case ')':
		return lx.tok(token.RParen, start)
	case '{':
		return lx.tok(token.LBrace, start)
	case '}':
		return lx.tok(token.RBrace, start)
	case ',':
		return lx.tok(token.Comma, start)
	case ';':
		return lx.tok(token.Semicolon, start)
	case '.':
		return lx.tok(token.Dot, start)
	case '+':
		return lx.tok(token.Plus, start)
	case '-':
		return lx.tok(token.Minus, start)
	case '*':
		return lx.tok(token.Star, start)
	case '/':
		return lx.tok(token.Slash, start)
	case '<':
		if lx.accept('=') {
			return lx.tok(token.Le, start)
		}
		return lx.tok(token.Lt, start)
	case '>':
		if lx.accept('=') {
			return lx.tok(token.Ge, start)
		}
		return lx.tok(token.Gt, start)
	case '=':
		if lx.accept('=') {
			return lx.tok(token.EqEq, start)
		}
		return lx.tok(token.Assign, start)
	case '!':
		if lx.accept('=') {
			return lx.tok(token.NotEq, start)
		}
		return lx.tok(token.Bang, start)
	case '&':
		if lx.accept('&') {
			return lx.tok(token.AmpAmp, start)
		}
		return lx.tok(token.Amp, start)
	case '|':
		if lx.accept('|') {
			return lx.tok(token.PipePipe, start)
		}
	}
	sp := lx.span(start)
	lx.report(diag.UnknownCharacter, sp, string(lx.src[start:lx.pos]))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.src[start:lx.pos])}
}

func (lx *Lexer) scanIdent(start uint32) token.Token {
	for !lx.eof() && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	text := string(lx.src[start:lx.pos])
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: lx.span(start), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: lx.span(start), Text: text}
}

// scanNumber scans decimal integer and floating-point literals. The numeric
// value is parsed later; here we validate the shape, check that integer
// digits fit an unsigned 64-bit value, and keep the text.
func (lx *Lexer) scanNumber(start uint32) token.Token {
	kind := token.IntLit
	for !lx.eof() && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	if !lx.eof() && lx.src[lx.pos] == '.' && lx.pos+1 < uint32(len(lx.src)) && isDigit(lx.src[lx.pos+1]) {
		kind = token.FloatLit
		lx.pos++
		for !lx.eof() && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	if !lx.eof() && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		kind = token.FloatLit
		lx.pos++
		if !lx.eof() && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		if lx.eof() || !isDigit(lx.src[lx.pos]) {
			sp := lx.span(start)
			lx.report(diag.InvalidExponent, sp, string(lx.src[start:lx.pos]))
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.src[start:lx.pos])}
		}
		for !lx.eof() && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	// A letter glued to a number is not a new token, it is a broken literal.
	if !lx.eof() && isIdentStart(lx.src[lx.pos]) {
		for !lx.eof() && isIdentPart(lx.src[lx.pos]) {
			lx.pos++
		}
		sp := lx.span(start)
		lx.report(diag.UnknownNumber, sp, string(lx.src[start:lx.pos]))
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.src[start:lx.pos])}
	}
	text := string(lx.src[start:lx.pos])
	if kind == token.IntLit {
		if _, err := strconv.ParseUint(text, 10, 64); err != nil {
			sp := lx.span(start)
			lx.report(diag.IntegerLiteralOutOfRange, sp, text)
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
	}
	return token.Token{Kind: kind, Span: lx.span(start), Text: text}
}

func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			lx.pos++
		case c == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		case c == '/' && lx.peekAt(1) == '*':
			lx.pos += 2
			for !lx.eof() {
				if lx.src[lx.pos] == '*' && lx.peekAt(1) == '/' {
					lx.pos += 2
					break
				}
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) tok(kind token.Kind, start uint32) token.Token {
	return token.Token{Kind: kind, Span: lx.span(start)}
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file, Start: start, End: lx.pos}
}

func (lx *Lexer) eof() bool {
	return int(lx.pos) >= len(lx.src)
}

func (lx *Lexer) accept(c byte) bool {
	if !lx.eof() && lx.src[lx.pos] == c {
		lx.pos++
		return true
	}
	return false
}

func (lx *Lexer) peekAt(n uint32) byte {
	if int(lx.pos+n) >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
