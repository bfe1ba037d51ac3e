package token

import (
	"co/internal/source"
)

// Kind enumerates CO token kinds.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident
	IntLit
	FloatLit

	// Keywords
	KwType
	KwNative
	KwIf
	KwElse
	KwWhile
	KwReturn
	KwThis
	KwTrue
	KwFalse
	KwVoid

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	Comma
	Semicolon
	Dot
	Amp

	// Operators
	Plus
	Minus
	Star
	Slash
	Lt
	Gt
	Le
	Ge
	EqEq
	NotEq
	AmpAmp
	PipePipe
	Assign
	Bang
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "end of file",
	Ident:     "identifier",
	IntLit:    "integer literal",
	FloatLit:  "floating-point literal",
	KwType:    "'type'",
	KwNative:  "'native'",
	KwIf:      "'if'",
	KwElse:    "'else'",
	KwWhile:   "'while'",
	KwReturn:  "'return'",
	KwThis:    "'this'",
	KwTrue:    "'true'",
	KwFalse:   "'false'",
	KwVoid:    "'void'",
	LParen:    "'('",
	RParen:    "')'",
	LBrace:    "'{'",
	RBrace:    "'}'",
	Comma:     "','",
	Semicolon: "';'",
	Dot:       "'.'",
	Amp:       "'&'",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
	Lt:        "'<'",
	Gt:        "'>'",
	Le:        "'<='",
	Ge:        "'>='",
	EqEq:      "'=='",
	NotEq:     "'!='",
	AmpAmp:    "'&&'",
	PipePipe:  "'||'",
	Assign:    "'='",
	Bang:      "'!'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwType && k <= KwVoid
}

var keywords = map[string]Kind{
	"type":   KwType,
	"native": KwNative,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"return": KwReturn,
	"this":   KwThis,
	"true":   KwTrue,
	"false":  KwFalse,
	"void":   KwVoid,
}

// LookupKeyword maps an identifier spelling to its keyword kind, if any.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// Token is one lexeme with its source span. Text is filled for identifiers
// and literals only.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}
