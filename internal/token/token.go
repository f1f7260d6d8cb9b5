// Package token defines the lexical token kinds and the Token type shared
// by the lexer and parser.
package token

import "chai/internal/source"

// Kind is the kind of a lexical token, per spec.md §3.
type Kind int

const (
	// Identifiers.
	Name Kind = iota

	// Keywords.
	KwVal
	KwVar
	KwFun
	KwNew
	KwDel
	KwType
	KwView
	KwExtn
	KwIf
	KwMatch
	KwCase
	KwWhere
	KwRet
	KwBreak
	KwContinue
	KwAsync
	KwAwait
	KwFor
	KwWhile
	KwPub
	KwMod
	KwMut
	KwInfix
	KwPrefix
	KwPostfix
	KwVolatile
	KwStatic
	KwMoveonly
	KwCast

	// Literals.
	IntLit
	FloatLit
	BoolLit
	StringLit

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBrack
	RBrack
	LAngle
	RAngle
	Comma
	Semi
	Colon
	TwoColons
	Dot
	Arrow
	Assign
	Under

	// Generic infix/prefix/postfix operator spelling.
	Oper

	// End of input. Emitted by the lexer, never held onto by the parser's
	// lookahead buffer beyond the final `take`.
	EOF

	// Error token: an unrecognized byte. Lexing continues past it.
	Error
)

// Keywords maps the exact keyword spelling to its token kind.
var Keywords = map[string]Kind{
	"val":      KwVal,
	"var":      KwVar,
	"fun":      KwFun,
	"new":      KwNew,
	"del":      KwDel,
	"type":     KwType,
	"view":     KwView,
	"extn":     KwExtn,
	"if":       KwIf,
	"match":    KwMatch,
	"case":     KwCase,
	"where":    KwWhere,
	"ret":      KwRet,
	"break":    KwBreak,
	"continue": KwContinue,
	"async":    KwAsync,
	"await":    KwAwait,
	"for":      KwFor,
	"while":    KwWhile,
	"pub":      KwPub,
	"mod":      KwMod,
	"mut":      KwMut,
	"infix":    KwInfix,
	"prefix":   KwPrefix,
	"postfix":  KwPostfix,
	"volatile": KwVolatile,
	"static":   KwStatic,
	"moveonly": KwMoveonly,
	"cast":     KwCast,
}

// Punct maps exact, non-operator punctuation spellings to their kind. Note
// that `<` and `>` are lexed as LAngle/RAngle rather than as Oper — the
// parser's takeOperator glues them with adjacent Oper tokens when they are
// textually contiguous (spec.md §4.D).
var Punct = map[string]Kind{
	"(":  LParen,
	")":  RParen,
	"{":  LBrace,
	"}":  RBrace,
	"[":  LBrack,
	"]":  RBrack,
	"<":  LAngle,
	">":  RAngle,
	",":  Comma,
	";":  Semi,
	":":  Colon,
	"::": TwoColons,
	".":  Dot,
	"->": Arrow,
	"=":  Assign,
	"_":  Under,
}

// Token is a single lexical token: a kind, its source range, and (for
// identifiers, literals, and operators) the literal text it covers.
type Token struct {
	Kind  Kind
	Value string
	Range source.Range
}

// IsKeyword reports whether k is one of the reserved keyword kinds.
func (k Kind) IsKeyword() bool {
	return KwVal <= k && k <= KwCast
}

// String renders a human-readable name for diagnostics, e.g. "`val`" or
// "end of file".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "<unknown token>"
}

var kindNames = func() map[Kind]string {
	m := map[Kind]string{
		Name:      "identifier",
		IntLit:    "integer literal",
		FloatLit:  "float literal",
		BoolLit:   "bool literal",
		StringLit: "string literal",
		Oper:      "operator",
		EOF:       "end of file",
		Error:     "invalid token",
	}
	for spelling, kind := range Keywords {
		m[kind] = "`" + spelling + "`"
	}
	for spelling, kind := range Punct {
		m[kind] = "`" + spelling + "`"
	}
	return m
}()
