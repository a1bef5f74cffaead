package lexer

import (
	"strconv"

	"github.com/silica-lang/silica/internal/diag"
)

// Kind identifies the lexical class of a token. The string value is the
// token's surface spelling where one exists, mirroring how tokens are named
// in error messages.
type Kind string

// Keyword is the payload of a KindKeyword token.
type Keyword string

// Span is the source range of a token or AST node.
type Span = diag.Span

const (
	KindEOF     Kind = "EOF"
	KindIdent   Kind = "identifier"
	KindNumber  Kind = "number"
	KindChar    Kind = "character"
	KindKeyword Kind = "keyword"

	KindPlus         Kind = "+"
	KindDoublePlus   Kind = "++"
	KindMinus        Kind = "-"
	KindStar         Kind = "*"
	KindSlash        Kind = "/"
	KindPercent      Kind = "%"
	KindAmp          Kind = "&"
	KindDoubleAmp    Kind = "&&"
	KindBar          Kind = "|"
	KindDoubleBar    Kind = "||"
	KindHat          Kind = "^"
	KindBang         Kind = "!"
	KindEq           Kind = "="
	KindDoubleEq     Kind = "=="
	KindBangEq       Kind = "!="
	KindOAngle       Kind = "<"
	KindOAngleEq     Kind = "<="
	KindCAngle       Kind = ">"
	KindCAngleEq     Kind = ">="
	KindDoubleOAngle Kind = "<<"
	KindDoubleCAngle Kind = ">>"
	KindTripleCAngle Kind = ">>>"
	KindArrow        Kind = "->"
	KindFatArrow     Kind = "=>"
	KindColon        Kind = ":"
	KindDoubleColon  Kind = "::"
	KindSemi         Kind = ";"
	KindComma        Kind = ","
	KindDot          Kind = "."
	KindEllipsis     Kind = "..."
	KindHashBang     Kind = "#!"
	KindOParen       Kind = "("
	KindCParen       Kind = ")"
	KindOBrace       Kind = "{"
	KindCBrace       Kind = "}"
	KindOBrack       Kind = "["
	KindCBrack       Kind = "]"
)

const (
	KwFn     Keyword = "fn"
	KwProc   Keyword = "proc"
	KwPub    Keyword = "pub"
	KwStruct Keyword = "struct"
	KwEnum   Keyword = "enum"
	KwType   Keyword = "type"
	KwConst  Keyword = "const"
	KwImport Keyword = "import"
	KwAs     Keyword = "as"
	KwIn     Keyword = "in"
	KwIf     Keyword = "if"
	KwElse   Keyword = "else"
	KwMatch  Keyword = "match"
	KwWhile  Keyword = "while"
	KwFor    Keyword = "for"
	KwLet    Keyword = "let"
	KwTest   Keyword = "test"
	KwCarry  Keyword = "carry"
	KwTrue   Keyword = "true"
	KwFalse  Keyword = "false"

	// Builtin type keywords requiring explicit dims; the sized forms
	// (u1..u64, s1..s64) are recognized structurally in LookupKeyword.
	KwBits Keyword = "bits"
	KwUN   Keyword = "uN"
	KwSN   Keyword = "sN"
	KwBool Keyword = "bool"
)

var keywords = map[string]Keyword{
	"fn":     KwFn,
	"proc":   KwProc,
	"pub":    KwPub,
	"struct": KwStruct,
	"enum":   KwEnum,
	"type":   KwType,
	"const":  KwConst,
	"import": KwImport,
	"as":     KwAs,
	"in":     KwIn,
	"if":     KwIf,
	"else":   KwElse,
	"match":  KwMatch,
	"while":  KwWhile,
	"for":    KwFor,
	"let":    KwLet,
	"test":   KwTest,
	"carry":  KwCarry,
	"true":   KwTrue,
	"false":  KwFalse,
	"bits":   KwBits,
	"uN":     KwUN,
	"sN":     KwSN,
	"bool":   KwBool,
}

// LookupKeyword reports whether ident is a keyword. Sized bit-vector type
// names (u1 through u64, s1 through s64) are keywords even though they are
// not enumerated in the keyword table.
func LookupKeyword(ident string) (Keyword, bool) {
	if kw, ok := keywords[ident]; ok {
		return kw, true
	}
	if isSizedTypeName(ident) {
		return Keyword(ident), true
	}
	return "", false
}

func isSizedTypeName(s string) bool {
	if len(s) < 2 || (s[0] != 'u' && s[0] != 's') {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return false
	}
	return n >= 1 && n <= 64
}

// IsTypeKeyword reports whether kw names a builtin bit-vector type.
func IsTypeKeyword(kw Keyword) bool {
	switch kw {
	case KwBits, KwUN, KwSN, KwBool:
		return true
	}
	return isSizedTypeName(string(kw))
}

// TypeKeywordNeedsDims reports whether kw is a builtin type that must carry
// an explicit dimension, e.g. bits[32].
func TypeKeywordNeedsDims(kw Keyword) bool {
	return kw == KwBits || kw == KwUN || kw == KwSN
}

// NumberKind distinguishes the surface form of a numeric literal.
type NumberKind int

const (
	NumberOther NumberKind = iota
	NumberBool
	NumberCharacter
)

// Token is a single lexical element. Keyword is meaningful only when Kind is
// KindKeyword.
type Token struct {
	Kind    Kind
	Keyword Keyword
	Value   string
	Span    Span
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(kw Keyword) bool {
	return t.Kind == KindKeyword && t.Keyword == kw
}

// IsTypeKeyword reports whether the token names a builtin type.
func (t Token) IsTypeKeyword() bool {
	return t.Kind == KindKeyword && IsTypeKeyword(t.Keyword)
}

// String renders the token the way error messages spell it.
func (t Token) String() string {
	switch t.Kind {
	case KindKeyword:
		return "keyword '" + string(t.Keyword) + "'"
	case KindIdent:
		return "identifier '" + t.Value + "'"
	case KindNumber, KindChar:
		return "'" + t.Value + "'"
	case KindEOF:
		return "end of input"
	default:
		return "'" + string(t.Kind) + "'"
	}
}
