package lexer

import (
	"strconv"
	"unicode"

	"github.com/silica-lang/silica/internal/diag"
)

// Scanner turns source text into tokens. It is consumed through a Cursor;
// the parser never touches it directly.
type Scanner struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // line of the current rune (1-based)
	column   int  // column of the current rune (1-based)
	filename string
}

// NewScanner creates a scanner over input.
func NewScanner(input string) *Scanner {
	s := &Scanner{
		input:  []rune(input),
		pos:    -1,
		line:   1,
		column: 0,
	}
	s.read()
	return s
}

// SetFilename attributes all emitted spans to the provided filename.
func (s *Scanner) SetFilename(name string) {
	s.filename = name
}

// read advances the scanner to the next rune, keeping line/column aligned
// with the rune at pos.
func (s *Scanner) read() {
	prev := s.pos
	s.pos++
	if s.pos >= len(s.input) {
		if prev >= 0 && prev < len(s.input) && s.input[prev] == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
		s.ch = 0
		return
	}
	s.ch = s.input[s.pos]
	if prev >= 0 && s.input[prev] == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

// peek returns the next rune without advancing.
func (s *Scanner) peek() rune {
	if s.pos+1 >= len(s.input) {
		return 0
	}
	return s.input[s.pos+1]
}

func (s *Scanner) markStart() (line, column, pos int) {
	return s.line, s.column, s.pos
}

func (s *Scanner) spanFrom(line, column, pos int) Span {
	return Span{
		Filename: s.filename,
		Line:     line,
		Column:   column,
		Start:    pos,
		End:      s.pos,
	}
}

func (s *Scanner) makeToken(kind Kind, line, column, pos int, value string) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Span:  s.spanFrom(line, column, pos),
	}
}

func (s *Scanner) scanError(code diag.Code, span Span, msg string) error {
	return diag.New(diag.StageScanner, code, span, msg)
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
			s.read()
		}
		if s.ch == '/' && s.peek() == '/' {
			for s.ch != '\n' && s.ch != 0 {
				s.read()
			}
			continue
		}
		return
	}
}

func (s *Scanner) readIdentifier() string {
	start := s.pos
	for isLetter(s.ch) || isDigit(s.ch) {
		s.read()
	}
	return string(s.input[start:s.pos])
}

// readNumber reads a number literal: decimal, hex 0x..., or binary 0b...,
// with underscore separators permitted.
func (s *Scanner) readNumber() string {
	start := s.pos
	if s.ch == '0' && (s.peek() == 'x' || s.peek() == 'X') {
		s.read()
		s.read()
		for isHexDigit(s.ch) || s.ch == '_' {
			s.read()
		}
		return string(s.input[start:s.pos])
	}
	if s.ch == '0' && (s.peek() == 'b' || s.peek() == 'B') {
		s.read()
		s.read()
		for s.ch == '0' || s.ch == '1' || s.ch == '_' {
			s.read()
		}
		return string(s.input[start:s.pos])
	}
	for isDigit(s.ch) || s.ch == '_' {
		s.read()
	}
	return string(s.input[start:s.pos])
}

// readChar reads a character literal; the cursor sits on the opening quote.
func (s *Scanner) readChar(line, column, pos int) (Token, error) {
	s.read() // opening quote
	var value rune
	switch s.ch {
	case 0, '\n':
		return Token{}, s.scanError(diag.CodeScanUnterminatedChar,
			s.spanFrom(line, column, pos), "unterminated character literal")
	case '\\':
		s.read()
		switch s.ch {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '\\':
			value = '\\'
		case '\'':
			value = '\''
		case '0':
			value = 0
		default:
			return Token{}, s.scanError(diag.CodeScanUnterminatedChar,
				s.spanFrom(line, column, pos),
				"unrecognized escape in character literal: "+strconv.QuoteRune(s.ch))
		}
	default:
		value = s.ch
	}
	s.read()
	if s.ch != '\'' {
		return Token{}, s.scanError(diag.CodeScanUnterminatedChar,
			s.spanFrom(line, column, pos), "unterminated character literal")
	}
	s.read() // closing quote
	return s.makeToken(KindChar, line, column, pos, string(value)), nil
}

// Next returns the next token. The first malformed construct fails the scan.
func (s *Scanner) Next() (Token, error) {
	s.skipWhitespaceAndComments()

	line, column, pos := s.markStart()

	switch {
	case s.ch == 0:
		if column == 0 {
			column = 1
		}
		return s.makeToken(KindEOF, line, column, pos, ""), nil

	case isLetter(s.ch):
		ident := s.readIdentifier()
		tok := s.makeToken(KindIdent, line, column, pos, ident)
		if kw, ok := LookupKeyword(ident); ok {
			tok.Kind = KindKeyword
			tok.Keyword = kw
		}
		return tok, nil

	case isDigit(s.ch):
		value := s.readNumber()
		if !validNumber(value) {
			return Token{}, s.scanError(diag.CodeScanBadNumber,
				s.spanFrom(line, column, pos),
				"malformed number literal "+strconv.Quote(value))
		}
		return s.makeToken(KindNumber, line, column, pos, value), nil

	case s.ch == '\'':
		return s.readChar(line, column, pos)
	}

	// Operator and delimiter tokens, longest match first.
	emit := func(kind Kind, n int) (Token, error) {
		for i := 0; i < n; i++ {
			s.read()
		}
		return s.makeToken(kind, line, column, pos, string(kind)), nil
	}

	switch s.ch {
	case '+':
		if s.peek() == '+' {
			return emit(KindDoublePlus, 2)
		}
		return emit(KindPlus, 1)
	case '-':
		if s.peek() == '>' {
			return emit(KindArrow, 2)
		}
		return emit(KindMinus, 1)
	case '*':
		return emit(KindStar, 1)
	case '/':
		return emit(KindSlash, 1)
	case '%':
		return emit(KindPercent, 1)
	case '&':
		if s.peek() == '&' {
			return emit(KindDoubleAmp, 2)
		}
		return emit(KindAmp, 1)
	case '|':
		if s.peek() == '|' {
			return emit(KindDoubleBar, 2)
		}
		return emit(KindBar, 1)
	case '^':
		return emit(KindHat, 1)
	case '!':
		if s.peek() == '=' {
			return emit(KindBangEq, 2)
		}
		return emit(KindBang, 1)
	case '=':
		switch s.peek() {
		case '=':
			return emit(KindDoubleEq, 2)
		case '>':
			return emit(KindFatArrow, 2)
		}
		return emit(KindEq, 1)
	case '<':
		switch s.peek() {
		case '<':
			return emit(KindDoubleOAngle, 2)
		case '=':
			return emit(KindOAngleEq, 2)
		}
		return emit(KindOAngle, 1)
	case '>':
		if s.peek() == '>' {
			if s.pos+2 < len(s.input) && s.input[s.pos+2] == '>' {
				return emit(KindTripleCAngle, 3)
			}
			return emit(KindDoubleCAngle, 2)
		}
		if s.peek() == '=' {
			return emit(KindCAngleEq, 2)
		}
		return emit(KindCAngle, 1)
	case ':':
		if s.peek() == ':' {
			return emit(KindDoubleColon, 2)
		}
		return emit(KindColon, 1)
	case ';':
		return emit(KindSemi, 1)
	case ',':
		return emit(KindComma, 1)
	case '.':
		if s.peek() == '.' && s.pos+2 < len(s.input) && s.input[s.pos+2] == '.' {
			return emit(KindEllipsis, 3)
		}
		return emit(KindDot, 1)
	case '#':
		if s.peek() == '!' {
			return emit(KindHashBang, 2)
		}
	case '(':
		return emit(KindOParen, 1)
	case ')':
		return emit(KindCParen, 1)
	case '{':
		return emit(KindOBrace, 1)
	case '}':
		return emit(KindCBrace, 1)
	case '[':
		return emit(KindOBrack, 1)
	case ']':
		return emit(KindCBrack, 1)
	}

	bad := s.ch
	s.read()
	return Token{}, s.scanError(diag.CodeScanIllegalRune,
		s.spanFrom(line, column, pos),
		"illegal character "+strconv.QuoteRune(bad))
}

// validNumber rejects radix prefixes with no digits after them, e.g. a bare
// `0x`. Underscore placement is otherwise unrestricted.
func validNumber(value string) bool {
	if len(value) < 2 || value[0] != '0' {
		return true
	}
	switch value[1] {
	case 'x', 'X', 'b', 'B':
		for _, ch := range value[2:] {
			if ch != '_' {
				return true
			}
		}
		return false
	}
	return true
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'f') ||
		(ch >= 'A' && ch <= 'F')
}
