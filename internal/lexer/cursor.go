package lexer

import (
	"github.com/silica-lang/silica/internal/diag"
)

// Cursor provides the token-level primitives the parser consumes: a single
// token of lookahead plus drop/try-drop operations over token kinds and
// keywords. The parser never inspects source text directly.
type Cursor struct {
	scanner   *Scanner
	lookahead *Token
}

// NewCursor creates a cursor over the given scanner.
func NewCursor(s *Scanner) *Cursor {
	return &Cursor{scanner: s}
}

// PeekToken returns the next token without consuming it.
func (c *Cursor) PeekToken() (Token, error) {
	if c.lookahead == nil {
		tok, err := c.scanner.Next()
		if err != nil {
			return Token{}, err
		}
		c.lookahead = &tok
	}
	return *c.lookahead, nil
}

// PopToken consumes and returns the next token.
func (c *Cursor) PopToken() (Token, error) {
	tok, err := c.PeekToken()
	if err != nil {
		return Token{}, err
	}
	c.lookahead = nil
	return tok, nil
}

// PopTokenOrError consumes the next token, requiring it to be of the given
// kind.
func (c *Cursor) PopTokenOrError(kind Kind) (Token, error) {
	tok, err := c.PeekToken()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, diag.Newf(diag.StageParser, diag.CodeParseExpectedToken,
			tok.Span, "expected '%s', found %s", kind, tok)
	}
	c.lookahead = nil
	return tok, nil
}

// DropTokenOrError consumes the next token, requiring it to be of the given
// kind, and discards it.
func (c *Cursor) DropTokenOrError(kind Kind) error {
	_, err := c.PopTokenOrError(kind)
	return err
}

// DropKeywordOrError consumes the next token, requiring it to be the given
// keyword, and discards it.
func (c *Cursor) DropKeywordOrError(kw Keyword) error {
	tok, err := c.PeekToken()
	if err != nil {
		return err
	}
	if !tok.IsKeyword(kw) {
		return diag.Newf(diag.StageParser, diag.CodeParseExpectedKeyword,
			tok.Span, "expected keyword '%s', found %s", kw, tok)
	}
	c.lookahead = nil
	return nil
}

// TryDropToken consumes the next token iff it is of the given kind.
func (c *Cursor) TryDropToken(kind Kind) (bool, error) {
	tok, err := c.PeekToken()
	if err != nil {
		return false, err
	}
	if tok.Kind != kind {
		return false, nil
	}
	c.lookahead = nil
	return true, nil
}

// TryDropKeyword consumes the next token iff it is the given keyword.
func (c *Cursor) TryDropKeyword(kw Keyword) (bool, error) {
	tok, err := c.PeekToken()
	if err != nil {
		return false, err
	}
	if !tok.IsKeyword(kw) {
		return false, nil
	}
	c.lookahead = nil
	return true, nil
}
