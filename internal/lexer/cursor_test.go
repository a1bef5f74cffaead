package lexer

import (
	"testing"

	"github.com/silica-lang/silica/internal/diag"
)

func newTestCursor(input string) *Cursor {
	return NewCursor(NewScanner(input))
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	c := newTestCursor("a b")
	first, err := c.PeekToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.PeekToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Value != "a" || second.Value != "a" {
		t.Fatalf("peek consumed input: got %q then %q", first.Value, second.Value)
	}
	popped, err := c.PopToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if popped.Value != "a" {
		t.Fatalf("got %q, want a", popped.Value)
	}
}

func TestCursor_PopTokenOrError(t *testing.T) {
	c := newTestCursor("( x")
	if _, err := c.PopTokenOrError(KindOParen); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := c.PopTokenOrError(KindCParen)
	if err == nil {
		t.Fatalf("expected an error popping ')' at identifier")
	}
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %T", err)
	}
	if d.Code != diag.CodeParseExpectedToken {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeParseExpectedToken)
	}
	// The offending token must not be consumed by the failed pop.
	tok, err := c.PopToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Value != "x" {
		t.Fatalf("got %q, want x", tok.Value)
	}
}

func TestCursor_TryDrop(t *testing.T) {
	c := newTestCursor(", fn")
	dropped, err := c.TryDropToken(KindSemi)
	if err != nil || dropped {
		t.Fatalf("TryDropToken(;) = %v, %v; want false, nil", dropped, err)
	}
	dropped, err = c.TryDropToken(KindComma)
	if err != nil || !dropped {
		t.Fatalf("TryDropToken(,) = %v, %v; want true, nil", dropped, err)
	}
	dropped, err = c.TryDropKeyword(KwWhile)
	if err != nil || dropped {
		t.Fatalf("TryDropKeyword(while) = %v, %v; want false, nil", dropped, err)
	}
	if err := c.DropKeywordOrError(KwFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCursor_EOFIsPeekable(t *testing.T) {
	c := newTestCursor("")
	for i := 0; i < 3; i++ {
		tok, err := c.PeekToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind != KindEOF {
			t.Fatalf("got kind %q, want EOF", tok.Kind)
		}
	}
}
