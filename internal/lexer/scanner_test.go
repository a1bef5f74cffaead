package lexer

import (
	"testing"

	"github.com/silica-lang/silica/internal/diag"
)

func scanAll(t *testing.T, input string) []Token {
	t.Helper()
	s := NewScanner(input)
	var toks []Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("unexpected scan error for %q: %v", input, err)
		}
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestScanner_Operators(t *testing.T) {
	cases := []struct {
		input string
		kinds []Kind
	}{
		{"+ ++ -", []Kind{KindPlus, KindDoublePlus, KindMinus}},
		{"< <= << >>", []Kind{KindOAngle, KindOAngleEq, KindDoubleOAngle, KindDoubleCAngle}},
		{">>>", []Kind{KindTripleCAngle}},
		{"-> =>", []Kind{KindArrow, KindFatArrow}},
		{": ::", []Kind{KindColon, KindDoubleColon}},
		{"= == != !", []Kind{KindEq, KindDoubleEq, KindBangEq, KindBang}},
		{"& && | ||", []Kind{KindAmp, KindDoubleAmp, KindBar, KindDoubleBar}},
		{"...", []Kind{KindEllipsis}},
		{"#![", []Kind{KindHashBang, KindOBrack}},
	}
	for _, c := range cases {
		toks := scanAll(t, c.input)
		if got, want := len(toks)-1, len(c.kinds); got != want {
			t.Fatalf("%q: got %d tokens, want %d", c.input, got, want)
		}
		for i, want := range c.kinds {
			if toks[i].Kind != want {
				t.Errorf("%q token %d: got kind %q, want %q", c.input, i, toks[i].Kind, want)
			}
		}
	}
}

func TestScanner_KeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "fn foo while carry u32 u65 bits")
	wantKinds := []Kind{KindKeyword, KindIdent, KindKeyword, KindKeyword, KindKeyword, KindIdent, KindKeyword}
	for i, want := range wantKinds {
		if toks[i].Kind != want {
			t.Errorf("token %d (%q): got kind %q, want %q", i, toks[i].Value, toks[i].Kind, want)
		}
	}
	if toks[0].Keyword != KwFn {
		t.Errorf("got keyword %q, want fn", toks[0].Keyword)
	}
	// u65 is out of the sized-type range so it stays an identifier.
	if toks[5].Value != "u65" {
		t.Errorf("got value %q, want u65", toks[5].Value)
	}
}

func TestScanner_SizedTypeKeywords(t *testing.T) {
	toks := scanAll(t, "u1 s64 sN")
	for i, want := range []Keyword{"u1", "s64", KwSN} {
		if !toks[i].IsTypeKeyword() {
			t.Fatalf("token %d: expected a type keyword, got %s", i, toks[i])
		}
		if toks[i].Keyword != want {
			t.Errorf("token %d: got keyword %q, want %q", i, toks[i].Keyword, want)
		}
	}
}

func TestScanner_Numbers(t *testing.T) {
	toks := scanAll(t, "42 0xdead_beef 0b1010 1_000")
	wantValues := []string{"42", "0xdead_beef", "0b1010", "1_000"}
	for i, want := range wantValues {
		if toks[i].Kind != KindNumber {
			t.Fatalf("token %d: got kind %q, want number", i, toks[i].Kind)
		}
		if toks[i].Value != want {
			t.Errorf("token %d: got value %q, want %q", i, toks[i].Value, want)
		}
	}
}

func TestScanner_BadNumberPrefix(t *testing.T) {
	s := NewScanner("0x")
	_, err := s.Next()
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic for a bare radix prefix, got %v", err)
	}
	if d.Code != diag.CodeScanBadNumber {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeScanBadNumber)
	}
}

func TestScanner_CharacterLiteral(t *testing.T) {
	toks := scanAll(t, `'a' '\n'`)
	if toks[0].Kind != KindChar || toks[1].Kind != KindChar {
		t.Fatalf("expected two character tokens, got %s and %s", toks[0], toks[1])
	}
}

func TestScanner_CommentsSkipped(t *testing.T) {
	toks := scanAll(t, "a // trailing comment\nb")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3 (a, b, EOF)", len(toks))
	}
	if toks[0].Value != "a" || toks[1].Value != "b" {
		t.Fatalf("got %q and %q, want a and b", toks[0].Value, toks[1].Value)
	}
	if toks[1].Span.Line != 2 {
		t.Errorf("got line %d for b, want 2", toks[1].Span.Line)
	}
}

func TestScanner_SpanPositions(t *testing.T) {
	s := NewScanner("ab cd")
	s.SetFilename("test.x")
	first, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Span.Line != 1 || first.Span.Column != 1 {
		t.Errorf("first span: got %d:%d, want 1:1", first.Span.Line, first.Span.Column)
	}
	if second.Span.Column != 4 {
		t.Errorf("second span: got column %d, want 4", second.Span.Column)
	}
	if first.Span.Filename != "test.x" {
		t.Errorf("got filename %q, want test.x", first.Span.Filename)
	}
}

func TestScanner_IllegalRune(t *testing.T) {
	s := NewScanner("@")
	_, err := s.Next()
	if err == nil {
		t.Fatalf("expected an error for illegal rune")
	}
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %T", err)
	}
	if d.Code != diag.CodeScanIllegalRune {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeScanIllegalRune)
	}
}

func TestScanner_HashWithoutBang(t *testing.T) {
	s := NewScanner("# [")
	if _, err := s.Next(); err == nil {
		t.Fatalf("expected an error for '#' not followed by '!'")
	}
}

func TestScanner_UnterminatedChar(t *testing.T) {
	s := NewScanner("'a")
	_, err := s.Next()
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if d.Code != diag.CodeScanUnterminatedChar {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeScanUnterminatedChar)
	}
}
