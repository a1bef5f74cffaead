package diag

import (
	"errors"
	"strings"
	"testing"
)

func TestDiagnostic_ErrorIncludesSpanAndMessage(t *testing.T) {
	d := Newf(StageParser, CodeParseUnexpectedToken,
		Span{Filename: "m.x", Line: 3, Column: 5}, "expected %q", ")")
	got := d.Error()
	if !strings.Contains(got, "m.x:3:5") {
		t.Errorf("error %q does not include the span", got)
	}
	if !strings.Contains(got, `expected ")"`) {
		t.Errorf("error %q does not include the message", got)
	}
}

func TestSpan_String(t *testing.T) {
	withFile := Span{Filename: "m.x", Line: 1, Column: 2}
	if got := withFile.String(); got != "m.x:1:2" {
		t.Errorf("got %q, want m.x:1:2", got)
	}
	bare := Span{Line: 4, Column: 7}
	if got := bare.String(); got != "4:7" {
		t.Errorf("got %q, want 4:7", got)
	}
}

func TestSpan_IsValid(t *testing.T) {
	if (Span{}).IsValid() {
		t.Errorf("zero span should be invalid")
	}
	if !(Span{Line: 1, Column: 1}).IsValid() {
		t.Errorf("1:1 span should be valid")
	}
}

func TestAsDiagnostic(t *testing.T) {
	d := New(StageScanner, CodeScanIllegalRune, Span{Line: 1, Column: 1}, "illegal character")
	got, ok := AsDiagnostic(error(d))
	if !ok || got != d {
		t.Fatalf("expected to recover the diagnostic from the error")
	}
	if _, ok := AsDiagnostic(errors.New("plain")); ok {
		t.Fatalf("plain errors must not convert to diagnostics")
	}
}

func TestFormatter_ExcerptsSourceLine(t *testing.T) {
	var sb strings.Builder
	f := NewFormatter(&sb)
	f.AddSource("m.x", "fn f() {\n  bogus line\n}\n")

	f.Format(New(StageParser, CodeParseUnexpectedToken,
		Span{Filename: "m.x", Line: 2, Column: 3, Start: 11, End: 16},
		"expected start of an expression"))

	out := sb.String()
	if !strings.Contains(out, "error: m.x:2:3: expected start of an expression") {
		t.Errorf("missing header line in output:\n%s", out)
	}
	if !strings.Contains(out, "bogus line") {
		t.Errorf("missing source excerpt in output:\n%s", out)
	}
	if !strings.Contains(out, "^^^^^") {
		t.Errorf("missing caret underline in output:\n%s", out)
	}
}

func TestFormatter_NoSourceStillPrintsHeader(t *testing.T) {
	var sb strings.Builder
	f := NewFormatter(&sb)
	f.Format(New(StageParser, CodeParseUnresolvedName,
		Span{Filename: "missing-file.x", Line: 1, Column: 1},
		"cannot find a definition for name: \"q\""))
	if !strings.Contains(sb.String(), "missing-file.x:1:1") {
		t.Errorf("header line missing:\n%s", sb.String())
	}
}
