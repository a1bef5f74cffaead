// Package diag holds the diagnostic model shared by the scanner and parser.
package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageScanner Stage = "scanner"
	StageParser  Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Scanner errors
	CodeScanIllegalRune      Code = "SCAN_ILLEGAL_RUNE"
	CodeScanUnterminatedChar Code = "SCAN_UNTERMINATED_CHAR"
	CodeScanBadNumber        Code = "SCAN_BAD_NUMBER"

	// Parser errors
	CodeParseExpectedToken    Code = "PARSE_EXPECTED_TOKEN"
	CodeParseExpectedKeyword  Code = "PARSE_EXPECTED_KEYWORD"
	CodeParseUnexpectedToken  Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnresolvedName   Code = "PARSE_UNRESOLVED_NAME"
	CodeParseBadColonRef      Code = "PARSE_BAD_COLON_REF"
	CodeParseCarryOutsideLoop Code = "PARSE_CARRY_OUTSIDE_LOOP"
	CodeParseDuplicateDef     Code = "PARSE_DUPLICATE_DEF"
	CodeParseBadDirective     Code = "PARSE_BAD_DIRECTIVE"
	CodeParseUnimplemented    Code = "PARSE_UNIMPLEMENTED"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based
	Start    int // rune offset
	End      int // exclusive rune offset
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users. It implements
// error so a failing parse can return the structured value directly.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
}

// New constructs an error-severity diagnostic.
func New(stage Stage, code Code, span Span, message string) *Diagnostic {
	return &Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Span:     span,
	}
}

// Newf is New with printf-style message formatting.
func Newf(stage Stage, code Code, span Span, format string, args ...any) *Diagnostic {
	return New(stage, code, span, fmt.Sprintf(format, args...))
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// AsDiagnostic extracts the structured diagnostic from an error, if the
// error carries one.
func AsDiagnostic(err error) (*Diagnostic, bool) {
	d, ok := err.(*Diagnostic)
	return d, ok
}
