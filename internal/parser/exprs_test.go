package parser

import (
	"testing"

	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

func newTestParser(src string) *Parser {
	s := lexer.NewScanner(src)
	s.SetFilename("test.x")
	return New("test", lexer.NewCursor(s))
}

// exprBindings returns a root scope with the given names pre-bound, for
// parsing expression fragments in isolation.
func exprBindings(names ...string) *bindings.Bindings {
	b := RootBindings()
	for _, n := range names {
		b.Add(n, ast.NewNameDef(n, lexer.Span{Line: 1, Column: 1}))
	}
	return b
}

func parseExprText(t *testing.T, src string, b *bindings.Bindings) ast.Expr {
	t.Helper()
	p := newTestParser(src)
	e, err := p.ParseExpression(b)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return e
}

func asBinop(t *testing.T, e ast.Expr, op ast.BinopKind) *ast.Binop {
	t.Helper()
	bin, ok := e.(*ast.Binop)
	if !ok {
		t.Fatalf("got %T, want binop", e)
	}
	if bin.Op != op {
		t.Fatalf("got operator %q, want %q", bin.Op, op)
	}
	return bin
}

func nameRefIdent(t *testing.T, e ast.Expr) string {
	t.Helper()
	ref, ok := e.(*ast.NameRef)
	if !ok {
		t.Fatalf("got %T, want name reference", e)
	}
	return ref.Ident
}

func TestParseExpression_LeftAssociative(t *testing.T) {
	b := exprBindings("a", "b", "c")
	e := parseExprText(t, "a - b - c", b)

	outer := asBinop(t, e, ast.BinopSub)
	inner := asBinop(t, outer.Lhs, ast.BinopSub)
	if got := nameRefIdent(t, inner.Lhs); got != "a" {
		t.Errorf("innermost lhs: got %q, want a", got)
	}
	if got := nameRefIdent(t, inner.Rhs); got != "b" {
		t.Errorf("inner rhs: got %q, want b", got)
	}
	if got := nameRefIdent(t, outer.Rhs); got != "c" {
		t.Errorf("outer rhs: got %q, want c", got)
	}
}

func TestParseExpression_MulBindsTighterThanAdd(t *testing.T) {
	b := exprBindings("a", "b", "c")
	e := parseExprText(t, "a + b * c", b)

	add := asBinop(t, e, ast.BinopAdd)
	if got := nameRefIdent(t, add.Lhs); got != "a" {
		t.Errorf("lhs: got %q, want a", got)
	}
	asBinop(t, add.Rhs, ast.BinopMul)
}

func TestParseExpression_AddBindsTighterThanShift(t *testing.T) {
	b := exprBindings("a", "b", "c")
	e := parseExprText(t, "a << b + c", b)

	shl := asBinop(t, e, ast.BinopShl)
	asBinop(t, shl.Rhs, ast.BinopAdd)
}

func TestParseExpression_BitwiseAndBindsTighterThanComparison(t *testing.T) {
	b := exprBindings("a", "b", "c")
	e := parseExprText(t, "a & b == c", b)

	eq := asBinop(t, e, ast.BinopEq)
	asBinop(t, eq.Lhs, ast.BinopAnd)
}

func TestParseExpression_LogicalLadder(t *testing.T) {
	b := exprBindings("a", "b", "c", "d")
	e := parseExprText(t, "a || b && c == d", b)

	or := asBinop(t, e, ast.BinopLOr)
	and := asBinop(t, or.Rhs, ast.BinopLAnd)
	asBinop(t, and.Rhs, ast.BinopEq)
}

func TestParseExpression_ConcatAndSar(t *testing.T) {
	b := exprBindings("a", "b")
	asBinop(t, parseExprText(t, "a ++ b", b), ast.BinopConcat)
	asBinop(t, parseExprText(t, "a >>> b", b), ast.BinopSar)
}

func TestParseExpression_UnaryBindsTighterThanMul(t *testing.T) {
	b := exprBindings("a", "b")
	e := parseExprText(t, "-a * b", b)

	mul := asBinop(t, e, ast.BinopMul)
	unop, ok := mul.Lhs.(*ast.Unop)
	if !ok {
		t.Fatalf("got %T, want unop on the left", mul.Lhs)
	}
	if unop.Op != ast.UnopNegate {
		t.Errorf("got operator %q, want negate", unop.Op)
	}
}

func TestParseExpression_Ternary(t *testing.T) {
	b := exprBindings("a", "b", "c")
	e := parseExprText(t, "a if b else c", b)

	tern, ok := e.(*ast.Ternary)
	if !ok {
		t.Fatalf("got %T, want ternary", e)
	}
	if got := nameRefIdent(t, tern.Consequent); got != "a" {
		t.Errorf("consequent: got %q, want a", got)
	}
	if got := nameRefIdent(t, tern.Test); got != "b" {
		t.Errorf("test: got %q, want b", got)
	}
	if got := nameRefIdent(t, tern.Alternate); got != "c" {
		t.Errorf("alternate: got %q, want c", got)
	}
}

func TestParseExpression_TernaryChainsRightward(t *testing.T) {
	b := exprBindings("a", "b", "c", "d", "e")
	expr := parseExprText(t, "a if b else c if d else e", b)

	outer, ok := expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("got %T, want ternary", expr)
	}
	if _, ok := outer.Alternate.(*ast.Ternary); !ok {
		t.Fatalf("alternate is %T, want nested ternary", outer.Alternate)
	}
}

func TestParseExpression_CastChain(t *testing.T) {
	b := exprBindings("a")
	e := parseExprText(t, "a as u8 as u32", b)

	outer, ok := e.(*ast.Cast)
	if !ok {
		t.Fatalf("got %T, want cast", e)
	}
	if outer.Type.Text() != "u32" {
		t.Errorf("outer cast type: got %q, want u32", outer.Type.Text())
	}
	inner, ok := outer.Expr.(*ast.Cast)
	if !ok {
		t.Fatalf("inner is %T, want cast", outer.Expr)
	}
	if inner.Type.Text() != "u8" {
		t.Errorf("inner cast type: got %q, want u8", inner.Type.Text())
	}
}

func TestParseExpression_TypedNumberLiteral(t *testing.T) {
	e := parseExprText(t, "u32:42", RootBindings())

	num, ok := e.(*ast.Number)
	if !ok {
		t.Fatalf("got %T, want number", e)
	}
	if num.Value != "42" {
		t.Errorf("got value %q, want 42", num.Value)
	}
	if num.Type == nil || num.Type.Text() != "u32" {
		t.Errorf("expected number to carry the u32 annotation")
	}
}

func TestParseExpression_BitsRequiresDims(t *testing.T) {
	p := newTestParser("bits:1")
	_, err := p.ParseExpression(nil)
	if err == nil {
		t.Fatalf("expected an error for bits without a dimension")
	}
}

func TestParseExpression_BoolLiterals(t *testing.T) {
	e := parseExprText(t, "true", RootBindings())
	num, ok := e.(*ast.Number)
	if !ok {
		t.Fatalf("got %T, want number", e)
	}
	if num.Kind != lexer.NumberBool {
		t.Errorf("got kind %v, want bool", num.Kind)
	}
}

func TestParseExpression_IndexAndSlices(t *testing.T) {
	b := exprBindings("a", "i")

	e := parseExprText(t, "a[i]", b)
	idx, ok := e.(*ast.Index)
	if !ok {
		t.Fatalf("got %T, want index", e)
	}
	if _, ok := idx.Rhs.(*ast.Slice); ok {
		t.Fatalf("plain index parsed as a slice")
	}

	cases := []struct {
		src       string
		wantStart bool
		wantLimit bool
	}{
		{"a[0:8]", true, true},
		{"a[:8]", false, true},
		{"a[0:]", true, false},
		{"a[:]", false, false},
	}
	for _, c := range cases {
		e := parseExprText(t, c.src, b)
		idx, ok := e.(*ast.Index)
		if !ok {
			t.Fatalf("%q: got %T, want index", c.src, e)
		}
		slice, ok := idx.Rhs.(*ast.Slice)
		if !ok {
			t.Fatalf("%q: rhs is %T, want slice", c.src, idx.Rhs)
		}
		if (slice.Start != nil) != c.wantStart {
			t.Errorf("%q: start presence = %v, want %v", c.src, slice.Start != nil, c.wantStart)
		}
		if (slice.Limit != nil) != c.wantLimit {
			t.Errorf("%q: limit presence = %v, want %v", c.src, slice.Limit != nil, c.wantLimit)
		}
	}
}

func TestParseExpression_InvocationOfBuiltin(t *testing.T) {
	e := parseExprText(t, "range(u32:0, u32:4)", RootBindings())

	inv, ok := e.(*ast.Invocation)
	if !ok {
		t.Fatalf("got %T, want invocation", e)
	}
	if len(inv.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(inv.Args))
	}
	if got := nameRefIdent(t, inv.Callee); got != "range" {
		t.Errorf("callee: got %q, want range", got)
	}
}

func TestParseExpression_InvocationTrailingComma(t *testing.T) {
	b := exprBindings("f", "a", "b")
	e := parseExprText(t, "f(a, b,)", b)
	inv := e.(*ast.Invocation)
	if len(inv.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(inv.Args))
	}
}

func TestParseExpression_MissingCommaFails(t *testing.T) {
	p := newTestParser("f(a b)")
	_, err := p.ParseExpression(exprBindings("f", "a", "b"))
	if err == nil {
		t.Fatalf("expected an error for a missing comma between arguments")
	}
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %T", err)
	}
	if d.Code != diag.CodeParseExpectedToken {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeParseExpectedToken)
	}
}

func TestParseExpression_TupleForms(t *testing.T) {
	b := exprBindings("a", "b")

	if e := parseExprText(t, "()", b); len(e.(*ast.Tuple).Members) != 0 {
		t.Errorf("() should be the empty tuple")
	}
	if e := parseExprText(t, "(a)", b); e.(*ast.NameRef).Ident != "a" {
		t.Errorf("(a) should be a parenthesized name, not a tuple")
	}
	if e := parseExprText(t, "(a,)", b); len(e.(*ast.Tuple).Members) != 1 {
		t.Errorf("(a,) should be a one-element tuple")
	}
	if e := parseExprText(t, "(a, b)", b); len(e.(*ast.Tuple).Members) != 2 {
		t.Errorf("(a, b) should be a two-element tuple")
	}
}

func TestParseExpression_ArrayWithEllipsis(t *testing.T) {
	e := parseExprText(t, "[u32:1, u32:2, ...]", RootBindings())
	arr, ok := e.(*ast.Array)
	if !ok {
		t.Fatalf("got %T, want array", e)
	}
	if !arr.HasEllipsis {
		t.Errorf("expected the ellipsis flag to be set")
	}
	if len(arr.Members) != 2 {
		t.Errorf("got %d members, want 2", len(arr.Members))
	}
}

func TestParseExpression_EllipsisMustBeLast(t *testing.T) {
	p := newTestParser("[..., u32:1]")
	if _, err := p.ParseExpression(nil); err == nil {
		t.Fatalf("expected an error for an ellipsis before the last member")
	}
}

func TestParseExpression_CarryOutsideLoopFails(t *testing.T) {
	p := newTestParser("carry + u32:1")
	_, err := p.ParseExpression(nil)
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if d.Code != diag.CodeParseCarryOutsideLoop {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeParseCarryOutsideLoop)
	}
}

func TestParseExpression_UnresolvedNameFails(t *testing.T) {
	p := newTestParser("nonesuch + u32:1")
	_, err := p.ParseExpression(RootBindings())
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		t.Fatalf("expected a diagnostic, got %v", err)
	}
	if d.Code != diag.CodeParseUnresolvedName {
		t.Errorf("got code %q, want %q", d.Code, diag.CodeParseUnresolvedName)
	}
	if d.Span.Column != 1 {
		t.Errorf("got column %d, want 1", d.Span.Column)
	}
}

func TestParseExpression_LetInBody(t *testing.T) {
	e := parseExprText(t, "let x = u32:1 in x + u32:2", RootBindings())

	let, ok := e.(*ast.Let)
	if !ok {
		t.Fatalf("got %T, want let", e)
	}
	if !let.Names.IsLeaf() {
		t.Fatalf("expected a single-name binding")
	}
	asBinop(t, let.Body, ast.BinopAdd)
}

func TestParseExpression_LetNameNotVisibleInRhs(t *testing.T) {
	p := newTestParser("let x = x in x")
	_, err := p.ParseExpression(RootBindings())
	if err == nil {
		t.Fatalf("expected the rhs reference to x to fail resolution")
	}
	d, _ := diag.AsDiagnostic(err)
	if d == nil || d.Code != diag.CodeParseUnresolvedName {
		t.Errorf("got %v, want an unresolved-name diagnostic", err)
	}
}

func TestParseExpression_LetDestructuring(t *testing.T) {
	src := "let (a, (b, _)) = p in a + b"
	e := parseExprText(t, src, exprBindings("p"))

	let := e.(*ast.Let)
	if let.Names.IsLeaf() {
		t.Fatalf("expected a destructuring tree")
	}
	if got := let.Names.LeafCount(); got != 3 {
		t.Errorf("got %d leaves, want 3", got)
	}
}

func TestParseExpression_SpansReachClosingDelimiter(t *testing.T) {
	cases := []struct {
		src   string
		names []string
	}{
		{"range(u32:8)", nil},
		{"(a, b)", []string{"a", "b"}},
		{"[a, b]", []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			e := parseExprText(t, tc.src, exprBindings(tc.names...))
			if got := e.Span().End; got != len(tc.src) {
				t.Errorf("span ends at %d, want %d (the closing delimiter)", got, len(tc.src))
			}
		})
	}
}

func TestParseExpression_StructInstanceSpanReachesBrace(t *testing.T) {
	b := RootBindings()
	name := ast.NewNameDef("Point", lexer.Span{Line: 1, Column: 1})
	b.Add("Point", ast.NewStructDef(name, nil, nil, false, name.Span()))
	src := "Point { x: u32:1 }"
	e := parseExprText(t, src, b)
	if _, ok := e.(*ast.StructInstance); !ok {
		t.Fatalf("got %T, want struct instance", e)
	}
	if got := e.Span().End; got != len(src) {
		t.Errorf("span ends at %d, want %d (the closing brace)", got, len(src))
	}
}
