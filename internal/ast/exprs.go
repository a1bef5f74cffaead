package ast

import "github.com/silica-lang/silica/internal/lexer"

// BinopKind is a binary operator; the string value is its surface spelling.
type BinopKind string

const (
	BinopAdd    BinopKind = "+"
	BinopConcat BinopKind = "++"
	BinopSub    BinopKind = "-"
	BinopMul    BinopKind = "*"
	BinopDiv    BinopKind = "/"
	BinopMod    BinopKind = "%"
	BinopAnd    BinopKind = "&"
	BinopOr     BinopKind = "|"
	BinopXor    BinopKind = "^"
	BinopShl    BinopKind = "<<"
	BinopShr    BinopKind = ">>"
	BinopSar    BinopKind = ">>>"
	BinopEq     BinopKind = "=="
	BinopNe     BinopKind = "!="
	BinopGt     BinopKind = ">"
	BinopGe     BinopKind = ">="
	BinopLt     BinopKind = "<"
	BinopLe     BinopKind = "<="
	BinopLAnd   BinopKind = "&&"
	BinopLOr    BinopKind = "||"
)

// UnopKind is a unary operator.
type UnopKind string

const (
	UnopNegate UnopKind = "-"
	UnopInvert UnopKind = "!"
)

// Number is a numeric literal, possibly carrying the type annotation of a
// type-prefixed literal like `u32:42`.
type Number struct {
	Value string
	Kind  lexer.NumberKind
	Type  *TypeAnnotation
	span  lexer.Span
}

func NewNumber(value string, kind lexer.NumberKind, span lexer.Span) *Number {
	return &Number{Value: value, Kind: kind, span: span}
}

func (n *Number) Span() lexer.Span { return n.span }

func (*Number) exprNode() {}

// Array is an array literal; HasEllipsis marks a trailing `...` meaning the
// last member fills the remaining elements.
type Array struct {
	Members     []Expr
	HasEllipsis bool
	Type        *TypeAnnotation
	span        lexer.Span
}

func NewArray(members []Expr, hasEllipsis bool, span lexer.Span) *Array {
	return &Array{Members: members, HasEllipsis: hasEllipsis, span: span}
}

func (a *Array) Span() lexer.Span { return a.span }

func (*Array) exprNode() {}

// Tuple is a tuple-forming expression, e.g. `(a, b, c)` or the empty `()`.
type Tuple struct {
	Members []Expr
	span    lexer.Span
}

func NewTuple(members []Expr, span lexer.Span) *Tuple {
	return &Tuple{Members: members, span: span}
}

func (t *Tuple) Span() lexer.Span { return t.span }

func (*Tuple) exprNode() {}

// Cast converts an expression to a type, from either the literal form
// `u32:x` or the operator form `x as u32`.
type Cast struct {
	Type *TypeAnnotation
	Expr Expr
	span lexer.Span
}

func NewCast(typ *TypeAnnotation, expr Expr, span lexer.Span) *Cast {
	return &Cast{Type: typ, Expr: expr, span: span}
}

func (c *Cast) Span() lexer.Span { return c.span }

func (*Cast) exprNode() {}

// Unop is a unary operation.
type Unop struct {
	Op      UnopKind
	Operand Expr
	span    lexer.Span
}

func NewUnop(op UnopKind, operand Expr, span lexer.Span) *Unop {
	return &Unop{Op: op, Operand: operand, span: span}
}

func (u *Unop) Span() lexer.Span { return u.span }

func (*Unop) exprNode() {}

// Binop is a binary operation produced by the precedence chain; chains fold
// left, so `a + b + c` is Binop(Binop(a, b), c).
type Binop struct {
	Op   BinopKind
	Lhs  Expr
	Rhs  Expr
	span lexer.Span
}

func NewBinop(op BinopKind, lhs, rhs Expr, span lexer.Span) *Binop {
	return &Binop{Op: op, Lhs: lhs, Rhs: rhs, span: span}
}

func (b *Binop) Span() lexer.Span { return b.span }

func (*Binop) exprNode() {}

// Ternary is the conditional expression `consequent if test else alternate`.
type Ternary struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
	span       lexer.Span
}

func NewTernary(test, consequent, alternate Expr, span lexer.Span) *Ternary {
	return &Ternary{Test: test, Consequent: consequent, Alternate: alternate, span: span}
}

func (t *Ternary) Span() lexer.Span { return t.span }

func (*Ternary) exprNode() {}

// Invocation is a call expression.
type Invocation struct {
	Callee Expr
	Args   []Expr
	span   lexer.Span
}

func NewInvocation(callee Expr, args []Expr, span lexer.Span) *Invocation {
	return &Invocation{Callee: callee, Args: args, span: span}
}

func (i *Invocation) Span() lexer.Span { return i.span }

func (*Invocation) exprNode() {}

// Index subscripts an expression; Rhs is either a plain expression or a
// Slice for bit-slicing forms.
type Index struct {
	Lhs  Expr
	Rhs  Expr
	span lexer.Span
}

func NewIndex(lhs, rhs Expr, span lexer.Span) *Index {
	return &Index{Lhs: lhs, Rhs: rhs, span: span}
}

func (i *Index) Span() lexer.Span { return i.span }

func (*Index) exprNode() {}

// Slice is the right-hand side of a bit-slice index; Start and Limit may
// each be nil for open-ended forms like `x[:8]` and `x[4:]`.
type Slice struct {
	Start Expr
	Limit Expr
	span  lexer.Span
}

func NewSlice(start, limit Expr, span lexer.Span) *Slice {
	return &Slice{Start: start, Limit: limit, span: span}
}

func (s *Slice) Span() lexer.Span { return s.span }

func (*Slice) exprNode() {}

// EnumRef references an enum member, e.g. `Color::RED`.
type EnumRef struct {
	Enum *EnumDef
	Attr string
	span lexer.Span
}

func NewEnumRef(enum *EnumDef, attr string, span lexer.Span) *EnumRef {
	return &EnumRef{Enum: enum, Attr: attr, span: span}
}

func (e *EnumRef) Span() lexer.Span { return e.span }

func (*EnumRef) exprNode() {}

// ModRef is a qualified reference through an imported module, e.g.
// `std::clog2`.
type ModRef struct {
	Mod  *Import
	Attr string
	span lexer.Span
}

func NewModRef(mod *Import, attr string, span lexer.Span) *ModRef {
	return &ModRef{Mod: mod, Attr: attr, span: span}
}

func (m *ModRef) Span() lexer.Span { return m.span }

func (*ModRef) exprNode()       {}
func (*ModRef) typeDefinition() {}

// MatchArm is one arm of a match expression: one or more patterns guarding
// a body expression.
type MatchArm struct {
	Patterns []*NameDefTree
	Body     Expr
	span     lexer.Span
}

func NewMatchArm(patterns []*NameDefTree, body Expr, span lexer.Span) *MatchArm {
	return &MatchArm{Patterns: patterns, Body: body, span: span}
}

func (a *MatchArm) Span() lexer.Span { return a.span }

// Match is a pattern-match expression; exhaustiveness is a later-stage
// concern, not checked at parse time.
type Match struct {
	Matched Expr
	Arms    []*MatchArm
	span    lexer.Span
}

func NewMatch(matched Expr, arms []*MatchArm, span lexer.Span) *Match {
	return &Match{Matched: matched, Arms: arms, span: span}
}

func (m *Match) Span() lexer.Span { return m.span }

func (*Match) exprNode() {}

// While is the loop form `while test { body }(init)`. The node is allocated
// before its body parses so carry expressions inside the body can hold a
// back-reference to it; its fields are filled as the parts parse.
type While struct {
	Test Expr
	Body Expr
	Init Expr
	span lexer.Span
}

func (w *While) Span() lexer.Span { return w.span }

// SetSpan finalizes the span once the trailing init is parsed.
func (w *While) SetSpan(span lexer.Span) { w.span = span }

func (*While) exprNode() {}

// Carry references the value threaded from the previous iteration of the
// enclosing while loop. Loop is a non-owning back-reference.
type Carry struct {
	Loop *While
	span lexer.Span
}

func NewCarry(loop *While, span lexer.Span) *Carry {
	return &Carry{Loop: loop, span: span}
}

func (c *Carry) Span() lexer.Span { return c.span }

func (*Carry) exprNode() {}

// For is the counted-loop form `for (i, accum) in iterable { body }(init)`.
type For struct {
	Names    *NameDefTree
	Type     *TypeAnnotation
	Iterable Expr
	Body     Expr
	Init     Expr
	span     lexer.Span
}

func NewFor(names *NameDefTree, typ *TypeAnnotation, iterable, body, init Expr, span lexer.Span) *For {
	return &For{Names: names, Type: typ, Iterable: iterable, Body: body, Init: init, span: span}
}

func (f *For) Span() lexer.Span { return f.span }

func (*For) exprNode() {}

// Let binds (possibly destructuring) names for the scope of Body. IsConst
// marks the `const NAME = ...` local form.
type Let struct {
	Names   *NameDefTree
	Type    *TypeAnnotation
	Rhs     Expr
	Body    Expr
	IsConst bool
	span    lexer.Span
}

func NewLet(names *NameDefTree, typ *TypeAnnotation, rhs, body Expr, isConst bool, span lexer.Span) *Let {
	return &Let{Names: names, Type: typ, Rhs: rhs, Body: body, IsConst: isConst, span: span}
}

func (l *Let) Span() lexer.Span { return l.span }

func (*Let) exprNode() {}

// StructInstanceMember is one `name: value` pair in a struct instantiation.
type StructInstanceMember struct {
	Name  string
	Value Expr
	span  lexer.Span
}

func NewStructInstanceMember(name string, value Expr, span lexer.Span) *StructInstanceMember {
	return &StructInstanceMember{Name: name, Value: value, span: span}
}

func (m *StructInstanceMember) Span() lexer.Span { return m.span }

// StructInstance instantiates a struct type with named member values.
type StructInstance struct {
	Type    *TypeAnnotation
	Members []*StructInstanceMember
	span    lexer.Span
}

func NewStructInstance(typ *TypeAnnotation, members []*StructInstanceMember, span lexer.Span) *StructInstance {
	return &StructInstance{Type: typ, Members: members, span: span}
}

func (s *StructInstance) Span() lexer.Span { return s.span }

func (*StructInstance) exprNode() {}
