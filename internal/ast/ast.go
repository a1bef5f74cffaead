// Package ast defines the abstract syntax tree produced by parsing one
// Silica module. The Module value is the sole owner of the tree; every other
// reference into it (bindings, carry back-references) is a non-owning
// pointer. Nodes are constructed once and never mutated after the parse that
// builds them completes.
package ast

import "github.com/silica-lang/silica/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// ModuleMember is a top-level definition in a module.
type ModuleMember interface {
	Node
	moduleMember()
}

// BoundNode is the set of definition-like nodes a name can be bound to in a
// scope chain. Consumers switch exhaustively over the concrete types.
type BoundNode interface {
	Node
	boundNode()
}

// AnyNameDef is the introduction site a resolved name ultimately refers to:
// a source-level NameDef or a parser-injected BuiltinNameDef.
type AnyNameDef interface {
	Node
	anyNameDef()
}

// Module owns every AST node allocated during a parse and exposes the
// finished top-level definition list. It is complete and immutable once
// ParseModule returns successfully.
type Module struct {
	Name string
	Top  []ModuleMember
}

// NewModule constructs an empty module with the given name.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// AddTop appends a top-level member.
func (m *Module) AddTop(member ModuleMember) {
	m.Top = append(m.Top, member)
}

// GetFunction returns the top-level function with the given name.
func (m *Module) GetFunction(name string) (*Function, bool) {
	for _, member := range m.Top {
		if f, ok := member.(*Function); ok && f.Name.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Functions returns all top-level functions in definition order, including
// those wrapped by test/quickcheck members.
func (m *Module) Functions() []*Function {
	var fns []*Function
	for _, member := range m.Top {
		switch n := member.(type) {
		case *Function:
			fns = append(fns, n)
		case *TestFunction:
			fns = append(fns, n.Fn)
		case *QuickCheck:
			fns = append(fns, n.Fn)
		}
	}
	return fns
}

// NameDef is an identifier's introduction site.
type NameDef struct {
	Name string
	span lexer.Span
}

func NewNameDef(name string, span lexer.Span) *NameDef {
	return &NameDef{Name: name, span: span}
}

func (n *NameDef) Span() lexer.Span { return n.span }

func (*NameDef) boundNode()  {}
func (*NameDef) anyNameDef() {}

// BuiltinNameDef introduces a name that has no source location, e.g. a
// builtin function seeded into the root scope.
type BuiltinNameDef struct {
	Name string
}

func NewBuiltinNameDef(name string) *BuiltinNameDef {
	return &BuiltinNameDef{Name: name}
}

func (n *BuiltinNameDef) Span() lexer.Span { return lexer.Span{} }

func (*BuiltinNameDef) boundNode()  {}
func (*BuiltinNameDef) anyNameDef() {}

// WildcardPattern is the `_` pattern: intentionally unbound.
type WildcardPattern struct {
	span lexer.Span
}

func NewWildcardPattern(span lexer.Span) *WildcardPattern {
	return &WildcardPattern{span: span}
}

func (w *WildcardPattern) Span() lexer.Span { return w.span }

// NameRef is a use site of a name, resolved at parse time to the
// introduction it refers to.
type NameRef struct {
	NameDef AnyNameDef
	Ident   string
	span    lexer.Span
}

func NewNameRef(def AnyNameDef, ident string, span lexer.Span) *NameRef {
	return &NameRef{NameDef: def, Ident: ident, span: span}
}

func (n *NameRef) Span() lexer.Span { return n.span }

func (*NameRef) exprNode() {}

// ConstRef is a reference to a module-level constant. Its grammar production
// is reserved but not yet supported; the parser fails with a distinct
// unimplemented-construct error where one would be parsed.
type ConstRef struct {
	NameRef
}

// Param is a formal function parameter.
type Param struct {
	Name *NameDef
	Type *TypeAnnotation
	span lexer.Span
}

func NewParam(name *NameDef, typ *TypeAnnotation, span lexer.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

func (p *Param) Span() lexer.Span { return p.span }

// ParametricBinding is a compile-time generic parameter; Default, when
// present, may reference only parametric bindings declared earlier in the
// same list.
type ParametricBinding struct {
	Name    *NameDef
	Type    *TypeAnnotation
	Default Expr
	span    lexer.Span
}

func NewParametricBinding(name *NameDef, typ *TypeAnnotation, def Expr, span lexer.Span) *ParametricBinding {
	return &ParametricBinding{Name: name, Type: typ, Default: def, span: span}
}

func (b *ParametricBinding) Span() lexer.Span { return b.span }

// Function is a function definition.
type Function struct {
	Name       *NameDef
	Parametric []*ParametricBinding
	Params     []*Param
	ReturnType *TypeAnnotation
	Body       Expr
	Public     bool
	span       lexer.Span
}

func NewFunction(name *NameDef, parametric []*ParametricBinding, params []*Param,
	returnType *TypeAnnotation, body Expr, public bool, span lexer.Span) *Function {
	return &Function{
		Name:       name,
		Parametric: parametric,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Public:     public,
		span:       span,
	}
}

func (f *Function) Span() lexer.Span { return f.span }

func (*Function) moduleMember() {}
func (*Function) boundNode()    {}

// Proc is a process definition: a function-shaped construct without a
// return type.
type Proc struct {
	Name   *NameDef
	Params []*Param
	Body   Expr
	Public bool
	span   lexer.Span
}

func NewProc(name *NameDef, params []*Param, body Expr, public bool, span lexer.Span) *Proc {
	return &Proc{Name: name, Params: params, Body: body, Public: public, span: span}
}

func (p *Proc) Span() lexer.Span { return p.span }

func (*Proc) moduleMember() {}

// StructMember is a single struct field declaration.
type StructMember struct {
	Name *NameDef
	Type *TypeAnnotation
	span lexer.Span
}

func NewStructMember(name *NameDef, typ *TypeAnnotation, span lexer.Span) *StructMember {
	return &StructMember{Name: name, Type: typ, span: span}
}

func (s *StructMember) Span() lexer.Span { return s.span }

// StructDef is a struct definition.
type StructDef struct {
	Name       *NameDef
	Parametric []*ParametricBinding
	Members    []*StructMember
	Public     bool
	span       lexer.Span
}

func NewStructDef(name *NameDef, parametric []*ParametricBinding,
	members []*StructMember, public bool, span lexer.Span) *StructDef {
	return &StructDef{
		Name:       name,
		Parametric: parametric,
		Members:    members,
		Public:     public,
		span:       span,
	}
}

func (s *StructDef) Span() lexer.Span { return s.span }

// IsParametric reports whether the struct declares parametric bindings.
func (s *StructDef) IsParametric() bool { return len(s.Parametric) > 0 }

func (*StructDef) moduleMember()   {}
func (*StructDef) boundNode()      {}
func (*StructDef) typeDefinition() {}

// EnumMember is a single enum member with its value expression.
type EnumMember struct {
	Name  *NameDef
	Value Expr
	span  lexer.Span
}

func NewEnumMember(name *NameDef, value Expr, span lexer.Span) *EnumMember {
	return &EnumMember{Name: name, Value: value, span: span}
}

func (e *EnumMember) Span() lexer.Span { return e.span }

// EnumDef is an enum definition over an underlying bit-vector type.
type EnumDef struct {
	Name    *NameDef
	Type    *TypeAnnotation
	Members []*EnumMember
	Public  bool
	span    lexer.Span
}

func NewEnumDef(name *NameDef, typ *TypeAnnotation, members []*EnumMember,
	public bool, span lexer.Span) *EnumDef {
	return &EnumDef{Name: name, Type: typ, Members: members, Public: public, span: span}
}

func (e *EnumDef) Span() lexer.Span { return e.span }

// HasMember reports whether the enum declares a member with the given name.
func (e *EnumDef) HasMember(name string) bool {
	for _, m := range e.Members {
		if m.Name.Name == name {
			return true
		}
	}
	return false
}

func (*EnumDef) moduleMember()   {}
func (*EnumDef) boundNode()      {}
func (*EnumDef) typeDefinition() {}

// TypeDef is a type alias definition.
type TypeDef struct {
	Name   *NameDef
	Type   *TypeAnnotation
	Public bool
	span   lexer.Span
}

func NewTypeDef(name *NameDef, typ *TypeAnnotation, public bool, span lexer.Span) *TypeDef {
	return &TypeDef{Name: name, Type: typ, Public: public, span: span}
}

func (t *TypeDef) Span() lexer.Span { return t.span }

func (*TypeDef) moduleMember()   {}
func (*TypeDef) boundNode()      {}
func (*TypeDef) typeDefinition() {}

// ConstantDef is a module-level (or let-bound) constant definition.
type ConstantDef struct {
	Name  *NameDef
	Value Expr
	span  lexer.Span
}

func NewConstantDef(name *NameDef, value Expr, span lexer.Span) *ConstantDef {
	return &ConstantDef{Name: name, Value: value, span: span}
}

func (c *ConstantDef) Span() lexer.Span { return c.span }

func (*ConstantDef) moduleMember() {}
func (*ConstantDef) boundNode()    {}

// Import introduces another module into scope; colon-refs through the bound
// name perform qualified lookup.
type Import struct {
	Path []string
	Name *NameDef
	span lexer.Span
}

func NewImport(path []string, name *NameDef, span lexer.Span) *Import {
	return &Import{Path: path, Name: name, span: span}
}

func (i *Import) Span() lexer.Span { return i.span }

// Identifier returns the name the import binds in module scope.
func (i *Import) Identifier() string { return i.Name.Name }

func (*Import) moduleMember() {}
func (*Import) boundNode()    {}

// Test is the legacy unit-test construct: `test name { body }`.
type Test struct {
	Name *NameDef
	Body Expr
	span lexer.Span
}

func NewTest(name *NameDef, body Expr, span lexer.Span) *Test {
	return &Test{Name: name, Body: body, span: span}
}

func (t *Test) Span() lexer.Span { return t.span }

func (*Test) moduleMember() {}

// TestFunction is the new-style unit-test construct: a function preceded by
// a test directive.
type TestFunction struct {
	Fn   *Function
	span lexer.Span
}

func NewTestFunction(fn *Function, span lexer.Span) *TestFunction {
	return &TestFunction{Fn: fn, span: span}
}

func (t *TestFunction) Span() lexer.Span { return t.span }

func (*TestFunction) moduleMember() {}

// QuickCheck wraps a function as a property-based test.
type QuickCheck struct {
	Fn        *Function
	TestCount int
	span      lexer.Span
}

// DefaultQuickCheckTestCount is the number of cases run when the directive
// does not specify test_count.
const DefaultQuickCheckTestCount = 1000

func NewQuickCheck(fn *Function, testCount int, span lexer.Span) *QuickCheck {
	return &QuickCheck{Fn: fn, TestCount: testCount, span: span}
}

func (q *QuickCheck) Span() lexer.Span { return q.span }

func (*QuickCheck) moduleMember() {}
