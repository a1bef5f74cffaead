package ast

import (
	"strings"

	"github.com/silica-lang/silica/internal/lexer"
)

// TypeDefinition is the set of nodes a TypeRef can resolve to: a type
// alias, a struct, an enum, or a module-qualified reference.
type TypeDefinition interface {
	Node
	typeDefinition()
}

// TypeRef is a resolved reference to a user-defined type.
type TypeRef struct {
	Text   string
	Target TypeDefinition
	span   lexer.Span
}

func NewTypeRef(text string, target TypeDefinition, span lexer.Span) *TypeRef {
	return &TypeRef{Text: text, Target: target, span: span}
}

func (t *TypeRef) Span() lexer.Span { return t.span }

// TypeAnnotation is a type as written in source: a builtin bit-vector
// type, a reference to a user type, or a tuple of annotations, with
// optional dimension and parametric expressions. Exactly one of Builtin,
// TypeRef, and Tuple is meaningful.
type TypeAnnotation struct {
	Builtin     lexer.Keyword
	TypeRef     *TypeRef
	Tuple       []*TypeAnnotation
	Dims        []Expr
	Parametrics []Expr
	span        lexer.Span
}

// NewBuiltinTypeAnnotation constructs an annotation over a builtin type
// keyword, e.g. `u32[3]`.
func NewBuiltinTypeAnnotation(builtin lexer.Keyword, dims []Expr, span lexer.Span) *TypeAnnotation {
	return &TypeAnnotation{Builtin: builtin, Dims: dims, span: span}
}

// NewTypeRefAnnotation constructs an annotation over a user type reference,
// e.g. `Point[N][2]`.
func NewTypeRefAnnotation(ref *TypeRef, dims, parametrics []Expr, span lexer.Span) *TypeAnnotation {
	return &TypeAnnotation{TypeRef: ref, Dims: dims, Parametrics: parametrics, span: span}
}

// NewTupleTypeAnnotation constructs an annotation over a tuple of
// annotations, e.g. `(u8, (u4, u4))`.
func NewTupleTypeAnnotation(members []*TypeAnnotation, dims []Expr, span lexer.Span) *TypeAnnotation {
	return &TypeAnnotation{Tuple: members, Dims: dims, span: span}
}

func (t *TypeAnnotation) Span() lexer.Span { return t.span }

// IsBuiltin reports whether the annotation names a builtin type.
func (t *TypeAnnotation) IsBuiltin() bool { return t.TypeRef == nil && t.Tuple == nil }

// IsTuple reports whether the annotation is a tuple of annotations.
func (t *TypeAnnotation) IsTuple() bool { return t.Tuple != nil }

// Text returns the annotation's base type name as written.
func (t *TypeAnnotation) Text() string {
	if t.IsTuple() {
		parts := make([]string, len(t.Tuple))
		for i, m := range t.Tuple {
			parts[i] = m.Text()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if t.IsBuiltin() {
		return string(t.Builtin)
	}
	return t.TypeRef.Text
}

// StructDefForAnnotation returns the struct definition an annotation
// ultimately refers to, following type aliases.
func StructDefForAnnotation(t *TypeAnnotation) (*StructDef, bool) {
	if t.TypeRef == nil {
		return nil, false
	}
	return structDefFor(t.TypeRef.Target, 0)
}

func structDefFor(def TypeDefinition, depth int) (*StructDef, bool) {
	// Alias chains are finite in a well-formed module; the bound guards
	// against cycles a later stage would reject.
	if depth > 16 {
		return nil, false
	}
	switch n := def.(type) {
	case *StructDef:
		return n, true
	case *TypeDef:
		if n.Type.TypeRef == nil {
			return nil, false
		}
		return structDefFor(n.Type.TypeRef.Target, depth+1)
	default:
		return nil, false
	}
}

// String renders the annotation roughly as written, for diagnostics.
func (t *TypeAnnotation) String() string {
	var sb strings.Builder
	sb.WriteString(t.Text())
	if len(t.Parametrics) > 0 {
		sb.WriteString("[...]")
	}
	for range t.Dims {
		sb.WriteString("[..]")
	}
	return sb.String()
}
