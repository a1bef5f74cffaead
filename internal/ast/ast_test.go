package ast

import (
	"testing"

	"github.com/silica-lang/silica/internal/lexer"
)

func span(line, col int) lexer.Span {
	return lexer.Span{Line: line, Column: col}
}

func TestModule_GetFunction(t *testing.T) {
	m := NewModule("m")
	f := NewFunction(NewNameDef("f", span(1, 4)), nil, nil, nil, nil, false, span(1, 1))
	m.AddTop(f)
	m.AddTop(NewConstantDef(NewNameDef("C", span(2, 7)), nil, span(2, 1)))

	got, ok := m.GetFunction("f")
	if !ok || got != f {
		t.Fatalf("GetFunction(f) = %v, %v; want the added function", got, ok)
	}
	if _, ok := m.GetFunction("C"); ok {
		t.Fatalf("a constant must not be returned as a function")
	}
	if got := m.Functions(); len(got) != 1 {
		t.Fatalf("got %d functions, want 1", len(got))
	}
}

func TestEnumDef_HasMember(t *testing.T) {
	e := NewEnumDef(NewNameDef("Color", span(1, 6)), nil, []*EnumMember{
		NewEnumMember(NewNameDef("RED", span(2, 5)), nil, span(2, 5)),
	}, false, span(1, 1))
	if !e.HasMember("RED") {
		t.Errorf("expected RED to be a member")
	}
	if e.HasMember("BLUE") {
		t.Errorf("BLUE must not be a member")
	}
}

func TestStructDefForAnnotation_FollowsAliases(t *testing.T) {
	sd := NewStructDef(NewNameDef("Point", span(1, 8)), nil, nil, false, span(1, 1))
	direct := NewTypeRefAnnotation(NewTypeRef("Point", sd, span(3, 1)), nil, nil, span(3, 1))

	alias := NewTypeDef(NewNameDef("P", span(2, 6)), direct, false, span(2, 1))
	aliased := NewTypeRefAnnotation(NewTypeRef("P", alias, span(4, 1)), nil, nil, span(4, 1))

	got, ok := StructDefForAnnotation(aliased)
	if !ok || got != sd {
		t.Fatalf("alias did not resolve to the struct definition")
	}

	builtin := NewBuiltinTypeAnnotation("u32", nil, span(5, 1))
	if _, ok := StructDefForAnnotation(builtin); ok {
		t.Fatalf("builtin annotations must not resolve to a struct")
	}
}

func TestNameDefTree_FlattenOrder(t *testing.T) {
	a := NewNameDef("a", span(1, 2))
	b := NewNameDef("b", span(1, 6))
	w := NewWildcardPattern(span(1, 9))
	tree := NewNameDefTreeBranch([]*NameDefTree{
		NewNameDefTreeLeaf(a, a.Span()),
		NewNameDefTreeBranch([]*NameDefTree{
			NewNameDefTreeLeaf(b, b.Span()),
			NewNameDefTreeLeaf(w, w.Span()),
		}, span(1, 5)),
	}, span(1, 1))

	leaves := tree.Flatten()
	if len(leaves) != 3 {
		t.Fatalf("got %d leaves, want 3", len(leaves))
	}
	if leaves[0] != NameDefTreeLeaf(a) || leaves[1] != NameDefTreeLeaf(b) || leaves[2] != NameDefTreeLeaf(w) {
		t.Fatalf("leaves out of order")
	}
	if tree.IsLeaf() {
		t.Errorf("branch reported as leaf")
	}
	if tree.LeafCount() != 3 {
		t.Errorf("got leaf count %d, want 3", tree.LeafCount())
	}
}

func TestTypeAnnotation_Text(t *testing.T) {
	builtin := NewBuiltinTypeAnnotation("u8", nil, span(1, 1))
	if builtin.Text() != "u8" {
		t.Errorf("got %q, want u8", builtin.Text())
	}
	sd := NewStructDef(NewNameDef("Point", span(1, 8)), nil, nil, false, span(1, 1))
	ref := NewTypeRefAnnotation(NewTypeRef("Point", sd, span(2, 1)), nil, nil, span(2, 1))
	if ref.Text() != "Point" {
		t.Errorf("got %q, want Point", ref.Text())
	}
	if ref.IsBuiltin() {
		t.Errorf("type reference reported as builtin")
	}
}
