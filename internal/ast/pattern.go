package ast

import "github.com/silica-lang/silica/internal/lexer"

// NameDefTreeLeaf is the set of nodes that may sit at a leaf of a
// NameDefTree: a fresh binding, a reference to an existing one, an enum
// member, a literal number, or the wildcard.
type NameDefTreeLeaf interface {
	Node
	nameDefTreeLeaf()
}

func (*NameDef) nameDefTreeLeaf()         {}
func (*NameRef) nameDefTreeLeaf()         {}
func (*EnumRef) nameDefTreeLeaf()         {}
func (*Number) nameDefTreeLeaf()          {}
func (*WildcardPattern) nameDefTreeLeaf() {}

// NameDefTree is a recursive tree mirroring nested tuple destructuring;
// exactly one of Leaf and Nodes is set. The parser preserves the written
// shape; arity checking against the matched value is a later-stage concern.
type NameDefTree struct {
	Leaf  NameDefTreeLeaf
	Nodes []*NameDefTree
	span  lexer.Span
}

// NewNameDefTreeLeaf constructs a leaf tree.
func NewNameDefTreeLeaf(leaf NameDefTreeLeaf, span lexer.Span) *NameDefTree {
	return &NameDefTree{Leaf: leaf, span: span}
}

// NewNameDefTreeBranch constructs an interior tree node.
func NewNameDefTreeBranch(nodes []*NameDefTree, span lexer.Span) *NameDefTree {
	return &NameDefTree{Nodes: nodes, span: span}
}

func (t *NameDefTree) Span() lexer.Span { return t.span }

// IsLeaf reports whether the tree is a single leaf.
func (t *NameDefTree) IsLeaf() bool { return t.Leaf != nil }

// Flatten returns the tree's leaves in left-to-right order.
func (t *NameDefTree) Flatten() []NameDefTreeLeaf {
	if t.IsLeaf() {
		return []NameDefTreeLeaf{t.Leaf}
	}
	var leaves []NameDefTreeLeaf
	for _, node := range t.Nodes {
		leaves = append(leaves, node.Flatten()...)
	}
	return leaves
}

// LeafCount returns the number of leaves in the tree.
func (t *NameDefTree) LeafCount() int {
	return len(t.Flatten())
}
