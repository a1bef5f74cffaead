// Package bindings implements the scope-chain name table the parser uses to
// resolve identifiers as it goes. Frames never own AST nodes; they hold
// identity references into the module under construction.
package bindings

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// Bindings is one scope frame. Resolution searches the local frame, then
// walks the parent chain outward. Insertion shadows by default; duplicate
// definition checking, where wanted, is a caller concern.
type Bindings struct {
	parent *Bindings
	local  map[string]ast.BoundNode
}

// New creates a frame delegating to parent; a nil parent makes a root
// (module-level) frame.
func New(parent *Bindings) *Bindings {
	return &Bindings{
		parent: parent,
		local:  make(map[string]ast.BoundNode),
	}
}

// Add inserts into the local frame, shadowing any outer binding.
func (b *Bindings) Add(name string, bn ast.BoundNode) {
	b.local[name] = bn
}

// ResolveNode is the non-failing lookup used for speculative
// disambiguation.
func (b *Bindings) ResolveNode(name string) (ast.BoundNode, bool) {
	for frame := b; frame != nil; frame = frame.parent {
		if bn, ok := frame.local[name]; ok {
			return bn, true
		}
	}
	return nil, false
}

// ResolveNodeOrError returns the full tagged binding for name, or a
// name-resolution error carrying the querying span.
func (b *Bindings) ResolveNodeOrError(name string, span lexer.Span) (ast.BoundNode, error) {
	if bn, ok := b.ResolveNode(name); ok {
		return bn, nil
	}
	return nil, diag.Newf(diag.StageParser, diag.CodeParseUnresolvedName,
		span, "cannot find a definition for name: %q", name)
}

// ResolveNameOrError returns the introduction site (name def) that name
// ultimately refers to.
func (b *Bindings) ResolveNameOrError(name string, span lexer.Span) (ast.AnyNameDef, error) {
	bn, err := b.ResolveNodeOrError(name, span)
	if err != nil {
		return nil, err
	}
	return BoundNodeToAnyNameDef(bn), nil
}

// BoundNodeToAnyNameDef projects a bound node onto the name def that
// introduced it.
func BoundNodeToAnyNameDef(bn ast.BoundNode) ast.AnyNameDef {
	switch n := bn.(type) {
	case *ast.NameDef:
		return n
	case *ast.BuiltinNameDef:
		return n
	case *ast.Function:
		return n.Name
	case *ast.EnumDef:
		return n.Name
	case *ast.TypeDef:
		return n.Name
	case *ast.ConstantDef:
		return n.Name
	case *ast.StructDef:
		return n.Name
	case *ast.Import:
		return n.Name
	default:
		panic("unhandled bound node variant")
	}
}
