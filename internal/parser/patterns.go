package parser

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// parseNameDefOrWildcard parses a single binding name; `_` produces a
// wildcard, anything else a fresh definition added to the scope.
func (p *Parser) parseNameDefOrWildcard(b *bindings.Bindings) (ast.NameDefTreeLeaf, error) {
	tok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	if tok.Value == "_" {
		return ast.NewWildcardPattern(tok.Span), nil
	}
	nd := ast.NewNameDef(tok.Value, tok.Span)
	b.Add(nd.Name, nd)
	return nd, nil
}

// parseNameDef parses an identifier as a fresh name definition and binds
// it.
func (p *Parser) parseNameDef(b *bindings.Bindings) (*ast.NameDef, error) {
	tok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	nd := ast.NewNameDef(tok.Value, tok.Span)
	b.Add(nd.Name, nd)
	return nd, nil
}

// parseNameDefTree parses a parenthesized destructuring tree such as
// `(a, (b, _), c)`; the cursor is on the opening paren. Every non-wildcard
// leaf is bound as parsed.
func (p *Parser) parseNameDefTree(b *bindings.Bindings) (*ast.NameDefTree, error) {
	oparen, err := p.PopTokenOrError(lexer.KindOParen)
	if err != nil {
		return nil, err
	}
	nodes, cparen, err := parseCommaSeq(p, func() (*ast.NameDefTree, error) {
		isParen, err := p.peekIs(lexer.KindOParen)
		if err != nil {
			return nil, err
		}
		if isParen {
			return p.parseNameDefTree(b)
		}
		leaf, err := p.parseNameDefOrWildcard(b)
		if err != nil {
			return nil, err
		}
		return ast.NewNameDefTreeLeaf(leaf, leaf.Span()), nil
	}, tokenTerm(lexer.KindCParen))
	if err != nil {
		return nil, err
	}
	return ast.NewNameDefTreeBranch(nodes, mergeSpan(oparen.Span, cparen)), nil
}

// parsePattern parses one match pattern. Leaves may be fresh name
// definitions, references to already-bound names, enum members, literal
// numbers (bare or type-prefixed), or wildcards; parenthesized patterns
// destructure tuples.
func (p *Parser) parsePattern(b *bindings.Bindings) (*ast.NameDefTree, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Kind == lexer.KindOParen:
		return p.parseTuplePattern(b)

	case tok.Kind == lexer.KindIdent:
		if _, err := p.PopToken(); err != nil {
			return nil, err
		}
		next, err := p.PeekToken()
		if err != nil {
			return nil, err
		}
		if next.Kind == lexer.KindDoubleColon {
			ref, err := p.parseColonRef(b, tok)
			if err != nil {
				return nil, err
			}
			enumRef, ok := ref.(*ast.EnumRef)
			if !ok {
				return nil, diag.New(diag.StageParser, diag.CodeParseBadColonRef,
					ref.Span(), "only enum member references may appear in match patterns")
			}
			return ast.NewNameDefTreeLeaf(enumRef, enumRef.Span()), nil
		}
		if tok.Value == "_" {
			return ast.NewNameDefTreeLeaf(ast.NewWildcardPattern(tok.Span), tok.Span), nil
		}
		// An already-bound name matches by value; an unbound name binds
		// fresh.
		if bn, ok := b.ResolveNode(tok.Value); ok {
			ref := ast.NewNameRef(bindings.BoundNodeToAnyNameDef(bn), tok.Value, tok.Span)
			return ast.NewNameDefTreeLeaf(ref, tok.Span), nil
		}
		nd := ast.NewNameDef(tok.Value, tok.Span)
		b.Add(nd.Name, nd)
		return ast.NewNameDefTreeLeaf(nd, tok.Span), nil

	case tok.Kind == lexer.KindNumber || tok.Kind == lexer.KindChar ||
		tok.IsKeyword(lexer.KwTrue) || tok.IsKeyword(lexer.KwFalse):
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return ast.NewNameDefTreeLeaf(num, num.Span()), nil

	case tok.IsTypeKeyword():
		// Type-prefixed literal pattern, e.g. `u8:0`.
		typ, err := p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindColon); err != nil {
			return nil, err
		}
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		num.Type = typ
		return ast.NewNameDefTreeLeaf(num, mergeSpan(typ.Span(), num.Span())), nil
	}

	return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
		tok.Span, "expected a match pattern, found %s", tok)
}

// parseTuplePattern parses `(pat, pat, ...)` recursively.
func (p *Parser) parseTuplePattern(b *bindings.Bindings) (*ast.NameDefTree, error) {
	oparen, err := p.PopTokenOrError(lexer.KindOParen)
	if err != nil {
		return nil, err
	}
	nodes, cparen, err := parseCommaSeq(p, func() (*ast.NameDefTree, error) {
		return p.parsePattern(b)
	}, tokenTerm(lexer.KindCParen))
	if err != nil {
		return nil, err
	}
	return ast.NewNameDefTreeBranch(nodes, mergeSpan(oparen.Span, cparen)), nil
}
