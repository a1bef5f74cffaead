package parser

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// parseBlockExpression parses `{ expr }`, evaluating the body in the given
// scope.
func (p *Parser) parseBlockExpression(b *bindings.Bindings) (ast.Expr, error) {
	if err := p.DropTokenOrError(lexer.KindOBrace); err != nil {
		return nil, err
	}
	body, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindCBrace); err != nil {
		return nil, err
	}
	return body, nil
}

// parseMatch parses `match subject { pattern | pattern => body, ... }`.
// Each arm gets its own scope so pattern-bound names are visible only in
// that arm's body.
func (p *Parser) parseMatch(b *bindings.Bindings) (ast.Expr, error) {
	matchTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	matched, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindOBrace); err != nil {
		return nil, err
	}
	arms, cbrace, err := parseCommaSeq(p, func() (*ast.MatchArm, error) {
		armScope := bindings.New(b)
		first, err := p.parsePattern(armScope)
		if err != nil {
			return nil, err
		}
		patterns := []*ast.NameDefTree{first}
		for {
			dropped, err := p.TryDropToken(lexer.KindBar)
			if err != nil {
				return nil, err
			}
			if !dropped {
				break
			}
			pat, err := p.parsePattern(armScope)
			if err != nil {
				return nil, err
			}
			patterns = append(patterns, pat)
		}
		if err := p.DropTokenOrError(lexer.KindFatArrow); err != nil {
			return nil, err
		}
		body, err := p.ParseExpression(armScope)
		if err != nil {
			return nil, err
		}
		return ast.NewMatchArm(patterns, body, mergeSpan(first.Span(), body.Span())), nil
	}, tokenTerm(lexer.KindCBrace))
	if err != nil {
		return nil, err
	}
	if len(arms) == 0 {
		return nil, diag.New(diag.StageParser, diag.CodeParseUnexpectedToken,
			matchTok.Span, "match expression must have at least one arm")
	}
	return ast.NewMatch(matched, arms, mergeSpan(matchTok.Span, cbrace)), nil
}

// parseWhile parses `while test { body }(init)`. The node is pushed onto
// the loop stack before the body parses so carry expressions inside can
// back-reference it; the deferred pop keeps the stack balanced on error
// exits.
func (p *Parser) parseWhile(b *bindings.Bindings) (ast.Expr, error) {
	whileTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}

	w := &ast.While{}
	p.loopStack = append(p.loopStack, w)
	defer func() { p.loopStack = p.loopStack[:len(p.loopStack)-1] }()

	w.Test, err = p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	w.Body, err = p.parseBlockExpression(bindings.New(b))
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindOParen); err != nil {
		return nil, err
	}
	w.Init, err = p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	cparen, err := p.PopTokenOrError(lexer.KindCParen)
	if err != nil {
		return nil, err
	}
	w.SetSpan(mergeSpan(whileTok.Span, cparen.Span))
	return w, nil
}

// parseFor parses `for names in iterable { body }(init)`. The bound names
// are visible in the body but not in the iterable or init expressions.
func (p *Parser) parseFor(b *bindings.Bindings) (ast.Expr, error) {
	forTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	bodyScope := bindings.New(b)

	names, err := p.parseLetNames(bodyScope)
	if err != nil {
		return nil, err
	}
	var typ *ast.TypeAnnotation
	droppedColon, err := p.TryDropToken(lexer.KindColon)
	if err != nil {
		return nil, err
	}
	if droppedColon {
		typ, err = p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
	}
	if err := p.DropKeywordOrError(lexer.KwIn); err != nil {
		return nil, err
	}
	iterable, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpression(bodyScope)
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindOParen); err != nil {
		return nil, err
	}
	init, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	cparen, err := p.PopTokenOrError(lexer.KindCParen)
	if err != nil {
		return nil, err
	}
	return ast.NewFor(names, typ, iterable, body, init, mergeSpan(forTok.Span, cparen.Span)), nil
}

// parseLet parses `let names = rhs in body` (or with ';' in place of 'in'
// when the cfg directive selected semicolon terminators) and the local
// constant form `const NAME = rhs in body`. Bound names are visible only in
// the body.
func (p *Parser) parseLet(b *bindings.Bindings) (ast.Expr, error) {
	letTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	isConst := letTok.IsKeyword(lexer.KwConst)

	bodyScope := bindings.New(b)
	names, err := p.parseLetNames(bodyScope)
	if err != nil {
		return nil, err
	}
	if isConst && !names.IsLeaf() {
		return nil, diag.New(diag.StageParser, diag.CodeParseUnexpectedToken,
			names.Span(), "constant definitions cannot destructure; a single name is required")
	}

	var typ *ast.TypeAnnotation
	droppedColon, err := p.TryDropToken(lexer.KindColon)
	if err != nil {
		return nil, err
	}
	if droppedColon {
		typ, err = p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
	}
	if err := p.DropTokenOrError(lexer.KindEq); err != nil {
		return nil, err
	}
	rhs, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}

	if isConst {
		// Rebind the name to a constant definition so later colon-ref
		// probes see its constness.
		if nd, ok := names.Leaf.(*ast.NameDef); ok {
			cd := ast.NewConstantDef(nd, rhs, mergeSpan(letTok.Span, rhs.Span()))
			bodyScope.Add(nd.Name, cd)
		}
	}

	if p.letTerminatorIsSemi {
		if err := p.DropTokenOrError(lexer.KindSemi); err != nil {
			return nil, err
		}
	} else {
		if err := p.DropKeywordOrError(lexer.KwIn); err != nil {
			return nil, err
		}
	}
	body, err := p.ParseExpression(bodyScope)
	if err != nil {
		return nil, err
	}
	return ast.NewLet(names, typ, rhs, body, isConst, spanToNode(letTok.Span, body)), nil
}

// parseLetNames parses the name side of a let or for binding: either a
// single name (or wildcard) or a parenthesized destructuring tree.
func (p *Parser) parseLetNames(b *bindings.Bindings) (*ast.NameDefTree, error) {
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
}
