package parser

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// parseTypeAnnotation parses a type as written in source: a builtin
// bit-vector type, a parenthesized tuple of types, or a user type
// reference, each with optional bracketed dimensions, and parametric
// arguments when the referent is a parametric struct. tok is a leading
// token the caller already consumed, or nil.
func (p *Parser) parseTypeAnnotation(b *bindings.Bindings, tok *lexer.Token) (*ast.TypeAnnotation, error) {
	if tok == nil {
		t, err := p.PopToken()
		if err != nil {
			return nil, err
		}
		tok = &t
	}

	if tok.Kind == lexer.KindOParen {
		members, cparen, err := parseCommaSeq(p, func() (*ast.TypeAnnotation, error) {
			return p.parseTypeAnnotation(b, nil)
		}, tokenTerm(lexer.KindCParen))
		if err != nil {
			return nil, err
		}
		dims, err := p.parseDims(b)
		if err != nil {
			return nil, err
		}
		span := mergeSpan(tok.Span, cparen)
		if len(dims) > 0 {
			span = mergeSpan(span, dims[len(dims)-1].Span())
		}
		return ast.NewTupleTypeAnnotation(members, dims, span), nil
	}

	if tok.IsTypeKeyword() {
		dims, err := p.parseDims(b)
		if err != nil {
			return nil, err
		}
		if lexer.TypeKeywordNeedsDims(tok.Keyword) && len(dims) == 0 {
			return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
				tok.Span, "type %q requires an explicit dimension, e.g. %s[8]",
				string(tok.Keyword), string(tok.Keyword))
		}
		span := tok.Span
		if len(dims) > 0 {
			span = mergeSpan(span, dims[len(dims)-1].Span())
		}
		return ast.NewBuiltinTypeAnnotation(tok.Keyword, dims, span), nil
	}

	if tok.Kind != lexer.KindIdent {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
			tok.Span, "expected a type, found %s", *tok)
	}

	ref, err := p.parseTypeRef(b, *tok)
	if err != nil {
		return nil, err
	}

	span := mergeSpan(tok.Span, ref.Span())
	var parametrics []ast.Expr
	if sd, ok := structDefForTypeRef(ref); ok && sd.IsParametric() {
		droppedBrack, err := p.TryDropToken(lexer.KindOBrack)
		if err != nil {
			return nil, err
		}
		if droppedBrack {
			var cbrack lexer.Span
			parametrics, cbrack, err = parseCommaSeq(p, func() (ast.Expr, error) {
				return p.parseDim(b)
			}, tokenTerm(lexer.KindCBrack))
			if err != nil {
				return nil, err
			}
			span = mergeSpan(span, cbrack)
		}
	}

	dims, err := p.parseDims(b)
	if err != nil {
		return nil, err
	}
	if len(dims) > 0 {
		span = mergeSpan(span, dims[len(dims)-1].Span())
	}
	return ast.NewTypeRefAnnotation(ref, dims, parametrics, span), nil
}

func structDefForTypeRef(ref *ast.TypeRef) (*ast.StructDef, bool) {
	annotation := ast.NewTypeRefAnnotation(ref, nil, nil, ref.Span())
	return ast.StructDefForAnnotation(annotation)
}

// parseDims parses zero or more bracketed dimensions, e.g. the `[2][N]` in
// `u32[2][N]`.
func (p *Parser) parseDims(b *bindings.Bindings) ([]ast.Expr, error) {
	var dims []ast.Expr
	for {
		dropped, err := p.TryDropToken(lexer.KindOBrack)
		if err != nil {
			return nil, err
		}
		if !dropped {
			return dims, nil
		}
		dim, err := p.parseDim(b)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindCBrack); err != nil {
			return nil, err
		}
		dims = append(dims, dim)
	}
}

// parseDim parses a single dimension expression: a number literal or a
// reference to a bound name.
func (p *Parser) parseDim(b *bindings.Bindings) (ast.Expr, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case lexer.KindNumber, lexer.KindChar:
		return p.parseNumber()
	case lexer.KindIdent:
		if _, err := p.PopToken(); err != nil {
			return nil, err
		}
		return p.parseNameRef(b, tok)
	}
	return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
		tok.Span, "expected a dimension (number or bound name), found %s", tok)
}

// parseTypeRef resolves an already-consumed identifier to a type
// definition, handling the module-qualified form `mod::Type`.
func (p *Parser) parseTypeRef(b *bindings.Bindings, tok lexer.Token) (*ast.TypeRef, error) {
	isDouble, err := p.peekIs(lexer.KindDoubleColon)
	if err != nil {
		return nil, err
	}
	if isDouble {
		return p.parseModTypeRef(b, tok)
	}

	bn, err := b.ResolveNodeOrError(tok.Value, tok.Span)
	if err != nil {
		return nil, err
	}
	def, ok := bn.(ast.TypeDefinition)
	if !ok {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
			tok.Span, "expected a type; %q does not name a type", tok.Value)
	}
	return ast.NewTypeRef(tok.Value, def, tok.Span), nil
}

// parseModTypeRef parses the `::Type` remainder of a module-qualified type
// reference; the subject must resolve to an import.
func (p *Parser) parseModTypeRef(b *bindings.Bindings, subject lexer.Token) (*ast.TypeRef, error) {
	if err := p.DropTokenOrError(lexer.KindDoubleColon); err != nil {
		return nil, err
	}
	attr, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	bn, err := b.ResolveNodeOrError(subject.Value, subject.Span)
	if err != nil {
		return nil, err
	}
	imp, ok := bn.(*ast.Import)
	if !ok {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseBadColonRef,
			subject.Span, "name %q does not refer to an imported module", subject.Value)
	}
	span := mergeSpan(subject.Span, attr.Span)
	modRef := ast.NewModRef(imp, attr.Value, span)
	return ast.NewTypeRef(subject.Value+"::"+attr.Value, modRef, span), nil
}
