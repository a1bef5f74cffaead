package parser

import (
	"strconv"

	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// parseFunctionInternal parses
// `fn [X: u32, ...] name(params) -> ret { body }` with the parametric
// bindings optional and the return type optional. Parametric names and
// params are bound in a child scope; the function name is bound in the
// enclosing scope so later definitions (and the body, via the chain) can
// refer to it.
func (p *Parser) parseFunctionInternal(isPublic bool, outer *bindings.Bindings) (*ast.Function, error) {
	fnTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	if !fnTok.IsKeyword(lexer.KwFn) {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseExpectedKeyword,
			fnTok.Span, "expected keyword 'fn', found %s", fnTok)
	}

	scope := bindings.New(outer)

	var parametric []*ast.ParametricBinding
	droppedBrack, err := p.TryDropToken(lexer.KindOBrack)
	if err != nil {
		return nil, err
	}
	if droppedBrack {
		parametric, err = p.parseParametricBindings(scope)
		if err != nil {
			return nil, err
		}
	}

	name, err := p.parseNameDef(outer)
	if err != nil {
		return nil, err
	}

	params, err := p.parseParams(scope)
	if err != nil {
		return nil, err
	}

	var returnType *ast.TypeAnnotation
	droppedArrow, err := p.TryDropToken(lexer.KindArrow)
	if err != nil {
		return nil, err
	}
	if droppedArrow {
		returnType, err = p.parseTypeAnnotation(scope, nil)
		if err != nil {
			return nil, err
		}
	}

	body, err := p.parseBlockExpression(scope)
	if err != nil {
		return nil, err
	}

	span := spanToNode(fnTok.Span, body)
	return ast.NewFunction(name, parametric, params, returnType, body, isPublic, span), nil
}

// parseProcInternal parses `proc name(params) { body }`. A proc is a
// process body with no return type.
func (p *Parser) parseProcInternal(isPublic bool, outer *bindings.Bindings) (*ast.Proc, error) {
	procTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	if !procTok.IsKeyword(lexer.KwProc) {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseExpectedKeyword,
			procTok.Span, "expected keyword 'proc', found %s", procTok)
	}

	scope := bindings.New(outer)
	name, err := p.parseNameDef(outer)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams(scope)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockExpression(scope)
	if err != nil {
		return nil, err
	}
	return ast.NewProc(name, params, body, isPublic, spanToNode(procTok.Span, body)), nil
}

// parseParametricBindings parses the `X: u32, Y: u32 = X + X` list inside
// the brackets of a parametric definition; the opening bracket is already
// consumed. Each name is bound as soon as it parses so later defaults may
// reference earlier names.
func (p *Parser) parseParametricBindings(b *bindings.Bindings) ([]*ast.ParametricBinding, error) {
	parametrics, _, err := parseCommaSeq(p, func() (*ast.ParametricBinding, error) {
		name, err := p.parseNameDef(b)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindColon); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
		var def ast.Expr
		droppedEq, err := p.TryDropToken(lexer.KindEq)
		if err != nil {
			return nil, err
		}
		if droppedEq {
			def, err = p.ParseExpression(b)
			if err != nil {
				return nil, err
			}
		}
		span := mergeSpan(name.Span(), typ.Span())
		if def != nil {
			span = mergeSpan(span, def.Span())
		}
		return ast.NewParametricBinding(name, typ, def, span), nil
	}, tokenTerm(lexer.KindCBrack))
	return parametrics, err
}

// parseParams parses a parenthesized `name: type` parameter list,
// binding each parameter name.
func (p *Parser) parseParams(b *bindings.Bindings) ([]*ast.Param, error) {
	if err := p.DropTokenOrError(lexer.KindOParen); err != nil {
		return nil, err
	}
	params, _, err := parseCommaSeq(p, func() (*ast.Param, error) {
		name, err := p.parseNameDef(b)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindColon); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
		return ast.NewParam(name, typ, mergeSpan(name.Span(), typ.Span())), nil
	}, tokenTerm(lexer.KindCParen))
	return params, err
}

// parseStruct parses
// `struct [N: u32] Name { member: type, ... }`. Parametric names are
// visible in member types; the struct name is bound once the definition
// completes.
func (p *Parser) parseStruct(isPublic bool, b *bindings.Bindings) (*ast.StructDef, error) {
	structTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}

	scope := bindings.New(b)
	var parametric []*ast.ParametricBinding
	droppedBrack, err := p.TryDropToken(lexer.KindOBrack)
	if err != nil {
		return nil, err
	}
	if droppedBrack {
		parametric, err = p.parseParametricBindings(scope)
		if err != nil {
			return nil, err
		}
	}

	nameTok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	name := ast.NewNameDef(nameTok.Value, nameTok.Span)

	if err := p.DropTokenOrError(lexer.KindOBrace); err != nil {
		return nil, err
	}
	members, cbrace, err := parseCommaSeq(p, func() (*ast.StructMember, error) {
		memberTok, err := p.PopTokenOrError(lexer.KindIdent)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindColon); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeAnnotation(scope, nil)
		if err != nil {
			return nil, err
		}
		nd := ast.NewNameDef(memberTok.Value, memberTok.Span)
		return ast.NewStructMember(nd, typ, mergeSpan(memberTok.Span, typ.Span())), nil
	}, tokenTerm(lexer.KindCBrace))
	if err != nil {
		return nil, err
	}

	def := ast.NewStructDef(name, parametric, members, isPublic,
		mergeSpan(structTok.Span, cbrace))
	b.Add(name.Name, def)
	return def, nil
}

// parseEnum parses `enum Name : type { MEMBER = value, ... }`. Member
// values are numbers (bare or type-prefixed); bare identifiers take the
// reserved constant-reference production.
func (p *Parser) parseEnum(isPublic bool, b *bindings.Bindings) (*ast.EnumDef, error) {
	enumTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	name := ast.NewNameDef(nameTok.Value, nameTok.Span)

	if err := p.DropTokenOrError(lexer.KindColon); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeAnnotation(b, nil)
	if err != nil {
		return nil, err
	}

	if err := p.DropTokenOrError(lexer.KindOBrace); err != nil {
		return nil, err
	}
	members, cbrace, err := parseCommaSeq(p, func() (*ast.EnumMember, error) {
		memberTok, err := p.PopTokenOrError(lexer.KindIdent)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindEq); err != nil {
			return nil, err
		}
		value, err := p.parseEnumValue(b)
		if err != nil {
			return nil, err
		}
		nd := ast.NewNameDef(memberTok.Value, memberTok.Span)
		return ast.NewEnumMember(nd, value, spanToNode(memberTok.Span, value)), nil
	}, tokenTerm(lexer.KindCBrace))
	if err != nil {
		return nil, err
	}

	def := ast.NewEnumDef(name, typ, members, isPublic,
		mergeSpan(enumTok.Span, cbrace))
	b.Add(name.Name, def)
	return def, nil
}

// parseEnumValue parses the right-hand side of an enum member assignment.
func (p *Parser) parseEnumValue(b *bindings.Bindings) (ast.Expr, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == lexer.KindNumber || tok.Kind == lexer.KindChar ||
		tok.IsKeyword(lexer.KwTrue) || tok.IsKeyword(lexer.KwFalse):
		return p.parseNumber()
	case tok.IsTypeKeyword():
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
		return num, nil
	case tok.Kind == lexer.KindIdent:
		return p.parseConstRef()
	}
	return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
		tok.Span, "expected a number or constant name for enum value, found %s", tok)
}

// parseConstRef is the reserved constant-reference production. Parsing it
// yields a distinct unimplemented-construct error so callers that hit it
// fail fast rather than misparse.
func (p *Parser) parseConstRef() (ast.Expr, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}
	return nil, diag.New(diag.StageParser, diag.CodeParseUnimplemented,
		tok.Span, "constant references are not yet supported here")
}

// parseTypeDefinition parses `type Name = type;`.
func (p *Parser) parseTypeDefinition(isPublic bool, b *bindings.Bindings) (*ast.TypeDef, error) {
	typeTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	name, err := p.parseNameDefUnbound()
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindEq); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeAnnotation(b, nil)
	if err != nil {
		return nil, err
	}
	semi, err := p.PopTokenOrError(lexer.KindSemi)
	if err != nil {
		return nil, err
	}
	def := ast.NewTypeDef(name, typ, isPublic, mergeSpan(typeTok.Span, semi.Span))
	b.Add(name.Name, def)
	return def, nil
}

// parseConstantDef parses a module-level `const NAME = value;`.
func (p *Parser) parseConstantDef(b *bindings.Bindings) (*ast.ConstantDef, error) {
	constTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	name, err := p.parseNameDefUnbound()
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindEq); err != nil {
		return nil, err
	}
	value, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	semi, err := p.PopTokenOrError(lexer.KindSemi)
	if err != nil {
		return nil, err
	}
	def := ast.NewConstantDef(name, value, mergeSpan(constTok.Span, semi.Span))
	b.Add(name.Name, def)
	return def, nil
}

// parseNameDefUnbound parses an identifier as a name definition without
// binding it; callers bind the completed definition node instead.
func (p *Parser) parseNameDefUnbound() (*ast.NameDef, error) {
	tok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	return ast.NewNameDef(tok.Value, tok.Span), nil
}

// parseImport parses `import a.b.c` with an optional `as alias`.
func (p *Parser) parseImport(b *bindings.Bindings) (*ast.Import, error) {
	importTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	first, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	path := []string{first.Value}
	last := first
	for {
		dropped, err := p.TryDropToken(lexer.KindDot)
		if err != nil {
			return nil, err
		}
		if !dropped {
			break
		}
		part, err := p.PopTokenOrError(lexer.KindIdent)
		if err != nil {
			return nil, err
		}
		path = append(path, part.Value)
		last = part
	}

	name := ast.NewNameDef(last.Value, last.Span)
	droppedAs, err := p.TryDropKeyword(lexer.KwAs)
	if err != nil {
		return nil, err
	}
	if droppedAs {
		alias, err := p.PopTokenOrError(lexer.KindIdent)
		if err != nil {
			return nil, err
		}
		name = ast.NewNameDef(alias.Value, alias.Span)
		last = alias
	}

	imp := ast.NewImport(path, name, mergeSpan(importTok.Span, last.Span))
	b.Add(name.Name, imp)
	return imp, nil
}

// parseTestConstruct parses the legacy `test name { body }` form. Test
// bodies get a fresh child scope.
func (p *Parser) parseTestConstruct(b *bindings.Bindings) (*ast.Test, error) {
	testTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	if prior, ok := p.nameToTest[nameTok.Value]; ok {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseDuplicateDef,
			nameTok.Span, "test %q is defined twice (previously at %s)",
			nameTok.Value, prior.Name.Span())
	}
	body, err := p.parseBlockExpression(bindings.New(b))
	if err != nil {
		return nil, err
	}
	name := ast.NewNameDef(nameTok.Value, nameTok.Span)
	t := ast.NewTest(name, body, spanToNode(testTok.Span, body))
	p.nameToTest[nameTok.Value] = t
	return t, nil
}

// parseDirective parses a `#![...]` directive. The cfg directive mutates
// parser configuration and produces no module member; test and quickcheck
// wrap the function definition that follows them.
func (p *Parser) parseDirective(b *bindings.Bindings) (ast.ModuleMember, error) {
	hashBang, err := p.PopTokenOrError(lexer.KindHashBang)
	if err != nil {
		return nil, err
	}
	if err := p.DropTokenOrError(lexer.KindOBrack); err != nil {
		return nil, err
	}
	// `test` lexes as a keyword, so directive names admit both identifier
	// and keyword tokens.
	nameTok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	if nameTok.Kind != lexer.KindIdent && nameTok.Kind != lexer.KindKeyword {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			nameTok.Span, "expected a directive name, found %s", nameTok)
	}

	switch nameTok.Value {
	case "test":
		if err := p.DropTokenOrError(lexer.KindCBrack); err != nil {
			return nil, err
		}
		fn, err := p.parseDirectiveFunction(b)
		if err != nil {
			return nil, err
		}
		return ast.NewTestFunction(fn, spanToNode(hashBang.Span, fn)), nil

	case "quickcheck":
		testCount := ast.DefaultQuickCheckTestCount
		droppedParen, err := p.TryDropToken(lexer.KindOParen)
		if err != nil {
			return nil, err
		}
		if droppedParen {
			testCount, err = p.parseQuickCheckTestCount()
			if err != nil {
				return nil, err
			}
		}
		if err := p.DropTokenOrError(lexer.KindCBrack); err != nil {
			return nil, err
		}
		fn, err := p.parseDirectiveFunction(b)
		if err != nil {
			return nil, err
		}
		return ast.NewQuickCheck(fn, testCount, spanToNode(hashBang.Span, fn)), nil

	case "cfg":
		if err := p.parseCfgDirective(); err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindCBrack); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return nil, diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
		nameTok.Span, "unknown directive: %q", nameTok.Value)
}

// parseDirectiveFunction expects the function definition that a test or
// quickcheck directive annotates.
func (p *Parser) parseDirectiveFunction(b *bindings.Bindings) (*ast.Function, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}
	if !tok.IsKeyword(lexer.KwFn) {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			tok.Span, "expected a function definition after directive, found %s", tok)
	}
	return p.ParseFunction(false, b)
}

// parseQuickCheckTestCount parses `test_count = N)` after the opening
// paren of a quickcheck directive.
func (p *Parser) parseQuickCheckTestCount() (int, error) {
	key, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return 0, err
	}
	if key.Value != "test_count" {
		return 0, diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			key.Span, "unknown quickcheck parameter: %q", key.Value)
	}
	if err := p.DropTokenOrError(lexer.KindEq); err != nil {
		return 0, err
	}
	numTok, err := p.PopTokenOrError(lexer.KindNumber)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(numTok.Value)
	if err != nil {
		return 0, diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			numTok.Span, "quickcheck test_count must be a decimal integer, got %q", numTok.Value)
	}
	if err := p.DropTokenOrError(lexer.KindCParen); err != nil {
		return 0, err
	}
	return n, nil
}

// parseCfgDirective parses the `(key = value)` body of a cfg directive.
// The only recognized key is let_terminator_is_semi.
func (p *Parser) parseCfgDirective() error {
	if err := p.DropTokenOrError(lexer.KindOParen); err != nil {
		return err
	}
	key, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return err
	}
	if key.Value != "let_terminator_is_semi" {
		return diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			key.Span, "unknown cfg key: %q", key.Value)
	}
	if err := p.DropTokenOrError(lexer.KindEq); err != nil {
		return err
	}
	value, err := p.PopToken()
	if err != nil {
		return err
	}
	switch {
	case value.IsKeyword(lexer.KwTrue):
		p.letTerminatorIsSemi = true
	case value.IsKeyword(lexer.KwFalse):
		p.letTerminatorIsSemi = false
	default:
		return diag.Newf(diag.StageParser, diag.CodeParseBadDirective,
			value.Span, "cfg value must be true or false, found %s", value)
	}
	return p.DropTokenOrError(lexer.KindCParen)
}
