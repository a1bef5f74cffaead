package parser

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// Precedence is encoded entirely by call order: each production parses its
// operands with the next-tighter production, so an expression climbs the
// ladder ternary -> logical-or -> logical-and -> comparison -> bitwise-or ->
// xor -> bitwise-and -> shift -> weak arithmetic -> strong arithmetic ->
// cast -> term.

var (
	strongArithmeticKinds = []lexer.Kind{lexer.KindStar, lexer.KindSlash, lexer.KindPercent}
	weakArithmeticKinds   = []lexer.Kind{lexer.KindPlus, lexer.KindDoublePlus, lexer.KindMinus}
	shiftKinds            = []lexer.Kind{lexer.KindDoubleOAngle, lexer.KindDoubleCAngle, lexer.KindTripleCAngle}
	comparisonKinds       = []lexer.Kind{
		lexer.KindDoubleEq, lexer.KindBangEq,
		lexer.KindCAngle, lexer.KindCAngleEq,
		lexer.KindOAngle, lexer.KindOAngleEq,
	}
)

func kindIn(kind lexer.Kind, kinds []lexer.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// bindFront adapts a bindings-taking production into the nullary form the
// chain helper consumes.
func bindFront(f func(*bindings.Bindings) (ast.Expr, error), b *bindings.Bindings) func() (ast.Expr, error) {
	return func() (ast.Expr, error) { return f(b) }
}

// parseBinopChain parses a left-associative run of binary operators drawn
// from kinds, with operands parsed by sub.
func (p *Parser) parseBinopChain(sub func() (ast.Expr, error), kinds []lexer.Kind) (ast.Expr, error) {
	lhs, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.PeekToken()
		if err != nil {
			return nil, err
		}
		if !kindIn(tok.Kind, kinds) {
			return lhs, nil
		}
		if _, err := p.PopToken(); err != nil {
			return nil, err
		}
		rhs, err := sub()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinop(ast.BinopKind(tok.Kind), lhs, rhs, mergeSpan(lhs.Span(), rhs.Span()))
	}
}

func (p *Parser) parseTernaryExpression(b *bindings.Bindings) (ast.Expr, error) {
	lhs, err := p.parseLogicalOrExpression(b)
	if err != nil {
		return nil, err
	}
	dropped, err := p.TryDropKeyword(lexer.KwIf)
	if err != nil || !dropped {
		return lhs, err
	}
	test, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	if err := p.DropKeywordOrError(lexer.KwElse); err != nil {
		return nil, err
	}
	alternate, err := p.parseTernaryExpression(b)
	if err != nil {
		return nil, err
	}
	return ast.NewTernary(test, lhs, alternate, mergeSpan(lhs.Span(), alternate.Span())), nil
}

func (p *Parser) parseLogicalOrExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseLogicalAndExpression, b), []lexer.Kind{lexer.KindDoubleBar})
}

func (p *Parser) parseLogicalAndExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseComparisonExpression, b), []lexer.Kind{lexer.KindDoubleAmp})
}

func (p *Parser) parseComparisonExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseBitwiseOrExpression, b), comparisonKinds)
}

func (p *Parser) parseBitwiseOrExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseXorExpression, b), []lexer.Kind{lexer.KindBar})
}

func (p *Parser) parseXorExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseBitwiseAndExpression, b), []lexer.Kind{lexer.KindHat})
}

func (p *Parser) parseBitwiseAndExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseShiftExpression, b), []lexer.Kind{lexer.KindAmp})
}

func (p *Parser) parseShiftExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseWeakArithmeticExpression, b), shiftKinds)
}

func (p *Parser) parseWeakArithmeticExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseStrongArithmeticExpression, b), weakArithmeticKinds)
}

func (p *Parser) parseStrongArithmeticExpression(b *bindings.Bindings) (ast.Expr, error) {
	return p.parseBinopChain(bindFront(p.parseCastAsExpression, b), strongArithmeticKinds)
}

// parseCastAsExpression parses `term as type`, left-associatively so
// `x as u8 as u32` nests the inner cast.
func (p *Parser) parseCastAsExpression(b *bindings.Bindings) (ast.Expr, error) {
	lhs, err := p.parseTerm(b)
	if err != nil {
		return nil, err
	}
	for {
		dropped, err := p.TryDropKeyword(lexer.KwAs)
		if err != nil {
			return nil, err
		}
		if !dropped {
			return lhs, nil
		}
		typ, err := p.parseTypeAnnotation(b, nil)
		if err != nil {
			return nil, err
		}
		lhs = ast.NewCast(typ, lhs, mergeSpan(lhs.Span(), typ.Span()))
	}
}

// parseTerm parses an atom and then any trailing invocation, index, or
// slice suffixes.
func (p *Parser) parseTerm(b *bindings.Bindings) (ast.Expr, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return nil, err
	}

	var lhs ast.Expr
	switch {
	case tok.Kind == lexer.KindNumber || tok.Kind == lexer.KindChar ||
		tok.IsKeyword(lexer.KwTrue) || tok.IsKeyword(lexer.KwFalse):
		lhs, err = p.parseNumber()
	case tok.IsTypeKeyword():
		lhs, err = p.parseCastOrStructInstance(b, nil)
	case tok.Kind == lexer.KindBang || tok.Kind == lexer.KindMinus:
		lhs, err = p.parseUnop(b)
	case tok.Kind == lexer.KindIdent:
		lhs, err = p.parseCastOrEnumRefOrStructInstance(b)
	case tok.Kind == lexer.KindOParen:
		lhs, err = p.parseParenthesizedOrTuple(b)
	case tok.Kind == lexer.KindOBrack:
		lhs, err = p.parseArray(b)
	case tok.IsKeyword(lexer.KwMatch):
		lhs, err = p.parseMatch(b)
	case tok.IsKeyword(lexer.KwWhile):
		lhs, err = p.parseWhile(b)
	case tok.IsKeyword(lexer.KwFor):
		lhs, err = p.parseFor(b)
	case tok.IsKeyword(lexer.KwLet) || tok.IsKeyword(lexer.KwConst):
		lhs, err = p.parseLet(b)
	case tok.IsKeyword(lexer.KwCarry):
		lhs, err = p.parseCarry()
	default:
		return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
			tok.Span, "expected start of an expression, found %s", tok)
	}
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.PeekToken()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case lexer.KindOParen:
			if _, err := p.PopToken(); err != nil {
				return nil, err
			}
			args, cparen, err := parseCommaSeq(p, bindFront(p.ParseExpression, b), tokenTerm(lexer.KindCParen))
			if err != nil {
				return nil, err
			}
			lhs = ast.NewInvocation(lhs, args, mergeSpan(lhs.Span(), cparen))
		case lexer.KindOBrack:
			lhs, err = p.parseIndexOrSlice(b, lhs)
			if err != nil {
				return nil, err
			}
		default:
			return lhs, nil
		}
	}
}

func (p *Parser) parseUnop(b *bindings.Bindings) (ast.Expr, error) {
	tok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	var op ast.UnopKind
	switch tok.Kind {
	case lexer.KindMinus:
		op = ast.UnopNegate
	case lexer.KindBang:
		op = ast.UnopInvert
	default:
		return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
			tok.Span, "expected a unary operator, found %s", tok)
	}
	operand, err := p.parseTerm(b)
	if err != nil {
		return nil, err
	}
	return ast.NewUnop(op, operand, spanToNode(tok.Span, operand)), nil
}

// parseIndexOrSlice parses `lhs[i]`, `lhs[a:b]`, `lhs[:b]`, `lhs[a:]`, or
// `lhs[:]`; the cursor is on the opening bracket.
func (p *Parser) parseIndexOrSlice(b *bindings.Bindings, lhs ast.Expr) (ast.Expr, error) {
	obrack, err := p.PopTokenOrError(lexer.KindOBrack)
	if err != nil {
		return nil, err
	}

	var start, limit ast.Expr
	droppedColon, err := p.TryDropToken(lexer.KindColon)
	if err != nil {
		return nil, err
	}
	if !droppedColon {
		start, err = p.ParseExpression(b)
		if err != nil {
			return nil, err
		}
		droppedColon, err = p.TryDropToken(lexer.KindColon)
		if err != nil {
			return nil, err
		}
	}

	if !droppedColon {
		// Plain index.
		cbrack, err := p.PopTokenOrError(lexer.KindCBrack)
		if err != nil {
			return nil, err
		}
		return ast.NewIndex(lhs, start, mergeSpan(lhs.Span(), cbrack.Span)), nil
	}

	atEnd, err := p.peekIs(lexer.KindCBrack)
	if err != nil {
		return nil, err
	}
	if !atEnd {
		limit, err = p.ParseExpression(b)
		if err != nil {
			return nil, err
		}
	}
	cbrack, err := p.PopTokenOrError(lexer.KindCBrack)
	if err != nil {
		return nil, err
	}
	slice := ast.NewSlice(start, limit, mergeSpan(obrack.Span, cbrack.Span))
	return ast.NewIndex(lhs, slice, mergeSpan(lhs.Span(), cbrack.Span)), nil
}

// parseNumber parses a numeric literal: a number token, a character
// literal, or the boolean keywords.
func (p *Parser) parseNumber() (*ast.Number, error) {
	tok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Kind == lexer.KindNumber:
		return ast.NewNumber(tok.Value, lexer.NumberOther, tok.Span), nil
	case tok.Kind == lexer.KindChar:
		return ast.NewNumber(tok.Value, lexer.NumberCharacter, tok.Span), nil
	case tok.IsKeyword(lexer.KwTrue) || tok.IsKeyword(lexer.KwFalse):
		return ast.NewNumber(string(tok.Keyword), lexer.NumberBool, tok.Span), nil
	}
	return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
		tok.Span, "expected a number, found %s", tok)
}

// parseParenthesizedOrTuple parses `(expr)`, the empty tuple `()`, and
// tuples `(a, b)` or `(a,)`; the cursor is on the opening paren.
func (p *Parser) parseParenthesizedOrTuple(b *bindings.Bindings) (ast.Expr, error) {
	oparen, err := p.PopTokenOrError(lexer.KindOParen)
	if err != nil {
		return nil, err
	}
	dropped, err := p.TryDropToken(lexer.KindCParen)
	if err != nil {
		return nil, err
	}
	if dropped {
		return ast.NewTuple(nil, oparen.Span), nil
	}

	first, err := p.ParseExpression(b)
	if err != nil {
		return nil, err
	}
	droppedComma, err := p.TryDropToken(lexer.KindComma)
	if err != nil {
		return nil, err
	}
	if !droppedComma {
		// Parenthesized expression, not a tuple.
		if err := p.DropTokenOrError(lexer.KindCParen); err != nil {
			return nil, err
		}
		return first, nil
	}

	rest, cparen, err := parseCommaSeq(p, bindFront(p.ParseExpression, b), tokenTerm(lexer.KindCParen))
	if err != nil {
		return nil, err
	}
	members := append([]ast.Expr{first}, rest...)
	return ast.NewTuple(members, mergeSpan(oparen.Span, cparen)), nil
}

// parseArray parses an array literal `[a, b, c]`; a trailing `...` member
// marks the last element as filling the remainder.
func (p *Parser) parseArray(b *bindings.Bindings) (ast.Expr, error) {
	obrack, err := p.PopTokenOrError(lexer.KindOBrack)
	if err != nil {
		return nil, err
	}

	type arrayMember struct {
		expr     ast.Expr
		ellipsis bool
		span     lexer.Span
	}
	items, cbrack, err := parseCommaSeq(p, func() (arrayMember, error) {
		tok, err := p.PeekToken()
		if err != nil {
			return arrayMember{}, err
		}
		if tok.Kind == lexer.KindEllipsis {
			if _, err := p.PopToken(); err != nil {
				return arrayMember{}, err
			}
			return arrayMember{ellipsis: true, span: tok.Span}, nil
		}
		e, err := p.ParseExpression(b)
		if err != nil {
			return arrayMember{}, err
		}
		return arrayMember{expr: e, span: e.Span()}, nil
	}, tokenTerm(lexer.KindCBrack))
	if err != nil {
		return nil, err
	}

	var members []ast.Expr
	hasEllipsis := false
	for i, it := range items {
		if !it.ellipsis {
			members = append(members, it.expr)
			continue
		}
		if i != len(items)-1 {
			return nil, diag.New(diag.StageParser, diag.CodeParseUnexpectedToken,
				it.span, "ellipsis may only appear as the last array member")
		}
		hasEllipsis = true
	}

	return ast.NewArray(members, hasEllipsis, mergeSpan(obrack.Span, cbrack)), nil
}

func (p *Parser) parseCarry() (ast.Expr, error) {
	tok, err := p.PopToken()
	if err != nil {
		return nil, err
	}
	if len(p.loopStack) == 0 {
		return nil, diag.New(diag.StageParser, diag.CodeParseCarryOutsideLoop,
			tok.Span, "carry keyword encountered outside of a while loop")
	}
	return ast.NewCarry(p.loopStack[len(p.loopStack)-1], tok.Span), nil
}

// parseCastOrEnumRefOrStructInstance disambiguates a term that starts with
// an identifier using one token of lookahead plus a non-fatal bindings
// probe: `name::attr` is a colon-ref, `Type:value` a cast,
// `Type { .. }` or `Type[parametrics] { .. }` a struct instance, and
// anything else a plain name reference.
func (p *Parser) parseCastOrEnumRefOrStructInstance(b *bindings.Bindings) (ast.Expr, error) {
	tok, err := p.PopTokenOrError(lexer.KindIdent)
	if err != nil {
		return nil, err
	}
	next, err := p.PeekToken()
	if err != nil {
		return nil, err
	}
	if next.Kind == lexer.KindDoubleColon {
		return p.parseColonRef(b, tok)
	}

	if next.Kind == lexer.KindColon || next.Kind == lexer.KindOBrace || next.Kind == lexer.KindOBrack {
		if bn, ok := b.ResolveNode(tok.Value); ok && isTypeDefinitionBound(bn) {
			return p.parseCastOrStructInstance(b, &tok)
		}
	}
	return p.parseNameRef(b, tok)
}

func isTypeDefinitionBound(bn ast.BoundNode) bool {
	switch bn.(type) {
	case *ast.StructDef, *ast.EnumDef, *ast.TypeDef:
		return true
	}
	return false
}

// parseCastOrStructInstance parses a term that starts with a type: either
// `type:value` (a cast) or `type { members }` (a struct instance). tok is
// the already-consumed leading token of the type, or nil when the cursor is
// still on it.
func (p *Parser) parseCastOrStructInstance(b *bindings.Bindings, tok *lexer.Token) (ast.Expr, error) {
	typ, err := p.parseTypeAnnotation(b, tok)
	if err != nil {
		return nil, err
	}
	isBrace, err := p.peekIs(lexer.KindOBrace)
	if err != nil {
		return nil, err
	}
	if isBrace {
		return p.parseStructInstance(b, typ)
	}
	return p.parseCast(b, typ)
}

// parseCast parses the `:value` remainder of a type-prefixed term. A bare
// number operand becomes a typed number literal instead of a cast node.
func (p *Parser) parseCast(b *bindings.Bindings, typ *ast.TypeAnnotation) (ast.Expr, error) {
	if err := p.DropTokenOrError(lexer.KindColon); err != nil {
		return nil, err
	}
	operand, err := p.parseTerm(b)
	if err != nil {
		return nil, err
	}
	if num, ok := operand.(*ast.Number); ok && num.Type == nil {
		num.Type = typ
		return num, nil
	}
	return ast.NewCast(typ, operand, mergeSpan(typ.Span(), operand.Span())), nil
}

// parseStructInstance parses `{ name: value, ... }` for the given type; the
// type must ultimately denote a struct.
func (p *Parser) parseStructInstance(b *bindings.Bindings, typ *ast.TypeAnnotation) (ast.Expr, error) {
	if typ.IsBuiltin() {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
			typ.Span(), "builtin type %q cannot be instantiated as a struct", typ.Text())
	}
	if err := p.DropTokenOrError(lexer.KindOBrace); err != nil {
		return nil, err
	}
	members, cbrace, err := parseCommaSeq(p, func() (*ast.StructInstanceMember, error) {
		name, err := p.PopTokenOrError(lexer.KindIdent)
		if err != nil {
			return nil, err
		}
		if err := p.DropTokenOrError(lexer.KindColon); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression(b)
		if err != nil {
			return nil, err
		}
		return ast.NewStructInstanceMember(name.Value, value, spanToNode(name.Span, value)), nil
	}, tokenTerm(lexer.KindCBrace))
	if err != nil {
		return nil, err
	}
	return ast.NewStructInstance(typ, members, mergeSpan(typ.Span(), cbrace)), nil
}

// parseColonRef parses `subject::attr` where subject has already been
// consumed. The subject must resolve to an enum definition or an import;
// anything else is an error.
func (p *Parser) parseColonRef(b *bindings.Bindings, subject lexer.Token) (ast.Expr, error) {
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
	span := mergeSpan(subject.Span, attr.Span)
	switch n := bn.(type) {
	case *ast.EnumDef:
		if !n.HasMember(attr.Value) {
			return nil, diag.Newf(diag.StageParser, diag.CodeParseBadColonRef,
				attr.Span, "enum %q has no member %q", n.Name.Name, attr.Value)
		}
		return ast.NewEnumRef(n, attr.Value, span), nil
	case *ast.Import:
		return ast.NewModRef(n, attr.Value, span), nil
	}
	return nil, diag.Newf(diag.StageParser, diag.CodeParseBadColonRef,
		subject.Span, "name %q does not refer to an enum or imported module", subject.Value)
}

// parseNameRef resolves an already-consumed identifier token against the
// scope chain.
func (p *Parser) parseNameRef(b *bindings.Bindings, tok lexer.Token) (ast.Expr, error) {
	def, err := b.ResolveNameOrError(tok.Value, tok.Span)
	if err != nil {
		return nil, err
	}
	return ast.NewNameRef(def, tok.Value, tok.Span), nil
}
