// Package parser implements the recursive-descent front end for Silica.
//
// The parser consumes tokens exclusively through a lexer.Cursor (one token
// of lookahead) and resolves every identifier against a bindings scope chain
// as it goes. Expression precedence is encoded purely by call order through
// an eleven-level ladder of productions; there is no precedence table.
// Parsing is fail-fast: the first syntax or resolution error aborts the
// whole parse and is returned as a structured diagnostic.
package parser

import (
	"github.com/silica-lang/silica/internal/ast"
	"github.com/silica-lang/silica/internal/bindings"
	"github.com/silica-lang/silica/internal/diag"
	"github.com/silica-lang/silica/internal/lexer"
)

// Parser owns the in-progress module and the parser-wide state threaded
// through recursive productions: the loop-context stack (so carry
// expressions can back-reference their enclosing while) and the
// configuration toggled by cfg directives.
type Parser struct {
	*lexer.Cursor

	module *ast.Module

	// Stack of while loops being parsed; carry nodes reference the top.
	// Maintained with deferred pops so error exits restore depth.
	loopStack []*ast.While

	// Toggled by #![cfg(let_terminator_is_semi = ...)]: when set, let
	// bindings end with ';' instead of 'in'.
	letTerminatorIsSemi bool

	nameToFn   map[string]*ast.Function
	nameToTest map[string]*ast.Test
}

// New creates a parser that builds a module with the given name from the
// cursor's token stream.
func New(moduleName string, cursor *lexer.Cursor) *Parser {
	return &Parser{
		Cursor:     cursor,
		module:     ast.NewModule(moduleName),
		nameToFn:   make(map[string]*ast.Function),
		nameToTest: make(map[string]*ast.Test),
	}
}

// Module returns the module under construction (complete once ParseModule
// has returned successfully).
func (p *Parser) Module() *ast.Module { return p.module }

// RootBindings returns a fresh module-level scope seeded with the builtin
// names. Callers may pre-seed their own root instead and pass it to the
// entry points.
func RootBindings() *bindings.Bindings {
	b := bindings.New(nil)
	for _, name := range builtinNames {
		b.Add(name, ast.NewBuiltinNameDef(name))
	}
	return b
}

var builtinNames = []string{
	"range", "map", "update", "rev",
	"clz", "ctz", "one_hot", "one_hot_sel",
	"signex", "trace", "assert_eq", "assert_lt",
}

// ParseModule parses an entire translation unit. A nil bindings argument
// gets a fresh root scope with builtins seeded.
func (p *Parser) ParseModule(b *bindings.Bindings) (*ast.Module, error) {
	if b == nil {
		b = RootBindings()
	}

	for {
		tok, err := p.PeekToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == lexer.KindEOF {
			break
		}

		if tok.Kind == lexer.KindHashBang {
			member, err := p.parseDirective(b)
			if err != nil {
				return nil, err
			}
			if member != nil {
				p.module.AddTop(member)
			}
			continue
		}

		public := false
		if tok.IsKeyword(lexer.KwPub) {
			if _, err := p.PopToken(); err != nil {
				return nil, err
			}
			public = true
			tok, err = p.PeekToken()
			if err != nil {
				return nil, err
			}
		}

		var member ast.ModuleMember
		switch {
		case tok.IsKeyword(lexer.KwFn):
			member, err = p.ParseFunction(public, b)
		case tok.IsKeyword(lexer.KwProc):
			member, err = p.ParseProc(public, b)
		case tok.IsKeyword(lexer.KwStruct):
			member, err = p.parseStruct(public, b)
		case tok.IsKeyword(lexer.KwEnum):
			member, err = p.parseEnum(public, b)
		case tok.IsKeyword(lexer.KwType):
			member, err = p.parseTypeDefinition(public, b)
		case !public && tok.IsKeyword(lexer.KwConst):
			member, err = p.parseConstantDef(b)
		case !public && tok.IsKeyword(lexer.KwImport):
			member, err = p.parseImport(b)
		case !public && tok.IsKeyword(lexer.KwTest):
			member, err = p.parseTestConstruct(b)
		default:
			return nil, diag.Newf(diag.StageParser, diag.CodeParseUnexpectedToken,
				tok.Span, "expected start of top-level construct, found %s", tok)
		}
		if err != nil {
			return nil, err
		}
		p.module.AddTop(member)
	}

	return p.module, nil
}

// ParseFunction parses a function definition, registers it for directive
// and duplicate-name handling, and rebinds its name from the provisional
// NameDef to the completed node.
func (p *Parser) ParseFunction(isPublic bool, b *bindings.Bindings) (*ast.Function, error) {
	if b == nil {
		b = RootBindings()
	}
	f, err := p.parseFunctionInternal(isPublic, b)
	if err != nil {
		return nil, err
	}
	if prior, ok := p.nameToFn[f.Name.Name]; ok {
		return nil, diag.Newf(diag.StageParser, diag.CodeParseDuplicateDef,
			f.Name.Span(), "function %q is defined twice (previously at %s)",
			f.Name.Name, prior.Name.Span())
	}
	p.nameToFn[f.Name.Name] = f
	b.Add(f.Name.Name, f)
	return f, nil
}

// ParseProc parses a process definition.
func (p *Parser) ParseProc(isPublic bool, b *bindings.Bindings) (*ast.Proc, error) {
	if b == nil {
		b = RootBindings()
	}
	return p.parseProcInternal(isPublic, b)
}

// ParseExpression parses a single expression out of the token stream.
func (p *Parser) ParseExpression(b *bindings.Bindings) (ast.Expr, error) {
	if b == nil {
		b = RootBindings()
	}
	return p.parseTernaryExpression(b)
}

// peekIs reports whether the next token is of the given kind without
// consuming it.
func (p *Parser) peekIs(kind lexer.Kind) (bool, error) {
	tok, err := p.PeekToken()
	if err != nil {
		return false, err
	}
	return tok.Kind == kind, nil
}

// mergeSpan returns a span covering start through end; spans are half-open
// so callers pass the earlier span first.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start
	if span.Line == 0 {
		return end
	}
	if end.End > span.End {
		span.End = end.End
	}
	return span
}

func spanToNode(start lexer.Span, n ast.Node) lexer.Span {
	return mergeSpan(start, n.Span())
}
