package parser

import (
	"fmt"

	"github.com/silica-lang/silica/internal/lexer"
)

// seqTerminator names the token that ends a comma-delimited sequence.
// Terminators are usually a closing delimiter but may be a keyword.
type seqTerminator struct {
	kind      lexer.Kind
	keyword   lexer.Keyword
	isKeyword bool
}

func tokenTerm(kind lexer.Kind) seqTerminator {
	return seqTerminator{kind: kind}
}

func keywordTerm(kw lexer.Keyword) seqTerminator {
	return seqTerminator{keyword: kw, isKeyword: true}
}

func (t seqTerminator) String() string {
	if t.isKeyword {
		return fmt.Sprintf("keyword %q", string(t.keyword))
	}
	return fmt.Sprintf("%q", string(t.kind))
}

func (p *Parser) tryDropTerm(t seqTerminator) (bool, error) {
	if t.isKeyword {
		return p.TryDropKeyword(t.keyword)
	}
	return p.TryDropToken(t.kind)
}

func (p *Parser) dropTermOrError(t seqTerminator) error {
	if t.isKeyword {
		return p.DropKeywordOrError(t.keyword)
	}
	return p.DropTokenOrError(t.kind)
}

// parseCommaSeq parses zero or more elements produced by fparse, separated
// by commas and ended by term. The terminator token is consumed and its
// span returned, so callers can extend a construct's span to the closing
// delimiter. A trailing comma before the terminator is permitted; a missing
// comma between elements is an error (reported as a failure to find the
// terminator).
func parseCommaSeq[T any](p *Parser, fparse func() (T, error), term seqTerminator) ([]T, lexer.Span, error) {
	var parsed []T
	mustEnd := false
	for {
		tok, err := p.PeekToken()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		dropped, err := p.tryDropTerm(term)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		if dropped {
			return parsed, tok.Span, nil
		}
		if mustEnd {
			// Previous element had no trailing comma, so only the
			// terminator may follow; report it as missing.
			return nil, lexer.Span{}, p.dropTermOrError(term)
		}
		elem, err := fparse()
		if err != nil {
			return nil, lexer.Span{}, err
		}
		parsed = append(parsed, elem)
		droppedComma, err := p.TryDropToken(lexer.KindComma)
		if err != nil {
			return nil, lexer.Span{}, err
		}
		mustEnd = !droppedComma
	}
}
