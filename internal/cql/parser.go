package cql

import (
	"fmt"

	"github.com/kailas-cloud/gallex/internal/domain"
)

// parser is a recursive-descent parser for the boolean query grammar.
// Adjacent atoms without an operator are implicitly AND-ed.
type parser struct {
	tokens []token
	index  int
}

func parseExpr(expr string) (node, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrMalformedQuery)
	}

	p := &parser{tokens: tokens}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.index != len(p.tokens) {
		return nil, fmt.Errorf(
			"%w: unexpected token %q", domain.ErrMalformedQuery, p.tokens[p.index].value,
		)
	}
	return n, nil
}

func (p *parser) parseOr() (node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for p.match(tokOr) {
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return orNode{children: children}, nil
}

func (p *parser) parseAnd() (node, error) {
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	children := []node{first}
	for {
		if p.match(tokAnd) {
			n, err := p.parseNot()
			if err != nil {
				return nil, err
			}
			children = append(children, n)
			continue
		}
		if p.nextStartsExpression() {
			n, err := p.parseNot()
			if err != nil {
				return nil, err
			}
			children = append(children, n)
			continue
		}
		break
	}
	if len(children) == 1 {
		return children[0], nil
	}
	return andNode{children: children}, nil
}

func (p *parser) parseNot() (node, error) {
	if p.match(tokNot) {
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected end of query", domain.ErrMalformedQuery)
	}

	switch tok.typ {
	case tokLParen:
		p.index++
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(tokRParen) {
			return nil, fmt.Errorf("%w: missing closing parenthesis", domain.ErrMalformedQuery)
		}
		return n, nil

	case tokPhrase:
		p.index++
		return termNode{value: tok.value, phrase: true}, nil

	case tokWord:
		p.index++
		return termNode{value: tok.value}, nil

	default:
		return nil, fmt.Errorf("%w: unexpected token %q", domain.ErrMalformedQuery, tok.value)
	}
}

func (p *parser) peek() (token, bool) {
	if p.index >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.index], true
}

func (p *parser) match(typ tokenType) bool {
	if tok, ok := p.peek(); ok && tok.typ == typ {
		p.index++
		return true
	}
	return false
}

func (p *parser) nextStartsExpression() bool {
	tok, ok := p.peek()
	if !ok {
		return false
	}
	switch tok.typ {
	case tokWord, tokPhrase, tokLParen, tokNot:
		return true
	default:
		return false
	}
}
