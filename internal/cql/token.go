package cql

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kailas-cloud/gallex/internal/domain"
)

type tokenType int

const (
	tokWord tokenType = iota
	tokPhrase
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	typ   tokenType
	value string
}

// tokenize splits a boolean text expression into tokens. Quoted spans become
// single phrase tokens with backslash escapes honored. AND/OR/NOT are
// operators only in uppercase; lowercase forms stay literal words.
func tokenize(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)
	i := 0

	for i < len(runes) {
		ch := runes[i]

		switch {
		case unicode.IsSpace(ch):
			i++

		case ch == '"':
			i++
			var buf strings.Builder
			escaped := false
			closed := false
			for i < len(runes) {
				curr := runes[i]
				i++
				if escaped {
					buf.WriteRune(curr)
					escaped = false
					continue
				}
				if curr == '\\' {
					escaped = true
					continue
				}
				if curr == '"' {
					closed = true
					break
				}
				buf.WriteRune(curr)
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated quoted phrase", domain.ErrMalformedQuery)
			}
			tokens = append(tokens, token{typ: tokPhrase, value: buf.String()})

		case ch == '(':
			tokens = append(tokens, token{typ: tokLParen, value: "("})
			i++

		case ch == ')':
			tokens = append(tokens, token{typ: tokRParen, value: ")"})
			i++

		case ch == '!':
			tokens = append(tokens, token{typ: tokNot, value: "NOT"})
			i++

		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !strings.ContainsRune(`()"!`, runes[i]) {
				i++
			}
			value := string(runes[start:i])
			switch value {
			case "AND", "&&":
				tokens = append(tokens, token{typ: tokAnd, value: "AND"})
			case "OR", "||":
				tokens = append(tokens, token{typ: tokOr, value: "OR"})
			case "NOT":
				tokens = append(tokens, token{typ: tokNot, value: "NOT"})
			default:
				tokens = append(tokens, token{typ: tokWord, value: value})
			}
		}
	}

	return tokens, nil
}
