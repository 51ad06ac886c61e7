package cql

import (
	"fmt"
	"strings"
)

// Emitter precedence levels. A child rendered at lower precedence than its
// parent needs parentheses to survive the round trip through CQL.
const (
	precOr = iota + 1
	precAnd
	precNot
	precTerm
)

// escapeLiteral escapes backslashes and double quotes for CQL string literals.
func escapeLiteral(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// emitCQL renders a node as a CQL fragment against the fulltext index and
// returns the fragment with its precedence. Phrases always use the exact
// (adj) relation; bare terms use adj only when exact mode is on.
func emitCQL(n node, exact bool) (string, int) {
	switch v := n.(type) {
	case termNode:
		relation := "all"
		if v.phrase || exact {
			relation = "adj"
		}
		return fmt.Sprintf("text %s \"%s\"", relation, escapeLiteral(v.value)), precTerm

	case notNode:
		child, childPrec := emitCQL(v.child, exact)
		if childPrec < precNot {
			child = "(" + child + ")"
		}
		return "not " + child, precNot

	case andNode:
		parts := make([]string, 0, len(v.children))
		for _, c := range v.children {
			child, childPrec := emitCQL(c, exact)
			if childPrec < precAnd {
				child = "(" + child + ")"
			}
			parts = append(parts, child)
		}
		return strings.Join(parts, " and "), precAnd

	case orNode:
		parts := make([]string, 0, len(v.children))
		for _, c := range v.children {
			child, childPrec := emitCQL(c, exact)
			if childPrec < precOr {
				child = "(" + child + ")"
			}
			parts = append(parts, child)
		}
		return strings.Join(parts, " or "), precOr
	}
	return "", precTerm
}

// emitSurface renders a node back in the caller-facing grammar: uppercase
// operators, quoted phrases, parentheses only where precedence demands them.
func emitSurface(n node) (string, int) {
	switch v := n.(type) {
	case termNode:
		if v.phrase {
			return `"` + escapeLiteral(v.value) + `"`, precTerm
		}
		return v.value, precTerm

	case notNode:
		child, childPrec := emitSurface(v.child)
		if childPrec < precNot {
			child = "(" + child + ")"
		}
		return "NOT " + child, precNot

	case andNode:
		parts := make([]string, 0, len(v.children))
		for _, c := range v.children {
			child, childPrec := emitSurface(c)
			if childPrec < precAnd {
				child = "(" + child + ")"
			}
			parts = append(parts, child)
		}
		return strings.Join(parts, " AND "), precAnd

	case orNode:
		parts := make([]string, 0, len(v.children))
		for _, c := range v.children {
			child, childPrec := emitSurface(c)
			if childPrec < precOr {
				child = "(" + child + ")"
			}
			parts = append(parts, child)
		}
		return strings.Join(parts, " OR "), precOr
	}
	return "", precTerm
}
