// Package cql compiles the caller-facing boolean/phrase grammar plus
// structured filters into the upstream service's Contextual Query Language.
package cql

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/gallex/internal/domain/search/query"
)

// sortSuffix orders results by publication date, matching upstream behavior
// expected by pagination.
const sortSuffix = " sortby dc.date/sort.ascending"

// Expression is an immutable compiled CQL query string.
// Identical queries always compile to byte-identical expressions.
type Expression struct {
	s string
}

// String returns the compiled CQL.
func (e Expression) String() string { return e.s }

// IsZero reports whether the expression is empty.
func (e Expression) IsZero() bool { return e.s == "" }

// Compile translates a validated query into a single CQL expression.
// All present predicates AND-combine; values within one filter OR-combine.
func Compile(q query.Query) (Expression, error) {
	var parts []string

	if text := strings.TrimSpace(q.Text()); text != "" {
		clause, err := textClause(text, q.ExactMatch())
		if err != nil {
			return Expression{}, err
		}
		parts = append(parts, clause)
	}

	if title := strings.TrimSpace(q.Title()); title != "" {
		parts = append(parts, fmt.Sprintf("dc.title all \"%s\"", escapeLiteral(title)))
	}

	if group := orGroup(q.Creators(), func(c string) string {
		return fmt.Sprintf("dc.creator all \"%s\"", escapeLiteral(c))
	}); group != "" {
		parts = append(parts, group)
	}

	if group := orGroup(q.DocTypes(), func(t query.DocType) string {
		code, _ := t.UpstreamCode()
		return fmt.Sprintf("dc.type adj \"%s\"", code)
	}); group != "" {
		parts = append(parts, group)
	}

	if from := q.DateFrom(); from != nil {
		parts = append(parts, fmt.Sprintf("dc.date >= %d", *from))
	}
	if to := q.DateTo(); to != nil {
		parts = append(parts, fmt.Sprintf("dc.date <= %d", *to))
	}

	if lang := q.Language(); lang != "" {
		parts = append(parts, fmt.Sprintf("dc.language adj \"%s\"", escapeLiteral(lang)))
	}

	// True appends the fixed rights predicate; false omits it entirely.
	// There is no "not public domain" predicate.
	if q.PublicDomainOnly() {
		parts = append(parts, `dc.rights any "domaine public"`)
	}

	cql := `gallica any ""`
	if len(parts) > 0 {
		cql = strings.Join(parts, " and ")
	}
	return Expression{s: cql + sortSuffix}, nil
}

// textClause parses the free-text boolean expression and emits its CQL form.
func textClause(text string, exact bool) (string, error) {
	n, err := parseExpr(text)
	if err != nil {
		return "", err
	}
	clause, _ := emitCQL(n, exact)
	return clause, nil
}

// Normalize validates a free-text boolean expression and returns its
// canonical surface form. The snippet endpoint shares the search grammar;
// this is the single path through it.
func Normalize(text string) (string, error) {
	n, err := parseExpr(strings.TrimSpace(text))
	if err != nil {
		return "", err
	}
	surface, _ := emitSurface(n)
	return surface, nil
}

// orGroup renders values as an OR group: zero values produce no predicate,
// one value stands alone, several are parenthesized.
func orGroup[T any](values []T, render func(T) string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = render(v)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " or ") + ")"
}
