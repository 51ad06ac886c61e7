package query

import (
	"fmt"

	"github.com/kailas-cloud/gallex/internal/domain"
)

// MaxPageSize is the hard upstream limit on records per page.
const MaxPageSize = 50

// DocType is a caller-facing document type filter value.
type DocType string

const (
	// DocTypeMonograph filters to printed books.
	DocTypeMonograph DocType = "monograph"
	// DocTypePeriodical filters to periodicals.
	DocTypePeriodical DocType = "periodical"
	// DocTypeManuscript filters to manuscripts.
	DocTypeManuscript DocType = "manuscript"
	// DocTypeImage filters to images.
	DocTypeImage DocType = "image"
	// DocTypeMap filters to maps.
	DocTypeMap DocType = "map"
	// DocTypeScore filters to musical scores.
	DocTypeScore DocType = "score"
)

// upstreamCodes maps caller-facing type filters to the service's dc.type codes.
var upstreamCodes = map[DocType]string{
	DocTypeMonograph:  "monographie",
	DocTypePeriodical: "périodique",
	DocTypeManuscript: "manuscrit",
	DocTypeImage:      "image",
	DocTypeMap:        "carte",
	DocTypeScore:      "partition",
}

// UpstreamCode returns the service-side code for a document type filter.
func (t DocType) UpstreamCode() (string, bool) {
	code, ok := upstreamCodes[t]
	return code, ok
}

// Query is a validated search request: a free-text boolean expression plus
// structured filters. Filters combine with AND; values within one filter
// combine with OR; an absent filter contributes no predicate.
type Query struct {
	text             string
	creators         []string
	docTypes         []DocType
	dateFrom         *int
	dateTo           *int
	language         string
	title            string
	publicDomainOnly bool
	exactMatch       bool
}

// Option configures optional query fields.
type Option func(*Query)

// WithCreators filters by creator names (OR-combined).
func WithCreators(creators ...string) Option {
	return func(q *Query) { q.creators = creators }
}

// WithDocTypes filters by document types (OR-combined).
func WithDocTypes(types ...DocType) Option {
	return func(q *Query) { q.docTypes = types }
}

// WithDateFrom sets the inclusive lower publication-year bound.
func WithDateFrom(year int) Option {
	return func(q *Query) { q.dateFrom = &year }
}

// WithDateTo sets the inclusive upper publication-year bound.
func WithDateTo(year int) Option {
	return func(q *Query) { q.dateTo = &year }
}

// WithLanguage filters by ISO 639-2 language code.
func WithLanguage(code string) Option {
	return func(q *Query) { q.language = code }
}

// WithTitle adds a title-field contains predicate, independent of the text query.
func WithTitle(title string) Option {
	return func(q *Query) { q.title = title }
}

// WithPublicDomainOnly toggles the public-domain rights predicate (default true).
func WithPublicDomainOnly(on bool) Option {
	return func(q *Query) { q.publicDomainOnly = on }
}

// WithExactMatch toggles expression-wide exact matching (default true).
// Quoted phrases are exact regardless of this flag.
func WithExactMatch(on bool) Option {
	return func(q *Query) { q.exactMatch = on }
}

// New validates and creates a query.
func New(text string, opts ...Option) (Query, error) {
	q := Query{
		text:             text,
		publicDomainOnly: true,
		exactMatch:       true,
	}
	for _, opt := range opts {
		opt(&q)
	}

	for _, t := range q.docTypes {
		if _, ok := t.UpstreamCode(); !ok {
			return Query{}, fmt.Errorf("%w: unknown document type %q", domain.ErrMalformedQuery, t)
		}
	}
	if q.dateFrom != nil && q.dateTo != nil && *q.dateFrom > *q.dateTo {
		return Query{}, fmt.Errorf(
			"%w: date range %d..%d is inverted", domain.ErrMalformedQuery, *q.dateFrom, *q.dateTo,
		)
	}
	return q, nil
}

// Text returns the free-text boolean expression.
func (q *Query) Text() string { return q.text }

// Creators returns the creator filter values.
func (q *Query) Creators() []string { return q.creators }

// DocTypes returns the document type filter values.
func (q *Query) DocTypes() []DocType { return q.docTypes }

// DateFrom returns the inclusive lower year bound, or nil.
func (q *Query) DateFrom() *int { return q.dateFrom }

// DateTo returns the inclusive upper year bound, or nil.
func (q *Query) DateTo() *int { return q.dateTo }

// Language returns the language filter, if any.
func (q *Query) Language() string { return q.language }

// Title returns the title filter, if any.
func (q *Query) Title() string { return q.title }

// PublicDomainOnly reports whether the rights predicate is requested.
func (q *Query) PublicDomainOnly() bool { return q.publicDomainOnly }

// ExactMatch reports whether bare terms match exactly instead of fuzzily.
func (q *Query) ExactMatch() bool { return q.exactMatch }
