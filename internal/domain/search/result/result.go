package result

import "github.com/kailas-cloud/gallex/internal/domain/document"

// Page is one page of normalized search results. Document order follows the
// upstream relevance order. Skipped counts malformed records dropped during
// normalization; callers need it for pagination math.
type Page struct {
	page      int
	total     int
	skipped   int
	documents []document.Document
}

// NewPage creates a result page.
func NewPage(page, total, skipped int, documents []document.Document) Page {
	return Page{page: page, total: total, skipped: skipped, documents: documents}
}

// Page returns the 1-based page number.
func (p *Page) Page() int { return p.page }

// Total returns the total number of matching documents upstream.
func (p *Page) Total() int { return p.total }

// Skipped returns how many malformed records were dropped from this page.
func (p *Page) Skipped() int { return p.skipped }

// Documents returns the normalized records, in upstream order.
func (p *Page) Documents() []document.Document { return p.documents }

// WithDocuments returns a copy of the page with documents replaced,
// preserving counters. Used when enrichment attaches snippets.
func (p Page) WithDocuments(documents []document.Document) Page {
	p.documents = documents
	return p
}
