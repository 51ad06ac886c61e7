package search

import (
	"github.com/kailas-cloud/gallex/internal/domain/document"
	"github.com/kailas-cloud/gallex/internal/gallica"
)

// normalize maps raw records to documents, preserving order. A record whose
// identifier yields no parseable ARK is malformed and skipped. Sibling
// periodical issues stay separate records; nothing here merges by parent
// collection.
func normalize(records []gallica.Record) ([]document.Document, int) {
	documents := make([]document.Document, 0, len(records))
	skipped := 0

	for _, rec := range records {
		doc, ok := normalizeRecord(rec)
		if !ok {
			skipped++
			continue
		}
		documents = append(documents, doc)
	}

	return documents, skipped
}

func normalizeRecord(rec gallica.Record) (document.Document, bool) {
	ark, ok := document.ARKFromURL(rec.Identifier)
	if !ok {
		return document.Document{}, false
	}

	title := rec.Title
	if title == "" {
		title = "Untitled"
	}

	return document.New(
		ark,
		title,
		rec.Identifier,
		rec.Creators,
		rec.Date,
		document.KindFromUpstream(rec.Type),
		rec.Type,
		rec.Language,
		rec.Rights,
	), true
}
