package text

import "context"

// Cache is the OCR text cache collaborator, keyed by document identifier.
type Cache interface {
	// Get returns cached text or domain.ErrNotFound on a miss.
	Get(ctx context.Context, identifier string) (string, error)
	// Put stores text for identifier. Last write wins.
	Put(ctx context.Context, identifier, text string) error
}

// Downloader retrieves the full OCR text of one document from upstream.
type Downloader interface {
	Text(ctx context.Context, identifier string) (string, error)
}
