package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedQuery signals a text query the boolean grammar cannot parse.
	ErrMalformedQuery = errors.New("malformed query")
	// ErrInvalidPage signals page or page-size parameters outside the service bounds.
	ErrInvalidPage = errors.New("invalid page")
	// ErrParse signals an upstream response whose XML envelope could not be interpreted.
	ErrParse = errors.New("unparseable response")
	// ErrSnippetUnavailable signals a document without searchable OCR text.
	ErrSnippetUnavailable = errors.New("snippets unavailable")
	// ErrTimeout signals a request that exceeded its deadline.
	ErrTimeout = errors.New("request timed out")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)

// RemoteError wraps a non-2xx upstream response with its status and body.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d: %s", e.Status, truncate(e.Body, 200))
}

// NewRemoteError creates a remote error from an upstream response.
func NewRemoteError(status int, body string) error {
	return &RemoteError{Status: status, Body: body}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
