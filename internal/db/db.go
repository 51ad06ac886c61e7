// Package db defines the key→blob store behind the OCR text cache.
package db

import (
	"context"
	"errors"
	"fmt"
)

// ErrKeyNotFound signals a cache miss.
var ErrKeyNotFound = errors.New("key not found")

// Op identifies the store operation that failed.
type Op string

const (
	// OpGet is a read.
	OpGet Op = "get"
	// OpSet is a write.
	OpSet Op = "set"
	// OpPing is a connectivity check.
	OpPing Op = "ping"
)

// Error tags a backend failure with the operation that produced it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store is a content-addressed blob store keyed by document identifier.
// Entries are treated as immutable once written; there is no TTL.
type Store interface {
	// Get returns the blob for key, or ErrKeyNotFound on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the blob at key. Concurrent writers race last-write-wins.
	Set(ctx context.Context, key string, value []byte) error
	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close()
}
