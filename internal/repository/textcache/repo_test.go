package textcache

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/gallex/internal/db"
	"github.com/kailas-cloud/gallex/internal/domain"
)

type mockStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) { return m.getFn(ctx, key) }
func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	return m.setFn(ctx, key, value)
}
func (m *mockStore) Ping(context.Context) error { return nil }
func (m *mockStore) Close()                     {}

func TestGet_NormalizesKeyAndReturnsText(t *testing.T) {
	store := &mockStore{
		getFn: func(_ context.Context, key string) ([]byte, error) {
			if key != "ark:/12148/bpt6k1" {
				t.Errorf("key = %q, want normalized ARK", key)
			}
			return []byte("texte"), nil
		},
	}
	repo := New(store)

	// The raw identifier lacks the canonical prefix.
	text, err := repo.Get(context.Background(), "12148/bpt6k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if text != "texte" {
		t.Errorf("text = %q", text)
	}
}

func TestGet_MissBecomesNotFound(t *testing.T) {
	store := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, db.ErrKeyNotFound
		},
	}
	repo := New(store)

	_, err := repo.Get(context.Background(), "ark:/12148/bpt6k1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_BackendErrorIsNotAMiss(t *testing.T) {
	backendErr := &db.Error{Op: db.OpGet, Err: errors.New("disk on fire")}
	store := &mockStore{
		getFn: func(context.Context, string) ([]byte, error) {
			return nil, backendErr
		},
	}
	repo := New(store)

	_, err := repo.Get(context.Background(), "ark:/12148/bpt6k1")
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("backend failure must not be reported as a miss")
	}
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
}

func TestPut_NormalizesKey(t *testing.T) {
	var gotKey string
	store := &mockStore{
		setFn: func(_ context.Context, key string, value []byte) error {
			gotKey = key
			if string(value) != "texte" {
				t.Errorf("value = %q", value)
			}
			return nil
		},
	}
	repo := New(store)

	if err := repo.Put(context.Background(), "ark:12148/bpt6k1", "texte"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotKey != "ark:/12148/bpt6k1" {
		t.Errorf("key = %q, want normalized ARK", gotKey)
	}
}
