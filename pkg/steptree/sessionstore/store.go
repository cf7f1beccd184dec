// Package sessionstore provides durable key-value storage for tutoring
// sessions, with a retention cap evicting oldest sessions first.
package sessionstore

import (
	"context"
	"errors"
	"time"
)

// DefaultRetentionLimit is the number of sessions kept before the oldest
// are evicted on save.
const DefaultRetentionLimit = 50

// Store persists serialized sessions keyed by session ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save writes a session record, overwriting any existing record for
	// the same ID. Saving a new session past the retention limit evicts
	// the oldest sessions (by creation time) first.
	Save(ctx context.Context, id string, data []byte, meta Meta) error

	// Load retrieves a session record.
	// Returns ErrNotFound if the session doesn't exist.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes a session. Returns nil if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// List returns metadata for all sessions, newest-first by creation
	// time. Returns an empty slice (not an error) when the store is empty.
	List(ctx context.Context) ([]Info, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Meta carries the indexable fields stored alongside the record.
type Meta struct {
	// Topic labels the session for history listings.
	Topic string

	// CreatedAt orders sessions for listing and eviction.
	// Zero means "now" on first save; ignored on overwrite.
	CreatedAt time.Time
}

// Info provides session metadata without loading the full record.
type Info struct {
	SessionID string
	Topic     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Size      int64
}

// Sentinel errors for session storage.
var (
	// ErrNotFound indicates a session doesn't exist.
	ErrNotFound = errors.New("session not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("session store closed")
)
