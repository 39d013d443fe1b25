// Package store provides short-lived artifact storage for generated decks.
//
// The server builds documents synchronously but hands them to clients in a
// second request, so finished artifacts need a place to wait for their
// download. This package defines that hand-off space, with implementations
// for different backends:
//   - memory: In-process storage for single-instance deployments and tests
//   - redis: Redis-backed storage for multi-instance deployments
//
// Artifacts expire. This is a staging area, not durable storage: an
// artifact that is never downloaded is swept after its TTL.
//
// # Usage
//
// Create a store:
//
//	// Single instance
//	store := store.NewMemoryStore(store.DefaultTTL)
//
//	// Multi-instance
//	store, err := store.NewRedisStore("localhost:6379", store.DefaultTTL)
//
// Stage and serve an artifact:
//
//	art := &store.Artifact{
//	    ID:       store.NewID(),
//	    Filename: result.Filename,
//	    Data:     result.PPTX,
//	}
//	if err := st.Put(ctx, art); err != nil {
//	    return err
//	}
//
//	// Later, in the download handler:
//	art, err := st.Get(ctx, id)
//	if art == nil {
//	    // Unknown or expired: respond 404
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an artifact stays available for download.
const DefaultTTL = time.Hour

// Artifact is one generated document staged for download.
type Artifact struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Data       []byte    `json:"data"`
	SlideCount int       `json:"slide_count"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired returns true if the artifact has passed its TTL.
func (a *Artifact) IsExpired() bool {
	return !a.ExpiresAt.IsZero() && time.Now().After(a.ExpiresAt)
}

// Size returns the artifact's byte size.
func (a *Artifact) Size() int {
	return len(a.Data)
}

// Store is the interface for artifact storage backends.
type Store interface {
	// Put stages an artifact. Artifacts without an expiry get the
	// store's TTL.
	Put(ctx context.Context, art *Artifact) error

	// Get retrieves an artifact by ID.
	// Returns nil, nil if the artifact doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Artifact, error)

	// Delete removes an artifact.
	Delete(ctx context.Context, id string) error

	// Len reports how many artifacts are currently staged.
	Len(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// NewID creates a unique artifact identifier.
func NewID() string {
	return uuid.NewString()
}
