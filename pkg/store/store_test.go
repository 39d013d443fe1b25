package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	// Missing ID reads as nil, nil
	art, err := s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if art != nil {
		t.Error("Missing artifact should be nil")
	}

	// Put and Get
	staged := &Artifact{
		ID:         NewID(),
		Filename:   "Quarterly_Review_Presentation.pptx",
		Data:       []byte("PK fake archive"),
		SlideCount: 7,
	}
	if err := s.Put(ctx, staged); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if staged.CreatedAt.IsZero() || staged.ExpiresAt.IsZero() {
		t.Error("Put should stamp creation and expiry times")
	}

	got, err := s.Get(ctx, staged.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil {
		t.Fatal("Staged artifact should be retrievable")
	}
	if got.Filename != staged.Filename || got.SlideCount != 7 {
		t.Errorf("Artifact fields lost: %+v", got)
	}
	if got.Size() != len(staged.Data) {
		t.Errorf("Size = %d, want %d", got.Size(), len(staged.Data))
	}

	// Len counts it
	if n, _ := s.Len(ctx); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}

	// Delete removes; deleting twice is fine
	if err := s.Delete(ctx, staged.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if art, _ := s.Get(ctx, staged.ID); art != nil {
		t.Error("Deleted artifact should be gone")
	}
	if err := s.Delete(ctx, staged.ID); err != nil {
		t.Errorf("Deleting absent ID should not error: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	defer s.Close()

	art := &Artifact{
		ID:        "shortlived",
		Data:      []byte("x"),
		ExpiresAt: time.Now().Add(10 * time.Millisecond),
	}
	if err := s.Put(ctx, art); err != nil {
		t.Fatal(err)
	}

	time.Sleep(25 * time.Millisecond)

	// Expired artifacts read as missing
	if got, _ := s.Get(ctx, "shortlived"); got != nil {
		t.Error("Expired artifact should read as missing")
	}

	// Len skips expired entries
	if err := s.Put(ctx, &Artifact{
		ID:        "also-expired",
		ExpiresAt: time.Now().Add(-time.Second),
	}); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.Len(ctx); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}

	// Cleanup drops them from the map entirely
	s.Cleanup()
	s.mu.RLock()
	remaining := len(s.items)
	s.mu.RUnlock()
	if remaining != 0 {
		t.Errorf("Cleanup left %d entries", remaining)
	}
}

func TestMemoryStoreDefaultTTL(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()

	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", s.ttl, DefaultTTL)
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || b == "" {
		t.Fatal("NewID should not be empty")
	}
	if a == b {
		t.Error("NewID should be unique")
	}
}

func TestArtifactIsExpired(t *testing.T) {
	art := &Artifact{}
	if art.IsExpired() {
		t.Error("Zero expiry should never expire")
	}

	art.ExpiresAt = time.Now().Add(time.Hour)
	if art.IsExpired() {
		t.Error("Future expiry should not be expired")
	}

	art.ExpiresAt = time.Now().Add(-time.Second)
	if !art.IsExpired() {
		t.Error("Past expiry should be expired")
	}
}
