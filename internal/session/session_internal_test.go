package session

import (
	"testing"
	"time"

	"doclens/internal/models"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore(2)
	if store == nil {
		t.Fatalf("expected store instance")
	}

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store.Put(1, models.DocumentSession{FileName: "a.pdf", Text: "text"}, now)

	got, ok := store.Get(1, now)
	if !ok {
		t.Fatalf("expected session to be present")
	}

	if got.FileName != "a.pdf" || got.Text != "text" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if !got.ExpiresAt.After(now) {
		t.Fatalf("expected expiry to be stamped after now, got %v", got.ExpiresAt)
	}
}

func TestStoreIgnoresEmptyText(t *testing.T) {
	store := NewStore(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	store.Put(1, models.DocumentSession{FileName: "a.pdf"}, now)

	if _, ok := store.Get(1, now); ok {
		t.Fatalf("expected empty-text session to be dropped")
	}
}

func TestStoreExpiresEntries(t *testing.T) {
	store := NewStore(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	store.Put(1, models.DocumentSession{Text: "text"}, now)

	if _, ok := store.Get(1, now.Add(TTL+time.Minute)); ok {
		t.Fatalf("expected session to expire")
	}

	if store.Len() != 0 {
		t.Fatalf("expected expired session to be removed")
	}
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(2)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	store.Put(1, models.DocumentSession{Text: "one"}, now)
	store.Put(2, models.DocumentSession{Text: "two"}, now)

	if _, ok := store.Get(1, now); !ok {
		t.Fatalf("expected chat 1 session before eviction check")
	}

	store.Put(3, models.DocumentSession{Text: "three"}, now)

	if _, ok := store.Get(1, now); !ok {
		t.Fatalf("expected chat 1 session to remain after evicting least recently used")
	}

	if _, ok := store.Get(2, now); ok {
		t.Fatalf("expected chat 2 session to be evicted")
	}

	if _, ok := store.Get(3, now); !ok {
		t.Fatalf("expected chat 3 session to be present")
	}
}

func TestStorePruneExpired(t *testing.T) {
	store := NewStore(4)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	store.Put(1, models.DocumentSession{Text: "one"}, now)
	store.Put(2, models.DocumentSession{Text: "two"}, now.Add(30*time.Minute))

	removed := store.PruneExpired(now.Add(TTL + time.Minute))
	if removed != 1 {
		t.Fatalf("expected 1 pruned session, got %d", removed)
	}

	if store.Len() != 1 {
		t.Fatalf("expected 1 remaining session, got %d", store.Len())
	}
}
