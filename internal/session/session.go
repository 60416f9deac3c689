// Package session keeps the extracted text a chat is currently analyzing.
// Documents themselves are never persisted; each chat holds at most one
// session, and sessions expire so long-abandoned text does not pile up.
package session

import (
	"container/list"
	"sync"
	"time"

	"doclens/internal/models"
)

const (
	DefaultMaxEntries = 1024
	TTL               = time.Hour
)

type Store struct {
	mu         sync.Mutex
	entries    map[int64]*list.Element
	order      *list.List
	maxEntries int
}

type storeEntry struct {
	chatID  int64
	session models.DocumentSession
}

func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		return nil
	}

	return &Store{
		entries:    make(map[int64]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

// Put stores the chat's current document session, replacing any previous
// one. The expiry is stamped here so callers cannot forget it.
func (s *Store) Put(chatID int64, session models.DocumentSession, now time.Time) {
	if s == nil || session.Text == "" {
		return
	}

	session.ExpiresAt = now.Add(TTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.entries[chatID]; ok {
		entry, castOk := elem.Value.(*storeEntry)
		if !castOk {
			return
		}

		entry.session = session
		s.order.MoveToFront(elem)

		return
	}

	elem := s.order.PushFront(&storeEntry{
		chatID:  chatID,
		session: session,
	})
	s.entries[chatID] = elem

	s.evictExpiredLocked(now)
	s.enforceSizeLimitLocked()
}

func (s *Store) Get(chatID int64, now time.Time) (models.DocumentSession, bool) {
	if s == nil {
		return models.DocumentSession{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.entries[chatID]
	if !ok {
		return models.DocumentSession{}, false
	}

	entry, ok := elem.Value.(*storeEntry)
	if !ok {
		return models.DocumentSession{}, false
	}

	if now.After(entry.session.ExpiresAt) {
		s.removeElement(elem)

		return models.DocumentSession{}, false
	}

	s.order.MoveToFront(elem)

	return entry.session, true
}

// PruneExpired drops every expired session and reports how many were removed.
func (s *Store) PruneExpired(now time.Time) int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		entry, ok := elem.Value.(*storeEntry)
		if !ok {
			elem = prev
			continue
		}

		if now.After(entry.session.ExpiresAt) {
			s.removeElement(elem)
			removed++
		}
		elem = prev
	}

	return removed
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *Store) evictExpiredLocked(now time.Time) {
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		entry, ok := elem.Value.(*storeEntry)
		if !ok {
			elem = prev
			continue
		}

		if now.After(entry.session.ExpiresAt) {
			s.removeElement(elem)
		}
		elem = prev
	}
}

func (s *Store) enforceSizeLimitLocked() {
	for len(s.entries) > s.maxEntries {
		elem := s.order.Back()
		if elem == nil {
			return
		}
		s.removeElement(elem)
	}
}

func (s *Store) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*storeEntry)
	if !ok {
		return
	}

	delete(s.entries, entry.chatID)
	s.order.Remove(elem)
}
