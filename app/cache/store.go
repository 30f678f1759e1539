// Package cache holds the single in-memory article snapshot shared between
// the ingestion pipeline and the HTTP handlers.
package cache

import (
	"sync"
	"time"

	"aipulse/app/feed"
)

// Store keeps exactly one snapshot, not a history. Set replaces the whole
// value, so concurrent readers always observe either the previous complete
// snapshot or the new one.
type Store struct {
	mu         sync.RWMutex
	articles   []feed.Article
	lastUpdate time.Time
}

func NewStore() *Store {
	return &Store{}
}

// Get returns the current snapshot and its timestamp. Callers must treat the
// returned slice as read-only.
func (s *Store) Get() ([]feed.Article, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.articles, s.lastUpdate
}

// Set swaps in a new snapshot and stamps the update time.
func (s *Store) Set(articles []feed.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = articles
	s.lastUpdate = time.Now()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}
