package session

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps per-session state in memory. An entry expires ttl after its
// last Put or Touch and the least recently used entry is evicted once
// capacity is reached. Nothing survives a restart.
type Store[T comparable] struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, T]
}

func NewStore[T comparable](capacity int, ttl time.Duration) *Store[T] {
	return &Store[T]{lru: expirable.NewLRU[string, T](capacity, nil, ttl)}
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Get(id)
}

func (s *Store[T]) Put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Add(id, v)
}

// Touch restarts the expiry of id, but only while the store still holds v
// under it. An entry deleted or replaced in the meantime stays that way.
func (s *Store[T]) Touch(id string, v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.lru.Peek(id)
	if !ok || cur != v {
		return false
	}
	s.lru.Add(id, v)
	return true
}

func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Remove(id)
}

func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}
