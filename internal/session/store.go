package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// store keeps live sessions in a bounded LRU with an idle TTL. Activity
// refreshes the TTL. Anything that leaves the store (expiry, capacity
// eviction or Remove) is handed to onEvict.
type store struct {
	lru *expirable.LRU[string, *Session]
}

// newStore creates a store holding at most size sessions, each expiring
// after ttl without activity
func newStore(size int, ttl time.Duration, onEvict func(*Session)) *store {
	return &store{
		lru: expirable.NewLRU[string, *Session](size, func(_ string, s *Session) {
			onEvict(s)
		}, ttl),
	}
}

func (c *store) Get(id string) (*Session, bool) {
	return c.lru.Get(id)
}

// Add stores s, or refreshes its TTL when already present
func (c *store) Add(s *Session) {
	c.lru.Add(s.ID(), s)
}

func (c *store) Remove(id string) bool {
	return c.lru.Remove(id)
}

func (c *store) Len() int {
	return c.lru.Len()
}

func (c *store) Values() []*Session {
	return c.lru.Values()
}

// Purge evicts every session
func (c *store) Purge() {
	c.lru.Purge()
}
