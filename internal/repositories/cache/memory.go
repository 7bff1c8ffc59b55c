package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryLedgerCache keeps ledger projections in a bounded in-process LRU.
// Invalidation bumps a per-organization generation so older keys are never read again
// and age out of the LRU on their own.
type MemoryLedgerCache struct {
	lru *expirable.LRU[string, []domain.LedgerEntry]

	mu          sync.Mutex
	generations map[string]uint64
}

var _ portsrepo.LedgerCache = (*MemoryLedgerCache)(nil)

// NewMemoryLedgerCache creates a cache holding at most size projections for ttl each.
func NewMemoryLedgerCache(size int, ttl time.Duration) *MemoryLedgerCache {
	if size <= 0 {
		size = 256
	}
	return &MemoryLedgerCache{
		lru:         expirable.NewLRU[string, []domain.LedgerEntry](size, nil, ttl),
		generations: make(map[string]uint64),
	}
}

func (c *MemoryLedgerCache) key(orgID string, filter domain.LedgerFilter) string {
	c.mu.Lock()
	gen := c.generations[orgID]
	c.mu.Unlock()
	return fmt.Sprintf("%s:%d:%s", orgID, gen, filterKey(filter))
}

// Get returns a copy of the cached projection, or the slot to fill on a miss.
func (c *MemoryLedgerCache) Get(_ context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, string, bool) {
	key := c.key(orgID, filter)
	entries, ok := c.lru.Get(key)
	if !ok {
		return nil, key, false
	}
	return cloneEntries(entries), key, true
}

// Set stores a copy of entries in slot.
func (c *MemoryLedgerCache) Set(_ context.Context, slot string, entries []domain.LedgerEntry) {
	if slot == "" {
		return
	}
	c.lru.Add(slot, cloneEntries(entries))
}

// Invalidate makes every projection of the organization unreachable.
func (c *MemoryLedgerCache) Invalidate(_ context.Context, orgID string) {
	c.mu.Lock()
	c.generations[orgID]++
	c.mu.Unlock()
}

// Len reports the number of stored projections, including unreachable ones.
func (c *MemoryLedgerCache) Len() int {
	return c.lru.Len()
}
