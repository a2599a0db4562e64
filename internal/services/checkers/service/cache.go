package service

import (
	"context"
	"sync"

	"thaiproof/internal/services/checkers/domain"
)

// Cached memoizes successful Check results per text unit. Documents repeat
// paragraphs (headers, boilerplate) and external markers are slow, so the
// win is real. Errors are never cached; the next call retries
type Cached struct {
	inner domain.CheckerPort

	mu   sync.RWMutex
	hits map[string]domain.WordSet
}

// NewCached wraps a checker with memoization
func NewCached(inner domain.CheckerPort) *Cached {
	return &Cached{inner: inner, hits: map[string]domain.WordSet{}}
}

// Name implements domain.CheckerPort
func (c *Cached) Name() string { return c.inner.Name() }

// Check implements domain.CheckerPort
func (c *Cached) Check(ctx context.Context, text string) (domain.WordSet, error) {
	c.mu.RLock()
	got, ok := c.hits[text]
	c.mu.RUnlock()
	if ok {
		return clone(got), nil
	}

	res, err := c.inner.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.hits[text] = clone(res)
	c.mu.Unlock()
	return res, nil
}

// results are mutable maps; hand out copies so callers cannot poison the cache
func clone(s domain.WordSet) domain.WordSet {
	out := make(domain.WordSet, len(s))
	for w := range s {
		out[w] = struct{}{}
	}
	return out
}
