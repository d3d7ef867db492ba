package checker

import (
	"container/list"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/typofix/internal/suggest"
)

// rankCache memoizes Rank results for one checker. The member threshold is
// fixed for the checker's lifetime and the path threshold is a function of
// the query, so (mode, query, pool) determines the result.
type rankCache struct {
	maxSize int
	mu      sync.RWMutex
	items   map[uint64]*list.Element
	order   *list.List
}

// rankEntry is one memoized pool in the recency list.
type rankEntry struct {
	key  uint64
	sugs []suggest.Suggestion
}

func newRankCache(maxSize int) *rankCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	return &rankCache{
		maxSize: maxSize,
		items:   make(map[uint64]*list.Element),
		order:   list.New(),
	}
}

// get returns the memoized suggestions and marks the key recently used.
// Callers must treat the returned slice as read-only.
func (c *rankCache) get(key uint64) ([]suggest.Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*rankEntry).sugs, true
	}
	return nil, false
}

// set adds or refreshes an entry, evicting the least recently used one when
// over capacity.
func (c *rankCache) set(key uint64, sugs []suggest.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*rankEntry).sugs = sugs
		return
	}

	elem := c.order.PushFront(&rankEntry{key: key, sugs: sugs})
	c.items[key] = elem

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*rankEntry).key)
		}
	}
}

// size returns the current number of memoized results.
func (c *rankCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// rankKey hashes one rank request. The raw query goes in (scores depend on
// its tokens and rune length, which normalization erases); pools arrive
// sorted from the providers, so equal pools hash equally regardless of
// discovery order.
func rankKey(mode suggest.Mode, query string, pool []string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(string(mode))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(query)
	for _, c := range pool {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(c)
	}
	return h.Sum64()
}
