package green

import (
	"sync/atomic"

	"pdfsyntax/internal/token"
)

const (
	DefaultCacheBits = 16
	minCacheBits     = 4
	maxCacheBits     = 24
	maxCachedSlots   = 3
)

type cacheEntry struct {
	hash uint64
	node Node
}

// Cache shares small structural nodes within a session. It is a fixed ring
// of slots, each replaced by a single atomic store, so concurrent parsers can
// use one Cache without locks. A racing reader sees either the old or the
// new entry; a stale read only loses sharing.
type Cache struct {
	mask  uint64
	slots []atomic.Pointer[cacheEntry]

	hits   atomic.Uint64
	misses atomic.Uint64
	adds   atomic.Uint64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Adds   uint64
	Slots  int
}

// NewCache allocates 1<<bits slots; bits is clamped to [4, 24].
func NewCache(bits int) *Cache {
	if bits <= 0 {
		bits = DefaultCacheBits
	}
	bits = max(minCacheBits, min(bits, maxCacheBits))
	size := 1 << bits
	return &Cache{
		mask:  uint64(size - 1),
		slots: make([]atomic.Pointer[cacheEntry], size),
	}
}

// TryGetNode looks up a node of kind with exactly these children (compared
// by reference). The returned hash is 0 when such a node is not eligible for
// caching; otherwise it is the hash to pass to AddNode after a miss.
func (c *Cache) TryGetNode(kind token.Kind, children ...Node) (Node, uint64) {
	if c == nil || len(children) == 0 || len(children) > maxCachedSlots {
		return nil, 0
	}
	for _, ch := range children {
		if ch != nil && !cacheable(ch) {
			return nil, 0
		}
	}
	h := structuralHash(kind, children)
	e := c.slots[h&c.mask].Load()
	if e != nil && e.hash == h && e.node.Kind() == kind && sameChildren(e.node, children) {
		c.hits.Add(1)
		return e.node, h
	}
	c.misses.Add(1)
	return nil, h
}

// AddNode stores n under hash. It is a no-op for hash 0, for nodes with
// diagnostics or more than three children, and for nodes whose interior
// children are not themselves resident.
func (c *Cache) AddNode(n Node, hash uint64) {
	if c == nil || hash == 0 || !cacheable(n) {
		return
	}
	for i := 0; i < n.SlotCount(); i++ {
		ch := n.Slot(i)
		if ch == nil || ch.SlotCount() == 0 {
			continue
		}
		if !c.resident(ch) {
			return
		}
	}
	c.slots[hash&c.mask].Store(&cacheEntry{hash: hash, node: n})
	c.adds.Add(1)
}

func (c *Cache) resident(n Node) bool {
	e := c.slots[n.Hash()&c.mask].Load()
	return e != nil && e.node == n
}

func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Adds:   c.adds.Load(),
		Slots:  len(c.slots),
	}
}

func sameChildren(n Node, children []Node) bool {
	if n.SlotCount() != len(children) {
		return false
	}
	for i, ch := range children {
		if n.Slot(i) != ch {
			return false
		}
	}
	return true
}
