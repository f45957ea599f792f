// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

// CacheStat tracks hit/miss counters for one OpCache, grounded on the
// source's cacheStat (cache.go).
type CacheStat struct {
	Access int64
	Hit    int64
	Miss   int64
}

type cacheEntry struct {
	valid   bool
	op      int32
	a       NodeID
	b       int32
	bIsNode bool
	res     NodeID
	aGen    uint32
	bGen    uint32
	resGen  uint32
}

// OpCache is the fixed-capacity, direct-mapped operation cache of spec §4.1.
// It is shared by every operator of a variant: the key is always
// (op, a, b_or_var), with commutativity normalization left to the caller
// (the caller swaps a/b before Get/Put for commutative operators).
//
// Entries are validated against the owning graph's per-slot generation
// counters so that a node recycled by garbage collection can never produce
// a "ghost hit": if any of the key's node operands or the cached result
// have since been recycled into a different node, Get reports a miss.
type OpCache struct {
	table []cacheEntry
	gen   func(NodeID) uint32
	stat  CacheStat
}

// NewOpCache builds a cache of the given fixed capacity. gen must return the
// current generation counter of a node id, used to detect staleness.
func NewOpCache(size int, gen func(NodeID) uint32) *OpCache {
	return &OpCache{table: make([]cacheEntry, size), gen: gen}
}

// Len reports the cache's fixed capacity.
func (c *OpCache) Len() int { return len(c.table) }

// Get looks up (op, a, b). bIsNode tells the cache whether b encodes a
// NodeID (so its generation must be checked) or a plain variable index.
func (c *OpCache) Get(op int32, a NodeID, b int32, bIsNode bool) (NodeID, bool) {
	if len(c.table) == 0 {
		return 0, false
	}
	c.stat.Access++
	idx := _triple(int(op), int(a), int(b), len(c.table))
	e := &c.table[idx]
	if !e.valid || e.op != op || e.a != a || e.b != b || e.bIsNode != bIsNode {
		c.stat.Miss++
		return 0, false
	}
	if c.gen(e.a) != e.aGen || c.gen(e.res) != e.resGen {
		c.stat.Miss++
		return 0, false
	}
	if bIsNode && c.gen(NodeID(b)) != e.bGen {
		c.stat.Miss++
		return 0, false
	}
	c.stat.Hit++
	return e.res, true
}

// Put installs (op, a, b) -> res, unconditionally overwriting whatever
// shared the same slot.
func (c *OpCache) Put(op int32, a NodeID, b int32, bIsNode bool, res NodeID) {
	if len(c.table) == 0 {
		return
	}
	idx := _triple(int(op), int(a), int(b), len(c.table))
	e := cacheEntry{
		valid:   true,
		op:      op,
		a:       a,
		b:       b,
		bIsNode: bIsNode,
		res:     res,
		aGen:    c.gen(a),
		resGen:  c.gen(res),
	}
	if bIsNode {
		e.bGen = c.gen(NodeID(b))
	}
	c.table[idx] = e
}

// Resize replaces the cache with a fresh one of the given capacity,
// discarding all entries.
func (c *OpCache) Resize(size int) {
	c.table = make([]cacheEntry, size)
	c.stat = CacheStat{}
}

// Reset clears every entry without changing capacity.
func (c *OpCache) Reset() error {
	if c.table == nil {
		return Wrapf(errReset, UnsupportedOperation, "cache not initialized")
	}
	for i := range c.table {
		c.table[i] = cacheEntry{}
	}
	return nil
}

// Stat returns the current hit/miss counters.
func (c *OpCache) Stat() CacheStat { return c.stat }
