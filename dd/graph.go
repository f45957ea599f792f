// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NodeID is an arena index into a Graph's node table — the explicit handle
// the design notes call for in place of the source's factory-as-outer-class
// pattern: a node id plus (implicitly, via the owning Graph) a factory
// reference, rather than a Java-style inner class instance.
type NodeID uint32

// LO and HI are the two terminals every Graph preallocates. Their meaning
// is variant-dependent ("false"/"true" for BDD, "empty family"/"family of
// the empty set" for ZDD) and is never reinterpreted by the engine itself.
const (
	LO NodeID = 0
	HI NodeID = 1
)

// ReduceFunc implements a variant's reduction rule: given the level-indexed
// triple that make_node was asked to build, it reports whether the node
// should be elided in favour of one of its children. Returning ok==false
// means no reduction applies and the node must be built normally.
type ReduceFunc func(level int32, lo, hi NodeID) (replacement NodeID, ok bool)

type slot struct {
	level  int32 // ordering index; terminals carry the sentinel value varnum
	lo, hi NodeID
	refcou int32
	marked bool
}

type key struct {
	level  int32
	lo, hi NodeID
}

// Graph is the per-variant universe graph and hash-cons table of spec
// §3/§4.2, generalized from the source's hudd/hkernel map-based unicity
// table (hudd.go, hkernel.go) into a single reusable engine shared by the
// bdd and zdd packages. Only the ReduceFunc and the operator tables that
// live above this package differ between variants.
type Graph struct {
	name    string
	reduce  ReduceFunc
	varnum  int32
	v2i     []int32 // variable -> ordering index
	i2v     []int32 // ordering index -> variable

	nodes   []slot
	gen     []uint32
	unique  map[key]NodeID
	freepos []NodeID

	cache *OpCache
	cfg   configs
	log   *zap.Logger

	gcCount int
}

// NewGraph builds a fresh universe graph over varnum variables, in the
// natural 0..varnum-1 ordering, with the given variant reduction rule. The
// ordering can be customized afterwards with SetOrdering.
func NewGraph(name string, varnum int32, reduce ReduceFunc, opts ...Option) (*Graph, error) {
	if varnum < 1 {
		return nil, Newf(InvalidArgument, "varnum must be >= 1, got %d", varnum)
	}
	cfg := makeconfigs(varnum)
	for _, o := range opts {
		o(&cfg)
	}
	cachesize := cfg.cachesize
	if cachesize == 0 {
		ratio := cfg.cacheratio
		if ratio == 0 {
			ratio = 4
		}
		cachesize = cfg.nodesize / ratio
		if cachesize < 8 {
			cachesize = 8
		}
	}

	g := &Graph{
		name:   name,
		reduce: reduce,
		varnum: varnum,
		cfg:    cfg,
		log:    cfg.logger,
	}
	g.setIdentityOrdering()

	size := cfg.nodesize
	if size < 2 {
		size = 2
	}
	g.nodes = make([]slot, size)
	g.gen = make([]uint32, size)
	g.unique = make(map[key]NodeID, size)
	g.freepos = make([]NodeID, 0, size-2)
	for i := size - 1; i >= 2; i-- {
		g.freepos = append(g.freepos, NodeID(i))
	}
	// Terminals occupy slots 0 and 1 permanently; they are identity
	// compared and never structurally hashed, so they never enter unique.
	g.nodes[0] = slot{level: varnum, refcou: _MAXREFCOUNT}
	g.nodes[1] = slot{level: varnum, refcou: _MAXREFCOUNT}
	g.gen[0], g.gen[1] = 1, 1

	g.cache = NewOpCache(cachesize, g.Gen)
	return g, nil
}

func (g *Graph) setIdentityOrdering() {
	g.v2i = make([]int32, g.varnum)
	g.i2v = make([]int32, g.varnum)
	for i := int32(0); i < g.varnum; i++ {
		g.v2i[i] = i
		g.i2v[i] = i
	}
}

// SetOrdering installs a custom variable ordering: ordering[i] is the
// variable placed at position i. Every variable in [0, varnum) must occur
// exactly once, per spec §3; violation is reported as InvalidArgument,
// matching the source's sanitizeOrdering check (DDFactory.java).
func (g *Graph) SetOrdering(ordering []int32) error {
	if int32(len(ordering)) != g.varnum {
		return Newf(InvalidArgument, "ordering length %d does not match varnum %d", len(ordering), g.varnum)
	}
	seen := make([]bool, g.varnum)
	v2i := make([]int32, g.varnum)
	for i, v := range ordering {
		if v < 0 || v >= g.varnum {
			return Newf(InvalidArgument, "ordering references out-of-range variable %d", v)
		}
		if seen[v] {
			return Newf(InvalidArgument, "ordering references variable %d more than once", v)
		}
		seen[v] = true
		v2i[v] = int32(i)
	}
	g.v2i = v2i
	g.i2v = append([]int32(nil), ordering...)
	return nil
}

// Varnum reports the number of variables the graph was built over.
func (g *Graph) Varnum() int32 { return g.varnum }

// V2I translates a variable id to its ordering index.
func (g *Graph) V2I(v int32) int32 { return g.v2i[v] }

// I2V translates an ordering index to its variable id.
func (g *Graph) I2V(i int32) int32 { return g.i2v[i] }

// Level reports a node's ordering index; terminals report varnum, the
// sentinel "+infinity" position spec §3 requires for ordering comparisons.
func (g *Graph) Level(id NodeID) int32 { return g.nodes[id].level }

// IsTerminal reports whether id names LO or HI.
func (g *Graph) IsTerminal(id NodeID) bool { return id == LO || id == HI }

// Lo returns a node's low child.
func (g *Graph) Lo(id NodeID) NodeID { return g.nodes[id].lo }

// Hi returns a node's high child.
func (g *Graph) Hi(id NodeID) NodeID { return g.nodes[id].hi }

// Gen returns the current generation counter of a node id, used by OpCache
// to detect ghost hits against recycled slots.
func (g *Graph) Gen(id NodeID) uint32 { return g.gen[id] }

// Cache exposes the shared operation cache for variant apply drivers.
func (g *Graph) Cache() *OpCache { return g.cache }

// MakeNode is the hash-consed constructor of spec §4.2. level is an
// ordering index (0..varnum-1); lo/hi are existing node ids. The variant's
// reduction rule is applied first; if it doesn't fire, an existing
// structurally-equal node is reused, otherwise a fresh one is allocated.
func (g *Graph) MakeNode(level int32, lo, hi NodeID) (NodeID, error) {
	if level < 0 || level >= g.varnum {
		return 0, Newf(InvalidArgument, "level %d out of range [0,%d)", level, g.varnum)
	}
	if r, ok := g.reduce(level, lo, hi); ok {
		return r, nil
	}
	k := key{level, lo, hi}
	if id, ok := g.unique[k]; ok {
		return id, nil
	}
	id, err := g.alloc(level, lo, hi)
	if err != nil {
		return 0, err
	}
	g.unique[k] = id
	return id, nil
}

func (g *Graph) alloc(level int32, lo, hi NodeID) (NodeID, error) {
	if len(g.freepos) == 0 {
		// No spare slot: garbage collect first, mirroring the source's
		// noderesize trigger (hkernel.go/bkernel.go), then grow the table
		// if GC didn't bring free space back above the minfreenodes floor.
		// Both steps can each raise their own non-fatal warning; we
		// aggregate them with multierr and emit a single log call instead
		// of one per condition.
		var warnings error
		freed := g.gc()
		if freed == 0 {
			warnings = multierr.Append(warnings, fmt.Errorf("gc pass %d reclaimed no nodes", g.gcCount))
		}
		if g.belowMinFree() {
			warnings = multierr.Append(warnings, fmt.Errorf("free nodes at or below %d%% threshold after gc", g.cfg.minfreenodes))
			if err := g.grow(); err != nil {
				warnings = multierr.Append(warnings, err)
				if len(g.freepos) == 0 {
					g.log.Warn("dd: node table exhausted", zap.String("variant", g.name), zap.Int("pass", g.gcCount), zap.Error(warnings))
					return 0, err
				}
			} else {
				warnings = multierr.Append(warnings, fmt.Errorf("grew node table to %d slots", len(g.nodes)))
			}
		}
		if warnings != nil {
			g.log.Debug("dd: gc/resize", zap.String("variant", g.name), zap.Int("pass", g.gcCount), zap.Int("freed", freed), zap.Error(warnings))
		}
	}
	if len(g.freepos) == 0 {
		return 0, Wrapf(errMemory, UnsupportedOperation, "node table exhausted")
	}
	n := len(g.freepos) - 1
	id := g.freepos[n]
	g.freepos = g.freepos[:n]
	g.nodes[id] = slot{level: level, lo: lo, hi: hi}
	g.gen[id]++
	return id, nil
}

// belowMinFree reports whether the percentage of currently free node-table
// slots is at or below cfg.minfreenodes, the threshold at which the source
// (hkernel.go/bkernel.go's "(b.freenum*100)/len(b.nodes) <= b.minfreenodes")
// resizes rather than relying on GC alone. minfreenodes <= 0 disables the
// check, matching maxnodesize's "0 means unbounded" convention.
func (g *Graph) belowMinFree() bool {
	if g.cfg.minfreenodes <= 0 {
		return false
	}
	return (len(g.freepos)*100)/len(g.nodes) <= g.cfg.minfreenodes
}

func (g *Graph) grow() error {
	old := len(g.nodes)
	inc := old
	if g.cfg.maxnodeincrease > 0 && inc > g.cfg.maxnodeincrease {
		inc = g.cfg.maxnodeincrease
	}
	if inc < 1 {
		inc = 1
	}
	next := old + inc
	if g.cfg.maxnodesize > 0 && next > g.cfg.maxnodesize {
		next = g.cfg.maxnodesize
	}
	if next <= old {
		return Wrapf(errResize, UnsupportedOperation, "node table at maxnodesize %d", g.cfg.maxnodesize)
	}
	g.nodes = append(g.nodes, make([]slot, next-old)...)
	g.gen = append(g.gen, make([]uint32, next-old)...)
	for i := next - 1; i >= old; i-- {
		g.freepos = append(g.freepos, NodeID(i))
	}
	return nil
}

// AddRef registers an external (handle-level) strong reference to id,
// mirroring the source's AddRef (gc.go). Terminals are immortal and ignore
// this.
func (g *Graph) AddRef(id NodeID) {
	if id < 2 {
		return
	}
	if g.nodes[id].refcou < _MAXREFCOUNT {
		g.nodes[id].refcou++
	}
}

// DelRef releases an external strong reference. It does not free the node
// immediately — reclamation happens lazily, during the next gc() pass —
// matching spec §5's "periodic compaction is acceptable" allowance.
func (g *Graph) DelRef(id NodeID) {
	if id < 2 {
		return
	}
	if g.nodes[id].refcou > 0 {
		g.nodes[id].refcou--
	}
}

// gc performs a full mark-sweep pass rooted at every node with a positive
// external refcount, mirroring the source's gbc (gc.go): live nodes are
// remarked into a fresh unique table, dead slots are recycled into
// freepos with their generation bumped so any OpCache entry referencing
// them becomes a miss. It reports the number of slots freed; callers (just
// alloc) are responsible for logging, so a pass that also triggers a
// resize can report both in one aggregated call.
func (g *Graph) gc() int {
	g.gcCount++
	for id := NodeID(2); int(id) < len(g.nodes); id++ {
		g.nodes[id].marked = false
	}
	for id := NodeID(2); int(id) < len(g.nodes); id++ {
		if g.nodes[id].refcou > 0 {
			g.markrec(id)
		}
	}
	g.unique = make(map[key]NodeID, len(g.unique))
	freed := 0
	for id := NodeID(2); int(id) < len(g.nodes); id++ {
		s := &g.nodes[id]
		if s.marked {
			s.marked = false
			g.unique[key{s.level, s.lo, s.hi}] = id
			continue
		}
		if s.level != 0 || s.lo != 0 || s.hi != 0 {
			g.gen[id]++
			*s = slot{}
			g.freepos = append(g.freepos, id)
			freed++
		}
	}
	return freed
}

func (g *Graph) markrec(id NodeID) {
	if id < 2 {
		return
	}
	s := &g.nodes[id]
	if s.marked {
		return
	}
	s.marked = true
	g.markrec(s.lo)
	g.markrec(s.hi)
}

// Stats reports a snapshot of the node table and cache occupancy, in the
// manner of the source's PrintStats (stdio.go).
type Stats struct {
	Variant     string
	Varnum      int32
	NodeSize    int
	NodesInUse  int
	FreeNodes   int
	CacheSize   int
	CacheAccess int64
	CacheHit    int64
	GCRuns      int
}

// Stats reports a snapshot of the graph's current resource usage.
func (g *Graph) Stats() Stats {
	st := g.cache.Stat()
	return Stats{
		Variant:     g.name,
		Varnum:      g.varnum,
		NodeSize:    len(g.nodes),
		NodesInUse:  len(g.nodes) - len(g.freepos),
		FreeNodes:   len(g.freepos),
		CacheSize:   g.cache.Len(),
		CacheAccess: st.Access,
		CacheHit:    st.Hit,
		GCRuns:      g.gcCount,
	}
}
