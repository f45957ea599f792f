// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/powerofpi/HumbleBDD/dd"

// Allsat visits every satisfying assignment of h depth-first: the lo edge
// (variable false) first, then on backtrack the hi edge (variable true).
// A variable skipped by reduction is a don't-care — rather than leaving it
// unassigned, Allsat inserts an explicit lo/hi spacer step for it, exploring
// both values against the same subtree, so visit always receives a fully
// expanded length-Varnum boolean vector, never a don't-care sentinel. The
// slice passed to visit is reused across calls — copy it if you need to
// retain it, per spec §4.4's aliasing contract. Returning false from visit
// stops the traversal early.
//
// Grounded on the source's allsat (operations.go), generalized to make the
// don't-care spacer step explicit (the source's version left skipped
// variables unassigned in the profile array).
func (b *BDD) Allsat(h *Handle, visit func(profile []bool) bool) error {
	if err := b.checkOwner(h); err != nil {
		return err
	}
	n := b.g.Varnum()
	profile := make([]bool, n)
	var walk func(level int32, id dd.NodeID) bool
	walk = func(level int32, id dd.NodeID) bool {
		if id == dd.LO {
			return true
		}
		if level == n {
			return visit(profile)
		}
		v := b.g.I2V(level)
		if b.g.Level(id) == level {
			profile[v] = false
			if !walk(level+1, b.g.Lo(id)) {
				return false
			}
			profile[v] = true
			ok := walk(level+1, b.g.Hi(id))
			profile[v] = false
			return ok
		}
		// v is skipped by reduction: a don't-care, so fork explicitly on
		// both of its values, each leading to the same subtree id.
		profile[v] = false
		if !walk(level+1, id) {
			return false
		}
		profile[v] = true
		ok := walk(level+1, id)
		profile[v] = false
		return ok
	}
	walk(0, h.id)
	return nil
}

// AssignmentIter is the "safety-first" alternative iterator design note §9
// calls for: unlike Allsat, which reuses one aliased buffer, it
// materializes every satisfying assignment up front as an independent
// fresh slice, trading laziness for an iterator callers can freely retain
// slices from.
type AssignmentIter struct {
	assignments [][]bool
	pos         int
	valid       bool
}

// NewAssignmentIter builds a fresh-vector iterator over h's satisfying
// assignments.
func (b *BDD) NewAssignmentIter(h *Handle) (*AssignmentIter, error) {
	var out [][]bool
	err := b.Allsat(h, func(profile []bool) bool {
		out = append(out, append([]bool(nil), profile...))
		return true
	})
	if err != nil {
		return nil, err
	}
	return &AssignmentIter{assignments: out, pos: -1}, nil
}

// Next advances to the next assignment, reporting whether one is available.
func (it *AssignmentIter) Next() bool {
	if it.pos+1 >= len(it.assignments) {
		it.valid = false
		return false
	}
	it.pos++
	it.valid = true
	return true
}

// Value returns the current assignment. Calling it before a successful
// Next, or after exhaustion, is a no-such-element error per spec §7.
func (it *AssignmentIter) Value() ([]bool, error) {
	if !it.valid {
		return nil, dd.Newf(dd.NoSuchElement, "iterator exhausted or not started")
	}
	return it.assignments[it.pos], nil
}

// Len reports the total number of assignments the iterator will produce.
func (it *AssignmentIter) Len() int { return len(it.assignments) }

// Allnodes visits every inner node reachable from h exactly once, in
// post-order (children before parent); the LO/HI terminals are not
// visited. Matching the source's Allnodes/allnodesfrom
// (operations.go).
func (b *BDD) Allnodes(h *Handle, visit func(id int, variable int32, lo, hi int)) error {
	if err := b.checkOwner(h); err != nil {
		return err
	}
	visited := map[dd.NodeID]bool{}
	var walk func(id dd.NodeID)
	walk = func(id dd.NodeID) {
		if visited[id] {
			return
		}
		visited[id] = true
		if id < 2 {
			return
		}
		walk(b.g.Lo(id))
		walk(b.g.Hi(id))
		visit(int(id), b.g.I2V(b.g.Level(id)), int(b.g.Lo(id)), int(b.g.Hi(id)))
	}
	walk(h.id)
	return nil
}
