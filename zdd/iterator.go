// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import "github.com/powerofpi/HumbleBDD/dd"

// Members visits every set in the family x depth-first, with
// zero-suppression semantics: a variable absent from the path (skipped by
// reduction) means the variable is not in the member, never "don't care"
// — unlike the BDD iterator. The profile slice passed to visit is reused
// across calls; copy it to retain it.
func (z *ZDD) Members(x *Handle, visit func(profile []bool) bool) error {
	if err := z.checkOwner(x); err != nil {
		return err
	}
	n := z.g.Varnum()
	profile := make([]bool, n)
	var walk func(level int32, id dd.NodeID) bool
	walk = func(level int32, id dd.NodeID) bool {
		if id == dd.LO {
			return true
		}
		if level == n {
			return visit(profile)
		}
		v := z.g.I2V(level)
		if z.g.Level(id) == level {
			profile[v] = false
			if !walk(level+1, z.g.Lo(id)) {
				return false
			}
			profile[v] = true
			ok := walk(level+1, z.g.Hi(id))
			profile[v] = false
			return ok
		}
		profile[v] = false
		return walk(level+1, id)
	}
	walk(0, x.id)
	return nil
}

// MemberIter is a fresh-vector alternative to Members, materializing every
// member set up front as independent slices of variable ids.
type MemberIter struct {
	members [][]int32
	pos     int
	valid   bool
}

// NewMemberIter builds a fresh-vector iterator over x's member sets.
func (z *ZDD) NewMemberIter(x *Handle) (*MemberIter, error) {
	var out [][]int32
	err := z.Members(x, func(profile []bool) bool {
		var set []int32
		for v, present := range profile {
			if present {
				set = append(set, int32(v))
			}
		}
		out = append(out, set)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &MemberIter{members: out, pos: -1}, nil
}

// Next advances to the next member set.
func (it *MemberIter) Next() bool {
	if it.pos+1 >= len(it.members) {
		it.valid = false
		return false
	}
	it.pos++
	it.valid = true
	return true
}

// Value returns the current member set.
func (it *MemberIter) Value() ([]int32, error) {
	if !it.valid {
		return nil, dd.Newf(dd.NoSuchElement, "iterator exhausted or not started")
	}
	return it.members[it.pos], nil
}

// Len reports the total number of members.
func (it *MemberIter) Len() int { return len(it.members) }

// ElementIter is the simpler "element iterator" of spec §4.5's closing
// note, valid only over a single-path ZDD (a chain from the root to HI).
// It is what the set-pool façade uses to enumerate one pooled set's
// elements, grounded on the original source's ZDDIterator
// (original_source's zdd/ZDDFactory.java), which performs exactly this
// chain walk.
type ElementIter struct {
	z    *ZDD
	cur  dd.NodeID
	want bool // true once Next has produced a value to read with Value
}

// NewElementIter builds an element iterator over a single-path handle. It
// does not itself verify single-path-ness; Next reports InvalidArgument if
// it ever finds a branching node with both children non-LO.
func (z *ZDD) NewElementIter(x *Handle) (*ElementIter, error) {
	if err := z.checkOwner(x); err != nil {
		return nil, err
	}
	return &ElementIter{z: z, cur: x.id}, nil
}

// Next advances to the path's next set variable.
func (it *ElementIter) Next() (bool, error) {
	for {
		if it.cur == dd.HI {
			it.want = false
			return false, nil
		}
		if it.cur == dd.LO {
			return false, dd.Newf(dd.InvalidArgument, "not a single-path ZDD")
		}
		lo, hi := it.z.g.Lo(it.cur), it.z.g.Hi(it.cur)
		if lo != dd.LO && hi != dd.LO {
			return false, dd.Newf(dd.InvalidArgument, "not a single-path ZDD")
		}
		if hi != dd.LO {
			it.want = true
			return true, nil
		}
		it.cur = lo
	}
}

// Value returns the variable selected by the most recent Next.
func (it *ElementIter) Value() (int32, error) {
	if !it.want {
		return 0, dd.Newf(dd.NoSuchElement, "no current element")
	}
	v := it.z.Var(&Handle{owner: it.z, id: it.cur})
	it.cur = it.z.g.Hi(it.cur)
	it.want = false
	return v, nil
}

// Allnodes visits every inner node reachable from x exactly once,
// post-order; the LO/HI terminals are not visited.
func (z *ZDD) Allnodes(x *Handle, visit func(id int, variable int32, lo, hi int)) error {
	if err := z.checkOwner(x); err != nil {
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
		walk(z.g.Lo(id))
		walk(z.g.Hi(id))
		visit(int(id), z.g.I2V(z.g.Level(id)), int(z.g.Lo(id)), int(z.g.Hi(id)))
	}
	walk(x.id)
	return nil
}
