// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/powerofpi/HumbleBDD/dd"

// Replacer renames variables, matching the source's Replacer interface
// (replace.go): Id distinguishes replacers for cache-key purposes, Replace
// maps an old variable to its new one.
type Replacer struct {
	id    int
	image map[int32]int32
}

var replacerSeq int

// NewReplacer builds a Replacer mapping oldvars[i] to newvars[i]. Every
// entry of oldvars must be distinct, matching the source's NewReplacer
// validation (replace.go).
func NewReplacer(oldvars, newvars []int32) (*Replacer, error) {
	if len(oldvars) != len(newvars) {
		return nil, dd.Newf(dd.InvalidArgument, "oldvars/newvars length mismatch")
	}
	image := make(map[int32]int32, len(oldvars))
	for i, v := range oldvars {
		if _, dup := image[v]; dup {
			return nil, dd.Newf(dd.InvalidArgument, "variable %d replaced more than once", v)
		}
		image[v] = newvars[i]
	}
	replacerSeq++
	return &Replacer{id: replacerSeq, image: image}, nil
}

// Replace applies r to every variable of f. Each renamed node is built
// only when its new level lies strictly above both (already renamed)
// children; ordering violations introduced by the renaming are not
// repaired: a renaming that lands on a child's level, or below it, is
// reported as InvalidArgument rather than producing a malformed diagram.
func (b *BDD) Replace(f *Handle, r *Replacer) (*Handle, error) {
	if err := b.checkOwner(f); err != nil {
		return nil, err
	}
	id, err := b.replaceID(f.id, r)
	if err != nil {
		return nil, err
	}
	return b.handle(id), nil
}

func (b *BDD) replaceID(f dd.NodeID, r *Replacer) (dd.NodeID, error) {
	if f < 2 {
		return f, nil
	}
	if res, ok := b.g.Cache().Get(int32(-100-r.id), f, 0, false); ok {
		return res, nil
	}
	lvl := b.g.Level(f)
	v := b.g.I2V(lvl)
	nv, ok := r.image[v]
	if !ok {
		nv = v
	}
	lo, err := b.replaceID(b.g.Lo(f), r)
	if err != nil {
		return 0, err
	}
	hi, err := b.replaceID(b.g.Hi(f), r)
	if err != nil {
		return 0, err
	}
	res, err := b.correctify(b.g.V2I(nv), lo, hi)
	if err != nil {
		return 0, err
	}
	b.g.Cache().Put(int32(-100-r.id), f, 0, false, res)
	return res, nil
}

// correctify builds make_node(level, lo, hi) when level lies above both
// children. Unlike the source's replace.go correctify, it does not bubble
// the node down past a child: a child at the same level is reported as a
// collision, and a child above it as an ordering violation, both
// InvalidArgument.
func (b *BDD) correctify(level int32, lo, hi dd.NodeID) (dd.NodeID, error) {
	if level < b.g.Level(lo) && level < b.g.Level(hi) {
		return b.g.MakeNode(level, lo, hi)
	}
	if b.g.Level(lo) == level || b.g.Level(hi) == level {
		return 0, dd.Newf(dd.InvalidArgument, "replace: renaming collides with an existing variable level")
	}
	return 0, dd.Newf(dd.InvalidArgument, "replace: renaming violates the variable ordering")
}
