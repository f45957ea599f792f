// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import (
	"math/big"

	"github.com/powerofpi/HumbleBDD/dd"
)

const (
	opUnion = iota
	opIntersect
	opDifference
	opSubset1
	opSubset0
	opChange
)

func (z *ZDD) unionID(a, b dd.NodeID) (dd.NodeID, error) {
	switch {
	case a == dd.LO:
		return b, nil
	case b == dd.LO:
		return a, nil
	case a == b:
		return a, nil
	}
	ca, cb := a, b
	if ca > cb {
		ca, cb = cb, ca
	}
	if res, ok := z.g.Cache().Get(opUnion, ca, int32(cb), true); ok {
		return res, nil
	}
	va, vb := z.g.Level(a), z.g.Level(b)
	var res dd.NodeID
	var err error
	switch {
	case va == vb:
		var lo, hi dd.NodeID
		if lo, err = z.unionID(z.g.Lo(a), z.g.Lo(b)); err == nil {
			if hi, err = z.unionID(z.g.Hi(a), z.g.Hi(b)); err == nil {
				res, err = z.g.MakeNode(va, lo, hi)
			}
		}
	case va < vb:
		var lo dd.NodeID
		if lo, err = z.unionID(z.g.Lo(a), b); err == nil {
			res, err = z.g.MakeNode(va, lo, z.g.Hi(a))
		}
	default:
		var lo dd.NodeID
		if lo, err = z.unionID(a, z.g.Lo(b)); err == nil {
			res, err = z.g.MakeNode(vb, lo, z.g.Hi(b))
		}
	}
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opUnion, ca, int32(cb), true, res)
	return res, nil
}

func (z *ZDD) intersectID(a, b dd.NodeID) (dd.NodeID, error) {
	switch {
	case a == dd.LO || b == dd.LO:
		return dd.LO, nil
	case a == b:
		return a, nil
	}
	ca, cb := a, b
	if ca > cb {
		ca, cb = cb, ca
	}
	if res, ok := z.g.Cache().Get(opIntersect, ca, int32(cb), true); ok {
		return res, nil
	}
	va, vb := z.g.Level(a), z.g.Level(b)
	var res dd.NodeID
	var err error
	switch {
	case va == vb:
		var lo, hi dd.NodeID
		if lo, err = z.intersectID(z.g.Lo(a), z.g.Lo(b)); err == nil {
			if hi, err = z.intersectID(z.g.Hi(a), z.g.Hi(b)); err == nil {
				res, err = z.g.MakeNode(va, lo, hi)
			}
		}
	case va < vb:
		res, err = z.intersectID(z.g.Lo(a), b)
	default:
		res, err = z.intersectID(a, z.g.Lo(b))
	}
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opIntersect, ca, int32(cb), true, res)
	return res, nil
}

// differenceID is intentionally not commutativity-normalized: spec §3
// calls out DIFFERENCE as the one operator where key order is significant.
func (z *ZDD) differenceID(a, b dd.NodeID) (dd.NodeID, error) {
	switch {
	case a == dd.LO:
		return dd.LO, nil
	case b == dd.LO:
		return a, nil
	case a == b:
		return dd.LO, nil
	}
	if res, ok := z.g.Cache().Get(opDifference, a, int32(b), true); ok {
		return res, nil
	}
	va, vb := z.g.Level(a), z.g.Level(b)
	var res dd.NodeID
	var err error
	switch {
	case va == vb:
		var lo, hi dd.NodeID
		if lo, err = z.differenceID(z.g.Lo(a), z.g.Lo(b)); err == nil {
			if hi, err = z.differenceID(z.g.Hi(a), z.g.Hi(b)); err == nil {
				res, err = z.g.MakeNode(va, lo, hi)
			}
		}
	case va < vb:
		var lo dd.NodeID
		if lo, err = z.differenceID(z.g.Lo(a), b); err == nil {
			res, err = z.g.MakeNode(va, lo, z.g.Hi(a))
		}
	default:
		res, err = z.differenceID(a, z.g.Lo(b))
	}
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opDifference, a, int32(b), true, res)
	return res, nil
}

// Union returns x ∪ y.
func (z *ZDD) Union(x, y *Handle) (*Handle, error) {
	if err := z.checkOwner(x, y); err != nil {
		return nil, err
	}
	id, err := z.unionID(x.id, y.id)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Intersection returns x ∩ y.
func (z *ZDD) Intersection(x, y *Handle) (*Handle, error) {
	if err := z.checkOwner(x, y); err != nil {
		return nil, err
	}
	id, err := z.intersectID(x.id, y.id)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Difference returns x ∖ y.
func (z *ZDD) Difference(x, y *Handle) (*Handle, error) {
	if err := z.checkOwner(x, y); err != nil {
		return nil, err
	}
	id, err := z.differenceID(x.id, y.id)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

func (z *ZDD) subset1ID(a dd.NodeID, v int32) (dd.NodeID, error) {
	level := z.g.V2I(v)
	al := z.g.Level(a)
	if al > level {
		return dd.LO, nil
	}
	if al == level {
		return z.g.Hi(a), nil
	}
	if res, ok := z.g.Cache().Get(opSubset1, a, v, false); ok {
		return res, nil
	}
	lo, err := z.subset1ID(z.g.Lo(a), v)
	if err != nil {
		return 0, err
	}
	hi, err := z.subset1ID(z.g.Hi(a), v)
	if err != nil {
		return 0, err
	}
	res, err := z.g.MakeNode(al, lo, hi)
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opSubset1, a, v, false, res)
	return res, nil
}

func (z *ZDD) subset0ID(a dd.NodeID, v int32) (dd.NodeID, error) {
	level := z.g.V2I(v)
	al := z.g.Level(a)
	if al > level {
		return a, nil
	}
	if al == level {
		return z.g.Lo(a), nil
	}
	if res, ok := z.g.Cache().Get(opSubset0, a, v, false); ok {
		return res, nil
	}
	lo, err := z.subset0ID(z.g.Lo(a), v)
	if err != nil {
		return 0, err
	}
	hi, err := z.subset0ID(z.g.Hi(a), v)
	if err != nil {
		return 0, err
	}
	res, err := z.g.MakeNode(al, lo, hi)
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opSubset0, a, v, false, res)
	return res, nil
}

// changeID toggles membership of v. Per spec §9's noted source anomaly,
// one ZDDFactory implementation recurses through make_node(op, ...),
// mistakenly passing the operator code where a variable belongs; the
// correct form, used here, rebuilds at the node's own variable with both
// children changed.
func (z *ZDD) changeID(a dd.NodeID, v int32) (dd.NodeID, error) {
	level := z.g.V2I(v)
	al := z.g.Level(a)
	if al > level {
		return z.g.MakeNode(level, dd.LO, a)
	}
	if al == level {
		return z.g.MakeNode(level, z.g.Hi(a), z.g.Lo(a))
	}
	if res, ok := z.g.Cache().Get(opChange, a, v, false); ok {
		return res, nil
	}
	lo, err := z.changeID(z.g.Lo(a), v)
	if err != nil {
		return 0, err
	}
	hi, err := z.changeID(z.g.Hi(a), v)
	if err != nil {
		return 0, err
	}
	res, err := z.g.MakeNode(al, lo, hi)
	if err != nil {
		return 0, err
	}
	z.g.Cache().Put(opChange, a, v, false, res)
	return res, nil
}

// Subset1 returns the family of sets in x containing v, with v stripped.
func (z *ZDD) Subset1(x *Handle, v int32) (*Handle, error) {
	if err := z.checkOwner(x); err != nil {
		return nil, err
	}
	id, err := z.subset1ID(x.id, v)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Subset0 returns the family of sets in x not containing v.
func (z *ZDD) Subset0(x *Handle, v int32) (*Handle, error) {
	if err := z.checkOwner(x); err != nil {
		return nil, err
	}
	id, err := z.subset0ID(x.id, v)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Change (aka Toggle) returns x with v's membership flipped in every set.
func (z *ZDD) Change(x *Handle, v int32) (*Handle, error) {
	if err := z.checkOwner(x); err != nil {
		return nil, err
	}
	id, err := z.changeID(x.id, v)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Toggle is an alias for Change, matching the alternative operator-naming
// scheme noted as cosmetic in spec §4.5.
func (z *ZDD) Toggle(x *Handle, v int32) (*Handle, error) { return z.Change(x, v) }

// Count returns the number of sets in the family x, with no don't-care
// adjustment: a skipped variable in a ZDD means "absent", not "don't
// care" (spec §4.5).
func (z *ZDD) Count(x *Handle) (*big.Int, error) {
	if err := z.checkOwner(x); err != nil {
		return nil, err
	}
	memo := map[dd.NodeID]*big.Int{}
	return z.countID(x.id, memo), nil
}

func (z *ZDD) countID(id dd.NodeID, memo map[dd.NodeID]*big.Int) *big.Int {
	if id == dd.LO {
		return big.NewInt(0)
	}
	if id == dd.HI {
		return big.NewInt(1)
	}
	if v, ok := memo[id]; ok {
		return v
	}
	total := new(big.Int).Add(z.countID(z.g.Lo(id), memo), z.countID(z.g.Hi(id), memo))
	memo[id] = total
	return total
}
