// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd

import "github.com/powerofpi/HumbleBDD/dd"

// Family builds the ZDD denoting the explicit family of subsets given,
// each a list of variable ids. Grounded on the original source's family
// constructor (original_source's ZDDFactory, generalized from its
// recursive "does this half of the family contain v" partitioning),
// following spec §4.5's recursion over the variable ordering.
func (z *ZDD) Family(sets [][]int32) (*Handle, error) {
	bitsets := make([][]bool, len(sets))
	for i, s := range sets {
		bits := make([]bool, z.g.Varnum())
		for _, v := range s {
			if v < 0 || v >= z.g.Varnum() {
				return nil, dd.Newf(dd.InvalidArgument, "variable %d out of range [0,%d)", v, z.g.Varnum())
			}
			bits[v] = true
		}
		bitsets[i] = bits
	}
	id, err := z.buildFamily(bitsets, 0)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// buildFamily partitions the family at ordering position level into the
// sets containing the level's variable and those that don't, recursing to
// the next level; make_node funnels every construction through the
// reduction rule, so a level where the partition is trivial (no set
// contains the variable) is automatically skipped per spec §4.2.
func (z *ZDD) buildFamily(bitsets [][]bool, level int32) (dd.NodeID, error) {
	if level == z.g.Varnum() {
		if len(bitsets) == 0 {
			return dd.LO, nil
		}
		return dd.HI, nil
	}
	if len(bitsets) == 0 {
		return dd.LO, nil
	}
	v := z.g.I2V(level)
	var with, without [][]bool
	for _, b := range bitsets {
		if b[v] {
			with = append(with, b)
		} else {
			without = append(without, b)
		}
	}
	lo, err := z.buildFamily(without, level+1)
	if err != nil {
		return 0, err
	}
	hi, err := z.buildFamily(with, level+1)
	if err != nil {
		return 0, err
	}
	return z.g.MakeNode(level, lo, hi)
}
