// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "github.com/powerofpi/HumbleBDD/dd"

const opExist = -3

// Makeset builds the conjunction of the literals x_v for the given
// variables — the "cube" handle used to drive existential quantification,
// matching the source's Makeset (bdd.go/operations.go).
func (b *BDD) Makeset(vars []int32) (*Handle, error) {
	res := b.True()
	for i := len(vars) - 1; i >= 0; i-- {
		lit, err := b.Ithvar(vars[i])
		if err != nil {
			return nil, err
		}
		res, err = b.And(lit, res)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Scanset recovers the variable list encoded by a cube built with Makeset,
// matching the source's Scanset.
func (b *BDD) Scanset(cube *Handle) ([]int32, error) {
	if err := b.checkOwner(cube); err != nil {
		return nil, err
	}
	var vars []int32
	id := cube.id
	for id != dd.HI {
		if id == dd.LO {
			return nil, dd.Newf(dd.InvalidArgument, "not a cube: reached F before T")
		}
		vars = append(vars, b.g.I2V(b.g.Level(id)))
		id = b.g.Hi(id)
	}
	return vars, nil
}

// existID quantifies out every variable present in cube, a Makeset-built
// conjunction whose nodes always take lo==LO at each quantified level.
// Grounded on the source's quant (operations.go), generalized onto the
// shared engine.
func (b *BDD) existID(f, cube dd.NodeID) (dd.NodeID, error) {
	if cube == dd.HI || f < 2 {
		return f, nil
	}
	if res, ok := b.g.Cache().Get(opExist, f, int32(cube), true); ok {
		return res, nil
	}
	fv, cv := b.g.Level(f), b.g.Level(cube)
	var res dd.NodeID
	var err error
	switch {
	case cv < fv:
		res, err = b.existID(f, b.g.Hi(cube))
	case cv == fv:
		var lo, hi dd.NodeID
		if lo, err = b.existID(b.g.Lo(f), b.g.Hi(cube)); err == nil {
			if hi, err = b.existID(b.g.Hi(f), b.g.Hi(cube)); err == nil {
				res, err = b.applyID(opOr, lo, hi)
			}
		}
	default:
		var lo, hi dd.NodeID
		if lo, err = b.existID(b.g.Lo(f), cube); err == nil {
			if hi, err = b.existID(b.g.Hi(f), cube); err == nil {
				res, err = b.g.MakeNode(fv, lo, hi)
			}
		}
	}
	if err != nil {
		return 0, err
	}
	b.g.Cache().Put(opExist, f, int32(cube), true, res)
	return res, nil
}

// Exist existentially quantifies f over the variables named by cube.
func (b *BDD) Exist(f, cube *Handle) (*Handle, error) {
	if err := b.checkOwner(f, cube); err != nil {
		return nil, err
	}
	id, err := b.existID(f.id, cube.id)
	if err != nil {
		return nil, err
	}
	return b.handle(id), nil
}

// AppEx computes Exist(Apply(op, f, g), cube) — a relational-product step.
// The source fuses this into a single recursion (operations.go's appquant)
// to avoid materializing the intermediate Apply result; this composes the
// two passes instead, trading some performance for a much smaller, clearly
// correct implementation (recorded as a deliberate simplification in
// DESIGN.md).
func (b *BDD) AppEx(op Op, f, g, cube *Handle) (*Handle, error) {
	if err := b.checkOwner(f, g, cube); err != nil {
		return nil, err
	}
	mid, err := b.applyID(op, f.id, g.id)
	if err != nil {
		return nil, err
	}
	id, err := b.existID(mid, cube.id)
	if err != nil {
		return nil, err
	}
	return b.handle(id), nil
}

// AndExist is the common case AppEx(AND, f, g, cube), matching the
// source's convenience method of the same name (set.go).
func (b *BDD) AndExist(f, g, cube *Handle) (*Handle, error) {
	return b.AppEx(opAnd, f, g, cube)
}
