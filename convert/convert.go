// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package convert provides the correctness-first, enumerate-and-rebuild
// cross-variant conversions of spec §4.6. It is a separate package from
// bdd and zdd so that neither variant needs to import the other — the
// conversion is explicitly not performance-first; an optimised direct
// algorithm is left as future work, as the original source also leaves it
// (spec §4.6).
package convert

import (
	"github.com/powerofpi/HumbleBDD/bdd"
	"github.com/powerofpi/HumbleBDD/dd"
	"github.com/powerofpi/HumbleBDD/zdd"
)

// BDDToZDD enumerates every satisfying assignment of h (over b's Varnum
// variables) and rebuilds it as a ZDD family in z, treating each
// assignment's set of true variables as one member set. Allsat already
// expands don't-care variables into both concrete values, so each visited
// profile is one fully-assigned member set, not a pattern needing further
// expansion.
func BDDToZDD(b *bdd.BDD, z *zdd.ZDD, h *bdd.Handle) (*zdd.Handle, error) {
	if b.Varnum() != z.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "variable counts differ: bdd has %d, zdd has %d", b.Varnum(), z.Varnum())
	}
	var sets [][]int32
	err := b.Allsat(h, func(profile []bool) bool {
		var set []int32
		for v, present := range profile {
			if present {
				set = append(set, int32(v))
			}
		}
		sets = append(sets, set)
		return true
	})
	if err != nil {
		return nil, err
	}
	return z.Family(sets)
}

// ZDDToBDD enumerates every member set of x and rebuilds it as a BDD in b,
// the assignment whose true variables are exactly the member's elements.
func ZDDToBDD(z *zdd.ZDD, b *bdd.BDD, x *zdd.Handle) (*bdd.Handle, error) {
	if b.Varnum() != z.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "variable counts differ: bdd has %d, zdd has %d", b.Varnum(), z.Varnum())
	}
	res := b.False()
	var memberErr error
	err := z.Members(x, func(profile []bool) bool {
		a, aerr := b.Assignment(profile)
		if aerr != nil {
			memberErr = aerr
			return false
		}
		or, oerr := b.Or(res, a)
		if oerr != nil {
			memberErr = oerr
			return false
		}
		res = or
		return true
	})
	if err != nil {
		return nil, err
	}
	if memberErr != nil {
		return nil, memberErr
	}
	return res, nil
}
