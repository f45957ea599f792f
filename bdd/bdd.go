// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package bdd implements the Reduced Ordered Binary Decision Diagram
// variant on top of the shared dd engine: reduction rule lo==hi, and the
// NOT/AND/OR/XOR/COUNT/ITE/Exist/AppEx/Replace operator set of spec §4.4.
package bdd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/powerofpi/HumbleBDD/dd"
)

// BDD owns one universe graph of Boolean functions over a fixed variable
// count, in the manner of the source's buddy/hudd struct (buddy.go,
// hudd.go) generalized onto the shared engine.
type BDD struct {
	g *dd.Graph
}

// Handle is an immutable, externally-held reference onto one node of a
// BDD's universe graph — the explicit handle design note §9 calls for in
// place of the source's Node *int aliasing. Handles from different BDD
// values must never be mixed; doing so reports InvalidArgument.
type Handle struct {
	owner *BDD
	id    dd.NodeID
}

func reduceBDD(_ int32, lo, hi dd.NodeID) (dd.NodeID, bool) {
	if lo == hi {
		return lo, true
	}
	return 0, false
}

// New builds a BDD universe over varnum variables, in the natural
// ordering 0..varnum-1. Use dd.Option values (Nodesize, Cachesize, ...) to
// tune capacity, matching the source's functional-options constructors.
func New(varnum int32, opts ...dd.Option) (*BDD, error) {
	g, err := dd.NewGraph("bdd", varnum, reduceBDD, opts...)
	if err != nil {
		return nil, err
	}
	return &BDD{g: g}, nil
}

// SetOrdering installs a custom variable ordering; see dd.Graph.SetOrdering.
func (b *BDD) SetOrdering(ordering []int32) error { return b.g.SetOrdering(ordering) }

// Varnum reports the number of variables.
func (b *BDD) Varnum() int32 { return b.g.Varnum() }

// Stats reports node-table and cache occupancy.
func (b *BDD) Stats() dd.Stats { return b.g.Stats() }

func (b *BDD) handle(id dd.NodeID) *Handle {
	b.g.AddRef(id)
	h := &Handle{owner: b, id: id}
	runtime.SetFinalizer(h, finalizeHandle)
	return h
}

func finalizeHandle(h *Handle) {
	h.owner.g.DelRef(h.id)
}

func (b *BDD) checkOwner(hs ...*Handle) error {
	for _, h := range hs {
		if h == nil || h.owner != b {
			return dd.Newf(dd.InvalidArgument, "handle from a different factory")
		}
	}
	return nil
}

// False returns the handle denoting the constant function false.
func (b *BDD) False() *Handle { return b.handle(dd.LO) }

// True returns the handle denoting the constant function true.
func (b *BDD) True() *Handle { return b.handle(dd.HI) }

// Ithvar returns the handle for the single-variable function x_v.
func (b *BDD) Ithvar(v int32) (*Handle, error) {
	if v < 0 || v >= b.g.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "variable %d out of range [0,%d)", v, b.g.Varnum())
	}
	id, err := b.g.MakeNode(b.g.V2I(v), dd.LO, dd.HI)
	if err != nil {
		return nil, err
	}
	return b.handle(id), nil
}

// NIthvar returns the handle for the single-variable function NOT x_v.
func (b *BDD) NIthvar(v int32) (*Handle, error) {
	if v < 0 || v >= b.g.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "variable %d out of range [0,%d)", v, b.g.Varnum())
	}
	id, err := b.g.MakeNode(b.g.V2I(v), dd.HI, dd.LO)
	if err != nil {
		return nil, err
	}
	return b.handle(id), nil
}

// Assignment builds the conjunction of literals described by bits, one per
// variable: bits[v] true selects x_v, false selects NOT x_v.
func (b *BDD) Assignment(bits []bool) (*Handle, error) {
	if int32(len(bits)) != b.g.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "assignment length %d does not match varnum %d", len(bits), b.g.Varnum())
	}
	res := b.True()
	for v := b.g.Varnum() - 1; v >= 0; v-- {
		var lit *Handle
		var err error
		if bits[v] {
			lit, err = b.Ithvar(v)
		} else {
			lit, err = b.NIthvar(v)
		}
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

// Var reports the variable carried by an inner node's handle, or -1 for a
// terminal.
func (b *BDD) Var(h *Handle) int32 {
	if h.id < 2 {
		return -1
	}
	return b.g.I2V(b.g.Level(h.id))
}

// Low returns the low ("variable is false") child of an inner node.
func (b *BDD) Low(h *Handle) (*Handle, error) {
	if err := b.checkOwner(h); err != nil {
		return nil, err
	}
	if h.id < 2 {
		return nil, dd.Newf(dd.InvalidArgument, "terminal node has no children")
	}
	return b.handle(b.g.Lo(h.id)), nil
}

// High returns the high ("variable is true") child of an inner node.
func (b *BDD) High(h *Handle) (*Handle, error) {
	if err := b.checkOwner(h); err != nil {
		return nil, err
	}
	if h.id < 2 {
		return nil, dd.Newf(dd.InvalidArgument, "terminal node has no children")
	}
	return b.handle(b.g.Hi(h.id)), nil
}

// Equal reports whether two handles denote the same function. Spec §3:
// extensional equality is reference equality on the head node.
func (b *BDD) Equal(x, y *Handle) bool {
	return x.owner == y.owner && x.id == y.id
}

// String renders a handle structurally, e.g. "3(F,T)" with F/T at leaves,
// per spec §6's stringification requirement.
func (b *BDD) String(h *Handle) string {
	switch h.id {
	case dd.LO:
		return "F"
	case dd.HI:
		return "T"
	default:
		lo, _ := b.Low(h)
		hi, _ := b.High(h)
		return fmt.Sprintf("%d(%s,%s)", b.Var(h), b.String(lo), b.String(hi))
	}
}

// ExportDOT writes a DOT rendering of the named handles; see dd.Graph.ExportDOT.
func (b *BDD) ExportDOT(w io.Writer, roots map[string]*Handle) error {
	ids := make(map[string]dd.NodeID, len(roots))
	for name, h := range roots {
		ids[name] = h.id
	}
	return b.g.ExportDOT(w, ids)
}
