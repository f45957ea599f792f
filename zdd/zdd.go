// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package zdd implements the Zero-suppressed Decision Diagram variant on
// top of the shared dd engine: reduction rule hi==LO, and the
// UNION/INTERSECTION/DIFFERENCE/SUBSET0/SUBSET1/CHANGE/COUNT operator set
// of spec §4.5. Grounded on the canonical zdd/ZDDFactory.java of the
// original source, since the teacher repo (dalzilio/rudd) only implements
// the BDD variant.
package zdd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/powerofpi/HumbleBDD/dd"
)

// ZDD owns one universe graph of subset families over a fixed universe
// size.
type ZDD struct {
	g *dd.Graph
}

// Handle is an immutable external reference onto one node of a ZDD's
// universe graph.
type Handle struct {
	owner *ZDD
	id    dd.NodeID
}

func reduceZDD(_ int32, lo, hi dd.NodeID) (dd.NodeID, bool) {
	if hi == dd.LO {
		return lo, true
	}
	return 0, false
}

// New builds a ZDD universe over a domain of size varnum, in the natural
// ordering 0..varnum-1.
func New(varnum int32, opts ...dd.Option) (*ZDD, error) {
	g, err := dd.NewGraph("zdd", varnum, reduceZDD, opts...)
	if err != nil {
		return nil, err
	}
	return &ZDD{g: g}, nil
}

// SetOrdering installs a custom variable ordering.
func (z *ZDD) SetOrdering(ordering []int32) error { return z.g.SetOrdering(ordering) }

// Varnum reports the universe size.
func (z *ZDD) Varnum() int32 { return z.g.Varnum() }

// Stats reports node-table and cache occupancy.
func (z *ZDD) Stats() dd.Stats { return z.g.Stats() }

func (z *ZDD) handle(id dd.NodeID) *Handle {
	z.g.AddRef(id)
	h := &Handle{owner: z, id: id}
	runtime.SetFinalizer(h, finalizeHandle)
	return h
}

func finalizeHandle(h *Handle) {
	h.owner.g.DelRef(h.id)
}

func (z *ZDD) checkOwner(hs ...*Handle) error {
	for _, h := range hs {
		if h == nil || h.owner != z {
			return dd.Newf(dd.InvalidArgument, "handle from a different factory")
		}
	}
	return nil
}

// Empty returns the handle denoting the empty family ∅.
func (z *ZDD) Empty() *Handle { return z.handle(dd.LO) }

// Base returns the handle denoting the family containing only the empty
// set, {∅}. Per spec §9, this is HI — one of the source's duplicated
// ZDDFactory variants incorrectly returns element(0) instead; that bug is
// not reproduced here.
func (z *ZDD) Base() *Handle { return z.handle(dd.HI) }

// Element returns the handle for the single-set family {{v}}.
func (z *ZDD) Element(v int32) (*Handle, error) {
	if v < 0 || v >= z.g.Varnum() {
		return nil, dd.Newf(dd.InvalidArgument, "variable %d out of range [0,%d)", v, z.g.Varnum())
	}
	id, err := z.g.MakeNode(z.g.V2I(v), dd.LO, dd.HI)
	if err != nil {
		return nil, err
	}
	return z.handle(id), nil
}

// Var reports the variable carried by an inner node's handle, or -1 for a
// terminal.
func (z *ZDD) Var(h *Handle) int32 {
	if h.id < 2 {
		return -1
	}
	return z.g.I2V(z.g.Level(h.id))
}

// Low returns a node's low (variable absent) child.
func (z *ZDD) Low(h *Handle) (*Handle, error) {
	if err := z.checkOwner(h); err != nil {
		return nil, err
	}
	if h.id < 2 {
		return nil, dd.Newf(dd.InvalidArgument, "terminal node has no children")
	}
	return z.handle(z.g.Lo(h.id)), nil
}

// High returns a node's high (variable present) child.
func (z *ZDD) High(h *Handle) (*Handle, error) {
	if err := z.checkOwner(h); err != nil {
		return nil, err
	}
	if h.id < 2 {
		return nil, dd.Newf(dd.InvalidArgument, "terminal node has no children")
	}
	return z.handle(z.g.Hi(h.id)), nil
}

// Equal reports whether two handles denote the same family.
func (z *ZDD) Equal(x, y *Handle) bool {
	return x.owner == y.owner && x.id == y.id
}

// String renders a handle structurally, e.g. "3(F,T)".
func (z *ZDD) String(h *Handle) string {
	switch h.id {
	case dd.LO:
		return "F"
	case dd.HI:
		return "T"
	default:
		lo, _ := z.Low(h)
		hi, _ := z.High(h)
		return fmt.Sprintf("%d(%s,%s)", z.Var(h), z.String(lo), z.String(hi))
	}
}

// ExportDOT writes a DOT rendering of the named handles; see dd.Graph.ExportDOT.
func (z *ZDD) ExportDOT(w io.Writer, roots map[string]*Handle) error {
	ids := make(map[string]dd.NodeID, len(roots))
	for name, h := range roots {
		ids[name] = h.id
	}
	return z.g.ExportDOT(w, ids)
}
