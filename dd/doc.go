// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package dd implements the shared decision-diagram engine: a hash-consed
// universe graph, a fixed-capacity operation cache, and the variable
// ordering tables that the bdd and zdd packages build their operator sets
// on top of.
//
// The engine holds no Boolean or set semantics of its own. A variant
// supplies a ReduceFunc (its reduction rule) at construction and drives its
// own recursive apply against the Graph's MakeNode/Lo/Hi/Level primitives;
// this package only guarantees hash-consing, canonical sharing, and that a
// reclaimed node can never produce a stale cache hit.
//
// There is no CGo and no I/O beyond the optional structured logger and DOT
// export; reclamation is a cooperative mark-sweep pass driven by explicit
// AddRef/DelRef calls from variant handles rather than true weak
// references, which is sufficient because every mutation happens on a
// single goroutine (spec §5).
package dd
