// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import "go.uber.org/zap"

// configs mirrors the source's functional-options configuration struct
// (config.go): a plain bag of tunables filled in by Option values before
// the graph is built.
type configs struct {
	varnum          int32
	nodesize        int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	cachesize       int
	cacheratio      int
	logger          *zap.Logger
}

func makeconfigs(varnum int32) configs {
	return configs{
		varnum:          varnum,
		nodesize:        1000,
		maxnodesize:     0, // 0 means unbounded growth
		maxnodeincrease: _DEFAULTMAXNODEINC,
		minfreenodes:    _MINFREENODES,
		cachesize:       0, // computed from nodesize/cacheratio if unset
		cacheratio:      0,
		logger:          zap.NewNop(),
	}
}

// Option configures a Graph at construction time, in the manner of the
// source's Nodesize/Cachesize/... functional options.
type Option func(*configs)

// Nodesize sets the initial capacity of the node table.
func Nodesize(size int) Option {
	return func(c *configs) { c.nodesize = size }
}

// Maxnodesize bounds how large the node table may grow; 0 means unbounded.
func Maxnodesize(size int) Option {
	return func(c *configs) { c.maxnodesize = size }
}

// Maxnodeincrease bounds how many nodes a single resize may add.
func Maxnodeincrease(size int) Option {
	return func(c *configs) { c.maxnodeincrease = size }
}

// Minfreenodes sets the percentage (0-100) of free nodes at or below which, once
// a garbage collection pass has run, the node table is grown rather than
// relying on the reclaimed space alone; 0 disables the check. See
// Graph.belowMinFree.
func Minfreenodes(pct int) Option {
	return func(c *configs) { c.minfreenodes = pct }
}

// Cachesize sets the fixed capacity of the operation cache directly.
func Cachesize(size int) Option {
	return func(c *configs) { c.cachesize = size }
}

// Cacheratio sets the operation cache capacity as nodesize/ratio instead of
// an absolute size.
func Cacheratio(ratio int) Option {
	return func(c *configs) { c.cacheratio = ratio }
}

// Logger attaches a structured logger used for GC, resize, and cache
// diagnostics. The default is a no-op logger.
func Logger(l *zap.Logger) Option {
	return func(c *configs) {
		if l != nil {
			c.logger = l
		}
	}
}
