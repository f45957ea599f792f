// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package dd

import (
	"fmt"
	"io"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// ExportDOT writes a Graphviz DOT rendering of every node reachable from
// roots to w: square T/F terminal boxes, numeric variable labels on inner
// nodes, one dashed "F" edge and one solid "T" edge per inner node, per
// spec §6. roots maps a caller-chosen label to the handle it names, so
// several diagrams sharing one graph can be exported together.
//
// Rendering the DOT text to pixels is explicitly out of scope (spec §6);
// this only ever produces the textual graph description.
func (g *Graph) ExportDOT(w io.Writer, roots map[string]NodeID) error {
	visited := hashset.New()
	stack := arraystack.New()
	for _, id := range roots {
		stack.Push(id)
	}

	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, `  F [shape=box label="F"];`)
	fmt.Fprintln(w, `  T [shape=box label="T"];`)

	for !stack.Empty() {
		v, _ := stack.Pop()
		id := v.(NodeID)
		if visited.Contains(id) {
			continue
		}
		visited.Add(id)
		if g.IsTerminal(id) {
			continue
		}
		s := g.nodes[id]
		fmt.Fprintf(w, "  n%d [label=%q];\n", id, fmt.Sprintf("%d", g.i2v[s.level]))
		fmt.Fprintf(w, "  n%d -> %s [style=dashed];\n", id, dotnode(s.lo))
		fmt.Fprintf(w, "  n%d -> %s [style=solid];\n", id, dotnode(s.hi))
		stack.Push(s.lo)
		stack.Push(s.hi)
	}

	names := make([]string, 0, len(roots))
	for name := range roots {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %q -> %s;\n", name, dotnode(roots[name]))
	}

	fmt.Fprintln(w, "}")
	return nil
}

func dotnode(id NodeID) string {
	switch id {
	case LO:
		return "F"
	case HI:
		return "T"
	default:
		return fmt.Sprintf("n%d", id)
	}
}
