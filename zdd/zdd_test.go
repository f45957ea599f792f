// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package zdd_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerofpi/HumbleBDD/dd"
	"github.com/powerofpi/HumbleBDD/zdd"
)

// S4: N=4, ordering [0,1,2,3]. Family {{0},{0,1},{0,1,2},{0,1,2,3}}.
// COUNT == 4. The iterator produces each set exactly once.
func TestScenarioS4_Family(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)

	f, err := z.Family([][]int32{{0}, {0, 1}, {0, 1, 2}, {0, 1, 2, 3}})
	require.NoError(t, err)

	count, err := z.Count(f)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(4), count)

	seen := map[string]int{}
	require.NoError(t, z.Members(f, func(profile []bool) bool {
		var set []int32
		for v, present := range profile {
			if present {
				set = append(set, int32(v))
			}
		}
		seen[fmt.Sprint(set)]++
		return true
	}))
	require.Len(t, seen, 4)
	for set, n := range seen {
		require.Equal(t, 1, n, "set %s produced more than once", set)
	}
}

// S5: N=4, build family{{0,2}} ∪ family{{2,3}} ∖ family{{0,2}}. Result
// equals family{{2,3}} by handle identity, not just by count or by
// structural string comparison — this exercises canonicity (Testable
// Property #1: structurally-equal diagrams share one node).
func TestScenarioS5_UnionDifferenceIdentity(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)

	a, err := z.Family([][]int32{{0, 2}})
	require.NoError(t, err)
	b, err := z.Family([][]int32{{2, 3}})
	require.NoError(t, err)

	union, err := z.Union(a, b)
	require.NoError(t, err)
	result, err := z.Difference(union, a)
	require.NoError(t, err)

	require.True(t, z.Equal(result, b))
}

// Change is its own inverse: toggling v twice is the identity.
func TestChangeInvolution(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	e, err := z.Element(2)
	require.NoError(t, err)
	once, err := z.Change(e, 1)
	require.NoError(t, err)
	twice, err := z.Change(once, 1)
	require.NoError(t, err)
	require.True(t, z.Equal(e, twice))
}

// Base is the family {∅}, distinct from Empty.
func TestBaseVsEmpty(t *testing.T) {
	z, err := zdd.New(2)
	require.NoError(t, err)
	require.False(t, z.Equal(z.Base(), z.Empty()))

	count, err := z.Count(z.Base())
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), count)

	count, err = z.Count(z.Empty())
	require.NoError(t, err)
	require.Equal(t, big.NewInt(0), count)
}

func TestSetAlgebra(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)

	a, err := z.Family([][]int32{{0}, {1}})
	require.NoError(t, err)
	b, err := z.Family([][]int32{{1}, {2}})
	require.NoError(t, err)

	union, err := z.Union(a, b)
	require.NoError(t, err)
	countU, err := z.Count(union)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(3), countU)

	inter, err := z.Intersection(a, b)
	require.NoError(t, err)
	countI, err := z.Count(inter)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), countI)

	diffAB, err := z.Difference(a, b)
	require.NoError(t, err)
	countD, err := z.Count(diffAB)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), countD)

	diffBA, err := z.Difference(b, a)
	require.NoError(t, err)
	require.False(t, z.Equal(diffAB, diffBA))
}

func TestElementIterRejectsBranching(t *testing.T) {
	z, err := zdd.New(3)
	require.NoError(t, err)
	f, err := z.Family([][]int32{{0}, {1}})
	require.NoError(t, err)
	it, err := z.NewElementIter(f)
	require.NoError(t, err)
	_, err = it.Next()
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.InvalidArgument))
}

func TestElementIterSinglePath(t *testing.T) {
	z, err := zdd.New(4)
	require.NoError(t, err)
	f, err := z.Family([][]int32{{0, 2, 3}})
	require.NoError(t, err)
	it, err := z.NewElementIter(f)
	require.NoError(t, err)
	var got []int32
	for {
		ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		v, err := it.Value()
		require.NoError(t, err)
		got = append(got, v)
	}
	require.Equal(t, []int32{0, 2, 3}, got)
}
