// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerofpi/HumbleBDD/bdd"
	"github.com/powerofpi/HumbleBDD/dd"
)

// S1: N=3, ordering [0,1,2]. Build v0 AND NOT v1. Expected satisfying
// assignments [T,F,F], [T,F,T]; COUNT == 2.
func TestScenarioS1(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)

	v0, err := b.Ithvar(0)
	require.NoError(t, err)
	nv1, err := b.NIthvar(1)
	require.NoError(t, err)
	f, err := b.And(v0, nv1)
	require.NoError(t, err)

	count, err := b.Count(f)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(2), count)

	var got [][]bool
	require.NoError(t, b.Allsat(f, func(profile []bool) bool {
		got = append(got, append([]bool(nil), profile...))
		return true
	}))
	require.Len(t, got, 2)
	for _, p := range got {
		require.True(t, p[0])
		require.False(t, p[1])
	}
	// the don't-care variable v2 must vary across the two expanded vectors.
	require.NotEqual(t, got[0][2], got[1][2])
}

// S2: ordering referencing a variable out of range must raise
// invalid-argument.
func TestScenarioS2_InvalidOrdering(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)
	err = b.SetOrdering([]int32{2, 1, 3})
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.InvalidArgument))
}

// S3: a duplicated variable in the ordering must raise invalid-argument.
func TestScenarioS3_DuplicateOrdering(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)
	err = b.SetOrdering([]int32{0, 0, 1})
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.InvalidArgument))
}

func TestOperatorAlgebra(t *testing.T) {
	b, err := bdd.New(4)
	require.NoError(t, err)

	x, err := b.Ithvar(0)
	require.NoError(t, err)
	y, err := b.Ithvar(1)
	require.NoError(t, err)

	notNotX, err := b.Not(x)
	require.NoError(t, err)
	notNotX, err = b.Not(notNotX)
	require.NoError(t, err)
	require.True(t, b.Equal(x, notNotX))

	xAndX, err := b.And(x, x)
	require.NoError(t, err)
	require.True(t, b.Equal(x, xAndX))

	xXorX, err := b.Xor(x, x)
	require.NoError(t, err)
	require.True(t, b.Equal(b.False(), xXorX))

	notX, err := b.Not(x)
	require.NoError(t, err)
	notY, err := b.Not(y)
	require.NoError(t, err)
	deMorganLHS, err := b.Not(mustAnd(t, b, x, y))
	require.NoError(t, err)
	deMorganRHS, err := b.Or(notX, notY)
	require.NoError(t, err)
	require.True(t, b.Equal(deMorganLHS, deMorganRHS))
}

func mustAnd(t *testing.T, b *bdd.BDD, x, y *bdd.Handle) *bdd.Handle {
	r, err := b.And(x, y)
	require.NoError(t, err)
	return r
}

func TestCountConsistency(t *testing.T) {
	b, err := bdd.New(5)
	require.NoError(t, err)
	x, err := b.Ithvar(2)
	require.NoError(t, err)
	y, err := b.Ithvar(4)
	require.NoError(t, err)
	f, err := b.And(x, y)
	require.NoError(t, err)
	notF, err := b.Not(f)
	require.NoError(t, err)

	cf, err := b.Count(f)
	require.NoError(t, err)
	cnf, err := b.Count(notF)
	require.NoError(t, err)

	total := new(big.Int).Add(cf, cnf)
	require.Equal(t, big.NewInt(1<<5), total)
}

func TestAssignmentRoundTrip(t *testing.T) {
	b, err := bdd.New(4)
	require.NoError(t, err)
	bits := []bool{true, false, true, false}
	a, err := b.Assignment(bits)
	require.NoError(t, err)

	it, err := b.NewAssignmentIter(a)
	require.NoError(t, err)
	require.Equal(t, 1, it.Len())
	require.True(t, it.Next())
	v, err := it.Value()
	require.NoError(t, err)
	require.Equal(t, bits, v)
	require.False(t, it.Next())
	_, err = it.Value()
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.NoSuchElement))
}

// Property #7: the number of vectors Allsat produces equals COUNT, even
// when the function has don't-care variables skipped by reduction.
func TestAllsatCountMatchesCount(t *testing.T) {
	b, err := bdd.New(5)
	require.NoError(t, err)
	x, err := b.Ithvar(0)
	require.NoError(t, err)
	y, err := b.Ithvar(4)
	require.NoError(t, err)
	f, err := b.And(x, y)
	require.NoError(t, err)

	count, err := b.Count(f)
	require.NoError(t, err)

	var vectors int
	require.NoError(t, b.Allsat(f, func(profile []bool) bool {
		vectors++
		require.Len(t, profile, 5)
		return true
	}))
	require.Equal(t, count, big.NewInt(int64(vectors)))
}

func TestMakesetScanset(t *testing.T) {
	b, err := bdd.New(5)
	require.NoError(t, err)
	cube, err := b.Makeset([]int32{1, 3, 4})
	require.NoError(t, err)
	vars, err := b.Scanset(cube)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 3, 4}, vars)
}
