// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package setpool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerofpi/HumbleBDD/dd"
	"github.com/powerofpi/HumbleBDD/setpool"
)

func TestSetAddContainsRemove(t *testing.T) {
	p, err := setpool.New[string](8)
	require.NoError(t, err)
	s := p.NewSet()

	has, err := s.Contains("a")
	require.NoError(t, err)
	require.False(t, has)

	changed, err := s.Add("a")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.Add("a")
	require.NoError(t, err)
	require.False(t, changed)

	has, err = s.Contains("a")
	require.NoError(t, err)
	require.True(t, has)

	size, err := s.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	changed, err = s.Remove("a")
	require.NoError(t, err)
	require.True(t, changed)

	has, err = s.Contains("a")
	require.NoError(t, err)
	require.False(t, has)
}

func TestSetAddAllRetainAll(t *testing.T) {
	p, err := setpool.NewFromDomain([]string{"a", "b", "c", "d"})
	require.NoError(t, err)
	s := p.NewSet()

	changed, err := s.AddAll([]string{"a", "b", "c"})
	require.NoError(t, err)
	require.True(t, changed)

	ok, err := s.ContainsAll([]string{"a", "b"})
	require.NoError(t, err)
	require.True(t, ok)

	changed, err = s.RetainAll([]string{"a", "c"})
	require.NoError(t, err)
	require.True(t, changed)

	has, err := s.Contains("b")
	require.NoError(t, err)
	require.False(t, has)

	size, err := s.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)
}

func TestSetIteratorConcurrentModification(t *testing.T) {
	p, err := setpool.New[int](4)
	require.NoError(t, err)
	s := p.NewSet()
	_, err = s.Add(1)
	require.NoError(t, err)

	it, err := s.Iterator()
	require.NoError(t, err)

	_, err = s.Add(2)
	require.NoError(t, err)

	_, err = it.Next()
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.ConcurrentModification))
}

// S6: domain size 8; create two sets, add/remove elements, verify
// toString, size, and contains all match plain set semantics.
func TestScenarioS6_TwoSets(t *testing.T) {
	p, err := setpool.New[int](8)
	require.NoError(t, err)

	a := p.NewSet()
	b := p.NewSet()

	_, err = a.AddAll([]int{0, 2, 4})
	require.NoError(t, err)
	_, err = b.AddAll([]int{1, 2, 3})
	require.NoError(t, err)

	changed, err := a.Remove(2)
	require.NoError(t, err)
	require.True(t, changed)

	sizeA, err := a.Size()
	require.NoError(t, err)
	require.Equal(t, 2, sizeA)

	sizeB, err := b.Size()
	require.NoError(t, err)
	require.Equal(t, 3, sizeB)

	hasA2, err := a.Contains(2)
	require.NoError(t, err)
	require.False(t, hasA2)

	hasB2, err := b.Contains(2)
	require.NoError(t, err)
	require.True(t, hasB2)

	require.Equal(t, "{0, 4}", a.String())
	require.Equal(t, "{1, 2, 3}", b.String())
}

func TestPoolDomainExhaustion(t *testing.T) {
	p, err := setpool.New[int](1)
	require.NoError(t, err)
	s := p.NewSet()
	_, err = s.Add(0)
	require.NoError(t, err)
	_, err = s.Add(1)
	require.Error(t, err)
	require.True(t, dd.IsKind(err, dd.InvalidArgument))
}
