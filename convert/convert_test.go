// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerofpi/HumbleBDD/bdd"
	"github.com/powerofpi/HumbleBDD/convert"
	"github.com/powerofpi/HumbleBDD/zdd"
)

func TestBDDToZDDRoundTrip(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)
	z, err := zdd.New(3)
	require.NoError(t, err)

	v0, err := b.Ithvar(0)
	require.NoError(t, err)
	nv1, err := b.NIthvar(1)
	require.NoError(t, err)
	f, err := b.And(v0, nv1)
	require.NoError(t, err)

	zf, err := convert.BDDToZDD(b, z, f)
	require.NoError(t, err)

	bCount, err := b.Count(f)
	require.NoError(t, err)
	zCount, err := z.Count(zf)
	require.NoError(t, err)
	require.Equal(t, bCount, zCount)

	back, err := convert.ZDDToBDD(z, b, zf)
	require.NoError(t, err)
	require.True(t, b.Equal(f, back))
}

func TestVarnumMismatch(t *testing.T) {
	b, err := bdd.New(3)
	require.NoError(t, err)
	z, err := zdd.New(4)
	require.NoError(t, err)
	f := b.True()
	_, err = convert.BDDToZDD(b, z, f)
	require.Error(t, err)
}
