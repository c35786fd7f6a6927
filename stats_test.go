package sharemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharingStatsSingleMap(t *testing.T) {
	t.Parallel()
	m := New[int, int](nil)
	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}
	s := SharingStats(m)
	assert.Equal(t, s.TotalNodes, s.UniqueNodes)
	assert.Equal(t, s.TotalLeaves, s.UniqueLeaves)
	assert.Equal(t, 100, s.TotalLeaves)
}

func TestSharingStatsClonedFamily(t *testing.T) {
	t.Parallel()
	base := New[int, int](nil)
	for i := 0; i < 100; i++ {
		base.Insert(i, i)
	}
	clone := base.Clone()
	clone.Replace(0, 999)

	s := SharingStats(base, clone)
	require.Greater(t, s.TotalNodes, s.UniqueNodes)
	require.Greater(t, s.TotalLeaves, s.UniqueLeaves)
	// Every leaf but key 0's is still shared between base and clone.
	assert.Equal(t, 200, s.TotalLeaves)
	assert.Equal(t, 101, s.UniqueLeaves)
}

func TestSharingStatsEmptyMaps(t *testing.T) {
	t.Parallel()
	a := New[int, int](nil)
	b := New[int, int](nil)
	s := SharingStats(a, b)
	assert.Equal(t, 0, s.TotalLeaves)
	assert.Equal(t, 0, s.UniqueLeaves)
	assert.Equal(t, 2, s.TotalNodes)
	assert.Equal(t, 2, s.UniqueNodes)
}
