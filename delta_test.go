package sharemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaViewTrivial(t *testing.T) {
	t.Parallel()
	m := New[int, int](nil)
	m.Insert(1, 1)

	m2 := New[int, int](nil)
	m2.Insert(1, 1)
	m2.Insert(2, 2)

	// m and m2 were built independently, so even the shared key 1 lives in
	// distinct, non-share-identical leaves: get_delta_view reports it too.
	diffs := m2.GetDeltaView(m, false)
	byKey := map[int]Difference[int, int]{}
	for _, d := range diffs {
		byKey[d.Key] = d
	}
	require.Len(t, diffs, 2)
	assert.False(t, byKey[2].OtherHasKey)
	assert.True(t, byKey[1].OtherHasKey)
	assert.Equal(t, 1, byKey[1].OtherValue)
}

func TestDeltaViewSkipsSharedSubtree(t *testing.T) {
	t.Parallel()
	base := New[int, int](nil)
	for i := 0; i < 200; i++ {
		base.Insert(i, i)
	}
	other := base.Clone()
	other.Replace(0, 999)

	// Every leaf but key 0 is still share-identical after Clone, so the
	// lockstep traversal elides the untouched subtrees entirely.
	diffs := base.GetDeltaView(other, false)
	require.Len(t, diffs, 1)
	assert.Equal(t, 0, diffs[0].Key)
	assert.Equal(t, 0, diffs[0].Value)
	assert.Equal(t, 999, diffs[0].OtherValue)
}

func TestIterateDeltaStopsEarly(t *testing.T) {
	t.Parallel()
	a := New[int, int](nil)
	b := New[int, int](nil)
	for i := 0; i < 20; i++ {
		a.Insert(i, i)
	}

	count := 0
	complete := a.IterateDelta(b, false, func(d Difference[int, int]) bool {
		count++
		return count < 3
	})
	assert.False(t, complete)
	assert.Equal(t, 3, count)
}

func TestDeltaViewReflexive(t *testing.T) {
	t.Parallel()
	m := New[int, int](nil)
	for i := 0; i < 50; i++ {
		m.Insert(i, i)
	}
	clone := m.Clone()
	assert.Empty(t, m.GetDeltaView(clone, false))
}

func TestDeltaViewIndependentConstruction(t *testing.T) {
	t.Parallel()
	a := New[int, string](nil)
	a.Insert(1, "a")
	a.Insert(2, "b")

	b := New[int, string](nil)
	b.Insert(1, "a")

	diffs := a.GetDeltaView(b, false)
	byKey := map[int]Difference[int, string]{}
	for _, d := range diffs {
		byKey[d.Key] = d
	}
	assert.Contains(t, byKey, 2)
	assert.False(t, byKey[2].OtherHasKey)
	// a and b were built independently, so key 1's leaves are not
	// share-identical even though their values are equal: get_delta_view
	// reports it too, as spec §8's concrete asymmetric scenario expects.
	require.Contains(t, byKey, 1)
	assert.True(t, byKey[1].OtherHasKey)
	assert.Equal(t, "a", byKey[1].OtherValue)
}
