package random

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_PreservesElements(t *testing.T) {
	slice := []int{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, Shuffle(slice))

	seen := make(map[int]bool)
	for _, v := range slice {
		seen[v] = true
	}
	assert.Len(t, seen, 8)
	for i := 1; i <= 8; i++ {
		assert.True(t, seen[i], "element %d lost by shuffle", i)
	}
}

func TestShuffle_Uniformity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping uniformity test in short mode")
	}

	const (
		runs  = 100000
		perms = 24 // 4!
	)

	counts := make(map[string]int, perms)
	for i := 0; i < runs; i++ {
		slice := []int{0, 1, 2, 3}
		require.NoError(t, Shuffle(slice))
		counts[fmt.Sprint(slice)]++
	}

	require.Len(t, counts, perms, "every permutation must occur")

	// Expected 100000/24 ≈ 4167 per permutation, per-bucket stddev ≈ 63.
	// A ±10% band is well over six sigma, flaky only on a broken shuffle.
	expected := float64(runs) / perms
	for perm, count := range counts {
		assert.InDelta(t, expected, float64(count), expected*0.10,
			"permutation %s frequency outside tolerance", perm)
	}
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	picked, err := Pick(items, 3)
	require.NoError(t, err)
	assert.Len(t, picked, 3)

	seen := make(map[string]bool)
	for _, v := range picked {
		assert.False(t, seen[v], "duplicate pick %q", v)
		assert.Contains(t, items, v)
		seen[v] = true
	}

	// Input slice is untouched.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, items)
}

func TestPick_CountExceedsLength(t *testing.T) {
	picked, err := Pick([]int{1, 2}, 10)
	require.NoError(t, err)
	assert.Len(t, picked, 2)
	assert.ElementsMatch(t, []int{1, 2}, picked)
}
