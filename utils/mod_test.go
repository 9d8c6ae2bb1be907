package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]int{4, 5, 5}, 5))
	require.Equal(t, -1, FindIndex([]string{"a"}, "b"))
	require.Equal(t, -1, FindIndex(nil, 0))
}

func TestAppendUnique(t *testing.T) {
	t.Run("skips duplicates", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, AppendUnique([]int{1}, 10, 2, 1, 3, 2))
	})

	t.Run("stops at the limit", func(t *testing.T) {
		require.Equal(t, []int{7, 8}, AppendUnique(nil, 2, 7, 8, 9))
	})

	t.Run("full slices are unchanged", func(t *testing.T) {
		require.Equal(t, []int{1, 2}, AppendUnique([]int{1, 2}, 2, 3))
	})
}
