package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	t.Run("middle page", func(t *testing.T) {
		got := Page(items, 2, 10)
		assert.Len(t, got, 10)
		assert.Equal(t, 10, got[0])
		assert.Equal(t, 19, got[9])
	})

	t.Run("last partial page", func(t *testing.T) {
		got := Page(items, 3, 10)
		assert.Len(t, got, 3)
		assert.Equal(t, 20, got[0])
		assert.Equal(t, 22, got[2])
	})

	t.Run("page past the end", func(t *testing.T) {
		assert.Empty(t, Page(items, 4, 10))
	})

	t.Run("page zero treated as first", func(t *testing.T) {
		got := Page(items, 0, 10)
		assert.Equal(t, 0, got[0])
	})

	t.Run("empty list", func(t *testing.T) {
		assert.Empty(t, Page([]int{}, 1, 10))
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(23, 10))
	assert.Equal(t, 2, TotalPages(20, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 3, ClampPage(9, 23, 10))
	assert.Equal(t, 2, ClampPage(2, 23, 10))
	assert.Equal(t, 1, ClampPage(-1, 23, 10))
	assert.Equal(t, 1, ClampPage(5, 0, 10))
}
