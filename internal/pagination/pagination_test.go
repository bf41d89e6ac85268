package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"empty feed still has one page", 0, 10, 1},
		{"exact multiple", 20, 10, 2},
		{"remainder adds a page", 13, 10, 2},
		{"single item", 1, 10, 1},
		{"size one", 7, 1, 7},
		{"negative total clamps", -5, 10, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalPages(tc.total, tc.size))
		})
	}
}

func TestTotalPagesCeiling(t *testing.T) {
	// ceil(N/P) for a spread of totals and sizes
	for _, size := range []int{1, 3, 10, 25} {
		for total := int64(1); total <= 100; total++ {
			want := int((total + int64(size) - 1) / int64(size))
			assert.Equal(t, want, TotalPages(total, size), "total=%d size=%d", total, size)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name       string
		raw        string
		totalPages int
		want       int
	}{
		{"missing defaults to first", "", 5, 1},
		{"non-numeric defaults to first", "abc", 5, 1},
		{"float defaults to first", "2.5", 5, 1},
		{"valid in range", "3", 5, 3},
		{"beyond last clamps to last", "999", 5, 5},
		{"zero clamps to last", "0", 5, 5},
		{"negative clamps to last", "-1", 5, 5},
		{"last page itself", "5", 5, 5},
		{"single page feed", "7", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.raw, tc.totalPages))
		})
	}
}

func TestWindow(t *testing.T) {
	limit, offset := Window(1, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Window(2, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)

	limit, offset = Window(4, 3)
	assert.Equal(t, 3, limit)
	assert.Equal(t, 9, offset)
}

func TestNewPageMetadata(t *testing.T) {
	p := New([]int{1, 2, 3}, 2, 3, 23)
	assert.Equal(t, 2, p.Number)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, int64(23), p.TotalItems)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrevious)

	first := New([]int{1}, 1, 1, 1)
	assert.False(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	empty := New[int](nil, 1, 1, 0)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
}

func TestLastPageItemCount(t *testing.T) {
	// With N items and size P, the last page holds N mod P items
	// (or P when N divides evenly).
	for _, tc := range []struct {
		total    int64
		size     int
		lastSize int
	}{
		{13, 10, 3},
		{20, 10, 10},
		{1, 10, 1},
		{9, 3, 3},
	} {
		pages := TotalPages(tc.total, tc.size)
		limit, offset := Window(pages, tc.size)
		remaining := tc.total - int64(offset)
		if remaining > int64(limit) {
			remaining = int64(limit)
		}
		assert.Equal(t, int64(tc.lastSize), remaining, "total=%d size=%d", tc.total, tc.size)
	}
}
