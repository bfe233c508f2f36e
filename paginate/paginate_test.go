package paginate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultsToFirstPage(t *testing.T) {
	for _, raw := range []string{"", "abc", "1.5", "-"} {
		page := New(raw, 25, 10)
		assert.Equal(t, 1, page.Number, "raw=%q", raw)
	}
}

func TestNew_ClampsOutOfRange(t *testing.T) {
	page := New("99", 25, 10)
	assert.Equal(t, 3, page.Number)

	page = New("-3", 25, 10)
	assert.Equal(t, 1, page.Number)

	page = New("0", 25, 10)
	assert.Equal(t, 1, page.Number)
}

func TestNew_TotalPages(t *testing.T) {
	assert.Equal(t, 3, New("1", 25, 10).TotalPages)
	assert.Equal(t, 2, New("1", 20, 10).TotalPages)
	assert.Equal(t, 1, New("1", 1, 10).TotalPages)

	// An empty listing still has one (empty) page.
	assert.Equal(t, 1, New("1", 0, 10).TotalPages)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New("1", 25, 10).Offset())
	assert.Equal(t, 10, New("2", 25, 10).Offset())
	assert.Equal(t, 20, New("3", 25, 10).Offset())
}

func TestHasNextHasPrev(t *testing.T) {
	first := New("1", 25, 10)
	assert.False(t, first.HasPrev())
	assert.True(t, first.HasNext())
	assert.Equal(t, 2, first.NextNumber())

	last := New("3", 25, 10)
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	assert.Equal(t, 2, last.PrevNumber())

	only := New("1", 5, 10)
	assert.False(t, only.HasPrev())
	assert.False(t, only.HasNext())
}

func TestLastPageSize(t *testing.T) {
	// For N items and page size P, the last page holds N mod P items,
	// or P when N divides evenly.
	page := New("3", 25, 10)
	remaining := page.TotalItems - page.Offset()
	assert.Equal(t, 5, remaining)

	page = New("2", 20, 10)
	remaining = page.TotalItems - page.Offset()
	assert.Equal(t, 10, remaining)
}
