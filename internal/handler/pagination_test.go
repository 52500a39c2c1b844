package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse([]string{"a", "b", "c"}, 25, 2, 10)
	assert.Equal(t, int64(25), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, 2, resp.Meta.CurrentPage)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Len(t, resp.Data, 3)
}

func TestNewPaginatedResponseZeroLimit(t *testing.T) {
	resp := NewPaginatedResponse([]int{}, 0, 1, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
	assert.Equal(t, 1, resp.Meta.PageSize)
}

func TestPageParams(t *testing.T) {
	page, limit := pageParams("3", "20")
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, limit)

	page, limit = pageParams("0", "-5")
	assert.Equal(t, 1, page, "non-positive page falls back to 1")
	assert.Equal(t, 10, limit, "non-positive limit falls back to 10")

	page, limit = pageParams("junk", "9999")
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit, "limit is capped at 100")
}
