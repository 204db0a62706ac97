package httputil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 2, 10, 35)

	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 10, page.Pagination.Limit)
	assert.Equal(t, 35, page.Pagination.Total)
	assert.Equal(t, 4, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestNewPageBounds(t *testing.T) {
	// First page of a single-page result has neither neighbour.
	page := NewPage(nil, 1, 20, 5)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)

	// Last page has a previous but no next.
	page = NewPage(nil, 4, 10, 35)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	// Empty result set.
	page = NewPage(nil, 1, 20, 0)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestPageParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=-5", 1, 20},
		{"page=abc&limit=xyz", 1, 20},
		{"limit=1000", 1, 100},
	}

	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/?"+tt.query, nil)

		page, limit := PageParams(c)
		assert.Equal(t, tt.wantPage, page, "query %q", tt.query)
		assert.Equal(t, tt.wantLimit, limit, "query %q", tt.query)
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
}
