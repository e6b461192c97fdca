package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage = 1
	DefaultSize = 5
	MaxSize     = 50
	MinSize     = 1
)

// Params holds validated pagination parameters.
type Params struct {
	Page   int
	Size   int
	Offset int
}

// Parse extracts and validates pageNumber/pageSize from query parameters.
func Parse(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("pageNumber", strconv.Itoa(DefaultPage)))
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(DefaultSize)))
	return Normalize(page, size)
}

// Normalize clamps raw page/size values into the allowed range.
func Normalize(page, size int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if size < MinSize {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Params{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// Meta describes a page of results in list responses.
type Meta struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
}
