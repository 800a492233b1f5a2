package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/villageedu/api/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based

	// MaxPage keeps (page-1)*limit inside int for any allowed limit
	MaxPage = math.MaxInt / MaxPageSize
)

// Page is a normalized 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NewPage clamps a raw page request to sane values.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if number > MaxPage {
		number = MaxPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return Page{Number: number, Limit: limit}
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() uint64 {
	return uint64((p.Number - 1) * p.Limit)
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// hasNext is false on the last page and beyond.
func NewPaginationInfo(totalCount int64, p Page) dto.PaginationInfo {
	p = NewPage(p.Number, p.Limit)

	totalPages := 0
	if totalCount > 0 {
		totalPages = int((totalCount + int64(p.Limit) - 1) / int64(p.Limit))
	}

	return dto.PaginationInfo{
		CurrentPage: p.Number,
		TotalPages:  totalPages,
		Limit:       p.Limit,
		TotalCount:  totalCount,
		HasNext:     p.Number < totalPages,
		HasPrev:     p.Number > 1,
	}
}

// ParsePaginationParams extracts page and limit query parameters from the request
func ParsePaginationParams(c *gin.Context) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		limit = DefaultPageSize
	}

	return NewPage(page, limit)
}
