package pkg

import (
	"net/http"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination describes a zero-based page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset is the number of rows preceding the page.
func (p Pagination) Offset() int {
	return p.Page * p.Limit
}

// PageParams reads the page and limit query params. Pages start at 0,
// limit is capped at MaxPageLimit.
func PageParams(r *http.Request) (page, limit int) {
	page = QueryInt(r, "page", 0)
	limit = QueryInt(r, "limit", DefaultPageLimit)
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}
