package common

import "math"

const (
	// MaxPageSize is the hard upper bound applied to every paginated read,
	// whatever the caller asked for.
	MaxPageSize = 50

	DefaultFeedPageSize    = 10
	DefaultCommentPageSize = 20
)

// Metadata describes one page of a paginated result set. Limit is the
// effective page size after clamping, which is what the totalPages
// calculation uses.
type Metadata struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// ClampPage floors the requested page at 1. Out-of-range values are corrected
// silently rather than rejected.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit forces the requested page size into [1, MaxPageSize], falling
// back to def when the caller supplied nothing usable.
func ClampLimit(limit, def int) int {
	if limit < 1 {
		return def
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

func NewMetadata(total, page, limit int) Metadata {
	m := Metadata{Total: total, Page: page, Limit: limit}
	if total > 0 {
		m.TotalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return m
}
