// Package query turns a free-text search, a type filter, and a page request
// into a deterministic, stable result set with page metadata. Both the public
// reports listing and the authenticated dashboard go through it.
package query

import (
	"sort"
	"strings"

	"github.com/ireporter/ireporter/internal/domain"
)

// DefaultPageSize is the conventional page size used by the listings
const DefaultPageSize = 10

// Params describes a listing request
type Params struct {
	// Query is matched case-insensitively as a substring of title,
	// description, or location; a hit on any one field is enough.
	// Whitespace-only queries are treated as empty.
	Query string

	// TypeFilter restricts results to one record type when non-nil
	TypeFilter *domain.RecordType

	// OwnerID restricts the scope to one user's records when non-empty
	OwnerID string

	// Page is 1-based; out-of-range values are clamped, never an error
	Page int

	// PageSize defaults to DefaultPageSize when zero or negative
	PageSize int
}

// Page is one page of results plus the metadata the caller needs to paginate
type Page struct {
	Records     []*domain.Record `json:"records"`
	CurrentPage int              `json:"current_page"`
	Pages       int              `json:"pages"`
	Total       int              `json:"total"`
}

// Run filters, sorts, and paginates the given records. Calling it twice with
// identical inputs and no intervening mutation yields identical output: the
// sort is by created_at descending with id ascending breaking ties.
func Run(records []*domain.Record, params Params) Page {
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := make([]*domain.Record, 0, len(records))
	q := strings.ToLower(strings.TrimSpace(params.Query))
	for _, r := range records {
		if params.OwnerID != "" && r.OwnerID != params.OwnerID {
			continue
		}
		if params.TypeFilter != nil && r.RecordType != *params.TypeFilter {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID < filtered[j].ID
	})

	total := len(filtered)
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Records:     filtered[start:end],
		CurrentPage: page,
		Pages:       pages,
		Total:       total,
	}
}

func matches(r *domain.Record, q string) bool {
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Location), q)
}
