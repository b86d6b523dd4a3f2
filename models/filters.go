package models

import (
	"net/url"
	"strconv"
)

// Filters is the catalog filter state. The query string is the single
// source of truth: ParseFilters rebuilds the state on every request and
// Query is its exact inverse, so reloading a generated link reproduces
// the same page.
type Filters struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Page      int
}

// DefaultFilters returns the filter state of a bare /anime request
func DefaultFilters() Filters {
	return Filters{SortBy: "title", SortOrder: "asc", Page: 1}
}

// ParseFilters derives the filter state from a request query string.
// Missing or invalid values fall back to the defaults.
func ParseFilters(q url.Values) Filters {
	f := DefaultFilters()
	if v := q.Get("search"); v != "" {
		f.Search = v
	}
	if v := q.Get("status"); v != "" {
		f.Status = v
	}
	if v := q.Get("sortBy"); v != "" {
		f.SortBy = v
	}
	if v := q.Get("sortOrder"); v == "asc" || v == "desc" {
		f.SortOrder = v
	}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			f.Page = n
		}
	}
	return f
}

// Query renders the filter state back into query values. Defaults are
// omitted so generated links stay minimal.
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.SortBy != "" && f.SortBy != "title" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != "asc" {
		q.Set("sortOrder", f.SortOrder)
	}
	if f.Page > 1 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}

// WithPage returns a copy of the filter state on a different page,
// used when building pagination links.
func (f Filters) WithPage(page int) Filters {
	f.Page = page
	return f
}

// Encode renders the state as a query string without the leading "?".
func (f Filters) Encode() string {
	return f.Query().Encode()
}

// Params flattens the filter state into backend query parameters.
// Empty values are left out entirely, the backend client never sends
// empty params.
func (f Filters) Params(limit int) map[string]string {
	p := map[string]string{
		"page":  strconv.Itoa(f.Page),
		"limit": strconv.Itoa(limit),
	}
	if f.Search != "" {
		p["search"] = f.Search
	}
	if f.Status != "" {
		p["status"] = f.Status
	}
	if f.SortBy != "" {
		p["sortBy"] = f.SortBy
	}
	if f.SortOrder != "" {
		p["sortOrder"] = f.SortOrder
	}
	return p
}
