// Package pagination implements the limit/offset window shared by every
// list endpoint. Callers fetch one row more than the requested limit;
// an overflow means another page exists and the extra row is trimmed
// before the response is built. The exact total still comes from a
// separate count query.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Params is a validated limit/offset pair.
type Params struct {
	Limit  int
	Offset int
}

// FetchLimit is the number of rows to request from the store: one more
// than the page size, so the overflow row signals a next page.
func (p Params) FetchLimit() int {
	return p.Limit + 1
}

// ParseQuery reads limit/offset from a query string, applying defaults
// for absent values. The returned map holds per-field validation
// messages and is nil when the input is well formed.
func ParseQuery(q url.Values) (Params, map[string]string) {
	p := Params{Limit: DefaultLimit, Offset: DefaultOffset}
	fields := map[string]string{}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			fields["limit"] = "must be a positive integer"
		} else {
			p.Limit = n
		}
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields["offset"] = "must be a non-negative integer"
		} else {
			p.Offset = n
		}
	}

	if len(fields) > 0 {
		return p, fields
	}
	return p, nil
}

// Meta is the pagination block returned alongside the page data.
type Meta struct {
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
	Total           int  `json:"total"`
	Count           int  `json:"count"`
	CurrentPage     int  `json:"current_page"`
	PerPage         int  `json:"per_page"`
	LastPage        int  `json:"last_page"`
}

// Window trims a limit+1 fetch down to the page and derives its meta.
// rows must have been fetched with p.FetchLimit(); total is the exact
// row count from the count query.
func Window[T any](rows []T, p Params, total int) ([]T, Meta) {
	hasNext := len(rows) > p.Limit
	if hasNext {
		rows = rows[:p.Limit]
	}

	return rows, Meta{
		HasNextPage:     hasNext,
		HasPreviousPage: p.Offset > 0,
		Total:           total,
		Count:           len(rows),
		CurrentPage:     p.Offset/p.Limit + 1,
		PerPage:         p.Limit,
		LastPage:        (total + p.Limit - 1) / p.Limit,
	}
}
