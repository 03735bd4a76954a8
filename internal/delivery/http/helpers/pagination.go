package helpers

import (
	"net/http"
	"strconv"
)

// Cursor pagination query parameter defaults and limits.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseCursor reads cursor and limit from the request query string. Limit
// is clamped to [1, MaxLimit]; invalid or missing values fall back to
// DefaultLimit. An absent cursor means the first page.
func ParseCursor(r *http.Request) (cursor string, limit int) {
	cursor = r.URL.Query().Get("cursor")
	limit = DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = v
			if limit > MaxLimit {
				limit = MaxLimit
			}
		}
	}
	return cursor, limit
}
