package http

import (
	"net/http"
	"strings"

	"wedmarket/pkg/dates"
	apperrors "wedmarket/pkg/errors"
)

// ExtractDateRange reads the start_date/end_date query pair. Both are required and must be
// ISO calendar days.
func ExtractDateRange(r *http.Request) (string, string, error) {
	query := r.URL.Query()
	start := strings.TrimSpace(query.Get("start_date"))
	end := strings.TrimSpace(query.Get("end_date"))

	if start == "" || end == "" {
		return "", "", apperrors.InvalidInput("both 'start_date' and 'end_date' query parameters are required")
	}
	if !dates.IsISODate(start) {
		return "", "", apperrors.InvalidInput("invalid start_date parameter, must be YYYY-MM-DD: " + start)
	}
	if !dates.IsISODate(end) {
		return "", "", apperrors.InvalidInput("invalid end_date parameter, must be YYYY-MM-DD: " + end)
	}
	return start, end, nil
}

// OptionalDate returns the named query parameter when it is a valid ISO day, "" when it is
// absent, and an error otherwise.
func OptionalDate(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", nil
	}
	if !dates.IsISODate(value) {
		return "", apperrors.InvalidInput("invalid " + name + " parameter, must be YYYY-MM-DD: " + value)
	}
	return value, nil
}
