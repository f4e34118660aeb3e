// Package params provides validation and clamping for query parameters shared by
// the HTTP handlers. All functions are pure: malformed or missing input coerces
// to safe defaults rather than failing, so handlers always receive usable values.
package params

import (
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size used when the client omits limit.
	DefaultLimit = 50
	// MaxLimit caps the page size a client can request.
	MaxLimit = 100
	// MaxOffset caps how deep a client can paginate.
	MaxOffset = 10000

	// DefaultHours is the trailing window used when the client omits hours.
	DefaultHours = 24
	// MaxHours caps the trailing window at seven days.
	MaxHours = 168
)

// Pagination coerces raw limit/offset query values into a usable pair.
// Non-numeric or missing input falls back to the defaults; the results are
// clamped to limit in [1, MaxLimit] and offset in [0, MaxOffset].
func Pagination(limitStr, offsetStr string) (limit, offset int) {
	limit = parseIntOr(limitStr, DefaultLimit)
	offset = parseIntOr(offsetStr, 0)

	limit = clamp(limit, 1, MaxLimit)
	offset = clamp(offset, 0, MaxOffset)
	return limit, offset
}

// Hours coerces a raw hours query value into [1, MaxHours], defaulting to
// DefaultHours for missing or malformed input.
func Hours(hoursStr string) int {
	return clamp(parseIntOr(hoursStr, DefaultHours), 1, MaxHours)
}

// Source validates a source label against the allowlist of configured sources.
// The label is trimmed and matched exactly (case-sensitive). Returns the trimmed
// label, or "" when the source is not allowed; callers must treat "" as a bad request.
func Source(source string, validSources []string) string {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ""
	}
	for _, valid := range validSources {
		if trimmed == valid {
			return trimmed
		}
	}
	return ""
}

func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
