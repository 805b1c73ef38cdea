package app

import (
	"regexp"
	"strings"
)

// Long statements are truncated so a bulk insert does not bloat span payloads.
const tracedQueryLimit = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses a SQL statement onto one line for span
// attributes, truncating anything past tracedQueryLimit.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := sqlWhitespace.ReplaceAllString(query, " ")
	if len(flat) <= tracedQueryLimit {
		return flat
	}

	return flat[:tracedQueryLimit] + "..."
}
