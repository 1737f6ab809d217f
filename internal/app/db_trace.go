package app

import (
	"regexp"
	"strings"
)

const tracedQueryLimit = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace runs and truncates long
// statements so the db.statement span attribute stays readable.
func formatDBQueryForTrace(query string) string {
	flat := queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(flat) > tracedQueryLimit {
		return flat[:tracedQueryLimit] + "..."
	}
	return flat
}
