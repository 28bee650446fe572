package app

import (
	"net/url"
	"regexp"
	"strings"
)

// tracedQueryLimit caps SQL statements recorded on spans so a bulk insert
// doesn't bloat the trace payload.
const tracedQueryLimit = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

// normalizeDBURL appends disable_prepared_binary_result=yes to the connection
// URL unless the caller opted out or the URL already carries a value. lib/pq
// needs the flag against PgBouncer in transaction pooling mode.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	params := parsed.Query()
	if params.Has("disable_prepared_binary_result") {
		return raw
	}
	params.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = params.Encode()

	return parsed.String()
}

// dbNameFromURL extracts the database name for span attributes, accepting
// both URL-style and key=value DSNs.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(raw) {
		if key, value, ok := strings.Cut(token, "="); ok && key == "dbname" {
			if name := strings.Trim(value, `"' `); name != "" {
				return name
			}
		}
	}

	return ""
}

// formatDBQueryForTrace collapses whitespace and truncates long statements
// before they land on a span.
func formatDBQueryForTrace(query string) string {
	query = sqlWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(query) > tracedQueryLimit {
		return query[:tracedQueryLimit] + "..."
	}
	return query
}
