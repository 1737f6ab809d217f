package app

import (
	"net/url"
	"strings"
)

const binaryResultParam = "disable_prepared_binary_result"

// normalizeDBURL asks for text-format results on URL-style DSNs when the
// toggle is on. Poolers in transaction mode can hand prepared-statement
// rows back in binary, which lib/pq will not decode. An explicit value
// already present in the DSN wins.
func normalizeDBURL(raw string, disableBinaryResults bool) string {
	if !disableBinaryResults {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get(binaryResultParam) != "" {
		return raw
	}
	query.Set(binaryResultParam, "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL extracts the database name for span attribution from
// either a URL-style or a key=value conninfo DSN.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	return dbNameFromConninfo(trimmed)
}

func dbNameFromConninfo(dsn string) string {
	for _, kv := range strings.Fields(dsn) {
		value, ok := strings.CutPrefix(kv, "dbname=")
		if !ok {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}
	return ""
}
