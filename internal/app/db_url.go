package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes to the connection
// URL when requested, leaving an explicit value in the URL untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	q := u.Query()
	if q.Get("disable_prepared_binary_result") == "" {
		q.Set("disable_prepared_binary_result", "yes")
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// dbNameFromURL extracts the database name for trace attributes. It handles
// both URL-style DSNs (postgres://.../fantasy_backend) and key=value DSNs
// (dbname=fantasy_backend), returning "" when neither form names a database.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if u, err := url.Parse(trimmed); err == nil && u != nil && u.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(u.Path, "/")); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		if !strings.HasPrefix(field, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimPrefix(field, "dbname="), `"' `)
		if name != "" {
			return name
		}
	}

	return ""
}
