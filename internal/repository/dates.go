package repository

import "time"

// dateLayout is the wire format for Postgres date columns
const dateLayout = "2006-01-02"

// parseDate parses a Postgres date column value. PostgREST occasionally
// returns dates with a timestamp suffix depending on the column type, so
// fall back to RFC 3339 before giving up.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
