package util

import (
	"database/sql"
	"time"
)

// StringToNullString wraps s for a nullable column. The row models treat
// the empty string and NULL as the same absent value, so "" maps to NULL
// rather than an empty string in the database.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// TimeToNullTime wraps t for a nullable timestamp column, mapping the zero
// time to NULL. Provider token expiries are the main user: an OAuth token
// without an expiry must not be stored as year one.
func TimeToNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
