package entity

import "time"

// Session is a row snapshot from the sessions table. The token is an opaque
// bearer value; validity is decided by looking the row up and comparing
// expiry, never by inspecting the token itself.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
	LastUsed  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its expiry. Expiry is
// computed at read time; expired rows are not deleted on lookup.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
