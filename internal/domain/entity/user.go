package entity

import "time"

// User is a row snapshot from the users table. Records are read-only
// projections created per query; mutations go through narrow store calls
// that return the fresh row.
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	CreatedAt     time.Time
	EmailVerified bool
	Blocked       bool
	AdminLevel    int
	LastLogin     time.Time
}

// IsAdmin reports whether the user has any admin privileges.
func (u *User) IsAdmin() bool {
	return u.AdminLevel > 0
}
