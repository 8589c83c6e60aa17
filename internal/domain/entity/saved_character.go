package entity

import "time"

// SavedCharacter is a user's saved character. Names are not unique.
type SavedCharacter struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}
