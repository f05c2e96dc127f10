package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash, never the plaintext.
type User struct {
	ID        string
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	AvatarURL string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
