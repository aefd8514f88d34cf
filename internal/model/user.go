package model

import "time"

// User is a registered account. PasswordHash is excluded from JSON so a
// handler can return the struct directly without leaking credentials.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
