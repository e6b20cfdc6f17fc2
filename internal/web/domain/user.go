// Package domain holds the persistent and session entities shared by the
// store drivers and services.
package domain

import "time"

// DefaultAvatar is used when a signup does not pick an avatar.
const DefaultAvatar = "uploads/user_12.png"

// User is the persistent account record. Email is stored normalized
// (trimmed, lower-cased) and is unique across all users.
type User struct {
	ID           string
	Email        string
	PasswordHash string // argon2id encoded, never plaintext
	FirstName    string
	LastName     string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
