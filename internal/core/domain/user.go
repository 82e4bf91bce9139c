package domain

import "time"

// User models an account that can authenticate against the API.
// PasswordHash is a bcrypt digest; the plaintext is never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims is the identity embedded in a signed token and recovered by the
// auth middleware on every protected request.
type Claims struct {
	UserID   string
	Username string
	Email    string
}
