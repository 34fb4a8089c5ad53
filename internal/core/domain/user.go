package domain

import "time"

// User models a registered author. PasswordHash never leaves the service
// layer: it is excluded from JSON and every API response carries a summary
// built from the remaining fields.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
