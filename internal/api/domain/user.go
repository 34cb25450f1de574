package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // argon2id encoded
	CreatedAt    time.Time
}

// DisplayName is the name embedded in identity tokens and project views.
func (u User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
