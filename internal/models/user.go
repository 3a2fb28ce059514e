package models

// User is a registered account. Catalog mutations require IsAdmin.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized
	IsAdmin      bool   `json:"is_admin"`
}
