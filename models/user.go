package models

import "time"

// User is a registered storefront account. Exactly one admin account exists,
// seeded at bootstrap; regular users are created through registration and are
// never deleted.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// UserSnapshot is the frozen copy of a User embedded in an Order at checkout.
// It intentionally drops the credential.
type UserSnapshot struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// Snapshot returns the frozen projection of u used by orders.
func (u User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Mobile:  u.Mobile,
		Address: u.Address,
	}
}
