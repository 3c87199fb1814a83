package models

import "time"

// User is an account that owns notes and outgoing friendship edges and
// holds a set of roles. IsAdmin is a legacy flag kept for older clients;
// authorization decisions go through role membership instead.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
