package models

// Role is a named bundle of permissions. Users hold roles; permissions
// are never attached to users directly.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Permission is a named capability checked by the authorization engine.
type Permission struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
