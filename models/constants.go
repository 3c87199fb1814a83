package models

// RoleAdmin is the shared elevated role seeded at startup.
const RoleAdmin = "admin"

// Permission names
const (
	PermReadUsers   = "can_read_users"
	PermUpdateUsers = "can_update_users"
	PermDeleteUsers = "can_delete_users"

	PermCreateNotes = "can_create_notes"
	PermReadNotes   = "can_read_notes"
	PermUpdateNotes = "can_update_notes"
	PermDeleteNotes = "can_delete_notes"

	PermReadFriends   = "can_read_friends"
	PermCreateFriends = "can_create_friends"
	PermDeleteFriends = "can_delete_friends"
)

// AllPermissions lists every permission seeded into a fresh database.
var AllPermissions = []string{
	PermReadUsers,
	PermUpdateUsers,
	PermDeleteUsers,
	PermCreateNotes,
	PermReadNotes,
	PermUpdateNotes,
	PermDeleteNotes,
	PermReadFriends,
	PermCreateFriends,
	PermDeleteFriends,
}
