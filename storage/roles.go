package storage

import (
	"database/sql"
	"fmt"

	"socialnotes/models"
)

// RoleStore manages roles, permissions, and their associations. All
// association mutations are idempotent set operations.
type RoleStore struct {
	db *sql.DB
}

func NewRoleStore(db *sql.DB) *RoleStore {
	return &RoleStore{db: db}
}

// CreateRole inserts a role, returning the existing one when the name is
// already taken.
func (s *RoleStore) CreateRole(name string) (*models.Role, error) {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO roles (name) VALUES (?)", name); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return s.FindRoleByName(name)
}

// CreatePermission inserts a permission, returning the existing one when
// the name is already taken.
func (s *RoleStore) CreatePermission(name string) (*models.Permission, error) {
	if _, err := s.db.Exec("INSERT OR IGNORE INTO permissions (name) VALUES (?)", name); err != nil {
		return nil, fmt.Errorf("failed to create permission: %w", err)
	}
	return s.FindPermissionByName(name)
}

func (s *RoleStore) FindRoleByName(name string) (*models.Role, error) {
	var role models.Role
	err := s.db.QueryRow("SELECT id, name FROM roles WHERE name = ?", name).Scan(&role.ID, &role.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

func (s *RoleStore) FindPermissionByName(name string) (*models.Permission, error) {
	var perm models.Permission
	err := s.db.QueryRow("SELECT id, name FROM permissions WHERE name = ?", name).Scan(&perm.ID, &perm.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find permission: %w", err)
	}
	return &perm, nil
}

// AssignRole adds the user to the role. A no-op if already assigned.
func (s *RoleStore) AssignRole(userID, roleID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO users_roles (user_id, role_id) VALUES (?, ?)",
		userID, roleID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to assign role: %w", err)
	}
	return nil
}

// UnassignRole removes the user from the role. A no-op if not assigned.
func (s *RoleStore) UnassignRole(userID, roleID int64) error {
	_, err := s.db.Exec(
		"DELETE FROM users_roles WHERE user_id = ? AND role_id = ?",
		userID, roleID,
	)
	if err != nil {
		return fmt.Errorf("failed to unassign role: %w", err)
	}
	return nil
}

// AddPermission attaches the permission to the role. A no-op if already
// attached.
func (s *RoleStore) AddPermission(roleID, permissionID int64) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO roles_permissions (role_id, permission_id) VALUES (?, ?)",
		roleID, permissionID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to add permission to role: %w", err)
	}
	return nil
}

// RemovePermission detaches the permission from the role. A no-op if not
// attached.
func (s *RoleStore) RemovePermission(roleID, permissionID int64) error {
	_, err := s.db.Exec(
		"DELETE FROM roles_permissions WHERE role_id = ? AND permission_id = ?",
		roleID, permissionID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove permission from role: %w", err)
	}
	return nil
}

// HasPermission reports whether the role bundles the permission.
func (s *RoleStore) HasPermission(roleID, permissionID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM roles_permissions WHERE role_id = ? AND permission_id = ?
		)
	`, roleID, permissionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check role permission: %w", err)
	}
	return exists, nil
}
