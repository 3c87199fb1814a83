package storage

import (
	"database/sql"
	"fmt"
	"time"

	"socialnotes/models"
)

// UserStore provides durable storage and query of users and their role
// and permission associations.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, username, password, is_admin, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new user with an already-hashed password. A duplicate
// username returns ErrConflict.
func (s *UserStore) Create(username, passwordHash string) (*models.User, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO users (username, password, created_at, updated_at) VALUES (?, ?, ?, ?)",
		username, passwordHash, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:        id,
		Username:  username,
		Password:  passwordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return scanUser(row)
}

func (s *UserStore) FindByID(id int64) (*models.User, error) {
	row := s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// UpdatePassword replaces the stored password hash.
func (s *UserStore) UpdatePassword(id int64, passwordHash string) error {
	res, err := s.db.Exec(
		"UPDATE users SET password = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the user. Notes and friendship edges in either direction
// go with it via the schema's cascades.
func (s *UserStore) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListNonElevated returns every user that does not hold the admin role.
// This backs the administrative user listing, which hides elevated
// accounts.
func (s *UserStore) ListNonElevated() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT `+userColumns+` FROM users
		WHERE id NOT IN (
			SELECT ur.user_id FROM users_roles ur
			JOIN roles r ON r.id = ur.role_id
			WHERE r.name = ?
		)
		ORDER BY id
	`, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// HasPermission reports whether any role held by the user bundles a
// permission with the given name. A permission name that was never seeded
// simply matches nothing: absence means deny, not error.
func (s *UserStore) HasPermission(userID int64, permission string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM users_roles ur
			JOIN roles_permissions rp ON rp.role_id = ur.role_id
			JOIN permissions p ON p.id = rp.permission_id
			WHERE ur.user_id = ? AND p.name = ?
		)
	`, userID, permission).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return exists, nil
}
