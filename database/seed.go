package database

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"socialnotes/auth"
	"socialnotes/models"
)

// Seed inserts the permission catalog, the shared admin role, and the
// configured elevated users. Safe to run on every startup: all inserts
// are idempotent. Elevated accounts are created with their username as
// the initial password and are expected to rotate it after first login.
func Seed(db *sql.DB, log zerolog.Logger, elevatedUsers []string, bcryptCost int) error {
	for _, name := range models.AllPermissions {
		if _, err := db.Exec("INSERT OR IGNORE INTO permissions (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
	}

	if _, err := db.Exec("INSERT OR IGNORE INTO roles (name) VALUES (?)", models.RoleAdmin); err != nil {
		return fmt.Errorf("failed to seed admin role: %w", err)
	}

	var roleID int64
	if err := db.QueryRow("SELECT id FROM roles WHERE name = ?", models.RoleAdmin).Scan(&roleID); err != nil {
		return fmt.Errorf("failed to look up admin role: %w", err)
	}

	// The admin role bundles every permission in the catalog.
	_, err := db.Exec(`
		INSERT OR IGNORE INTO roles_permissions (role_id, permission_id)
		SELECT ?, id FROM permissions
	`, roleID)
	if err != nil {
		return fmt.Errorf("failed to attach permissions to admin role: %w", err)
	}

	for _, username := range elevatedUsers {
		var userID int64
		err := db.QueryRow("SELECT id FROM users WHERE username = ?", username).Scan(&userID)
		if err == sql.ErrNoRows {
			hash, err := auth.HashPassword(username, bcryptCost)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", username, err)
			}
			res, err := db.Exec(
				"INSERT INTO users (username, password, is_admin) VALUES (?, ?, 1)",
				username, hash,
			)
			if err != nil {
				return fmt.Errorf("failed to create elevated user %s: %w", username, err)
			}
			userID, err = res.LastInsertId()
			if err != nil {
				return err
			}
			log.Info().Str("username", username).Msg("created elevated user")
		} else if err != nil {
			return fmt.Errorf("failed to look up elevated user %s: %w", username, err)
		}

		if _, err := db.Exec(
			"INSERT OR IGNORE INTO users_roles (user_id, role_id) VALUES (?, ?)",
			userID, roleID,
		); err != nil {
			return fmt.Errorf("failed to assign admin role to %s: %w", username, err)
		}
	}

	return nil
}
