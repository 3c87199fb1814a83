package storage

import (
	"database/sql"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialnotes/database"
	"socialnotes/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Setup(db))
	return db
}

func seedTestDB(t *testing.T, db *sql.DB, elevated ...string) {
	t.Helper()
	require.NoError(t, database.Seed(db, zerolog.Nop(), elevated, bcrypt.MinCost))
}

func createTestUser(t *testing.T, users *UserStore, username string) *models.User {
	t.Helper()
	user, err := users.Create(username, "not-a-real-hash")
	require.NoError(t, err)
	return user
}
