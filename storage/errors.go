package storage

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness constraint rejects a write.
	ErrConflict = errors.New("already exists")

	// ErrSelfFriend is returned when a user tries to add themselves as a friend.
	ErrSelfFriend = errors.New("cannot add self as friend")
)

// isUniqueViolation reports whether err is a sqlite unique-constraint
// failure. Concurrent duplicate writes surface here rather than through
// in-process locking.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a sqlite foreign-key
// failure, i.e. a referenced user no longer exists.
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
