package database

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens the sqlite database at path and applies the connection
// settings the API depends on. Foreign keys must stay enabled or the
// user-deletion cascades (notes, friendship edges) silently stop working.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=10000&_foreign_keys=on"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// Setup creates the schema if it does not exist yet.
func Setup(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
