package storage

import (
	"database/sql"
	"fmt"
	"time"

	"socialnotes/models"
)

// NoteStore provides CRUD over notes plus the friends-notes feed query.
type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func (s *NoteStore) Create(ownerID int64, content string) (*models.Note, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO notes (user_id, content, timestamp) VALUES (?, ?, ?)",
		ownerID, content, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Note{ID: id, UserID: ownerID, Content: content, Timestamp: now}, nil
}

func (s *NoteStore) Find(id int64) (*models.Note, error) {
	var n models.Note
	err := s.db.QueryRow(
		"SELECT id, user_id, content, timestamp FROM notes WHERE id = ?", id,
	).Scan(&n.ID, &n.UserID, &n.Content, &n.Timestamp)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &n, nil
}

// ListByOwner returns the owner's notes, newest first.
func (s *NoteStore) ListByOwner(ownerID int64) ([]models.Note, error) {
	return s.queryNotes(
		"SELECT id, user_id, content, timestamp FROM notes WHERE user_id = ? ORDER BY timestamp DESC, id DESC",
		ownerID,
	)
}

// ListFriendsNotes returns the notes of every user who has added the
// viewer as a friend, newest first. The direction matters: these are the
// authors whose edges point at the viewer, so read visibility follows the
// author's add, not the viewer's.
func (s *NoteStore) ListFriendsNotes(viewerID int64) ([]models.Note, error) {
	return s.queryNotes(`
		SELECT n.id, n.user_id, n.content, n.timestamp FROM notes n
		WHERE n.user_id IN (SELECT f.user_id FROM friends f WHERE f.friend_id = ?)
		ORDER BY n.timestamp DESC, n.id DESC
	`, viewerID)
}

// Update replaces the content and bumps the last-write timestamp.
func (s *NoteStore) Update(id int64, content string) (*models.Note, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		"UPDATE notes SET content = ?, timestamp = ? WHERE id = ?",
		content, now, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Find(id)
}

func (s *NoteStore) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
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

func (s *NoteStore) queryNotes(query string, args ...any) ([]models.Note, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
