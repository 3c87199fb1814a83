package storage

import (
	"database/sql"
	"fmt"

	"socialnotes/models"
)

// FriendshipStore maintains the directed "added as friend" edges. Edges
// are asymmetric: Add(a, b) says nothing about whether b added a.
type FriendshipStore struct {
	db *sql.DB
}

func NewFriendshipStore(db *sql.DB) *FriendshipStore {
	return &FriendshipStore{db: db}
}

// IsFriend reports whether the directed edge owner -> candidate exists,
// i.e. the owner has added the candidate.
func (s *FriendshipStore) IsFriend(ownerID, candidateID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)",
		ownerID, candidateID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// Add creates the directed edge owner -> friend. Self edges return
// ErrSelfFriend, duplicates ErrConflict, and a missing endpoint
// ErrNotFound. Duplicate detection rides on the unique constraint so
// concurrent identical adds resolve to exactly one winner.
func (s *FriendshipStore) Add(ownerID, friendID int64) (*models.Friendship, error) {
	if ownerID == friendID {
		return nil, ErrSelfFriend
	}
	res, err := s.db.Exec(
		"INSERT INTO friends (user_id, friend_id) VALUES (?, ?)",
		ownerID, friendID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		if isForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add friendship: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Friendship{ID: id, UserID: ownerID, FriendID: friendID}, nil
}

// Remove deletes the directed edge owner -> friend. ErrNotFound when the
// edge does not exist.
func (s *FriendshipStore) Remove(ownerID, friendID int64) error {
	res, err := s.db.Exec(
		"DELETE FROM friends WHERE user_id = ? AND friend_id = ?",
		ownerID, friendID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove friendship: %w", err)
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

// ListFriends returns the users the owner has added. Self is excluded
// defensively even though the schema forbids self edges.
func (s *FriendshipStore) ListFriends(ownerID int64) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.username, u.password, u.is_admin, u.created_at, u.updated_at
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ? AND f.friend_id != f.user_id
		ORDER BY u.id
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, u)
	}
	return friends, rows.Err()
}
