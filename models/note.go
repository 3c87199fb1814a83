package models

import "time"

// MaxNoteLength caps note content, measured after trimming.
const MaxNoteLength = 240

// Note is a short text owned by exactly one user. Timestamp records the
// last write, creation or update alike.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
