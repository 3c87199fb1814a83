package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"socialnotes/middleware"
	"socialnotes/models"
	"socialnotes/respond"
	"socialnotes/storage"
)

type noteRequest struct {
	Content string `json:"content"`
}

// readNoteContent decodes and validates a note payload. Content is
// trimmed before the length check.
func (h *Handler) readNoteContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Could not load JSON from request")
		return "", false
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respond.BadRequest(w, "Invalid JSON body")
		return "", false
	}
	if len(content) > models.MaxNoteLength {
		respond.BadRequest(w, "Note content must be at most %d characters", models.MaxNoteLength)
		return "", false
	}
	return content, true
}

// fetchPathOwner resolves the {user_id} path owner, writing a 404 when
// the account does not exist.
func (h *Handler) fetchPathOwner(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	ownerID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return nil, false
	}
	owner, err := h.users.FindByID(ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", ownerID)
			return nil, false
		}
		h.log.Error().Err(err).Int64("user", ownerID).Msg("failed to fetch user")
		respond.InternalError(w)
		return nil, false
	}
	return owner, true
}

// CreateNote posts a note under the path owner.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readNoteContent(w, r)
	if !ok {
		return
	}
	owner, ok := h.fetchPathOwner(w, r)
	if !ok {
		return
	}

	note, err := h.notes.Create(owner.ID, content)
	if err != nil {
		h.log.Error().Err(err).Int64("owner", owner.ID).Msg("failed to create note")
		respond.InternalError(w)
		return
	}
	respond.JSON(w, http.StatusCreated, note)
}

// ListNotes returns the path owner's notes, newest first.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.fetchPathOwner(w, r)
	if !ok {
		return
	}

	notes, err := h.notes.ListByOwner(owner.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("owner", owner.ID).Msg("failed to list notes")
		respond.InternalError(w)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	respond.JSON(w, http.StatusOK, notes)
}

// ListFriendsNotes returns the notes of every user who has added the
// actor as a friend. The feed is empty until authors add the actor,
// regardless of whom the actor has added.
func (h *Handler) ListFriendsNotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.fetchPathOwner(w, r); !ok {
		return
	}
	actor := middleware.ActorFromContext(r)
	if actor == nil {
		respond.Unauthorized(w)
		return
	}

	notes, err := h.notes.ListFriendsNotes(actor.ID)
	if err != nil {
		h.log.Error().Err(err).Int64("viewer", actor.ID).Msg("failed to list friends notes")
		respond.InternalError(w)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	respond.JSON(w, http.StatusOK, notes)
}

// fetchOwnedNote resolves {note_id} and enforces that the note belongs
// to the path owner. A note that exists under another owner is forbidden
// rather than not-found: the path already names an owner, the mismatch is
// an access violation.
func (h *Handler) fetchOwnedNote(w http.ResponseWriter, r *http.Request, ownerID int64) (*models.Note, bool) {
	noteID, ok := pathID(r, "note_id")
	if !ok {
		respond.BadRequest(w, "Invalid note id")
		return nil, false
	}
	note, err := h.notes.Find(noteID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "Note with id %d does not exist", noteID)
			return nil, false
		}
		h.log.Error().Err(err).Int64("note", noteID).Msg("failed to fetch note")
		respond.InternalError(w)
		return nil, false
	}
	if note.UserID != ownerID {
		respond.Forbidden(w)
		return nil, false
	}
	return note, true
}

// GetNote returns one of the path owner's notes.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.fetchPathOwner(w, r)
	if !ok {
		return
	}
	note, ok := h.fetchOwnedNote(w, r, owner.ID)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, note)
}

// UpdateNote rewrites a note's content.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	content, ok := h.readNoteContent(w, r)
	if !ok {
		return
	}
	owner, ok := h.fetchPathOwner(w, r)
	if !ok {
		return
	}
	note, ok := h.fetchOwnedNote(w, r, owner.ID)
	if !ok {
		return
	}

	updated, err := h.notes.Update(note.ID, content)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "Note with id %d does not exist", note.ID)
			return
		}
		h.log.Error().Err(err).Int64("note", note.ID).Msg("failed to update note")
		respond.InternalError(w)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

// DeleteNote removes a note.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.fetchPathOwner(w, r)
	if !ok {
		return
	}
	note, ok := h.fetchOwnedNote(w, r, owner.ID)
	if !ok {
		return
	}

	if err := h.notes.Delete(note.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.log.Error().Err(err).Int64("note", note.ID).Msg("failed to delete note")
		respond.InternalError(w)
		return
	}
	respond.Message(w, http.StatusOK, "Note with id %d successfully deleted", note.ID)
}
