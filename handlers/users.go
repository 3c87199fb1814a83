package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialnotes/auth"
	"socialnotes/models"
	"socialnotes/respond"
	"socialnotes/storage"
)

// ListUsers returns every non-elevated account. Admin-only route.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListNonElevated()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list users")
		respond.InternalError(w)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respond.JSON(w, http.StatusOK, users)
}

// GetUser returns one account by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", userID)
			return
		}
		h.log.Error().Err(err).Int64("user", userID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

// UpdateUser replaces the target account's password. The only mutable
// attribute; usernames are immutable.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Could not load JSON from request")
		return
	}
	if req.Password == "" {
		respond.BadRequest(w, "Invalid JSON body")
		return
	}
	if !auth.PasswordIsValid(req.Password) {
		respond.Error(w, http.StatusBadRequest, "Invalid Password",
			"Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", userID)
			return
		}
		h.log.Error().Err(err).Int64("user", userID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to hash password")
		respond.InternalError(w)
		return
	}

	if err := h.users.UpdatePassword(user.ID, hash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted between fetch and update; treat as gone.
			respond.NotFound(w, "User with id %d does not exist", userID)
			return
		}
		h.log.Error().Err(err).Int64("user", userID).Msg("failed to update password")
		respond.InternalError(w)
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

// DeleteUser removes the account. Notes and friendship edges in both
// directions are cascaded by the storage layer.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", userID)
			return
		}
		h.log.Error().Err(err).Int64("user", userID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}

	if err := h.users.Delete(user.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.log.Error().Err(err).Int64("user", userID).Msg("failed to delete user")
		respond.InternalError(w)
		return
	}

	h.log.Info().Str("username", user.Username).Int64("id", user.ID).Msg("user deleted")
	respond.Message(w, http.StatusOK, "%s successfully deleted", user.Username)
}
