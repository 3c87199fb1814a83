package handlers

import (
	"errors"
	"net/http"

	"socialnotes/models"
	"socialnotes/respond"
	"socialnotes/storage"
)

// ListFriends returns the users the path owner has added.
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}

	if _, err := h.users.FindByID(ownerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", ownerID)
			return
		}
		h.log.Error().Err(err).Int64("user", ownerID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}

	friends, err := h.friends.ListFriends(ownerID)
	if err != nil {
		h.log.Error().Err(err).Int64("user", ownerID).Msg("failed to list friends")
		respond.InternalError(w)
		return
	}
	if friends == nil {
		friends = []models.User{}
	}
	respond.JSON(w, http.StatusOK, friends)
}

// AddFriend creates the directed edge owner -> friend.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}
	friendID, ok := pathID(r, "friend_id")
	if !ok {
		respond.BadRequest(w, "Invalid friend id")
		return
	}

	friendUser, err := h.users.FindByID(friendID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", friendID)
			return
		}
		h.log.Error().Err(err).Int64("user", friendID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}

	friendship, err := h.friends.Add(ownerID, friendID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSelfFriend):
			respond.BadRequest(w, "Cannot add yourself as a friend")
		case errors.Is(err, storage.ErrConflict):
			respond.Conflict(w, "Already friends with user %s", friendUser.Username)
		case errors.Is(err, storage.ErrNotFound):
			// Owner vanished between the guard check and the insert.
			respond.NotFound(w, "User with id %d does not exist", ownerID)
		default:
			h.log.Error().Err(err).Int64("owner", ownerID).Int64("friend", friendID).Msg("failed to add friendship")
			respond.InternalError(w)
		}
		return
	}

	respond.JSON(w, http.StatusCreated, friendship)
}

// RemoveFriend deletes the directed edge owner -> friend.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "user_id")
	if !ok {
		respond.BadRequest(w, "Invalid user id")
		return
	}
	friendID, ok := pathID(r, "friend_id")
	if !ok {
		respond.BadRequest(w, "Invalid friend id")
		return
	}

	if _, err := h.users.FindByID(friendID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "User with id %d does not exist", friendID)
			return
		}
		h.log.Error().Err(err).Int64("user", friendID).Msg("failed to fetch user")
		respond.InternalError(w)
		return
	}

	if err := h.friends.Remove(ownerID, friendID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.NotFound(w, "Not friends with user id %d", friendID)
			return
		}
		h.log.Error().Err(err).Int64("owner", ownerID).Int64("friend", friendID).Msg("failed to remove friendship")
		respond.InternalError(w)
		return
	}

	respond.Message(w, http.StatusOK, "Removed friend with user id %d", friendID)
}
