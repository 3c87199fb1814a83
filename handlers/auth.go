package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialnotes/auth"
	"socialnotes/respond"
	"socialnotes/storage"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usernameRule struct {
	Username string `validate:"min=4,max=12,alphanum,lowercase"`
}

const usernameRuleMessage = "Username must be at least 4 characters long and at most 12 characters long, contain only alphanumeric characters, and be all lowercase"

// Register creates a new account. Reserved usernames, malformed
// usernames and weak passwords are rejected before touching storage;
// a duplicate username surfaces as a conflict.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Could not load JSON from request")
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.BadRequest(w, "Invalid JSON body")
		return
	}

	if h.cfg.IsReservedUsername(req.Username) {
		respond.Error(w, http.StatusBadRequest, "Invalid Username", "Username is reserved")
		return
	}

	if err := h.validate.Struct(usernameRule{Username: req.Username}); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid Username", usernameRuleMessage)
		return
	}

	if !auth.PasswordIsValid(req.Password) {
		respond.Error(w, http.StatusBadRequest, "Invalid Password",
			"Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one digit, and one special character")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to hash password")
		respond.InternalError(w)
		return
	}

	user, err := h.users.Create(req.Username, hash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			respond.Conflict(w, "User with username %s already exists", req.Username)
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		respond.InternalError(w)
		return
	}

	h.log.Info().Str("username", user.Username).Int64("id", user.ID).Msg("user registered")
	respond.JSON(w, http.StatusCreated, user)
}

// Login verifies credentials and issues a bearer token. Invalid
// username, unknown user, and wrong password all collapse into the same
// 401 so probes learn nothing.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "Could not load JSON from request")
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.BadRequest(w, "Invalid JSON body")
		return
	}

	// Reserved accounts may predate the username rules, so only shape-
	// check the rest.
	if !h.cfg.IsReservedUsername(req.Username) {
		if err := h.validate.Struct(usernameRule{Username: req.Username}); err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid Username", usernameRuleMessage)
			return
		}
	}

	user, err := h.users.FindByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.Error().Err(err).Msg("login lookup failed")
		}
		respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		respond.Error(w, http.StatusUnauthorized, "Unauthorized", "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user.Username)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to generate token")
		respond.InternalError(w)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"id":           user.ID,
	})
}
