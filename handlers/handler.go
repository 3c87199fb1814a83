// Package handlers implements the REST endpoints. Authorization happens
// in the guard middleware before any handler body runs; handlers only
// validate payloads, talk to storage, and shape responses.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"socialnotes/auth"
	"socialnotes/config"
	"socialnotes/respond"
	"socialnotes/storage"
)

// Handler carries the injected collaborators shared by all endpoints.
type Handler struct {
	users    *storage.UserStore
	friends  *storage.FriendshipStore
	notes    *storage.NoteStore
	tokens   *auth.TokenManager
	cfg      *config.Config
	validate *validator.Validate
	log      zerolog.Logger
}

func New(
	users *storage.UserStore,
	friends *storage.FriendshipStore,
	notes *storage.NoteStore,
	tokens *auth.TokenManager,
	cfg *config.Config,
	log zerolog.Logger,
) *Handler {
	v := validator.New()
	// Password complexity is not expressible with builtin tags.
	v.RegisterValidation("complexity", func(fl validator.FieldLevel) bool {
		return auth.PasswordIsValid(fl.Field().String())
	})

	return &Handler{
		users:    users,
		friends:  friends,
		notes:    notes,
		tokens:   tokens,
		cfg:      cfg,
		validate: v,
		log:      log,
	}
}

// Health responds to liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses an integer path variable; ok is false when the variable
// is missing or not a positive integer.
func pathID(r *http.Request, name string) (int64, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
