package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialnotes/authz"
	"socialnotes/models"
	"socialnotes/respond"
)

// ActorKey holds the resolved actor user in the request context after a
// guard allowed the request, saving handlers a second lookup.
const ActorKey contextKey = "actor"

// Guards wraps handlers with authorization checks. Each guard runs the
// engine before the handler and converts a deny into the matching HTTP
// rejection, so handler bodies never re-check access.
type Guards struct {
	engine *authz.Engine
}

func NewGuards(engine *authz.Engine) *Guards {
	return &Guards{engine: engine}
}

// RequireAdmin allows only actors holding the permission. No ownership
// exception.
func (g *Guards) RequireAdmin(permission string, next http.HandlerFunc) http.HandlerFunc {
	return g.require(authz.AdminOnly, permission, next)
}

// RequirePermission allows the resource owner and actors holding the
// permission.
func (g *Guards) RequirePermission(permission string, next http.HandlerFunc) http.HandlerFunc {
	return g.require(authz.OwnerOrPermission, permission, next)
}

// RequireAccess allows the resource owner, anyone the owner has added as
// a friend, and actors holding the permission.
func (g *Guards) RequireAccess(permission string, next http.HandlerFunc) http.HandlerFunc {
	return g.require(authz.OwnerFriendOrPermission, permission, next)
}

func (g *Guards) require(mode authz.Mode, permission string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := UsernameFromContext(r)
		if username == "" {
			respond.Unauthorized(w)
			return
		}

		// The owner id comes from the request path. A missing or
		// malformed id is passed through as zero and denied by the
		// engine.
		var ownerID int64
		if mode != authz.AdminOnly {
			if raw, ok := mux.Vars(r)["user_id"]; ok {
				if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
					ownerID = id
				}
			}
		}

		decision := g.engine.Authorize(username, ownerID, permission, mode)
		if !decision.Allowed {
			if decision.Deny == authz.DenyUnauthorized {
				respond.Unauthorized(w)
			} else {
				respond.Forbidden(w)
			}
			return
		}

		ctx := context.WithValue(r.Context(), ActorKey, decision.Actor)
		next(w, r.WithContext(ctx))
	}
}

// ActorFromContext returns the user resolved by the guard, or nil.
func ActorFromContext(r *http.Request) *models.User {
	actor, ok := r.Context().Value(ActorKey).(*models.User)
	if !ok {
		return nil
	}
	return actor
}
