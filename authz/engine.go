// Package authz decides whether an authenticated actor may perform an
// action on a resource owned by some user. Decisions are resource-shaped:
// every endpoint composes one of three modes instead of carrying its own
// ad hoc checks.
package authz

import (
	"errors"

	"github.com/rs/zerolog"

	"socialnotes/models"
	"socialnotes/storage"
)

// Mode selects which predicate grants access beyond an explicit
// permission.
type Mode int

const (
	// AdminOnly allows only actors holding the required permission.
	AdminOnly Mode = iota

	// OwnerOrPermission additionally allows the resource owner.
	OwnerOrPermission

	// OwnerFriendOrPermission additionally allows the owner and anyone
	// the owner has added as a friend.
	OwnerFriendOrPermission
)

// DenyKind tells the boundary how to surface a deny.
type DenyKind int

const (
	DenyNone DenyKind = iota

	// DenyUnauthorized: the credential resolved to no existing user.
	// An authentication failure, not an authorization one.
	DenyUnauthorized

	// DenyForbidden: the actor is authenticated but lacks ownership,
	// friendship, and permission. Also used when the target owner is
	// missing, so probes cannot confirm resource existence.
	DenyForbidden
)

// Decision is the outcome of one authorization check. Actor is set
// whenever the credential resolved, allowing handlers to reuse the
// lookup.
type Decision struct {
	Allowed bool
	Deny    DenyKind
	Actor   *models.User
}

func allow(actor *models.User) Decision {
	return Decision{Allowed: true, Actor: actor}
}

func deny(kind DenyKind, actor *models.User) Decision {
	return Decision{Deny: kind, Actor: actor}
}

// UserDirectory is the slice of the identity store the engine needs.
type UserDirectory interface {
	FindByUsername(username string) (*models.User, error)
	FindByID(id int64) (*models.User, error)
	HasPermission(userID int64, permission string) (bool, error)
}

// FriendshipGraph answers directed-edge existence checks.
type FriendshipGraph interface {
	IsFriend(ownerID, candidateID int64) (bool, error)
}

// Engine evaluates authorization decisions against injected stores. It
// holds no state of its own and is safe for concurrent use.
type Engine struct {
	users   UserDirectory
	friends FriendshipGraph
	log     zerolog.Logger
}

func NewEngine(users UserDirectory, friends FriendshipGraph, log zerolog.Logger) *Engine {
	return &Engine{users: users, friends: friends, log: log}
}

// Authorize decides whether the actor identified by actorUsername may
// perform the action guarded by permission on a resource owned by
// targetOwnerID, under the given mode. Failures anywhere in the lookup
// chain produce a deny, never an error: a vanished user, a missing
// permission row, or a store hiccup all fail closed.
//
// Check order is fixed: actor resolution, owner-id presence, target
// resolution (friend mode only), then ownership before friendship before
// permission. Ownership is an integer compare; the other two hit the
// store, so they run only when ownership fails.
func (e *Engine) Authorize(actorUsername string, targetOwnerID int64, permission string, mode Mode) Decision {
	actor, err := e.users.FindByUsername(actorUsername)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			e.log.Warn().Err(err).Str("actor", actorUsername).Msg("actor lookup failed, denying")
		}
		return deny(DenyUnauthorized, nil)
	}

	if mode == AdminOnly {
		return e.checkPermission(actor, permission)
	}

	// A guarded route that supplies no owner id is malformed; deny
	// rather than guess.
	if targetOwnerID <= 0 {
		return deny(DenyForbidden, actor)
	}

	if mode == OwnerFriendOrPermission {
		if _, err := e.users.FindByID(targetOwnerID); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				e.log.Warn().Err(err).Int64("owner", targetOwnerID).Msg("target owner lookup failed, denying")
			}
			// Forbidden, not NotFound: do not confirm or deny the
			// resource's existence to actors who could not read it.
			return deny(DenyForbidden, actor)
		}
	}

	if actor.ID == targetOwnerID {
		return allow(actor)
	}

	if mode == OwnerFriendOrPermission {
		// The target owner must have added the actor; the reverse edge
		// grants nothing.
		isFriend, err := e.friends.IsFriend(targetOwnerID, actor.ID)
		if err != nil {
			e.log.Warn().Err(err).Int64("owner", targetOwnerID).Int64("actor", actor.ID).Msg("friendship lookup failed")
		} else if isFriend {
			return allow(actor)
		}
	}

	return e.checkPermission(actor, permission)
}

func (e *Engine) checkPermission(actor *models.User, permission string) Decision {
	ok, err := e.users.HasPermission(actor.ID, permission)
	if err != nil {
		e.log.Warn().Err(err).Int64("actor", actor.ID).Str("permission", permission).Msg("permission lookup failed, denying")
		return deny(DenyForbidden, actor)
	}
	if !ok {
		return deny(DenyForbidden, actor)
	}
	return allow(actor)
}
