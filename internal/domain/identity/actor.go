// Package identity models the already-authenticated caller. The gateway
// validates credentials before requests reach this service; the core treats
// the forwarded user id, username and scope set as given facts and never
// re-validates a token.
package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Scope is a capability tag granted to a caller.
type Scope string

const (
	// Customer scopes.
	ScopeBookingsRead   Scope = "bookings:read"
	ScopeBookingsWrite  Scope = "bookings:write"
	ScopeBookingsCancel Scope = "bookings:cancel"

	// Venue owner scope: confirm / complete / no_show on own venue's bookings.
	ScopeBookingsManage Scope = "bookings:manage"

	// Admin scopes.
	ScopeAdmin        Scope = "admin:bookings"
	ScopeAdminRead    Scope = "admin:bookings:read"
	ScopeAdminWrite   Scope = "admin:bookings:write"
	ScopeAdminDelete  Scope = "admin:bookings:delete"
)

// Actor is the per-request caller identity. It exists only for the duration
// of one request and is always passed explicitly, never read from ambient state.
type Actor struct {
	UserID   uuid.UUID
	Username string
	scopes   map[Scope]struct{}
}

// NewActor builds an Actor from a user id, username and scope list.
func NewActor(userID uuid.UUID, username string, scopes []Scope) Actor {
	set := make(map[Scope]struct{}, len(scopes))
	for _, s := range scopes {
		set[s] = struct{}{}
	}
	return Actor{UserID: userID, Username: username, scopes: set}
}

// ParseScopes splits a space-separated scope header value into scope tags.
func ParseScopes(raw string) []Scope {
	if raw == "" {
		return nil
	}
	fields := strings.Fields(raw)
	scopes := make([]Scope, 0, len(fields))
	for _, f := range fields {
		scopes = append(scopes, Scope(f))
	}
	return scopes
}

// HasScope reports whether the actor holds the given scope.
func (a Actor) HasScope(s Scope) bool {
	_, ok := a.scopes[s]
	return ok
}

// Scopes returns the actor's scope tags (order unspecified).
func (a Actor) Scopes() []Scope {
	out := make([]Scope, 0, len(a.scopes))
	for s := range a.scopes {
		out = append(out, s)
	}
	return out
}

// IsAdminWriter reports whether the actor may modify any booking regardless
// of ownership.
func (a Actor) IsAdminWriter() bool {
	return a.HasScope(ScopeAdmin) || a.HasScope(ScopeAdminWrite)
}

// IsAdminReader reports whether the actor may read any booking regardless
// of ownership.
func (a Actor) IsAdminReader() bool {
	return a.HasScope(ScopeAdmin) || a.HasScope(ScopeAdminRead)
}

// CanDelete reports whether the actor may hard-delete bookings.
func (a Actor) CanDelete() bool {
	return a.HasScope(ScopeAdmin) || a.HasScope(ScopeAdminDelete)
}

// CanCreate reports whether the actor may create bookings.
func (a Actor) CanCreate() bool {
	return a.HasScope(ScopeBookingsWrite) || a.IsAdminWriter()
}
