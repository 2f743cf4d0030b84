// Package middleware holds the gin middleware chain: identity extraction
// from gateway headers, request logging, recovery and HTTP metrics.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/venuehub/service-bookings/internal/domain/identity"
)

const (
	headerUserID   = "X-User-Id"
	headerUsername = "X-Username"
	headerScopes   = "X-User-Scopes"

	actorContextKey = "actor"
)

// Identity builds the request actor from the trusted gateway headers. The
// gateway authenticates callers before requests reach this service; a request
// without a valid user id header never got through it and is rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(headerUserID)
		userID, err := uuid.Parse(rawID)
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}

		actor := identity.NewActor(
			userID,
			c.GetHeader(headerUsername),
			identity.ParseScopes(c.GetHeader(headerScopes)),
		)
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// GetActor returns the actor placed on the context by Identity.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := v.(identity.Actor)
	return actor, ok
}

// RequireScope rejects requests whose actor lacks every one of the given
// scopes. Admin writers pass unconditionally.
func RequireScope(scopes ...identity.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}
		if actor.IsAdminWriter() {
			c.Next()
			return
		}
		for _, s := range scopes {
			if actor.HasScope(s) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient scope"})
	}
}
