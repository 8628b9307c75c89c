package authz

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cuidarpet/cuidarpet-api/pkg/errors"
)

// ContextKey is the gin context key under which the auth middleware stores
// the authenticated user's claims.
const ContextKey = "authClaims"

// Claims is the identity extracted from a validated bearer token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   Role
}

// CurrentUser returns the claims set by the auth middleware. Handlers behind
// the Authenticate middleware can rely on it; anything else gets an
// Unauthenticated error.
func CurrentUser(c *gin.Context) (*Claims, error) {
	v, ok := c.Get(ContextKey)
	if !ok {
		return nil, errors.Unauthenticated("")
	}
	claims, ok := v.(*Claims)
	if !ok || claims.UserID == uuid.Nil {
		return nil, errors.Unauthenticated("invalid identity")
	}
	return claims, nil
}
