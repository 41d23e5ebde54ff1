package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Role values carried in JWT claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ContextKey is the gin context key under which the middleware stores the
// authenticated principal.
const ContextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActOnMembership is the single ownership predicate used by every
// lifecycle operation and query: admins may act on any membership, regular
// users only on memberships they own.
func (p Principal) CanActOnMembership(membershipOwnerID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == membershipOwnerID
}

// CanActOnUser reports whether the principal may act on the given user's
// records (self or admin).
func (p Principal) CanActOnUser(userID uuid.UUID) bool {
	return p.IsAdmin() || p.ID == userID
}

// FromContext extracts the principal set by the auth middleware.
func FromContext(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(ContextKey)
	if !exists {
		return Principal{}, false
	}

	p, ok := v.(Principal)
	return p, ok
}
