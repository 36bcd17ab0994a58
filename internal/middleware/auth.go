package middleware

import (
	"net/http"

	"taskify/internal/auth"
	"taskify/internal/util"

	"github.com/gin-gonic/gin"
)

const identityKey = "currentIdentity"

// Resolver resolves the caller of a request. *auth.Sessions implements it.
type Resolver interface {
	Resolve(r *http.Request) (auth.Identity, bool)
}

// Identify resolves the session cookie on every request and stores the
// identity in the context. A missing or broken cookie leaves the request
// anonymous; it is never rejected here.
func Identify(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := resolver.Resolve(c.Request); ok {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by Identify.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	if !ok || id.ID == 0 {
		return auth.Identity{}, false
	}
	return id, true
}
