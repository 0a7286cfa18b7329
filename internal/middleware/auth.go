package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/rushi-mungse/product-microservice/internal/apperrors"
	"github.com/rushi-mungse/product-microservice/internal/auth"
)

const identityKey = "identity"

// Authenticate verifies the access token of the request and stores the
// caller's identity in the context. Any token problem answers 401.
func Authenticate(v auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := v.Verify(c.Request.Context(), auth.TokenFromRequest(c.Request))
		if err != nil {
			_ = c.Error(apperrors.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRole lets the request through only when the caller's role is one
// of roles. It must run after Authenticate.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			_ = c.Error(apperrors.Unauthorized("Unauthorized"))
			c.Abort()
			return
		}
		if id.Role == "" || !slices.Contains(roles, id.Role) {
			_ = c.Error(apperrors.Forbidden("You don't have enough permissions"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (*auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*auth.Identity)
	return id, ok && id != nil
}
