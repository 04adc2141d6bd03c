package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/response"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
)

// CallerFrom builds the caller identity from values set by JWTAuth.
func CallerFrom(c *gin.Context) policy.Caller {
	role, _ := domain.ParseRole(c.GetString("role"))
	return policy.Caller{
		UserID: c.GetInt64("user_id"),
		Role:   role,
	}
}

// Authorize rejects callers whose role may not perform op.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if !caller.Authenticated() {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required.")
			c.Abort()
			return
		}

		if !policy.Allowed(op, caller.Role) {
			response.Error(c, http.StatusForbidden, "ACCESS_DENIED", "Access denied.")
			c.Abort()
			return
		}

		c.Next()
	}
}
