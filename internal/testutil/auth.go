package testutil

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

const (
	userIDHeader = "X-Test-User-ID"
	roleHeader   = "X-Test-Role"
)

// HeaderAuth stands in for JWTAuth in handler tests: it reads the caller from
// test headers and sets the same context keys.
func HeaderAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := strconv.ParseInt(c.GetHeader(userIDHeader), 10, 64); err == nil {
			c.Set("user_id", id)
			c.Set("role", c.GetHeader(roleHeader))
		}
		c.Next()
	}
}

// SetCaller marks req as sent by the given user. A zero ID leaves the request
// anonymous.
func SetCaller(req *http.Request, userID int64, role domain.UserRole) {
	if userID == 0 {
		return
	}
	req.Header.Set(userIDHeader, strconv.FormatInt(userID, 10))
	req.Header.Set(roleHeader, string(role))
}
