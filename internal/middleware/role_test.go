package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
)

func authorizedRouter(userID int64, role string, op policy.Operation) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID > 0 {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		c.Next()
	})
	router.GET("/op", Authorize(op), func(c *gin.Context) {
		caller := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": caller.UserID, "role": caller.Role})
	})
	return router
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		role   string
		op     policy.Operation
		status int
	}{
		{"student requests", 3, "student", policy.BorrowRequest, http.StatusOK},
		{"legacy user role requests", 3, "user", policy.BorrowRequest, http.StatusOK},
		{"staff cannot request", 2, "staff", policy.BorrowRequest, http.StatusForbidden},
		{"staff approves", 2, "staff", policy.BorrowApprove, http.StatusOK},
		{"student cannot approve", 3, "student", policy.BorrowApprove, http.StatusForbidden},
		{"staff cannot create penalty", 2, "staff", policy.PenaltyCreate, http.StatusForbidden},
		{"admin creates penalty", 1, "admin", policy.PenaltyCreate, http.StatusOK},
		{"unknown role", 5, "guest", policy.BorrowListOwn, http.StatusUnauthorized},
		{"anonymous", 0, "", policy.BorrowListOwn, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/op", nil)
			authorizedRouter(tt.userID, tt.role, tt.op).ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCallerFrom_NormalizesLegacyRole(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/op", nil)
	authorizedRouter(3, "user", policy.BorrowListOwn).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
