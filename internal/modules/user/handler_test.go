package user

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/policy"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/testutil"
)

func send(r *gin.Engine, caller policy.Caller, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	testutil.SetCaller(req, caller.UserID, caller.Role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Users(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := setupService(t)
	r := gin.New()
	api := r.Group("/api")
	api.Use(testutil.HeaderAuth())
	NewHandler(svc).RegisterRoutes(api)

	w := send(r, staff, http.MethodGet, "/api/users?role=student", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = send(r, staff, http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(r, admin, http.MethodPost, "/api/users", `{"name":"A","email":"not-an-email","password":"secret123","role":"student"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, admin, http.MethodPost, "/api/users", `{"name":"A","email":"student@uni.test","password":"secret123","role":"student"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_EXISTS")

	w = send(r, admin, http.MethodPost, "/api/users", `{"name":"A","email":"a@uni.test","password":"secret123","role":"student"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = send(r, admin, http.MethodDelete, "/api/users/4", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = send(r, student, http.MethodGet, "/api/users/3", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
