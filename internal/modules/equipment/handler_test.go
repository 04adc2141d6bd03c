package equipment

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

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := setupService(t)

	r := gin.New()
	api := r.Group("/api")
	api.Use(testutil.HeaderAuth())
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func send(r *gin.Engine, caller policy.Caller, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	testutil.SetCaller(req, caller.UserID, caller.Role)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Equipment(t *testing.T) {
	r := setupRouter(t)

	w := send(r, student, http.MethodGet, "/api/equipment?sport=Football", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Football")
	assert.NotContains(t, w.Body.String(), "Tennis Racket")

	w = send(r, student, http.MethodPost, "/api/equipment", `{"name":"Bat","quantity":2}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = send(r, staff, http.MethodPost, "/api/equipment", `{"name":"Bat"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = send(r, staff, http.MethodPost, "/api/equipment", `{"name":"Bat","quantity":2,"sport":"Cricket"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sport":"Cricket"`)

	w = send(r, staff, http.MethodPut, "/api/equipment/9", `{"status":"lost"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"lost"`)

	w = send(r, staff, http.MethodGet, "/api/equipment/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = send(r, staff, http.MethodDelete, "/api/equipment/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
