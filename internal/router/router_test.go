package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/config"
	"github.com/pckhai-work/blog-system-mern-stack/internal/handler"
)

func newTestRouter() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{
		Environment: "production",
		ClientURL:   "http://localhost:3000",
	}
	tokens := auth.NewTokenService("session-secret", "activation-secret", "reset-secret")

	Register(
		e,
		cfg,
		tokens,
		nil,
		nil,
		handler.NewAuthHandler(nil),
		handler.NewBlogHandler(nil),
		handler.NewCategoryHandler(nil),
		handler.NewTagHandler(nil),
		handler.NewUserHandler(nil),
	)
	return e
}

// An unmatched path under /api must answer 404, not a token error from the
// protected routes' middleware.
func TestRegister_UnmatchedAPIPathIs404(t *testing.T) {
	e := newTestRouter()

	for _, path := range []string{
		"/api/no-such-route/at-all",
		"/api/admin/secrets/dump",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestRegister_ProtectedRoutesRejectMissingToken(t *testing.T) {
	e := newTestRouter()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/blog"},
		{http.MethodPost, "/api/category"},
		{http.MethodDelete, "/api/tag/go"},
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPut, "/api/user/blog/some-post"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.NotEqual(t, http.StatusNotFound, rec.Code, tt.path)
		assert.NotEqual(t, http.StatusOK, rec.Code, tt.path)
	}
}

func TestRegister_Healthz(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
