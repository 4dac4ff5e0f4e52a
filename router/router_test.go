// file: router/router_test.go

package router_test

import (
	"go-vidtube-api/handler"
	"go-vidtube-api/logger"
	"go-vidtube-api/router"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// passThrough stands in for the auth middleware; route registration must
// not depend on a live token verifier.
func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter() http.Handler {
	return router.NewRouter(
		&handler.UserHandler{},
		&handler.VideoHandler{},
		&handler.CommentHandler{},
		&handler.LikeHandler{},
		&handler.PlaylistHandler{},
		&handler.SubscriptionHandler{},
		passThrough,
	)
}

func TestHealthCheckRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok", "service": "vidtube-api"}`, rec.Body.String())
}

func TestUnknownRouteReturns404(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodMismatchReturns405(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/login", nil)
	rec := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
