package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adventure-league/tracker/internal/auth"
	"github.com/adventure-league/tracker/internal/handlers"
	"github.com/adventure-league/tracker/internal/router"
	"github.com/adventure-league/tracker/internal/service"
	"github.com/adventure-league/tracker/internal/storage/memstore"
)

func newEngine(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	kv, err := memstore.NewFileKV(t.TempDir())
	require.NoError(t, err)
	stores, err := memstore.Open(context.Background(), kv, false)
	require.NoError(t, err)

	tokens, err := auth.NewTokens("test-secret")
	require.NoError(t, err)

	tracker := service.New(stores, tokens, nil)
	hub := handlers.NewHub(origins)
	h := handlers.New(tracker, hub, "")

	return router.New(h, hub, tokens, tracker, origins)
}

func TestNewWithoutOrigins(t *testing.T) {
	engine := newEngine(t, nil)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRejectsUnknownOrigin(t *testing.T) {
	engine := newEngine(t, []string{"https://tracker.example.com"})

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
