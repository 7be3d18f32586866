package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/httpapi"
	"github.com/ushki/dndsheet/internal/service"
)

func newTokens(t *testing.T) *service.TokenProvider {
	t.Helper()
	tokens, err := service.NewTokenProvider([]byte("test-secret-0123456789"), "dndsheet-test", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens
}

func TestRequireAuthMissingToken(t *testing.T) {
	authed := httpapi.RequireAuth(newTokens(t), zap.NewNop())
	handler := authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/characters", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	authed := httpapi.RequireAuth(newTokens(t), zap.NewNop())
	handler := authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/characters", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthPassesUsername(t *testing.T) {
	tokens := newTokens(t)
	pair, err := tokens.Issue("aragorn")
	require.NoError(t, err)

	var got string
	authed := httpapi.RequireAuth(tokens, zap.NewNop())
	handler := authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = httpapi.Username(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/characters", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "aragorn", got)
}
