package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/httpapi"
	"github.com/ushki/dndsheet/internal/service"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

type memAuthStore struct {
	users map[string]postgres.User
}

func (m *memAuthStore) Create(ctx context.Context, username, email, password string) (postgres.User, error) {
	if _, ok := m.users[username]; ok {
		return postgres.User{}, postgres.ErrUserExists
	}
	u := postgres.User{ID: int64(len(m.users) + 1), Username: username, Email: email, PasswordHash: password, Enabled: true}
	m.users[username] = u
	return u, nil
}

func (m *memAuthStore) Authenticate(ctx context.Context, username, password string) (postgres.User, error) {
	u, ok := m.users[username]
	if !ok || u.PasswordHash != password {
		return postgres.User{}, postgres.ErrInvalidCredentials
	}
	return u, nil
}

func (m *memAuthStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, ok := m.users[username]
	return ok, nil
}

func (m *memAuthStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newAuthMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store := &memAuthStore{users: make(map[string]postgres.User)}
	authSvc := service.NewAuthService(store, newTokens(t), zap.NewNop())

	mux := http.NewServeMux()
	httpapi.NewAuthHandler(authSvc, zap.NewNop()).Register(mux)
	return mux
}

func post(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	mux := newAuthMux(t)

	rec := post(mux, "/api/auth/register",
		`{"username":"aragorn","email":"a@example.com","password":"anduril-flame"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = post(mux, "/api/auth/login",
		`{"username":"aragorn","password":"anduril-flame"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pair service.TokenPair
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	rec = post(mux, "/api/auth/refresh",
		`{"refreshToken":"`+pair.RefreshToken+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterConflictOverHTTP(t *testing.T) {
	mux := newAuthMux(t)

	rec := post(mux, "/api/auth/register",
		`{"username":"aragorn","email":"a@example.com","password":"anduril-flame"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = post(mux, "/api/auth/register",
		`{"username":"aragorn","email":"b@example.com","password":"anduril-flame"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginBadCredentialsOverHTTP(t *testing.T) {
	mux := newAuthMux(t)

	rec := post(mux, "/api/auth/login",
		`{"username":"nobody","password":"whatever1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidationOverHTTP(t *testing.T) {
	mux := newAuthMux(t)

	rec := post(mux, "/api/auth/register",
		`{"username":"aragorn","email":"not-an-email","password":"anduril-flame"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(mux, "/api/auth/register", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
