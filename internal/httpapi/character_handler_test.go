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

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/game/character"
	"github.com/ushki/dndsheet/internal/httpapi"
	"github.com/ushki/dndsheet/internal/service"
	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// In-memory stores backing full request/response tests. The handlers run
// against real services; only persistence is faked.

type memUserStore struct {
	users map[string]postgres.User
}

func (m *memUserStore) GetByUsername(ctx context.Context, username string) (postgres.User, error) {
	u, ok := m.users[username]
	if !ok {
		return postgres.User{}, postgres.ErrUserNotFound
	}
	return u, nil
}

type memCharStore struct {
	chars  map[int64]*character.Character
	nextID int64
}

func (m *memCharStore) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	c.ID = m.nextID
	m.nextID++
	m.chars[c.ID] = c
	return c, nil
}

func (m *memCharStore) GetByID(ctx context.Context, id int64) (*character.Character, error) {
	c, ok := m.chars[id]
	if !ok {
		return nil, postgres.ErrCharacterNotFound
	}
	return c, nil
}

func (m *memCharStore) ListByOwner(ctx context.Context, ownerID int64) ([]*character.Character, error) {
	var out []*character.Character
	for _, c := range m.chars {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCharStore) Save(ctx context.Context, c *character.Character) (*character.Character, error) {
	m.chars[c.ID] = c
	return c, nil
}

func (m *memCharStore) Delete(ctx context.Context, id int64) error {
	if _, ok := m.chars[id]; !ok {
		return postgres.ErrCharacterNotFound
	}
	delete(m.chars, id)
	return nil
}

type memSpellCatalog struct {
	spells map[int64]catalog.Spell
}

func (m *memSpellCatalog) GetByID(ctx context.Context, id int64) (catalog.Spell, error) {
	s, ok := m.spells[id]
	if !ok {
		return catalog.Spell{}, postgres.ErrSpellNotFound
	}
	return s, nil
}

type testAPI struct {
	mux    *http.ServeMux
	tokens *service.TokenProvider
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := &memUserStore{users: map[string]postgres.User{
		"aragorn": {ID: 1, Username: "aragorn", Enabled: true},
		"boromir": {ID: 2, Username: "boromir", Enabled: true},
	}}
	chars := &memCharStore{chars: make(map[int64]*character.Character), nextID: 1}
	spells := &memSpellCatalog{spells: map[int64]catalog.Spell{
		7: {ID: 7, Name: "Cure Wounds", Level: 1, School: catalog.Evocation},
	}}

	logger := zap.NewNop()
	tokens := newTokens(t)
	charSvc := service.NewCharacterService(chars, users, spells, logger)

	mux := http.NewServeMux()
	charHandler := httpapi.NewCharacterHandler(charSvc, logger)
	charHandler.Register(mux, httpapi.RequireAuth(tokens, logger))

	return &testAPI{mux: mux, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, body, username string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if username != "" {
		pair, err := a.tokens.Issue(username)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func TestCharacterCRUDOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/characters",
		`{"name":"Strider","race":"HUMAN","alignment":"CHAOTIC_GOOD","className":"Ranger"}`, "aragorn")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created service.CharacterDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Strider", created.Name)
	assert.Len(t, created.Skills, 18)

	rec = api.do(t, http.MethodGet, "/api/characters/1", "", "aragorn")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPatch, "/api/characters/1",
		`{"currentHitPoints":4}`, "aragorn")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated service.CharacterDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 4, updated.CurrentHitPoints)
	assert.Equal(t, "Strider", updated.Name)

	rec = api.do(t, http.MethodDelete, "/api/characters/1", "", "aragorn")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/characters/1", "", "aragorn")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCharacterOwnershipIsForbidden(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/characters",
		`{"name":"Strider","race":"HUMAN","alignment":"CHAOTIC_GOOD","className":"Ranger"}`, "aragorn")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/characters/1", "", "boromir")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/characters/1", "", "boromir")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCharacterRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/characters", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCharacterValidationIsBadRequest(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/characters",
		`{"name":"","race":"HUMAN","alignment":"CHAOTIC_GOOD","className":"Ranger"}`, "aragorn")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/characters", `{not json`, "aragorn")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/characters/zero", "", "aragorn")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSpellRoutesOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/characters",
		`{"name":"Strider","race":"HUMAN","alignment":"CHAOTIC_GOOD","className":"Ranger"}`, "aragorn")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/characters/1/spells/7", "", "aragorn")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var detail service.CharacterDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Spells, 1)
	assert.Equal(t, "Cure Wounds", detail.Spells[0].Name)

	rec = api.do(t, http.MethodPost, "/api/characters/1/spells/404", "", "aragorn")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/characters/1/spells/7", "", "aragorn")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Empty(t, detail.Spells)
}

func TestEquipmentRoutesOverHTTP(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/characters",
		`{"name":"Strider","race":"HUMAN","alignment":"CHAOTIC_GOOD","className":"Ranger"}`, "aragorn")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/characters/1/equipment",
		`{"name":"Longsword","type":"WEAPON","damage":"1d8","damageType":"slashing"}`, "aragorn")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var detail service.CharacterDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Equipment, 1)
	assert.Equal(t, "Longsword", detail.Equipment[0].Name)

	rec = api.do(t, http.MethodDelete, "/api/characters/1/equipment/999", "", "aragorn")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
