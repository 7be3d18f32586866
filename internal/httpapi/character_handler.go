package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/game/character"
	"github.com/ushki/dndsheet/internal/service"
)

// CharacterHandler serves the character sheet routes. All routes require a
// valid bearer token; the token's subject is the acting user for every
// ownership check downstream.
type CharacterHandler struct {
	characters *service.CharacterService
	logger     *zap.Logger
}

// NewCharacterHandler creates a CharacterHandler.
func NewCharacterHandler(characters *service.CharacterService, logger *zap.Logger) *CharacterHandler {
	return &CharacterHandler{characters: characters, logger: logger}
}

// Register mounts the character routes behind the auth middleware.
func (h *CharacterHandler) Register(mux *http.ServeMux, authed Middleware) {
	mux.Handle("GET /api/characters", authed(http.HandlerFunc(h.handleList)))
	mux.Handle("POST /api/characters", authed(http.HandlerFunc(h.handleCreate)))
	mux.Handle("GET /api/characters/{id}", authed(http.HandlerFunc(h.handleGet)))
	mux.Handle("PATCH /api/characters/{id}", authed(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/characters/{id}", authed(http.HandlerFunc(h.handleDelete)))

	mux.Handle("POST /api/characters/{id}/equipment", authed(http.HandlerFunc(h.handleAddEquipment)))
	mux.Handle("DELETE /api/characters/{id}/equipment/{equipmentId}", authed(http.HandlerFunc(h.handleRemoveEquipment)))

	mux.Handle("POST /api/characters/{id}/spells/{spellId}", authed(http.HandlerFunc(h.handleAddSpell)))
	mux.Handle("DELETE /api/characters/{id}/spells/{spellId}", authed(http.HandlerFunc(h.handleRemoveSpell)))
}

// pathID parses a positive int64 path value. The second return is false
// when the value is missing or malformed; the caller responds 400.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (h *CharacterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())

	summaries, err := h.characters.GetAllByUsername(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *CharacterHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())

	var in character.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	detail, err := h.characters.Create(r.Context(), in, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

func (h *CharacterHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}

	detail, err := h.characters.GetByID(r.Context(), id, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CharacterHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}

	var patch character.UpdatePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	detail, err := h.characters.Update(r.Context(), id, patch, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CharacterHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}

	if err := h.characters.Delete(r.Context(), id, username); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CharacterHandler) handleAddEquipment(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}

	var item catalog.Equipment
	if err := decodeJSON(r, &item); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	detail, err := h.characters.AddEquipment(r.Context(), id, item, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CharacterHandler) handleRemoveEquipment(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}
	equipmentID, ok := pathID(r, "equipmentId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid equipment id"})
		return
	}

	detail, err := h.characters.RemoveEquipment(r.Context(), id, equipmentID, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CharacterHandler) handleAddSpell(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}
	spellID, ok := pathID(r, "spellId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid spell id"})
		return
	}

	detail, err := h.characters.AddSpell(r.Context(), id, spellID, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CharacterHandler) handleRemoveSpell(w http.ResponseWriter, r *http.Request) {
	username, _ := Username(r.Context())
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid character id"})
		return
	}
	spellID, ok := pathID(r, "spellId")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid spell id"})
		return
	}

	detail, err := h.characters.RemoveSpell(r.Context(), id, spellID, username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
