package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/game/catalog"
	"github.com/ushki/dndsheet/internal/service"
)

// CatalogHandler serves the shared spell and equipment catalogs.
type CatalogHandler struct {
	spells    *service.SpellService
	equipment *service.EquipmentService
	logger    *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(spells *service.SpellService, equipment *service.EquipmentService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{spells: spells, equipment: equipment, logger: logger}
}

// Register mounts the catalog routes behind the auth middleware.
func (h *CatalogHandler) Register(mux *http.ServeMux, authed Middleware) {
	mux.Handle("GET /api/spells", authed(http.HandlerFunc(h.handleListSpells)))
	mux.Handle("POST /api/spells", authed(http.HandlerFunc(h.handleCreateSpell)))
	mux.Handle("GET /api/spells/{id}", authed(http.HandlerFunc(h.handleGetSpell)))
	mux.Handle("PUT /api/spells/{id}", authed(http.HandlerFunc(h.handleUpdateSpell)))
	mux.Handle("DELETE /api/spells/{id}", authed(http.HandlerFunc(h.handleDeleteSpell)))

	mux.Handle("GET /api/equipment", authed(http.HandlerFunc(h.handleListEquipment)))
	mux.Handle("POST /api/equipment", authed(http.HandlerFunc(h.handleCreateEquipment)))
	mux.Handle("GET /api/equipment/{id}", authed(http.HandlerFunc(h.handleGetEquipment)))
	mux.Handle("PUT /api/equipment/{id}", authed(http.HandlerFunc(h.handleUpdateEquipment)))
	mux.Handle("DELETE /api/equipment/{id}", authed(http.HandlerFunc(h.handleDeleteEquipment)))
}

// handleListSpells supports ?level=, ?school=, and ?name= filters; with no
// filter it returns the whole catalog.
func (h *CatalogHandler) handleListSpells(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		spells []catalog.Spell
		err    error
	)
	switch {
	case q.Has("level"):
		var level int
		level, err = strconv.Atoi(q.Get("level"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid level filter"})
			return
		}
		spells, err = h.spells.ListByLevel(r.Context(), level)
	case q.Has("school"):
		spells, err = h.spells.ListBySchool(r.Context(), catalog.SpellSchool(q.Get("school")))
	case q.Has("name"):
		spells, err = h.spells.SearchByName(r.Context(), q.Get("name"))
	default:
		spells, err = h.spells.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spells)
}

func (h *CatalogHandler) handleCreateSpell(w http.ResponseWriter, r *http.Request) {
	var in catalog.Spell
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	created, err := h.spells.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) handleGetSpell(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid spell id"})
		return
	}

	spell, err := h.spells.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, spell)
}

func (h *CatalogHandler) handleUpdateSpell(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid spell id"})
		return
	}

	var in catalog.Spell
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}
	in.ID = id

	updated, err := h.spells.Update(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteSpell(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid spell id"})
		return
	}

	if err := h.spells.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListEquipment supports ?type= and ?name= filters.
func (h *CatalogHandler) handleListEquipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		items []catalog.Equipment
		err   error
	)
	switch {
	case q.Has("type"):
		items, err = h.equipment.ListByType(r.Context(), catalog.EquipmentType(q.Get("type")))
	case q.Has("name"):
		items, err = h.equipment.SearchByName(r.Context(), q.Get("name"))
	default:
		items, err = h.equipment.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler) handleCreateEquipment(w http.ResponseWriter, r *http.Request) {
	var in catalog.Equipment
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}

	created, err := h.equipment.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CatalogHandler) handleGetEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid equipment id"})
		return
	}

	item, err := h.equipment.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *CatalogHandler) handleUpdateEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid equipment id"})
		return
	}

	var in catalog.Equipment
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return
	}
	in.ID = id

	updated, err := h.equipment.Update(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *CatalogHandler) handleDeleteEquipment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid equipment id"})
		return
	}

	if err := h.equipment.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
