package http

import (
	"net/http"
	"strconv"

	"cleanspot-backend/internal/service"

	"github.com/gorilla/mux"
)

// AreaHandler serves the area hierarchy.
type AreaHandler struct {
	areas service.AreaService
}

func NewAreaHandler(areas service.AreaService) *AreaHandler {
	return &AreaHandler{areas: areas}
}

func (h *AreaHandler) GetArea(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	area, err := h.areas.GetArea(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, area)
}

func (h *AreaHandler) GetAncestors(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	chain, err := h.areas.AncestorChain(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chain)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
