package http

import (
	"encoding/json"
	"net/http"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// PointHandler serves trash and collection point reports.
type PointHandler struct {
	points service.PointService
}

func NewPointHandler(points service.PointService) *PointHandler {
	return &PointHandler{points: points}
}

type reportPointRequest struct {
	Kind   domain.PointKind   `json:"kind"`
	Status domain.PointStatus `json:"status"`
	Note   string             `json:"note"`
	Gps    domain.Gps         `json:"gps"`
}

func (h *PointHandler) Report(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req reportPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Kind != domain.PointTrash && req.Kind != domain.PointCollection {
		http.Error(w, "invalid point kind", http.StatusBadRequest)
		return
	}

	point := &domain.Point{
		Kind:   req.Kind,
		Status: req.Status,
		Note:   req.Note,
	}
	gps := req.Gps
	if err := h.points.Report(r.Context(), session, point, &gps); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, point)
}

func (h *PointHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid point id", http.StatusBadRequest)
		return
	}

	point, err := h.points.GetPoint(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, point)
}

type updateStatusRequest struct {
	Status domain.PointStatus `json:"status"`
	Note   string             `json:"note"`
}

func (h *PointHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid point id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.points.UpdateStatus(r.Context(), session, id, req.Status, req.Note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
