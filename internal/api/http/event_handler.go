package http

import (
	"encoding/json"
	"net/http"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// EventHandler serves cleanup events.
type EventHandler struct {
	events service.EventService
}

func NewEventHandler(events service.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var event domain.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if event.Name == "" || event.OrganizationID == 0 {
		http.Error(w, "name and organization_id are required", http.StatusBadRequest)
		return
	}

	if err := h.events.Create(r.Context(), session, &event); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.events.Join(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid event id", http.StatusBadRequest)
		return
	}

	if err := h.events.Leave(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
