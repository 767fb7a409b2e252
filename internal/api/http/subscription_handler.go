package http

import (
	"encoding/json"
	"net/http"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// SubscriptionHandler serves digest subscriptions and the one-click
// unsubscribe link from digest emails.
type SubscriptionHandler struct {
	subs service.SubscriptionService
}

func NewSubscriptionHandler(subs service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type subscribeRequest struct {
	SubjectKind           domain.SubjectKind `json:"subject_kind"`
	SubjectID             int64              `json:"subject_id"`
	AreaID                int64              `json:"area_id"`
	NotificationFrequency int64              `json:"notification_frequency_seconds"`
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SubjectKind == "" {
		req.SubjectKind = domain.SubjectUser
	}
	if req.SubjectKind == domain.SubjectUser && req.SubjectID == 0 {
		req.SubjectID = session.User.ID
	}
	if req.NotificationFrequency <= 0 {
		http.Error(w, "notification_frequency_seconds must be positive", http.StatusBadRequest)
		return
	}

	sub := &domain.Subscription{
		SubjectKind:           req.SubjectKind,
		SubjectID:             req.SubjectID,
		AreaID:                req.AreaID,
		NotificationFrequency: req.NotificationFrequency,
	}
	if err := h.subs.Subscribe(r.Context(), session, sub); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

type unsubscribeRequest struct {
	SubjectKind domain.SubjectKind `json:"subject_kind"`
	SubjectID   int64              `json:"subject_id"`
	AreaID      int64              `json:"area_id"`
}

func (h *SubscriptionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.SubjectKind == "" {
		req.SubjectKind = domain.SubjectUser
	}
	if req.SubjectKind == domain.SubjectUser && req.SubjectID == 0 {
		req.SubjectID = session.User.ID
	}

	if err := h.subs.Unsubscribe(r.Context(), session, req.SubjectKind, req.SubjectID, req.AreaID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// UnsubscribeByToken is the unauthenticated endpoint behind digest email
// links; the signed token is the credential.
func (h *SubscriptionHandler) UnsubscribeByToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}

	if err := h.subs.UnsubscribeByToken(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "unsubscribed"})
}
