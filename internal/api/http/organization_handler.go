package http

import (
	"encoding/json"
	"net/http"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// OrganizationHandler serves organization CRUD and membership.
type OrganizationHandler struct {
	orgs service.OrganizationService
}

func NewOrganizationHandler(orgs service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs}
}

func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var org domain.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if org.Name == "" || org.ContactEmail == "" {
		http.Error(w, "name and contact_email are required", http.StatusBadRequest)
		return
	}

	if err := h.orgs.Create(r.Context(), session, &org); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, org)
}

func (h *OrganizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	org, err := h.orgs.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	var org domain.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	org.ID = id

	if err := h.orgs.Update(r.Context(), session, &org); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, org)
}

func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	if err := h.orgs.Delete(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

type addMemberRequest struct {
	UserID int64                   `json:"user_id"`
	Role   domain.OrganizationRole `json:"role"`
}

func (h *OrganizationHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	orgID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Role == "" {
		req.Role = domain.OrganizationRoleMember
	}

	if err := h.orgs.AddMember(r.Context(), session, orgID, req.UserID, req.Role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, nil)
}

func (h *OrganizationHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	orgID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.orgs.RemoveMember(r.Context(), session, orgID, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
