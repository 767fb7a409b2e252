package http

import (
	"encoding/json"
	"net/http"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/service"
)

// ApiKeyHandler mints API keys for programmatic callers.
type ApiKeyHandler struct {
	auth service.AuthService
}

func NewApiKeyHandler(auth service.AuthService) *ApiKeyHandler {
	return &ApiKeyHandler{auth: auth}
}

type mintKeyRequest struct {
	UserID       int64 `json:"user_id"`
	LimitPerHour int32 `json:"limit_per_hour"`
}

type mintKeyResponse struct {
	Key *domain.ApiKey `json:"key"`
	// Plaintext is shown exactly once; only its hash is stored.
	Plaintext string `json:"plaintext"`
}

func (h *ApiKeyHandler) Mint(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	var req mintKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		req.UserID = session.User.ID
	}
	if req.LimitPerHour <= 0 {
		http.Error(w, "limit_per_hour must be positive", http.StatusBadRequest)
		return
	}

	key, plaintext, err := h.auth.MintApiKey(r.Context(), req.UserID, req.LimitPerHour)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, mintKeyResponse{Key: key, Plaintext: plaintext})
}
