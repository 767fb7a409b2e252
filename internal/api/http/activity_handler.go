package http

import (
	"net/http"
	"strconv"
	"strings"

	"cleanspot-backend/internal/domain"
	"cleanspot-backend/internal/repository"
	"cleanspot-backend/internal/service"
)

// ActivityHandler serves the interactive activity/stats view.
type ActivityHandler struct {
	activity service.ActivityService
}

func NewActivityHandler(activity service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// AreaActivity lists recent activity scoped to one area.
func (h *ActivityHandler) AreaActivity(w http.ResponseWriter, r *http.Request) {
	areaID, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "invalid area id", http.StatusBadRequest)
		return
	}

	page, limit := pagination(r)
	records, err := h.activity.ListActivity(r.Context(),
		repository.ActivityScope{AreaID: areaID}, pointKindFilter(r), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// UserActivity lists recent activity by a set of reporters.
func (h *ActivityHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	var userIDs []int64
	for _, raw := range strings.Split(r.URL.Query().Get("user_ids"), ",") {
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid user_ids", http.StatusBadRequest)
			return
		}
		userIDs = append(userIDs, id)
	}
	if len(userIDs) == 0 {
		http.Error(w, "user_ids is required", http.StatusBadRequest)
		return
	}

	page, limit := pagination(r)
	records, err := h.activity.ListActivity(r.Context(),
		repository.ActivityScope{UserIDs: userIDs}, pointKindFilter(r), page, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func pagination(r *http.Request) (page, limit int32) {
	page, limit = 1, 20
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 && v <= 100 {
			limit = int32(v)
		}
	}
	return page, limit
}

func pointKindFilter(r *http.Request) domain.PointKind {
	switch r.URL.Query().Get("type") {
	case string(domain.PointTrash):
		return domain.PointTrash
	case string(domain.PointCollection):
		return domain.PointCollection
	default:
		return ""
	}
}
