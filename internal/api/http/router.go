package http

import (
	"net/http"

	"cleanspot-backend/internal/domain"

	"github.com/gorilla/mux"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Areas         *AreaHandler
	Points        *PointHandler
	Organizations *OrganizationHandler
	Subscriptions *SubscriptionHandler
	Events        *EventHandler
	Activity      *ActivityHandler
	ApiKeys       *ApiKeyHandler
}

// NewRouter wires all routes with their role requirements.
func NewRouter(h *Handlers, auth *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public: the signed token is the credential.
	v1.HandleFunc("/unsubscribe", h.Subscriptions.UnsubscribeByToken).Methods(http.MethodGet)

	// Membership-only checks happen inside the services.
	common := v1.NewRoute().Subrouter()
	common.Use(auth.Require(domain.GlobalRoleCommon))
	common.HandleFunc("/me", handleMe).Methods(http.MethodGet)
	common.HandleFunc("/organizations/{id:[0-9]+}", h.Organizations.Update).Methods(http.MethodPut)
	common.HandleFunc("/organizations/{id:[0-9]+}", h.Organizations.Delete).Methods(http.MethodDelete)
	common.HandleFunc("/organizations/{id:[0-9]+}/members", h.Organizations.AddMember).Methods(http.MethodPost)
	common.HandleFunc("/organizations/{id:[0-9]+}/members/{userId:[0-9]+}", h.Organizations.RemoveMember).Methods(http.MethodDelete)
	common.HandleFunc("/events", h.Events.Create).Methods(http.MethodPost)
	common.HandleFunc("/subscriptions", h.Subscriptions.Subscribe).Methods(http.MethodPost)
	common.HandleFunc("/subscriptions", h.Subscriptions.Unsubscribe).Methods(http.MethodDelete)

	// Any registered account.
	authed := v1.NewRoute().Subrouter()
	authed.Use(auth.Require(domain.GlobalRoleAuthenticated))
	authed.HandleFunc("/areas/{id:[0-9]+}", h.Areas.GetArea).Methods(http.MethodGet)
	authed.HandleFunc("/areas/{id:[0-9]+}/ancestors", h.Areas.GetAncestors).Methods(http.MethodGet)
	authed.HandleFunc("/areas/{id:[0-9]+}/activity", h.Activity.AreaActivity).Methods(http.MethodGet)
	authed.HandleFunc("/activity", h.Activity.UserActivity).Methods(http.MethodGet)
	authed.HandleFunc("/points", h.Points.Report).Methods(http.MethodPost)
	authed.HandleFunc("/points/{id:[0-9]+}", h.Points.Get).Methods(http.MethodGet)
	authed.HandleFunc("/points/{id:[0-9]+}/status", h.Points.UpdateStatus).Methods(http.MethodPut)
	authed.HandleFunc("/organizations", h.Organizations.Create).Methods(http.MethodPost)
	authed.HandleFunc("/organizations/{id:[0-9]+}", h.Organizations.Get).Methods(http.MethodGet)
	authed.HandleFunc("/events/{id:[0-9]+}/join", h.Events.Join).Methods(http.MethodPost)
	authed.HandleFunc("/events/{id:[0-9]+}/join", h.Events.Leave).Methods(http.MethodDelete)

	// Administrative.
	admin := v1.NewRoute().Subrouter()
	admin.Use(auth.Require(domain.GlobalRoleAdministrator))
	admin.HandleFunc("/apikeys", h.ApiKeys.Mint).Methods(http.MethodPost)

	return r
}

// handleMe returns the resolved session for the calling credential. Useful
// for clients to discover their roles after login.
func handleMe(w http.ResponseWriter, r *http.Request) {
	session, err := SessionFromContext(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}
