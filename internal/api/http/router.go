package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sponsorship-backend/internal/security"
)

// NewRouter wires the public auth endpoints and the authenticated sponsorship
// routes.
func NewRouter(auth *AuthHandler, sponsorships *SponsorshipHandler, tokens security.SessionTokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", auth.Refresh).Methods(http.MethodPost)

	api := r.PathPrefix("/organization/sponsorship").Subrouter()
	api.Use(AuthMiddleware(tokens))

	api.HandleFunc("/validate-token", sponsorships.ValidateToken).Methods(http.MethodPost)
	api.HandleFunc("/redeem", sponsorships.Redeem).Methods(http.MethodPost)
	api.HandleFunc("/sponsored/{sponsoredOrgID}", sponsorships.Remove).Methods(http.MethodDelete)
	api.HandleFunc("/{sponsoringOrgID}/families-for-enterprise", sponsorships.Offer).Methods(http.MethodPost)
	api.HandleFunc("/{sponsoringOrgID}/families-for-enterprise/resend", sponsorships.Resend).Methods(http.MethodPost)
	api.HandleFunc("/{sponsoringOrgID}/sync-status", sponsorships.SyncStatus).Methods(http.MethodGet)
	api.HandleFunc("/{sponsoringOrgID}", sponsorships.Revoke).Methods(http.MethodDelete)

	return r
}
