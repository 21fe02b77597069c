package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/repository"
	"sponsorship-backend/internal/service"
)

// SponsorshipHandler resolves request identities into domain entities and
// hands them to the lifecycle engine. Authorization decisions live in the
// engine; the handler only loads records and translates errors.
type SponsorshipHandler struct {
	sponsorships service.SponsorshipService
	sync         service.SyncService

	sponsorshipRepo repository.SponsorshipRepository
	orgRepo         repository.OrganizationRepository
	orgUserRepo     repository.OrgUserRepository

	selfHosted bool
}

func NewSponsorshipHandler(
	sponsorships service.SponsorshipService,
	sync service.SyncService,
	sponsorshipRepo repository.SponsorshipRepository,
	orgRepo repository.OrganizationRepository,
	orgUserRepo repository.OrgUserRepository,
	selfHosted bool,
) *SponsorshipHandler {
	return &SponsorshipHandler{
		sponsorships:    sponsorships,
		sync:            sync,
		sponsorshipRepo: sponsorshipRepo,
		orgRepo:         orgRepo,
		orgUserRepo:     orgUserRepo,
		selfHosted:      selfHosted,
	}
}

type offerRequest struct {
	PlanSponsorshipType domain.PlanSponsorshipType `json:"plan_sponsorship_type"`
	SponsoredEmail      string                     `json:"sponsored_email"`
	FriendlyName        string                     `json:"friendly_name"`
}

type redeemRequest struct {
	SponsoredOrganizationID uuid.UUID `json:"sponsored_organization_id"`
}

type validateTokenResponse struct {
	Valid bool `json:"valid"`
}

type syncStatusResponse struct {
	LastSyncDate *time.Time `json:"last_sync_date"`
}

func (h *SponsorshipHandler) Offer(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orgID, err := pathUUID(r, "sponsoringOrgID")
	if err != nil {
		writeError(w, err)
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Validation("invalid request body"))
		return
	}

	org, orgUser, err := h.resolveMembership(r, orgID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	sponsorship, err := h.sponsorships.OfferSponsorship(r.Context(), org, orgUser, req.PlanSponsorshipType, req.SponsoredEmail, req.FriendlyName, principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsorship)
}

func (h *SponsorshipHandler) Resend(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orgID, err := pathUUID(r, "sponsoringOrgID")
	if err != nil {
		writeError(w, err)
		return
	}

	org, orgUser, err := h.resolveMembership(r, orgID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	sponsorship, err := h.sponsorshipRepo.GetBySponsoringOrgUser(r.Context(), orgUser.ID)
	if err != nil {
		writeError(w, translateRepoErr(err, "sponsorship not found"))
		return
	}

	if err := h.sponsorships.ResendSponsorshipOffer(r.Context(), org, orgUser, sponsorship, principal.Email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SponsorshipHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	token := r.URL.Query().Get("sponsorshipToken")
	if token == "" {
		writeError(w, errors.Validation("sponsorshipToken is required"))
		return
	}

	valid, err := h.sponsorships.ValidateRedemptionToken(r.Context(), token, principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateTokenResponse{Valid: valid})
}

func (h *SponsorshipHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	token := r.URL.Query().Get("sponsorshipToken")
	if token == "" {
		writeError(w, errors.Validation("sponsorshipToken is required"))
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.Validation("invalid request body"))
		return
	}
	if req.SponsoredOrganizationID == uuid.Nil {
		writeError(w, errors.Validation("sponsored_organization_id is required"))
		return
	}

	valid, err := h.sponsorships.ValidateRedemptionToken(r.Context(), token, principal.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if !valid {
		writeError(w, errors.TokenInvalid("failed to parse sponsorship token"))
		return
	}

	// Redemption binds the sponsorship to an organization the caller owns.
	orgUser, err := h.orgUserRepo.GetByOrganization(r.Context(), req.SponsoredOrganizationID, principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, errors.Forbidden("can only redeem a sponsorship for an organization you own"))
			return
		}
		writeError(w, err)
		return
	}
	if orgUser.Type != domain.OrgUserTypeOwner {
		writeError(w, errors.Forbidden("can only redeem a sponsorship for an organization you own"))
		return
	}

	sponsoredOrg, err := h.orgRepo.GetByID(r.Context(), req.SponsoredOrganizationID)
	if err != nil {
		writeError(w, translateRepoErr(err, "organization not found"))
		return
	}

	sponsorship, err := h.sponsorshipRepo.GetByOfferedEmail(r.Context(), principal.Email)
	if err != nil {
		writeError(w, translateRepoErr(err, "no sponsorship offer found for this account"))
		return
	}

	if err := h.sponsorships.SetUpSponsorship(r.Context(), sponsorship, sponsoredOrg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SponsorshipHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orgID, err := pathUUID(r, "sponsoringOrgID")
	if err != nil {
		writeError(w, err)
		return
	}

	_, orgUser, err := h.resolveMembership(r, orgID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	sponsorship, err := h.sponsorshipRepo.GetBySponsoringOrgUser(r.Context(), orgUser.ID)
	if err != nil {
		writeError(w, translateRepoErr(err, "sponsorship not found"))
		return
	}

	if err := h.sponsorships.RevokeSponsorship(r.Context(), orgUser, sponsorship); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SponsorshipHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.requireCloud(); err != nil {
		writeError(w, err)
		return
	}
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orgID, err := pathUUID(r, "sponsoredOrgID")
	if err != nil {
		writeError(w, err)
		return
	}

	org, orgUser, err := h.resolveMembership(r, orgID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	sponsorship, err := h.sponsorshipRepo.GetBySponsoredOrg(r.Context(), orgID)
	if err != nil {
		writeError(w, translateRepoErr(err, "sponsorship not found"))
		return
	}

	if err := h.sponsorships.RemoveSponsorship(r.Context(), org, orgUser, sponsorship); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *SponsorshipHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	orgID, err := pathUUID(r, "sponsoringOrgID")
	if err != nil {
		writeError(w, err)
		return
	}

	org, orgUser, err := h.resolveMembership(r, orgID, principal.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	lastSync, err := h.sync.GetSyncStatus(r.Context(), org, orgUser)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, syncStatusResponse{LastSyncDate: lastSync})
}

// requireCloud rejects sponsorship mutations on self-hosted installs, which
// delegate lifecycle writes to the cloud instance via billing sync.
func (h *SponsorshipHandler) requireCloud() error {
	if h.selfHosted {
		return errors.Validation("sponsorships must be managed through the cloud instance")
	}
	return nil
}

func (h *SponsorshipHandler) resolveMembership(r *http.Request, orgID, userID uuid.UUID) (*domain.Organization, *domain.OrgUser, error) {
	org, err := h.orgRepo.GetByID(r.Context(), orgID)
	if err != nil {
		return nil, nil, translateRepoErr(err, "organization not found")
	}
	orgUser, err := h.orgUserRepo.GetByOrganization(r.Context(), orgID, userID)
	if err != nil {
		return nil, nil, translateRepoErr(err, "you are not a member of this organization")
	}
	return org, orgUser, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errors.Validationf("invalid %s", name)
	}
	return id, nil
}

func translateRepoErr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		if msg == "" {
			msg = "not found"
		}
		return errors.NotFound(msg)
	}
	return err
}
