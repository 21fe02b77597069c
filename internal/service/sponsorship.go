package service

import (
	"context"
	"time"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/mail"
	"sponsorship-backend/internal/repository"
	"sponsorship-backend/internal/security"

	"github.com/google/uuid"
)

type sponsorshipService struct {
	sponsorshipRepo repository.SponsorshipRepository
	tokenCodec      security.RedemptionTokenCodec
	notifier        *sponsorshipNotifier
	tokenTTL        time.Duration
	selfHosted      bool
}

func NewSponsorshipService(
	sponsorshipRepo repository.SponsorshipRepository,
	orgUserRepo repository.OrgUserRepository,
	tokenCodec security.RedemptionTokenCodec,
	dispatcher mail.Dispatcher,
	baseURL string,
	tokenTTL time.Duration,
	selfHosted bool,
) SponsorshipService {
	return &sponsorshipService{
		sponsorshipRepo: sponsorshipRepo,
		tokenCodec:      tokenCodec,
		notifier: &sponsorshipNotifier{
			dispatcher:  dispatcher,
			orgUserRepo: orgUserRepo,
			baseURL:     baseURL,
		},
		tokenTTL:   tokenTTL,
		selfHosted: selfHosted,
	}
}

// OfferSponsorship creates a sponsorship in Offered state, mints a redemption
// token, and queues the invite mail. The notification is attempted before
// returning but never rolls back the persisted offer.
func (s *sponsorshipService) OfferSponsorship(ctx context.Context, sponsoringOrg *domain.Organization, sponsoringOrgUser *domain.OrgUser, planType domain.PlanSponsorshipType, sponsoredEmail, friendlyName, sponsorEmail string) (*domain.Sponsorship, error) {
	if sponsoringOrg == nil {
		return nil, errors.NotFound("sponsoring organization not found")
	}
	if sponsoringOrgUser == nil {
		return nil, errors.NotFound("sponsoring organization member not found")
	}
	if sponsoringOrgUser.OrganizationID != sponsoringOrg.ID {
		return nil, errors.Forbidden("member does not belong to the sponsoring organization")
	}
	if s.selfHosted || !sponsoringOrg.CanSponsor() {
		return nil, errors.Validation("specified organization cannot sponsor other organizations")
	}
	if sponsoredEmail == "" {
		return nil, errors.Validation("sponsored email is required")
	}

	existing, err := s.sponsorshipRepo.GetBySponsoringOrgUser(ctx, sponsoringOrgUser.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to look up existing sponsorship")
	}
	if existing != nil {
		return nil, errors.Conflict("member already has an active sponsorship")
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	sponsorship := &domain.Sponsorship{
		ID:                           uuid.New(),
		SponsoringOrganizationID:     sponsoringOrg.ID,
		SponsoringOrganizationUserID: sponsoringOrgUser.ID,
		OfferedToEmail:               sponsoredEmail,
		FriendlyName:                 friendlyName,
		PlanSponsorshipType:          planType,
		Status:                       domain.SponsorshipStatusOffered,
		TokenExpiresAt:               &expiresAt,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}

	if err := s.sponsorshipRepo.Upsert(ctx, sponsorship); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, errors.Conflict("member already has an active sponsorship")
		}
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to persist sponsorship")
	}

	s.sendOffer(ctx, EventSponsorshipOffered, sponsorship, sponsoringOrg.Name, sponsorEmail, expiresAt)
	return sponsorship, nil
}

// ResendSponsorshipOffer re-mints the token on an existing pending offer and
// re-queues the invite. Identity, recipient, and plan type never change.
func (s *sponsorshipService) ResendSponsorshipOffer(ctx context.Context, sponsoringOrg *domain.Organization, sponsoringOrgUser *domain.OrgUser, sponsorship *domain.Sponsorship, sponsorEmail string) error {
	if sponsorship == nil {
		return errors.NotFound("no pending sponsorship offer found for this member")
	}
	if sponsoringOrg == nil || sponsoringOrgUser == nil {
		return errors.NotFound("sponsoring organization or member not found")
	}
	if sponsorship.SponsoringOrganizationUserID != sponsoringOrgUser.ID {
		return errors.Forbidden("sponsorship was granted by a different member")
	}
	if sponsorship.IsTerminal() {
		return errors.Validation("sponsorship has been terminated")
	}
	if sponsorship.IsRedeemed() {
		return errors.Validation("sponsorship has already been redeemed")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	sponsorship.TokenExpiresAt = &expiresAt
	sponsorship.Status = domain.SponsorshipStatusResent
	sponsorship.UpdatedAt = time.Now()

	if err := s.sponsorshipRepo.Upsert(ctx, sponsorship); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errors.Conflict("sponsorship was modified concurrently")
		}
		return errors.Wrap(err, errors.CodeInternal, "failed to persist sponsorship")
	}

	s.sendOffer(ctx, EventSponsorshipResent, sponsorship, sponsoringOrg.Name, sponsorEmail, expiresAt)
	return nil
}

// ValidateRedemptionToken checks a token against its pending sponsorship
// without mutating state. Token-level failures surface as typed errors so the
// caller can distinguish an expired token (resend flow) from a forged one;
// record-level mismatches yield false.
func (s *sponsorshipService) ValidateRedemptionToken(ctx context.Context, token, currentUserEmail string) (bool, error) {
	claims, err := s.tokenCodec.Decode(token)
	if err != nil {
		if errors.Is(err, security.ErrExpiredToken) {
			return false, errors.TokenExpired("sponsorship token has expired")
		}
		return false, errors.TokenInvalid("failed to parse sponsorship token")
	}

	if claims.Email != currentUserEmail {
		return false, nil
	}

	sponsorship, err := s.sponsorshipRepo.GetByOfferedEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.CodeInternal, "failed to look up sponsorship")
	}

	if sponsorship.ID.String() != claims.SponsorshipID {
		return false, nil
	}
	if !sponsorship.IsPendingOffer() || sponsorship.IsRedeemed() {
		return false, nil
	}
	return true, nil
}

// SetUpSponsorship finalizes redemption: binds the sponsored organization,
// activates the record, and invalidates the token. Not re-entrant.
func (s *sponsorshipService) SetUpSponsorship(ctx context.Context, sponsorship *domain.Sponsorship, sponsoredOrg *domain.Organization) error {
	if sponsorship == nil {
		return errors.NotFound("no applicable sponsorship offer found")
	}
	if sponsoredOrg == nil {
		return errors.NotFound("sponsored organization not found")
	}
	if sponsorship.IsTerminal() {
		return errors.Validation("sponsorship has been terminated")
	}
	if sponsorship.IsRedeemed() {
		return errors.Validation("sponsorship has already been redeemed")
	}

	orgID := sponsoredOrg.ID
	sponsorship.SponsoredOrganizationID = &orgID
	sponsorship.Status = domain.SponsorshipStatusActive
	sponsorship.TokenExpiresAt = nil
	sponsorship.UpdatedAt = time.Now()

	if err := s.sponsorshipRepo.Upsert(ctx, sponsorship); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errors.Conflict("sponsorship was redeemed concurrently")
		}
		return errors.Wrap(err, errors.CodeInternal, "failed to persist sponsorship")
	}

	s.notifier.notify(ctx, EventSponsorshipRedeemed, NotificationInput{
		Sponsorship:      sponsorship,
		SponsoredOrgName: sponsoredOrg.Name,
		AdminEmails:      s.notifier.adminEmails(ctx, sponsorship.SponsoringOrganizationID),
	})
	return nil
}

// RevokeSponsorship is the sponsor-initiated termination. Allowed from any
// non-terminal state; only the member who granted the offer may revoke it.
func (s *sponsorshipService) RevokeSponsorship(ctx context.Context, sponsoringOrgUser *domain.OrgUser, sponsorship *domain.Sponsorship) error {
	if sponsorship == nil {
		return errors.NotFound("sponsorship not found")
	}
	if sponsoringOrgUser == nil || sponsorship.SponsoringOrganizationUserID != sponsoringOrgUser.ID {
		return errors.Forbidden("only the member who granted a sponsorship can revoke it")
	}
	if sponsorship.IsTerminal() {
		return errors.Validation("sponsorship has already been terminated")
	}

	sponsorship.Status = domain.SponsorshipStatusRevoked
	sponsorship.ToDelete = true
	sponsorship.TokenExpiresAt = nil
	sponsorship.UpdatedAt = time.Now()

	if err := s.sponsorshipRepo.Upsert(ctx, sponsorship); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errors.Conflict("sponsorship was modified concurrently")
		}
		return errors.Wrap(err, errors.CodeInternal, "failed to persist sponsorship")
	}

	s.notifier.notify(ctx, EventSponsorshipRevoked, NotificationInput{Sponsorship: sponsorship})
	return nil
}

// RemoveSponsorship is the sponsored-side opt-out. Only valid on an active
// sponsorship, and only for an owner of the sponsored organization.
func (s *sponsorshipService) RemoveSponsorship(ctx context.Context, sponsoredOrg *domain.Organization, caller *domain.OrgUser, sponsorship *domain.Sponsorship) error {
	if sponsorship == nil {
		return errors.NotFound("sponsorship not found")
	}
	if sponsoredOrg == nil {
		return errors.NotFound("sponsored organization not found")
	}
	if caller == nil || caller.OrganizationID != sponsoredOrg.ID || !caller.IsAtLeast(domain.OrgUserTypeOwner) {
		return errors.Forbidden("only an owner of the sponsored organization can remove its sponsorship")
	}
	if sponsorship.IsTerminal() {
		return errors.Validation("sponsorship has already been terminated")
	}
	if sponsorship.SponsoredOrganizationID == nil || *sponsorship.SponsoredOrganizationID != sponsoredOrg.ID {
		return errors.Validation("sponsorship is not bound to this organization")
	}

	sponsorship.Status = domain.SponsorshipStatusRemoved
	sponsorship.ToDelete = true
	sponsorship.TokenExpiresAt = nil
	sponsorship.UpdatedAt = time.Now()

	if err := s.sponsorshipRepo.Upsert(ctx, sponsorship); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return errors.Conflict("sponsorship was modified concurrently")
		}
		return errors.Wrap(err, errors.CodeInternal, "failed to persist sponsorship")
	}

	s.notifier.notify(ctx, EventSponsorshipRemoved, NotificationInput{
		Sponsorship: sponsorship,
		AdminEmails: s.notifier.adminEmails(ctx, sponsorship.SponsoringOrganizationID),
	})
	return nil
}

// sendOffer mints the invite token and queues the invite mail. The record is
// already persisted at this point, so encoding and enqueue failures downgrade
// to logs rather than command failures.
func (s *sponsorshipService) sendOffer(ctx context.Context, event LifecycleEvent, sponsorship *domain.Sponsorship, orgName, sponsorEmail string, expiresAt time.Time) {
	token, err := s.tokenCodec.Encode(sponsorship.OfferedToEmail, sponsorship.ID.String(), string(sponsorship.PlanSponsorshipType), time.Until(expiresAt))
	if err != nil {
		s.notifier.logTokenFailure(ctx, sponsorship, err)
		return
	}
	s.notifier.notify(ctx, event, NotificationInput{
		Sponsorship:       sponsorship,
		SponsoringOrgName: orgName,
		SponsorEmail:      sponsorEmail,
		Token:             token,
		TokenExpiresAt:    expiresAt,
	})
}
