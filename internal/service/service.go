package service

import (
	"context"
	"time"

	"sponsorship-backend/internal/domain"
)

// SponsorshipService is the sponsorship lifecycle engine. Every operation
// takes already-resolved entities, validates the transition, writes the
// record in one atomic upsert, and queues the matching notification. Typed
// errors propagate to the boundary layer untouched.
type SponsorshipService interface {
	OfferSponsorship(ctx context.Context, sponsoringOrg *domain.Organization, sponsoringOrgUser *domain.OrgUser, planType domain.PlanSponsorshipType, sponsoredEmail, friendlyName, sponsorEmail string) (*domain.Sponsorship, error)
	ResendSponsorshipOffer(ctx context.Context, sponsoringOrg *domain.Organization, sponsoringOrgUser *domain.OrgUser, sponsorship *domain.Sponsorship, sponsorEmail string) error
	ValidateRedemptionToken(ctx context.Context, token, currentUserEmail string) (bool, error)
	SetUpSponsorship(ctx context.Context, sponsorship *domain.Sponsorship, sponsoredOrg *domain.Organization) error
	RevokeSponsorship(ctx context.Context, sponsoringOrgUser *domain.OrgUser, sponsorship *domain.Sponsorship) error
	RemoveSponsorship(ctx context.Context, sponsoredOrg *domain.Organization, caller *domain.OrgUser, sponsorship *domain.Sponsorship) error
}

// AuthService backs the HTTP boundary's session identity.
type AuthService interface {
	Login(ctx context.Context, email, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (access, refresh string, err error)
}

// SyncService exposes billing-sync status to sponsoring org owners.
type SyncService interface {
	GetSyncStatus(ctx context.Context, org *domain.Organization, caller *domain.OrgUser) (*time.Time, error)
	CanUseSyncKey(ctx context.Context, org *domain.Organization, key string) (bool, error)
}

// OrgMailer sends organization-level notifications outside the sponsorship
// lifecycle, such as the seat autoscaling hook.
type OrgMailer interface {
	NotifySeatsAutoscaled(ctx context.Context, org *domain.Organization, initialSeats int32) error
	NotifySeatLimitReached(ctx context.Context, org *domain.Organization, maxSeats int32) error
}
