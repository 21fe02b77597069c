package domain

import (
	"time"

	"github.com/google/uuid"
)

type SponsorshipStatus string

const (
	SponsorshipStatusOffered SponsorshipStatus = "OFFERED"
	SponsorshipStatusResent  SponsorshipStatus = "RESENT"
	SponsorshipStatusActive  SponsorshipStatus = "ACTIVE"
	SponsorshipStatusRevoked SponsorshipStatus = "REVOKED"
	SponsorshipStatusRemoved SponsorshipStatus = "REMOVED"
)

type PlanSponsorshipType string

const (
	PlanSponsorshipTypeFamiliesForEnterprise PlanSponsorshipType = "FAMILIES_FOR_ENTERPRISE"
)

// Sponsorship is the record of an offered/active/terminated discount
// relationship between a sponsoring and a sponsored organization. The
// sponsoring member is the uniqueness anchor: at most one non-terminal
// sponsorship may exist per sponsoring org user.
type Sponsorship struct {
	ID                           uuid.UUID           `json:"id"`
	SponsoringOrganizationID     uuid.UUID           `json:"sponsoring_organization_id"`
	SponsoringOrganizationUserID uuid.UUID           `json:"sponsoring_organization_user_id"`
	SponsoredOrganizationID      *uuid.UUID          `json:"sponsored_organization_id,omitempty"`
	OfferedToEmail               string              `json:"offered_to_email"`
	FriendlyName                 string              `json:"friendly_name"`
	PlanSponsorshipType          PlanSponsorshipType `json:"plan_sponsorship_type"`
	Status                       SponsorshipStatus   `json:"status"`
	TokenExpiresAt               *time.Time          `json:"token_expires_at,omitempty"`
	ToDelete                     bool                `json:"to_delete"`
	CreatedAt                    time.Time           `json:"created_at"`
	UpdatedAt                    time.Time           `json:"updated_at"`
}

// IsTerminal reports whether the sponsorship reached a state no transition
// leaves.
func (s *Sponsorship) IsTerminal() bool {
	return s.Status == SponsorshipStatusRevoked || s.Status == SponsorshipStatusRemoved
}

// IsRedeemed reports whether the offer was bound to a sponsored organization.
// Holds exactly when the sponsorship is or was Active.
func (s *Sponsorship) IsRedeemed() bool {
	return s.SponsoredOrganizationID != nil
}

// IsPendingOffer reports whether the record still awaits redemption.
func (s *Sponsorship) IsPendingOffer() bool {
	return s.Status == SponsorshipStatusOffered || s.Status == SponsorshipStatusResent
}
