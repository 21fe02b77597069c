package domain

import (
	"time"

	"github.com/google/uuid"
)

type PlanType string

const (
	PlanTypeFree               PlanType = "FREE"
	PlanTypeFamilies           PlanType = "FAMILIES"
	PlanTypeTeamsMonthly       PlanType = "TEAMS_MONTHLY"
	PlanTypeTeamsAnnually      PlanType = "TEAMS_ANNUALLY"
	PlanTypeEnterpriseMonthly  PlanType = "ENTERPRISE_MONTHLY"
	PlanTypeEnterpriseAnnually PlanType = "ENTERPRISE_ANNUALLY"
)

type ProductTier string

const (
	ProductTierFree       ProductTier = "FREE"
	ProductTierFamilies   ProductTier = "FAMILIES"
	ProductTierTeams      ProductTier = "TEAMS"
	ProductTierEnterprise ProductTier = "ENTERPRISE"
)

// Product returns the product tier a plan belongs to.
func (p PlanType) Product() ProductTier {
	switch p {
	case PlanTypeFamilies:
		return ProductTierFamilies
	case PlanTypeTeamsMonthly, PlanTypeTeamsAnnually:
		return ProductTierTeams
	case PlanTypeEnterpriseMonthly, PlanTypeEnterpriseAnnually:
		return ProductTierEnterprise
	default:
		return ProductTierFree
	}
}

type Organization struct {
	ID                          uuid.UUID  `json:"id"`
	Name                        string     `json:"name"`
	BillingEmail                string     `json:"billing_email"`
	PlanType                    PlanType   `json:"plan_type"`
	Seats                       *int32     `json:"seats,omitempty"`
	MaxAutoscaleSeats           *int32     `json:"max_autoscale_seats,omitempty"`
	OwnersNotifiedOfAutoscaling *time.Time `json:"owners_notified_of_autoscaling,omitempty"`
	BillingSyncLastAt           *time.Time `json:"billing_sync_last_at,omitempty"`
	CreatedAt                   time.Time  `json:"created_at"`
}

// CanSponsor reports plan-level sponsorship eligibility. Self-hosted
// deployments are excluded by the caller, which knows the deployment mode.
func (o *Organization) CanSponsor() bool {
	return o.PlanType.Product() == ProductTierEnterprise
}
