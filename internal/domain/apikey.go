package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationAPIKeyType string

const (
	OrganizationAPIKeyTypeBillingSync OrganizationAPIKeyType = "BILLING_SYNC"
)

// OrganizationAPIKey authenticates installation-to-installation calls such as
// billing sync. Only the bcrypt hash of the key is stored.
type OrganizationAPIKey struct {
	ID             uuid.UUID              `json:"id"`
	OrganizationID uuid.UUID              `json:"organization_id"`
	Type           OrganizationAPIKeyType `json:"type"`
	KeyHash        string                 `json:"-"`
	CreatedAt      time.Time              `json:"created_at"`
}
