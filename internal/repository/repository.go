package repository

import (
	"context"
	"errors"
	"time"

	"sponsorship-backend/internal/domain"

	"github.com/google/uuid"
)

// Storage-level signals the service layer translates into its own taxonomy.
// Conflict must stay distinguishable from not-found: the uniqueness invariant
// on sponsoring org users is enforced by the database.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing row")
)

type SponsorshipRepository interface {
	// GetBySponsoringOrgUser returns the single non-terminal sponsorship
	// granted by the given membership, or ErrNotFound.
	GetBySponsoringOrgUser(ctx context.Context, orgUserID uuid.UUID) (*domain.Sponsorship, error)
	GetByOfferedEmail(ctx context.Context, email string) (*domain.Sponsorship, error)
	GetBySponsoredOrg(ctx context.Context, orgID uuid.UUID) (*domain.Sponsorship, error)
	// Upsert inserts or updates atomically. Returns ErrConflict when the
	// partial uniqueness constraint on non-terminal sponsorships per
	// sponsoring org user is violated.
	Upsert(ctx context.Context, s *domain.Sponsorship) error
	// DeleteMarked purges terminal rows flagged to_delete whose last update
	// is older than the cutoff. Used by the cleanup job, not the engine.
	DeleteMarked(ctx context.Context, updatedBefore time.Time) (int64, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

type OrgUserRepository interface {
	// GetByOrganization returns the membership of the given user in the given
	// organization, or ErrNotFound.
	GetByOrganization(ctx context.Context, orgID, userID uuid.UUID) (*domain.OrgUser, error)
	// ListEmailsByMinimumRole returns distinct member emails holding the
	// given role or higher.
	ListEmailsByMinimumRole(ctx context.Context, orgID uuid.UUID, minRole domain.OrgUserType) ([]string, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type OrganizationAPIKeyRepository interface {
	// GetCanUseByAPIKey verifies the presented key against the stored hash
	// for the organization and key type.
	GetCanUseByAPIKey(ctx context.Context, orgID uuid.UUID, key string, keyType domain.OrganizationAPIKeyType) (bool, error)
}
