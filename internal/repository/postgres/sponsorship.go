package postgres

import (
	"context"
	"database/sql"
	"time"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/repository"

	"github.com/google/uuid"
)

type sponsorshipRepository struct {
	db *sql.DB
}

func NewSponsorshipRepository(db *sql.DB) repository.SponsorshipRepository {
	return &sponsorshipRepository{db: db}
}

const sponsorshipColumns = `id, sponsoring_organization_id, sponsoring_organization_user_id,
	sponsored_organization_id, offered_to_email, friendly_name, plan_sponsorship_type,
	status, token_expires_at, to_delete, created_at, updated_at`

func scanSponsorship(row *sql.Row) (*domain.Sponsorship, error) {
	s := &domain.Sponsorship{}
	err := row.Scan(&s.ID, &s.SponsoringOrganizationID, &s.SponsoringOrganizationUserID,
		&s.SponsoredOrganizationID, &s.OfferedToEmail, &s.FriendlyName, &s.PlanSponsorshipType,
		&s.Status, &s.TokenExpiresAt, &s.ToDelete, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return s, nil
}

// GetBySponsoringOrgUser only matches non-terminal rows: the uniqueness
// invariant makes that row unique per sponsoring member.
func (r *sponsorshipRepository) GetBySponsoringOrgUser(ctx context.Context, orgUserID uuid.UUID) (*domain.Sponsorship, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM organization_sponsorships
	          WHERE sponsoring_organization_user_id = $1 AND status NOT IN ('REVOKED', 'REMOVED')`
	return scanSponsorship(r.db.QueryRowContext(ctx, query, orgUserID))
}

func (r *sponsorshipRepository) GetByOfferedEmail(ctx context.Context, email string) (*domain.Sponsorship, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM organization_sponsorships
	          WHERE offered_to_email = $1 ORDER BY created_at DESC LIMIT 1`
	return scanSponsorship(r.db.QueryRowContext(ctx, query, email))
}

func (r *sponsorshipRepository) GetBySponsoredOrg(ctx context.Context, orgID uuid.UUID) (*domain.Sponsorship, error) {
	query := `SELECT ` + sponsorshipColumns + ` FROM organization_sponsorships
	          WHERE sponsored_organization_id = $1 AND status NOT IN ('REVOKED', 'REMOVED')`
	return scanSponsorship(r.db.QueryRowContext(ctx, query, orgID))
}

// Upsert writes the full record in one statement. The partial unique index on
// sponsoring_organization_user_id for non-terminal rows makes a duplicate
// offer surface as ErrConflict instead of a second row.
func (r *sponsorshipRepository) Upsert(ctx context.Context, s *domain.Sponsorship) error {
	query := `INSERT INTO organization_sponsorships (` + sponsorshipColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (id) DO UPDATE SET
	              sponsored_organization_id = EXCLUDED.sponsored_organization_id,
	              status = EXCLUDED.status,
	              token_expires_at = EXCLUDED.token_expires_at,
	              to_delete = EXCLUDED.to_delete,
	              updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.SponsoringOrganizationID, s.SponsoringOrganizationUserID,
		s.SponsoredOrganizationID, s.OfferedToEmail, s.FriendlyName, s.PlanSponsorshipType,
		s.Status, s.TokenExpiresAt, s.ToDelete, s.CreatedAt, s.UpdatedAt)
	return mapError(err)
}

func (r *sponsorshipRepository) DeleteMarked(ctx context.Context, updatedBefore time.Time) (int64, error) {
	query := `DELETE FROM organization_sponsorships
	          WHERE to_delete = TRUE AND status IN ('REVOKED', 'REMOVED') AND updated_at < $1`
	res, err := r.db.ExecContext(ctx, query, updatedBefore)
	if err != nil {
		return 0, mapError(err)
	}
	return res.RowsAffected()
}
