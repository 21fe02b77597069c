package postgres

import (
	"context"
	"database/sql"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/repository"

	"github.com/google/uuid"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, billing_email, plan_type, seats, max_autoscale_seats,
	                 owners_notified_of_autoscaling, billing_sync_last_at, created_at
	          FROM organizations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.BillingEmail,
		&o.PlanType, &o.Seats, &o.MaxAutoscaleSeats,
		&o.OwnersNotifiedOfAutoscaling, &o.BillingSyncLastAt, &o.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return o, nil
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE organizations SET name = $1, billing_email = $2, plan_type = $3,
	              seats = $4, max_autoscale_seats = $5, owners_notified_of_autoscaling = $6,
	              billing_sync_last_at = $7
	          WHERE id = $8`
	_, err := r.db.ExecContext(ctx, query, o.Name, o.BillingEmail, o.PlanType,
		o.Seats, o.MaxAutoscaleSeats, o.OwnersNotifiedOfAutoscaling, o.BillingSyncLastAt, o.ID)
	return mapError(err)
}
