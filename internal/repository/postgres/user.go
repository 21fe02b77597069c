package postgres

import (
	"context"
	"database/sql"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

type orgUserRepository struct {
	db *sql.DB
}

func NewOrgUserRepository(db *sql.DB) repository.OrgUserRepository {
	return &orgUserRepository{db: db}
}

func (r *orgUserRepository) GetByOrganization(ctx context.Context, orgID, userID uuid.UUID) (*domain.OrgUser, error) {
	ou := &domain.OrgUser{}
	query := `SELECT ou.id, ou.organization_id, ou.user_id, u.email, ou.type, ou.joined_at
	          FROM organization_users ou
	          JOIN users u ON u.id = ou.user_id
	          WHERE ou.organization_id = $1 AND ou.user_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(
		&ou.ID, &ou.OrganizationID, &ou.UserID, &ou.Email, &ou.Type, &ou.JoinedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return ou, nil
}

func (r *orgUserRepository) ListEmailsByMinimumRole(ctx context.Context, orgID uuid.UUID, minRole domain.OrgUserType) ([]string, error) {
	roles := []string{string(domain.OrgUserTypeOwner)}
	if minRole == domain.OrgUserTypeAdmin {
		roles = append(roles, string(domain.OrgUserTypeAdmin))
	} else if minRole == domain.OrgUserTypeUser {
		roles = append(roles, string(domain.OrgUserTypeAdmin), string(domain.OrgUserTypeUser))
	}

	query := `SELECT DISTINCT u.email
	          FROM organization_users ou
	          JOIN users u ON u.id = ou.user_id
	          WHERE ou.organization_id = $1 AND ou.type = ANY($2)`
	rows, err := r.db.QueryContext(ctx, query, orgID, pq.Array(roles))
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, mapError(err)
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
