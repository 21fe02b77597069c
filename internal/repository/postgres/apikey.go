package postgres

import (
	"context"
	"database/sql"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type organizationAPIKeyRepository struct {
	db *sql.DB
}

func NewOrganizationAPIKeyRepository(db *sql.DB) repository.OrganizationAPIKeyRepository {
	return &organizationAPIKeyRepository{db: db}
}

// GetCanUseByAPIKey checks the presented key against the stored bcrypt hash.
// A missing key row reads as not-found so callers can distinguish "no key
// configured" from "wrong key".
func (r *organizationAPIKeyRepository) GetCanUseByAPIKey(ctx context.Context, orgID uuid.UUID, key string, keyType domain.OrganizationAPIKeyType) (bool, error) {
	var keyHash string
	query := `SELECT key_hash FROM organization_api_keys
	          WHERE organization_id = $1 AND type = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, keyType).Scan(&keyHash)
	if err != nil {
		return false, mapError(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
		return false, nil
	}
	return true, nil
}
