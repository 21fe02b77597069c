package postgres

import (
	"database/sql"
	"errors"

	"sponsorship-backend/internal/repository"

	"github.com/lib/pq"
)

// Store aggregates the Postgres repositories behind one wiring point.
type Store struct {
	db *sql.DB
	repository.SponsorshipRepository
	repository.OrganizationRepository
	repository.OrgUserRepository
	repository.UserRepository
	repository.OrganizationAPIKeyRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                           db,
		SponsorshipRepository:        NewSponsorshipRepository(db),
		OrganizationRepository:       NewOrganizationRepository(db),
		OrgUserRepository:            NewOrgUserRepository(db),
		UserRepository:               NewUserRepository(db),
		OrganizationAPIKeyRepository: NewOrganizationAPIKeyRepository(db),
	}
}

const uniqueViolation = "23505"

// mapError translates driver errors into the repository sentinels so the
// service layer can tell a uniqueness conflict from a missing row.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return err
}
