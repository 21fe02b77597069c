package service

import (
	"context"
	"time"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/repository"
)

// The billing-sync handshake between installations is not implemented; this
// service only reports the last sync date and verifies sync keys for the
// gated endpoint.
type syncService struct {
	apiKeyRepo repository.OrganizationAPIKeyRepository
}

func NewSyncService(apiKeyRepo repository.OrganizationAPIKeyRepository) SyncService {
	return &syncService{apiKeyRepo: apiKeyRepo}
}

func (s *syncService) GetSyncStatus(ctx context.Context, org *domain.Organization, caller *domain.OrgUser) (*time.Time, error) {
	if org == nil {
		return nil, errors.NotFound("organization not found")
	}
	if caller == nil || caller.OrganizationID != org.ID || !caller.IsAtLeast(domain.OrgUserTypeOwner) {
		return nil, errors.Forbidden("only an organization owner can view sync status")
	}
	return org.BillingSyncLastAt, nil
}

func (s *syncService) CanUseSyncKey(ctx context.Context, org *domain.Organization, key string) (bool, error) {
	if org == nil {
		return false, errors.NotFound("organization not found")
	}
	ok, err := s.apiKeyRepo.GetCanUseByAPIKey(ctx, org.ID, key, domain.OrganizationAPIKeyTypeBillingSync)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, errors.Wrap(err, errors.CodeInternal, "failed to verify sync key")
	}
	return ok, nil
}
