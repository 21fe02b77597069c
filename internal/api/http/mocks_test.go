package http_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sponsorship-backend/internal/domain"
)

// MockSponsorshipService
type MockSponsorshipService struct {
	mock.Mock
}

func (m *MockSponsorshipService) OfferSponsorship(ctx context.Context, org *domain.Organization, orgUser *domain.OrgUser, planType domain.PlanSponsorshipType, sponsoredEmail, friendlyName, sponsorEmail string) (*domain.Sponsorship, error) {
	args := m.Called(ctx, org, orgUser, planType, sponsoredEmail, friendlyName, sponsorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sponsorship), args.Error(1)
}
func (m *MockSponsorshipService) ResendSponsorshipOffer(ctx context.Context, org *domain.Organization, orgUser *domain.OrgUser, sponsorship *domain.Sponsorship, sponsorEmail string) error {
	args := m.Called(ctx, org, orgUser, sponsorship, sponsorEmail)
	return args.Error(0)
}
func (m *MockSponsorshipService) ValidateRedemptionToken(ctx context.Context, token, currentUserEmail string) (bool, error) {
	args := m.Called(ctx, token, currentUserEmail)
	return args.Bool(0), args.Error(1)
}
func (m *MockSponsorshipService) SetUpSponsorship(ctx context.Context, sponsorship *domain.Sponsorship, sponsoredOrg *domain.Organization) error {
	args := m.Called(ctx, sponsorship, sponsoredOrg)
	return args.Error(0)
}
func (m *MockSponsorshipService) RevokeSponsorship(ctx context.Context, orgUser *domain.OrgUser, sponsorship *domain.Sponsorship) error {
	args := m.Called(ctx, orgUser, sponsorship)
	return args.Error(0)
}
func (m *MockSponsorshipService) RemoveSponsorship(ctx context.Context, sponsoredOrg *domain.Organization, caller *domain.OrgUser, sponsorship *domain.Sponsorship) error {
	args := m.Called(ctx, sponsoredOrg, caller, sponsorship)
	return args.Error(0)
}

// MockSyncService
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) GetSyncStatus(ctx context.Context, org *domain.Organization, caller *domain.OrgUser) (*time.Time, error) {
	args := m.Called(ctx, org, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
func (m *MockSyncService) CanUseSyncKey(ctx context.Context, org *domain.Organization, key string) (bool, error) {
	args := m.Called(ctx, org, key)
	return args.Bool(0), args.Error(1)
}

// MockSponsorshipRepo
type MockSponsorshipRepo struct {
	mock.Mock
}

func (m *MockSponsorshipRepo) GetBySponsoringOrgUser(ctx context.Context, orgUserID uuid.UUID) (*domain.Sponsorship, error) {
	args := m.Called(ctx, orgUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sponsorship), args.Error(1)
}
func (m *MockSponsorshipRepo) GetByOfferedEmail(ctx context.Context, email string) (*domain.Sponsorship, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sponsorship), args.Error(1)
}
func (m *MockSponsorshipRepo) GetBySponsoredOrg(ctx context.Context, orgID uuid.UUID) (*domain.Sponsorship, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sponsorship), args.Error(1)
}
func (m *MockSponsorshipRepo) Upsert(ctx context.Context, s *domain.Sponsorship) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSponsorshipRepo) DeleteMarked(ctx context.Context, updatedBefore time.Time) (int64, error) {
	args := m.Called(ctx, updatedBefore)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrgRepo
type MockOrgRepo struct {
	mock.Mock
}

func (m *MockOrgRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockOrgUserRepo
type MockOrgUserRepo struct {
	mock.Mock
}

func (m *MockOrgUserRepo) GetByOrganization(ctx context.Context, orgID, userID uuid.UUID) (*domain.OrgUser, error) {
	args := m.Called(ctx, orgID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgUser), args.Error(1)
}
func (m *MockOrgUserRepo) ListEmailsByMinimumRole(ctx context.Context, orgID uuid.UUID, minRole domain.OrgUserType) ([]string, error) {
	args := m.Called(ctx, orgID, minRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
