package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/mail"
)

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

// MockAPIKeyRepo
type MockAPIKeyRepo struct {
	mock.Mock
}

func (m *MockAPIKeyRepo) GetCanUseByAPIKey(ctx context.Context, orgID uuid.UUID, key string, keyType domain.OrganizationAPIKeyType) (bool, error) {
	args := m.Called(ctx, orgID, key, keyType)
	return args.Bool(0), args.Error(1)
}

// recordingDispatcher captures enqueued messages; setting err simulates a
// full queue.
type recordingDispatcher struct {
	mu       sync.Mutex
	messages []mail.Message
	err      error
}

func (d *recordingDispatcher) Enqueue(ctx context.Context, msg mail.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, msg)
	return nil
}

func (d *recordingDispatcher) sent() []mail.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]mail.Message, len(d.messages))
	copy(out, d.messages)
	return out
}
