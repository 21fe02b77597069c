package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpapi "sponsorship-backend/internal/api/http"
	"sponsorship-backend/internal/domain"
	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/repository"
	"sponsorship-backend/internal/security"
	"sponsorship-backend/internal/service"
)

type handlerFixture struct {
	sponsorships *MockSponsorshipService
	sync         *MockSyncService
	repo         *MockSponsorshipRepo
	orgs         *MockOrgRepo
	orgUsers     *MockOrgUserRepo
	tokens       security.SessionTokenManager
	server       *httptest.Server

	userID uuid.UUID
	email  string
	bearer string
}

func newHandlerFixture(t *testing.T, selfHosted bool) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		sponsorships: new(MockSponsorshipService),
		sync:         new(MockSyncService),
		repo:         new(MockSponsorshipRepo),
		orgs:         new(MockOrgRepo),
		orgUsers:     new(MockOrgUserRepo),
		tokens:       security.NewSessionTokenManager("test-secret-for-token-codecs-0123456789", time.Hour, 24*time.Hour),
		userID:       uuid.New(),
		email:        "caller@example.com",
	}

	access, err := f.tokens.GenerateAccessToken(f.userID, f.email)
	if err != nil {
		t.Fatalf("failed to mint access token: %v", err)
	}
	f.bearer = "Bearer " + access

	handler := httpapi.NewSponsorshipHandler(f.sponsorships, f.sync, f.repo, f.orgs, f.orgUsers, selfHosted)
	auth := httpapi.NewAuthHandler(service.NewAuthService(new(MockUserRepo), f.tokens))
	router := httpapi.NewRouter(auth, handler, f.tokens)

	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, f.server.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Authorization", f.bearer)
	resp, err := f.server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *handlerFixture) stubMembership(org *domain.Organization, orgUser *domain.OrgUser) {
	f.orgs.On("GetByID", mock.Anything, org.ID).Return(org, nil)
	f.orgUsers.On("GetByOrganization", mock.Anything, org.ID, f.userID).Return(orgUser, nil)
}

func TestSponsorshipRoutes_RequireAuth(t *testing.T) {
	f := newHandlerFixture(t, false)

	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/organization/sponsorship/redeem?sponsorshipToken=x", strings.NewReader("{}"))
	assert.NoError(t, err)

	resp, err := f.server.Client().Do(req)
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOffer_ErrorMapping(t *testing.T) {
	f := newHandlerFixture(t, false)
	org := &domain.Organization{ID: uuid.New(), Name: "Acme Corp", PlanType: domain.PlanTypeEnterpriseAnnually}
	orgUser := &domain.OrgUser{ID: uuid.New(), OrganizationID: org.ID, UserID: f.userID}
	f.stubMembership(org, orgUser)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"Conflict", errors.Conflict("member already has an active sponsorship"), http.StatusConflict},
		{"Validation", errors.Validation("specified organization cannot sponsor other organizations"), http.StatusBadRequest},
		{"Forbidden", errors.Forbidden("member does not belong to the sponsoring organization"), http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.sponsorships.On("OfferSponsorship", mock.Anything, org, orgUser,
				domain.PlanSponsorshipTypeFamiliesForEnterprise, "family@example.com", "Jan", f.email).
				Return(nil, tc.err).Once()

			resp := f.do(t, http.MethodPost,
				"/organization/sponsorship/"+org.ID.String()+"/families-for-enterprise",
				`{"plan_sponsorship_type":"FAMILIES_FOR_ENTERPRISE","sponsored_email":"family@example.com","friendly_name":"Jan"}`)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestOffer_Success(t *testing.T) {
	f := newHandlerFixture(t, false)
	org := &domain.Organization{ID: uuid.New(), Name: "Acme Corp", PlanType: domain.PlanTypeEnterpriseAnnually}
	orgUser := &domain.OrgUser{ID: uuid.New(), OrganizationID: org.ID, UserID: f.userID}
	f.stubMembership(org, orgUser)

	created := &domain.Sponsorship{ID: uuid.New(), Status: domain.SponsorshipStatusOffered, OfferedToEmail: "family@example.com"}
	f.sponsorships.On("OfferSponsorship", mock.Anything, org, orgUser,
		domain.PlanSponsorshipTypeFamiliesForEnterprise, "family@example.com", "Jan", f.email).
		Return(created, nil).Once()

	resp := f.do(t, http.MethodPost,
		"/organization/sponsorship/"+org.ID.String()+"/families-for-enterprise",
		`{"plan_sponsorship_type":"FAMILIES_FOR_ENTERPRISE","sponsored_email":"family@example.com","friendly_name":"Jan"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.Sponsorship
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.SponsorshipStatusOffered, got.Status)
}

func TestOffer_SelfHostedRejected(t *testing.T) {
	f := newHandlerFixture(t, true)

	resp := f.do(t, http.MethodPost,
		"/organization/sponsorship/"+uuid.New().String()+"/families-for-enterprise",
		`{"plan_sponsorship_type":"FAMILIES_FOR_ENTERPRISE","sponsored_email":"family@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	f.sponsorships.AssertNotCalled(t, "OfferSponsorship")
}

func TestOffer_BadOrgID(t *testing.T) {
	f := newHandlerFixture(t, false)

	resp := f.do(t, http.MethodPost,
		"/organization/sponsorship/not-a-uuid/families-for-enterprise", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateToken(t *testing.T) {
	f := newHandlerFixture(t, false)

	t.Run("Valid", func(t *testing.T) {
		f.sponsorships.On("ValidateRedemptionToken", mock.Anything, "tok", f.email).Return(true, nil).Once()

		resp := f.do(t, http.MethodPost, "/organization/sponsorship/validate-token?sponsorshipToken=tok", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]bool
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body["valid"])
	})

	t.Run("Expired", func(t *testing.T) {
		f.sponsorships.On("ValidateRedemptionToken", mock.Anything, "old", f.email).
			Return(false, errors.TokenExpired("sponsorship token has expired")).Once()

		resp := f.do(t, http.MethodPost, "/organization/sponsorship/validate-token?sponsorshipToken=old", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("MissingToken", func(t *testing.T) {
		resp := f.do(t, http.MethodPost, "/organization/sponsorship/validate-token", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRedeem(t *testing.T) {
	f := newHandlerFixture(t, false)
	sponsored := &domain.Organization{ID: uuid.New(), Name: "Family Org"}
	owner := &domain.OrgUser{ID: uuid.New(), OrganizationID: sponsored.ID, UserID: f.userID, Type: domain.OrgUserTypeOwner}
	sp := &domain.Sponsorship{ID: uuid.New(), OfferedToEmail: f.email, Status: domain.SponsorshipStatusOffered}
	body := fmt.Sprintf(`{"sponsored_organization_id":%q}`, sponsored.ID)

	t.Run("Success", func(t *testing.T) {
		f.sponsorships.On("ValidateRedemptionToken", mock.Anything, "tok", f.email).Return(true, nil).Once()
		f.orgUsers.On("GetByOrganization", mock.Anything, sponsored.ID, f.userID).Return(owner, nil).Once()
		f.orgs.On("GetByID", mock.Anything, sponsored.ID).Return(sponsored, nil).Once()
		f.repo.On("GetByOfferedEmail", mock.Anything, f.email).Return(sp, nil).Once()
		f.sponsorships.On("SetUpSponsorship", mock.Anything, sp, sponsored).Return(nil).Once()

		resp := f.do(t, http.MethodPost, "/organization/sponsorship/redeem?sponsorshipToken=tok", body)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("NotAnOwner", func(t *testing.T) {
		member := &domain.OrgUser{ID: uuid.New(), OrganizationID: sponsored.ID, UserID: f.userID, Type: domain.OrgUserTypeUser}
		f.sponsorships.On("ValidateRedemptionToken", mock.Anything, "tok", f.email).Return(true, nil).Once()
		f.orgUsers.On("GetByOrganization", mock.Anything, sponsored.ID, f.userID).Return(member, nil).Once()

		resp := f.do(t, http.MethodPost, "/organization/sponsorship/redeem?sponsorshipToken=tok", body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		f.sponsorships.On("ValidateRedemptionToken", mock.Anything, "tok", f.email).Return(false, nil).Once()

		resp := f.do(t, http.MethodPost, "/organization/sponsorship/redeem?sponsorshipToken=tok", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRevoke(t *testing.T) {
	f := newHandlerFixture(t, false)
	org := &domain.Organization{ID: uuid.New(), PlanType: domain.PlanTypeEnterpriseAnnually}
	orgUser := &domain.OrgUser{ID: uuid.New(), OrganizationID: org.ID, UserID: f.userID}
	sp := &domain.Sponsorship{ID: uuid.New(), SponsoringOrganizationUserID: orgUser.ID, Status: domain.SponsorshipStatusActive}
	f.stubMembership(org, orgUser)

	t.Run("Success", func(t *testing.T) {
		f.repo.On("GetBySponsoringOrgUser", mock.Anything, orgUser.ID).Return(sp, nil).Once()
		f.sponsorships.On("RevokeSponsorship", mock.Anything, orgUser, sp).Return(nil).Once()

		resp := f.do(t, http.MethodDelete, "/organization/sponsorship/"+org.ID.String(), "")
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("NoSponsorship", func(t *testing.T) {
		f.repo.On("GetBySponsoringOrgUser", mock.Anything, orgUser.ID).Return(nil, repository.ErrNotFound).Once()

		resp := f.do(t, http.MethodDelete, "/organization/sponsorship/"+org.ID.String(), "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRemove(t *testing.T) {
	f := newHandlerFixture(t, false)
	sponsored := &domain.Organization{ID: uuid.New(), Name: "Family Org"}
	owner := &domain.OrgUser{ID: uuid.New(), OrganizationID: sponsored.ID, UserID: f.userID, Type: domain.OrgUserTypeOwner}
	sponsoredID := sponsored.ID
	sp := &domain.Sponsorship{ID: uuid.New(), SponsoredOrganizationID: &sponsoredID, Status: domain.SponsorshipStatusActive}
	f.stubMembership(sponsored, owner)

	f.repo.On("GetBySponsoredOrg", mock.Anything, sponsored.ID).Return(sp, nil).Once()
	f.sponsorships.On("RemoveSponsorship", mock.Anything, sponsored, owner, sp).Return(nil).Once()

	resp := f.do(t, http.MethodDelete, "/organization/sponsorship/sponsored/"+sponsored.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSyncStatus(t *testing.T) {
	f := newHandlerFixture(t, false)
	org := &domain.Organization{ID: uuid.New(), PlanType: domain.PlanTypeEnterpriseAnnually}
	owner := &domain.OrgUser{ID: uuid.New(), OrganizationID: org.ID, UserID: f.userID, Type: domain.OrgUserTypeOwner}
	f.stubMembership(org, owner)

	lastSync := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	f.sync.On("GetSyncStatus", mock.Anything, org, owner).Return(&lastSync, nil).Once()

	resp := f.do(t, http.MethodGet, "/organization/sponsorship/"+org.ID.String()+"/sync-status", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		LastSyncDate *time.Time `json:"last_sync_date"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	if assert.NotNil(t, body.LastSyncDate) {
		assert.True(t, lastSync.Equal(*body.LastSyncDate))
	}
}
