package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type OrgUserType string

const (
	OrgUserTypeOwner OrgUserType = "OWNER"
	OrgUserTypeAdmin OrgUserType = "ADMIN"
	OrgUserTypeUser  OrgUserType = "USER"
)

// OrgUser is a user's membership in one organization. Sponsorships hang off
// the membership, not the user, so a user sponsoring from two orgs holds two
// independent offers.
type OrgUser struct {
	ID             uuid.UUID   `json:"id"`
	OrganizationID uuid.UUID   `json:"organization_id"`
	UserID         uuid.UUID   `json:"user_id"`
	Email          string      `json:"email"`
	Type           OrgUserType `json:"type"`
	JoinedAt       time.Time   `json:"joined_at"`
}

// IsAtLeast reports whether the membership carries the given role or higher.
func (ou *OrgUser) IsAtLeast(t OrgUserType) bool {
	rank := func(t OrgUserType) int {
		switch t {
		case OrgUserTypeOwner:
			return 2
		case OrgUserTypeAdmin:
			return 1
		default:
			return 0
		}
	}
	return rank(ou.Type) >= rank(t)
}
