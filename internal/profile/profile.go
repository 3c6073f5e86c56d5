package profile

import (
	"time"
)

// Role is the application-level authorization role carried on a profile.
type Role string

const (
	// RoleUser is an MDA engineer submitting progress updates.
	RoleUser Role = "user"
	// RoleApprover reviews and approves progress reports.
	RoleApprover Role = "approver"
	// RoleSuperUser administers users and MDAs.
	RoleSuperUser Role = "super_user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleApprover, RoleSuperUser:
		return true
	}
	return false
}

// Profile is the application identity record, distinct from the raw auth
// account. The id references the auth provider's user id. Role and MDA
// assignment are nullable: a profile can exist before an administrator
// assigns it anywhere.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	MDAID     *string   `json:"mda_id" gorm:"column:mda_id"`
	FullName  string    `json:"full_name" gorm:"column:full_name"`
	Role      *Role     `json:"role" gorm:"column:role"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// HasRole reports whether the profile's role is in the accepted set. A nil
// role matches nothing.
func (p *Profile) HasRole(roles ...Role) bool {
	if p == nil || p.Role == nil {
		return false
	}
	for _, r := range roles {
		if *p.Role == r {
			return true
		}
	}
	return false
}

// Assigned reports whether the profile is attached to an MDA. A profile
// without an MDA cannot be the basis for any scoped query.
func (p *Profile) Assigned() bool {
	return p != nil && p.MDAID != nil && *p.MDAID != ""
}

type RepositoryAPI interface {
	GetByID(id string) (*Profile, error)
	GetAll() ([]*Profile, error)
	Create(p *Profile) error
	Update(p *Profile) error
}
