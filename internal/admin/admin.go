package admin

import (
	"github.com/ppimu/project-monitoring/internal/auth"
	"github.com/ppimu/project-monitoring/internal/mda"
	"github.com/ppimu/project-monitoring/internal/profile"
)

// ServiceAPI defines the administration operations: unscoped user and MDA
// listings plus account provisioning. All of it is gated to super users at
// the transport layer.
type ServiceAPI interface {
	ListUsers() ([]*profile.Profile, error)
	ListMDAs() ([]*mda.MDA, error)
	CreateUser(dto CreateUserDTO) (*profile.Profile, error)
	UpdateUser(id string, dto UpdateUserDTO) (*profile.Profile, error)
	CreateMDA(dto CreateMDADTO) (*mda.MDA, error)
	UpdateMDA(id string, dto UpdateMDADTO) (*mda.MDA, error)
}

// AccountProvisioner is the slice of the auth domain the admin service
// needs: creating a credentialed account without signing anyone in.
type AccountProvisioner interface {
	SignUp(dto auth.SignUpDTO) (*auth.Account, error)
}
