package admin

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/auth"
	"github.com/ppimu/project-monitoring/internal/mda"
	"github.com/ppimu/project-monitoring/internal/profile"
)

// Service handles administration logic: account provisioning and the
// unscoped user and MDA collections.
type Service struct {
	accounts AccountProvisioner
	profiles profile.RepositoryAPI
	mdas     mda.RepositoryAPI
	logger   *slog.Logger
}

// NewService creates a new admin service
func NewService(accounts AccountProvisioner, profiles profile.RepositoryAPI, mdas mda.RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		profiles: profiles,
		mdas:     mdas,
		logger:   logger,
	}
}

// ListUsers returns every profile, unscoped.
func (s *Service) ListUsers() ([]*profile.Profile, error) {
	profiles, err := s.profiles.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return profiles, nil
}

// ListMDAs returns every registered MDA.
func (s *Service) ListMDAs() ([]*mda.MDA, error) {
	mdas, err := s.mdas.GetAll()
	if err != nil {
		s.logger.Error("failed to list MDAs", "error", err)
		return nil, err
	}
	return mdas, nil
}

// CreateUser provisions a credentialed account and inserts its profile.
// Unlike self-service sign-up this never touches the caller's session.
func (s *Service) CreateUser(dto CreateUserDTO) (*profile.Profile, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("create user validation failed", "error", err, "email", dto.Email)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	if dto.MDAID != nil {
		if _, err := s.mdas.GetByID(*dto.MDAID); err != nil {
			s.logger.Error("create user: unknown MDA", "error", err, "mda_id", *dto.MDAID)
			return nil, internal.ErrMDANotFound
		}
	}

	account, err := s.accounts.SignUp(auth.SignUpDTO{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		s.logger.Error("account provisioning failed", "error", err, "email", dto.Email)
		return nil, err
	}

	role := dto.Role
	prof := &profile.Profile{
		ID:        account.ID,
		MDAID:     dto.MDAID,
		FullName:  dto.FullName,
		Role:      &role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.profiles.Create(prof); err != nil {
		s.logger.Error("failed to create profile", "error", err, "user_id", account.ID)
		return nil, err
	}

	s.logger.Info("user provisioned",
		"user_id", account.ID,
		"role", role,
		"mda_assigned", dto.MDAID != nil)

	return prof, nil
}

// UpdateUser applies a partial update to a profile.
func (s *Service) UpdateUser(id string, dto UpdateUserDTO) (*profile.Profile, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("update user validation failed", "error", err, "user_id", id)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	prof, err := s.profiles.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load profile", "error", err, "user_id", id)
		return nil, internal.ErrProfileNotFound
	}

	if dto.FullName != nil {
		prof.FullName = *dto.FullName
	}
	if dto.Role != nil {
		prof.Role = dto.Role
	}
	if dto.MDAID != nil {
		if _, err := s.mdas.GetByID(*dto.MDAID); err != nil {
			return nil, internal.ErrMDANotFound
		}
		prof.MDAID = dto.MDAID
	}
	prof.UpdatedAt = time.Now()

	if err := s.profiles.Update(prof); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return prof, nil
}

// CreateMDA registers a new MDA.
func (s *Service) CreateMDA(dto CreateMDADTO) (*mda.MDA, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("create MDA validation failed", "error", err)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	m := &mda.MDA{
		ID:        uuid.NewString(),
		Name:      dto.Name,
		Code:      dto.Code,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.mdas.Create(m); err != nil {
		s.logger.Error("failed to create MDA", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("MDA registered", "mda_id", m.ID, "name", m.Name)
	return m, nil
}

// UpdateMDA applies a partial update to an MDA.
func (s *Service) UpdateMDA(id string, dto UpdateMDADTO) (*mda.MDA, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("update MDA validation failed", "error", err, "mda_id", id)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	m, err := s.mdas.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load MDA", "error", err, "mda_id", id)
		return nil, internal.ErrMDANotFound
	}

	if dto.Name != nil {
		m.Name = *dto.Name
	}
	if dto.Code != nil {
		m.Code = dto.Code
	}
	m.UpdatedAt = time.Now()

	if err := s.mdas.Update(m); err != nil {
		s.logger.Error("failed to update MDA", "error", err, "mda_id", id)
		return nil, err
	}

	s.logger.Info("MDA updated", "mda_id", id)
	return m, nil
}
