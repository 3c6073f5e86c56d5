package project

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ppimu/project-monitoring/internal"
)

// Service handles project business logic
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

// NewService creates a new project service
func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListForMDA returns the projects belonging to one MDA. Callers without an
// MDA assignment get an empty list, not an error.
func (s *Service) ListForMDA(mdaID string) ([]*Project, error) {
	if mdaID == "" {
		return []*Project{}, nil
	}

	projects, err := s.repo.GetByMDA(mdaID)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err, "mda_id", mdaID)
		return nil, err
	}
	return projects, nil
}

// ListAll returns every project, for admin views.
func (s *Service) ListAll() ([]*Project, error) {
	projects, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list all projects", "error", err)
		return nil, err
	}
	return projects, nil
}

// GetProject retrieves a project by ID with MDA scoping unless unscoped.
func (s *Service) GetProject(id string, mdaID string, unscoped bool) (*Project, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", id)
		return nil, internal.ErrProjectNotFound
	}

	if !unscoped && p.MDAID != mdaID {
		s.logger.Warn("cross-MDA project access rejected",
			"project_id", id, "project_mda", p.MDAID, "caller_mda", mdaID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return p, nil
}

// CreateProject creates a project under the caller's MDA.
func (s *Service) CreateProject(dto CreateProjectDTO, mdaID string) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("project validation failed", "error", err, "mda_id", mdaID)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}
	if mdaID == "" {
		return nil, internal.NewEntityError("caller has no MDA assignment", internal.ErrCodeNoMDAAssigned)
	}

	status := dto.Status
	if status == "" {
		status = "Planning"
	}

	p := &Project{
		ID:                 uuid.NewString(),
		MDAID:              mdaID,
		Title:              dto.Title,
		Sector:             dto.Sector,
		LGA:                dto.LGA,
		SenatorialDistrict: dto.SenatorialDistrict,
		LocationText:       dto.LocationText,
		StartDate:          dto.StartDate,
		EndDate:            dto.EndDate,
		ApprovedBudget:     dto.ApprovedBudget,
		FundingSource:      dto.FundingSource,
		Contractor:         dto.Contractor,
		Status:             status,
		CreatedAt:          time.Now(),
	}

	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create project", "error", err, "mda_id", mdaID)
		return nil, err
	}

	s.logger.Info("project created", "project_id", p.ID, "mda_id", mdaID, "title", p.Title)
	return p, nil
}

// UpdateProject applies a partial update. Non-admin callers can only touch
// projects inside their own MDA.
func (s *Service) UpdateProject(id string, dto UpdateProjectDTO, mdaID string, unscoped bool) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("project update validation failed", "error", err, "project_id", id)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	p, err := s.GetProject(id, mdaID, unscoped)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Sector != nil {
		p.Sector = *dto.Sector
	}
	if dto.LocationText != nil {
		p.LocationText = *dto.LocationText
	}
	if dto.EndDate != nil {
		p.EndDate = *dto.EndDate
	}
	if dto.ApprovedBudget != nil {
		p.ApprovedBudget = *dto.ApprovedBudget
	}
	if dto.FundingSource != nil {
		p.FundingSource = *dto.FundingSource
	}
	if dto.Contractor != nil {
		p.Contractor = dto.Contractor
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}

	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project updated", "project_id", id)
	return p, nil
}

// OwningMDA resolves the MDA a project belongs to. Used by the report
// domain to scope submissions through the parent project.
func (s *Service) OwningMDA(projectID string) (string, error) {
	p, err := s.repo.GetByID(projectID)
	if err != nil {
		return "", err
	}
	return p.MDAID, nil
}

// FinanceForProject returns the finance rows for one project, after the
// same scope check as GetProject.
func (s *Service) FinanceForProject(projectID, mdaID string, unscoped bool) ([]*FinanceRecord, error) {
	if _, err := s.GetProject(projectID, mdaID, unscoped); err != nil {
		return nil, err
	}

	records, err := s.repo.GetFinanceByProject(projectID)
	if err != nil {
		s.logger.Error("failed to list finance records", "error", err, "project_id", projectID)
		return nil, err
	}
	return records, nil
}

// IssuesForProject returns the issue log for one project.
func (s *Service) IssuesForProject(projectID, mdaID string, unscoped bool) ([]*Issue, error) {
	if _, err := s.GetProject(projectID, mdaID, unscoped); err != nil {
		return nil, err
	}

	issues, err := s.repo.GetIssuesByProject(projectID)
	if err != nil {
		s.logger.Error("failed to list issues", "error", err, "project_id", projectID)
		return nil, err
	}
	return issues, nil
}
