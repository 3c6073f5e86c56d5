package report

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ppimu/project-monitoring/internal"
)

// Service handles progress report business logic
type Service struct {
	repo     RepositoryAPI
	projects ProjectScopeAPI
	logger   *slog.Logger
}

// NewService creates a new report service
func NewService(repo RepositoryAPI, projects ProjectScopeAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		logger:   logger,
	}
}

// ListForMDA returns the progress updates whose parent project belongs to
// the given MDA, most recent report date first. Callers without an MDA
// assignment get an empty list, not an error.
func (s *Service) ListForMDA(mdaID string) ([]*ProgressUpdate, error) {
	if mdaID == "" {
		return []*ProgressUpdate{}, nil
	}

	reports, err := s.repo.GetByMDA(mdaID)
	if err != nil {
		s.logger.Error("failed to list reports", "error", err, "mda_id", mdaID)
		return nil, err
	}
	return reports, nil
}

// ListAll returns every progress update, for admin views.
func (s *Service) ListAll() ([]*ProgressUpdate, error) {
	reports, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list all reports", "error", err)
		return nil, err
	}
	return reports, nil
}

// SubmitReport creates a progress update after checking the parent project
// belongs to the caller's MDA (unless unscoped).
func (s *Service) SubmitReport(dto CreateReportDTO, mdaID string, unscoped bool) (*ProgressUpdate, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("report validation failed", "error", err, "project_id", dto.ProjectID)
		return nil, internal.NewEntityError(err.Error(), internal.ErrCodeWriteRejected)
	}

	owner, err := s.projects.OwningMDA(dto.ProjectID)
	if err != nil {
		s.logger.Error("failed to resolve project owner", "error", err, "project_id", dto.ProjectID)
		return nil, internal.ErrProjectNotFound
	}
	if !unscoped && owner != mdaID {
		s.logger.Warn("cross-MDA report submission rejected",
			"project_id", dto.ProjectID, "project_mda", owner, "caller_mda", mdaID)
		return nil, internal.ErrUnauthorizedAccess
	}

	u := &ProgressUpdate{
		ID:                  uuid.NewString(),
		ProjectID:           dto.ProjectID,
		ReportDate:          dto.ReportDate,
		PhysicalProgressPct: dto.PhysicalProgressPct,
		Stage:               dto.Stage,
		MilestoneStatus:     dto.MilestoneStatus,
		KeyUpdate:           dto.KeyUpdate,
		IssueFlag:           dto.IssueFlag,
		EvidenceLink:        dto.EvidenceLink,
		CreatedAt:           time.Now(),
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create report", "error", err, "project_id", dto.ProjectID)
		return nil, err
	}

	s.logger.Info("progress report submitted",
		"report_id", u.ID,
		"project_id", u.ProjectID,
		"progress_pct", u.PhysicalProgressPct)

	return u, nil
}

// ApproveReport marks a report approved by overwriting its milestone
// status. The write is unconditional, so approving an already approved
// report succeeds without changing anything.
func (s *Service) ApproveReport(id string) (*ProgressUpdate, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("failed to load report for approval", "error", err, "report_id", id)
		return nil, internal.ErrReportNotFound
	}

	if err := s.repo.SetMilestoneStatus(id, MilestoneApproved); err != nil {
		s.logger.Error("failed to approve report", "error", err, "report_id", id)
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("report approved", "report_id", id)
	return u, nil
}
