package report

import (
	"time"

	errors "github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/core/validation"
)

// CreateReportDTO represents the request payload for submitting a progress
// update.
type CreateReportDTO struct {
	ProjectID           string    `json:"project_id" validate:"required"`
	ReportDate          time.Time `json:"report_date" validate:"required"`
	PhysicalProgressPct int       `json:"physical_progress_pct" validate:"min=0,max=100"`
	Stage               string    `json:"stage" validate:"required"`
	MilestoneStatus     string    `json:"milestone_status"`
	KeyUpdate           string    `json:"key_update" validate:"required"`
	IssueFlag           *string   `json:"issue_flag,omitempty"`
	EvidenceLink        *string   `json:"evidence_link,omitempty"`
}

// Validate validates the CreateReportDTO
func (dto CreateReportDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("project_id", dto.ProjectID).Required()
	validator.Field("report_date", dto.ReportDate).Required().NotFuture()
	validator.Field("physical_progress_pct", dto.PhysicalProgressPct).
		MinInt(0, errors.ErrCodeInvalidProgress).
		MaxInt(100, errors.ErrCodeInvalidProgress)
	validator.Field("stage", dto.Stage).Required()
	validator.Field("key_update", dto.KeyUpdate).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
