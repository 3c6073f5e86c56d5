package report

import (
	"time"
)

// Approval is recorded by overwriting the milestone status; approving an
// already approved report is a no-op success.
const MilestoneApproved = "Approved"

// ProgressUpdate is a dated report of a project's physical completion,
// stage and narrative. It scopes to an MDA transitively through its parent
// project.
type ProgressUpdate struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	ProjectID           string    `json:"project_id" gorm:"column:project_id;not null"`
	ReportDate          time.Time `json:"report_date" gorm:"column:report_date;type:date"`
	PhysicalProgressPct int       `json:"physical_progress_pct" gorm:"column:physical_progress_pct"`
	Stage               string    `json:"stage"`
	MilestoneStatus     string    `json:"milestone_status" gorm:"column:milestone_status"`
	KeyUpdate           string    `json:"key_update" gorm:"column:key_update"`
	IssueFlag           *string   `json:"issue_flag,omitempty" gorm:"column:issue_flag"`
	EvidenceLink        *string   `json:"evidence_link,omitempty" gorm:"column:evidence_link"`
	CreatedAt           time.Time `json:"created_at" gorm:"column:created_at;default:now()"`

	// Joined from the parent project for list views.
	ProjectTitle string `json:"project_title,omitempty" gorm:"->;column:project_title"`
}

func (ProgressUpdate) TableName() string {
	return "progress_updates"
}

// Approved reports whether the update has been approved.
func (u *ProgressUpdate) Approved() bool {
	return u.MilestoneStatus == MilestoneApproved
}

// RepositoryAPI defines data access for progress updates.
type RepositoryAPI interface {
	GetByMDA(mdaID string) ([]*ProgressUpdate, error)
	GetAll() ([]*ProgressUpdate, error)
	GetByID(id string) (*ProgressUpdate, error)
	Create(u *ProgressUpdate) error
	SetMilestoneStatus(id string, status string) error
}

// ProjectScopeAPI is the slice of the project domain the report service
// needs: resolving a project's owning MDA before accepting a submission.
type ProjectScopeAPI interface {
	OwningMDA(projectID string) (string, error)
}

// ServiceAPI defines the business operations over progress reports.
type ServiceAPI interface {
	ListForMDA(mdaID string) ([]*ProgressUpdate, error)
	ListAll() ([]*ProgressUpdate, error)
	SubmitReport(dto CreateReportDTO, mdaID string, unscoped bool) (*ProgressUpdate, error)
	ApproveReport(id string) (*ProgressUpdate, error)
}
