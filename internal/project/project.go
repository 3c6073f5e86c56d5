package project

import (
	"time"
)

// Project is a capital project owned by a single MDA. All non-admin reads
// are filtered by MDAID; progress reports scope to the MDA through their
// parent project.
type Project struct {
	ID                 string    `json:"project_id" gorm:"primaryKey;column:project_id"`
	MDAID              string    `json:"mda_id" gorm:"column:mda_id;not null"`
	Title              string    `json:"title" gorm:"not null"`
	Sector             string    `json:"sector"`
	LGA                string    `json:"lga" gorm:"column:lga"`
	SenatorialDistrict string    `json:"senatorial_district" gorm:"column:senatorial_district"`
	LocationText       string    `json:"location_text" gorm:"column:location_text"`
	StartDate          time.Time `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate            time.Time `json:"end_date" gorm:"column:end_date;type:date"`
	ApprovedBudget     float64   `json:"approved_budget" gorm:"column:approved_budget"`
	FundingSource      string    `json:"funding_source" gorm:"column:funding_source"`
	Contractor         *string   `json:"contractor,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Project) TableName() string {
	return "projects"
}

// FinanceRecord tracks budget releases and payments per project and year.
type FinanceRecord struct {
	ID             string  `json:"id" gorm:"primaryKey"`
	ProjectID      string  `json:"project_id" gorm:"column:project_id;not null"`
	BudgetYear     int     `json:"budget_year" gorm:"column:budget_year"`
	ReleaseToDate  float64 `json:"release_to_date" gorm:"column:release_to_date"`
	PaymentsToDate float64 `json:"payments_to_date" gorm:"column:payments_to_date"`
}

func (FinanceRecord) TableName() string {
	return "finance"
}

// Issue is a logged problem against a project.
type Issue struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ProjectID string    `json:"project_id" gorm:"column:project_id;not null"`
	LogDate   time.Time `json:"log_date" gorm:"column:log_date;type:date"`
	IssueType string    `json:"issue_type" gorm:"column:issue_type"`
	Severity  int       `json:"severity"`
	Owner     string    `json:"owner"`
	DueDate   time.Time `json:"due_date" gorm:"column:due_date;type:date"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	FollowUp  *string   `json:"follow_up,omitempty" gorm:"column:follow_up"`
}

func (Issue) TableName() string {
	return "issues"
}

// RepositoryAPI defines data access for projects and their child records.
type RepositoryAPI interface {
	GetByMDA(mdaID string) ([]*Project, error)
	GetByID(id string) (*Project, error)
	GetAll() ([]*Project, error)
	Create(p *Project) error
	Update(p *Project) error
	GetFinanceByProject(projectID string) ([]*FinanceRecord, error)
	GetIssuesByProject(projectID string) ([]*Issue, error)
}

// ServiceAPI defines the business operations over projects.
type ServiceAPI interface {
	ListForMDA(mdaID string) ([]*Project, error)
	ListAll() ([]*Project, error)
	GetProject(id string, mdaID string, unscoped bool) (*Project, error)
	CreateProject(dto CreateProjectDTO, mdaID string) (*Project, error)
	UpdateProject(id string, dto UpdateProjectDTO, mdaID string, unscoped bool) (*Project, error)
	FinanceForProject(projectID, mdaID string, unscoped bool) ([]*FinanceRecord, error)
	IssuesForProject(projectID, mdaID string, unscoped bool) ([]*Issue, error)
}
