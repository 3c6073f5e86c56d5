package postgres

import (
	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/project"
	"gorm.io/gorm"
)

// ProjectRepository implements project.RepositoryAPI using GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

// GetByMDA retrieves all projects belonging to one MDA
func (r *ProjectRepository) GetByMDA(mdaID string) ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Where("mda_id = ?", mdaID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// GetByID retrieves a project by its ID
func (r *ProjectRepository) GetByID(id string) (*project.Project, error) {
	var p project.Project
	err := r.db.Where("project_id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetAll retrieves every project, for admin views
func (r *ProjectRepository) GetAll() ([]*project.Project, error) {
	var projects []*project.Project
	err := r.db.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// Create saves a new project
func (r *ProjectRepository) Create(p *project.Project) error {
	return r.db.Create(p).Error
}

// Update updates an existing project
func (r *ProjectRepository) Update(p *project.Project) error {
	return r.db.Save(p).Error
}

// GetFinanceByProject retrieves finance rows for one project, newest budget
// year first
func (r *ProjectRepository) GetFinanceByProject(projectID string) ([]*project.FinanceRecord, error) {
	var records []*project.FinanceRecord
	err := r.db.Where("project_id = ?", projectID).
		Order("budget_year DESC").
		Find(&records).Error
	return records, err
}

// GetIssuesByProject retrieves the issue log for one project
func (r *ProjectRepository) GetIssuesByProject(projectID string) ([]*project.Issue, error) {
	var issues []*project.Issue
	err := r.db.Where("project_id = ?", projectID).
		Order("log_date DESC").
		Find(&issues).Error
	return issues, err
}
