package postgres

import (
	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/report"
	"gorm.io/gorm"
)

// ReportRepository implements report.RepositoryAPI using GORM
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

// GetByMDA retrieves progress updates whose parent project belongs to the
// given MDA, most recent report date first. Ties on report_date have no
// guaranteed order.
func (r *ReportRepository) GetByMDA(mdaID string) ([]*report.ProgressUpdate, error) {
	var updates []*report.ProgressUpdate
	err := r.db.Table("progress_updates").
		Select("progress_updates.*, projects.title AS project_title").
		Joins("INNER JOIN projects ON projects.project_id = progress_updates.project_id").
		Where("projects.mda_id = ?", mdaID).
		Order("progress_updates.report_date DESC").
		Find(&updates).Error
	return updates, err
}

// GetAll retrieves every progress update, for admin views
func (r *ReportRepository) GetAll() ([]*report.ProgressUpdate, error) {
	var updates []*report.ProgressUpdate
	err := r.db.Table("progress_updates").
		Select("progress_updates.*, projects.title AS project_title").
		Joins("INNER JOIN projects ON projects.project_id = progress_updates.project_id").
		Order("progress_updates.report_date DESC").
		Find(&updates).Error
	return updates, err
}

// GetByID retrieves a progress update by its ID
func (r *ReportRepository) GetByID(id string) (*report.ProgressUpdate, error) {
	var u report.ProgressUpdate
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrReportNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create saves a new progress update
func (r *ReportRepository) Create(u *report.ProgressUpdate) error {
	return r.db.Create(u).Error
}

// SetMilestoneStatus overwrites the milestone status unconditionally, which
// makes repeat approvals a no-op
func (r *ReportRepository) SetMilestoneStatus(id string, status string) error {
	return r.db.Model(&report.ProgressUpdate{}).
		Where("id = ?", id).
		Update("milestone_status", status).Error
}
