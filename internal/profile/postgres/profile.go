package postgres

import (
	"time"

	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/profile"
	"gorm.io/gorm"
)

// ProfileRepository implements profile.RepositoryAPI using GORM.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.RepositoryAPI {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(id string) (*profile.Profile, error) {
	var p profile.Profile
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetAll() ([]*profile.Profile, error) {
	var profiles []*profile.Profile
	err := r.db.Order("full_name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) Create(p *profile.Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.Create(p).Error
}

func (r *ProfileRepository) Update(p *profile.Profile) error {
	p.UpdatedAt = time.Now()
	return r.db.Save(p).Error
}
