package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/mda"
	"gorm.io/gorm"
)

// MDARepository implements mda.RepositoryAPI using GORM.
type MDARepository struct {
	db *gorm.DB
}

func NewMDARepository(db *gorm.DB) mda.RepositoryAPI {
	return &MDARepository{db: db}
}

func (r *MDARepository) GetAll() ([]*mda.MDA, error) {
	var mdas []*mda.MDA
	err := r.db.Order("name ASC").Find(&mdas).Error
	return mdas, err
}

func (r *MDARepository) GetByID(id string) (*mda.MDA, error) {
	var m mda.MDA
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrMDANotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetName fetches only the display name: the second lookup of profile
// resolution, kept as a point read.
func (r *MDARepository) GetName(id string) (string, error) {
	var name string
	err := r.db.Model(&mda.MDA{}).Where("id = ?", id).Select("name").Scan(&name).Error
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", internal.ErrMDANotFound
	}
	return name, nil
}

func (r *MDARepository) Create(m *mda.MDA) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	return r.db.Create(m).Error
}

func (r *MDARepository) Update(m *mda.MDA) error {
	m.UpdatedAt = time.Now()
	return r.db.Save(m).Error
}
