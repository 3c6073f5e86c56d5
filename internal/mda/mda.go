package mda

import "time"

// MDA is a Ministry/Department/Agency: the organizational unit users and
// projects are scoped to. Read-mostly reference data, admin-editable only.
type MDA struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	Name      string    `json:"name" gorm:"column:name"`
	Code      *string   `json:"code" gorm:"column:code"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (MDA) TableName() string {
	return "mdas"
}

type RepositoryAPI interface {
	GetAll() ([]*MDA, error)
	GetByID(id string) (*MDA, error)
	GetName(id string) (string, error)
	Create(m *MDA) error
	Update(m *MDA) error
}
