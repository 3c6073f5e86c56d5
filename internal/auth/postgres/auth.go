package postgres

import (
	"database/sql"
	"fmt"

	"github.com/ppimu/project-monitoring/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForEmail(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("account not found")
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetAccountByID(id string) (*auth.Account, error) {
	var account auth.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("account not found")
		}
		return nil, err
	}
	return &account, nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&auth.Account{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateAccount(a *auth.Account) error {
	return r.db.Create(a).Error
}
