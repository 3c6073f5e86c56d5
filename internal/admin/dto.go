package admin

import (
	"errors"
	"net/mail"

	"github.com/ppimu/project-monitoring/internal/profile"
)

// CreateUserDTO provisions an account plus its application profile in one
// step. The password is temporary and expected to be rotated by the user.
type CreateUserDTO struct {
	Email    string       `json:"email" validate:"required,email"`
	Password string       `json:"password" validate:"required,min=8"`
	FullName string       `json:"full_name" validate:"required"`
	Role     profile.Role `json:"role" validate:"required"`
	MDAID    *string      `json:"mda_id,omitempty"`
}

// Validate validates the CreateUserDTO
func (dto CreateUserDTO) Validate() error {
	if dto.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("email is invalid")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.FullName == "" {
		return errors.New("full name is required")
	}
	if !dto.Role.Valid() {
		return errors.New("role must be one of user, approver, super_user")
	}
	return nil
}

// UpdateUserDTO carries a partial profile update; nil fields are left
// unchanged.
type UpdateUserDTO struct {
	FullName *string       `json:"full_name,omitempty"`
	Role     *profile.Role `json:"role,omitempty"`
	MDAID    *string       `json:"mda_id,omitempty"`
}

// Validate validates the UpdateUserDTO
func (dto UpdateUserDTO) Validate() error {
	if dto.FullName != nil && *dto.FullName == "" {
		return errors.New("full name cannot be empty")
	}
	if dto.Role != nil && !dto.Role.Valid() {
		return errors.New("role must be one of user, approver, super_user")
	}
	return nil
}

// CreateMDADTO represents the request payload for registering an MDA.
type CreateMDADTO struct {
	Name string  `json:"name" validate:"required"`
	Code *string `json:"code,omitempty"`
}

// Validate validates the CreateMDADTO
func (dto CreateMDADTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// UpdateMDADTO carries a partial MDA update.
type UpdateMDADTO struct {
	Name *string `json:"name,omitempty"`
	Code *string `json:"code,omitempty"`
}

// Validate validates the UpdateMDADTO
func (dto UpdateMDADTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}
