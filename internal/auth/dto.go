package auth

import (
	"errors"
	"strings"

	"github.com/ppimu/project-monitoring/internal/profile"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return errors.New("email is invalid")
	}
	if d.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return errors.New("refresh_token is required")
	}
	return nil
}

type SignUpDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d SignUpDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(d.Email, "@") {
		return errors.New("email is invalid")
	}
	if len(d.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginResponse carries the tokens plus the resolved profile so the client
// can land on the right dashboard without a second round-trip.
type LoginResponse struct {
	AuthTokens
	Profile    *profile.Profile `json:"profile"`
	MDAName    string           `json:"mda_name,omitempty"`
	RedirectTo string           `json:"redirect_to"`
}
