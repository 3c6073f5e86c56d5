package project

import (
	"errors"
	"time"
)

// CreateProjectDTO represents the request payload for creating a project.
type CreateProjectDTO struct {
	Title              string    `json:"title" validate:"required,max=300"`
	Sector             string    `json:"sector" validate:"required"`
	LGA                string    `json:"lga"`
	SenatorialDistrict string    `json:"senatorial_district"`
	LocationText       string    `json:"location_text"`
	StartDate          time.Time `json:"start_date" validate:"required"`
	EndDate            time.Time `json:"end_date"`
	ApprovedBudget     float64   `json:"approved_budget" validate:"min=0"`
	FundingSource      string    `json:"funding_source"`
	Contractor         *string   `json:"contractor,omitempty"`
	Status             string    `json:"status"`
}

// Validate validates the CreateProjectDTO
func (dto CreateProjectDTO) Validate() error {
	if dto.Title == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 300 {
		return errors.New("title must be less than 300 characters")
	}
	if dto.Sector == "" {
		return errors.New("sector is required")
	}
	if dto.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	if !dto.EndDate.IsZero() && dto.EndDate.Before(dto.StartDate) {
		return errors.New("end date cannot be before start date")
	}
	if dto.ApprovedBudget < 0 {
		return errors.New("approved budget cannot be negative")
	}
	return nil
}

// UpdateProjectDTO carries a partial update; nil fields are left unchanged.
type UpdateProjectDTO struct {
	Title          *string    `json:"title,omitempty"`
	Sector         *string    `json:"sector,omitempty"`
	LocationText   *string    `json:"location_text,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	ApprovedBudget *float64   `json:"approved_budget,omitempty"`
	FundingSource  *string    `json:"funding_source,omitempty"`
	Contractor     *string    `json:"contractor,omitempty"`
	Status         *string    `json:"status,omitempty"`
}

// Validate validates the UpdateProjectDTO
func (dto UpdateProjectDTO) Validate() error {
	if dto.Title != nil && *dto.Title == "" {
		return errors.New("title cannot be empty")
	}
	if dto.Title != nil && len(*dto.Title) > 300 {
		return errors.New("title must be less than 300 characters")
	}
	if dto.ApprovedBudget != nil && *dto.ApprovedBudget < 0 {
		return errors.New("approved budget cannot be negative")
	}
	return nil
}
