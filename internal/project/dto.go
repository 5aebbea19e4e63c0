package project

import (
	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/core/common/validation"
)

// CreateProjectDTO is the request payload for creating a project.
type CreateProjectDTO struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	ActivityTypes []string `json:"activity_types,omitempty"`
	Billable      *bool    `json:"billable,omitempty"`
}

func (dto CreateProjectDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(200)
	v.Field("description", dto.Description).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateProjectDTO supports partial updates. Nil fields are left untouched.
type UpdateProjectDTO struct {
	Name          *string   `json:"name,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Status        *string   `json:"status,omitempty"`
	ActivityTypes *[]string `json:"activity_types,omitempty"`
	Billable      *bool     `json:"billable,omitempty"`
}

func (dto UpdateProjectDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", *dto.Name).Required().MaxLength(200)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).MaxLength(1000)
	}
	if dto.Status != nil {
		v.Field("status", *dto.Status).OneOf([]string{StatusActive, StatusArchived}, internal.ErrCodeValidationFailed)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Filter narrows a project listing. Status takes precedence over the
// archived toggle; Search matches name and description fragments
// case-insensitively.
type Filter struct {
	Search          string
	Status          string
	Billable        *bool
	IncludeArchived bool
}

// ListProjectsResponse wraps a project listing.
type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
	Count    int        `json:"count"`
}

// ActivityTypesResponse lists the activity labels a project accepts.
type ActivityTypesResponse struct {
	ProjectID     int64    `json:"project_id"`
	ActivityTypes []string `json:"activity_types"`
	AcceptsAny    bool     `json:"accepts_any"`
}
