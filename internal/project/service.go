package project

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	projectDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	GetAll(filter Filter) ([]*projectDatamodel.Project, error)
	GetByID(id int64) (*projectDatamodel.Project, error)
	GetByName(name string) (*projectDatamodel.Project, error)
	Create(project *projectDatamodel.Project) error
	Update(project *projectDatamodel.Project) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(filter Filter) ([]*Project, error) {
	if filter.Status != "" && filter.Status != StatusActive && filter.Status != StatusArchived {
		return nil, internal.NewValidationError("status must be active or archived", internal.ErrCodeValidationFailed)
	}

	models, err := s.repo.GetAll(filter)
	if err != nil {
		s.logger.Error("failed to get projects from repository", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models)
}

func (s *Service) GetByID(id int64) (*Project, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProjectNotFound
	}
	return FromDataModel(model)
}

func (s *Service) Create(dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("a project with this name already exists", internal.ErrCodeDuplicateEntry)
	}

	billable := true
	if dto.Billable != nil {
		billable = *dto.Billable
	}

	now := time.Now()
	proj := &Project{
		Name:          dto.Name,
		Description:   dto.Description,
		Status:        StatusActive,
		ActivityTypes: dto.ActivityTypes,
		Billable:      billable,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	model, err := ToDataModel(proj)
	if err != nil {
		return nil, internal.NewInternalError("failed to encode activity types", err)
	}
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create project", "error", err, "name", dto.Name)
		return nil, err
	}
	proj.ID = model.ID

	s.logger.Info("project created", "project_id", proj.ID, "name", proj.Name)
	return proj, nil
}

func (s *Service) Update(id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProjectNotFound
	}

	proj, err := FromDataModel(model)
	if err != nil {
		return nil, internal.NewInternalError("project has malformed activity types", err)
	}

	if dto.Name != nil && *dto.Name != proj.Name {
		existing, err := s.repo.GetByName(*dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, internal.NewConflictError("a project with this name already exists", internal.ErrCodeDuplicateEntry)
		}
		proj.Name = *dto.Name
	}
	if dto.Description != nil {
		proj.Description = *dto.Description
	}
	if dto.Status != nil {
		proj.Status = *dto.Status
	}
	if dto.ActivityTypes != nil {
		proj.ActivityTypes = *dto.ActivityTypes
	}
	if dto.Billable != nil {
		proj.Billable = *dto.Billable
	}
	proj.UpdatedAt = time.Now()

	updated, err := ToDataModel(proj)
	if err != nil {
		return nil, internal.NewInternalError("failed to encode activity types", err)
	}
	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project updated", "project_id", id)
	return proj, nil
}

// Archive retires a project. Existing entries keep pointing at it, but new
// time can no longer be logged against it.
func (s *Service) Archive(id int64) (*Project, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrProjectNotFound
	}

	proj, err := FromDataModel(model)
	if err != nil {
		return nil, internal.NewInternalError("project has malformed activity types", err)
	}
	proj.Archive()

	updated, err := ToDataModel(proj)
	if err != nil {
		return nil, internal.NewInternalError("failed to encode activity types", err)
	}
	if err := s.repo.Update(updated); err != nil {
		return nil, err
	}

	s.logger.Info("project archived", "project_id", id)
	return proj, nil
}

func (s *Service) ActivityTypes(id int64) (*ActivityTypesResponse, error) {
	proj, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return &ActivityTypesResponse{
		ProjectID:     proj.ID,
		ActivityTypes: proj.ActivityTypes,
		AcceptsAny:    len(proj.ActivityTypes) == 0,
	}, nil
}
