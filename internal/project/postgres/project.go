package postgres

import (
	"strings"

	projectDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/project"
	"github.com/frahmantamala/timesheet-management/internal/project"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAll(filter project.Filter) ([]*projectDatamodel.Project, error) {
	query := r.db.Order("name ASC")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else if !filter.IncludeArchived {
		query = query.Where("status = ?", project.StatusActive)
	}
	if filter.Billable != nil {
		query = query.Where("billable = ?", *filter.Billable)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	var projects []*projectDatamodel.Project
	err := query.Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(id int64) (*projectDatamodel.Project, error) {
	var proj projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&proj).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &proj, nil
}

func (r *ProjectRepository) GetByName(name string) (*projectDatamodel.Project, error) {
	var proj projectDatamodel.Project
	err := r.db.Where("name = ?", name).First(&proj).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &proj, nil
}

func (r *ProjectRepository) Create(proj *projectDatamodel.Project) error {
	return r.db.Create(proj).Error
}

func (r *ProjectRepository) Update(proj *projectDatamodel.Project) error {
	return r.db.Save(proj).Error
}
