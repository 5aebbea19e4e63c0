package project

import (
	"encoding/json"
	"time"

	projectDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/project"
)

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Project is something time can be logged against. ActivityTypes is the
// allowlist of activity labels; empty means any label is accepted.
type Project struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	ActivityTypes []string  `json:"activity_types"`
	Billable      bool      `json:"billable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Project) Archive() {
	p.Status = StatusArchived
	p.UpdatedAt = time.Now()
}

func (p *Project) Reactivate() {
	p.Status = StatusActive
	p.UpdatedAt = time.Now()
}

func (p *Project) AllowsActivity(activityType string) bool {
	if len(p.ActivityTypes) == 0 {
		return true
	}
	for _, a := range p.ActivityTypes {
		if a == activityType {
			return true
		}
	}
	return false
}

func ToDataModel(p *Project) (*projectDatamodel.Project, error) {
	activityTypes := p.ActivityTypes
	if activityTypes == nil {
		activityTypes = []string{}
	}
	encoded, err := json.Marshal(activityTypes)
	if err != nil {
		return nil, err
	}
	return &projectDatamodel.Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Status,
		ActivityTypes: string(encoded),
		Billable:      p.Billable,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func FromDataModel(p *projectDatamodel.Project) (*Project, error) {
	var activityTypes []string
	if p.ActivityTypes != "" {
		if err := json.Unmarshal([]byte(p.ActivityTypes), &activityTypes); err != nil {
			return nil, err
		}
	}
	return &Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Status,
		ActivityTypes: activityTypes,
		Billable:      p.Billable,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func FromDataModelSlice(models []*projectDatamodel.Project) ([]*Project, error) {
	result := make([]*Project, len(models))
	for i, m := range models {
		p, err := FromDataModel(m)
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}
