package timesheet

import (
	"time"

	timesheetDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/timesheet"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

const (
	MinHoursPerEntry = 0.0
	MaxHoursPerEntry = 24.0
	MaxHoursPerDay   = 24.0
)

// Timesheet is one entry of logged time: employee x project x date x
// activity x hours. Drafts are mutable and deletable; submitted entries are
// terminal and only reachable through batch submission.
type Timesheet struct {
	ID           int64      `json:"id"`
	EmployeeID   int64      `json:"employee_id"`
	ProjectID    int64      `json:"project_id"`
	ActivityType string     `json:"activity_type"`
	Date         time.Time  `json:"date"`
	HoursWorked  float64    `json:"hours_worked"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
	EmployeeName string     `json:"employee_name"`
	ProjectName  string     `json:"project_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (t *Timesheet) IsDraft() bool {
	return t.Status == StatusDraft
}

func (t *Timesheet) IsSubmitted() bool {
	return t.Status == StatusSubmitted
}

func (t *Timesheet) CanEdit() bool {
	return t.IsDraft()
}

func (t *Timesheet) CanDelete() bool {
	return t.IsDraft()
}

// Submit performs the one-way draft -> submitted transition, stamping
// submitted_at exactly once.
func (t *Timesheet) Submit(at time.Time) {
	t.Status = StatusSubmitted
	t.SubmittedAt = &at
	t.UpdatedAt = at
}

// SlotKey identifies the logical uniqueness slot of an entry. At most one
// draft and one submitted entry may exist per slot.
type SlotKey struct {
	EmployeeID   int64
	ProjectID    int64
	Date         string
	ActivityType string
}

func (t *Timesheet) SlotKey() SlotKey {
	return SlotKey{
		EmployeeID:   t.EmployeeID,
		ProjectID:    t.ProjectID,
		Date:         DateKey(t.Date),
		ActivityType: t.ActivityType,
	}
}

// EmployeeRef is the read-only projection of an employee record the
// validators need. The timesheet core never mutates employees.
type EmployeeRef struct {
	ID          int64
	EmployeeID  string
	DisplayName string
	IsActive    bool
}

// ProjectRef is the read-only projection of a project record. An empty
// ActivityTypes list means the project accepts any activity label.
type ProjectRef struct {
	ID            int64
	Name          string
	Status        string
	ActivityTypes []string
}

const ProjectStatusActive = "active"

func (p *ProjectRef) IsActive() bool {
	return p.Status == ProjectStatusActive
}

func (p *ProjectRef) AllowsActivity(activityType string) bool {
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

// Actor is the caller identity threaded explicitly through every operation,
// resolved by the HTTP layer from the authenticated user's employee link.
type Actor struct {
	EmployeeID int64
	Admin      bool
}

func (a Actor) CanActFor(employeeID int64) bool {
	return a.Admin || a.EmployeeID == employeeID
}

func ToDataModel(t *Timesheet) *timesheetDatamodel.Timesheet {
	return &timesheetDatamodel.Timesheet{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		ProjectID:    t.ProjectID,
		ActivityType: t.ActivityType,
		Date:         t.Date,
		HoursWorked:  t.HoursWorked,
		Description:  t.Description,
		Status:       t.Status,
		SubmittedAt:  t.SubmittedAt,
		EmployeeName: t.EmployeeName,
		ProjectName:  t.ProjectName,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromDataModel(t *timesheetDatamodel.Timesheet) *Timesheet {
	return &Timesheet{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		ProjectID:    t.ProjectID,
		ActivityType: t.ActivityType,
		Date:         t.Date,
		HoursWorked:  t.HoursWorked,
		Description:  t.Description,
		Status:       t.Status,
		SubmittedAt:  t.SubmittedAt,
		EmployeeName: t.EmployeeName,
		ProjectName:  t.ProjectName,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func FromDataModelSlice(models []*timesheetDatamodel.Timesheet) []*Timesheet {
	result := make([]*Timesheet, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
