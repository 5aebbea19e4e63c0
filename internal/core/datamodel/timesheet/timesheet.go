package timesheet

import "time"

// Timesheet rows are unique per (employee, project, date, activity, status):
// one draft and one submitted row may coexist for the same logical slot.
type Timesheet struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeID   int64      `gorm:"column:employee_id;not null;index:idx_timesheets_employee_date;uniqueIndex:uq_timesheet_slot"`
	ProjectID    int64      `gorm:"column:project_id;not null;uniqueIndex:uq_timesheet_slot"`
	ActivityType string     `gorm:"column:activity_type;not null;uniqueIndex:uq_timesheet_slot"`
	Date         time.Time  `gorm:"column:date;type:date;not null;index:idx_timesheets_employee_date;uniqueIndex:uq_timesheet_slot"`
	HoursWorked  float64    `gorm:"column:hours_worked;not null"`
	Description  string     `gorm:"column:description"`
	Status       string     `gorm:"column:status;default:draft;index;uniqueIndex:uq_timesheet_slot"`
	SubmittedAt  *time.Time `gorm:"column:submitted_at"`

	// Denormalized display names, recomputed from the live employee and
	// project records inside every saving transaction.
	EmployeeName string `gorm:"column:employee_name"`
	ProjectName  string `gorm:"column:project_name"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}
