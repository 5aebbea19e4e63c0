package timesheet

import (
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

// CreateTimesheetDTO is the request payload for creating a draft entry.
// EmployeeID may be omitted by regular users (it defaults to their own
// employee record); admins can create on behalf of others.
type CreateTimesheetDTO struct {
	EmployeeID   int64   `json:"employee_id,omitempty"`
	ProjectID    int64   `json:"project_id"`
	ActivityType string  `json:"activity_type"`
	Date         string  `json:"date"`
	HoursWorked  float64 `json:"hours_worked"`
	Description  string  `json:"description,omitempty"`
}

func (dto CreateTimesheetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("project_id", dto.ProjectID).Required()
	v.Field("activity_type", dto.ActivityType).Required().MaxLength(100)
	v.Field("date", dto.Date).Required().DateFormat(dateLayout)
	v.Field("hours_worked", dto.HoursWorked).
		Required().
		GreaterThan(0, internal.ErrCodeHoursOutOfRange).
		MaxFloat(MaxHoursPerEntry, internal.ErrCodeHoursOutOfRange)
	v.Field("description", dto.Description).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (dto CreateTimesheetDTO) ParsedDate() (time.Time, error) {
	return time.Parse(dateLayout, dto.Date)
}

// UpdateTimesheetDTO supports partial updates of draft entries. Nil fields
// are left untouched.
type UpdateTimesheetDTO struct {
	ProjectID    *int64   `json:"project_id,omitempty"`
	ActivityType *string  `json:"activity_type,omitempty"`
	Date         *string  `json:"date,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

func (dto UpdateTimesheetDTO) Validate() error {
	v := validation.NewValidator()
	if dto.ActivityType != nil {
		v.Field("activity_type", *dto.ActivityType).Required().MaxLength(100)
	}
	if dto.Date != nil {
		v.Field("date", *dto.Date).Required().DateFormat(dateLayout)
	}
	if dto.HoursWorked != nil {
		v.Field("hours_worked", *dto.HoursWorked).
			GreaterThan(0, internal.ErrCodeHoursOutOfRange).
			MaxFloat(MaxHoursPerEntry, internal.ErrCodeHoursOutOfRange)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).MaxLength(1000)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// SubmitWeekDTO is the request payload for weekly batch submission.
// WeekStart must be a Monday; TimesheetIDs optionally narrows the batch to
// an explicit subset of that week's drafts; Force pushes a batch through
// despite advisory warnings.
type SubmitWeekDTO struct {
	EmployeeID   int64   `json:"employee_id,omitempty"`
	WeekStart    string  `json:"week_start"`
	TimesheetIDs []int64 `json:"timesheet_ids,omitempty"`
	Force        bool    `json:"force,omitempty"`
}

func (dto SubmitWeekDTO) Validate() error {
	if err := validation.ValidateDateString("week_start", dto.WeekStart); err != nil {
		return err
	}
	return nil
}

func (dto SubmitWeekDTO) ParsedWeekStart() (time.Time, error) {
	return time.Parse(dateLayout, dto.WeekStart)
}

const (
	BulkActionSubmit   = "submit"
	BulkActionDelete   = "delete"
	BulkActionValidate = "validate"
)

// BulkActionDTO names a set of owned entries and an action to apply to all
// of them as one unit.
type BulkActionDTO struct {
	EmployeeID   int64   `json:"employee_id,omitempty"`
	Action       string  `json:"action"`
	TimesheetIDs []int64 `json:"timesheet_ids"`
}

func (dto BulkActionDTO) Validate() error {
	if len(dto.TimesheetIDs) == 0 {
		return internal.NewValidationError("timesheet_ids must not be empty", internal.ErrCodeEmptyIDList)
	}
	switch dto.Action {
	case BulkActionSubmit, BulkActionDelete, BulkActionValidate:
		return nil
	default:
		return internal.NewValidationError("action must be submit, delete or validate", internal.ErrCodeInvalidBulkAction)
	}
}

// ListFilter narrows timesheet listings. Zero values mean "no filter".
type ListFilter struct {
	EmployeeID   int64
	ProjectID    int64
	Status       string
	ActivityType string
	DateFrom     time.Time
	DateTo       time.Time
	Page         int
	PageSize     int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// ListResult is a paginated listing.
type ListResult struct {
	Timesheets []*Timesheet `json:"timesheets"`
	Count      int64        `json:"count"`
	Page       int          `json:"current_page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}

// SubmissionResult reports the outcome of a week submission attempt.
// Exactly one of Submitted, NothingToSubmit or RequiresForce/Report
// describes the outcome; failed validation carries the full report.
type SubmissionResult struct {
	Submitted       bool              `json:"submitted"`
	NothingToSubmit bool              `json:"nothing_to_submit,omitempty"`
	RequiresForce   bool              `json:"requires_force,omitempty"`
	Message         string            `json:"message,omitempty"`
	WeekStart       string            `json:"week_start,omitempty"`
	WeekEnd         string            `json:"week_end,omitempty"`
	SubmittedCount  int               `json:"submitted_count"`
	SubmittedAt     *time.Time        `json:"submitted_at,omitempty"`
	Summary         *Summary          `json:"summary,omitempty"`
	Report          *ValidationReport `json:"report,omitempty"`
}

// BulkActionResult reports the outcome of a bulk action. The whole batch
// either applied or nothing did.
type BulkActionResult struct {
	Action      string            `json:"action"`
	Applied     bool              `json:"applied"`
	AffectedIDs []int64           `json:"affected_ids,omitempty"`
	Message     string            `json:"message,omitempty"`
	Summary     *Summary          `json:"summary,omitempty"`
	Report      *ValidationReport `json:"report,omitempty"`
}

// MyTimesheetsResult is the per-employee listing with its standing summary.
type MyTimesheetsResult struct {
	Timesheets []*Timesheet `json:"timesheets"`
	Summary    Summary      `json:"summary"`
	DateFrom   string       `json:"date_from"`
	DateTo     string       `json:"date_to"`
}

// WeekSummaryResult is the aggregate view of one week window.
type WeekSummaryResult struct {
	WeekStart  string       `json:"week_start"`
	WeekEnd    string       `json:"week_end"`
	Summary    Summary      `json:"summary"`
	Timesheets []*Timesheet `json:"timesheets"`
}
