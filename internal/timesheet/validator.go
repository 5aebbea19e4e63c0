package timesheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
)

// Violation is one structured validation failure. Callers branch on Code
// rather than parsing the message.
type Violation struct {
	Code     internal.ErrorCode `json:"code"`
	Field    string             `json:"field,omitempty"`
	Message  string             `json:"message"`
	EntryIDs []int64            `json:"entry_ids,omitempty"`
}

// DuplicateChecker answers whether a persisted entry already occupies the
// same (employee, project, date, activity, status) slot. excludeID skips the
// entry itself when re-validating a persisted record.
type DuplicateChecker interface {
	ExistsForSlot(employeeID, projectID int64, date time.Time, activityType, status string, excludeID int64) (bool, error)
}

// EntryValidator decides whether a single entry is fit to exist in a target
// status. Rules run in a fixed order and stop at the first blocking failure,
// so an entry yields at most one violation per pass.
type EntryValidator struct {
	now func() time.Time
}

func NewEntryValidator() *EntryValidator {
	return &EntryValidator{now: time.Now}
}

// NewEntryValidatorAt pins "today" for the future-date rule; used by tests.
func NewEntryValidatorAt(now func() time.Time) *EntryValidator {
	return &EntryValidator{now: now}
}

// Validate applies the rule chain for the given target status:
//
//	1. employee must be active
//	2. project must be active
//	3. hours in (0, 24]
//	4. activity allowed by the project (when it declares a set)
//	5. date not in the future (submitted target only)
//	6. no other entry in the same slot with the target status
//
// The duplicate rule checks against the target status, so a draft can be
// validated for submission even while an identical-key draft still exists.
func (v *EntryValidator) Validate(entry *Timesheet, employee *EmployeeRef, project *ProjectRef, targetStatus string, dupes DuplicateChecker) ([]Violation, error) {
	if employee == nil || !employee.IsActive {
		return []Violation{{
			Code:     internal.ErrCodeInactiveEmployee,
			Field:    "employee_id",
			Message:  "cannot log time for an inactive employee",
			EntryIDs: entryIDs(entry),
		}}, nil
	}

	if project == nil || !project.IsActive() {
		return []Violation{{
			Code:     internal.ErrCodeInactiveProject,
			Field:    "project_id",
			Message:  "cannot log time against a project that is not active",
			EntryIDs: entryIDs(entry),
		}}, nil
	}

	if entry.HoursWorked <= MinHoursPerEntry || entry.HoursWorked > MaxHoursPerEntry {
		return []Violation{{
			Code:     internal.ErrCodeHoursOutOfRange,
			Field:    "hours_worked",
			Message:  fmt.Sprintf("hours worked must be greater than 0 and at most 24, got %.2f", entry.HoursWorked),
			EntryIDs: entryIDs(entry),
		}}, nil
	}

	if !project.AllowsActivity(entry.ActivityType) {
		return []Violation{{
			Code:     internal.ErrCodeInvalidActivityType,
			Field:    "activity_type",
			Message:  fmt.Sprintf("activity type %q is not valid for project %q, valid activities: %s", entry.ActivityType, project.Name, strings.Join(project.ActivityTypes, ", ")),
			EntryIDs: entryIDs(entry),
		}}, nil
	}

	if targetStatus == StatusSubmitted {
		today := truncateToDay(v.now())
		if truncateToDay(entry.Date).After(today) {
			return []Violation{{
				Code:     internal.ErrCodeFutureDate,
				Field:    "date",
				Message:  fmt.Sprintf("date %s is in the future and cannot be submitted", DateKey(entry.Date)),
				EntryIDs: entryIDs(entry),
			}}, nil
		}
	}

	if dupes != nil {
		exists, err := dupes.ExistsForSlot(entry.EmployeeID, entry.ProjectID, entry.Date, entry.ActivityType, targetStatus, entry.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return []Violation{{
				Code:     internal.ErrCodeDuplicateEntry,
				Message:  fmt.Sprintf("a %s entry already exists for this employee, project, date and activity type", targetStatus),
				EntryIDs: entryIDs(entry),
			}}, nil
		}
	}

	return nil, nil
}

func entryIDs(entry *Timesheet) []int64 {
	if entry.ID == 0 {
		return nil
	}
	return []int64{entry.ID}
}
