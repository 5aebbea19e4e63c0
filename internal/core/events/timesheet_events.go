package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeWeekSubmitted    = "timesheet.week_submitted"
	EventTypeTimesheetDeleted = "timesheet.bulk_deleted"
)

type WeekSubmittedEvent struct {
	BaseEvent
	EmployeeID     int64   `json:"employee_id"`
	WeekStart      string  `json:"week_start"`
	SubmittedCount int     `json:"submitted_count"`
	TotalHours     float64 `json:"total_hours"`
}

func NewWeekSubmittedEvent(employeeID int64, weekStart string, submittedCount int, totalHours float64) *WeekSubmittedEvent {
	return &WeekSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeWeekSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id":     employeeID,
				"week_start":      weekStart,
				"submitted_count": submittedCount,
				"total_hours":     totalHours,
			},
		},
		EmployeeID:     employeeID,
		WeekStart:      weekStart,
		SubmittedCount: submittedCount,
		TotalHours:     totalHours,
	}
}

type TimesheetDeletedEvent struct {
	BaseEvent
	EmployeeID   int64   `json:"employee_id"`
	TimesheetIDs []int64 `json:"timesheet_ids"`
}

func NewTimesheetDeletedEvent(employeeID int64, timesheetIDs []int64) *TimesheetDeletedEvent {
	return &TimesheetDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id":   employeeID,
				"timesheet_ids": timesheetIDs,
			},
		},
		EmployeeID:   employeeID,
		TimesheetIDs: timesheetIDs,
	}
}
