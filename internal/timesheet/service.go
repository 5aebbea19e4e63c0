package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/core/events"
)

// Repository is the store collaborator owning timesheet persistence and the
// read-only employee/project lookups validation needs. RunInTransaction
// yields a repository bound to one transaction; everything called on it
// either commits together or rolls back together.
type Repository interface {
	DuplicateChecker

	Create(ts *Timesheet) error
	GetByID(id int64) (*Timesheet, error)
	Update(ts *Timesheet) error
	Delete(id int64) error
	DeleteBatch(ids []int64) error
	List(filter ListFilter) ([]*Timesheet, int64, error)

	FindDraftsInWindow(employeeID int64, from, to time.Time) ([]*Timesheet, error)
	FindInWindow(employeeID int64, from, to time.Time) ([]*Timesheet, error)
	FindByIDs(ids []int64) ([]*Timesheet, error)

	// SubmittedHoursByDate sums already-submitted hours per date for one
	// employee, excluding the given entry ids (the candidate set itself).
	SubmittedHoursByDate(employeeID int64, from, to time.Time, excludeIDs []int64) (map[string]float64, error)

	GetEmployee(id int64) (*EmployeeRef, error)
	GetProject(id int64) (*ProjectRef, error)

	// PersistTransition moves every given draft to the new status in one
	// statement and fails the transaction when any of them is no longer a
	// draft, so a concurrent submission can never partially apply.
	PersistTransition(ids []int64, newStatus string, submittedAt time.Time) error

	RunInTransaction(fn func(tx Repository) error) error
}

// EventPublisher decouples the service from the event bus wiring.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the timesheet workflow engine: draft CRUD, weekly batch
// submission, bulk actions and summaries.
type Service struct {
	repo          Repository
	validator     *EntryValidator
	weekValidator *WeekValidator
	eventBus      EventPublisher
	logger        *slog.Logger
	now           func() time.Time
}

func NewService(repo Repository, policy WarningPolicy, eventBus EventPublisher, logger *slog.Logger) *Service {
	entryValidator := NewEntryValidator()
	return &Service{
		repo:          repo,
		validator:     entryValidator,
		weekValidator: NewWeekValidator(entryValidator, policy),
		eventBus:      eventBus,
		logger:        logger,
		now:           time.Now,
	}
}

// CreateTimesheet creates a draft entry for the target employee. The
// denormalized display names are derived from the live employee and project
// records inside the same transaction that persists the row.
func (s *Service) CreateTimesheet(actor Actor, dto CreateTimesheetDTO) (*Timesheet, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("timesheet validation failed", "error", err, "actor_employee_id", actor.EmployeeID)
		return nil, err
	}

	employeeID := dto.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		s.logger.Warn("create denied: not owner or admin", "actor_employee_id", actor.EmployeeID, "employee_id", employeeID)
		return nil, internal.ErrUnauthorizedAccess
	}

	date, err := dto.ParsedDate()
	if err != nil {
		return nil, internal.NewValidationError("date must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}

	entry := &Timesheet{
		EmployeeID:   employeeID,
		ProjectID:    dto.ProjectID,
		ActivityType: dto.ActivityType,
		Date:         date,
		HoursWorked:  dto.HoursWorked,
		Description:  dto.Description,
		Status:       StatusDraft,
	}

	err = s.repo.RunInTransaction(func(tx Repository) error {
		employee, project, err := s.resolveRefs(tx, employeeID, dto.ProjectID)
		if err != nil {
			return err
		}

		violations, err := s.validator.Validate(entry, employee, project, StatusDraft, tx)
		if err != nil {
			return internal.NewInternalError("failed to validate timesheet", err)
		}
		if len(violations) > 0 {
			return violationsError(violations)
		}

		entry.EmployeeName = employee.DisplayName
		entry.ProjectName = project.Name

		return tx.Create(entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("timesheet created",
		"timesheet_id", entry.ID,
		"employee_id", employeeID,
		"project_id", dto.ProjectID,
		"date", dto.Date,
		"hours", dto.HoursWorked)

	return entry, nil
}

// UpdateTimesheet applies a partial update to a draft. Submitted entries
// are append-only history and refuse all edits.
func (s *Service) UpdateTimesheet(actor Actor, id int64, dto UpdateTimesheetDTO) (*Timesheet, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var updated *Timesheet
	err := s.repo.RunInTransaction(func(tx Repository) error {
		entry, err := tx.GetByID(id)
		if err != nil {
			return err
		}
		if !actor.CanActFor(entry.EmployeeID) {
			return internal.ErrUnauthorizedAccess
		}
		if !entry.CanEdit() {
			return internal.ErrCannotModifySubmitted
		}

		if dto.ProjectID != nil {
			entry.ProjectID = *dto.ProjectID
		}
		if dto.ActivityType != nil {
			entry.ActivityType = *dto.ActivityType
		}
		if dto.Date != nil {
			date, err := time.Parse(dateLayout, *dto.Date)
			if err != nil {
				return internal.NewValidationError("date must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
			}
			entry.Date = date
		}
		if dto.HoursWorked != nil {
			entry.HoursWorked = *dto.HoursWorked
		}
		if dto.Description != nil {
			entry.Description = *dto.Description
		}

		employee, project, err := s.resolveRefs(tx, entry.EmployeeID, entry.ProjectID)
		if err != nil {
			return err
		}

		violations, err := s.validator.Validate(entry, employee, project, StatusDraft, tx)
		if err != nil {
			return internal.NewInternalError("failed to validate timesheet", err)
		}
		if len(violations) > 0 {
			return violationsError(violations)
		}

		entry.EmployeeName = employee.DisplayName
		entry.ProjectName = project.Name

		if err := tx.Update(entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("timesheet updated", "timesheet_id", id, "actor_employee_id", actor.EmployeeID)
	return updated, nil
}

// DeleteTimesheet removes a draft. Submitted entries cannot be deleted.
func (s *Service) DeleteTimesheet(actor Actor, id int64) error {
	return s.repo.RunInTransaction(func(tx Repository) error {
		entry, err := tx.GetByID(id)
		if err != nil {
			return err
		}
		if !actor.CanActFor(entry.EmployeeID) {
			return internal.ErrUnauthorizedAccess
		}
		if !entry.CanDelete() {
			return internal.ErrCannotModifySubmitted
		}
		if err := tx.Delete(id); err != nil {
			return err
		}
		s.logger.Info("timesheet deleted", "timesheet_id", id, "actor_employee_id", actor.EmployeeID)
		return nil
	})
}

func (s *Service) GetTimesheet(actor Actor, id int64) (*Timesheet, error) {
	entry, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(entry.EmployeeID) {
		s.logger.Warn("get denied: not owner or admin", "timesheet_id", id, "actor_employee_id", actor.EmployeeID)
		return nil, internal.ErrUnauthorizedAccess
	}
	return entry, nil
}

// ListTimesheets returns a filtered, paginated listing. Non-admin callers
// are always restricted to their own entries; when no date range is given
// the listing defaults to the current month.
func (s *Service) ListTimesheets(actor Actor, filter ListFilter) (*ListResult, error) {
	if !actor.Admin {
		filter.EmployeeID = actor.EmployeeID
	}
	if filter.DateFrom.IsZero() && filter.DateTo.IsZero() {
		today := truncateToDay(s.now())
		filter.DateFrom = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		filter.DateTo = today
	}
	filter.Normalize()

	entries, count, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list timesheets", "error", err)
		return nil, err
	}

	totalPages := count / int64(filter.PageSize)
	if count%int64(filter.PageSize) != 0 {
		totalPages++
	}

	return &ListResult{
		Timesheets: entries,
		Count:      count,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// MyTimesheets returns the actor's entries in a date range (defaulting to
// the current week so far) with the standing summary.
func (s *Service) MyTimesheets(actor Actor, from, to time.Time) (*MyTimesheetsResult, error) {
	today := truncateToDay(s.now())
	if from.IsZero() {
		from, _ = WeekWindow(today)
	}
	if to.IsZero() {
		to = today
	}

	entries, err := s.repo.FindInWindow(actor.EmployeeID, from, to)
	if err != nil {
		s.logger.Error("failed to load timesheets", "error", err, "employee_id", actor.EmployeeID)
		return nil, err
	}

	return &MyTimesheetsResult{
		Timesheets: entries,
		Summary:    Aggregate(entries),
		DateFrom:   DateKey(from),
		DateTo:     DateKey(to),
	}, nil
}

// Drafts lists the actor's draft entries.
func (s *Service) Drafts(actor Actor) ([]*Timesheet, error) {
	filter := ListFilter{EmployeeID: actor.EmployeeID, Status: StatusDraft, PageSize: 100}
	filter.Normalize()
	entries, _, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to load drafts", "error", err, "employee_id", actor.EmployeeID)
		return nil, err
	}
	return entries, nil
}

// EntryValidationResult is the outcome of validating a single proposed
// entry against a target status.
type EntryValidationResult struct {
	Valid      bool        `json:"valid"`
	Target     string      `json:"target_status"`
	Violations []Violation `json:"violations,omitempty"`
}

// ValidateEntry checks one proposed entry against the rules for the target
// status without persisting anything.
func (s *Service) ValidateEntry(actor Actor, dto CreateTimesheetDTO, targetStatus string) (*EntryValidationResult, error) {
	if targetStatus != StatusDraft && targetStatus != StatusSubmitted {
		return nil, internal.NewValidationError("target status must be draft or submitted", internal.ErrCodeValidationFailed)
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	employeeID := dto.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	date, err := dto.ParsedDate()
	if err != nil {
		return nil, internal.NewValidationError("date must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}

	entry := &Timesheet{
		EmployeeID:   employeeID,
		ProjectID:    dto.ProjectID,
		ActivityType: dto.ActivityType,
		Date:         date,
		HoursWorked:  dto.HoursWorked,
		Description:  dto.Description,
		Status:       StatusDraft,
	}

	employee, project, err := s.resolveRefs(s.repo, employeeID, dto.ProjectID)
	if err != nil {
		return nil, err
	}

	violations, err := s.validator.Validate(entry, employee, project, targetStatus, s.repo)
	if err != nil {
		return nil, internal.NewInternalError("failed to validate timesheet", err)
	}

	return &EntryValidationResult{
		Valid:      len(violations) == 0,
		Target:     targetStatus,
		Violations: violations,
	}, nil
}

// SubmitWeek is the only gate into the submitted state. It resolves the
// candidate draft set for the week, validates it as a unit and transitions
// every entry atomically; on any failure nothing is persisted.
func (s *Service) SubmitWeek(actor Actor, dto SubmitWeekDTO) (*SubmissionResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	weekStart, err := dto.ParsedWeekStart()
	if err != nil {
		return nil, internal.NewValidationError("week_start must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	if !IsMonday(weekStart) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("week_start %s is a %s, submissions are aligned to Monday weeks", dto.WeekStart, weekStart.Weekday()),
			internal.ErrCodeWeekStartNotMonday)
	}

	employeeID := dto.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	weekStart = truncateToDay(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	result := &SubmissionResult{
		WeekStart: DateKey(weekStart),
		WeekEnd:   DateKey(weekEnd),
	}

	err = s.repo.RunInTransaction(func(tx Repository) error {
		candidates, err := s.resolveCandidates(tx, employeeID, weekStart, weekEnd, dto.TimesheetIDs)
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			result.NothingToSubmit = true
			result.Message = "no draft timesheets to submit for this week"
			return nil
		}

		report, err := s.validateSet(tx, employeeID, candidates)
		if err != nil {
			return err
		}

		if !report.IsValid {
			result.Report = report
			result.Message = "validation failed, no timesheets were submitted"
			return nil
		}

		if report.HasWarnings && !dto.Force {
			result.Report = report
			result.RequiresForce = true
			result.Message = "warnings found, retry with force to submit anyway"
			return nil
		}

		submittedAt := s.now()
		ids := entryIDList(candidates)
		if err := tx.PersistTransition(ids, StatusSubmitted, submittedAt); err != nil {
			return err
		}
		for _, entry := range candidates {
			entry.Submit(submittedAt)
		}

		summary := Aggregate(candidates)
		result.Submitted = true
		result.SubmittedCount = len(candidates)
		result.SubmittedAt = &submittedAt
		result.Summary = &summary
		result.Message = fmt.Sprintf("submitted %d timesheets for week starting %s", len(candidates), result.WeekStart)
		if report.HasWarnings {
			result.Report = report
		}
		return nil
	})
	if err != nil {
		s.logger.Error("week submission failed", "error", err, "employee_id", employeeID, "week_start", dto.WeekStart)
		return nil, err
	}

	if result.Submitted {
		s.logger.Info("week submitted",
			"employee_id", employeeID,
			"week_start", result.WeekStart,
			"submitted_count", result.SubmittedCount,
			"total_hours", result.Summary.TotalHours)
		s.publish(events.NewWeekSubmittedEvent(employeeID, result.WeekStart, result.SubmittedCount, result.Summary.TotalHours))
	}

	return result, nil
}

// WeekValidationResult is the outcome of a dry-run week validation.
type WeekValidationResult struct {
	WeekStart      string            `json:"week_start"`
	WeekEnd        string            `json:"week_end"`
	CandidateCount int               `json:"candidate_count"`
	Report         *ValidationReport `json:"report"`
}

// ValidateWeek runs the same candidate resolution and week validation as
// SubmitWeek but never mutates anything.
func (s *Service) ValidateWeek(actor Actor, dto SubmitWeekDTO) (*WeekValidationResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	weekStart, err := dto.ParsedWeekStart()
	if err != nil {
		return nil, internal.NewValidationError("week_start must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	if !IsMonday(weekStart) {
		return nil, internal.NewValidationError(
			fmt.Sprintf("week_start %s is a %s, submissions are aligned to Monday weeks", dto.WeekStart, weekStart.Weekday()),
			internal.ErrCodeWeekStartNotMonday)
	}

	employeeID := dto.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	weekStart = truncateToDay(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	candidates, err := s.resolveCandidates(s.repo, employeeID, weekStart, weekEnd, dto.TimesheetIDs)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{IsValid: true}
	if len(candidates) > 0 {
		report, err = s.validateSet(s.repo, employeeID, candidates)
		if err != nil {
			return nil, err
		}
	}

	return &WeekValidationResult{
		WeekStart:      DateKey(weekStart),
		WeekEnd:        DateKey(weekEnd),
		CandidateCount: len(candidates),
		Report:         report,
	}, nil
}

// WeekSummary aggregates all entries (any status) inside one week window.
func (s *Service) WeekSummary(actor Actor, employeeID int64, weekStart time.Time) (*WeekSummaryResult, error) {
	if !IsMonday(weekStart) {
		return nil, internal.NewValidationError("week_start must be a Monday", internal.ErrCodeWeekStartNotMonday)
	}
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	weekStart = truncateToDay(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 6)

	entries, err := s.repo.FindInWindow(employeeID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	return &WeekSummaryResult{
		WeekStart:  DateKey(weekStart),
		WeekEnd:    DateKey(weekEnd),
		Summary:    Aggregate(entries),
		Timesheets: entries,
	}, nil
}

// BulkAction applies submit, delete or validate to an explicitly named set
// of owned entries. Any id that does not resolve to an entry owned by the
// target employee rejects the whole batch.
func (s *Service) BulkAction(actor Actor, dto BulkActionDTO) (*BulkActionResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	employeeID := dto.EmployeeID
	if employeeID == 0 {
		employeeID = actor.EmployeeID
	}
	if !actor.CanActFor(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	result := &BulkActionResult{Action: dto.Action}

	err := s.repo.RunInTransaction(func(tx Repository) error {
		entries, err := tx.FindByIDs(dto.TimesheetIDs)
		if err != nil {
			return err
		}

		byID := make(map[int64]*Timesheet, len(entries))
		for _, entry := range entries {
			byID[entry.ID] = entry
		}
		var badIDs []int64
		for _, id := range dto.TimesheetIDs {
			entry, ok := byID[id]
			if !ok || entry.EmployeeID != employeeID {
				badIDs = append(badIDs, id)
			}
		}
		if len(badIDs) > 0 {
			return internal.NewForbiddenError("some timesheet ids do not resolve to timesheets owned by this employee", internal.ErrCodeNotOwnedTimesheet).
				WithDetails(map[string]interface{}{"timesheet_ids": badIDs})
		}

		switch dto.Action {
		case BulkActionValidate:
			report, err := s.validateSet(tx, employeeID, entries)
			if err != nil {
				return err
			}
			result.Report = report
			result.Message = "validation only, nothing was changed"
			return nil

		case BulkActionSubmit:
			if nonDrafts := nonDraftIDs(entries); len(nonDrafts) > 0 {
				return internal.NewValidationError("only draft timesheets can be submitted", internal.ErrCodeTimesheetNotDraft).
					WithDetails(map[string]interface{}{"timesheet_ids": nonDrafts})
			}
			report, err := s.validateSet(tx, employeeID, entries)
			if err != nil {
				return err
			}
			if !report.IsValid {
				result.Report = report
				result.Message = "validation failed, no timesheets were submitted"
				return nil
			}

			submittedAt := s.now()
			ids := entryIDList(entries)
			if err := tx.PersistTransition(ids, StatusSubmitted, submittedAt); err != nil {
				return err
			}
			for _, entry := range entries {
				entry.Submit(submittedAt)
			}
			summary := Aggregate(entries)
			result.Applied = true
			result.AffectedIDs = ids
			result.Summary = &summary
			result.Report = report
			result.Message = fmt.Sprintf("submitted %d timesheets", len(ids))
			return nil

		case BulkActionDelete:
			// Mixed batches are rejected rather than partially applied,
			// consistent with the all-or-nothing rule everywhere else.
			if nonDrafts := nonDraftIDs(entries); len(nonDrafts) > 0 {
				return internal.NewValidationError("batch contains submitted timesheets, which cannot be deleted", internal.ErrCodeTimesheetNotDraft).
					WithDetails(map[string]interface{}{"timesheet_ids": nonDrafts})
			}
			ids := entryIDList(entries)
			if err := tx.DeleteBatch(ids); err != nil {
				return err
			}
			result.Applied = true
			result.AffectedIDs = ids
			result.Message = fmt.Sprintf("deleted %d draft timesheets", len(ids))
			return nil
		}
		return internal.NewValidationError("action must be submit, delete or validate", internal.ErrCodeInvalidBulkAction)
	})
	if err != nil {
		s.logger.Error("bulk action failed", "error", err, "action", dto.Action, "employee_id", employeeID)
		return nil, err
	}

	if result.Applied {
		s.logger.Info("bulk action applied", "action", dto.Action, "employee_id", employeeID, "count", len(result.AffectedIDs))
		switch dto.Action {
		case BulkActionSubmit:
			s.publish(events.NewWeekSubmittedEvent(employeeID, "", len(result.AffectedIDs), result.Summary.TotalHours))
		case BulkActionDelete:
			s.publish(events.NewTimesheetDeletedEvent(employeeID, result.AffectedIDs))
		}
	}

	return result, nil
}

// TimesheetSummary aggregates entries in a date range, defaulting to the
// last 30 days. Admins may aggregate across all employees by passing
// employeeID 0.
func (s *Service) TimesheetSummary(actor Actor, employeeID int64, from, to time.Time) (*MyTimesheetsResult, error) {
	if !actor.Admin {
		employeeID = actor.EmployeeID
	}

	today := truncateToDay(s.now())
	if from.IsZero() {
		from = today.AddDate(0, 0, -30)
	}
	if to.IsZero() {
		to = today
	}

	entries, err := s.repo.FindInWindow(employeeID, from, to)
	if err != nil {
		s.logger.Error("failed to load summary entries", "error", err, "employee_id", employeeID)
		return nil, err
	}

	return &MyTimesheetsResult{
		Timesheets: entries,
		Summary:    Aggregate(entries),
		DateFrom:   DateKey(from),
		DateTo:     DateKey(to),
	}, nil
}

// resolveCandidates builds the candidate set for a week submission: either
// all of the employee's drafts in the window, or the explicit ids
// intersected with {owned, draft, inside window}.
func (s *Service) resolveCandidates(tx Repository, employeeID int64, weekStart, weekEnd time.Time, explicitIDs []int64) ([]*Timesheet, error) {
	if len(explicitIDs) == 0 {
		return tx.FindDraftsInWindow(employeeID, weekStart, weekEnd)
	}

	entries, err := tx.FindByIDs(explicitIDs)
	if err != nil {
		return nil, err
	}
	var candidates []*Timesheet
	for _, entry := range entries {
		if entry.EmployeeID != employeeID || !entry.IsDraft() || !withinWindow(entry.Date, weekStart, weekEnd) {
			continue
		}
		candidates = append(candidates, entry)
	}
	return candidates, nil
}

// validateSet runs the week validator over a candidate set, resolving the
// referenced employee/project state and the already-submitted hours through
// the same repository (and therefore the same transaction snapshot).
func (s *Service) validateSet(tx Repository, employeeID int64, entries []*Timesheet) (*ValidationReport, error) {
	employees := make(map[int64]*EmployeeRef)
	projects := make(map[int64]*ProjectRef)

	for _, entry := range entries {
		if _, ok := employees[entry.EmployeeID]; !ok {
			employee, err := tx.GetEmployee(entry.EmployeeID)
			if err != nil {
				return nil, err
			}
			employees[entry.EmployeeID] = employee
		}
		if _, ok := projects[entry.ProjectID]; !ok {
			project, err := tx.GetProject(entry.ProjectID)
			if err != nil {
				return nil, err
			}
			projects[entry.ProjectID] = project
		}
	}

	minDate, maxDate := dateBounds(entries)
	submittedHours, err := tx.SubmittedHoursByDate(employeeID, minDate, maxDate, entryIDList(entries))
	if err != nil {
		return nil, err
	}

	return s.weekValidator.Validate(WeekValidationInput{
		Entries:        entries,
		Employees:      employees,
		Projects:       projects,
		SubmittedHours: submittedHours,
		Dupes:          tx,
	})
}

func (s *Service) resolveRefs(tx Repository, employeeID, projectID int64) (*EmployeeRef, *ProjectRef, error) {
	employee, err := tx.GetEmployee(employeeID)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, internal.ErrEmployeeNotFound
	}
	project, err := tx.GetProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, internal.ErrProjectNotFound
	}
	return employee, project, nil
}

func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "error", err, "event_type", event.EventType())
	}
}

func violationsError(violations []Violation) *internal.AppError {
	fieldErrors := make([]internal.ValidationError, 0, len(violations))
	for _, v := range violations {
		fieldErrors = append(fieldErrors, internal.ValidationError{
			Field:   v.Field,
			Message: v.Message,
			Code:    string(v.Code),
		})
	}
	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
		WithDetails(internal.ValidationErrors{Errors: fieldErrors})
}

func entryIDList(entries []*Timesheet) []int64 {
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func nonDraftIDs(entries []*Timesheet) []int64 {
	var ids []int64
	for _, entry := range entries {
		if !entry.IsDraft() {
			ids = append(ids, entry.ID)
		}
	}
	return ids
}

func dateBounds(entries []*Timesheet) (time.Time, time.Time) {
	if len(entries) == 0 {
		return time.Time{}, time.Time{}
	}
	min, max := entries[0].Date, entries[0].Date
	for _, entry := range entries[1:] {
		if entry.Date.Before(min) {
			min = entry.Date
		}
		if entry.Date.After(max) {
			max = entry.Date
		}
	}
	return truncateToDay(min), truncateToDay(max)
}
