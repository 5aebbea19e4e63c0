package timesheet

import (
	"fmt"
	"sort"

	"github.com/frahmantamala/timesheet-management/internal"
)

// Warning is an advisory finding that never blocks submission on its own;
// the caller can force the batch through.
type Warning struct {
	Code     string  `json:"code"`
	Message  string  `json:"message"`
	EntryIDs []int64 `json:"entry_ids,omitempty"`
	Date     string  `json:"date,omitempty"`
}

const (
	WarningCodeMissingDescription = "MISSING_DESCRIPTION"
	WarningCodeLongDay            = "LONG_DAY"
)

// ValidationReport is the outcome of validating a candidate set for
// simultaneous submission. IsValid is true iff no blocking errors were
// found, regardless of warnings.
type ValidationReport struct {
	IsValid       bool                  `json:"is_valid"`
	HasWarnings   bool                  `json:"has_warnings"`
	ErrorsByEntry map[int64][]Violation `json:"errors_by_entry,omitempty"`
	BatchErrors   []Violation           `json:"batch_errors,omitempty"`
	Warnings      []Warning             `json:"warnings,omitempty"`
}

// AllErrors flattens per-entry and batch-level errors into one slice,
// keeping batch errors last.
func (r *ValidationReport) AllErrors() []Violation {
	var out []Violation
	ids := make([]int64, 0, len(r.ErrorsByEntry))
	for id := range r.ErrorsByEntry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		out = append(out, r.ErrorsByEntry[id]...)
	}
	out = append(out, r.BatchErrors...)
	return out
}

// WarningPolicy is the single extension point for advisory checks, so the
// thresholds can be tuned without touching the blocking rules.
type WarningPolicy interface {
	Evaluate(entries []*Timesheet, dailyTotals map[string]float64) []Warning
}

// DefaultWarningPolicy warns on entries without a description and on days
// whose total is unusually high for a working day.
type DefaultWarningPolicy struct {
	LongDayHours       float64
	WarnOnMissingNotes bool
}

func NewDefaultWarningPolicy() *DefaultWarningPolicy {
	return &DefaultWarningPolicy{LongDayHours: 12, WarnOnMissingNotes: true}
}

func (p *DefaultWarningPolicy) Evaluate(entries []*Timesheet, dailyTotals map[string]float64) []Warning {
	var warnings []Warning

	if p.WarnOnMissingNotes {
		var missing []int64
		for _, entry := range entries {
			if entry.Description == "" {
				missing = append(missing, entry.ID)
			}
		}
		if len(missing) > 0 {
			warnings = append(warnings, Warning{
				Code:     WarningCodeMissingDescription,
				Message:  fmt.Sprintf("%d entries have no description", len(missing)),
				EntryIDs: missing,
			})
		}
	}

	if p.LongDayHours > 0 {
		dates := make([]string, 0, len(dailyTotals))
		for date := range dailyTotals {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			total := dailyTotals[date]
			if total > p.LongDayHours && total <= MaxHoursPerDay {
				warnings = append(warnings, Warning{
					Code:    WarningCodeLongDay,
					Message: fmt.Sprintf("%.2f hours on %s is unusually high", total, date),
					Date:    date,
				})
			}
		}
	}

	return warnings
}

// WeekValidationInput carries the candidate set plus the resolved state the
// checks need, so validation itself stays free of store access and can run
// against one consistent snapshot.
type WeekValidationInput struct {
	Entries   []*Timesheet
	Employees map[int64]*EmployeeRef
	Projects  map[int64]*ProjectRef

	// SubmittedHours maps DateKey to hours this employee already has
	// submitted on that date outside the candidate set.
	SubmittedHours map[string]float64

	Dupes DuplicateChecker
}

// WeekValidator validates a set of entries intended for simultaneous
// submission: per-entry rules, in-set duplicate slots, daily 24h ceilings,
// then the advisory warning policy.
type WeekValidator struct {
	entries *EntryValidator
	policy  WarningPolicy
}

func NewWeekValidator(entryValidator *EntryValidator, policy WarningPolicy) *WeekValidator {
	if policy == nil {
		policy = NewDefaultWarningPolicy()
	}
	return &WeekValidator{entries: entryValidator, policy: policy}
}

func (v *WeekValidator) Validate(in WeekValidationInput) (*ValidationReport, error) {
	report := &ValidationReport{
		IsValid:       true,
		ErrorsByEntry: make(map[int64][]Violation),
	}

	// Per-entry rules, target = submitted.
	for _, entry := range in.Entries {
		violations, err := v.entries.Validate(entry, in.Employees[entry.EmployeeID], in.Projects[entry.ProjectID], StatusSubmitted, in.Dupes)
		if err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			report.ErrorsByEntry[entry.ID] = violations
		}
	}

	// Duplicate slots inside the candidate set itself: both entries would
	// land on the same submitted slot, so the batch must be rejected even
	// though neither exists as submitted yet.
	bySlot := make(map[SlotKey][]int64)
	for _, entry := range in.Entries {
		key := entry.SlotKey()
		bySlot[key] = append(bySlot[key], entry.ID)
	}
	slots := make([]SlotKey, 0, len(bySlot))
	for key := range bySlot {
		if len(bySlot[key]) > 1 {
			slots = append(slots, key)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].ProjectID < slots[j].ProjectID
	})
	for _, key := range slots {
		report.BatchErrors = append(report.BatchErrors, Violation{
			Code:     internal.ErrCodeDuplicateEntry,
			Message:  fmt.Sprintf("multiple entries in the batch share the slot %s / project %d / %s", key.Date, key.ProjectID, key.ActivityType),
			EntryIDs: bySlot[key],
		})
	}

	// Daily ceiling: candidate hours merged with already-submitted hours on
	// the same date must not exceed 24.
	dailyTotals := make(map[string]float64)
	for date, hours := range in.SubmittedHours {
		dailyTotals[date] = hours
	}
	entriesByDate := make(map[string][]int64)
	for _, entry := range in.Entries {
		date := DateKey(entry.Date)
		dailyTotals[date] = roundHours(dailyTotals[date] + entry.HoursWorked)
		entriesByDate[date] = append(entriesByDate[date], entry.ID)
	}
	dates := make([]string, 0, len(dailyTotals))
	for date := range dailyTotals {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		if dailyTotals[date] > MaxHoursPerDay {
			report.BatchErrors = append(report.BatchErrors, Violation{
				Code:     internal.ErrCodeDailyHoursExceeded,
				Field:    "hours_worked",
				Message:  fmt.Sprintf("total hours on %s would be %.2f, exceeding the daily limit of %.0f", date, dailyTotals[date], MaxHoursPerDay),
				EntryIDs: entriesByDate[date],
			})
		}
	}

	report.IsValid = len(report.ErrorsByEntry) == 0 && len(report.BatchErrors) == 0

	report.Warnings = v.policy.Evaluate(in.Entries, dailyTotals)
	report.HasWarnings = len(report.Warnings) > 0

	return report, nil
}
