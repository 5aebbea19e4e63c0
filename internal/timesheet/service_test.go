package timesheet_test

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/core/events"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
)

func TestTimesheet(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Timesheet Module Suite")
}

// Mock repository for testing. Transactions run against the same store;
// PersistTransition verifies every id is still a draft before mutating
// anything, matching the all-or-nothing guard of the real repository.
type mockTimesheetRepo struct {
	entries   map[int64]*timesheet.Timesheet
	employees map[int64]*timesheet.EmployeeRef
	projects  map[int64]*timesheet.ProjectRef
	nextID    int64

	// beforeTransition simulates a concurrent writer between candidate
	// resolution and the status transition.
	beforeTransition func()
}

func newMockTimesheetRepo() *mockTimesheetRepo {
	return &mockTimesheetRepo{
		entries:   make(map[int64]*timesheet.Timesheet),
		employees: make(map[int64]*timesheet.EmployeeRef),
		projects:  make(map[int64]*timesheet.ProjectRef),
		nextID:    1,
	}
}

func (m *mockTimesheetRepo) seed(entry *timesheet.Timesheet) *timesheet.Timesheet {
	if entry.ID == 0 {
		entry.ID = m.nextID
		m.nextID++
	} else if entry.ID >= m.nextID {
		m.nextID = entry.ID + 1
	}
	m.entries[entry.ID] = entry
	return entry
}

func (m *mockTimesheetRepo) Create(ts *timesheet.Timesheet) error {
	ts.ID = m.nextID
	m.nextID++
	ts.CreatedAt = time.Now()
	ts.UpdatedAt = time.Now()
	m.entries[ts.ID] = ts
	return nil
}

func (m *mockTimesheetRepo) GetByID(id int64) (*timesheet.Timesheet, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, internal.ErrTimesheetNotFound
	}
	return entry, nil
}

func (m *mockTimesheetRepo) Update(ts *timesheet.Timesheet) error {
	if _, ok := m.entries[ts.ID]; !ok {
		return internal.ErrTimesheetNotFound
	}
	ts.UpdatedAt = time.Now()
	m.entries[ts.ID] = ts
	return nil
}

func (m *mockTimesheetRepo) Delete(id int64) error {
	if _, ok := m.entries[id]; !ok {
		return internal.ErrTimesheetNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockTimesheetRepo) DeleteBatch(ids []int64) error {
	for _, id := range ids {
		if _, ok := m.entries[id]; !ok {
			return internal.ErrSubmissionConflict
		}
	}
	for _, id := range ids {
		delete(m.entries, id)
	}
	return nil
}

func (m *mockTimesheetRepo) List(filter timesheet.ListFilter) ([]*timesheet.Timesheet, int64, error) {
	var out []*timesheet.Timesheet
	for _, entry := range m.entries {
		if filter.EmployeeID != 0 && entry.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ProjectID != 0 && entry.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *mockTimesheetRepo) FindDraftsInWindow(employeeID int64, from, to time.Time) ([]*timesheet.Timesheet, error) {
	var out []*timesheet.Timesheet
	for _, entry := range m.entries {
		if entry.EmployeeID == employeeID && entry.IsDraft() && inWindow(entry.Date, from, to) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTimesheetRepo) FindInWindow(employeeID int64, from, to time.Time) ([]*timesheet.Timesheet, error) {
	var out []*timesheet.Timesheet
	for _, entry := range m.entries {
		if employeeID != 0 && entry.EmployeeID != employeeID {
			continue
		}
		if inWindow(entry.Date, from, to) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockTimesheetRepo) FindByIDs(ids []int64) ([]*timesheet.Timesheet, error) {
	var out []*timesheet.Timesheet
	for _, id := range ids {
		if entry, ok := m.entries[id]; ok {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *mockTimesheetRepo) SubmittedHoursByDate(employeeID int64, from, to time.Time, excludeIDs []int64) (map[string]float64, error) {
	excluded := make(map[int64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	totals := make(map[string]float64)
	for _, entry := range m.entries {
		if entry.EmployeeID != employeeID || !entry.IsSubmitted() {
			continue
		}
		if _, skip := excluded[entry.ID]; skip {
			continue
		}
		if inWindow(entry.Date, from, to) {
			totals[timesheet.DateKey(entry.Date)] += entry.HoursWorked
		}
	}
	return totals, nil
}

func (m *mockTimesheetRepo) ExistsForSlot(employeeID, projectID int64, date time.Time, activityType, status string, excludeID int64) (bool, error) {
	for _, entry := range m.entries {
		if entry.ID == excludeID {
			continue
		}
		if entry.EmployeeID == employeeID && entry.ProjectID == projectID &&
			timesheet.DateKey(entry.Date) == timesheet.DateKey(date) &&
			entry.ActivityType == activityType && entry.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTimesheetRepo) GetEmployee(id int64) (*timesheet.EmployeeRef, error) {
	return m.employees[id], nil
}

func (m *mockTimesheetRepo) GetProject(id int64) (*timesheet.ProjectRef, error) {
	return m.projects[id], nil
}

func (m *mockTimesheetRepo) PersistTransition(ids []int64, newStatus string, submittedAt time.Time) error {
	if m.beforeTransition != nil {
		m.beforeTransition()
		m.beforeTransition = nil
	}
	for _, id := range ids {
		entry, ok := m.entries[id]
		if !ok || !entry.IsDraft() {
			return internal.ErrSubmissionConflict
		}
	}
	for _, id := range ids {
		entry := m.entries[id]
		entry.Status = newStatus
		at := submittedAt
		entry.SubmittedAt = &at
	}
	return nil
}

func (m *mockTimesheetRepo) RunInTransaction(fn func(tx timesheet.Repository) error) error {
	return fn(m)
}

func inWindow(date, from, to time.Time) bool {
	key := timesheet.DateKey(date)
	return key >= timesheet.DateKey(from) && key <= timesheet.DateKey(to)
}

type mockEventBus struct {
	published []events.Event
}

func (m *mockEventBus) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Timesheet Service", func() {
	var (
		repo     *mockTimesheetRepo
		eventBus *mockEventBus
		service  *timesheet.Service

		owner timesheet.Actor
		other timesheet.Actor
		admin timesheet.Actor

		weekStart time.Time
	)

	// The previous Monday-aligned week, so every date is safely in the past.
	pastWeekStart := func() time.Time {
		monday, _ := timesheet.WeekWindow(time.Now())
		return monday.AddDate(0, 0, -7)
	}

	weekDay := func(offset int) string {
		return timesheet.DateKey(weekStart.AddDate(0, 0, offset))
	}

	seedDraft := func(id int64, dayOffset int, hours float64, activity string) *timesheet.Timesheet {
		date, _ := time.Parse("2006-01-02", weekDay(dayOffset))
		return repo.seed(&timesheet.Timesheet{
			ID:           id,
			EmployeeID:   1,
			ProjectID:    2,
			ActivityType: activity,
			Date:         date,
			HoursWorked:  hours,
			Description:  "notes",
			Status:       timesheet.StatusDraft,
			ProjectName:  "Internal Tools",
		})
	}

	BeforeEach(func() {
		repo = newMockTimesheetRepo()
		eventBus = &mockEventBus{}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = timesheet.NewService(repo, timesheet.NewDefaultWarningPolicy(), eventBus, logger)

		repo.employees[1] = &timesheet.EmployeeRef{ID: 1, EmployeeID: "EMP001", DisplayName: "Raka Pratama", IsActive: true}
		repo.employees[5] = &timesheet.EmployeeRef{ID: 5, EmployeeID: "EMP005", DisplayName: "Sari Wulandari", IsActive: true}
		repo.projects[2] = &timesheet.ProjectRef{ID: 2, Name: "Internal Tools", Status: "active", ActivityTypes: []string{"development", "testing", "code_review"}}

		owner = timesheet.Actor{EmployeeID: 1}
		other = timesheet.Actor{EmployeeID: 5}
		admin = timesheet.Actor{EmployeeID: 99, Admin: true}

		weekStart = pastWeekStart()
	})

	Describe("CreateTimesheet", func() {
		It("creates a draft with denormalized names", func() {
			entry, err := service.CreateTimesheet(owner, timesheet.CreateTimesheetDTO{
				ProjectID:    2,
				ActivityType: "development",
				Date:         weekDay(0),
				HoursWorked:  8,
				Description:  "feature work",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.ID).NotTo(BeZero())
			Expect(entry.Status).To(Equal(timesheet.StatusDraft))
			Expect(entry.EmployeeID).To(Equal(int64(1)))
			Expect(entry.EmployeeName).To(Equal("Raka Pratama"))
			Expect(entry.ProjectName).To(Equal("Internal Tools"))
		})

		It("refuses to create for another employee without admin", func() {
			_, err := service.CreateTimesheet(owner, timesheet.CreateTimesheetDTO{
				EmployeeID:   5,
				ProjectID:    2,
				ActivityType: "development",
				Date:         weekDay(0),
				HoursWorked:  8,
			})

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("lets an admin create on behalf of an employee", func() {
			entry, err := service.CreateTimesheet(admin, timesheet.CreateTimesheetDTO{
				EmployeeID:   5,
				ProjectID:    2,
				ActivityType: "development",
				Date:         weekDay(0),
				HoursWorked:  8,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.EmployeeID).To(Equal(int64(5)))
		})

		It("rejects a second draft in the same slot", func() {
			seedDraft(1, 0, 4, "development")

			_, err := service.CreateTimesheet(owner, timesheet.CreateTimesheetDTO{
				ProjectID:    2,
				ActivityType: "development",
				Date:         weekDay(0),
				HoursWorked:  4,
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("rejects an archived project", func() {
			repo.projects[2].Status = "archived"

			_, err := service.CreateTimesheet(owner, timesheet.CreateTimesheetDTO{
				ProjectID:    2,
				ActivityType: "development",
				Date:         weekDay(0),
				HoursWorked:  8,
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateTimesheet", func() {
		It("applies partial updates to a draft", func() {
			seedDraft(1, 0, 4, "development")
			hours := 6.5

			updated, err := service.UpdateTimesheet(owner, 1, timesheet.UpdateTimesheetDTO{HoursWorked: &hours})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.HoursWorked).To(Equal(6.5))
			Expect(updated.ActivityType).To(Equal("development"))
		})

		It("refuses to touch a submitted entry", func() {
			entry := seedDraft(1, 0, 4, "development")
			now := time.Now()
			entry.Submit(now)
			hours := 6.0

			_, err := service.UpdateTimesheet(owner, 1, timesheet.UpdateTimesheetDTO{HoursWorked: &hours})

			Expect(err).To(Equal(internal.ErrCannotModifySubmitted))
		})

		It("refuses updates from a non-owner", func() {
			seedDraft(1, 0, 4, "development")
			hours := 6.0

			_, err := service.UpdateTimesheet(other, 1, timesheet.UpdateTimesheetDTO{HoursWorked: &hours})

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})
	})

	Describe("DeleteTimesheet", func() {
		It("deletes a draft", func() {
			seedDraft(1, 0, 4, "development")

			Expect(service.DeleteTimesheet(owner, 1)).To(Succeed())
			Expect(repo.entries).NotTo(HaveKey(int64(1)))
		})

		It("refuses to delete a submitted entry", func() {
			entry := seedDraft(1, 0, 4, "development")
			entry.Submit(time.Now())

			err := service.DeleteTimesheet(owner, 1)

			Expect(err).To(Equal(internal.ErrCannotModifySubmitted))
			Expect(repo.entries).To(HaveKey(int64(1)))
		})
	})

	Describe("GetTimesheet", func() {
		It("returns an owned entry and hides entries of others", func() {
			seedDraft(1, 0, 4, "development")

			entry, err := service.GetTimesheet(owner, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.ID).To(Equal(int64(1)))

			_, err = service.GetTimesheet(other, 1)
			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))

			_, err = service.GetTimesheet(admin, 1)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ListTimesheets", func() {
		It("forces non-admin callers onto their own entries", func() {
			seedDraft(1, 0, 4, "development")
			date, _ := time.Parse("2006-01-02", weekDay(0))
			repo.seed(&timesheet.Timesheet{ID: 2, EmployeeID: 5, ProjectID: 2, ActivityType: "testing", Date: date, HoursWorked: 3, Status: timesheet.StatusDraft})

			result, err := service.ListTimesheets(owner, timesheet.ListFilter{EmployeeID: 5, DateFrom: weekStart, DateTo: weekStart.AddDate(0, 0, 6)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Timesheets).To(HaveLen(1))
			Expect(result.Timesheets[0].EmployeeID).To(Equal(int64(1)))
		})
	})

	Describe("SubmitWeek", func() {
		It("rejects a week start that is not a Monday", func() {
			_, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(2)})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeWeekStartNotMonday))
		})

		It("reports when there is nothing to submit", func() {
			result, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.NothingToSubmit).To(BeTrue())
			Expect(result.Submitted).To(BeFalse())
		})

		It("submits every draft in the window atomically", func() {
			seedDraft(1, 0, 8, "development")
			seedDraft(2, 1, 6, "development")
			seedDraft(3, 1, 2, "code_review")

			result, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeTrue())
			Expect(result.SubmittedCount).To(Equal(3))
			Expect(result.Summary.TotalHours).To(Equal(16.0))
			Expect(result.WeekStart).To(Equal(weekDay(0)))
			Expect(result.WeekEnd).To(Equal(weekDay(6)))

			for id := int64(1); id <= 3; id++ {
				Expect(repo.entries[id].Status).To(Equal(timesheet.StatusSubmitted))
				Expect(repo.entries[id].SubmittedAt).NotTo(BeNil())
			}

			Expect(eventBus.published).To(HaveLen(1))
			Expect(eventBus.published[0].EventType()).To(Equal(events.EventTypeWeekSubmitted))
		})

		It("submits nothing when any entry fails validation", func() {
			seedDraft(1, 0, 8, "development")
			bad := seedDraft(2, 1, 8, "development")
			bad.HoursWorked = 0

			result, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeFalse())
			Expect(result.Report).NotTo(BeNil())
			Expect(result.Report.IsValid).To(BeFalse())

			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusDraft))
			Expect(repo.entries[2].Status).To(Equal(timesheet.StatusDraft))
			Expect(eventBus.published).To(BeEmpty())
		})

		It("requires force when the batch only has warnings", func() {
			entry := seedDraft(1, 0, 8, "development")
			entry.Description = ""

			result, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeFalse())
			Expect(result.RequiresForce).To(BeTrue())
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusDraft))

			result, err = service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0), Force: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeTrue())
			Expect(result.Report.HasWarnings).To(BeTrue())
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusSubmitted))
		})

		It("narrows the batch to explicit ids owned, draft and inside the window", func() {
			seedDraft(1, 0, 8, "development")
			seedDraft(2, 1, 6, "development")

			result, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{
				WeekStart:    weekDay(0),
				TimesheetIDs: []int64{1},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeTrue())
			Expect(result.SubmittedCount).To(Equal(1))
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusSubmitted))
			Expect(repo.entries[2].Status).To(Equal(timesheet.StatusDraft))
		})

		It("fails the whole batch on a concurrent submission", func() {
			seedDraft(1, 0, 8, "development")
			seedDraft(2, 1, 6, "development")

			repo.beforeTransition = func() {
				repo.entries[2].Status = timesheet.StatusSubmitted
			}

			_, err := service.SubmitWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).To(Equal(internal.ErrSubmissionConflict))
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusDraft))
			Expect(eventBus.published).To(BeEmpty())
		})

		It("refuses to submit for another employee without admin", func() {
			_, err := service.SubmitWeek(other, timesheet.SubmitWeekDTO{WeekStart: weekDay(0), EmployeeID: 1})

			Expect(err).To(Equal(internal.ErrUnauthorizedAccess))
		})

		It("lets an admin submit on behalf of an employee", func() {
			seedDraft(1, 0, 8, "development")

			result, err := service.SubmitWeek(admin, timesheet.SubmitWeekDTO{WeekStart: weekDay(0), EmployeeID: 1})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Submitted).To(BeTrue())
		})
	})

	Describe("ValidateWeek", func() {
		It("reports problems without changing anything", func() {
			bad := seedDraft(1, 0, 8, "development")
			bad.HoursWorked = 30

			result, err := service.ValidateWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.CandidateCount).To(Equal(1))
			Expect(result.Report.IsValid).To(BeFalse())
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusDraft))
		})

		It("returns a valid report for an empty candidate set", func() {
			result, err := service.ValidateWeek(owner, timesheet.SubmitWeekDTO{WeekStart: weekDay(0)})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.CandidateCount).To(BeZero())
			Expect(result.Report.IsValid).To(BeTrue())
		})
	})

	Describe("WeekSummary", func() {
		It("aggregates all entries inside the week window", func() {
			seedDraft(1, 0, 8, "development")
			submitted := seedDraft(2, 1, 6, "testing")
			submitted.Submit(time.Now())

			result, err := service.WeekSummary(owner, 0, weekStart)

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary.TotalHours).To(Equal(14.0))
			Expect(result.Summary.DraftCount).To(Equal(1))
			Expect(result.Summary.SubmittedCount).To(Equal(1))
		})

		It("rejects non-Monday week starts", func() {
			_, err := service.WeekSummary(owner, 0, weekStart.AddDate(0, 0, 3))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeWeekStartNotMonday))
		})
	})

	Describe("BulkAction", func() {
		It("rejects the whole batch when an id is not owned", func() {
			seedDraft(1, 0, 8, "development")
			date, _ := time.Parse("2006-01-02", weekDay(0))
			repo.seed(&timesheet.Timesheet{ID: 2, EmployeeID: 5, ProjectID: 2, ActivityType: "testing", Date: date, HoursWorked: 3, Status: timesheet.StatusDraft})

			_, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionDelete,
				TimesheetIDs: []int64{1, 2},
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotOwnedTimesheet))
			Expect(repo.entries).To(HaveKey(int64(1)))
		})

		It("rejects the whole batch when an id does not exist", func() {
			seedDraft(1, 0, 8, "development")

			_, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionDelete,
				TimesheetIDs: []int64{1, 42},
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNotOwnedTimesheet))
		})

		It("deletes a batch of drafts and publishes the deletion", func() {
			seedDraft(1, 0, 8, "development")
			seedDraft(2, 1, 6, "testing")

			result, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionDelete,
				TimesheetIDs: []int64{1, 2},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Applied).To(BeTrue())
			Expect(result.AffectedIDs).To(Equal([]int64{1, 2}))
			Expect(repo.entries).To(BeEmpty())

			Expect(eventBus.published).To(HaveLen(1))
			Expect(eventBus.published[0].EventType()).To(Equal(events.EventTypeTimesheetDeleted))
		})

		It("refuses to delete a batch containing a submitted entry", func() {
			seedDraft(1, 0, 8, "development")
			submitted := seedDraft(2, 1, 6, "testing")
			submitted.Submit(time.Now())

			_, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionDelete,
				TimesheetIDs: []int64{1, 2},
			})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeTimesheetNotDraft))
			Expect(repo.entries).To(HaveLen(2))
		})

		It("submits an explicit batch after validating it", func() {
			seedDraft(1, 0, 8, "development")
			seedDraft(2, 1, 6, "testing")

			result, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionSubmit,
				TimesheetIDs: []int64{1, 2},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Applied).To(BeTrue())
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusSubmitted))
			Expect(repo.entries[2].Status).To(Equal(timesheet.StatusSubmitted))
			Expect(eventBus.published).To(HaveLen(1))
		})

		It("only reports for the validate action", func() {
			bad := seedDraft(1, 0, 8, "development")
			bad.HoursWorked = 0

			result, err := service.BulkAction(owner, timesheet.BulkActionDTO{
				Action:       timesheet.BulkActionValidate,
				TimesheetIDs: []int64{1},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Applied).To(BeFalse())
			Expect(result.Report.IsValid).To(BeFalse())
			Expect(repo.entries[1].Status).To(Equal(timesheet.StatusDraft))
		})

		It("rejects unknown actions and empty id lists upfront", func() {
			_, err := service.BulkAction(owner, timesheet.BulkActionDTO{Action: "archive", TimesheetIDs: []int64{1}})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidBulkAction))

			_, err = service.BulkAction(owner, timesheet.BulkActionDTO{Action: timesheet.BulkActionDelete})
			appErr, ok = internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeEmptyIDList))
		})
	})

	Describe("TimesheetSummary", func() {
		It("forces non-admin callers onto their own entries", func() {
			seedDraft(1, 0, 8, "development")
			date, _ := time.Parse("2006-01-02", weekDay(0))
			repo.seed(&timesheet.Timesheet{ID: 2, EmployeeID: 5, ProjectID: 2, ActivityType: "testing", Date: date, HoursWorked: 3, Status: timesheet.StatusDraft})

			result, err := service.TimesheetSummary(owner, 5, time.Time{}, time.Time{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary.TotalEntries).To(Equal(1))
			Expect(result.Timesheets[0].EmployeeID).To(Equal(int64(1)))
		})

		It("lets an admin aggregate across all employees", func() {
			seedDraft(1, 0, 8, "development")
			date, _ := time.Parse("2006-01-02", weekDay(0))
			repo.seed(&timesheet.Timesheet{ID: 2, EmployeeID: 5, ProjectID: 2, ActivityType: "testing", Date: date, HoursWorked: 3, Status: timesheet.StatusDraft})

			result, err := service.TimesheetSummary(admin, 0, time.Time{}, time.Time{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary.TotalEntries).To(Equal(2))
		})
	})
})
