package timesheet_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
)

// stubDupes answers ExistsForSlot from a fixed set of occupied slots keyed by
// "employee/project/date/activity/status".
type stubDupes struct {
	occupied map[string]int64
	err      error
}

func slotKeyString(employeeID, projectID int64, date time.Time, activityType, status string) string {
	return fmt.Sprintf("%d/%d/%s/%s/%s", employeeID, projectID, timesheet.DateKey(date), activityType, status)
}

func (s *stubDupes) ExistsForSlot(employeeID, projectID int64, date time.Time, activityType, status string, excludeID int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	id, ok := s.occupied[slotKeyString(employeeID, projectID, date, activityType, status)]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

var _ = Describe("EntryValidator", func() {
	var (
		validator *timesheet.EntryValidator
		employee  *timesheet.EmployeeRef
		project   *timesheet.ProjectRef
		entry     *timesheet.Timesheet
		today     time.Time
	)

	BeforeEach(func() {
		today = time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)
		validator = timesheet.NewEntryValidatorAt(func() time.Time { return today })

		employee = &timesheet.EmployeeRef{ID: 1, EmployeeID: "EMP001", DisplayName: "Raka Pratama", IsActive: true}
		project = &timesheet.ProjectRef{ID: 2, Name: "Internal Tools", Status: "active", ActivityTypes: []string{"development", "testing"}}
		entry = &timesheet.Timesheet{
			ID:           10,
			EmployeeID:   1,
			ProjectID:    2,
			ActivityType: "development",
			Date:         today.AddDate(0, 0, -1),
			HoursWorked:  8,
			Status:       timesheet.StatusDraft,
		}
	})

	It("passes a well-formed entry", func() {
		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	It("rejects an inactive employee before any other rule", func() {
		employee.IsActive = false
		entry.HoursWorked = 0 // would also fail, but employee rule wins

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Code).To(Equal(internal.ErrCodeInactiveEmployee))
	})

	It("rejects a missing employee the same way as an inactive one", func() {
		violations, err := validator.Validate(entry, nil, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Code).To(Equal(internal.ErrCodeInactiveEmployee))
	})

	It("rejects an archived project", func() {
		project.Status = "archived"

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Code).To(Equal(internal.ErrCodeInactiveProject))
	})

	DescribeTable("hours bounds",
		func(hours float64, wantViolation bool) {
			entry.HoursWorked = hours
			violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
			Expect(err).NotTo(HaveOccurred())
			if wantViolation {
				Expect(violations).To(HaveLen(1))
				Expect(violations[0].Code).To(Equal(internal.ErrCodeHoursOutOfRange))
			} else {
				Expect(violations).To(BeEmpty())
			}
		},
		Entry("zero hours", 0.0, true),
		Entry("negative hours", -1.0, true),
		Entry("quarter hour", 0.25, false),
		Entry("full day", 24.0, false),
		Entry("over a day", 24.5, true),
	)

	It("rejects an activity the project does not declare", func() {
		entry.ActivityType = "meeting"

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Code).To(Equal(internal.ErrCodeInvalidActivityType))
	})

	It("accepts any activity when the project declares none", func() {
		project.ActivityTypes = nil
		entry.ActivityType = "whatever"

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	It("rejects future dates only for the submitted target", func() {
		entry.Date = today.AddDate(0, 0, 1)

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(HaveLen(1))
		Expect(violations[0].Code).To(Equal(internal.ErrCodeFutureDate))

		violations, err = validator.Validate(entry, employee, project, timesheet.StatusDraft, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	It("allows logging for today when targeting submitted", func() {
		entry.Date = today

		violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(violations).To(BeEmpty())
	})

	Describe("duplicate slots", func() {
		It("rejects when another entry occupies the same slot in the target status", func() {
			dupes := &stubDupes{occupied: map[string]int64{
				slotKeyString(1, 2, entry.Date, "development", timesheet.StatusDraft): 99,
			}}

			violations, err := validator.Validate(entry, employee, project, timesheet.StatusDraft, dupes)
			Expect(err).NotTo(HaveOccurred())
			Expect(violations).To(HaveLen(1))
			Expect(violations[0].Code).To(Equal(internal.ErrCodeDuplicateEntry))
		})

		It("ignores the entry's own row when re-validating", func() {
			dupes := &stubDupes{occupied: map[string]int64{
				slotKeyString(1, 2, entry.Date, "development", timesheet.StatusDraft): entry.ID,
			}}

			violations, err := validator.Validate(entry, employee, project, timesheet.StatusDraft, dupes)
			Expect(err).NotTo(HaveOccurred())
			Expect(violations).To(BeEmpty())
		})

		It("checks the target status, not the current one", func() {
			// A submitted twin blocks submission even while the draft exists.
			dupes := &stubDupes{occupied: map[string]int64{
				slotKeyString(1, 2, entry.Date, "development", timesheet.StatusSubmitted): 99,
			}}

			violations, err := validator.Validate(entry, employee, project, timesheet.StatusSubmitted, dupes)
			Expect(err).NotTo(HaveOccurred())
			Expect(violations).To(HaveLen(1))
			Expect(violations[0].Code).To(Equal(internal.ErrCodeDuplicateEntry))

			violations, err = validator.Validate(entry, employee, project, timesheet.StatusDraft, dupes)
			Expect(err).NotTo(HaveOccurred())
			Expect(violations).To(BeEmpty())
		})
	})
})
