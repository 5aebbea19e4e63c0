package timesheet_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
)

var _ = Describe("WeekValidator", func() {
	var (
		validator *timesheet.WeekValidator
		input     timesheet.WeekValidationInput
		today     time.Time
	)

	day := func(value string) time.Time {
		t, _ := time.Parse("2006-01-02", value)
		return t
	}

	newEntry := func(id int64, date string, hours float64, activity string) *timesheet.Timesheet {
		return &timesheet.Timesheet{
			ID:           id,
			EmployeeID:   1,
			ProjectID:    2,
			ActivityType: activity,
			Date:         day(date),
			HoursWorked:  hours,
			Description:  "notes",
			Status:       timesheet.StatusDraft,
		}
	}

	BeforeEach(func() {
		today = day("2025-08-08") // Friday of the week under test
		entryValidator := timesheet.NewEntryValidatorAt(func() time.Time { return today })
		validator = timesheet.NewWeekValidator(entryValidator, timesheet.NewDefaultWarningPolicy())

		input = timesheet.WeekValidationInput{
			Employees: map[int64]*timesheet.EmployeeRef{
				1: {ID: 1, EmployeeID: "EMP001", DisplayName: "Raka Pratama", IsActive: true},
			},
			Projects: map[int64]*timesheet.ProjectRef{
				2: {ID: 2, Name: "Internal Tools", Status: "active"},
			},
		}
	})

	It("accepts a clean week", func() {
		input.Entries = []*timesheet.Timesheet{
			newEntry(1, "2025-08-04", 8, "development"),
			newEntry(2, "2025-08-05", 8, "development"),
		}

		report, err := validator.Validate(input)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.IsValid).To(BeTrue())
		Expect(report.HasWarnings).To(BeFalse())
	})

	It("collects per-entry violations for every failing entry", func() {
		input.Entries = []*timesheet.Timesheet{
			newEntry(1, "2025-08-04", 0, "development"),  // bad hours
			newEntry(2, "2025-08-09", 4, "development"),  // future date
			newEntry(3, "2025-08-05", 8, "development"),  // fine
		}

		report, err := validator.Validate(input)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.IsValid).To(BeFalse())
		Expect(report.ErrorsByEntry).To(HaveLen(2))
		Expect(report.ErrorsByEntry[1][0].Code).To(Equal(internal.ErrCodeHoursOutOfRange))
		Expect(report.ErrorsByEntry[2][0].Code).To(Equal(internal.ErrCodeFutureDate))
		Expect(report.ErrorsByEntry).NotTo(HaveKey(int64(3)))
	})

	It("rejects duplicate slots inside the candidate set", func() {
		input.Entries = []*timesheet.Timesheet{
			newEntry(1, "2025-08-04", 4, "development"),
			newEntry(2, "2025-08-04", 4, "development"),
		}

		report, err := validator.Validate(input)
		Expect(err).NotTo(HaveOccurred())
		Expect(report.IsValid).To(BeFalse())
		Expect(report.BatchErrors).To(HaveLen(1))
		Expect(report.BatchErrors[0].Code).To(Equal(internal.ErrCodeDuplicateEntry))
		Expect(report.BatchErrors[0].EntryIDs).To(ConsistOf(int64(1), int64(2)))
	})

	Describe("daily ceiling", func() {
		It("rejects a day whose candidate total exceeds 24 hours", func() {
			input.Entries = []*timesheet.Timesheet{
				newEntry(1, "2025-08-04", 14, "development"),
				newEntry(2, "2025-08-04", 11, "testing"),
			}
			input.Projects[2].ActivityTypes = nil

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.IsValid).To(BeFalse())

			var codes []internal.ErrorCode
			for _, v := range report.BatchErrors {
				codes = append(codes, v.Code)
			}
			Expect(codes).To(ContainElement(internal.ErrCodeDailyHoursExceeded))
		})

		It("merges already-submitted hours into the ceiling", func() {
			input.Entries = []*timesheet.Timesheet{
				newEntry(1, "2025-08-04", 10, "development"),
			}
			input.SubmittedHours = map[string]float64{"2025-08-04": 15}

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.IsValid).To(BeFalse())
			Expect(report.BatchErrors).To(HaveLen(1))
			Expect(report.BatchErrors[0].Code).To(Equal(internal.ErrCodeDailyHoursExceeded))
		})

		It("allows exactly 24 combined hours", func() {
			input.Entries = []*timesheet.Timesheet{
				newEntry(1, "2025-08-04", 10, "development"),
			}
			input.SubmittedHours = map[string]float64{"2025-08-04": 14}

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.IsValid).To(BeTrue())
		})
	})

	Describe("warnings", func() {
		It("warns on entries without a description but stays valid", func() {
			entry := newEntry(1, "2025-08-04", 8, "development")
			entry.Description = ""
			input.Entries = []*timesheet.Timesheet{entry}

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.IsValid).To(BeTrue())
			Expect(report.HasWarnings).To(BeTrue())
			Expect(report.Warnings[0].Code).To(Equal(timesheet.WarningCodeMissingDescription))
			Expect(report.Warnings[0].EntryIDs).To(ConsistOf(int64(1)))
		})

		It("warns on unusually long days that still fit under the ceiling", func() {
			input.Entries = []*timesheet.Timesheet{
				newEntry(1, "2025-08-04", 13, "development"),
			}

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.IsValid).To(BeTrue())
			Expect(report.HasWarnings).To(BeTrue())
			Expect(report.Warnings[0].Code).To(Equal(timesheet.WarningCodeLongDay))
			Expect(report.Warnings[0].Date).To(Equal("2025-08-04"))
		})

		It("respects a tuned warning policy", func() {
			entryValidator := timesheet.NewEntryValidatorAt(func() time.Time { return today })
			validator = timesheet.NewWeekValidator(entryValidator, &timesheet.DefaultWarningPolicy{
				LongDayHours:       0,
				WarnOnMissingNotes: false,
			})

			entry := newEntry(1, "2025-08-04", 13, "development")
			entry.Description = ""
			input.Entries = []*timesheet.Timesheet{entry}

			report, err := validator.Validate(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.HasWarnings).To(BeFalse())
		})
	})

	It("flattens errors with batch errors last", func() {
		input.Entries = []*timesheet.Timesheet{
			newEntry(2, "2025-08-04", 0, "development"),
			newEntry(1, "2025-08-05", 8, "development"),
			newEntry(3, "2025-08-05", 8, "development"),
		}

		report, err := validator.Validate(input)
		Expect(err).NotTo(HaveOccurred())

		all := report.AllErrors()
		Expect(all).To(HaveLen(2))
		Expect(all[0].Code).To(Equal(internal.ErrCodeHoursOutOfRange))
		Expect(all[1].Code).To(Equal(internal.ErrCodeDuplicateEntry))
	})
})
