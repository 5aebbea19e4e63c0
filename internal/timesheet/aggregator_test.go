package timesheet_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-management/internal/timesheet"
)

var _ = Describe("Aggregate", func() {
	day := func(value string) time.Time {
		t, _ := time.Parse("2006-01-02", value)
		return t
	}

	It("returns an empty summary for no entries", func() {
		summary := timesheet.Aggregate(nil)
		Expect(summary.TotalHours).To(BeZero())
		Expect(summary.TotalEntries).To(BeZero())
		Expect(summary.DistinctProjects).To(BeZero())
		Expect(summary.DistinctDates).To(BeZero())
		Expect(summary.HoursByDate).To(BeEmpty())
	})

	It("reduces totals and per-dimension breakdowns", func() {
		entries := []*timesheet.Timesheet{
			{ProjectID: 1, ProjectName: "Internal Tools", ActivityType: "development", Date: day("2025-08-04"), HoursWorked: 8, Status: timesheet.StatusDraft},
			{ProjectID: 1, ProjectName: "Internal Tools", ActivityType: "testing", Date: day("2025-08-04"), HoursWorked: 1.5, Status: timesheet.StatusDraft},
			{ProjectID: 2, ProjectName: "Client Onboarding", ActivityType: "meeting", Date: day("2025-08-05"), HoursWorked: 2, Status: timesheet.StatusSubmitted},
		}

		summary := timesheet.Aggregate(entries)

		Expect(summary.TotalHours).To(Equal(11.5))
		Expect(summary.TotalEntries).To(Equal(3))
		Expect(summary.DistinctProjects).To(Equal(2))
		Expect(summary.DistinctDates).To(Equal(2))
		Expect(summary.DraftCount).To(Equal(2))
		Expect(summary.SubmittedCount).To(Equal(1))

		Expect(summary.HoursByDate).To(HaveKeyWithValue("2025-08-04", 9.5))
		Expect(summary.HoursByDate).To(HaveKeyWithValue("2025-08-05", 2.0))
		Expect(summary.HoursByProject).To(HaveKeyWithValue("Internal Tools", 9.5))
		Expect(summary.HoursByProject).To(HaveKeyWithValue("Client Onboarding", 2.0))
		Expect(summary.HoursByActivity).To(HaveKeyWithValue("development", 8.0))
		Expect(summary.HoursByActivity).To(HaveKeyWithValue("testing", 1.5))
		Expect(summary.HoursByActivity).To(HaveKeyWithValue("meeting", 2.0))
	})

	It("keeps fractional totals at two decimal places", func() {
		entries := []*timesheet.Timesheet{
			{ProjectID: 1, ProjectName: "Internal Tools", ActivityType: "development", Date: day("2025-08-04"), HoursWorked: 0.1, Status: timesheet.StatusDraft},
			{ProjectID: 1, ProjectName: "Internal Tools", ActivityType: "development", Date: day("2025-08-05"), HoursWorked: 0.2, Status: timesheet.StatusDraft},
		}

		summary := timesheet.Aggregate(entries)
		Expect(summary.TotalHours).To(Equal(0.3))
	})

	It("buckets entries without a project name under unknown", func() {
		entries := []*timesheet.Timesheet{
			{ProjectID: 7, ActivityType: "development", Date: day("2025-08-04"), HoursWorked: 4, Status: timesheet.StatusDraft},
		}

		summary := timesheet.Aggregate(entries)
		Expect(summary.HoursByProject).To(HaveKeyWithValue("unknown", 4.0))
	})
})
