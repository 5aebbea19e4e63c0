package timesheet_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/timesheet-management/internal/timesheet"
)

var _ = Describe("WeekWindow", func() {
	day := func(value string) time.Time {
		t, err := time.Parse("2006-01-02", value)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	It("maps a Wednesday to its surrounding Monday week", func() {
		start, end := timesheet.WeekWindow(day("2025-08-06"))
		Expect(timesheet.DateKey(start)).To(Equal("2025-08-04"))
		Expect(timesheet.DateKey(end)).To(Equal("2025-08-10"))
	})

	It("maps a Monday to itself", func() {
		start, end := timesheet.WeekWindow(day("2025-08-04"))
		Expect(timesheet.DateKey(start)).To(Equal("2025-08-04"))
		Expect(timesheet.DateKey(end)).To(Equal("2025-08-10"))
	})

	It("maps a Sunday back to the Monday six days earlier", func() {
		start, end := timesheet.WeekWindow(day("2025-08-10"))
		Expect(timesheet.DateKey(start)).To(Equal("2025-08-04"))
		Expect(timesheet.DateKey(end)).To(Equal("2025-08-10"))
	})

	It("handles windows crossing a month boundary", func() {
		start, end := timesheet.WeekWindow(day("2025-09-01"))
		Expect(timesheet.DateKey(start)).To(Equal("2025-09-01"))
		Expect(timesheet.DateKey(end)).To(Equal("2025-09-07"))

		start, end = timesheet.WeekWindow(day("2025-08-31"))
		Expect(timesheet.DateKey(start)).To(Equal("2025-08-25"))
		Expect(timesheet.DateKey(end)).To(Equal("2025-08-31"))
	})
})

var _ = Describe("IsMonday", func() {
	It("accepts Mondays and rejects everything else", func() {
		monday, _ := time.Parse("2006-01-02", "2025-08-04")
		Expect(timesheet.IsMonday(monday)).To(BeTrue())

		for offset := 1; offset <= 6; offset++ {
			Expect(timesheet.IsMonday(monday.AddDate(0, 0, offset))).To(BeFalse())
		}
	})
})

var _ = Describe("SlotKey", func() {
	It("treats entries on the same day as the same slot regardless of time of day", func() {
		morning := &timesheet.Timesheet{
			EmployeeID:   1,
			ProjectID:    2,
			ActivityType: "development",
			Date:         time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC),
		}
		evening := &timesheet.Timesheet{
			EmployeeID:   1,
			ProjectID:    2,
			ActivityType: "development",
			Date:         time.Date(2025, 8, 4, 21, 30, 0, 0, time.UTC),
		}
		Expect(morning.SlotKey()).To(Equal(evening.SlotKey()))
	})

	It("differs when any identity component differs", func() {
		base := &timesheet.Timesheet{EmployeeID: 1, ProjectID: 2, ActivityType: "development", Date: time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)}
		other := &timesheet.Timesheet{EmployeeID: 1, ProjectID: 3, ActivityType: "development", Date: base.Date}
		Expect(base.SlotKey()).NotTo(Equal(other.SlotKey()))
	})
})
