package timesheet

import "math"

// Summary is a pure reduction over a set of entries. Used for the standing
// week/month summaries and for the response after a successful submission.
type Summary struct {
	TotalHours       float64            `json:"total_hours"`
	TotalEntries     int                `json:"total_entries"`
	DistinctProjects int                `json:"distinct_projects"`
	DistinctDates    int                `json:"distinct_dates"`
	DraftCount       int                `json:"draft_count"`
	SubmittedCount   int                `json:"submitted_count"`
	HoursByDate      map[string]float64 `json:"hours_by_date"`
	HoursByProject   map[string]float64 `json:"hours_by_project"`
	HoursByActivity  map[string]float64 `json:"hours_by_activity"`
}

// Aggregate reduces entries into totals and per-date/per-project/per-activity
// breakdowns. No validation, no side effects.
func Aggregate(entries []*Timesheet) Summary {
	summary := Summary{
		HoursByDate:     make(map[string]float64),
		HoursByProject:  make(map[string]float64),
		HoursByActivity: make(map[string]float64),
	}

	projects := make(map[int64]struct{})

	for _, entry := range entries {
		summary.TotalHours = roundHours(summary.TotalHours + entry.HoursWorked)
		summary.TotalEntries++

		switch entry.Status {
		case StatusDraft:
			summary.DraftCount++
		case StatusSubmitted:
			summary.SubmittedCount++
		}

		projects[entry.ProjectID] = struct{}{}

		dateKey := DateKey(entry.Date)
		summary.HoursByDate[dateKey] = roundHours(summary.HoursByDate[dateKey] + entry.HoursWorked)

		projectKey := entry.ProjectName
		if projectKey == "" {
			projectKey = "unknown"
		}
		summary.HoursByProject[projectKey] = roundHours(summary.HoursByProject[projectKey] + entry.HoursWorked)

		summary.HoursByActivity[entry.ActivityType] = roundHours(summary.HoursByActivity[entry.ActivityType] + entry.HoursWorked)
	}

	summary.DistinctProjects = len(projects)
	summary.DistinctDates = len(summary.HoursByDate)

	return summary
}

// roundHours keeps accumulated hour totals at two decimal places, matching
// the storage precision of hours_worked.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
