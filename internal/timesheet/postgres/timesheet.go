package postgres

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	employeeDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/employee"
	projectDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/project"
	timesheetDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
	"gorm.io/gorm"
)

// TimesheetRepository implements the timesheet.Repository interface using GORM
type TimesheetRepository struct {
	db *gorm.DB
}

// NewTimesheetRepository creates a new timesheet repository
func NewTimesheetRepository(db *gorm.DB) timesheet.Repository {
	return &TimesheetRepository{db: db}
}

// RunInTransaction executes fn with a repository bound to one transaction.
// Returning an error from fn rolls everything back.
func (r *TimesheetRepository) RunInTransaction(fn func(tx timesheet.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&TimesheetRepository{db: tx})
	})
}

func (r *TimesheetRepository) Create(ts *timesheet.Timesheet) error {
	model := timesheet.ToDataModel(ts)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	ts.ID = model.ID
	ts.CreatedAt = model.CreatedAt
	ts.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *TimesheetRepository) GetByID(id int64) (*timesheet.Timesheet, error) {
	var model timesheetDatamodel.Timesheet
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrTimesheetNotFound
		}
		return nil, err
	}
	return timesheet.FromDataModel(&model), nil
}

func (r *TimesheetRepository) Update(ts *timesheet.Timesheet) error {
	ts.UpdatedAt = time.Now()
	return r.db.Save(timesheet.ToDataModel(ts)).Error
}

func (r *TimesheetRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&timesheetDatamodel.Timesheet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrTimesheetNotFound
	}
	return nil
}

func (r *TimesheetRepository) DeleteBatch(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&timesheetDatamodel.Timesheet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return internal.ErrSubmissionConflict
	}
	return nil
}

func (r *TimesheetRepository) List(filter timesheet.ListFilter) ([]*timesheet.Timesheet, int64, error) {
	query := r.db.Model(&timesheetDatamodel.Timesheet{})

	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.ProjectID != 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActivityType != "" {
		query = query.Where("activity_type = ?", filter.ActivityType)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("date <= ?", filter.DateTo)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var models []*timesheetDatamodel.Timesheet
	err := query.
		Order("date DESC, id DESC").
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return timesheet.FromDataModelSlice(models), count, nil
}

func (r *TimesheetRepository) FindDraftsInWindow(employeeID int64, from, to time.Time) ([]*timesheet.Timesheet, error) {
	var models []*timesheetDatamodel.Timesheet
	err := r.db.
		Where("employee_id = ? AND status = ? AND date >= ? AND date <= ?", employeeID, timesheet.StatusDraft, from, to).
		Order("date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return timesheet.FromDataModelSlice(models), nil
}

func (r *TimesheetRepository) FindInWindow(employeeID int64, from, to time.Time) ([]*timesheet.Timesheet, error) {
	query := r.db.Where("date >= ? AND date <= ?", from, to)
	if employeeID != 0 {
		query = query.Where("employee_id = ?", employeeID)
	}
	var models []*timesheetDatamodel.Timesheet
	err := query.Order("date ASC, id ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return timesheet.FromDataModelSlice(models), nil
}

func (r *TimesheetRepository) FindByIDs(ids []int64) ([]*timesheet.Timesheet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []*timesheetDatamodel.Timesheet
	err := r.db.Where("id IN ?", ids).Order("date ASC, id ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	return timesheet.FromDataModelSlice(models), nil
}

func (r *TimesheetRepository) SubmittedHoursByDate(employeeID int64, from, to time.Time, excludeIDs []int64) (map[string]float64, error) {
	type row struct {
		Date  time.Time
		Total float64
	}
	query := r.db.Model(&timesheetDatamodel.Timesheet{}).
		Select("date, SUM(hours_worked) AS total").
		Where("employee_id = ? AND status = ? AND date >= ? AND date <= ?", employeeID, timesheet.StatusSubmitted, from, to)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var rows []row
	if err := query.Group("date").Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[timesheet.DateKey(r.Date)] = r.Total
	}
	return totals, nil
}

// ExistsForSlot reports whether another entry already occupies the logical
// slot (employee, project, date, activity, status).
func (r *TimesheetRepository) ExistsForSlot(employeeID, projectID int64, date time.Time, activityType, status string, excludeID int64) (bool, error) {
	query := r.db.Model(&timesheetDatamodel.Timesheet{}).
		Where("employee_id = ? AND project_id = ? AND date = ? AND activity_type = ? AND status = ?",
			employeeID, projectID, date, activityType, status)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PersistTransition moves the given entries to the new status in one
// statement, guarded on the current status still being draft. A row count
// mismatch means another submission won the race and fails the transaction.
func (r *TimesheetRepository) PersistTransition(ids []int64, newStatus string, submittedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	result := r.db.Model(&timesheetDatamodel.Timesheet{}).
		Where("id IN ? AND status = ?", ids, timesheet.StatusDraft).
		Updates(map[string]interface{}{
			"status":       newStatus,
			"submitted_at": submittedAt,
			"updated_at":   submittedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return internal.ErrSubmissionConflict
	}
	return nil
}

func (r *TimesheetRepository) GetEmployee(id int64) (*timesheet.EmployeeRef, error) {
	var model employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &timesheet.EmployeeRef{
		ID:          model.ID,
		EmployeeID:  model.EmployeeID,
		DisplayName: model.FirstName + " " + model.LastName,
		IsActive:    model.IsActive,
	}, nil
}

func (r *TimesheetRepository) GetProject(id int64) (*timesheet.ProjectRef, error) {
	var model projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrProjectNotFound
		}
		return nil, err
	}

	var activityTypes []string
	if model.ActivityTypes != "" {
		if err := json.Unmarshal([]byte(model.ActivityTypes), &activityTypes); err != nil {
			return nil, internal.NewInternalError("project has malformed activity types", err)
		}
	}

	return &timesheet.ProjectRef{
		ID:            model.ID,
		Name:          model.Name,
		Status:        model.Status,
		ActivityTypes: activityTypes,
	}, nil
}
