package postgres

import (
	"strings"

	employeeDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/timesheet-management/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetAll(filter employee.Filter) ([]*employeeDatamodel.Employee, error) {
	query := r.db.Order("employee_id ASC")
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(employee_id) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	var employees []*employeeDatamodel.Employee
	err := query.Find(&employees).Error
	return employees, err
}

// Managers returns every employee someone else reports to.
func (r *EmployeeRepository) Managers() ([]*employeeDatamodel.Employee, error) {
	var managers []*employeeDatamodel.Employee
	err := r.db.
		Where("id IN (SELECT DISTINCT manager_id FROM employees WHERE manager_id IS NOT NULL)").
		Order("employee_id ASC").
		Find(&managers).Error
	return managers, err
}

func (r *EmployeeRepository) GetByID(id int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByBadge(employeeID string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByUserID(userID int64) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("user_id = ?", userID).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

// NextBadgeSequence returns one more than the number of employees ever
// created. Badge numbers are only generated here, so gaps from explicit
// badges are acceptable.
func (r *EmployeeRepository) NextBadgeSequence() (int64, error) {
	var count int64
	if err := r.db.Model(&employeeDatamodel.Employee{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	return r.db.Save(emp).Error
}
