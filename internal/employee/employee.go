package employee

import (
	"fmt"
	"time"

	employeeDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/employee"
)

// Employee is a person who can log time. EmployeeID is the human-facing
// badge number (EMP001 style); ID is the database key everything links on.
type Employee struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	UserID     *int64    `json:"user_id,omitempty"`
	ManagerID  *int64    `json:"manager_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       string    `json:"role,omitempty"`
	Department string    `json:"department,omitempty"`
	HireDate   time.Time `json:"hire_date"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) Activate() {
	e.IsActive = true
	e.UpdatedAt = time.Now()
}

func (e *Employee) Deactivate() {
	e.IsActive = false
	e.UpdatedAt = time.Now()
}

// FormatBadgeNumber renders the canonical badge for a sequence number,
// zero-padded to at least three digits.
func FormatBadgeNumber(seq int64) string {
	return fmt.Sprintf("EMP%03d", seq)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		UserID:     e.UserID,
		ManagerID:  e.ManagerID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       e.Role,
		Department: e.Department,
		HireDate:   e.HireDate,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		UserID:     e.UserID,
		ManagerID:  e.ManagerID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       e.Role,
		Department: e.Department,
		HireDate:   e.HireDate,
		IsActive:   e.IsActive,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModelSlice(models []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
