package employee

import (
	"time"

	"github.com/frahmantamala/timesheet-management/internal/core/common/validation"
)

const dateLayout = "2006-01-02"

// CreateEmployeeDTO is the request payload for creating an employee. When
// EmployeeID is empty the next EMP badge number is generated.
type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	HireDate   string `json:"hire_date"`
	UserID     *int64 `json:"user_id,omitempty"`
	ManagerID  *int64 `json:"manager_id,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("first_name", dto.FirstName).Required().MaxLength(100)
	v.Field("last_name", dto.LastName).Required().MaxLength(100)
	v.Field("email", dto.Email).Required().MaxLength(255)
	v.Field("hire_date", dto.HireDate).Required().DateFormat(dateLayout)
	v.Field("employee_id", dto.EmployeeID).MaxLength(20)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (dto CreateEmployeeDTO) ParsedHireDate() (time.Time, error) {
	return time.Parse(dateLayout, dto.HireDate)
}

// UpdateEmployeeDTO supports partial updates. Nil fields are left untouched.
type UpdateEmployeeDTO struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	UserID     *int64  `json:"user_id,omitempty"`
	ManagerID  *int64  `json:"manager_id,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	v := validation.NewValidator()
	if dto.FirstName != nil {
		v.Field("first_name", *dto.FirstName).Required().MaxLength(100)
	}
	if dto.LastName != nil {
		v.Field("last_name", *dto.LastName).Required().MaxLength(100)
	}
	if dto.Email != nil {
		v.Field("email", *dto.Email).Required().MaxLength(255)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Filter narrows an employee listing. Search matches name, email and badge
// fragments case-insensitively; empty fields are ignored.
type Filter struct {
	Search          string
	Department      string
	Role            string
	IncludeInactive bool
}

// ListEmployeesResponse wraps an employee listing.
type ListEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
	Count     int         `json:"count"`
}
