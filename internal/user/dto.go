package user

import "time"

// EmployeeSummary is the slice of the employee profile exposed on /users/me.
type EmployeeSummary struct {
	ID         int64     `json:"id"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role,omitempty"`
	Department string    `json:"department,omitempty"`
	HireDate   time.Time `json:"hire_date"`
	IsActive   bool      `json:"is_active"`
}

// ProfileResponse is the current-user view: the account plus the linked
// employee profile when one exists.
type ProfileResponse struct {
	User     *User            `json:"user"`
	Employee *EmployeeSummary `json:"employee,omitempty"`
}
