package user

import (
	"fmt"

	"github.com/frahmantamala/timesheet-management/internal/employee"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	GetPermissions(userID int64) ([]string, error)
}

// EmployeeResolver resolves the employee profile linked to a user account.
type EmployeeResolver interface {
	GetByUserID(userID int64) (*employee.Employee, error)
}

type Service struct {
	repo      Repository
	employees EmployeeResolver
}

func NewService(repo Repository, employees EmployeeResolver) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	perms, err := s.repo.GetPermissions(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}
	u.Permissions = perms

	return u, nil
}

// GetProfile returns the account plus the linked employee profile, if any.
func (s *Service) GetProfile(userID int64) (*ProfileResponse, error) {
	u, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &ProfileResponse{User: u}

	emp, err := s.employees.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve employee profile: %w", err)
	}
	if emp != nil {
		profile.Employee = &EmployeeSummary{
			ID:         emp.ID,
			EmployeeID: emp.EmployeeID,
			FullName:   emp.FullName(),
			Role:       emp.Role,
			Department: emp.Department,
			HireDate:   emp.HireDate,
			IsActive:   emp.IsActive,
		}
	}

	return profile, nil
}
