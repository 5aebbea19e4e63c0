package employee

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	employeeDatamodel "github.com/frahmantamala/timesheet-management/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	GetAll(filter Filter) ([]*employeeDatamodel.Employee, error)
	GetByID(id int64) (*employeeDatamodel.Employee, error)
	GetByBadge(employeeID string) (*employeeDatamodel.Employee, error)
	GetByUserID(userID int64) (*employeeDatamodel.Employee, error)
	Managers() ([]*employeeDatamodel.Employee, error)
	NextBadgeSequence() (int64, error)
	Create(employee *employeeDatamodel.Employee) error
	Update(employee *employeeDatamodel.Employee) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(filter Filter) ([]*Employee, error) {
	models, err := s.repo.GetAll(filter)
	if err != nil {
		s.logger.Error("failed to get employees from repository", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

// Managers lists the employees that other employees report to.
func (s *Service) Managers() ([]*Employee, error) {
	models, err := s.repo.Managers()
	if err != nil {
		s.logger.Error("failed to get managers from repository", "error", err)
		return nil, err
	}
	return FromDataModelSlice(models), nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) GetByBadge(employeeID string) (*Employee, error) {
	model, err := s.repo.GetByBadge(employeeID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(model), nil
}

// GetByUserID resolves the employee profile linked to an auth user, or nil
// when the user has none.
func (s *Service) GetByUserID(userID int64) (*Employee, error) {
	model, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, nil
	}
	return FromDataModel(model), nil
}

func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hireDate, err := dto.ParsedHireDate()
	if err != nil {
		return nil, internal.NewValidationError("hire_date must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}

	badge := dto.EmployeeID
	if badge == "" {
		seq, err := s.repo.NextBadgeSequence()
		if err != nil {
			s.logger.Error("failed to generate badge number", "error", err)
			return nil, err
		}
		// Skip over badges that were assigned explicitly.
		for {
			badge = FormatBadgeNumber(seq)
			existing, err := s.repo.GetByBadge(badge)
			if err != nil {
				return nil, err
			}
			if existing == nil {
				break
			}
			seq++
		}
	} else {
		existing, err := s.repo.GetByBadge(badge)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, internal.NewConflictError("employee_id is already taken", internal.ErrCodeDuplicateEntry)
		}
	}

	if err := s.checkManager(dto.ManagerID, 0); err != nil {
		return nil, err
	}

	now := time.Now()
	emp := &Employee{
		EmployeeID: badge,
		UserID:     dto.UserID,
		ManagerID:  dto.ManagerID,
		FirstName:  dto.FirstName,
		LastName:   dto.LastName,
		Email:      dto.Email,
		Phone:      dto.Phone,
		Role:       dto.Role,
		Department: dto.Department,
		HireDate:   hireDate,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	model := ToDataModel(emp)
	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create employee", "error", err, "badge", badge)
		return nil, err
	}
	emp.ID = model.ID

	s.logger.Info("employee created", "employee_id", emp.ID, "badge", badge)
	return emp, nil
}

func (s *Service) Update(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	emp := FromDataModel(model)
	if dto.FirstName != nil {
		emp.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		emp.LastName = *dto.LastName
	}
	if dto.Email != nil {
		emp.Email = *dto.Email
	}
	if dto.Phone != nil {
		emp.Phone = *dto.Phone
	}
	if dto.Role != nil {
		emp.Role = *dto.Role
	}
	if dto.Department != nil {
		emp.Department = *dto.Department
	}
	if dto.IsActive != nil {
		emp.IsActive = *dto.IsActive
	}
	if dto.UserID != nil {
		emp.UserID = dto.UserID
	}
	if dto.ManagerID != nil {
		if err := s.checkManager(dto.ManagerID, id); err != nil {
			return nil, err
		}
		emp.ManagerID = dto.ManagerID
	}
	emp.UpdatedAt = time.Now()

	if err := s.repo.Update(ToDataModel(emp)); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return emp, nil
}

// checkManager verifies a manager assignment points at a real, different
// employee.
func (s *Service) checkManager(managerID *int64, selfID int64) error {
	if managerID == nil {
		return nil
	}
	if selfID != 0 && *managerID == selfID {
		return internal.NewValidationError("an employee cannot be their own manager", internal.ErrCodeValidationFailed)
	}
	manager, err := s.repo.GetByID(*managerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return internal.NewValidationError("manager_id does not reference an existing employee", internal.ErrCodeValidationFailed)
	}
	return nil
}

// Deactivate soft-disables an employee. Their submitted history stays;
// drafts referencing them stop validating for submission.
func (s *Service) Deactivate(id int64) (*Employee, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	emp := FromDataModel(model)
	emp.Deactivate()
	if err := s.repo.Update(ToDataModel(emp)); err != nil {
		return nil, err
	}

	s.logger.Info("employee deactivated", "employee_id", id)
	return emp, nil
}

func (s *Service) Activate(id int64) (*Employee, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, internal.ErrEmployeeNotFound
	}

	emp := FromDataModel(model)
	emp.Activate()
	if err := s.repo.Update(ToDataModel(emp)); err != nil {
		return nil, err
	}

	s.logger.Info("employee activated", "employee_id", id)
	return emp, nil
}
