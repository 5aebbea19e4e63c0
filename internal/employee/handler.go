package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/timesheet-management/internal/auth"
	"github.com/frahmantamala/timesheet-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAll(filter Filter) ([]*Employee, error)
	Managers() ([]*Employee, error)
	GetByID(id int64) (*Employee, error)
	GetByUserID(userID int64) (*Employee, error)
	Create(dto CreateEmployeeDTO) (*Employee, error)
	Update(id int64, dto UpdateEmployeeDTO) (*Employee, error)
	Activate(id int64) (*Employee, error)
	Deactivate(id int64) (*Employee, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		Search:          q.Get("search"),
		Department:      q.Get("department"),
		Role:            q.Get("role"),
		IncludeInactive: q.Get("include_inactive") == "true",
	}

	employees, err := h.Service.GetAll(filter)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListEmployeesResponse{
		Employees: employees,
		Count:     len(employees),
	})
}

func (h *Handler) ListManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.Service.Managers()
	if err != nil {
		h.Logger.Error("ListManagers: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListEmployeesResponse{
		Employees: managers,
		Count:     len(managers),
	})
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := h.employeeID(w, r)
	if err != nil {
		return
	}

	emp, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created", "employee_id", emp.ID, "badge", emp.EmployeeID)
	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := h.employeeID(w, r)
	if err != nil {
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := h.employeeID(w, r)
	if err != nil {
		return
	}

	emp, err := h.Service.Deactivate(id)
	if err != nil {
		h.Logger.Error("DeactivateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) ActivateEmployee(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := h.employeeID(w, r)
	if err != nil {
		return
	}

	emp, err := h.Service.Activate(id)
	if err != nil {
		h.Logger.Error("ActivateEmployee: service error", "error", err, "employee_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, err
	}
	return id, nil
}

func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !user.IsAdmin() {
		h.WriteError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}
