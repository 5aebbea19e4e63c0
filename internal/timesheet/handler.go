package timesheet

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/auth"
	"github.com/frahmantamala/timesheet-management/internal/transport"
	"github.com/frahmantamala/timesheet-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateTimesheet(actor Actor, dto CreateTimesheetDTO) (*Timesheet, error)
	UpdateTimesheet(actor Actor, id int64, dto UpdateTimesheetDTO) (*Timesheet, error)
	DeleteTimesheet(actor Actor, id int64) error
	GetTimesheet(actor Actor, id int64) (*Timesheet, error)
	ListTimesheets(actor Actor, filter ListFilter) (*ListResult, error)
	MyTimesheets(actor Actor, from, to time.Time) (*MyTimesheetsResult, error)
	Drafts(actor Actor) ([]*Timesheet, error)
	ValidateEntry(actor Actor, dto CreateTimesheetDTO, targetStatus string) (*EntryValidationResult, error)
	SubmitWeek(actor Actor, dto SubmitWeekDTO) (*SubmissionResult, error)
	ValidateWeek(actor Actor, dto SubmitWeekDTO) (*WeekValidationResult, error)
	WeekSummary(actor Actor, employeeID int64, weekStart time.Time) (*WeekSummaryResult, error)
	BulkAction(actor Actor, dto BulkActionDTO) (*BulkActionResult, error)
	TimesheetSummary(actor Actor, employeeID int64, from, to time.Time) (*MyTimesheetsResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// actorFromRequest maps the authenticated user to a timesheet actor. Users
// without a linked employee profile can only act when they are admins.
func (h *Handler) actorFromRequest(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("user not found in context", "path", r.URL.Path)
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return Actor{}, false
	}
	actor := Actor{EmployeeID: user.EmployeeID, Admin: user.IsAdmin()}
	if actor.EmployeeID == 0 && !actor.Admin {
		h.Logger.Warn("user has no employee profile", "user_id", user.ID)
		h.WriteError(w, http.StatusForbidden, "no employee profile linked to this account")
		return Actor{}, false
	}
	return actor, true
}

func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	var dto CreateTimesheetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTimesheet: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.CreateTimesheet(actor, dto)
	if err != nil {
		h.Logger.Error("CreateTimesheet: service error", "error", err, "employee_id", actor.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateTimesheet: draft created",
		"timesheet_id", entry.ID,
		"employee_id", entry.EmployeeID,
		"date", DateKey(entry.Date),
		"hours", entry.HoursWorked)

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := h.timesheetID(w, r)
	if err != nil {
		return
	}

	entry, err := h.Service.GetTimesheet(actor, id)
	if err != nil {
		h.Logger.Error("GetTimesheet: service error", "error", err, "timesheet_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) UpdateTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := h.timesheetID(w, r)
	if err != nil {
		return
	}

	var dto UpdateTimesheetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTimesheet: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.UpdateTimesheet(actor, id, dto)
	if err != nil {
		h.Logger.Error("UpdateTimesheet: service error", "error", err, "timesheet_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	id, err := h.timesheetID(w, r)
	if err != nil {
		return
	}

	if err := h.Service.DeleteTimesheet(actor, id); err != nil {
		h.Logger.Error("DeleteTimesheet: service error", "error", err, "timesheet_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	filter, err := h.listFilterFromQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.ListTimesheets(actor, filter)
	if err != nil {
		h.Logger.Error("ListTimesheets: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) MyTimesheets(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	from, to, err := h.dateRangeFromQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.MyTimesheets(actor, from, to)
	if err != nil {
		h.Logger.Error("MyTimesheets: service error", "error", err, "employee_id", actor.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Drafts(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	drafts, err := h.Service.Drafts(actor)
	if err != nil {
		h.Logger.Error("Drafts: service error", "error", err, "employee_id", actor.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"timesheets": drafts,
		"count":      len(drafts),
	})
}

// SubmitTimesheet rejects individual submission. Entries only reach the
// submitted state through the weekly batch flow, which validates the week
// as a unit.
func (h *Handler) SubmitTimesheet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.actorFromRequest(w, r); !ok {
		return
	}
	h.WriteError(w, http.StatusMethodNotAllowed, "individual submission is disabled, use POST /timesheets/submit-week")
}

func (h *Handler) ValidateTimesheet(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	var dto CreateTimesheetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ValidateTimesheet: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	targetStatus := r.URL.Query().Get("target_status")
	if targetStatus == "" {
		targetStatus = StatusSubmitted
	}

	result, err := h.Service.ValidateEntry(actor, dto, targetStatus)
	if err != nil {
		h.Logger.Error("ValidateTimesheet: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	var dto SubmitWeekDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitWeek: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.SubmitWeek(actor, dto)
	if err != nil {
		h.Logger.Error("SubmitWeek: service error", "error", err, "week_start", dto.WeekStart)
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Submitted && result.Report != nil && !result.Report.IsValid {
		status = http.StatusUnprocessableEntity
	}
	h.WriteJSON(w, status, result)
}

func (h *Handler) ValidateWeek(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	var dto SubmitWeekDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ValidateWeek: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.ValidateWeek(actor, dto)
	if err != nil {
		h.Logger.Error("ValidateWeek: service error", "error", err, "week_start", dto.WeekStart)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) WeekSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	weekStartStr := r.URL.Query().Get("week_start")
	if weekStartStr == "" {
		h.WriteError(w, http.StatusBadRequest, "week_start query parameter is required")
		return
	}
	weekStart, err := time.Parse(dateLayout, weekStartStr)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "week_start must use the YYYY-MM-DD format")
		return
	}

	employeeID := actor.EmployeeID
	if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			employeeID = id
		}
	}

	result, err := h.Service.WeekSummary(actor, employeeID, weekStart)
	if err != nil {
		h.Logger.Error("WeekSummary: service error", "error", err, "week_start", weekStartStr)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) BulkAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	var dto BulkActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("BulkAction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.BulkAction(actor, dto)
	if err != nil {
		h.Logger.Error("BulkAction: service error", "error", err, "action", dto.Action)
		h.HandleServiceError(w, err)
		return
	}

	status := http.StatusOK
	if !result.Applied && result.Report != nil && !result.Report.IsValid {
		status = http.StatusUnprocessableEntity
	}
	h.WriteJSON(w, status, result)
}

func (h *Handler) TimesheetSummary(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFromRequest(w, r)
	if !ok {
		return
	}

	from, to, err := h.dateRangeFromQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var employeeID int64
	if idStr := r.URL.Query().Get("employee_id"); idStr != "" {
		if id, parseErr := strconv.ParseInt(idStr, 10, 64); parseErr == nil {
			employeeID = id
		}
	}

	result, err := h.Service.TimesheetSummary(actor, employeeID, from, to)
	if err != nil {
		h.Logger.Error("TimesheetSummary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) timesheetID(w http.ResponseWriter, r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid timesheet ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid timesheet ID")
		return 0, err
	}
	return id, nil
}

func (h *Handler) listFilterFromQuery(r *http.Request) (ListFilter, error) {
	var filter ListFilter
	q := r.URL.Query()

	if idStr := q.Get("employee_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			filter.EmployeeID = id
		}
	}
	if idStr := q.Get("project_id"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			filter.ProjectID = id
		}
	}
	filter.Status = q.Get("status")
	filter.ActivityType = q.Get("activity_type")

	from, to, err := h.dateRangeFromQuery(r)
	if err != nil {
		return filter, err
	}
	filter.DateFrom = from
	filter.DateTo = to

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			filter.Page = page
		}
	}
	if sizeStr := q.Get("page_size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			filter.PageSize = size
		}
	}

	return filter, nil
}

func (h *Handler) dateRangeFromQuery(r *http.Request) (time.Time, time.Time, error) {
	var from, to time.Time
	q := r.URL.Query()

	if fromStr := q.Get("date_from"); fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return from, to, internal.NewValidationError("date_from must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		from = parsed
	}
	if toStr := q.Get("date_to"); toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return from, to, internal.NewValidationError("date_to must use the YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		to = parsed
	}
	return from, to, nil
}
