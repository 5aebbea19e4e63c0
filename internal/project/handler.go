package project

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/timesheet-management/internal/auth"
	"github.com/frahmantamala/timesheet-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAll(filter Filter) ([]*Project, error)
	GetByID(id int64) (*Project, error)
	Create(dto CreateProjectDTO) (*Project, error)
	Update(id int64, dto UpdateProjectDTO) (*Project, error)
	Archive(id int64) (*Project, error)
	ActivityTypes(id int64) (*ActivityTypesResponse, error)
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

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		Search:          q.Get("search"),
		Status:          q.Get("status"),
		IncludeArchived: q.Get("include_archived") == "true",
	}
	if raw := q.Get("billable"); raw != "" {
		billable := raw == "true"
		filter.Billable = &billable
	}

	projects, err := h.Service.GetAll(filter)
	if err != nil {
		h.Logger.Error("ListProjects: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListProjectsResponse{
		Projects: projects,
		Count:    len(projects),
	})
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := h.projectID(w, r)
	if err != nil {
		return
	}

	proj, err := h.Service.GetByID(id)
	if err != nil {
		h.Logger.Error("GetProject: service error", "error", err, "project_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, proj)
}

func (h *Handler) GetProjectActivityTypes(w http.ResponseWriter, r *http.Request) {
	id, err := h.projectID(w, r)
	if err != nil {
		return
	}

	resp, err := h.Service.ActivityTypes(id)
	if err != nil {
		h.Logger.Error("GetProjectActivityTypes: service error", "error", err, "project_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateProject: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateProject: project created", "project_id", proj.ID, "name", proj.Name)
	h.WriteJSON(w, http.StatusCreated, proj)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := h.projectID(w, r)
	if err != nil {
		return
	}

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateProject: service error", "error", err, "project_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, proj)
}

func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	id, err := h.projectID(w, r)
	if err != nil {
		return
	}

	proj, err := h.Service.Archive(id)
	if err != nil {
		h.Logger.Error("ArchiveProject: service error", "error", err, "project_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, proj)
}

func (h *Handler) projectID(w http.ResponseWriter, r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid project ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid project ID")
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
