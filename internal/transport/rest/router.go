package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/timesheet-management/internal/auth"
	"github.com/frahmantamala/timesheet-management/internal/employee"
	"github.com/frahmantamala/timesheet-management/internal/project"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
	"github.com/frahmantamala/timesheet-management/internal/transport/middleware"
	"github.com/frahmantamala/timesheet-management/internal/transport/swagger"
	"github.com/frahmantamala/timesheet-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, rbac *auth.RBACAuthorization, userHandler *user.Handler, timesheetHandler *timesheet.Handler, employeeHandler *employee.Handler, projectHandler *project.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/register", authHandler.Register)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				// Current user
				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetCurrentUser)
				}

				// Timesheet routes
				if timesheetHandler != nil {
					pr.Route("/timesheets", func(tr chi.Router) {
						tr.Post("/", timesheetHandler.CreateTimesheet)
						tr.Get("/", timesheetHandler.ListTimesheets)
						tr.Get("/my", timesheetHandler.MyTimesheets)
						tr.Get("/drafts", timesheetHandler.Drafts)
						tr.Get("/summary", timesheetHandler.TimesheetSummary)
						tr.Get("/week-summary", timesheetHandler.WeekSummary)

						tr.Post("/validate", timesheetHandler.ValidateTimesheet)
						tr.Post("/submit-week", timesheetHandler.SubmitWeek)
						tr.Post("/validate-week", timesheetHandler.ValidateWeek)
						tr.Post("/bulk", timesheetHandler.BulkAction)

						tr.Get("/{id}", timesheetHandler.GetTimesheet)
						tr.Patch("/{id}", timesheetHandler.UpdateTimesheet)
						tr.Delete("/{id}", timesheetHandler.DeleteTimesheet)

						// Kept as an endpoint so clients get a clear error
						// instead of a 404: entries are only submitted in
						// weekly batches.
						tr.Post("/{id}/submit", timesheetHandler.SubmitTimesheet)
					})
				}

				// Employee routes
				if employeeHandler != nil {
					pr.Route("/employees", func(er chi.Router) {
						er.Get("/", employeeHandler.ListEmployees)
						er.Get("/managers", employeeHandler.ListManagers)
						er.Get("/{id}", employeeHandler.GetEmployee)

						er.Group(func(mr chi.Router) {
							mr.Use(rbac.RequireManageEmployees())
							mr.Post("/", employeeHandler.CreateEmployee)
							mr.Patch("/{id}", employeeHandler.UpdateEmployee)
							mr.Post("/{id}/activate", employeeHandler.ActivateEmployee)
							mr.Post("/{id}/deactivate", employeeHandler.DeactivateEmployee)
						})
					})
				}

				// Project routes
				if projectHandler != nil {
					pr.Route("/projects", func(jr chi.Router) {
						jr.Get("/", projectHandler.ListProjects)
						jr.Get("/{id}", projectHandler.GetProject)
						jr.Get("/{id}/activity-types", projectHandler.GetProjectActivityTypes)

						jr.Group(func(mr chi.Router) {
							mr.Use(rbac.RequireManageProjects())
							mr.Post("/", projectHandler.CreateProject)
							mr.Patch("/{id}", projectHandler.UpdateProject)
							mr.Post("/{id}/archive", projectHandler.ArchiveProject)
						})
					})
				}
			})
		}
	})
}
