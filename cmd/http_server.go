package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/timesheet-management/internal"
	"github.com/frahmantamala/timesheet-management/internal/auth"
	authpg "github.com/frahmantamala/timesheet-management/internal/auth/postgres"
	"github.com/frahmantamala/timesheet-management/internal/core/events"
	"github.com/frahmantamala/timesheet-management/internal/employee"
	employeepg "github.com/frahmantamala/timesheet-management/internal/employee/postgres"
	"github.com/frahmantamala/timesheet-management/internal/project"
	projectpg "github.com/frahmantamala/timesheet-management/internal/project/postgres"
	"github.com/frahmantamala/timesheet-management/internal/timesheet"
	timesheetpg "github.com/frahmantamala/timesheet-management/internal/timesheet/postgres"
	"github.com/frahmantamala/timesheet-management/internal/transport"
	"github.com/frahmantamala/timesheet-management/internal/transport/rest"
	"github.com/frahmantamala/timesheet-management/internal/user"
	userpg "github.com/frahmantamala/timesheet-management/internal/user/postgres"
	"github.com/frahmantamala/timesheet-management/pkg/logger"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const openAPISpecPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config           *internal.Config
	DB               *sqlx.DB
	GormDB           *gorm.DB
	Router           *chi.Mux
	Logger           *slog.Logger
	AuthHandler      *auth.Handler
	RBAC             *auth.RBACAuthorization
	UserHandler      *user.Handler
	TimesheetHandler *timesheet.Handler
	EmployeeHandler  *employee.Handler
	ProjectHandler   *project.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.RBAC,
		deps.UserHandler,
		deps.TimesheetHandler,
		deps.EmployeeHandler,
		deps.ProjectHandler,
		deps.Logger,
	)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.LoggerWrapper()

	if err := validateOpenAPISpec(log); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	// auth
	authRepo := authpg.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)
	rbac := auth.NewRBACAuthorization(&auth.DefaultPermissionChecker{}, log)

	// domain services
	employeeService := employee.NewService(employeepg.NewEmployeeRepository(gormDB), log)
	projectService := project.NewService(projectpg.NewProjectRepository(gormDB), log)
	userService := user.NewService(userpg.NewUserRepository(db), employeeService)

	eventBus := events.NewEventBus(log)
	registerEventHandlers(eventBus, log)

	warningPolicy := &timesheet.DefaultWarningPolicy{
		LongDayHours:       config.Timesheet.LongDayWarningHours,
		WarnOnMissingNotes: config.Timesheet.WarnOnMissingNotes,
	}
	timesheetService := timesheet.NewService(
		timesheetpg.NewTimesheetRepository(gormDB),
		warningPolicy,
		eventBus,
		log,
	)

	base := transport.NewBaseHandler(log)

	return &Dependencies{
		Config:           config,
		Logger:           log,
		DB:               db,
		GormDB:           gormDB,
		Router:           chi.NewRouter(),
		AuthHandler:      authHandler,
		RBAC:             rbac,
		UserHandler:      user.NewHandler(userService),
		TimesheetHandler: timesheet.NewHandler(timesheetService),
		EmployeeHandler:  employee.NewHandler(base, employeeService),
		ProjectHandler:   project.NewHandler(base, projectService),
	}, nil
}

// validateOpenAPISpec fails startup when the served contract is malformed.
// A missing file is tolerated so binaries can run outside the repo root.
func validateOpenAPISpec(log *slog.Logger) error {
	if _, err := os.Stat(openAPISpecPath); os.IsNotExist(err) {
		log.Warn("openapi spec not found, skipping validation", "path", openAPISpecPath)
		return nil
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openAPISpecPath)
	if err != nil {
		return fmt.Errorf("failed to load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("invalid openapi spec: %w", err)
	}

	log.Info("openapi spec validated", "path", openAPISpecPath, "title", doc.Info.Title)
	return nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers the ORM over the existing pgx connection pool so both
// access paths share one set of pool limits.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
}

// registerEventHandlers attaches the in-process subscribers fired after
// weekly submissions and bulk deletions commit.
func registerEventHandlers(eventBus *events.EventBus, log *slog.Logger) {
	eventBus.Subscribe(events.EventTypeWeekSubmitted, func(ctx context.Context, event events.Event) error {
		log.Info("week submitted",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})

	eventBus.Subscribe(events.EventTypeTimesheetDeleted, func(ctx context.Context, event events.Event) error {
		log.Info("timesheets deleted",
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	})
}
