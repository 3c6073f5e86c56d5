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

	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/admin"
	"github.com/ppimu/project-monitoring/internal/auth"
	authpg "github.com/ppimu/project-monitoring/internal/auth/postgres"
	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/core/events"
	mdapg "github.com/ppimu/project-monitoring/internal/mda/postgres"
	profilepg "github.com/ppimu/project-monitoring/internal/profile/postgres"
	"github.com/ppimu/project-monitoring/internal/project"
	projectpg "github.com/ppimu/project-monitoring/internal/project/postgres"
	"github.com/ppimu/project-monitoring/internal/report"
	reportpg "github.com/ppimu/project-monitoring/internal/report/postgres"
	"github.com/ppimu/project-monitoring/internal/session"
	"github.com/ppimu/project-monitoring/internal/transport/middleware"
	"github.com/ppimu/project-monitoring/internal/transport/rest"
	"github.com/ppimu/project-monitoring/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config       *internal.Config
	DB           *sqlx.DB
	GormDB       *gorm.DB
	Router       *chi.Mux
	Logger       *slog.Logger
	SessionStore *session.Store
	Resolver     *authstate.Resolver
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		deps.Resolver.Close()
		deps.SessionStore.Close()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGormDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// Repositories
	accountRepo := authpg.NewRepository(gormDB)
	profileRepo := profilepg.NewProfileRepository(gormDB)
	mdaRepo := mdapg.NewMDARepository(gormDB)
	projectRepo := projectpg.NewProjectRepository(gormDB)
	reportRepo := reportpg.NewReportRepository(gormDB)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(accountRepo, tokenGen, config.Security.BCryptCost, lg)
	projectService := project.NewService(projectRepo, lg)
	reportService := report.NewService(reportRepo, projectService, lg)
	adminService := admin.NewService(authService, profileRepo, mdaRepo, lg)

	// In-process auth state: the provider-backed session store feeds the
	// resolver, and session lifecycle events land on the bus.
	bus := events.NewEventBus(lg)
	bus.Subscribe(events.SessionSignedIn, logSessionEvent(lg, "session signed in"))
	bus.Subscribe(events.SessionSignedOut, logSessionEvent(lg, "session signed out"))
	bus.Subscribe(events.SessionTokenRefreshed, logSessionEvent(lg, "session token refreshed"))

	provider := auth.NewLocalProvider(authService, profileRepo)
	sessionStore := session.NewStore(context.Background(), provider, bus, lg)
	resolver := authstate.NewResolver(sessionStore, profileRepo, mdaRepo, lg)

	// Handlers
	roleGate := middleware.NewRoleGate(profileRepo, mdaRepo, lg)
	authHandler := auth.NewHandler(authService, profileRepo, mdaRepo)
	authStateHandler := authstate.NewHandler()
	projectHandler := project.NewHandler(projectService)
	reportHandler := report.NewHandler(reportService)
	adminHandler := admin.NewHandler(adminService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:               db.DB,
		AuthHandler:      authHandler,
		AuthStateHandler: authStateHandler,
		ProjectHandler:   projectHandler,
		ReportHandler:    reportHandler,
		AdminHandler:     adminHandler,
		RoleGate:         roleGate,
		Logger:           lg,
	})

	return &Dependencies{
		Config:       config,
		DB:           db,
		GormDB:       gormDB,
		Router:       router,
		Logger:       lg,
		SessionStore: sessionStore,
		Resolver:     resolver,
	}, nil
}

func logSessionEvent(lg *slog.Logger, msg string) events.Handler {
	return func(ctx context.Context, e events.Event) error {
		lg.Info(msg, "event_id", e.EventID(), "occurred_at", e.OccurredAt())
		return nil
	}
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGormDB layers gorm over the already open pgx connection pool
func initGormDB(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormpg.New(gormpg.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
