package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ppimu/project-monitoring/internal/admin"
	"github.com/ppimu/project-monitoring/internal/auth"
	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/project"
	"github.com/ppimu/project-monitoring/internal/report"
	"github.com/ppimu/project-monitoring/internal/transport/middleware"
	"github.com/ppimu/project-monitoring/internal/transport/swagger"
)

// RouterDeps carries everything RegisterAllRoutes wires together.
type RouterDeps struct {
	DB               *sql.DB
	AuthHandler      *auth.Handler
	AuthStateHandler *authstate.Handler
	ProjectHandler   *project.Handler
	ReportHandler    *report.Handler
	AdminHandler     *admin.Handler
	RoleGate         *middleware.RoleGate
	Logger           *slog.Logger
}

// RegisterAllRoutes mounts the API. Route groups mirror the dashboard's
// surfaces: MDA-scoped project and report views for engineers, approvals
// for approvers, and the unscoped admin console for super users.
func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	router.Use(middleware.RecoveryMiddleware(deps.Logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", deps.AuthHandler.Login)
			sr.Post("/refresh", deps.AuthHandler.RefreshToken)
			sr.Post("/logout", deps.AuthHandler.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			// Current user: any authenticated caller, profile may be null
			pr.Group(func(ur chi.Router) {
				ur.Use(deps.RoleGate.Require())
				ur.Get("/users/me", deps.AuthStateHandler.GetCurrentUser)
			})

			// Project routes: engineers work their MDA's projects, super
			// users see everything. Approvers get read access for review.
			pr.Route("/projects", func(er chi.Router) {
				er.Group(func(rr chi.Router) {
					rr.Use(deps.RoleGate.Require(profile.RoleUser, profile.RoleApprover, profile.RoleSuperUser))
					rr.Get("/", deps.ProjectHandler.ListProjects)
					rr.Get("/{id}", deps.ProjectHandler.GetProject)
					rr.Get("/{id}/finance", deps.ProjectHandler.GetProjectFinance)
					rr.Get("/{id}/issues", deps.ProjectHandler.GetProjectIssues)
				})

				er.Group(func(wr chi.Router) {
					wr.Use(deps.RoleGate.Require(profile.RoleUser, profile.RoleSuperUser))
					wr.Post("/", deps.ProjectHandler.CreateProject)
					wr.Patch("/{id}", deps.ProjectHandler.UpdateProject)
				})
			})

			// Report routes: approval is gated to approvers and super users
			pr.Route("/reports", func(er chi.Router) {
				er.Group(func(rr chi.Router) {
					rr.Use(deps.RoleGate.Require(profile.RoleUser, profile.RoleApprover, profile.RoleSuperUser))
					rr.Get("/", deps.ReportHandler.ListReports)
				})

				er.Group(func(wr chi.Router) {
					wr.Use(deps.RoleGate.Require(profile.RoleUser, profile.RoleSuperUser))
					wr.Post("/", deps.ReportHandler.SubmitReport)
				})

				er.Group(func(ar chi.Router) {
					ar.Use(deps.RoleGate.Require(profile.RoleApprover, profile.RoleSuperUser))
					ar.Patch("/{id}/approve", deps.ReportHandler.ApproveReport)
				})
			})

			// Admin console: super users only
			pr.Route("/admin", func(ar chi.Router) {
				ar.Use(deps.RoleGate.Require(profile.RoleSuperUser))

				ar.Get("/users", deps.AdminHandler.ListUsers)
				ar.Post("/users", deps.AdminHandler.CreateUser)
				ar.Patch("/users/{id}", deps.AdminHandler.UpdateUser)

				ar.Get("/mdas", deps.AdminHandler.ListMDAs)
				ar.Post("/mdas", deps.AdminHandler.CreateMDA)
				ar.Patch("/mdas/{id}", deps.AdminHandler.UpdateMDA)
			})
		})
	})
}
