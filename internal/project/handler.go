package project

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/transport"
	"github.com/ppimu/project-monitoring/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

// ListProjects returns the caller's MDA-scoped project list. Super users
// get the unscoped collection.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())

	var (
		projects []*Project
		err      error
	)
	if isSuperUser(state) {
		projects, err = h.Service.ListAll()
	} else {
		projects, err = h.Service.ListForMDA(state.MDAID())
	}
	if err != nil {
		h.Logger.Error("ListProjects: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, projects)
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	p, err := h.Service.GetProject(projectID, state.MDAID(), isSuperUser(state))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.CreateProject(dto, state.MDAID())
	if err != nil {
		h.Logger.Error("CreateProject: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateProject: project created",
		"project_id", p.ID,
		"mda_id", p.MDAID,
		"title", p.Title)

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	var dto UpdateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProject: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.UpdateProject(projectID, dto, state.MDAID(), isSuperUser(state))
	if err != nil {
		h.Logger.Error("UpdateProject: service error", "error", err, "project_id", projectID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) GetProjectFinance(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	records, err := h.Service.FinanceForProject(projectID, state.MDAID(), isSuperUser(state))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) GetProjectIssues(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())
	projectID := chi.URLParam(r, "id")

	issues, err := h.Service.IssuesForProject(projectID, state.MDAID(), isSuperUser(state))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, issues)
}

func isSuperUser(state authstate.State) bool {
	return state.Profile != nil && state.Profile.HasRole(profile.RoleSuperUser)
}
