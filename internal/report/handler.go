package report

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

// ListReports returns progress updates scoped through the caller's MDA,
// most recent report date first. Super users get the unscoped collection.
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())

	var (
		reports []*ProgressUpdate
		err     error
	)
	if isSuperUser(state) {
		reports, err = h.Service.ListAll()
	} else {
		reports, err = h.Service.ListForMDA(state.MDAID())
	}
	if err != nil {
		h.Logger.Error("ListReports: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	state := authstate.StateFromContext(r.Context())

	var dto CreateReportDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitReport: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.SubmitReport(dto, state.MDAID(), isSuperUser(state))
	if err != nil {
		h.Logger.Error("SubmitReport: service error", "error", err, "project_id", dto.ProjectID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitReport: report submitted",
		"report_id", u.ID,
		"project_id", u.ProjectID)

	h.WriteJSON(w, http.StatusCreated, u)
}

// ApproveReport marks a report approved. Repeat approvals succeed.
func (h *Handler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")

	u, err := h.Service.ApproveReport(reportID)
	if err != nil {
		h.Logger.Error("ApproveReport: service error", "error", err, "report_id", reportID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("ApproveReport: report approved", "report_id", reportID)
	h.WriteJSON(w, http.StatusOK, u)
}

func isSuperUser(state authstate.State) bool {
	return state.Profile != nil && state.Profile.HasRole(profile.RoleSuperUser)
}
