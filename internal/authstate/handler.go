package authstate

import (
	"net/http"

	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/transport"
	"github.com/ppimu/project-monitoring/pkg/logger"
)

// Handler exposes the resolved authorization state over HTTP.
type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
	}
}

// CurrentUserResponse mirrors the resolved authorization state: the profile
// may be null even for an authenticated caller.
type CurrentUserResponse struct {
	UserID  string           `json:"user_id"`
	Email   string           `json:"email"`
	Profile *profile.Profile `json:"profile"`
	MDAName string           `json:"mda_name,omitempty"`
}

// GetCurrentUser returns the caller's resolved profile and MDA name.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	if state.Session == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, CurrentUserResponse{
		UserID:  state.Session.UserID,
		Email:   state.Session.Email,
		Profile: state.Profile,
		MDAName: state.MDAName,
	})
}
