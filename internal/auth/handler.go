package auth

import (
	"encoding/json"
	"net/http"

	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/transport"
	"github.com/ppimu/project-monitoring/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	profiles authstate.ProfileReader
	mdas     authstate.MDANameReader
}

func NewHandler(svc ServiceAPI, profiles authstate.ProfileReader, mdas authstate.MDANameReader) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
		profiles:    profiles,
		mdas:        mdas,
	}
}

// Login authenticates the caller and returns tokens together with the
// resolved profile, so the client can land on the dashboard matching its
// role in one round-trip.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)

		switch err {
		case ErrInvalidCredentials:
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		case ErrAccountInactive:
			h.WriteError(w, http.StatusUnauthorized, "account is inactive")
		default:
			h.WriteError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	claims, err := h.Service.ValidateAccessToken(tokens.AccessToken)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// A failed profile lookup is logged and leaves the profile null; the
	// sign-in itself still succeeds.
	prof, mdaName := authstate.LookupProfile(h.profiles, h.mdas, claims.UserID, h.Logger)

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		AuthTokens: tokens,
		Profile:    prof,
		MDAName:    mdaName,
		RedirectTo: landingPath(prof),
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch err {
		case ErrInvalidToken, ErrTokenExpired:
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		case ErrAccountInactive:
			h.WriteError(w, http.StatusUnauthorized, "account is inactive")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware validates the bearer token and stores its claims on the
// request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		ctx = internal.ContextWithUserID(ctx, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func landingPath(prof *profile.Profile) string {
	if prof == nil || prof.Role == nil {
		return "/dashboard"
	}
	switch *prof.Role {
	case profile.RoleSuperUser:
		return "/admin"
	case profile.RoleApprover:
		return "/approvals"
	default:
		return "/dashboard"
	}
}
