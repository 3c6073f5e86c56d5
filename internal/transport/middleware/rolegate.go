package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ppimu/project-monitoring/internal/auth"
	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/session"
)

// RoleGate resolves the caller's profile per request and evaluates the
// same decision logic the reactive gate uses, so route protection and the
// in-process authorization state cannot drift apart.
type RoleGate struct {
	profiles authstate.ProfileReader
	mdas     authstate.MDANameReader
	logger   *slog.Logger
}

func NewRoleGate(profiles authstate.ProfileReader, mdas authstate.MDANameReader, logger *slog.Logger) *RoleGate {
	return &RoleGate{
		profiles: profiles,
		mdas:     mdas,
		logger:   logger,
	}
}

// Require gates a route to the given roles. With no roles it only demands
// an authenticated caller. A caller whose profile failed to resolve passes
// the role check with a warning; the profile is simply absent downstream.
func (g *RoleGate) Require(roles ...profile.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok || claims == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			sess := &session.Session{
				UserID: claims.UserID,
				Email:  claims.Email,
			}
			prof, mdaName := authstate.LookupProfile(g.profiles, g.mdas, claims.UserID, g.logger)

			state := authstate.State{
				Session: sess,
				Profile: prof,
				MDAName: mdaName,
			}

			switch authstate.Evaluate(state, roles...) {
			case authstate.DecisionSignIn:
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			case authstate.DecisionForbidden:
				role := ""
				if prof.Role != nil {
					role = string(*prof.Role)
				}
				g.logger.Warn("access denied: role not allowed",
					"user_id", claims.UserID,
					"role", role,
					"path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
				return
			case authstate.DecisionPending:
				// Cannot happen for a per-request state; treat as a server
				// fault rather than letting the request through.
				http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
				return
			}

			if prof == nil && len(roles) > 0 {
				g.logger.Warn("role check skipped: profile unresolved",
					"user_id", claims.UserID,
					"path", r.URL.Path)
			}

			ctx := authstate.ContextWithState(r.Context(), state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
