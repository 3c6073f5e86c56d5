package authstate

import (
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/session"
)

// State is the derived authorization tuple consumed by the gate and the
// scoped data stores. It is recomputed whenever the session or profile
// changes and never persisted.
//
// Invariant: Loading=false implies the session is nil or a profile
// resolution has been attempted, successfully or not.
type State struct {
	Loading bool             `json:"loading"`
	Session *session.Session `json:"session"`
	Profile *profile.Profile `json:"profile"`
	MDAName string           `json:"mda_name"`
}

// MDAID returns the caller's organizational-unit id, or empty when the
// profile is unresolved or unassigned.
func (s State) MDAID() string {
	if s.Profile == nil || s.Profile.MDAID == nil {
		return ""
	}
	return *s.Profile.MDAID
}
