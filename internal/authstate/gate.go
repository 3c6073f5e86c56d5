package authstate

import (
	"github.com/ppimu/project-monitoring/internal/profile"
)

// Decision is the gate's verdict for a guarded view.
type Decision int

const (
	// DecisionPending: resolution still running, show a waiting indicator.
	DecisionPending Decision = iota
	// DecisionSignIn: nobody is signed in, send to the sign-in entry point.
	DecisionSignIn
	// DecisionForbidden: signed in but the role is not accepted here.
	DecisionForbidden
	// DecisionAllow: render the guarded view.
	DecisionAllow
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionSignIn:
		return "sign_in"
	case DecisionForbidden:
		return "forbidden"
	case DecisionAllow:
		return "allow"
	}
	return "unknown"
}

// Evaluate decides access for a view given the current authorization state
// and the view's accepted roles. An empty role set means any authenticated
// caller is accepted.
//
// When a session exists but the profile failed to resolve, the role check
// is skipped and the view is allowed: role enforcement relies on the
// profile row existing. Tests pin this behavior; change it deliberately.
func Evaluate(state State, allowed ...profile.Role) Decision {
	if state.Loading {
		return DecisionPending
	}
	if state.Session == nil {
		return DecisionSignIn
	}
	if len(allowed) > 0 && state.Profile != nil && !state.Profile.HasRole(allowed...) {
		return DecisionForbidden
	}
	return DecisionAllow
}
