package authstate

import "context"

type ctxKey struct{}

// ContextWithState attaches a resolved authorization state to the request
// context.
func ContextWithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, ctxKey{}, state)
}

// StateFromContext returns the authorization state set by the role gate
// middleware. The zero State (no session, not loading) is returned when
// none was set.
func StateFromContext(ctx context.Context) State {
	if ctx == nil {
		return State{}
	}
	if state, ok := ctx.Value(ctxKey{}).(State); ok {
		return state
	}
	return State{}
}
