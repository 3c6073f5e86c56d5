package internal

import (
	"context"
)

type ctxKey string

// ContextUserKey carries the authenticated user's id once the bearer token
// has been validated.
const ContextUserKey ctxKey = "userID"

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ContextUserKey).(string); ok {
		return userID
	}
	return ""
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ContextUserKey, userID)
}
