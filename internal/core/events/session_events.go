package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionSignedIn       = "session.signed_in"
	SessionSignedOut      = "session.signed_out"
	SessionTokenRefreshed = "session.token_refreshed"
)

// NewSessionEvent builds an auth-provider notification. The user id may be
// empty for sign-out events.
func NewSessionEvent(eventType, userID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"user_id": userID,
		},
	}
}
