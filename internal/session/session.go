package session

import (
	"context"
	"time"
)

// Session is the authenticated identity as reported by the auth provider.
// It is owned by the Store; every other component treats it as read-only.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (s *Session) Expired() bool {
	return s != nil && !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Event identifies the kind of auth-state transition a provider reports.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventSignedOut      Event = "SIGNED_OUT"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
)

// SignUpMetadata is the application-level profile data attached to a new
// account at provisioning time.
type SignUpMetadata struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	MDAID    string `json:"mda_id"`
}

// Provider is the external auth collaborator: sign-in, sign-up, sign-out,
// current-session reads and change notifications. The production
// implementation lives in the auth package; tests use a fake.
type Provider interface {
	CurrentSession(ctx context.Context) (*Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string, meta SignUpMetadata) (*Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(handler func(event Event, s *Session)) (unsubscribe func())
}
