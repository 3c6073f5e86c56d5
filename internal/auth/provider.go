package auth

import (
	"context"
	"sync"
	"time"

	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/session"
)

// ProfileWriter is the slice of the profile domain the provider needs to
// attach sign-up metadata to the created identity.
type ProfileWriter interface {
	Create(p *profile.Profile) error
}

// LocalProvider adapts the auth service to the session.Provider interface,
// giving in-process consumers (the session store, seeding, integration
// tests) the same sign-in/sign-out/notification surface a hosted provider
// would expose.
type LocalProvider struct {
	svc      ServiceAPI
	profiles ProfileWriter

	mu      sync.Mutex
	current *session.Session
	subs    map[int64]func(session.Event, *session.Session)
	nextSub int64
}

func NewLocalProvider(svc ServiceAPI, profiles ProfileWriter) *LocalProvider {
	return &LocalProvider{
		svc:      svc,
		profiles: profiles,
		subs:     make(map[int64]func(session.Event, *session.Session)),
	}
}

func (p *LocalProvider) CurrentSession(ctx context.Context) (*session.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, nil
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*session.Session, error) {
	tokens, err := p.svc.Authenticate(LoginDTO{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return p.establish(tokens, session.EventSignedIn)
}

// SignUp provisions an account, inserts the profile row carried in the
// sign-up metadata under the same id, and signs the new user in, matching
// hosted providers where sign-up establishes a session for the created
// identity.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string, meta session.SignUpMetadata) (*session.Session, error) {
	account, err := p.svc.SignUp(SignUpDTO{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	if p.profiles != nil {
		prof := &profile.Profile{
			ID:        account.ID,
			FullName:  meta.FullName,
			CreatedAt: time.Now(),
		}
		if meta.Role != "" {
			role := profile.Role(meta.Role)
			prof.Role = &role
		}
		if meta.MDAID != "" {
			mdaID := meta.MDAID
			prof.MDAID = &mdaID
		}
		if err := p.profiles.Create(prof); err != nil {
			return nil, err
		}
	}

	tokens, err := p.svc.Authenticate(LoginDTO{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return p.establish(tokens, session.EventSignedIn)
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.emit(session.EventSignedOut, nil)
	return nil
}

// Refresh exchanges the current session's refresh token for a new pair and
// notifies subscribers of the token refresh.
func (p *LocalProvider) Refresh(ctx context.Context, refreshToken string) (*session.Session, error) {
	tokens, err := p.svc.RefreshTokens(refreshToken)
	if err != nil {
		return nil, err
	}
	return p.establish(tokens, session.EventTokenRefreshed)
}

func (p *LocalProvider) OnAuthStateChange(handler func(event session.Event, s *session.Session)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = handler
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *LocalProvider) establish(tokens AuthTokens, event session.Event) (*session.Session, error) {
	claims, err := p.svc.ValidateAccessToken(tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		UserID:      claims.UserID,
		Email:       claims.Email,
		AccessToken: tokens.AccessToken,
		ExpiresAt:   tokens.ExpiresAt,
	}

	p.mu.Lock()
	p.current = sess
	p.mu.Unlock()

	p.emit(event, sess)
	return sess, nil
}

func (p *LocalProvider) emit(event session.Event, sess *session.Session) {
	p.mu.Lock()
	handlers := make([]func(session.Event, *session.Session), 0, len(p.subs))
	for _, h := range p.subs {
		handlers = append(handlers, h)
	}
	p.mu.Unlock()

	for _, h := range handlers {
		h(event, sess)
	}
}
