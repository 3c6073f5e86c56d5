package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ppimu/project-monitoring/internal/core/events"
)

// Handler observes session transitions. The session argument is nil after a
// sign-out.
type Handler func(event Event, s *Session)

// Store holds the current session and keeps it synchronized with the
// provider's notifications. It is the single source of truth for "is anyone
// signed in"; one Store exists per running application.
type Store struct {
	provider Provider
	bus      *events.EventBus
	logger   *slog.Logger

	mu          sync.RWMutex
	current     *Session
	subs        map[int64]Handler
	nextSub     int64
	unsubscribe func()
	closed      bool
}

// NewStore subscribes to the provider and seeds the store with the
// immediately-known session, if any. The bus is optional; when set, coarse
// session events are published on it for system-wide observers.
func NewStore(ctx context.Context, provider Provider, bus *events.EventBus, logger *slog.Logger) *Store {
	s := &Store{
		provider: provider,
		bus:      bus,
		logger:   logger,
		subs:     make(map[int64]Handler),
	}

	s.unsubscribe = provider.OnAuthStateChange(s.handleAuthChange)

	current, err := provider.CurrentSession(ctx)
	if err != nil {
		logger.Warn("initial session check failed", "error", err)
	} else {
		s.mu.Lock()
		s.current = current
		s.mu.Unlock()
		if current != nil {
			logger.Debug("initial session found", "user_id", current.UserID)
		}
	}

	return s
}

// Current returns the immediately-known session state. It never blocks; the
// value may be stale until the provider's next notification.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnChange registers a handler invoked on every actual session transition.
// The returned function cancels the registration.
func (s *Store) OnChange(handler Handler) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = handler
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SignOut clears local session state and delegates invalidation to the
// provider. Provider errors are returned, but local state is cleared
// regardless so a failed remote call can never leave a stuck session.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.Lock()
	had := s.current != nil
	s.current = nil
	s.mu.Unlock()

	if had {
		s.notify(EventSignedOut, nil)
	}

	if err := s.provider.SignOut(ctx); err != nil {
		s.logger.Error("provider sign-out failed; local session already cleared", "error", err)
		return err
	}
	return nil
}

// Close releases the provider subscription. The store stops reacting to
// provider notifications afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsub := s.unsubscribe
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (s *Store) handleAuthChange(event Event, sess *Session) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	// A sign-out notification for an already-cleared session is not a
	// transition; SignOut has notified subscribers itself.
	if event == EventSignedOut && s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = sess
	s.mu.Unlock()

	if sess != nil {
		s.logger.Debug("auth state changed", "event", string(event), "user_id", sess.UserID)
	} else {
		s.logger.Debug("auth state changed", "event", string(event))
	}

	s.notify(event, sess)
}

func (s *Store) notify(event Event, sess *Session) {
	s.mu.RLock()
	handlers := make([]Handler, 0, len(s.subs))
	for _, h := range s.subs {
		handlers = append(handlers, h)
	}
	s.mu.RUnlock()

	for _, h := range handlers {
		h(event, sess)
	}

	if s.bus != nil {
		userID := ""
		busType := events.SessionSignedOut
		switch event {
		case EventSignedIn:
			busType = events.SessionSignedIn
		case EventTokenRefreshed:
			busType = events.SessionTokenRefreshed
		}
		if sess != nil {
			userID = sess.UserID
		}
		if err := s.bus.Publish(context.Background(), events.NewSessionEvent(busType, userID)); err != nil {
			s.logger.Warn("session event publish failed", "error", err)
		}
	}
}
