package authstate

import (
	"log/slog"
	"sync"

	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/session"
)

type ProfileReader interface {
	GetByID(id string) (*profile.Profile, error)
}

type MDANameReader interface {
	GetName(id string) (string, error)
}

// Resolver maps the current session to an application profile plus its
// MDA's display name, and republishes the combined state to subscribers.
//
// It re-resolves on every session-change event, including pure token
// refreshes. Overlapping resolutions are settled last-requested-wins: each
// resolution carries a generation number and a result is discarded if a
// newer resolution has been requested since.
type Resolver struct {
	store    *session.Store
	profiles ProfileReader
	mdas     MDANameReader
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	gen     uint64
	subs    map[int64]func(State)
	nextSub int64
	cancel  func()
}

// NewResolver subscribes to the session store and, if a session is already
// known, starts resolving it immediately.
func NewResolver(store *session.Store, profiles ProfileReader, mdas MDANameReader, logger *slog.Logger) *Resolver {
	r := &Resolver{
		store:    store,
		profiles: profiles,
		mdas:     mdas,
		logger:   logger,
		state:    State{Loading: true},
		subs:     make(map[int64]func(State)),
	}

	r.cancel = store.OnChange(r.onSessionChange)

	if current := store.Current(); current != nil {
		r.onSessionChange(session.EventSignedIn, current)
	} else {
		r.mu.Lock()
		r.state = State{Loading: false}
		r.mu.Unlock()
	}

	return r
}

// State returns the current authorization state.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers a handler invoked on every state change. The returned
// function cancels the registration.
func (r *Resolver) Subscribe(handler func(State)) (cancel func()) {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = handler
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Close releases the session-store subscription. In-flight resolutions are
// not cancelled; their results are discarded on arrival.
func (r *Resolver) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()
}

func (r *Resolver) onSessionChange(event session.Event, sess *session.Session) {
	r.mu.Lock()
	r.gen++
	gen := r.gen

	if sess == nil {
		// Profile and MDA name are cleared in the same step as the
		// session: no observable state has a profile without a session.
		r.state = State{Loading: false}
		state := r.state
		r.mu.Unlock()
		r.publish(state)
		return
	}

	r.state = State{
		Loading: true,
		Session: sess,
		Profile: r.state.Profile,
		MDAName: r.state.MDAName,
	}
	state := r.state
	r.mu.Unlock()
	r.publish(state)

	go r.resolve(gen, sess)
}

func (r *Resolver) resolve(gen uint64, sess *session.Session) {
	prof, mdaName := LookupProfile(r.profiles, r.mdas, sess.UserID, r.logger)

	r.mu.Lock()
	if gen != r.gen {
		// A newer resolution was requested while this one was in flight.
		r.mu.Unlock()
		r.logger.Debug("stale profile resolution discarded", "user_id", sess.UserID)
		return
	}
	r.state = State{
		Loading: false,
		Session: sess,
		Profile: prof,
		MDAName: mdaName,
	}
	state := r.state
	r.mu.Unlock()

	r.publish(state)
}

func (r *Resolver) publish(state State) {
	r.mu.Lock()
	handlers := make([]func(State), 0, len(r.subs))
	for _, h := range r.subs {
		handlers = append(handlers, h)
	}
	r.mu.Unlock()

	for _, h := range handlers {
		h(state)
	}
}

// LookupProfile performs the two-step resolution: a point lookup of the
// profile by user id and, when an MDA is assigned, a point lookup of the
// MDA's display name. A failed name lookup does not invalidate a resolved
// profile; a failed profile lookup yields nil, which the gate treats as
// "no role to check".
func LookupProfile(profiles ProfileReader, mdas MDANameReader, userID string, logger *slog.Logger) (*profile.Profile, string) {
	prof, err := profiles.GetByID(userID)
	if err != nil {
		logger.Error("profile resolution failed", "user_id", userID, "error", err)
		return nil, ""
	}

	mdaName := ""
	if prof.Assigned() {
		name, err := mdas.GetName(*prof.MDAID)
		if err != nil {
			logger.Error("mda name lookup failed", "mda_id", *prof.MDAID, "error", err)
		} else {
			mdaName = name
		}
	}

	return prof, mdaName
}
