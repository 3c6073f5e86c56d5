package project

import (
	"log/slog"
	"sync"

	"github.com/ppimu/project-monitoring/internal/authstate"
)

// AuthSource is the slice of the auth resolver the store consumes.
type AuthSource interface {
	State() authstate.State
	Subscribe(handler func(authstate.State)) (cancel func())
}

// Store keeps an MDA-scoped project list in sync with the caller's resolved
// profile. Reads record their failure as state rather than returning it;
// writes return errors and refresh the list on success.
type Store struct {
	svc    ServiceAPI
	auth   AuthSource
	logger *slog.Logger

	mu       sync.Mutex
	mdaID    string
	projects []*Project
	loading  bool
	errMsg   string
	cancel   func()
}

// NewStore subscribes to the auth source and loads the list for the current
// profile, if one is already resolved.
func NewStore(auth AuthSource, svc ServiceAPI, logger *slog.Logger) *Store {
	s := &Store{
		svc:      svc,
		auth:     auth,
		logger:   logger,
		projects: []*Project{},
		loading:  true,
	}

	s.cancel = auth.Subscribe(s.onAuthState)
	s.onAuthState(auth.State())

	return s
}

// Projects returns the current list snapshot.
func (s *Store) Projects() []*Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects
}

// Loading reports whether a fetch is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last read failure, or empty when the last read succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Refetch reloads the list for the current MDA.
func (s *Store) Refetch() {
	s.mu.Lock()
	mdaID := s.mdaID
	s.mu.Unlock()

	if mdaID != "" {
		s.fetch(mdaID)
	}
}

// Create submits a new project and refreshes the list on success.
func (s *Store) Create(dto CreateProjectDTO) (*Project, error) {
	s.mu.Lock()
	mdaID := s.mdaID
	s.mu.Unlock()

	p, err := s.svc.CreateProject(dto, mdaID)
	if err != nil {
		return nil, err
	}

	s.fetch(mdaID)
	return p, nil
}

// Update applies a partial update and refreshes the list on success.
func (s *Store) Update(id string, dto UpdateProjectDTO) (*Project, error) {
	s.mu.Lock()
	mdaID := s.mdaID
	s.mu.Unlock()

	p, err := s.svc.UpdateProject(id, dto, mdaID, false)
	if err != nil {
		return nil, err
	}

	s.fetch(mdaID)
	return p, nil
}

// Close releases the auth subscription.
func (s *Store) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Store) onAuthState(state authstate.State) {
	if state.Loading {
		return
	}

	mdaID := state.MDAID()

	s.mu.Lock()
	s.mdaID = mdaID
	if mdaID == "" {
		// No profile or no MDA assignment: empty list, settled, no error.
		s.projects = []*Project{}
		s.loading = false
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.fetch(mdaID)
}

func (s *Store) fetch(mdaID string) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	projects, err := s.svc.ListForMDA(mdaID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.projects = projects
}
