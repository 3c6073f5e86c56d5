package report

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

// Store keeps the caller's MDA-scoped report list current. Read failures
// land in Err; Approve both records the failure and returns it, so callers
// can surface it immediately.
type Store struct {
	svc    ServiceAPI
	auth   AuthSource
	logger *slog.Logger

	mu      sync.Mutex
	mdaID   string
	reports []*ProgressUpdate
	loading bool
	errMsg  string
	cancel  func()
}

// NewStore subscribes to the auth source and loads the list for the current
// profile, if one is already resolved.
func NewStore(auth AuthSource, svc ServiceAPI, logger *slog.Logger) *Store {
	s := &Store{
		svc:     svc,
		auth:    auth,
		logger:  logger,
		reports: []*ProgressUpdate{},
		loading: true,
	}

	s.cancel = auth.Subscribe(s.onAuthState)
	s.onAuthState(auth.State())

	return s
}

// Reports returns the current list snapshot, most recent report date first.
func (s *Store) Reports() []*ProgressUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports
}

// Loading reports whether a fetch is in progress.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last failure, or empty when the last operation succeeded.
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

// Submit creates a progress update and refreshes the list on success.
func (s *Store) Submit(dto CreateReportDTO) (*ProgressUpdate, error) {
	s.mu.Lock()
	mdaID := s.mdaID
	s.mu.Unlock()

	u, err := s.svc.SubmitReport(dto, mdaID, false)
	if err != nil {
		return nil, err
	}

	s.fetch(mdaID)
	return u, nil
}

// Approve marks a report approved and refreshes the list. On failure the
// error is kept as state and also returned.
func (s *Store) Approve(reportID string) error {
	if _, err := s.svc.ApproveReport(reportID); err != nil {
		s.mu.Lock()
		s.errMsg = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	mdaID := s.mdaID
	s.mu.Unlock()

	if mdaID != "" {
		s.fetch(mdaID)
	}
	return nil
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
		s.reports = []*ProgressUpdate{}
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

	reports, err := s.svc.ListForMDA(mdaID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.reports = reports
}
