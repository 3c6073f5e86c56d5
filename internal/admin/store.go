package admin

import (
	"log/slog"
	"sync"

	"github.com/ppimu/project-monitoring/internal/mda"
	"github.com/ppimu/project-monitoring/internal/profile"
)

// Store holds the unscoped admin view: every profile and every MDA, fetched
// together. Read failures are kept as state; provisioning failures are
// returned to the caller.
type Store struct {
	svc    ServiceAPI
	logger *slog.Logger

	mu      sync.Mutex
	users   []*profile.Profile
	mdas    []*mda.MDA
	loading bool
	errMsg  string
}

// NewStore fetches the initial collections.
func NewStore(svc ServiceAPI, logger *slog.Logger) *Store {
	s := &Store{
		svc:     svc,
		logger:  logger,
		users:   []*profile.Profile{},
		mdas:    []*mda.MDA{},
		loading: true,
	}
	s.Refetch()
	return s
}

// Users returns the current profile list snapshot.
func (s *Store) Users() []*profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

// MDAs returns the current MDA list snapshot.
func (s *Store) MDAs() []*mda.MDA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mdas
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

// Refetch loads users and MDAs concurrently. The first failure wins; a
// failed fetch leaves the previous snapshot in place.
func (s *Store) Refetch() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var (
		wg       sync.WaitGroup
		users    []*profile.Profile
		mdas     []*mda.MDA
		userErr  error
		mdaErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, userErr = s.svc.ListUsers()
	}()
	go func() {
		defer wg.Done()
		mdas, mdaErr = s.svc.ListMDAs()
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if userErr != nil {
		s.errMsg = userErr.Error()
		return
	}
	if mdaErr != nil {
		s.errMsg = mdaErr.Error()
		return
	}

	s.errMsg = ""
	s.users = users
	s.mdas = mdas
}

// CreateUser provisions an account plus profile and refreshes the view.
func (s *Store) CreateUser(dto CreateUserDTO) (*profile.Profile, error) {
	prof, err := s.svc.CreateUser(dto)
	if err != nil {
		return nil, err
	}

	s.Refetch()
	return prof, nil
}

// CreateMDA registers an MDA and refreshes the view.
func (s *Store) CreateMDA(dto CreateMDADTO) (*mda.MDA, error) {
	m, err := s.svc.CreateMDA(dto)
	if err != nil {
		return nil, err
	}

	s.Refetch()
	return m, nil
}
