package project_test

import (
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/project"
	"github.com/ppimu/project-monitoring/internal/session"
)

type fakeAuthSource struct {
	mu       sync.Mutex
	state    authstate.State
	handlers []func(authstate.State)
}

func (f *fakeAuthSource) State() authstate.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeAuthSource) Subscribe(handler func(authstate.State)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, handler)
	return func() {}
}

func (f *fakeAuthSource) Set(state authstate.State) {
	f.mu.Lock()
	f.state = state
	handlers := append([]func(authstate.State){}, f.handlers...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(state)
	}
}

func resolvedState(mdaID string) authstate.State {
	role := profile.RoleUser
	return authstate.State{
		Session: &session.Session{UserID: "user-1"},
		Profile: &profile.Profile{ID: "user-1", MDAID: &mdaID, Role: &role},
	}
}

var _ = Describe("Project Store", func() {
	var (
		auth   *fakeAuthSource
		repo   *mockProjectRepository
		svc    *project.Service
		store  *project.Store
		logger *slog.Logger
	)

	BeforeEach(func() {
		auth = &fakeAuthSource{state: authstate.State{Loading: true}}
		repo = newMockProjectRepository()
		repo.projects["p1"] = &project.Project{ID: "p1", MDAID: "mda-7", Title: "Airport Road"}
		repo.projects["p2"] = &project.Project{ID: "p2", MDAID: "mda-9", Title: "Clinic"}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = project.NewService(repo, logger)
		store = project.NewStore(auth, svc, logger)
	})

	AfterEach(func() {
		store.Close()
	})

	It("loads the MDA's projects when the profile resolves", func() {
		auth.Set(resolvedState("mda-7"))

		Expect(store.Loading()).To(BeFalse())
		Expect(store.Projects()).To(HaveLen(1))
		Expect(store.Projects()[0].ID).To(Equal("p1"))
	})

	It("reloads when the resolved MDA changes", func() {
		auth.Set(resolvedState("mda-7"))
		Expect(store.Projects()[0].ID).To(Equal("p1"))

		auth.Set(resolvedState("mda-9"))
		Expect(store.Projects()[0].ID).To(Equal("p2"))
	})

	It("settles empty without an MDA assignment", func() {
		role := profile.RoleSuperUser
		auth.Set(authstate.State{
			Session: &session.Session{UserID: "admin"},
			Profile: &profile.Profile{ID: "admin", Role: &role},
		})

		Expect(store.Loading()).To(BeFalse())
		Expect(store.Projects()).To(BeEmpty())
		Expect(store.Err()).To(BeEmpty())
	})

	It("captures read failures as state", func() {
		repo.listErr = errors.New("connection refused")
		auth.Set(resolvedState("mda-7"))

		Expect(store.Err()).To(ContainSubstring("connection refused"))
	})

	It("creates under the resolved MDA and refreshes", func() {
		auth.Set(resolvedState("mda-7"))

		p, err := store.Create(project.CreateProjectDTO{
			Title:     "New Bridge",
			Sector:    "Infrastructure",
			StartDate: time.Now().AddDate(0, -1, 0),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.MDAID).To(Equal("mda-7"))
		Expect(store.Projects()).To(HaveLen(2))
	})

	It("returns write failures to the caller", func() {
		auth.Set(resolvedState("mda-7"))

		_, err := store.Create(project.CreateProjectDTO{})
		Expect(err).To(HaveOccurred())
	})
})
