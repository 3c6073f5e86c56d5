package report_test

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
	"github.com/ppimu/project-monitoring/internal/report"
	"github.com/ppimu/project-monitoring/internal/session"
)

// fakeAuthSource lets tests drive profile-resolution state changes.
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

// fakeReportService counts list calls and can fail reads.
type fakeReportService struct {
	mu         sync.Mutex
	reports    map[string][]*report.ProgressUpdate
	listErr    error
	listCalls  int
	submitErr  error
	approveErr error
	approved   []string
}

func (f *fakeReportService) ListForMDA(mdaID string) ([]*report.ProgressUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.reports[mdaID], nil
}

func (f *fakeReportService) ListAll() ([]*report.ProgressUpdate, error) {
	return nil, errors.New("not used")
}

func (f *fakeReportService) SubmitReport(dto report.CreateReportDTO, mdaID string, unscoped bool) (*report.ProgressUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	u := &report.ProgressUpdate{ID: "new-report", ProjectID: dto.ProjectID, ReportDate: dto.ReportDate}
	f.reports[mdaID] = append(f.reports[mdaID], u)
	return u, nil
}

func (f *fakeReportService) ApproveReport(id string) (*report.ProgressUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.approveErr != nil {
		return nil, f.approveErr
	}
	f.approved = append(f.approved, id)
	return &report.ProgressUpdate{ID: id, MilestoneStatus: report.MilestoneApproved}, nil
}

func (f *fakeReportService) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

var _ = Describe("Report Store", func() {
	var (
		auth   *fakeAuthSource
		svc    *fakeReportService
		store  *report.Store
		logger *slog.Logger
	)

	BeforeEach(func() {
		auth = &fakeAuthSource{state: authstate.State{Loading: true}}
		svc = &fakeReportService{reports: map[string][]*report.ProgressUpdate{
			"mda-7": {
				{ID: "r1", ProjectID: "proj-works", ReportDate: time.Now()},
			},
		}}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	})

	AfterEach(func() {
		store.Close()
	})

	It("stays loading until a profile resolves", func() {
		store = report.NewStore(auth, svc, logger)
		Expect(store.Loading()).To(BeTrue())
		Expect(store.Reports()).To(BeEmpty())
	})

	It("fetches the MDA's reports once the profile resolves", func() {
		store = report.NewStore(auth, svc, logger)
		auth.Set(resolvedState("mda-7"))

		Expect(store.Loading()).To(BeFalse())
		Expect(store.Reports()).To(HaveLen(1))
		Expect(store.Err()).To(BeEmpty())
	})

	It("settles empty for a profile without an MDA assignment", func() {
		store = report.NewStore(auth, svc, logger)
		role := profile.RoleUser
		auth.Set(authstate.State{
			Session: &session.Session{UserID: "user-1"},
			Profile: &profile.Profile{ID: "user-1", Role: &role},
		})

		Expect(store.Loading()).To(BeFalse())
		Expect(store.Reports()).To(BeEmpty())
		Expect(store.Err()).To(BeEmpty())
		Expect(svc.ListCalls()).To(BeZero())
	})

	It("captures read failures as state instead of returning them", func() {
		svc.listErr = errors.New("relation progress_updates does not exist")
		store = report.NewStore(auth, svc, logger)
		auth.Set(resolvedState("mda-7"))

		Expect(store.Err()).To(ContainSubstring("progress_updates"))
		Expect(store.Loading()).To(BeFalse())
	})

	It("clears the list when the session ends", func() {
		store = report.NewStore(auth, svc, logger)
		auth.Set(resolvedState("mda-7"))
		Expect(store.Reports()).To(HaveLen(1))

		auth.Set(authstate.State{})
		Expect(store.Reports()).To(BeEmpty())
	})

	Describe("Approve", func() {
		BeforeEach(func() {
			store = report.NewStore(auth, svc, logger)
			auth.Set(resolvedState("mda-7"))
		})

		It("approves and refreshes the list", func() {
			before := svc.ListCalls()
			Expect(store.Approve("r1")).To(Succeed())

			Expect(svc.approved).To(ContainElement("r1"))
			Expect(svc.ListCalls()).To(BeNumerically(">", before))
		})

		It("records the failure as state and returns it", func() {
			svc.approveErr = errors.New("permission denied for table progress_updates")

			err := store.Approve("r1")
			Expect(err).To(MatchError(svc.approveErr))
			Expect(store.Err()).To(ContainSubstring("permission denied"))
		})
	})

	Describe("Submit", func() {
		BeforeEach(func() {
			store = report.NewStore(auth, svc, logger)
			auth.Set(resolvedState("mda-7"))
		})

		It("submits and refreshes the list", func() {
			u, err := store.Submit(report.CreateReportDTO{ProjectID: "proj-works", ReportDate: time.Now()})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal("new-report"))
			Expect(store.Reports()).To(HaveLen(2))
		})

		It("returns submission failures without refreshing", func() {
			svc.submitErr = errors.New("validation failed")
			before := svc.ListCalls()

			_, err := store.Submit(report.CreateReportDTO{})
			Expect(err).To(HaveOccurred())
			Expect(svc.ListCalls()).To(Equal(before))
		})
	})
})
