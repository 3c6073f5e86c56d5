package project_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/project"
)

func TestProject(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Project Module Suite")
}

type mockProjectRepository struct {
	projects  map[string]*project.Project
	finance   map[string][]*project.FinanceRecord
	issues    map[string][]*project.Issue
	createErr error
	listErr   error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{
		projects: make(map[string]*project.Project),
		finance:  make(map[string][]*project.FinanceRecord),
		issues:   make(map[string][]*project.Issue),
	}
}

func (m *mockProjectRepository) GetByMDA(mdaID string) ([]*project.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*project.Project
	for _, p := range m.projects {
		if p.MDAID == mdaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProjectRepository) GetByID(id string) (*project.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, internal.ErrProjectNotFound
	}
	return p, nil
}

func (m *mockProjectRepository) GetAll() ([]*project.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*project.Project
	for _, p := range m.projects {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProjectRepository) Create(p *project.Project) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) Update(p *project.Project) error {
	m.projects[p.ID] = p
	return nil
}

func (m *mockProjectRepository) GetFinanceByProject(projectID string) ([]*project.FinanceRecord, error) {
	return m.finance[projectID], nil
}

func (m *mockProjectRepository) GetIssuesByProject(projectID string) ([]*project.Issue, error) {
	return m.issues[projectID], nil
}

var _ = Describe("Project Service", func() {
	var (
		repo *mockProjectRepository
		svc  *project.Service
	)

	validDTO := func() project.CreateProjectDTO {
		return project.CreateProjectDTO{
			Title:          "Dualisation of Airport Road",
			Sector:         "Infrastructure",
			StartDate:      time.Now().AddDate(0, -3, 0),
			ApprovedBudget: 500_000_000,
		}
	}

	BeforeEach(func() {
		repo = newMockProjectRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = project.NewService(repo, logger)
	})

	Describe("ListForMDA", func() {
		It("returns only the MDA's projects", func() {
			_, err := svc.CreateProject(validDTO(), "mda-7")
			Expect(err).NotTo(HaveOccurred())
			other := validDTO()
			other.Title = "Clinic Rehabilitation"
			_, err = svc.CreateProject(other, "mda-9")
			Expect(err).NotTo(HaveOccurred())

			projects, err := svc.ListForMDA("mda-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(HaveLen(1))
			Expect(projects[0].MDAID).To(Equal("mda-7"))
		})

		It("returns an empty list for a caller without an MDA", func() {
			projects, err := svc.ListForMDA("")
			Expect(err).NotTo(HaveOccurred())
			Expect(projects).To(BeEmpty())
		})
	})

	Describe("CreateProject", func() {
		It("assigns an id and defaults the status", func() {
			p, err := svc.CreateProject(validDTO(), "mda-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.ID).NotTo(BeEmpty())
			Expect(p.Status).To(Equal("Planning"))
		})

		It("rejects a caller without an MDA assignment", func() {
			_, err := svc.CreateProject(validDTO(), "")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeNoMDAAssigned))
		})

		It("rejects an end date before the start date", func() {
			dto := validDTO()
			end := dto.StartDate.AddDate(0, -1, 0)
			dto.EndDate = end
			_, err := svc.CreateProject(dto, "mda-7")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateProject", func() {
		var created *project.Project

		BeforeEach(func() {
			var err error
			created, err = svc.CreateProject(validDTO(), "mda-7")
			Expect(err).NotTo(HaveOccurred())
		})

		It("applies only the provided fields", func() {
			status := "Execution"
			updated, err := svc.UpdateProject(created.ID, project.UpdateProjectDTO{Status: &status}, "mda-7", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal("Execution"))
			Expect(updated.Title).To(Equal(created.Title))
		})

		It("rejects an update from another MDA", func() {
			status := "Paused"
			_, err := svc.UpdateProject(created.ID, project.UpdateProjectDTO{Status: &status}, "mda-9", false)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})

		It("lets an unscoped caller update any project", func() {
			status := "Paused"
			updated, err := svc.UpdateProject(created.ID, project.UpdateProjectDTO{Status: &status}, "", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal("Paused"))
		})
	})

	Describe("OwningMDA", func() {
		It("resolves the project's MDA", func() {
			p, err := svc.CreateProject(validDTO(), "mda-7")
			Expect(err).NotTo(HaveOccurred())

			owner, err := svc.OwningMDA(p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(owner).To(Equal("mda-7"))
		})

		It("fails for an unknown project", func() {
			_, err := svc.OwningMDA("no-such-project")
			Expect(err).To(MatchError(internal.ErrProjectNotFound))
		})
	})

	Describe("child records", func() {
		var created *project.Project

		BeforeEach(func() {
			var err error
			created, err = svc.CreateProject(validDTO(), "mda-7")
			Expect(err).NotTo(HaveOccurred())
			repo.finance[created.ID] = []*project.FinanceRecord{
				{ID: "f1", ProjectID: created.ID, BudgetYear: 2026},
			}
			repo.issues[created.ID] = []*project.Issue{
				{ID: "i1", ProjectID: created.ID, IssueType: "Right of way"},
			}
		})

		It("returns finance rows after the scope check", func() {
			records, err := svc.FinanceForProject(created.ID, "mda-7", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})

		It("hides child records from other MDAs", func() {
			_, err := svc.FinanceForProject(created.ID, "mda-9", false)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))

			_, err = svc.IssuesForProject(created.ID, "mda-9", false)
			Expect(err).To(MatchError(internal.ErrUnauthorizedAccess))
		})
	})

	It("propagates repository failures on create", func() {
		repo.createErr = errors.New("insert failed")
		_, err := svc.CreateProject(validDTO(), "mda-7")
		Expect(err).To(MatchError(repo.createErr))
	})
})
