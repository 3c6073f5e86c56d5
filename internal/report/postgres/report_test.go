package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ppimu/project-monitoring/internal"
	"github.com/ppimu/project-monitoring/internal/report"
)

func TestReportRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ReportRepository Suite")
}

type SQLiteProject struct {
	ID    string `gorm:"primaryKey;column:project_id"`
	MDAID string `gorm:"column:mda_id;not null"`
	Title string `gorm:"not null"`
}

func (SQLiteProject) TableName() string {
	return "projects"
}

type SQLiteProgressUpdate struct {
	ID                  string    `gorm:"primaryKey"`
	ProjectID           string    `gorm:"column:project_id;not null"`
	ReportDate          time.Time `gorm:"column:report_date"`
	PhysicalProgressPct int       `gorm:"column:physical_progress_pct"`
	Stage               string    `gorm:"column:stage"`
	MilestoneStatus     string    `gorm:"column:milestone_status"`
	KeyUpdate           string    `gorm:"column:key_update"`
	IssueFlag           *string   `gorm:"column:issue_flag"`
	EvidenceLink        *string   `gorm:"column:evidence_link"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (SQLiteProgressUpdate) TableName() string {
	return "progress_updates"
}

var _ = Describe("ReportRepository", func() {
	var (
		db   *gorm.DB
		repo report.RepositoryAPI
	)

	newUpdate := func(id, projectID string, reportDate time.Time) *report.ProgressUpdate {
		return &report.ProgressUpdate{
			ID:                  id,
			ProjectID:           projectID,
			ReportDate:          reportDate,
			PhysicalProgressPct: 40,
			Stage:               "Substructure",
			MilestoneStatus:     "Submitted",
			KeyUpdate:           "Piling completed on the east approach",
			CreatedAt:           time.Now(),
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteProject{}, &SQLiteProgressUpdate{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteProject{ID: "p-works", MDAID: "mda-7", Title: "Airport Road"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteProject{ID: "p-health", MDAID: "mda-9", Title: "PHC Rehabilitation"}).Error).To(Succeed())

		repo = NewReportRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("GetByMDA", func() {
		BeforeEach(func() {
			base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
			Expect(repo.Create(newUpdate("r-early", "p-works", base.AddDate(0, 0, -14)))).To(Succeed())
			Expect(repo.Create(newUpdate("r-late", "p-works", base))).To(Succeed())
			Expect(repo.Create(newUpdate("r-health", "p-health", base))).To(Succeed())
		})

		It("scopes through the parent project's MDA", func() {
			updates, err := repo.GetByMDA("mda-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(updates).To(HaveLen(2))
			for _, u := range updates {
				Expect(u.ProjectID).To(Equal("p-works"))
			}
		})

		It("orders by report date, most recent first", func() {
			updates, err := repo.GetByMDA("mda-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(updates[0].ID).To(Equal("r-late"))
			Expect(updates[1].ID).To(Equal("r-early"))
		})

		It("carries the parent project's title", func() {
			updates, err := repo.GetByMDA("mda-7")
			Expect(err).NotTo(HaveOccurred())
			Expect(updates[0].ProjectTitle).To(Equal("Airport Road"))
		})

		It("returns every update through GetAll", func() {
			updates, err := repo.GetAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(updates).To(HaveLen(3))
			Expect(updates[0].ReportDate.After(updates[2].ReportDate) ||
				updates[0].ReportDate.Equal(updates[2].ReportDate)).To(BeTrue())
		})
	})

	Describe("GetByID", func() {
		It("round-trips an update", func() {
			flag := "Right of way dispute"
			created := newUpdate("r1", "p-works", time.Now())
			created.IssueFlag = &flag

			Expect(repo.Create(created)).To(Succeed())

			retrieved, err := repo.GetByID("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.ProjectID).To(Equal("p-works"))
			Expect(retrieved.PhysicalProgressPct).To(Equal(40))
			Expect(*retrieved.IssueFlag).To(Equal("Right of way dispute"))
		})

		It("returns ErrReportNotFound for an unknown id", func() {
			retrieved, err := repo.GetByID("no-such-report")
			Expect(err).To(Equal(internal.ErrReportNotFound))
			Expect(retrieved).To(BeNil())
		})
	})

	Describe("SetMilestoneStatus", func() {
		BeforeEach(func() {
			Expect(repo.Create(newUpdate("r1", "p-works", time.Now()))).To(Succeed())
		})

		It("overwrites the milestone status", func() {
			Expect(repo.SetMilestoneStatus("r1", report.MilestoneApproved)).To(Succeed())

			retrieved, err := repo.GetByID("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.Approved()).To(BeTrue())
		})

		It("leaves an already approved report approved", func() {
			Expect(repo.SetMilestoneStatus("r1", report.MilestoneApproved)).To(Succeed())
			Expect(repo.SetMilestoneStatus("r1", report.MilestoneApproved)).To(Succeed())

			retrieved, err := repo.GetByID("r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(retrieved.MilestoneStatus).To(Equal(report.MilestoneApproved))
		})
	})
})
