package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/report"
	reportPostgres "github.com/ppimu/project-monitoring/internal/report/postgres"
	"github.com/ppimu/project-monitoring/internal/session"
)

type sqliteProject struct {
	ID    string `gorm:"primaryKey;column:project_id"`
	MDAID string `gorm:"column:mda_id;not null"`
	Title string `gorm:"not null"`
}

func (sqliteProject) TableName() string {
	return "projects"
}

type sqliteProgressUpdate struct {
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

func (sqliteProgressUpdate) TableName() string {
	return "progress_updates"
}

func stateFor(role profile.Role, mdaID string) authstate.State {
	prof := &profile.Profile{ID: "user-1", Role: &role}
	if mdaID != "" {
		prof.MDAID = &mdaID
	}
	return authstate.State{
		Session: &session.Session{UserID: "user-1"},
		Profile: prof,
	}
}

func withState(req *http.Request, state authstate.State) *http.Request {
	return req.WithContext(authstate.ContextWithState(req.Context(), state))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Report Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    report.RepositoryAPI
		svc     *report.Service
		handler *report.Handler
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteProject{}, &sqliteProgressUpdate{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&sqliteProject{ID: "p-works", MDAID: "mda-7", Title: "Airport Road"}).Error).To(Succeed())
		Expect(db.Create(&sqliteProject{ID: "p-health", MDAID: "mda-9", Title: "PHC Rehabilitation"}).Error).To(Succeed())

		repo = reportPostgres.NewReportRepository(db)
		projects := &mockProjectScope{owners: map[string]string{
			"p-works":  "mda-7",
			"p-health": "mda-9",
		}}
		slogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = report.NewService(repo, projects, slogger)
		handler = report.NewHandler(svc)

		seed := func(id, projectID string, reportDate time.Time) {
			Expect(repo.Create(&report.ProgressUpdate{
				ID:                  id,
				ProjectID:           projectID,
				ReportDate:          reportDate,
				PhysicalProgressPct: 30,
				Stage:               "Execution",
				MilestoneStatus:     "Submitted",
				KeyUpdate:           "Earthworks ongoing",
				CreatedAt:           time.Now(),
			})).To(Succeed())
		}
		seed("r-works", "p-works", time.Now().AddDate(0, 0, -2))
		seed("r-health", "p-health", time.Now().AddDate(0, 0, -1))
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("ListReports", func() {
		It("scopes the list to the caller's MDA", func() {
			req := withState(httptest.NewRequest(http.MethodGet, "/reports", nil), stateFor(profile.RoleUser, "mda-7"))
			w := httptest.NewRecorder()

			handler.ListReports(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var updates []*report.ProgressUpdate
			Expect(json.NewDecoder(w.Body).Decode(&updates)).To(Succeed())
			Expect(updates).To(HaveLen(1))
			Expect(updates[0].ID).To(Equal("r-works"))
			Expect(updates[0].ProjectTitle).To(Equal("Airport Road"))
		})

		It("returns everything for a super user", func() {
			req := withState(httptest.NewRequest(http.MethodGet, "/reports", nil), stateFor(profile.RoleSuperUser, ""))
			w := httptest.NewRecorder()

			handler.ListReports(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var updates []*report.ProgressUpdate
			Expect(json.NewDecoder(w.Body).Decode(&updates)).To(Succeed())
			Expect(updates).To(HaveLen(2))
		})
	})

	Describe("SubmitReport", func() {
		submit := func(state authstate.State, dto report.CreateReportDTO) *httptest.ResponseRecorder {
			body, err := json.Marshal(dto)
			Expect(err).NotTo(HaveOccurred())
			req := withState(httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body)), state)
			w := httptest.NewRecorder()
			handler.SubmitReport(w, req)
			return w
		}

		It("creates a report for the caller's own project", func() {
			w := submit(stateFor(profile.RoleUser, "mda-7"), report.CreateReportDTO{
				ProjectID:           "p-works",
				ReportDate:          time.Now().AddDate(0, 0, -1),
				PhysicalProgressPct: 55,
				Stage:               "Superstructure",
				KeyUpdate:           "Deck casting completed",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))

			var created report.ProgressUpdate
			Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
			Expect(created.ID).NotTo(BeEmpty())

			persisted, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(persisted.PhysicalProgressPct).To(Equal(55))
		})

		It("rejects a submission against another MDA's project", func() {
			w := submit(stateFor(profile.RoleUser, "mda-7"), report.CreateReportDTO{
				ProjectID:           "p-health",
				ReportDate:          time.Now().AddDate(0, 0, -1),
				PhysicalProgressPct: 10,
				Stage:               "Execution",
				KeyUpdate:           "Should not land",
			})

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("rejects a malformed body", func() {
			req := withState(httptest.NewRequest(http.MethodPost, "/reports", bytes.NewBufferString("{not json")), stateFor(profile.RoleUser, "mda-7"))
			w := httptest.NewRecorder()

			handler.SubmitReport(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ApproveReport", func() {
		It("approves and returns the report", func() {
			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/reports/r-works/approve", nil), "id", "r-works")
			w := httptest.NewRecorder()

			handler.ApproveReport(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var approved report.ProgressUpdate
			Expect(json.NewDecoder(w.Body).Decode(&approved)).To(Succeed())
			Expect(approved.Approved()).To(BeTrue())
		})

		It("returns 404 for an unknown report", func() {
			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/reports/ghost/approve", nil), "id", "ghost")
			w := httptest.NewRecorder()

			handler.ApproveReport(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
