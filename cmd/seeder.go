package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ppimu/project-monitoring/internal/auth"
	"github.com/ppimu/project-monitoring/internal/mda"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/project"
	"github.com/ppimu/project-monitoring/internal/report"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample MDAs, users, projects and progress reports for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGormDB(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{"progress_updates", "finance", "issues", "projects", "profiles", "users", "mdas"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		works := seedMDA(db, "Ministry of Works", "MOW")
		health := seedMDA(db, "Ministry of Health", "MOH")
		seedMDA(db, "Ministry of Education", "MOE")

		seedUser(db, "engineer@ppimu.gov.ng", "Ade Balogun", profile.RoleUser, &works)
		seedUser(db, "approver@ppimu.gov.ng", "Ngozi Okeke", profile.RoleApprover, &works)
		seedUser(db, "admin@ppimu.gov.ng", "Ibrahim Musa", profile.RoleSuperUser, nil)

		road := seedProject(db, works, "Dualisation of Airport Road", "Infrastructure", "Execution")
		clinic := seedProject(db, health, "Primary Health Centre Rehabilitation", "Health", "Planning")

		seedReport(db, road, 35, "Execution", "Earthworks completed on the first 4km section")
		seedReport(db, road, 20, "Execution", "Mobilisation to site and setting out done")
		seedReport(db, clinic, 5, "Planning", "Bill of quantities under review")

		seedFinance(db, road, 2026, 250_000_000, 180_000_000)
		seedIssue(db, road, "Right of way", 3, "Works Director", "Compensation dispute at km 2+400")

		fmt.Println("Seeding complete")
	},
}

func seedMDA(db *gorm.DB, name, code string) string {
	var existing mda.MDA
	if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
		return existing.ID
	}

	m := &mda.MDA{
		ID:        uuid.NewString(),
		Name:      name,
		Code:      &code,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(m).Error; err != nil {
		log.Fatalf("failed to seed MDA %s: %v", name, err)
	}
	fmt.Println("Seeded MDA:", name)
	return m.ID
}

func seedUser(db *gorm.DB, email, fullName string, role profile.Role, mdaID *string) string {
	var existing auth.Account
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Println("user already exists:", email)
		return existing.ID
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	account := &auth.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(account).Error; err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}

	prof := &profile.Profile{
		ID:        account.ID,
		MDAID:     mdaID,
		FullName:  fullName,
		Role:      &role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(prof).Error; err != nil {
		log.Fatalf("failed to seed profile for %s: %v", email, err)
	}

	fmt.Println("Seeded user:", email, "role:", role)
	return account.ID
}

func seedProject(db *gorm.DB, mdaID, title, sector, status string) string {
	var existing project.Project
	if err := db.Where("title = ?", title).First(&existing).Error; err == nil {
		return existing.ID
	}

	p := &project.Project{
		ID:             uuid.NewString(),
		MDAID:          mdaID,
		Title:          title,
		Sector:         sector,
		LGA:            "Central",
		LocationText:   "State capital",
		StartDate:      time.Now().AddDate(0, -6, 0),
		EndDate:        time.Now().AddDate(1, 0, 0),
		ApprovedBudget: 500_000_000,
		FundingSource:  "State budget",
		Status:         status,
		CreatedAt:      time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		log.Fatalf("failed to seed project %s: %v", title, err)
	}
	fmt.Println("Seeded project:", title)
	return p.ID
}

func seedReport(db *gorm.DB, projectID string, pct int, stage, keyUpdate string) {
	u := &report.ProgressUpdate{
		ID:                  uuid.NewString(),
		ProjectID:           projectID,
		ReportDate:          time.Now().AddDate(0, 0, -pct),
		PhysicalProgressPct: pct,
		Stage:               stage,
		MilestoneStatus:     "Submitted",
		KeyUpdate:           keyUpdate,
		CreatedAt:           time.Now(),
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("failed to seed report: %v", err)
	}
}

func seedFinance(db *gorm.DB, projectID string, year int, released, paid float64) {
	f := &project.FinanceRecord{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		BudgetYear:     year,
		ReleaseToDate:  released,
		PaymentsToDate: paid,
	}
	if err := db.Create(f).Error; err != nil {
		log.Fatalf("failed to seed finance record: %v", err)
	}
}

func seedIssue(db *gorm.DB, projectID, issueType string, severity int, owner, notes string) {
	i := &project.Issue{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		LogDate:   time.Now().AddDate(0, 0, -14),
		IssueType: issueType,
		Severity:  severity,
		Owner:     owner,
		DueDate:   time.Now().AddDate(0, 1, 0),
		Status:    "Open",
		Notes:     notes,
	}
	if err := db.Create(i).Error; err != nil {
		log.Fatalf("failed to seed issue: %v", err)
	}
}
