package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearAllData(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		rakaID := seedUser(db, "raka@mail.com", "Raka Pratama", string(hash), "Engineering")
		sariID := seedUser(db, "sari@mail.com", "Sari Wulandari", string(hash), "Engineering")
		adminID := seedUser(db, "dina@mail.com", "Dina Admin", string(hash), "Operations")

		permissions := []struct {
			Name string
			Desc string
		}{
			{"admin", "full administrator"},
			{"manage_timesheets", "Can view and manage all timesheets"},
			{"manage_employees", "Can manage employee records"},
			{"manage_projects", "Can manage project records"},
			{"submit_timesheets", "Can submit own timesheets"},
		}

		for _, p := range permissions {
			var pid int64
			row := db.Raw("SELECT id FROM permissions WHERE name = ?", p.Name).Row()
			if err := row.Scan(&pid); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, description, created_at) VALUES (?, ?, now())", p.Name, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Name, err)
				}
			}
		}

		for _, p := range permissions {
			grantPermission(db, adminID, p.Name)
		}
		fmt.Println("Granted all permissions to admin user: dina@mail.com")

		grantPermission(db, rakaID, "submit_timesheets")
		grantPermission(db, sariID, "submit_timesheets")
		fmt.Println("Granted submit_timesheets to raka@mail.com and sari@mail.com")

		rakaEmpID := seedEmployee(db, "EMP001", &rakaID, "Raka", "Pratama", "raka@mail.com", "Engineering", "Software Engineer")
		sariEmpID := seedEmployee(db, "EMP002", &sariID, "Sari", "Wulandari", "sari@mail.com", "Engineering", "QA Engineer")
		bimaEmpID := seedEmployee(db, "EMP003", nil, "Bima", "Santoso", "bima@mail.com", "Design", "Product Designer")
		setManager(db, sariEmpID, rakaEmpID)
		setManager(db, bimaEmpID, rakaEmpID)

		toolsProjectID := seedProject(db, "Internal Tools", "internal engineering tooling", `["development","code_review","testing"]`)
		seedProject(db, "Client Onboarding", "client integration and rollout", `["meeting","documentation","support"]`)
		seedProject(db, "General", "unplanned and administrative work", `[]`)

		seedDraftEntries(db, rakaEmpID, toolsProjectID)

		fmt.Println("Sample data seeded successfully")
	},
}

func clearAllData(db *gorm.DB) {
	// Delete in dependency order so foreign keys never block.
	tables := []string{"timesheets", "user_permissions", "employees", "projects", "permissions", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedUser(db *gorm.DB, email, name, passwordHash, department string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Printf("user %s already exists\n", email)
		return id
	}

	if err := db.Exec("INSERT INTO users (email, name, password_hash, department, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
		email, name, passwordHash, department).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}

func grantPermission(db *gorm.DB, userID int64, permName string) {
	var pid int64
	if err := db.Raw("SELECT id FROM permissions WHERE name = ?", permName).Row().Scan(&pid); err != nil {
		log.Fatalf("permission not found %s: %v", permName, err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", userID, pid).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by, created_at) VALUES (?, ?, NULL, now())", userID, pid).Error; err != nil {
		log.Fatalf("failed to grant permission %s to user %d: %v", permName, userID, err)
	}
}

func seedEmployee(db *gorm.DB, badge string, userID *int64, firstName, lastName, email, department, role string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM employees WHERE employee_id = ?", badge).Row().Scan(&id); err == nil {
		fmt.Printf("employee %s already exists\n", badge)
		return id
	}

	if err := db.Exec("INSERT INTO employees (employee_id, user_id, first_name, last_name, email, department, role, hire_date, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, true, now(), now())",
		badge, userID, firstName, lastName, email, department, role, time.Now().AddDate(-1, 0, 0).Format("2006-01-02")).Error; err != nil {
		log.Fatalf("failed to insert employee %s: %v", badge, err)
	}

	if err := db.Raw("SELECT id FROM employees WHERE employee_id = ?", badge).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup employee id for %s: %v", badge, err)
	}
	fmt.Println("Seeded employee:", badge)
	return id
}

func setManager(db *gorm.DB, employeeID, managerID int64) {
	if err := db.Exec("UPDATE employees SET manager_id = ? WHERE id = ? AND manager_id IS NULL", managerID, employeeID).Error; err != nil {
		log.Fatalf("failed to set manager for employee %d: %v", employeeID, err)
	}
}

func seedProject(db *gorm.DB, name, description, activityTypes string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM projects WHERE name = ?", name).Row().Scan(&id); err == nil {
		fmt.Printf("project %s already exists\n", name)
		return id
	}

	if err := db.Exec("INSERT INTO projects (name, description, status, activity_types, billable, created_at, updated_at) VALUES (?, ?, 'active', ?, true, now(), now())",
		name, description, activityTypes).Error; err != nil {
		log.Fatalf("failed to insert project %s: %v", name, err)
	}

	if err := db.Raw("SELECT id FROM projects WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup project id for %s: %v", name, err)
	}
	fmt.Println("Seeded project:", name)
	return id
}

// seedDraftEntries adds a few draft rows for the current week so the weekly
// submission flow can be exercised right after seeding.
func seedDraftEntries(db *gorm.DB, employeeID, projectID int64) {
	monday := time.Now()
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}

	entries := []struct {
		DayOffset int
		Hours     float64
		Activity  string
		Notes     string
	}{
		{0, 8, "development", "feature work"},
		{1, 6, "development", "feature work continued"},
		{1, 2, "code_review", "review open changes"},
		{2, 7.5, "testing", "regression pass"},
	}

	for _, e := range entries {
		date := monday.AddDate(0, 0, e.DayOffset).Format("2006-01-02")

		var exists int
		if err := db.Raw("SELECT 1 FROM timesheets WHERE employee_id = ? AND project_id = ? AND date = ? AND activity_type = ? AND status = 'draft'",
			employeeID, projectID, date, e.Activity).Row().Scan(&exists); err == nil {
			continue
		}

		if err := db.Exec("INSERT INTO timesheets (employee_id, project_id, date, hours_worked, activity_type, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, 'draft', now(), now())",
			employeeID, projectID, date, e.Hours, e.Activity, e.Notes).Error; err != nil {
			log.Fatalf("failed to insert timesheet entry: %v", err)
		}
	}

	fmt.Println("Seeded draft timesheet entries for current week")
}
