package auth

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/timesheet-management/internal/auth"
	"github.com/frahmantamala/timesheet-management/internal/employee"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetPasswordForUsername(email string) (string, string, error) {
	var passwordHash string
	var userID string
	query := `SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("user not found")
		}
		return "", "", err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserWithPermissions(userID int64) (*auth.User, error) {
	var user auth.User

	query := `SELECT id, email FROM users WHERE id = ? AND is_active = true`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.Email); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	// Employee link is optional: accounts without a profile keep zero.
	empQuery := `SELECT id FROM employees WHERE user_id = ?`
	empRow := r.db.Raw(empQuery, userID).Row()
	var employeeID int64
	if err := empRow.Scan(&employeeID); err == nil {
		user.EmployeeID = employeeID
	}

	permQuery := `SELECT p.name
	             FROM permissions p
	             JOIN user_permissions up ON p.id = up.permission_id
	             WHERE up.user_id = ?`

	rows, err := r.db.Raw(permQuery, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []string
	for rows.Next() {
		var permName string
		if err := rows.Scan(&permName); err != nil {
			return nil, err
		}
		permissions = append(permissions, permName)
	}

	user.Permissions = permissions
	return &user, nil
}

func (r *Repository) GetUserIDByEmail(email string) (int64, error) {
	var userID int64
	query := `SELECT id FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return userID, nil
}

// CreateUserWithEmployee inserts the user row and its employee profile in
// one transaction. A pre-created employee with the same email and no user
// link is claimed instead of duplicated.
func (r *Repository) CreateUserWithEmployee(email, passwordHash, name, department string) (int64, int64, error) {
	var userID, employeeID int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		insert := `INSERT INTO users (email, password_hash, name, department, is_active, created_at, updated_at)
		          VALUES (?, ?, ?, ?, true, ?, ?)`
		if err := tx.Exec(insert, email, passwordHash, name, department, now, now).Error; err != nil {
			return err
		}

		row := tx.Raw(`SELECT id FROM users WHERE email = ?`, email).Row()
		if err := row.Scan(&userID); err != nil {
			return err
		}

		empRow := tx.Raw(`SELECT id FROM employees WHERE email = ? AND user_id IS NULL`, email).Row()
		if err := empRow.Scan(&employeeID); err == nil {
			return tx.Exec(`UPDATE employees SET user_id = ?, updated_at = ? WHERE id = ?`, userID, now, employeeID).Error
		}

		badge, err := nextFreeBadge(tx)
		if err != nil {
			return err
		}

		firstName, lastName := splitName(name)
		empInsert := `INSERT INTO employees (employee_id, user_id, first_name, last_name, email, department, hire_date, is_active, created_at, updated_at)
		             VALUES (?, ?, ?, ?, ?, ?, ?, true, ?, ?)`
		if err := tx.Exec(empInsert, badge, userID, firstName, lastName, email, department, now, now, now).Error; err != nil {
			return err
		}

		empIDRow := tx.Raw(`SELECT id FROM employees WHERE employee_id = ?`, badge).Row()
		return empIDRow.Scan(&employeeID)
	})
	if err != nil {
		return 0, 0, err
	}
	return userID, employeeID, nil
}

func nextFreeBadge(tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.Raw(`SELECT COUNT(*) FROM employees`).Row().Scan(&count); err != nil {
		return "", err
	}
	// Skip over badges that were assigned explicitly.
	for seq := count + 1; ; seq++ {
		badge := employee.FormatBadgeNumber(seq)
		var taken int64
		if err := tx.Raw(`SELECT COUNT(*) FROM employees WHERE employee_id = ?`, badge).Row().Scan(&taken); err != nil {
			return "", err
		}
		if taken == 0 {
			return badge, nil
		}
	}
}

func splitName(full string) (string, string) {
	first, last, found := strings.Cut(strings.TrimSpace(full), " ")
	if !found {
		return first, ""
	}
	return first, strings.TrimSpace(last)
}
