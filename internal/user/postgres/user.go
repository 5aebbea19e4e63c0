package postgres

import (
	"database/sql"

	"github.com/frahmantamala/timesheet-management/internal/user"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var u user.User
	query := `SELECT id, email, name, department, is_active, created_at, updated_at
	          FROM users WHERE id = $1`
	row := r.db.QueryRow(query, userID)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Department, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetPermissions(userID int64) ([]string, error) {
	query := `SELECT p.name
	          FROM permissions p
	          JOIN user_permissions up ON p.id = up.permission_id
	          WHERE up.user_id = $1`
	var permissions []string
	if err := r.db.Select(&permissions, query, userID); err != nil {
		return nil, err
	}
	return permissions, nil
}
