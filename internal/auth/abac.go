package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

var ErrForbidden = errors.New("forbidden")

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// ABACPolicy is a small attribute-based access control helper for
// per-resource ownership checks.
type ABACPolicy struct{}

func (p *ABACPolicy) Allow(userAttrs map[string]string, resourceOwnerID string, action string) bool {
	if role, ok := userAttrs["role"]; ok && role == "admin" {
		return true
	}

	if permissions, ok := userAttrs["permissions"]; ok {
		if strings.Contains(permissions, "admin") {
			return true
		}
		switch action {
		case "read":
			if strings.Contains(permissions, "manage_timesheets") {
				return true
			}
		case "manage":
			if strings.Contains(permissions, "manage_timesheets") {
				return true
			}
		}
	}

	// Owner access for basic operations
	if eid, ok := userAttrs["employee_id"]; ok && eid != "" && eid == resourceOwnerID {
		return action == "read" || action == "write" || action == "update" || action == "delete"
	}

	return false
}

// CanViewTimesheet checks whether the user can view a timesheet owned by
// the given employee.
func (p *ABACPolicy) CanViewTimesheet(u *User, ownerEmployeeID int64) error {
	attrs := extractUserAttributes(u)
	if attrs["user_id"] == "" {
		return ErrForbidden
	}

	if p.Allow(attrs, strconv.FormatInt(ownerEmployeeID, 10), "read") {
		return nil
	}
	return ErrForbidden
}

// CanManageTimesheet checks whether the user can act on timesheets beyond
// their own.
func (p *ABACPolicy) CanManageTimesheet(u *User, ownerEmployeeID int64) error {
	attrs := extractUserAttributes(u)
	if attrs["user_id"] == "" {
		return ErrForbidden
	}

	if p.Allow(attrs, strconv.FormatInt(ownerEmployeeID, 10), "manage") {
		return nil
	}
	return ErrForbidden
}

func extractUserAttributes(u *User) map[string]string {
	if u == nil {
		return map[string]string{}
	}

	attrs := map[string]string{
		"permissions": strings.Join(u.Permissions, ","),
	}
	if u.ID != 0 {
		attrs["user_id"] = strconv.FormatInt(u.ID, 10)
	}
	if u.EmployeeID != 0 {
		attrs["employee_id"] = strconv.FormatInt(u.EmployeeID, 10)
	}
	return attrs
}

// RequireABAC is a generic middleware wrapper that runs an ABAC check function.
func RequireABAC(abac *ABACPolicy, check func(a *ABACPolicy, u *User, r *http.Request) error) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if err := check(abac, u, r); err != nil {
				if errors.Is(err, ErrForbidden) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCanViewTimesheet builds a middleware that checks if the
// authenticated user can view the timesheet named by the id URL parameter.
func RequireCanViewTimesheet(db *sqlx.DB, abac *ABACPolicy) func(next http.Handler) http.Handler {
	return RequireABAC(abac, func(a *ABACPolicy, u *User, r *http.Request) error {
		ownerID, err := timesheetOwner(r, db)
		if err != nil {
			return err
		}
		return a.CanViewTimesheet(u, ownerID)
	})
}

// RequireCanManageTimesheet builds a middleware that checks if the user can
// act on someone else's timesheet.
func RequireCanManageTimesheet(db *sqlx.DB, abac *ABACPolicy) func(next http.Handler) http.Handler {
	return RequireABAC(abac, func(a *ABACPolicy, u *User, r *http.Request) error {
		ownerID, err := timesheetOwner(r, db)
		if err != nil {
			return err
		}
		return a.CanManageTimesheet(u, ownerID)
	})
}

func timesheetOwner(r *http.Request, db *sqlx.DB) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, ErrForbidden
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}

	var ownerID int64
	err = db.GetContext(r.Context(), &ownerID, "SELECT employee_id FROM timesheets WHERE id=$1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrForbidden
		}
		return 0, err
	}
	return ownerID, nil
}
