package auth

import "context"

type PermissionChecker interface {
	CanSubmitTimesheets(userPermissions []string) bool
	CanManageTimesheets(userPermissions []string) bool
	CanManageEmployees(userPermissions []string) bool
	CanManageProjects(userPermissions []string) bool
	HasAnyPermission(userPermissions []string, requiredPermissions []string) bool
	IsManager(userPermissions []string) bool
	IsAdmin(userPermissions []string) bool
}

type DefaultPermissionChecker struct{}

func NewPermissionChecker() PermissionChecker {
	return &DefaultPermissionChecker{}
}

func (c *DefaultPermissionChecker) HasPermission(ctx context.Context, userPermissions []string, permission string) (bool, error) {
	return c.HasAnyPermission(userPermissions, []string{permission}), nil
}

func (c *DefaultPermissionChecker) CanManageTimesheetsCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageTimesheets(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageEmployeesCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageEmployees(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanManageProjectsCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.CanManageProjects(userPermissions), nil
}

func (c *DefaultPermissionChecker) IsManagerCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsManager(userPermissions), nil
}

func (c *DefaultPermissionChecker) IsAdminCtx(ctx context.Context, userPermissions []string) (bool, error) {
	return c.IsAdmin(userPermissions), nil
}

func (c *DefaultPermissionChecker) CanSubmitTimesheets(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"submit_timesheets", "admin"})
}

func (c *DefaultPermissionChecker) CanManageTimesheets(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_timesheets", "admin"})
}

func (c *DefaultPermissionChecker) CanManageEmployees(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_employees", "admin"})
}

func (c *DefaultPermissionChecker) CanManageProjects(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"manage_projects", "admin"})
}

func (c *DefaultPermissionChecker) HasAnyPermission(userPermissions []string, requiredPermissions []string) bool {
	for _, userPerm := range userPermissions {
		for _, requiredPerm := range requiredPermissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (c *DefaultPermissionChecker) IsManager(userPermissions []string) bool {
	managerPerms := []string{"manager", "admin", "manage_timesheets", "manage_employees"}
	return c.HasAnyPermission(userPermissions, managerPerms)
}

func (c *DefaultPermissionChecker) IsAdmin(userPermissions []string) bool {
	return c.HasAnyPermission(userPermissions, []string{"admin"})
}
