package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Daily Reports
	PermissionReportSubmit  Permission = "report.submit"
	PermissionReportViewOwn Permission = "report.view_own"
	PermissionReportViewAll Permission = "report.view_all"

	// Notifications
	PermissionNotificationView    Permission = "notification.view"
	PermissionNotificationCleanup Permission = "notification.cleanup"

	// Dashboard
	PermissionDashboardView Permission = "dashboard.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionReportViewOwn,
		PermissionReportViewAll,
		PermissionNotificationView,
		PermissionNotificationCleanup,
		PermissionDashboardView,
		PermissionUserManage,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionReportSubmit,
		PermissionReportViewOwn,
		PermissionNotificationView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
