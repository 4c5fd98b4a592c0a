package notification

import (
	"context"
)

// ReportExistsFunc answers whether userID has a report for date (YYYY-MM-DD).
// Tenant scoping is the caller's job and lives in the closure.
type ReportExistsFunc func(ctx context.Context, userID string, date string) (bool, error)

// Service defines the notification service interface
type Service interface {
	// Missed computes the current notifications for a user without persisting them.
	Missed(ctx context.Context, companyID, userID string) ([]NotificationResponse, error)
	// Sync computes notifications and stores the ones not yet persisted.
	Sync(ctx context.Context, companyID, userID string) (*SyncResponse, error)
	GetNotifications(ctx context.Context, userID string, page, pageSize int, unseenOnly bool) (*NotificationListResponse, error)
	MarkSeen(ctx context.Context, userID, notificationID string) error
	MarkAllSeen(ctx context.Context, userID string) (*MarkAllSeenResponse, error)
	Cleanup(ctx context.Context, filter Filter, dryRun bool) (*CleanupResult, error)
	PublishReportSubmitted(userID string, date string)
}
