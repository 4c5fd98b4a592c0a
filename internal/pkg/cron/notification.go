package cron

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/user"
)

const (
	JobSyncMissedReports    = "sync_missed_report_notifications"
	JobCleanupNotifications = "cleanup_duplicate_notifications"
)

type NotificationJobs struct {
	companyRepo     company.CompanyRepository
	userRepo        user.UserRepository
	notificationSvc notification.Service
}

func NewNotificationJobs(
	companyRepo company.CompanyRepository,
	userRepo user.UserRepository,
	notificationSvc notification.Service,
) *NotificationJobs {
	return &NotificationJobs{
		companyRepo:     companyRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
	}
}

func (j *NotificationJobs) RegisterJobs(scheduler *Scheduler, syncSpec, cleanupSpec string) error {
	if err := scheduler.AddJob(JobSyncMissedReports, syncSpec, j.SyncMissedReports); err != nil {
		return err
	}
	return scheduler.AddJob(JobCleanupNotifications, cleanupSpec, j.CleanupDuplicates)
}

// SyncMissedReports stores the current notifications of every active employee.
// A failing employee is logged and does not stop the others.
func (j *NotificationJobs) SyncMissedReports(ctx context.Context) error {
	slog.Info("Cron: Starting missed report notification sync")

	companyIDs, err := j.companyRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	var users, inserted, failed int
	for _, companyID := range companyIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		employees, err := j.userRepo.ListActiveEmployees(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Failed to list employees", "company_id", companyID, "error", err)
			failed++
			continue
		}

		for _, emp := range employees {
			users++
			result, err := j.notificationSvc.Sync(ctx, companyID, emp.ID)
			if err != nil {
				slog.Error("Cron: Failed to sync notifications",
					"company_id", companyID,
					"user_id", emp.ID,
					"error", err)
				failed++
				continue
			}
			inserted += result.Inserted
		}
	}

	slog.Info("Cron: Missed report notification sync finished",
		"companies", len(companyIDs),
		"users", users,
		"inserted", inserted,
		"failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d notification syncs failed", failed)
	}
	return nil
}

// CleanupDuplicates removes duplicate notifications one company at a time.
// A failing company is logged and does not stop the others.
func (j *NotificationJobs) CleanupDuplicates(ctx context.Context) error {
	slog.Info("Cron: Starting duplicate notification cleanup")

	companyIDs, err := j.companyRepo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	var scanned, duplicates int
	var deleted int64
	var failed int
	for _, companyID := range companyIDs {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := j.notificationSvc.Cleanup(ctx, notification.Filter{CompanyID: companyID}, false)
		if err != nil {
			slog.Error("Cron: Failed to clean up notifications", "company_id", companyID, "error", err)
			failed++
			continue
		}
		scanned += result.Scanned
		duplicates += result.Duplicates
		deleted += result.Deleted
	}

	slog.Info("Cron: Notification cleanup finished",
		"companies", len(companyIDs),
		"scanned", scanned,
		"duplicates", duplicates,
		"deleted", deleted,
		"failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d company cleanups failed", failed)
	}
	return nil
}
