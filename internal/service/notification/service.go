package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
)

// ReportLookup is the part of the report store the notifier reads.
type ReportLookup interface {
	Exists(ctx context.Context, companyID, userID, date string) (bool, error)
}

// Config holds notification service configuration
type Config struct {
	Location *time.Location   // calendar used to decide "today"; default UTC
	Now      func() time.Time // default time.Now
}

type service struct {
	repo    notification.Repository
	reports ReportLookup
	hub     sse.Publisher
	loc     *time.Location
	now     func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.Repository, reports ReportLookup, hub sse.Publisher, cfg Config) notification.Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &service{
		repo:    repo,
		reports: reports,
		hub:     hub,
		loc:     cfg.Location,
		now:     cfg.Now,
	}
}

func (s *service) today() time.Time {
	return workday.Today(s.now(), s.loc)
}

// existsFor scopes report lookups to one company.
func (s *service) existsFor(companyID string) notification.ReportExistsFunc {
	return func(ctx context.Context, userID string, date string) (bool, error) {
		return s.reports.Exists(ctx, companyID, userID, date)
	}
}

func (s *service) compute(ctx context.Context, companyID, userID string) ([]notification.Notification, error) {
	computed, err := ComputeNotifications(ctx, userID, s.today(), s.existsFor(companyID))
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range computed {
		computed[i].CompanyID = companyID
		computed[i].CreatedAt = now
	}
	return computed, nil
}

// Missed computes notifications on demand without touching storage
func (s *service) Missed(ctx context.Context, companyID, userID string) ([]notification.NotificationResponse, error) {
	computed, err := s.compute(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(computed))
	for i, n := range computed {
		responses[i] = notification.ToResponse(n)
	}
	return responses, nil
}

// Sync persists computed notifications keyed by (user, type, date) and pushes
// the newly stored ones to the user's streams
func (s *service) Sync(ctx context.Context, companyID, userID string) (*notification.SyncResponse, error) {
	computed, err := s.compute(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if len(computed) == 0 {
		return &notification.SyncResponse{}, nil
	}

	inserted, err := s.repo.Upsert(ctx, computed)
	if err != nil {
		return nil, fmt.Errorf("failed to store notifications: %w", err)
	}

	for _, n := range inserted {
		s.hub.Publish(n.UserID, sse.Event{
			UserID: n.UserID,
			Event:  notification.EventNotification,
			Data:   notification.ToResponse(n),
		})
	}

	return &notification.SyncResponse{
		Computed: len(computed),
		Inserted: len(inserted),
	}, nil
}

// GetNotifications retrieves paginated notifications for a user
func (s *service) GetNotifications(ctx context.Context, userID string, page, pageSize int, unseenOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unseenOnly)
	if err != nil {
		return nil, err
	}

	unseenCount, err := s.repo.GetUnseenCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.ToResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnseenCount:   unseenCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

// MarkSeen marks one notification of userID as seen; repeating it is a no-op
func (s *service) MarkSeen(ctx context.Context, userID, notificationID string) error {
	return s.repo.MarkSeen(ctx, notificationID, userID)
}

// MarkAllSeen marks every notification of userID as seen
func (s *service) MarkAllSeen(ctx context.Context, userID string) (*notification.MarkAllSeenResponse, error) {
	updated, err := s.repo.MarkAllSeen(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &notification.MarkAllSeenResponse{Updated: updated}, nil
}

// Cleanup runs the duplicate removal pass over the notifications matching filter
func (s *service) Cleanup(ctx context.Context, filter notification.Filter, dryRun bool) (*notification.CleanupResult, error) {
	return CleanupDuplicates(ctx, s.repo, filter, dryRun)
}

// PublishReportSubmitted tells the user's dashboards to refresh notifications
func (s *service) PublishReportSubmitted(userID string, date string) {
	s.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  notification.EventReportSubmitted,
		Data:   map[string]string{"date": date},
	})
	slog.Debug("report submission published", "user_id", userID, "date", date)
}
