package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
	"github.com/jackc/pgx/v5"
)

var notificationColumns = []string{
	"id", "company_id", "user_id", "type", "date", "message", "is_seen", "seen_at", "created_at", "updated_at",
}

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func scanNotification(row pgx.Row) (notification.Notification, error) {
	var n notification.Notification
	var notifType string
	var date time.Time

	err := row.Scan(
		&n.ID,
		&n.CompanyID,
		&n.UserID,
		&notifType,
		&date,
		&n.Message,
		&n.IsSeen,
		&n.SeenAt,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return notification.Notification{}, err
	}

	n.Type = notification.NotificationType(notifType)
	n.Date = workday.FormatDate(date)
	return n, nil
}

func (r *notificationRepository) query(ctx context.Context, query string, args ...interface{}) ([]notification.Notification, error) {
	rows, err := GetQuerier(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// FindAll returns the notifications matching filter, oldest first
func (r *notificationRepository) FindAll(ctx context.Context, filter notification.Filter) ([]notification.Notification, error) {
	where := sq.Eq{}
	if filter.CompanyID != "" {
		where["company_id"] = filter.CompanyID
	}
	if filter.UserID != "" {
		where["user_id"] = filter.UserID
	}
	if filter.Type != "" {
		where["type"] = string(filter.Type)
	}
	if filter.Date != "" {
		where["date"] = filter.Date
	}

	builder := psql().
		Select(notificationColumns...).
		From("notifications").
		OrderBy("user_id", "type", "date", "created_at", "id")
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build notification query: %w", err)
	}
	return r.query(ctx, query, args...)
}

// DeleteMany deletes the notifications with the given ids
func (r *notificationRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := psql().
		Delete("notifications").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := GetQuerier(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Upsert inserts notifications whose id is not stored yet. Computed ids are
// derived from (user_id, type, date), so a conflict means the logical
// notification already exists and its seen state is kept.
func (r *notificationRepository) Upsert(ctx context.Context, notifications []notification.Notification) ([]notification.Notification, error) {
	if len(notifications) == 0 {
		return []notification.Notification{}, nil
	}

	builder := psql().
		Insert("notifications").
		Columns("id", "company_id", "user_id", "type", "date", "message", "is_seen", "created_at")
	for _, n := range notifications {
		builder = builder.Values(n.ID, n.CompanyID, n.UserID, string(n.Type), n.Date, n.Message, n.IsSeen, n.CreatedAt)
	}
	builder = builder.Suffix("ON CONFLICT (id) DO NOTHING RETURNING " + strings.Join(notificationColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert notifications: %w", err)
	}
	return inserted, nil
}

// GetByUserID retrieves paginated notifications for a user, newest first
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unseenOnly bool) ([]notification.Notification, int, error) {
	where := sq.Eq{"user_id": userID}
	if unseenOnly {
		where["is_seen"] = false
	}

	countQuery, countArgs, err := psql().Select("COUNT(*)").From("notifications").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := GetQuerier(ctx, r.db).QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query, args, err := psql().
		Select(notificationColumns...).
		From("notifications").
		Where(where).
		OrderBy("date DESC", "created_at DESC", "id").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build notification query: %w", err)
	}

	notifications, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// GetUnseenCount returns the number of unseen notifications of a user
func (r *notificationRepository) GetUnseenCount(ctx context.Context, userID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_seen = FALSE`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unseen notifications: %w", err)
	}
	return count, nil
}

// MarkSeen flips is_seen of one notification owned by userID. Marking an
// already seen notification keeps its original seen_at.
func (r *notificationRepository) MarkSeen(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_seen = TRUE,
			seen_at = COALESCE(seen_at, NOW()),
			updated_at = CASE WHEN is_seen THEN updated_at ELSE NOW() END
		WHERE id = $1 AND user_id = $2
	`

	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification as seen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllSeen marks every unseen notification of userID as seen
func (r *notificationRepository) MarkAllSeen(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_seen = TRUE, seen_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND is_seen = FALSE
	`

	tag, err := q.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as seen: %w", err)
	}
	return tag.RowsAffected(), nil
}
