package notification

import (
	"context"
)

// Filter narrows FindAll. Empty fields match everything.
type Filter struct {
	CompanyID string
	UserID    string
	Type      NotificationType
	Date      string
}

// Store is the minimal contract the duplicate cleanup pass needs.
type Store interface {
	FindAll(ctx context.Context, filter Filter) ([]Notification, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// Repository defines the notification repository interface
type Repository interface {
	Store

	// Upsert inserts notifications keyed by (user_id, type, date). Existing rows
	// are left untouched; the returned slice holds only the newly inserted ones.
	Upsert(ctx context.Context, notifications []Notification) ([]Notification, error)
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unseenOnly bool) ([]Notification, int, error)
	GetUnseenCount(ctx context.Context, userID string) (int, error)
	MarkSeen(ctx context.Context, id string, userID string) error
	MarkAllSeen(ctx context.Context, userID string) (int64, error)
}
