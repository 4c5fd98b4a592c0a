package notification

import (
	"time"
)

// ============= Response DTOs =============

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Date      string           `json:"date"`
	Message   string           `json:"message"`
	IsSeen    bool             `json:"is_seen"`
	SeenAt    *time.Time       `json:"seen_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationListResponse represents a paginated list of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnseenCount   int                    `json:"unseen_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

// SyncResponse is returned after computed notifications are persisted
type SyncResponse struct {
	Computed int `json:"computed"`
	Inserted int `json:"inserted"`
}

// MarkAllSeenResponse reports how many notifications changed state
type MarkAllSeenResponse struct {
	Updated int64 `json:"updated"`
}

// CleanupResult summarises a duplicate cleanup pass
type CleanupResult struct {
	Scanned    int      `json:"scanned"`
	Groups     int      `json:"groups"`
	Duplicates int      `json:"duplicates"`
	Deleted    int64    `json:"deleted"`
	DeletedIDs []string `json:"deleted_ids,omitempty"`
	DryRun     bool     `json:"dry_run"`
}

// SSETokenResponse represents the SSE token response
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ============= SSE Event =============

const (
	EventNotification    = "notification"
	EventReportSubmitted = "report_submitted"
)

// SSEEvent represents a Server-Sent Event
type SSEEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ToResponse converts a Notification entity to NotificationResponse
func ToResponse(n Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Date:      n.Date,
		Message:   n.Message,
		IsSeen:    n.IsSeen,
		SeenAt:    n.SeenAt,
		CreatedAt: n.CreatedAt,
	}
}
