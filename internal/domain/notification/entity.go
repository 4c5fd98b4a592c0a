package notification

import (
	"fmt"
	"time"
)

// NotificationType is the closed set of notifications the missed-report
// engine can raise.
type NotificationType string

const (
	TypeMissedReport     NotificationType = "missed_report"
	TypeConvertedToLeave NotificationType = "converted_to_leave"
)

// AllNotificationTypes returns all available notification types
func AllNotificationTypes() []NotificationType {
	return []NotificationType{
		TypeConvertedToLeave,
		TypeMissedReport,
	}
}

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case TypeMissedReport, TypeConvertedToLeave:
		return true
	default:
		return false
	}
}

// ParseNotificationType converts a stored string back into a NotificationType.
func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidNotificationType, s)
	}
	return t, nil
}

// Message renders the user-facing text for a notification of type t on date.
func (t NotificationType) Message(date string) string {
	switch t {
	case TypeConvertedToLeave:
		return fmt.Sprintf("Report for %s has been converted to leave. Submit today to avoid more leaves.", date)
	case TypeMissedReport:
		return fmt.Sprintf("Missed report for %s. If not submitted today, it will be marked as leave.", date)
	default:
		return ""
	}
}

// Notification represents a notification entity. At most one logical
// notification exists per (UserID, Type, Date).
type Notification struct {
	ID        string
	CompanyID string
	UserID    string
	Type      NotificationType
	Date      string // YYYY-MM-DD
	Message   string
	IsSeen    bool
	SeenAt    *time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Key identifies the logical notification.
type Key struct {
	UserID string
	Type   NotificationType
	Date   string
}

// Key returns the identity triple of n.
func (n Notification) Key() Key {
	return Key{UserID: n.UserID, Type: n.Type, Date: n.Date}
}

// Timestamp returns CreatedAt, falling back to UpdatedAt and then the zero
// Unix epoch when neither is set.
func (n Notification) Timestamp() time.Time {
	if !n.CreatedAt.IsZero() {
		return n.CreatedAt
	}
	if n.UpdatedAt != nil && !n.UpdatedAt.IsZero() {
		return *n.UpdatedAt
	}
	return time.Unix(0, 0)
}
