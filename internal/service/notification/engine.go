package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// notificationNamespace seeds the deterministic ids of computed notifications.
var notificationNamespace = uuid.MustParse("6f1d3c1e-6a53-4c8e-9b1f-2f7f6c0d9a41")

// NotificationID returns the stable id of the logical notification (userID, type, date).
func NotificationID(userID string, t notification.NotificationType, date string) string {
	return uuid.NewSHA1(notificationNamespace, []byte(userID+"|"+string(t)+"|"+date)).String()
}

type lookup struct {
	date    string
	checked bool
	missing bool
}

// ComputeNotifications decides which notifications userID should see on today.
//
// On non-working days nothing is returned. Otherwise the day two working days
// back may yield a converted_to_leave notification and the previous working
// day a missed_report one, in that order. A failing lookup is logged and
// suppresses the notification for its date only.
func ComputeNotifications(ctx context.Context, userID string, today time.Time, exists notification.ReportExistsFunc) ([]notification.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", notification.ErrInvalidArgument)
	}
	if exists == nil {
		return nil, fmt.Errorf("%w: nil report lookup", notification.ErrInvalidArgument)
	}

	if !workday.IsWorkingDay(today) {
		return []notification.Notification{}, nil
	}

	twoAgo := lookup{date: workday.FormatDate(workday.TwoWorkingDaysAgo(today))}
	yesterdayDate := workday.PreviousWorkingDay(today)
	yesterday := lookup{date: workday.FormatDate(yesterdayDate)}

	// Each goroutine owns its slot and never returns an error, so a failed
	// lookup cannot cancel the other one.
	g, gctx := errgroup.WithContext(ctx)
	check := func(l *lookup) func() error {
		return func() error {
			found, err := exists(gctx, userID, l.date)
			if err != nil {
				slog.Error("report lookup error",
					"user_id", userID,
					"date", l.date,
					"error", err,
				)
				return nil
			}
			l.checked = true
			l.missing = !found
			return nil
		}
	}

	g.Go(check(&twoAgo))
	if workday.IsWorkingDay(yesterdayDate) {
		g.Go(check(&yesterday))
	}
	_ = g.Wait()

	result := make([]notification.Notification, 0, 2)
	if twoAgo.checked && twoAgo.missing {
		result = append(result, newComputed(userID, notification.TypeConvertedToLeave, twoAgo.date))
	}
	if yesterday.checked && yesterday.missing {
		result = append(result, newComputed(userID, notification.TypeMissedReport, yesterday.date))
	}

	return result, nil
}

func newComputed(userID string, t notification.NotificationType, date string) notification.Notification {
	return notification.Notification{
		ID:      NotificationID(userID, t, date),
		UserID:  userID,
		Type:    t,
		Date:    date,
		Message: t.Message(date),
	}
}
