package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reportSet answers lookups from a fixed set of submitted dates.
type reportSet struct {
	mu        sync.Mutex
	submitted map[string]bool
	failing   map[string]error
	calls     []string
}

func newReportSet(dates ...string) *reportSet {
	r := &reportSet{submitted: map[string]bool{}, failing: map[string]error{}}
	for _, d := range dates {
		r.submitted[d] = true
	}
	return r
}

func (r *reportSet) exists(_ context.Context, userID string, date string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, userID+"@"+date)
	if err, ok := r.failing[date]; ok {
		return false, err
	}
	return r.submitted[date], nil
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := workday.ParseDate(s, time.UTC)
	require.NoError(t, err)
	return d
}

func types(ns []notification.Notification) []notification.NotificationType {
	out := make([]notification.NotificationType, len(ns))
	for i, n := range ns {
		out[i] = n.Type
	}
	return out
}

func TestComputeNotifications_WednesdayScenario(t *testing.T) {
	reports := newReportSet("2024-03-05")

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 1)

	n := got[0]
	assert.Equal(t, notification.TypeConvertedToLeave, n.Type)
	assert.Equal(t, "2024-03-04", n.Date)
	assert.Equal(t, "u1", n.UserID)
	assert.Equal(t, "Report for 2024-03-04 has been converted to leave. Submit today to avoid more leaves.", n.Message)
	assert.Equal(t, NotificationID("u1", notification.TypeConvertedToLeave, "2024-03-04"), n.ID)
	assert.False(t, n.IsSeen)
}

func TestComputeNotifications_NonWorkingDays(t *testing.T) {
	for _, day := range []string{"2024-03-09", "2024-03-10"} {
		t.Run(day, func(t *testing.T) {
			reports := newReportSet()

			got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, day), reports.exists)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Empty(t, reports.calls, "no lookups on non-working days")
		})
	}
}

func TestComputeNotifications_AllSubmitted(t *testing.T) {
	reports := newReportSet("2024-03-04", "2024-03-05")

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.ElementsMatch(t, []string{"u1@2024-03-04", "u1@2024-03-05"}, reports.calls)
}

func TestComputeNotifications_BothMissingOrdered(t *testing.T) {
	reports := newReportSet()

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []notification.NotificationType{
		notification.TypeConvertedToLeave,
		notification.TypeMissedReport,
	}, types(got))
	assert.Equal(t, "2024-03-04", got[0].Date)
	assert.Equal(t, "2024-03-05", got[1].Date)
	assert.Equal(t, "Missed report for 2024-03-05. If not submitted today, it will be marked as leave.", got[1].Message)
}

func TestComputeNotifications_OnlyMissedReport(t *testing.T) {
	reports := newReportSet("2024-03-04")

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeMissedReport, got[0].Type)
	assert.Equal(t, "2024-03-05", got[0].Date)
}

func TestComputeNotifications_MondaySkipsSundayWarning(t *testing.T) {
	// Monday: two back is Friday, yesterday is Sunday and never checked
	reports := newReportSet()

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-04"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeConvertedToLeave, got[0].Type)
	assert.Equal(t, "2024-03-01", got[0].Date)
	assert.Equal(t, []string{"u1@2024-03-01"}, reports.calls)
}

func TestComputeNotifications_TuesdayCountsSunday(t *testing.T) {
	reports := newReportSet()

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-05"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-03", got[0].Date)
	assert.Equal(t, "2024-03-04", got[1].Date)
}

func TestComputeNotifications_LookupFailureSuppressesThatDate(t *testing.T) {
	reports := newReportSet()
	reports.failing["2024-03-04"] = errors.New("connection reset")

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeMissedReport, got[0].Type)
	assert.Equal(t, "2024-03-05", got[0].Date)
}

func TestComputeNotifications_AllLookupsFail(t *testing.T) {
	reports := newReportSet()
	reports.failing["2024-03-04"] = errors.New("timeout")
	reports.failing["2024-03-05"] = errors.New("timeout")

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), reports.exists)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestComputeNotifications_LookupsRunConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	both := make(chan struct{})
	go func() {
		started.Wait()
		close(both)
	}()

	exists := func(ctx context.Context, userID, date string) (bool, error) {
		started.Done()
		select {
		case <-both:
			return false, nil
		case <-time.After(2 * time.Second):
			return false, errors.New("lookups were not concurrent")
		}
	}

	got, err := ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), exists)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestComputeNotifications_InvalidArguments(t *testing.T) {
	reports := newReportSet()

	_, err := ComputeNotifications(context.Background(), "", mustDay(t, "2024-03-06"), reports.exists)
	assert.ErrorIs(t, err, notification.ErrInvalidArgument)

	_, err = ComputeNotifications(context.Background(), "u1", mustDay(t, "2024-03-06"), nil)
	assert.ErrorIs(t, err, notification.ErrInvalidArgument)
}

func TestNotificationID_Stable(t *testing.T) {
	a := NotificationID("u1", notification.TypeMissedReport, "2024-03-05")
	b := NotificationID("u1", notification.TypeMissedReport, "2024-03-05")
	c := NotificationID("u1", notification.TypeConvertedToLeave, "2024-03-05")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}
