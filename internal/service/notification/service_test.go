package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	memoryStore
	upsertCalls int
	lastPage    [2]int
}

func (f *fakeRepo) Upsert(_ context.Context, ns []notification.Notification) ([]notification.Notification, error) {
	f.upsertCalls++
	var inserted []notification.Notification
	for _, n := range ns {
		exists := false
		for _, cur := range f.items {
			if cur.Key() == n.Key() {
				exists = true
				break
			}
		}
		if !exists {
			f.items = append(f.items, n)
			inserted = append(inserted, n)
		}
	}
	return inserted, nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string, page, pageSize int, unseenOnly bool) ([]notification.Notification, int, error) {
	f.lastPage = [2]int{page, pageSize}
	var out []notification.Notification
	for _, n := range f.items {
		if n.UserID == userID && (!unseenOnly || !n.IsSeen) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetUnseenCount(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.items {
		if n.UserID == userID && !n.IsSeen {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkSeen(_ context.Context, id string, userID string) error {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsSeen = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeRepo) MarkAllSeen(_ context.Context, userID string) (int64, error) {
	var updated int64
	for i := range f.items {
		if f.items[i].UserID == userID && !f.items[i].IsSeen {
			f.items[i].IsSeen = true
			updated++
		}
	}
	return updated, nil
}

type fakeReports struct {
	submitted map[string]bool // companyID|userID|date
}

func (f fakeReports) Exists(_ context.Context, companyID, userID, date string) (bool, error) {
	return f.submitted[companyID+"|"+userID+"|"+date], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (p *recordingPublisher) Publish(userID string, event sse.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Wednesday 2024-03-06, 10:00 UTC
var wednesdayMorning = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, reports fakeReports, pub *recordingPublisher, now time.Time, loc *time.Location) notification.Service {
	return NewNotificationService(repo, reports, pub, Config{Location: loc, Now: fixedNow(now)})
}

func TestService_MissedIsScopedToCompany(t *testing.T) {
	repo := &fakeRepo{}
	pub := &recordingPublisher{}
	reports := fakeReports{submitted: map[string]bool{
		"c1|u1|2024-03-05": true,
		// same user id in another tenant must not count
		"c2|u1|2024-03-04": true,
	}}
	svc := newTestService(repo, reports, pub, wednesdayMorning, nil)

	got, err := svc.Missed(context.Background(), "c1", "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, notification.TypeConvertedToLeave, got[0].Type)
	assert.Equal(t, "2024-03-04", got[0].Date)
	assert.Equal(t, wednesdayMorning, got[0].CreatedAt)
	assert.Equal(t, 0, repo.upsertCalls)
	assert.Empty(t, pub.events)
}

func TestService_SyncStoresOncePerKey(t *testing.T) {
	repo := &fakeRepo{}
	pub := &recordingPublisher{}
	svc := newTestService(repo, fakeReports{}, pub, wednesdayMorning, nil)

	first, err := svc.Sync(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Computed)
	assert.Equal(t, 2, first.Inserted)
	require.Len(t, pub.events, 2)
	assert.Equal(t, notification.EventNotification, pub.events[0].Event)

	second, err := svc.Sync(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Computed)
	assert.Equal(t, 0, second.Inserted)
	assert.Len(t, pub.events, 2)
	assert.Len(t, repo.items, 2)
	for _, n := range repo.items {
		assert.Equal(t, "c1", n.CompanyID)
	}
}

func TestService_SyncUsesConfiguredTimezone(t *testing.T) {
	// Friday 20:00 UTC is already Saturday in UTC+7
	friday := time.Date(2024, 3, 8, 20, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	svc := newTestService(repo, fakeReports{}, &recordingPublisher{}, friday, time.FixedZone("WIB", 7*60*60))

	got, err := svc.Sync(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Computed)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestService_MarkSeenAndList(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, fakeReports{}, &recordingPublisher{}, wednesdayMorning, nil)
	ctx := context.Background()

	_, err := svc.Sync(ctx, "c1", "u1")
	require.NoError(t, err)

	list, err := svc.GetNotifications(ctx, "u1", 0, 500, false)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)
	assert.Equal(t, [2]int{1, 20}, repo.lastPage)
	assert.Equal(t, 2, list.UnseenCount)

	id := list.Notifications[0].ID
	require.NoError(t, svc.MarkSeen(ctx, "u1", id))
	require.NoError(t, svc.MarkSeen(ctx, "u1", id))
	assert.ErrorIs(t, svc.MarkSeen(ctx, "u2", id), notification.ErrNotificationNotFound)

	list, err = svc.GetNotifications(ctx, "u1", 1, 10, true)
	require.NoError(t, err)
	assert.Equal(t, 1, list.UnseenCount)
	assert.Len(t, list.Notifications, 1)

	res, err := svc.MarkAllSeen(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Updated)

	// seen flag never alters content
	for _, n := range repo.items {
		assert.True(t, n.IsSeen)
		assert.Equal(t, n.Type.Message(n.Date), n.Message)
	}
}

func TestService_CleanupDelegatesToStore(t *testing.T) {
	repo := &fakeRepo{memoryStore: memoryStore{items: []notification.Notification{dup("a", at(8)), dup("b", at(9))}}}
	svc := newTestService(repo, fakeReports{}, &recordingPublisher{}, wednesdayMorning, nil)

	res, err := svc.Cleanup(context.Background(), notification.Filter{CompanyID: "c1"}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)
	assert.Equal(t, []string{"b"}, ids(repo.items))
}

func TestService_PublishReportSubmitted(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestService(&fakeRepo{}, fakeReports{}, pub, wednesdayMorning, nil)

	svc.PublishReportSubmitted("u1", "2024-03-06")
	require.Len(t, pub.events, 1)
	assert.Equal(t, notification.EventReportSubmitted, pub.events[0].Event)
	assert.Equal(t, map[string]string{"date": "2024-03-06"}, pub.events[0].Data)
}
