package notification

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory notification.Store
type memoryStore struct {
	items     []notification.Notification
	findErr   error
	deleteErr error
}

func (m *memoryStore) FindAll(_ context.Context, filter notification.Filter) ([]notification.Notification, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []notification.Notification
	for _, n := range m.items {
		if filter.CompanyID != "" && n.CompanyID != filter.CompanyID {
			continue
		}
		if filter.UserID != "" && n.UserID != filter.UserID {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *memoryStore) DeleteMany(_ context.Context, ids []string) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := m.items[:0]
	var deleted int64
	for _, n := range m.items {
		if drop[n.ID] {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.items = kept
	return deleted, nil
}

func at(hour int) time.Time {
	return time.Date(2024, 3, 6, hour, 0, 0, 0, time.UTC)
}

func dup(id string, created time.Time) notification.Notification {
	return notification.Notification{
		ID:        id,
		CompanyID: "c1",
		UserID:    "u1",
		Type:      notification.TypeMissedReport,
		Date:      "2024-03-05",
		CreatedAt: created,
	}
}

func ids(ns []notification.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	sort.Strings(out)
	return out
}

func TestCleanupDuplicates_KeepsLatestAndIsIdempotent(t *testing.T) {
	store := &memoryStore{items: []notification.Notification{
		dup("a", at(8)),
		dup("b", at(10)),
		dup("c", at(9)),
	}}

	result, err := CleanupDuplicates(context.Background(), store, notification.Filter{}, false)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, int64(2), result.Deleted)
	assert.ElementsMatch(t, []string{"a", "c"}, result.DeletedIDs)
	assert.Equal(t, []string{"b"}, ids(store.items))

	result, err = CleanupDuplicates(context.Background(), store, notification.Filter{}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Empty(t, result.DeletedIDs)
	assert.Equal(t, []string{"b"}, ids(store.items))
}

func TestCleanupDuplicates_DistinctKeysUntouched(t *testing.T) {
	other := dup("d", at(7))
	other.Type = notification.TypeConvertedToLeave
	otherUser := dup("e", at(7))
	otherUser.UserID = "u2"
	otherDate := dup("f", at(7))
	otherDate.Date = "2024-03-04"

	store := &memoryStore{items: []notification.Notification{dup("a", at(8)), other, otherUser, otherDate}}

	result, err := CleanupDuplicates(context.Background(), store, notification.Filter{}, false)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Groups)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Len(t, store.items, 4)
}

func TestDuplicateIDs_TimestampFallbacks(t *testing.T) {
	updated := at(11)
	noCreated := dup("updated-only", time.Time{})
	noCreated.UpdatedAt = &updated
	noTimes := dup("no-times", time.Time{})

	got, groups := DuplicateIDs([]notification.Notification{noTimes, dup("created", at(10)), noCreated})
	assert.Equal(t, 1, groups)
	assert.ElementsMatch(t, []string{"no-times", "created"}, got)
}

func TestDuplicateIDs_TieKeepsFirstSeen(t *testing.T) {
	got, _ := DuplicateIDs([]notification.Notification{dup("first", at(9)), dup("second", at(9))})
	assert.Equal(t, []string{"second"}, got)

	got, _ = DuplicateIDs([]notification.Notification{dup("x", time.Time{}), dup("y", time.Time{})})
	assert.Equal(t, []string{"y"}, got)
}

func TestCleanupDuplicates_DryRun(t *testing.T) {
	store := &memoryStore{items: []notification.Notification{dup("a", at(8)), dup("b", at(9))}}

	result, err := CleanupDuplicates(context.Background(), store, notification.Filter{}, true)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Duplicates)
	assert.Equal(t, []string{"a"}, result.DeletedIDs)
	assert.Equal(t, int64(0), result.Deleted)
	assert.Len(t, store.items, 2)
}

func TestCleanupDuplicates_ScopedByFilter(t *testing.T) {
	foreign := dup("z", at(1))
	foreign.CompanyID = "c2"
	foreign2 := dup("y", at(2))
	foreign2.CompanyID = "c2"
	store := &memoryStore{items: []notification.Notification{dup("a", at(8)), dup("b", at(9)), foreign, foreign2}}

	result, err := CleanupDuplicates(context.Background(), store, notification.Filter{CompanyID: "c1"}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.DeletedIDs)
	assert.Equal(t, []string{"b", "y", "z"}, ids(store.items))
}

func TestCleanupDuplicates_StoreErrors(t *testing.T) {
	_, err := CleanupDuplicates(context.Background(), &memoryStore{findErr: errors.New("boom")}, notification.Filter{}, false)
	assert.Error(t, err)

	store := &memoryStore{
		items:     []notification.Notification{dup("a", at(8)), dup("b", at(9))},
		deleteErr: errors.New("boom"),
	}
	_, err = CleanupDuplicates(context.Background(), store, notification.Filter{}, false)
	assert.Error(t, err)

	_, err = CleanupDuplicates(context.Background(), nil, notification.Filter{}, false)
	assert.ErrorIs(t, err, notification.ErrInvalidArgument)
}
