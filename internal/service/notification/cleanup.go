package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
)

// DuplicateIDs returns the ids to delete so that each (user, type, date)
// keeps only its most recent notification. Ties keep the first one seen.
func DuplicateIDs(items []notification.Notification) (ids []string, groups int) {
	keep := make(map[notification.Key]int, len(items))
	order := make([]notification.Key, 0, len(items))

	for i, n := range items {
		k := n.Key()
		cur, ok := keep[k]
		if !ok {
			keep[k] = i
			order = append(order, k)
			continue
		}
		if n.Timestamp().After(items[cur].Timestamp()) {
			keep[k] = i
		}
	}

	kept := make(map[int]struct{}, len(keep))
	for _, k := range order {
		kept[keep[k]] = struct{}{}
	}
	for i, n := range items {
		if _, ok := kept[i]; !ok {
			ids = append(ids, n.ID)
		}
	}

	return ids, len(order)
}

// CleanupDuplicates removes duplicate notifications matching filter from store.
// Running it twice in a row deletes nothing the second time.
func CleanupDuplicates(ctx context.Context, store notification.Store, filter notification.Filter, dryRun bool) (*notification.CleanupResult, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil notification store", notification.ErrInvalidArgument)
	}

	items, err := store.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	ids, groups := DuplicateIDs(items)
	result := &notification.CleanupResult{
		Scanned:    len(items),
		Groups:     groups,
		Duplicates: len(ids),
		DeletedIDs: ids,
		DryRun:     dryRun,
	}

	if len(ids) == 0 || dryRun {
		return result, nil
	}

	deleted, err := store.DeleteMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to delete duplicate notifications: %w", err)
	}
	result.Deleted = deleted

	slog.Info("duplicate notifications removed",
		"company_id", filter.CompanyID,
		"scanned", result.Scanned,
		"groups", result.Groups,
		"deleted", deleted,
	)

	return result, nil
}
