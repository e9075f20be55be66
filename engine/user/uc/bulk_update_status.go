package uc

import (
	"context"
	"fmt"
	"sort"

	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/pkg/logger"
)

// BulkUpdateStatusesInput carries the ordered list of (id, status) pairs.
type BulkUpdateStatusesInput struct {
	Updates []StatusUpdate
}

// BulkUpdateStatuses use case applying up to MaxBulkUpdates status changes as
// a single all-or-nothing transaction.
type BulkUpdateStatuses struct {
	repo  Repository
	cache Cache
	input *BulkUpdateStatusesInput
}

func NewBulkUpdateStatuses(repo Repository, c Cache, input *BulkUpdateStatusesInput) *BulkUpdateStatuses {
	return &BulkUpdateStatuses{repo: repo, cache: c, input: input}
}

// Execute validates the request shape, then delegates the transactional
// update to the repository. Returns the number of entries applied.
//
// Duplicate ids are rejected before any storage access. Two concurrent bulk
// requests with overlapping ids are intentionally not serialized against each
// other; the storage transaction ordering decides.
func (uc *BulkUpdateStatuses) Execute(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	updates := uc.input.Updates
	if len(updates) == 0 {
		return 0, ErrNoUpdates
	}
	if len(updates) > MaxBulkUpdates {
		return 0, ErrTooManyUpdates
	}
	for _, u := range updates {
		if !u.Status.Valid() {
			return 0, fmt.Errorf("%w: %q for user %d", ErrInvalidStatus, u.Status, u.ID)
		}
	}
	if dupes := duplicateIDs(updates); len(dupes) > 0 {
		return 0, &DuplicateIDsError{IDs: dupes}
	}
	applied, err := uc.repo.BulkUpdateStatus(ctx, updates)
	if err != nil {
		return 0, err
	}
	uc.cache.DeleteByPrefix(ctx, cache.PrefixUserList)
	uc.cache.DeleteByPrefix(ctx, cache.PrefixGroupList)
	uc.cache.DeleteByPrefix(ctx, cache.PrefixUser)
	log.Info("bulk status update applied", "count", applied)
	return applied, nil
}

func duplicateIDs(updates []StatusUpdate) []int64 {
	seen := make(map[int64]int, len(updates))
	for _, u := range updates {
		seen[u.ID]++
	}
	var dupes []int64
	for id, n := range seen {
		if n > 1 {
			dupes = append(dupes, id)
		}
	}
	sort.Slice(dupes, func(i, j int) bool { return dupes[i] < dupes[j] })
	return dupes
}
