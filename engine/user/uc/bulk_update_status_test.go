package uc

import (
	"context"
	"errors"
	"testing"

	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkUpdateStatuses_Execute(t *testing.T) {
	t.Run("Should reject an empty update list", func(t *testing.T) {
		repo := &fakeRepo{}
		u := NewBulkUpdateStatuses(repo, newFakeCache(), &BulkUpdateStatusesInput{})
		_, err := u.Execute(context.Background())
		assert.ErrorIs(t, err, ErrNoUpdates)
		assert.Zero(t, repo.bulkCalls)
	})

	t.Run("Should reject more entries than the bulk limit", func(t *testing.T) {
		updates := make([]StatusUpdate, MaxBulkUpdates+1)
		for i := range updates {
			updates[i] = StatusUpdate{ID: int64(i + 1), Status: model.StatusActive}
		}
		repo := &fakeRepo{}
		u := NewBulkUpdateStatuses(repo, newFakeCache(), &BulkUpdateStatusesInput{Updates: updates})
		_, err := u.Execute(context.Background())
		assert.ErrorIs(t, err, ErrTooManyUpdates)
		assert.Zero(t, repo.bulkCalls)
	})

	t.Run("Should reject an unknown status value", func(t *testing.T) {
		repo := &fakeRepo{}
		u := NewBulkUpdateStatuses(repo, newFakeCache(), &BulkUpdateStatusesInput{
			Updates: []StatusUpdate{{ID: 1, Status: "archived"}},
		})
		_, err := u.Execute(context.Background())
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Zero(t, repo.bulkCalls)
	})

	t.Run("Should reject duplicate ids before touching storage", func(t *testing.T) {
		repo := &fakeRepo{}
		u := NewBulkUpdateStatuses(repo, newFakeCache(), &BulkUpdateStatusesInput{
			Updates: []StatusUpdate{
				{ID: 5, Status: model.StatusActive},
				{ID: 2, Status: model.StatusBlocked},
				{ID: 5, Status: model.StatusBlocked},
				{ID: 2, Status: model.StatusPending},
			},
		})
		_, err := u.Execute(context.Background())
		var dupErr *DuplicateIDsError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, []int64{2, 5}, dupErr.IDs)
		assert.Zero(t, repo.bulkCalls, "storage must not be touched on duplicate ids")
	})

	t.Run("Should propagate missing ids without invalidating caches", func(t *testing.T) {
		repo := &fakeRepo{
			bulkFn: func(_ context.Context, _ []StatusUpdate) (int, error) {
				return 0, &MissingIDsError{IDs: []int64{3, 9}}
			},
		}
		c := newFakeCache()
		u := NewBulkUpdateStatuses(repo, c, &BulkUpdateStatusesInput{
			Updates: []StatusUpdate{
				{ID: 1, Status: model.StatusActive},
				{ID: 3, Status: model.StatusBlocked},
				{ID: 9, Status: model.StatusPending},
			},
		})
		_, err := u.Execute(context.Background())
		var missErr *MissingIDsError
		require.ErrorAs(t, err, &missErr)
		assert.Equal(t, []int64{3, 9}, missErr.IDs)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Empty(t, c.deletedPrefixes, "failed updates must not invalidate caches")
	})

	t.Run("Should apply updates and invalidate list and entity caches", func(t *testing.T) {
		var received []StatusUpdate
		repo := &fakeRepo{
			bulkFn: func(_ context.Context, updates []StatusUpdate) (int, error) {
				received = updates
				return len(updates), nil
			},
		}
		c := newFakeCache()
		u := NewBulkUpdateStatuses(repo, c, &BulkUpdateStatusesInput{
			Updates: []StatusUpdate{
				{ID: 1, Status: model.StatusActive},
				{ID: 2, Status: model.StatusActive},
				{ID: 3, Status: model.StatusBlocked},
			},
		})
		applied, err := u.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, applied)
		assert.Len(t, received, 3)
		assert.Contains(t, c.deletedPrefixes, cache.PrefixUserList)
		assert.Contains(t, c.deletedPrefixes, cache.PrefixGroupList)
		assert.Contains(t, c.deletedPrefixes, cache.PrefixUser)
	})
}

func TestBulkUpdateStatuses_MissingIDsErrorMessage(t *testing.T) {
	t.Run("Should enumerate every missing id", func(t *testing.T) {
		err := &MissingIDsError{IDs: []int64{4, 7, 19}}
		assert.Equal(t, "users not found: 4, 7, 19", err.Error())
	})

	t.Run("Should unwrap to the not-found sentinel", func(t *testing.T) {
		var err error = &MissingIDsError{IDs: []int64{4}}
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}
