package uc

import (
	"context"
	"testing"
	"time"

	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gappedRepo serves a fixed set of ids with holes, the shape a table gets
// after deletions.
func gappedRepo(ids []int64) *fakeRepo {
	return &fakeRepo{
		listAfterFn: func(_ context.Context, cursor int64, limit int) ([]*model.User, error) {
			var out []*model.User
			for _, id := range ids {
				if id > cursor {
					out = append(out, testUser(id, model.StatusActive))
					if len(out) == limit {
						break
					}
				}
			}
			return out, nil
		},
	}
}

func TestListUsersCursor_Execute(t *testing.T) {
	t.Run("Should trim the lookahead row and set the next cursor", func(t *testing.T) {
		repo := gappedRepo([]int64{1, 2, 3, 4, 5})
		u := NewListUsersCursor(repo, newFakeCache(), time.Minute, &ListUsersCursorInput{Cursor: 0, Limit: 4})
		page, err := u.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, page.Users, 4)
		assert.True(t, page.HasNext)
		require.NotNil(t, page.NextCursor)
		assert.Equal(t, int64(4), *page.NextCursor, "next cursor must be the last returned id")
	})

	t.Run("Should return the final page without a next cursor", func(t *testing.T) {
		repo := gappedRepo([]int64{1, 2, 3})
		u := NewListUsersCursor(repo, newFakeCache(), time.Minute, &ListUsersCursorInput{Cursor: 0, Limit: 3})
		page, err := u.Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, page.Users, 3)
		assert.False(t, page.HasNext)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("Should traverse a gapped id space exactly once", func(t *testing.T) {
		ids := []int64{1, 3, 7, 8, 12, 20, 21}
		repo := gappedRepo(ids)
		c := newFakeCache()

		var seen []int64
		cursor := int64(0)
		for {
			page, err := NewListUsersCursor(repo, c, time.Minute, &ListUsersCursorInput{Cursor: cursor, Limit: 2}).
				Execute(context.Background())
			require.NoError(t, err)
			for _, u := range page.Users {
				seen = append(seen, u.ID)
			}
			if !page.HasNext {
				break
			}
			require.NotNil(t, page.NextCursor)
			cursor = *page.NextCursor
		}
		assert.Equal(t, ids, seen, "every id must be visited exactly once, gaps skipped")
	})

	t.Run("Should return an empty page when the cursor is past the end", func(t *testing.T) {
		repo := gappedRepo([]int64{1, 2, 3})
		u := NewListUsersCursor(repo, newFakeCache(), time.Minute, &ListUsersCursorInput{Cursor: 99, Limit: 5})
		page, err := u.Execute(context.Background())
		require.NoError(t, err)
		assert.Empty(t, page.Users)
		assert.False(t, page.HasNext)
		assert.Nil(t, page.NextCursor)
	})

	t.Run("Should serve a repeated page from the cache", func(t *testing.T) {
		repo := gappedRepo([]int64{1, 2, 3, 4})
		c := newFakeCache()
		input := &ListUsersCursorInput{Cursor: 0, Limit: 2}
		first, err := NewListUsersCursor(repo, c, time.Minute, input).Execute(context.Background())
		require.NoError(t, err)

		calls := 0
		repo.listAfterFn = func(_ context.Context, _ int64, _ int) ([]*model.User, error) {
			calls++
			return nil, nil
		}
		second, err := NewListUsersCursor(repo, c, time.Minute, input).Execute(context.Background())
		require.NoError(t, err)
		assert.Zero(t, calls, "cached page must not reach the repository")
		assert.Equal(t, first.HasNext, second.HasNext)
		require.Len(t, second.Users, len(first.Users))
	})
}
