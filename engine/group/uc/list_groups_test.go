package uc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rosterd/rosterd/engine/group/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListGroups_Execute(t *testing.T) {
	dataset := []*model.Group{
		testGroup(1, model.StatusNotEmpty),
		testGroup(2, model.StatusEmpty),
		testGroup(3, model.StatusNotEmpty),
	}
	repoFor := func() *fakeRepo {
		return &fakeRepo{
			listFn: func(_ context.Context, limit, offset int) ([]*model.Group, error) {
				if offset >= len(dataset) {
					return []*model.Group{}, nil
				}
				end := offset + limit
				if end > len(dataset) {
					end = len(dataset)
				}
				return dataset[offset:end], nil
			},
			countFn: func(_ context.Context) (int64, error) {
				return int64(len(dataset)), nil
			},
		}
	}

	t.Run("Should return one page with the total", func(t *testing.T) {
		page, err := NewListGroups(repoFor(), newFakeCache(), time.Minute, &ListGroupsInput{Limit: 2, Offset: 1}).
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		require.Len(t, page.Groups, 2)
		assert.Equal(t, int64(2), page.Groups[0].ID)
	})

	t.Run("Should serve a repeated query from the cache", func(t *testing.T) {
		repo := repoFor()
		c := newFakeCache()
		input := &ListGroupsInput{Limit: 2, Offset: 0}
		_, err := NewListGroups(repo, c, time.Minute, input).Execute(context.Background())
		require.NoError(t, err)

		repo.listFn = func(_ context.Context, _, _ int) ([]*model.Group, error) {
			return nil, errors.New("store unavailable")
		}
		page, err := NewListGroups(repo, c, time.Minute, input).Execute(context.Background())
		require.NoError(t, err)
		require.Len(t, page.Groups, 2)
	})
}

func TestGetGroup_Execute(t *testing.T) {
	t.Run("Should fetch a group and populate the cache", func(t *testing.T) {
		repo := &fakeRepo{
			getByIDFn: func(_ context.Context, id int64) (*model.Group, error) {
				return testGroup(id, model.StatusNotEmpty), nil
			},
		}
		c := newFakeCache()
		group, err := NewGetGroup(repo, c, time.Minute, 5).Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), group.ID)
		assert.NotEmpty(t, c.store)
	})

	t.Run("Should propagate not found", func(t *testing.T) {
		repo := &fakeRepo{
			getByIDFn: func(_ context.Context, _ int64) (*model.Group, error) {
				return nil, ErrGroupNotFound
			},
		}
		_, err := NewGetGroup(repo, newFakeCache(), time.Minute, 404).Execute(context.Background())
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}
