package uc

import (
	"context"
	"time"

	"github.com/rosterd/rosterd/engine/group/model"
)

type fakeRepo struct {
	listFn       func(ctx context.Context, limit, offset int) ([]*model.Group, error)
	countFn      func(ctx context.Context) (int64, error)
	getByIDFn    func(ctx context.Context, id int64) (*model.Group, error)
	removeUserFn func(ctx context.Context, groupID, userID int64) error
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]*model.Group, error) {
	return f.listFn(ctx, limit, offset)
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return f.countFn(ctx)
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo) RemoveUser(ctx context.Context, groupID, userID int64) error {
	return f.removeUserFn(ctx, groupID, userID)
}

type fakeCache struct {
	store           map[string]string
	deletedPrefixes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	val, ok := c.store[key]
	return val, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.store[key] = value
}

func (c *fakeCache) DeleteByPrefix(_ context.Context, prefix string) {
	c.deletedPrefixes = append(c.deletedPrefixes, prefix)
	for key := range c.store {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.store, key)
		}
	}
}

func testGroup(id int64, status model.Status) *model.Group {
	return &model.Group{ID: id, Name: "group", Status: status}
}
