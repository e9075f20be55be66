package uc

import (
	"context"
	"time"

	"github.com/rosterd/rosterd/engine/user/model"
)

type fakeRepo struct {
	listFn      func(ctx context.Context, limit, offset int) ([]*model.User, error)
	countFn     func(ctx context.Context) (int64, error)
	listAfterFn func(ctx context.Context, cursor int64, limit int) ([]*model.User, error)
	getByIDFn   func(ctx context.Context, id int64) (*model.User, error)
	bulkFn      func(ctx context.Context, updates []StatusUpdate) (int, error)
	bulkCalls   int
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return f.listFn(ctx, limit, offset)
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	return f.countFn(ctx)
}

func (f *fakeRepo) ListAfter(ctx context.Context, cursor int64, limit int) ([]*model.User, error) {
	return f.listAfterFn(ctx, cursor, limit)
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo) BulkUpdateStatus(ctx context.Context, updates []StatusUpdate) (int, error) {
	f.bulkCalls++
	return f.bulkFn(ctx, updates)
}

// fakeCache is a map-backed Cache that records prefix invalidations.
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

func testUser(id int64, status model.Status) *model.User {
	return &model.User{ID: id, Name: "user", Status: status}
}
