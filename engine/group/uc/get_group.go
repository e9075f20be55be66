package uc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rosterd/rosterd/engine/group/model"
	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/pkg/logger"
)

// GetGroup use case for fetching a single group by id with a read-through cache.
type GetGroup struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	id    int64
}

func NewGetGroup(repo Repository, c Cache, ttl time.Duration, id int64) *GetGroup {
	return &GetGroup{repo: repo, cache: c, ttl: ttl, id: id}
}

// Execute returns the group or ErrGroupNotFound.
func (uc *GetGroup) Execute(ctx context.Context) (*model.Group, error) {
	log := logger.FromContext(ctx)
	key := cache.GenerateKey(cache.PrefixGroup, uc.id)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var group model.Group
		if err := json.Unmarshal([]byte(cached), &group); err == nil {
			log.Debug("group cache hit", "cache_key", key)
			return &group, nil
		}
	}
	group, err := uc.repo.GetByID(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(group); err == nil {
		uc.cache.Set(ctx, key, string(encoded), uc.ttl)
	}
	return group, nil
}
