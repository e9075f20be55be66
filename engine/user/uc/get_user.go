package uc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/rosterd/rosterd/pkg/logger"
)

// GetUser use case for fetching a single user by id with a read-through cache.
type GetUser struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	id    int64
}

func NewGetUser(repo Repository, c Cache, ttl time.Duration, id int64) *GetUser {
	return &GetUser{repo: repo, cache: c, ttl: ttl, id: id}
}

// Execute returns the user or ErrUserNotFound.
func (uc *GetUser) Execute(ctx context.Context) (*model.User, error) {
	log := logger.FromContext(ctx)
	key := cache.GenerateKey(cache.PrefixUser, uc.id)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var user model.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			log.Debug("user cache hit", "cache_key", key)
			return &user, nil
		}
	}
	user, err := uc.repo.GetByID(ctx, uc.id)
	if err != nil {
		return nil, err
	}
	if encoded, err := json.Marshal(user); err == nil {
		uc.cache.Set(ctx, key, string(encoded), uc.ttl)
	}
	return user, nil
}
