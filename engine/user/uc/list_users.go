package uc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/engine/user/model"
	"github.com/rosterd/rosterd/pkg/logger"
)

// ListUsersInput carries validated offset pagination parameters.
type ListUsersInput struct {
	Limit  int
	Offset int
}

// UserPage is one offset-paginated page of users. Total is computed
// independently of the page fetch and may drift under concurrent writes.
type UserPage struct {
	Users  []*model.User `json:"users"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// ListUsers use case for offset-paginated user listing.
type ListUsers struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	input *ListUsersInput
}

func NewListUsers(repo Repository, c Cache, ttl time.Duration, input *ListUsersInput) *ListUsers {
	return &ListUsers{repo: repo, cache: c, ttl: ttl, input: input}
}

// Execute returns one page of users ordered by ascending id plus the total
// count, consulting the advisory cache first.
func (uc *ListUsers) Execute(ctx context.Context) (*UserPage, error) {
	log := logger.FromContext(ctx)
	key := cache.GenerateKey(cache.PrefixUserList, "offset", uc.input.Offset, "limit", uc.input.Limit)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var page UserPage
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			log.Debug("user list cache hit", "cache_key", key)
			return &page, nil
		}
		log.Warn("failed to unmarshal cached user page", "cache_key", key)
	}
	users, err := uc.repo.List(ctx, uc.input.Limit, uc.input.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	page := &UserPage{
		Users:  users,
		Total:  total,
		Limit:  uc.input.Limit,
		Offset: uc.input.Offset,
	}
	if encoded, err := json.Marshal(page); err == nil {
		uc.cache.Set(ctx, key, string(encoded), uc.ttl)
	} else {
		log.Warn("failed to marshal user page for cache", "error", err)
	}
	return page, nil
}
