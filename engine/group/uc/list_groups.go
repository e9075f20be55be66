package uc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rosterd/rosterd/engine/group/model"
	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/pkg/logger"
)

// ListGroupsInput carries validated offset pagination parameters.
type ListGroupsInput struct {
	Limit  int
	Offset int
}

// GroupPage is one offset-paginated page of groups.
type GroupPage struct {
	Groups []*model.Group `json:"groups"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ListGroups use case for offset-paginated group listing.
type ListGroups struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	input *ListGroupsInput
}

func NewListGroups(repo Repository, c Cache, ttl time.Duration, input *ListGroupsInput) *ListGroups {
	return &ListGroups{repo: repo, cache: c, ttl: ttl, input: input}
}

// Execute returns one page of groups ordered by ascending id plus the total
// count, consulting the advisory cache first.
func (uc *ListGroups) Execute(ctx context.Context) (*GroupPage, error) {
	log := logger.FromContext(ctx)
	key := cache.GenerateKey(cache.PrefixGroupList, "offset", uc.input.Offset, "limit", uc.input.Limit)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var page GroupPage
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			log.Debug("group list cache hit", "cache_key", key)
			return &page, nil
		}
		log.Warn("failed to unmarshal cached group page", "cache_key", key)
	}
	groups, err := uc.repo.List(ctx, uc.input.Limit, uc.input.Offset)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting groups: %w", err)
	}
	page := &GroupPage{
		Groups: groups,
		Total:  total,
		Limit:  uc.input.Limit,
		Offset: uc.input.Offset,
	}
	if encoded, err := json.Marshal(page); err == nil {
		uc.cache.Set(ctx, key, string(encoded), uc.ttl)
	} else {
		log.Warn("failed to marshal group page for cache", "error", err)
	}
	return page, nil
}
