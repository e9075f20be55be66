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

// ListUsersCursorInput carries validated cursor pagination parameters.
// A zero Cursor means "start from the beginning".
type ListUsersCursorInput struct {
	Cursor int64
	Limit  int
}

// UserCursorPage is one cursor-paginated page of users. NextCursor is the id
// of the last returned row when HasNext is true, nil otherwise.
type UserCursorPage struct {
	Users      []*model.User `json:"users"`
	HasNext    bool          `json:"has_next"`
	NextCursor *int64        `json:"next_cursor"`
}

// ListUsersCursor use case for cursor-paginated user listing. The cursor is a
// value comparison on the primary key, so page cost is independent of how
// many rows precede it and gaps from deleted ids are skipped transparently.
type ListUsersCursor struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	input *ListUsersCursorInput
}

func NewListUsersCursor(repo Repository, c Cache, ttl time.Duration, input *ListUsersCursorInput) *ListUsersCursor {
	return &ListUsersCursor{repo: repo, cache: c, ttl: ttl, input: input}
}

// Execute fetches limit+1 rows past the cursor; the extra row only signals
// that another page exists and is discarded from the result.
func (uc *ListUsersCursor) Execute(ctx context.Context) (*UserCursorPage, error) {
	log := logger.FromContext(ctx)
	key := cache.GenerateKey(cache.PrefixUserList, "cursor", uc.input.Cursor, "limit", uc.input.Limit)
	if cached, ok := uc.cache.Get(ctx, key); ok {
		var page UserCursorPage
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			log.Debug("user cursor page cache hit", "cache_key", key)
			return &page, nil
		}
		log.Warn("failed to unmarshal cached user cursor page", "cache_key", key)
	}
	users, err := uc.repo.ListAfter(ctx, uc.input.Cursor, uc.input.Limit+1)
	if err != nil {
		return nil, fmt.Errorf("listing users after cursor: %w", err)
	}
	page := &UserCursorPage{Users: users}
	if len(users) > uc.input.Limit {
		page.Users = users[:uc.input.Limit]
		page.HasNext = true
		next := page.Users[len(page.Users)-1].ID
		page.NextCursor = &next
	}
	if encoded, err := json.Marshal(page); err == nil {
		uc.cache.Set(ctx, key, string(encoded), uc.ttl)
	} else {
		log.Warn("failed to marshal user cursor page for cache", "error", err)
	}
	return page, nil
}
