package uc

import (
	"context"

	"github.com/rosterd/rosterd/engine/infra/cache"
	"github.com/rosterd/rosterd/pkg/logger"
)

// RemoveUser use case detaching a user from a group. The detachment is
// terminal for the (user, group) pair: a second invocation fails with
// ErrUserNotInGroup because the membership no longer holds.
type RemoveUser struct {
	repo    Repository
	cache   Cache
	groupID int64
	userID  int64
}

func NewRemoveUser(repo Repository, c Cache, groupID, userID int64) *RemoveUser {
	return &RemoveUser{repo: repo, cache: c, groupID: groupID, userID: userID}
}

// Execute performs the removal and, on success, invalidates the cached list
// and entity entries touched by the write. Cache failures never surface.
func (uc *RemoveUser) Execute(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if err := uc.repo.RemoveUser(ctx, uc.groupID, uc.userID); err != nil {
		return err
	}
	uc.cache.DeleteByPrefix(ctx, cache.PrefixUserList)
	uc.cache.DeleteByPrefix(ctx, cache.PrefixGroupList)
	uc.cache.DeleteByPrefix(ctx, cache.GenerateKey(cache.PrefixUser, uc.userID))
	uc.cache.DeleteByPrefix(ctx, cache.GenerateKey(cache.PrefixGroup, uc.groupID))
	log.Info("user removed from group", "group_id", uc.groupID, "user_id", uc.userID)
	return nil
}
