package uc

import (
	"context"
	"time"

	"github.com/rosterd/rosterd/engine/group/model"
)

// Repository defines all data access operations for the group domain.
type Repository interface {
	// List returns groups ordered by ascending id, skipping offset rows and
	// returning at most limit.
	List(ctx context.Context, limit, offset int) ([]*model.Group, error)

	// Count returns the total number of groups.
	Count(ctx context.Context) (int64, error)

	// GetByID returns a group or ErrGroupNotFound.
	GetByID(ctx context.Context, id int64) (*model.Group, error)

	// RemoveUser detaches the user from the group and, when the group has no
	// members left, marks it empty, all inside one transaction serialized on
	// the group row. Returns ErrGroupNotFound, ErrUserNotFound or
	// ErrUserNotInGroup on precondition failure.
	RemoveUser(ctx context.Context, groupID, userID int64) error
}

// Cache is the advisory list cache consulted before the store. All methods
// are best-effort.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	DeleteByPrefix(ctx context.Context, prefix string)
}
