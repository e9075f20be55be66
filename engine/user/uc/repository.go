package uc

import (
	"context"
	"time"

	"github.com/rosterd/rosterd/engine/user/model"
)

// StatusUpdate is one (user id, target status) pair of a bulk request.
type StatusUpdate struct {
	ID     int64        `json:"id"`
	Status model.Status `json:"status"`
}

// Repository defines all data access operations for the user domain.
type Repository interface {
	// List returns users ordered by ascending id, skipping offset rows and
	// returning at most limit.
	List(ctx context.Context, limit, offset int) ([]*model.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// ListAfter returns up to limit users with id strictly greater than
	// cursor, ordered by ascending id.
	ListAfter(ctx context.Context, cursor int64, limit int) ([]*model.User, error)

	// GetByID returns a user or ErrUserNotFound.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// BulkUpdateStatus applies all updates in a single transaction. If any
	// referenced id does not exist it returns a MissingIDsError enumerating
	// every missing id and applies nothing.
	BulkUpdateStatus(ctx context.Context, updates []StatusUpdate) (int, error)
}

// Cache is the advisory list cache consulted before the store. All methods
// are best-effort.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
	DeleteByPrefix(ctx context.Context, prefix string)
}
