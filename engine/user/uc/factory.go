package uc

import "time"

// Factory provides methods to create use case instances with proper
// dependency injection.
type Factory struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
}

// NewFactory creates a new use case factory. ttl controls how long cached
// pages live.
func NewFactory(repo Repository, cache Cache, ttl time.Duration) *Factory {
	return &Factory{repo: repo, cache: cache, ttl: ttl}
}

// ListUsers creates an offset pagination use case.
func (f *Factory) ListUsers(input *ListUsersInput) *ListUsers {
	return NewListUsers(f.repo, f.cache, f.ttl, input)
}

// ListUsersCursor creates a cursor pagination use case.
func (f *Factory) ListUsersCursor(input *ListUsersCursorInput) *ListUsersCursor {
	return NewListUsersCursor(f.repo, f.cache, f.ttl, input)
}

// BulkUpdateStatuses creates a bulk status update use case.
func (f *Factory) BulkUpdateStatuses(input *BulkUpdateStatusesInput) *BulkUpdateStatuses {
	return NewBulkUpdateStatuses(f.repo, f.cache, input)
}

// GetUser creates a single-user fetch use case.
func (f *Factory) GetUser(id int64) *GetUser {
	return NewGetUser(f.repo, f.cache, f.ttl, id)
}
