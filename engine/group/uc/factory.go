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

// ListGroups creates an offset pagination use case.
func (f *Factory) ListGroups(input *ListGroupsInput) *ListGroups {
	return NewListGroups(f.repo, f.cache, f.ttl, input)
}

// GetGroup creates a single-group fetch use case.
func (f *Factory) GetGroup(id int64) *GetGroup {
	return NewGetGroup(f.repo, f.cache, f.ttl, id)
}

// RemoveUser creates a membership removal use case.
func (f *Factory) RemoveUser(groupID, userID int64) *RemoveUser {
	return NewRemoveUser(f.repo, f.cache, groupID, userID)
}
