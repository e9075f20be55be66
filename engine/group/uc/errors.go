package uc

import "errors"

// ErrGroupNotFound is returned when a group is not found in the repository.
var ErrGroupNotFound = errors.New("group not found")

// ErrUserNotFound is returned when the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrUserNotInGroup is returned when the user exists but does not currently
// belong to the named group. This covers both "belongs to a different group"
// and "belongs to no group", including a repeated removal of the same user.
var ErrUserNotInGroup = errors.New("user is not a member of the group")
