package uc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrInvalidStatus is returned when a bulk entry carries an unknown status.
var ErrInvalidStatus = errors.New("invalid status")

// MaxBulkUpdates bounds the number of entries in one bulk status request.
const MaxBulkUpdates = 500

// ErrNoUpdates is returned when a bulk request carries no entries.
var ErrNoUpdates = errors.New("at least one update is required")

// ErrTooManyUpdates is returned when a bulk request exceeds MaxBulkUpdates.
var ErrTooManyUpdates = fmt.Errorf("at most %d updates are allowed", MaxBulkUpdates)

// DuplicateIDsError reports ids that appear more than once in a bulk request.
// The check is a pure input-shape check performed before any storage access.
type DuplicateIDsError struct {
	IDs []int64
}

func (e *DuplicateIDsError) Error() string {
	return "duplicate user ids in request: " + joinIDs(e.IDs)
}

// MissingIDsError reports every referenced id that does not exist.
type MissingIDsError struct {
	IDs []int64
}

func (e *MissingIDsError) Error() string {
	return "users not found: " + joinIDs(e.IDs)
}

func (e *MissingIDsError) Unwrap() error {
	return ErrUserNotFound
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
