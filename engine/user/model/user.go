package model

import "time"

// Status represents a user's lifecycle state.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// Valid checks if the status is a valid value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive || s == StatusBlocked
}

// User represents a member account. GroupID is nil when the user does not
// belong to any group.
type User struct {
	ID        int64     `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Status    Status    `db:"status"     json:"status"`
	GroupID   *int64    `db:"group_id"   json:"group_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
