package model

import "time"

// Status tracks whether a group currently has members. It must always match
// the live member count: empty iff no user references the group.
type Status string

const (
	StatusEmpty    Status = "empty"
	StatusNotEmpty Status = "notEmpty"
)

// Valid checks if the status is a valid value.
func (s Status) Valid() bool {
	return s == StatusEmpty || s == StatusNotEmpty
}

// Group represents a membership group.
type Group struct {
	ID        int64     `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Status    Status    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
