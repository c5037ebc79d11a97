package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SnapshotID identifies one prepared-dataset bundle
type SnapshotID ID

func (id SnapshotID) String() string { return ID(id).String() }

// NewSnapshotID creates a snapshot identifier
func NewSnapshotID() SnapshotID {
	return SnapshotID(NewID())
}
