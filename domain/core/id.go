package core

import "github.com/google/uuid"

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
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

// CycleID identifies one render cycle: one filter change and the analyses it triggered
type CycleID ID

// NewCycleID creates a time-ordered render cycle identifier
func NewCycleID() CycleID { return CycleID(NewID()) }

func (id CycleID) String() string { return ID(id).String() }
