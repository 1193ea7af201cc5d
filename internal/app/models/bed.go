package models

import "time"

// Bed is an allocatable unit. Status and occupant are mutated only through
// the bed repository's atomic conditional updates.
type Bed struct {
	ID         string     `bson:"_id,omitempty"`
	BedNumber  int        `bson:"bedNumber"`
	WardID     string     `bson:"wardId"`
	Kind       string     `bson:"kind"`
	Status     string     `bson:"status"`
	OccupantID string     `bson:"occupantId,omitempty"`
	ReservedAt *time.Time `bson:"reservedAt,omitempty"`
	TimeModel  `bson:",inline"`
}
