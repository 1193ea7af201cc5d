package models

// SequenceCounter backs the per (kind, day) monotonic counters. LastValue is
// mutated only through a single atomic increment-and-return.
type SequenceCounter struct {
	Kind      string `bson:"kind"`
	DateKey   string `bson:"dateKey"`
	LastValue int64  `bson:"lastValue"`
}
