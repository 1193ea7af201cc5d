package contracts

import (
	"context"
	"time"
)

type SequenceService interface {
	// Next returns the next value of the (kind, dateKey) counter as one
	// indivisible increment-and-return. Values are strictly increasing and
	// never repeat; gaps are acceptable. A store failure surfaces as
	// SequenceUnavailable and must never fall back to counting records.
	Next(ctx context.Context, kind, dateKey string) (int64, error)
	// NextCode increments the counter for the day of at and formats the
	// human-readable code, e.g. ADM202401010007.
	NextCode(ctx context.Context, kind string, at time.Time) (string, error)
}
