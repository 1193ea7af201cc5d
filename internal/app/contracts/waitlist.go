package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type WaitlistRepository interface {
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (entryID string, err error)
	// FindPending returns pending entries ordered by priority descending,
	// then creation time ascending. Higher priority values are more urgent:
	// the writer inverts the clinical triage scale (1 critical .. 5 minor)
	// before storing, so critical patients sort first.
	FindPending(ctx context.Context, limit int64) ([]models.WaitlistEntry, error)
	// MarkFulfilled is a compare-and-swap: the entry must still be pending.
	// Returns false when another runner fulfilled or cancelled it first.
	MarkFulfilled(ctx context.Context, entryID, admissionID string) (bool, error)
	// MarkCancelled withdraws a pending entry, used as the compensating
	// action when the owning orchestration run lost its commit race.
	MarkCancelled(ctx context.Context, entryID string) error
}
