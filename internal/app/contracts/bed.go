package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type BedRepository interface {
	FindByID(ctx context.Context, bedID string) (*models.Bed, error)
	// ReserveAvailable atomically selects one available bed matching kind
	// (and ward when wardID is non-empty) and transitions it to reserved,
	// preferring the lowest bed number. Returns nil, nil when no bed
	// satisfies the precondition at commit time.
	ReserveAvailable(ctx context.Context, kind, wardID string) (*models.Bed, error)
	// MarkOccupied transitions a reserved bed to occupied and records the
	// occupant. The bed must currently be reserved.
	MarkOccupied(ctx context.Context, bedID, occupantID string) (*models.Bed, error)
	// Release returns a bed to available and clears the occupant. Releasing
	// an already-available bed is a no-op.
	Release(ctx context.Context, bedID string) (*models.Bed, error)
	CountAvailable(ctx context.Context, kind, wardID string) (int64, error)
}

type BedUsecase interface {
	ReleaseBed(ctx context.Context, bedID string) error
	GetAvailability(ctx context.Context, kind, wardID string) (int64, error)
}
