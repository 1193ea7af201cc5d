package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type EncounterRepository interface {
	FindByID(ctx context.Context, encounterID string) (*models.Encounter, error)
	// TransitionStatus performs a compare-and-swap on the encounter status:
	// the update only applies while the current status is one of allowedFrom.
	// Returns the updated encounter, or nil when the precondition failed.
	TransitionStatus(ctx context.Context, encounterID string, allowedFrom []string, to, outcome, notes string) (*models.Encounter, error)
}
