package contracts

import (
	"context"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type DispositionUsecase interface {
	// Disposition runs one orchestration for the encounter and returns its
	// terminal outcome with reference identifiers, or a typed error. There
	// is no partial success: every error path leaves either no writes or
	// fully compensated writes behind.
	Disposition(ctx context.Context, encounterID string, request *requests.CreateDisposition) (*responses.DispositionResult, error)
}
