package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type SurgeryRepository interface {
	CreateSurgery(ctx context.Context, surgery *models.SurgeryRecord) (surgeryID string, err error)
}
