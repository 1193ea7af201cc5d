package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type AdmissionRepository interface {
	CreateAdmission(ctx context.Context, admission *models.Admission) (admissionID string, err error)
	// MarkOrphaned flags an admission whose companion record failed to be
	// created, so reconciliation can find it. Never deletes.
	MarkOrphaned(ctx context.Context, admissionID string) error
}
