package contracts

import (
	"context"
	"medicore-service/internal/app/models"
)

type DepartmentRepository interface {
	FindByID(ctx context.Context, departmentID string) (*models.Department, error)
	// FindFirstActiveSurgical is the fallback when an OT transfer carries no
	// explicit department: first active surgical department by name.
	FindFirstActiveSurgical(ctx context.Context) (*models.Department, error)
}
