package doctorRepo

import (
	"context"

	"clinixsphere/models"
)

// DoctorRepository defines data access for doctor profiles.
type DoctorRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error)
	GetAll(ctx context.Context) ([]models.DoctorProfile, error)
	Create(ctx context.Context, profile *models.DoctorProfile) error
	Update(ctx context.Context, userID string, update models.DoctorProfileUpdate) (*models.DoctorProfile, error)
}
