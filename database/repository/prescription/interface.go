package prescriptionRepo

import (
	"context"

	"clinixsphere/models"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, id string) (*models.Prescription, error)
	// FindByDoctor returns the doctor's prescriptions, newest first.
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Prescription, error)
	FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Prescription, error)
}
