package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinixsphere/database/repository"
	prescriptionRepo "clinixsphere/database/repository/prescription"
	"clinixsphere/models"
	"clinixsphere/utils"
)

// AppointmentReader is the appointment lookup prescriptions depend on.
type AppointmentReader interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

type PrescriptionService interface {
	Create(ctx context.Context, doctorID string, req models.CreatePrescriptionRequest) (*models.Prescription, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Prescription, error)
	GetForDoctor(ctx context.Context, doctorID, id string) (*models.Prescription, error)
}

type DefaultPrescriptionService struct {
	Repo         prescriptionRepo.PrescriptionRepository
	Appointments AppointmentReader
}

func NewPrescriptionService(repo prescriptionRepo.PrescriptionRepository, appointments AppointmentReader) *DefaultPrescriptionService {
	return &DefaultPrescriptionService{Repo: repo, Appointments: appointments}
}

var (
	errAppointmentNotFound  = utils.NewAppError(utils.KindNotFound, "Appointment not found")
	errPrescriptionNotFound = utils.NewAppError(utils.KindNotFound, "Prescription not found")
	errNotCompleted         = utils.NewAppError(utils.KindInvalidStatus, "Prescriptions can only be written for completed appointments")
)

// Create issues a prescription for one of the doctor's completed appointments.
func (s *DefaultPrescriptionService) Create(ctx context.Context, doctorID string, req models.CreatePrescriptionRequest) (*models.Prescription, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	appt, err := s.Appointments.GetByID(ctx, req.AppointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	// another doctor's appointment is reported as missing
	if appt.DoctorID != doctorID {
		return nil, errAppointmentNotFound
	}
	if appt.Status != models.StatusCompleted {
		return nil, errNotCompleted
	}

	p := &models.Prescription{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      doctorID,
		Symptoms:      strings.TrimSpace(req.Symptoms),
		Diagnosis:     strings.TrimSpace(req.Diagnosis),
		Medicines:     req.Medicines,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if p.Medicines == nil {
		p.Medicines = []models.Medicine{}
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DefaultPrescriptionService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	return s.Repo.FindByDoctor(ctx, doctorID)
}

func (s *DefaultPrescriptionService) ListForPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	return s.Repo.FindByPatient(ctx, patientID)
}

// GetForDoctor hides prescriptions written by other doctors.
func (s *DefaultPrescriptionService) GetForDoctor(ctx context.Context, doctorID, id string) (*models.Prescription, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.DoctorID != doctorID {
		return nil, errPrescriptionNotFound
	}
	return p, nil
}

func validate(req models.CreatePrescriptionRequest) error {
	if strings.TrimSpace(req.AppointmentID) == "" {
		return utils.NewAppError(utils.KindInvalidInput, "appointmentId is required")
	}
	if strings.TrimSpace(req.Symptoms) == "" || strings.TrimSpace(req.Diagnosis) == "" {
		return utils.NewAppError(utils.KindInvalidInput, "symptoms and diagnosis are required")
	}
	for i, m := range req.Medicines {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Dosage) == "" || strings.TrimSpace(m.Frequency) == "" {
			return utils.NewAppError(utils.KindInvalidInput, fmt.Sprintf("medicine %d needs a name, dosage and frequency", i+1))
		}
	}
	return nil
}
