package appointmentRepo

import (
	"context"
	"time"

	"clinixsphere/models"
)

// BookingGuard describes the re-check performed inside the booking
// transaction. LockKey serialises bookings of one doctor on one local day.
type BookingGuard struct {
	LockKey  string
	Duration time.Duration
	Blocking []models.AppointmentStatus
}

// AppointmentRepository defines data access for appointments.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindByDoctorAndDateRange returns appointments starting in [from, to), oldest first.
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error)
	// Create inserts appt unless an appointment with a blocking status
	// overlaps it, in which case repository.ErrSlotTaken is returned.
	Create(ctx context.Context, appt *models.Appointment, guard BookingGuard) error
	// UpdateStatus moves the appointment from one status to another.
	// repository.ErrStaleWrite is returned when it is no longer in from.
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error
	DistinctPatients(ctx context.Context, doctorID string, status models.AppointmentStatus) ([]string, error)
}
