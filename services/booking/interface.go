package booking

import (
	"context"
	"time"

	appointmentRepo "clinixsphere/database/repository/appointment"
	"clinixsphere/models"
)

// DoctorDirectory resolves doctor accounts. A missing user is reported as
// (nil, nil).
type DoctorDirectory interface {
	FindDoctor(ctx context.Context, id string) (*models.User, error)
}

// AvailabilityStore returns a doctor's weekly availability, or (nil, nil)
// when none has been set.
type AvailabilityStore interface {
	GetAvailability(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error)
}

// AppointmentStore is the subset of the appointment repository the engine uses.
type AppointmentStore interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment, guard appointmentRepo.BookingGuard) error
	UpdateStatus(ctx context.Context, id string, from, to models.AppointmentStatus) error
}

// SchedulingEngine books appointments and moves them through their lifecycle.
type SchedulingEngine interface {
	BookAppointment(ctx context.Context, patientID, doctorID string, start time.Time) (*models.Appointment, error)
	BookAppointmentAt(ctx context.Context, patientID, doctorID, requested string) (*models.Appointment, error)
	SetAppointmentStatus(ctx context.Context, doctorID, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error)
	ListAppointmentsForDoctor(ctx context.Context, doctorID string, window DateRange) ([]models.Appointment, error)
	ListAppointmentsForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// DateRange bounds a listing to [From, To). A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Options tunes the engine.
type Options struct {
	// Location is used when an availability record has no timezone.
	Location *time.Location
	// CancelledBlocks makes cancelled appointments occupy their window.
	CancelledBlocks bool
	// Duration of every appointment.
	Duration time.Duration
}
