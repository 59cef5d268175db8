package booking

import (
	"context"
	"sync"
	"time"

	"clinixsphere/database/repository"
	appointmentRepo "clinixsphere/database/repository/appointment"
	"clinixsphere/models"

	"github.com/google/uuid"
)

type fakeDirectory struct {
	users map[string]*models.User
}

func (f *fakeDirectory) FindDoctor(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

type fakeAvailability struct {
	records map[string]*models.WeeklyAvailability
}

func (f *fakeAvailability) GetAvailability(_ context.Context, doctorID string) (*models.WeeklyAvailability, error) {
	return f.records[doctorID], nil
}

// fakeAppointments mirrors the transactional repository: Create re-checks
// overlap under a single lock.
type fakeAppointments struct {
	mu    sync.Mutex
	appts []models.Appointment
	// beforeCreate runs after the engine's own overlap check and before commit.
	beforeCreate func()
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAppointments) FindByDoctorAndDateRange(_ context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.appts {
		if a.DoctorID == doctorID && !a.Time.Before(from) && a.Time.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) FindByPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range f.appts {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) Create(_ context.Context, appt *models.Appointment, guard appointmentRepo.BookingGuard) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.DoctorID != appt.DoctorID || !statusIn(a.Status, guard.Blocking) {
			continue
		}
		if a.Time.Before(appt.Time.Add(guard.Duration)) && appt.Time.Before(a.Time.Add(guard.Duration)) {
			return repository.ErrSlotTaken
		}
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id string, from, to models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appts {
		if f.appts[i].ID == id {
			if f.appts[i].Status != from {
				return repository.ErrStaleWrite
			}
			f.appts[i].Status = to
			return nil
		}
	}
	return repository.ErrStaleWrite
}

func (f *fakeAppointments) add(appt models.Appointment) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	f.appts = append(f.appts, appt)
	return appt
}

func statusIn(s models.AppointmentStatus, set []models.AppointmentStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
