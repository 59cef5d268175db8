package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clinixsphere/models"
	"clinixsphere/utils"
)

// daysAhead is how far appointmentsNext7Days looks, today included.
const daysAhead = 7

type AppointmentReader interface {
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	FindByDoctorAndDateRange(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error)
	FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error)
	DistinctPatients(ctx context.Context, doctorID string, status models.AppointmentStatus) ([]string, error)
}

type PrescriptionReader interface {
	FindByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Prescription, error)
}

type UserLookup interface {
	GetUsers(ctx context.Context, ids []string) (map[string]models.PublicUser, error)
}

type DashboardService interface {
	Overview(ctx context.Context, doctorID string, now time.Time) (*models.Overview, error)
	Schedule(ctx context.Context, doctorID, date string) ([]models.AppointmentView, error)
	Patients(ctx context.Context, doctorID string) ([]models.PublicUser, error)
	PatientHistory(ctx context.Context, doctorID, patientID string) (*models.PatientHistory, error)
}

// DefaultDashboardService computes every calendar boundary in Location.
type DefaultDashboardService struct {
	Appointments  AppointmentReader
	Prescriptions PrescriptionReader
	Users         UserLookup
	Location      *time.Location
	Now           func() time.Time
}

func NewDashboardService(appts AppointmentReader, prescriptions PrescriptionReader, users UserLookup, loc *time.Location) *DefaultDashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultDashboardService{
		Appointments:  appts,
		Prescriptions: prescriptions,
		Users:         users,
		Location:      loc,
		Now:           time.Now,
	}
}

// Overview summarises the doctor's appointments relative to now.
func (s *DefaultDashboardService) Overview(ctx context.Context, doctorID string, now time.Time) (*models.Overview, error) {
	appts, err := s.Appointments.FindByDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	today := utils.StartOfDay(now, s.Location)
	overview := &models.Overview{
		TotalAppointments: len(appts),
		StatusCounts: map[models.AppointmentStatus]int{
			models.StatusBooked:    0,
			models.StatusCompleted: 0,
			models.StatusCancelled: 0,
		},
		AppointmentsNext7Days: make(map[string]int, daysAhead+1),
	}
	for i := 0; i <= daysAhead; i++ {
		overview.AppointmentsNext7Days[today.AddDate(0, 0, i).Format(utils.DateLayout)] = 0
	}

	patients := map[string]struct{}{}
	for _, a := range appts {
		overview.StatusCounts[a.Status]++
		if a.Status == models.StatusBooked && !a.Time.Before(now) {
			overview.Upcoming++
		}
		if a.Status == models.StatusCompleted {
			patients[a.PatientID] = struct{}{}
		}

		key := a.Time.In(s.Location).Format(utils.DateLayout)
		if key == today.Format(utils.DateLayout) {
			overview.TodayAppointmentsCount++
		}
		if _, tracked := overview.AppointmentsNext7Days[key]; tracked {
			overview.AppointmentsNext7Days[key]++
		}
	}
	overview.UniquePatients = len(patients)
	return overview, nil
}

// Schedule lists one local day of appointments with patient details. An empty
// date means today.
func (s *DefaultDashboardService) Schedule(ctx context.Context, doctorID, date string) ([]models.AppointmentView, error) {
	var day time.Time
	if date == "" {
		day = utils.StartOfDay(s.Now(), s.Location)
	} else {
		parsed, err := utils.ParseDate(date, s.Location)
		if err != nil {
			return nil, utils.NewAppError(utils.KindInvalidInput, err.Error())
		}
		day = parsed
	}

	appts, err := s.Appointments.FindByDoctorAndDateRange(ctx, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	sort.SliceStable(appts, func(i, j int) bool { return appts[i].Time.Before(appts[j].Time) })

	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, a.PatientID)
	}
	users, err := s.Users.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		view := models.AppointmentView{Appointment: a}
		if u, ok := users[a.PatientID]; ok {
			view.Patient = &u
		}
		views = append(views, view)
	}
	return views, nil
}

// Patients lists everyone the doctor has completed an appointment with.
func (s *DefaultDashboardService) Patients(ctx context.Context, doctorID string) ([]models.PublicUser, error) {
	ids, err := s.Appointments.DistinctPatients(ctx, doctorID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.GetUsers(ctx, ids)
	if err != nil {
		return nil, err
	}
	patients := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		patients = append(patients, u)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].Name < patients[j].Name })
	return patients, nil
}

func (s *DefaultDashboardService) PatientHistory(ctx context.Context, doctorID, patientID string) (*models.PatientHistory, error) {
	appts, err := s.Appointments.FindByDoctorAndPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool { return appts[i].Time.After(appts[j].Time) })

	prescriptions, err := s.Prescriptions.FindByDoctorAndPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	return &models.PatientHistory{Appointments: appts, Prescriptions: prescriptions}, nil
}
