package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinixsphere/database/repository"
	appointmentRepo "clinixsphere/database/repository/appointment"
	"clinixsphere/models"
	"clinixsphere/utils"
)

// farFuture closes an open-ended listing range.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// DefaultSchedulingEngine implements SchedulingEngine. It never logs; every
// failure is returned to the caller.
type DefaultSchedulingEngine struct {
	Doctors      DoctorDirectory
	Availability AvailabilityStore
	Appointments AppointmentStore
	opts         Options
}

// NewSchedulingEngine wires the engine to its collaborators.
func NewSchedulingEngine(doctors DoctorDirectory, availability AvailabilityStore, appointments AppointmentStore, opts Options) *DefaultSchedulingEngine {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Duration <= 0 {
		opts.Duration = utils.AppointmentDuration
	}
	return &DefaultSchedulingEngine{
		Doctors:      doctors,
		Availability: availability,
		Appointments: appointments,
		opts:         opts,
	}
}

// BookAppointment reserves [start, start+duration) with the doctor. Checks run
// in a fixed order and the first failure is returned.
func (se *DefaultSchedulingEngine) BookAppointment(ctx context.Context, patientID, doctorID string, start time.Time) (*models.Appointment, error) {
	check := func() error {
		if start.IsZero() {
			return errInvalidTime
		}
		return nil
	}
	resolve := func(*time.Location) time.Time { return start }
	return se.book(ctx, patientID, doctorID, check, resolve)
}

// BookAppointmentAt books from a requested time string. RFC 3339 values are
// absolute. A value without an offset is wall-clock time in the doctor's
// timezone.
func (se *DefaultSchedulingEngine) BookAppointmentAt(ctx context.Context, patientID, doctorID, requested string) (*models.Appointment, error) {
	check := func() error {
		if _, err := utils.ParseRequestedTime(requested, time.UTC); err != nil {
			return errInvalidTime
		}
		return nil
	}
	resolve := func(loc *time.Location) time.Time {
		t, _ := utils.ParseRequestedTime(requested, loc)
		return t
	}
	return se.book(ctx, patientID, doctorID, check, resolve)
}

// book runs the booking checks. checkTime validates the requested time in its
// place in the order, and resolve turns it into an instant once the doctor's
// location is known.
func (se *DefaultSchedulingEngine) book(ctx context.Context, patientID, doctorID string, checkTime func() error, resolve func(*time.Location) time.Time) (*models.Appointment, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, errInvalidPatientID
	}
	if !utils.IsValidID(doctorID) {
		return nil, errInvalidDoctorID
	}
	if err := checkTime(); err != nil {
		return nil, err
	}

	doctor, err := se.Doctors.FindDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve doctor %s: %w", doctorID, err)
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, errDoctorNotFound
	}

	availability, err := se.Availability.GetAvailability(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability for doctor %s: %w", doctorID, err)
	}
	if availability == nil {
		return nil, errNoAvailability
	}

	loc := se.locationFor(availability)
	start := resolve(loc)
	req := interval{start: start, end: start.Add(se.opts.Duration)}
	day := utils.StartOfDay(start, loc)
	date := day.Format(utils.DateLayout)

	if availability.IsClosed(date) {
		return nil, errDoctorUnavailable
	}

	if !withinWorkingHours(availability.Week.Day(day.Weekday()), day, req) {
		return nil, errOutsideHours
	}

	existing, err := se.Appointments.FindByDoctorAndDateRange(ctx, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for doctor %s: %w", doctorID, err)
	}
	for _, a := range existing {
		if !se.blocks(a.Status) {
			continue
		}
		if overlaps(req, interval{start: a.Time, end: a.End(se.opts.Duration)}) {
			return nil, errSlotTaken
		}
	}

	appt := &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Time:      start.UTC(),
		Status:    models.StatusBooked,
	}
	guard := appointmentRepo.BookingGuard{
		LockKey:  doctorID + ":" + date,
		Duration: se.opts.Duration,
		Blocking: se.blockingStatuses(),
	}
	if err := se.Appointments.Create(ctx, appt, guard); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, errSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// SetAppointmentStatus completes or cancels a booked appointment owned by doctorID.
func (se *DefaultSchedulingEngine) SetAppointmentStatus(ctx context.Context, doctorID, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if status != models.StatusCompleted && status != models.StatusCancelled {
		return nil, errInvalidStatus
	}

	appt, err := se.Appointments.GetByID(ctx, appointmentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errApptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment %s: %w", appointmentID, err)
	}
	if appt.DoctorID != doctorID {
		return nil, errNotYourAppt
	}
	if appt.Status != models.StatusBooked {
		return nil, errAlreadyFinal
	}

	if err := se.Appointments.UpdateStatus(ctx, appt.ID, models.StatusBooked, status); err != nil {
		if errors.Is(err, repository.ErrStaleWrite) {
			return nil, errAlreadyFinal
		}
		return nil, fmt.Errorf("failed to update appointment %s: %w", appointmentID, err)
	}
	appt.Status = status
	appt.UpdatedAt = time.Now().UTC()
	return appt, nil
}

// ListAppointmentsForDoctor returns the doctor's appointments in window,
// oldest first.
func (se *DefaultSchedulingEngine) ListAppointmentsForDoctor(ctx context.Context, doctorID string, window DateRange) ([]models.Appointment, error) {
	to := window.To
	if to.IsZero() {
		to = farFuture
	}
	if !window.From.IsZero() && !window.From.Before(to) {
		return nil, utils.NewAppError(utils.KindInvalidInput, "from must be before to")
	}
	appts, err := se.Appointments.FindByDoctorAndDateRange(ctx, doctorID, window.From, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for doctor %s: %w", doctorID, err)
	}
	sortByTime(appts)
	return appts, nil
}

// ListAppointmentsForPatient returns the patient's appointments, oldest first.
func (se *DefaultSchedulingEngine) ListAppointmentsForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appts, err := se.Appointments.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for patient %s: %w", patientID, err)
	}
	sortByTime(appts)
	return appts, nil
}

func (se *DefaultSchedulingEngine) locationFor(availability *models.WeeklyAvailability) *time.Location {
	if availability == nil || availability.Timezone == "" {
		return se.opts.Location
	}
	loc, err := time.LoadLocation(availability.Timezone)
	if err != nil {
		return se.opts.Location
	}
	return loc
}

func (se *DefaultSchedulingEngine) blocks(status models.AppointmentStatus) bool {
	return status != models.StatusCancelled || se.opts.CancelledBlocks
}

func (se *DefaultSchedulingEngine) blockingStatuses() []models.AppointmentStatus {
	statuses := []models.AppointmentStatus{models.StatusBooked, models.StatusCompleted}
	if se.opts.CancelledBlocks {
		statuses = append(statuses, models.StatusCancelled)
	}
	return statuses
}

func sortByTime(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Time.Before(appts[j].Time)
	})
}
