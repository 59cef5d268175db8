package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "reminder:appointment"

// NewReminderTask builds the reminder for one appointment. The task ID is
// derived from the appointment so a reminder is never queued twice.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(TypeAppointmentReminder + ":" + payload.AppointmentID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues appointment reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt models.Appointment, doctorName string) error
}

type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

func NewReminderScheduler(client Enqueuer, lead time.Duration) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client, Lead: lead, Now: time.Now}
}

// ScheduleReminder queues a reminder Lead before the appointment. Reminders
// whose fire time has passed are skipped.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment, doctorName string) error {
	fireAt := appt.Time.Add(-s.Lead)
	if !fireAt.After(s.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Title:         "Upcoming appointment",
		Body:          fmt.Sprintf("Your appointment with %s starts at %s", doctorName, appt.Time.UTC().Format(time.RFC3339)),
		FireDate:      fireAt.UTC().Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// AppointmentReader reloads an appointment when its reminder fires.
type AppointmentReader interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
}

// Notifier delivers a reminder to its recipient.
type Notifier interface {
	SendUserNotification(ctx context.Context, userID, title, body string, data map[string]string) error
}

// HandleReminderTask notifies the patient if the appointment is still booked.
func HandleReminderTask(appts AppointmentReader, notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		appt, err := appts.GetByID(ctx, p.AppointmentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		if appt.Status != models.StatusBooked {
			return nil
		}

		data := map[string]string{
			"appointmentId": p.AppointmentID,
			"doctorId":      p.DoctorID,
			"fireDate":      p.FireDate,
		}
		return notifier.SendUserNotification(ctx, p.PatientID, p.Title, p.Body, data)
	}
}
