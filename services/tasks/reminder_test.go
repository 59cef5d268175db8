package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"clinixsphere/database/repository"
	"clinixsphere/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	r.opts = append(r.opts, opts)
	return &asynq.TaskInfo{ID: "x"}, nil
}

func optionValue(opts []asynq.Option, kind asynq.OptionType) interface{} {
	for _, o := range opts {
		if o.Type() == kind {
			return o.Value()
		}
	}
	return nil
}

var now = time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)

func TestScheduleReminder(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewReminderScheduler(enq, time.Hour)
	s.Now = func() time.Time { return now }

	appt := models.Appointment{ID: "a1", PatientID: "p1", DoctorID: "d1", Time: now.Add(3 * time.Hour)}
	require.NoError(t, s.ScheduleReminder(context.Background(), appt, "Dr Who"))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TypeAppointmentReminder, enq.tasks[0].Type())
	assert.Equal(t, now.Add(2*time.Hour), optionValue(enq.opts[0], asynq.ProcessAtOpt))
	assert.Equal(t, "reminder:appointment:a1", optionValue(enq.opts[0], asynq.TaskIDOpt))

	var p models.ReminderPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
	assert.Equal(t, "p1", p.PatientID)
	assert.Contains(t, p.Body, "Dr Who")
}

func TestScheduleReminder_SkipsPastFireTime(t *testing.T) {
	enq := &recordingEnqueuer{}
	s := NewReminderScheduler(enq, time.Hour)
	s.Now = func() time.Time { return now }

	appt := models.Appointment{ID: "a1", Time: now.Add(30 * time.Minute)}
	require.NoError(t, s.ScheduleReminder(context.Background(), appt, "Dr Who"))
	assert.Empty(t, enq.tasks)
}

func TestScheduleReminder_DuplicateIsNotAnError(t *testing.T) {
	enq := &recordingEnqueuer{err: asynq.ErrTaskIDConflict}
	s := NewReminderScheduler(enq, time.Hour)
	s.Now = func() time.Time { return now }

	appt := models.Appointment{ID: "a1", Time: now.Add(3 * time.Hour)}
	assert.NoError(t, s.ScheduleReminder(context.Background(), appt, "Dr Who"))
}

type stubAppointments map[string]models.Appointment

func (s stubAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	a, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

type recordingNotifier struct {
	sent []string
}

func (r *recordingNotifier) SendUserNotification(_ context.Context, userID, _, _ string, _ map[string]string) error {
	r.sent = append(r.sent, userID)
	return nil
}

func reminderFor(t *testing.T, apptID string) *asynq.Task {
	t.Helper()
	task, _, err := NewReminderTask(models.ReminderPayload{AppointmentID: apptID, PatientID: "p1", Title: "t", Body: "b"}, now)
	require.NoError(t, err)
	return task
}

func TestHandleReminderTask(t *testing.T) {
	appts := stubAppointments{
		"booked":    {ID: "booked", Status: models.StatusBooked},
		"cancelled": {ID: "cancelled", Status: models.StatusCancelled},
	}
	notifier := &recordingNotifier{}
	handler := HandleReminderTask(appts, notifier)
	ctx := context.Background()

	require.NoError(t, handler(ctx, reminderFor(t, "booked")))
	require.NoError(t, handler(ctx, reminderFor(t, "cancelled")))
	require.NoError(t, handler(ctx, reminderFor(t, "gone")))
	assert.Equal(t, []string{"p1"}, notifier.sent)

	err := handler(ctx, asynq.NewTask(TypeAppointmentReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
