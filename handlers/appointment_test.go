package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinixsphere/middleware"
	"clinixsphere/models"
	"clinixsphere/services/booking"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	bookErr   error
	statusErr error
	requested []string
	window    booking.DateRange
	appts     []models.Appointment
}

func (s *stubEngine) BookAppointment(_ context.Context, patientID, doctorID string, start time.Time) (*models.Appointment, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &models.Appointment{ID: "a1", PatientID: patientID, DoctorID: doctorID, Time: start, Status: models.StatusBooked}, nil
}

func (s *stubEngine) BookAppointmentAt(ctx context.Context, patientID, doctorID, requested string) (*models.Appointment, error) {
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	s.requested = append(s.requested, requested)
	start, err := utils.ParseRequestedTime(requested, time.UTC)
	if err != nil {
		return nil, utils.NewAppError(utils.KindInvalidInput, "Invalid appointment time")
	}
	return s.BookAppointment(ctx, patientID, doctorID, start)
}

func (s *stubEngine) SetAppointmentStatus(_ context.Context, doctorID, id string, status models.AppointmentStatus) (*models.Appointment, error) {
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	return &models.Appointment{ID: id, DoctorID: doctorID, Status: status}, nil
}

func (s *stubEngine) ListAppointmentsForDoctor(_ context.Context, _ string, window booking.DateRange) ([]models.Appointment, error) {
	s.window = window
	return s.appts, nil
}

func (s *stubEngine) ListAppointmentsForPatient(_ context.Context, _ string) ([]models.Appointment, error) {
	return s.appts, nil
}

type stubReminders struct {
	scheduled []string
}

func (s *stubReminders) ScheduleReminder(_ context.Context, appt models.Appointment, doctorName string) error {
	s.scheduled = append(s.scheduled, appt.ID+"/"+doctorName)
	return nil
}

type stubUsers map[string]models.PublicUser

func (s stubUsers) GetUsers(_ context.Context, ids []string) (map[string]models.PublicUser, error) {
	out := map[string]models.PublicUser{}
	for _, id := range ids {
		if u, ok := s[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func appointmentRouter(h *AppointmentHandler, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Next()
	})
	r.POST("/appointments", h.Book)
	r.GET("/appointments/mine", h.ListForDoctor)
	r.PATCH("/appointments/:id/status", h.UpdateStatus)
	return r
}

func do(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBook(t *testing.T) {
	engine := &stubEngine{}
	reminders := &stubReminders{}
	users := stubUsers{"doc": {ID: "doc", Name: "Dr Who"}}
	r := appointmentRouter(NewAppointmentHandler(engine, reminders, users, time.UTC), "pat")

	w := do(r, http.MethodPost, "/appointments", gin.H{"doctorId": "doc", "time": "2025-01-06T09:00"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"a1/Dr Who"}, reminders.scheduled)
	// the raw wall-clock string reaches the engine untouched
	assert.Equal(t, []string{"2025-01-06T09:00"}, engine.requested)

	w = do(r, http.MethodPost, "/appointments", gin.H{"doctorId": "doc", "time": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/appointments", gin.H{"doctorId": "doc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBook_ErrorMapping(t *testing.T) {
	cases := map[utils.ErrorKind]int{
		utils.KindInvalidInput:        http.StatusBadRequest,
		utils.KindNotFound:            http.StatusNotFound,
		utils.KindAvailabilityMissing: http.StatusBadRequest,
		utils.KindDoctorUnavailable:   http.StatusBadRequest,
		utils.KindOutsideWorkingHours: http.StatusBadRequest,
		utils.KindSlotConflict:        http.StatusConflict,
	}
	for kind, status := range cases {
		engine := &stubEngine{bookErr: utils.NewAppError(kind, string(kind))}
		reminders := &stubReminders{}
		r := appointmentRouter(NewAppointmentHandler(engine, reminders, stubUsers{}, time.UTC), "pat")

		w := do(r, http.MethodPost, "/appointments", gin.H{"doctorId": "doc", "time": "2025-01-06T09:00:00Z"})
		assert.Equal(t, status, w.Code, kind)
		assert.Empty(t, reminders.scheduled, "no reminder for failed bookings")

		var body utils.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, string(kind), body.Details)
	}
}

func TestUpdateStatus(t *testing.T) {
	engine := &stubEngine{}
	r := appointmentRouter(NewAppointmentHandler(engine, nil, stubUsers{}, time.UTC), "doc")

	w := do(r, http.MethodPatch, "/appointments/a1/status", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusOK, w.Code)

	engine.statusErr = utils.NewAppError(utils.KindForbidden, "nope")
	w = do(r, http.MethodPatch, "/appointments/a1/status", gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListForDoctor(t *testing.T) {
	engine := &stubEngine{appts: []models.Appointment{{ID: "a1", PatientID: "p1"}}}
	users := stubUsers{"p1": {ID: "p1", Name: "Pat"}}
	r := appointmentRouter(NewAppointmentHandler(engine, nil, users, time.UTC), "doc")

	w := do(r, http.MethodGet, "/appointments/mine?from=2025-01-06&to=2025-01-06", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), engine.window.From)
	assert.Equal(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), engine.window.To)

	var views []models.AppointmentView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Patient)
	assert.Equal(t, "Pat", views[0].Patient.Name)

	w = do(r, http.MethodGet, "/appointments/mine?from=06-01-2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
