package handlers

import (
	"context"
	"net/http"
	"time"

	"clinixsphere/models"
	"clinixsphere/services/booking"
	"clinixsphere/services/tasks"
	"clinixsphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLookup resolves user IDs for appointment views.
type UserLookup interface {
	GetUsers(ctx context.Context, ids []string) (map[string]models.PublicUser, error)
}

type AppointmentHandler struct {
	Engine    booking.SchedulingEngine
	Reminders tasks.ReminderScheduler
	Users     UserLookup
	Location  *time.Location
}

func NewAppointmentHandler(engine booking.SchedulingEngine, reminders tasks.ReminderScheduler, users UserLookup, loc *time.Location) *AppointmentHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentHandler{Engine: engine, Reminders: reminders, Users: users, Location: loc}
}

// Book handles POST /appointments for the calling patient.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req models.BookAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	logger := getLogger(c)
	// offset-less times are read in the doctor's timezone by the engine
	appt, err := h.Engine.BookAppointmentAt(c.Request.Context(), currentUserID(c), req.DoctorID, req.Time)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	logger.Info("Appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.Time("time", appt.Time))

	if h.Reminders != nil {
		doctorName := ""
		if users, err := h.Users.GetUsers(c.Request.Context(), []string{appt.DoctorID}); err == nil {
			doctorName = users[appt.DoctorID].Name
		}
		if err := h.Reminders.ScheduleReminder(c.Request.Context(), *appt, doctorName); err != nil {
			logger.Warn("Failed to schedule reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, appt)
}

// ListForDoctor handles GET /appointments/mine with optional from and to dates.
func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	var window booking.DateRange
	if from := c.Query("from"); from != "" {
		day, err := utils.ParseDate(from, h.Location)
		if err != nil {
			utils.RespondError(c, utils.NewAppError(utils.KindInvalidInput, err.Error()))
			return
		}
		window.From = day
	}
	if to := c.Query("to"); to != "" {
		day, err := utils.ParseDate(to, h.Location)
		if err != nil {
			utils.RespondError(c, utils.NewAppError(utils.KindInvalidInput, err.Error()))
			return
		}
		// to is inclusive of the whole day
		window.To = day.AddDate(0, 0, 1)
	}

	appts, err := h.Engine.ListAppointmentsForDoctor(c.Request.Context(), currentUserID(c), window)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondWithViews(c, appts, func(a models.Appointment) string { return a.PatientID }, true)
}

// ListForPatient handles GET /appointments/my-patient.
func (h *AppointmentHandler) ListForPatient(c *gin.Context) {
	appts, err := h.Engine.ListAppointmentsForPatient(c.Request.Context(), currentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.respondWithViews(c, appts, func(a models.Appointment) string { return a.DoctorID }, false)
}

// UpdateStatus handles PATCH /appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	appt, err := h.Engine.SetAppointmentStatus(c.Request.Context(), currentUserID(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Appointment status changed",
		zap.String("appointmentId", appt.ID), zap.String("status", string(appt.Status)))
	c.JSON(http.StatusOK, appt)
}

// respondWithViews decorates appts with the counterpart's public details.
func (h *AppointmentHandler) respondWithViews(c *gin.Context, appts []models.Appointment, counterpart func(models.Appointment) string, asPatient bool) {
	ids := make([]string, 0, len(appts))
	for _, a := range appts {
		ids = append(ids, counterpart(a))
	}
	users, err := h.Users.GetUsers(c.Request.Context(), ids)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	views := make([]models.AppointmentView, 0, len(appts))
	for _, a := range appts {
		view := models.AppointmentView{Appointment: a}
		if u, ok := users[counterpart(a)]; ok {
			if asPatient {
				view.Patient = &u
			} else {
				view.Doctor = &u
			}
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}
