package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is one reserved 30-minute window with a doctor.
// The duration is implicit and never stored.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	PatientID string            `bson:"patientId" json:"patientId"`
	DoctorID  string            `bson:"doctorId" json:"doctorId"`
	Time      time.Time         `bson:"time" json:"time"`
	Status    AppointmentStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// End returns the exclusive end of the appointment window.
func (a Appointment) End(duration time.Duration) time.Time {
	return a.Time.Add(duration)
}

type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

// AppointmentView decorates an appointment with the counterpart's details.
type AppointmentView struct {
	Appointment
	Patient *PublicUser `json:"patient,omitempty"`
	Doctor  *PublicUser `json:"doctor,omitempty"`
}
