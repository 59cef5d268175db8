package models

import "time"

// Medicine is one line of a prescription.
type Medicine struct {
	Name      string `bson:"name" json:"name"`
	Dosage    string `bson:"dosage" json:"dosage"`
	Frequency string `bson:"frequency" json:"frequency"`
}

// Prescription is issued by a doctor for a completed appointment.
type Prescription struct {
	ID            string     `bson:"id" json:"id"`
	AppointmentID string     `bson:"appointmentId" json:"appointmentId"`
	PatientID     string     `bson:"patientId" json:"patientId"`
	DoctorID      string     `bson:"doctorId" json:"doctorId"`
	Symptoms      string     `bson:"symptoms" json:"symptoms"`
	Diagnosis     string     `bson:"diagnosis" json:"diagnosis"`
	Medicines     []Medicine `bson:"medicines" json:"medicines"`
	Notes         string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type CreatePrescriptionRequest struct {
	AppointmentID string     `json:"appointmentId" binding:"required"`
	Symptoms      string     `json:"symptoms"`
	Diagnosis     string     `json:"diagnosis"`
	Medicines     []Medicine `json:"medicines"`
	Notes         string     `json:"notes"`
}
