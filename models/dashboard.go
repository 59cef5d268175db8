package models

// Overview summarises a doctor's appointment activity.
type Overview struct {
	TotalAppointments      int                       `json:"totalAppointments"`
	StatusCounts           map[AppointmentStatus]int `json:"statusCounts"`
	Upcoming               int                       `json:"upcoming"`
	TodayAppointmentsCount int                       `json:"todayAppointmentsCount"`
	UniquePatients         int                       `json:"uniquePatients"`
	AppointmentsNext7Days  map[string]int            `json:"appointmentsNext7Days"`
}

// PatientHistory is everything a doctor has on record for one patient.
type PatientHistory struct {
	Appointments  []Appointment  `json:"appointments"`
	Prescriptions []Prescription `json:"prescriptions"`
}
