package handlers

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Auth          *AuthHandler
	Doctors       *DoctorHandler
	Availability  *AvailabilityHandler
	Appointments  *AppointmentHandler
	Prescriptions *PrescriptionHandler
	Dashboard     *DashboardHandler
}
