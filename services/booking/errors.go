package booking

import "clinixsphere/utils"

var (
	errInvalidDoctorID   = utils.NewAppError(utils.KindInvalidInput, "Invalid doctor id")
	errInvalidPatientID  = utils.NewAppError(utils.KindInvalidInput, "Invalid patient id")
	errInvalidTime       = utils.NewAppError(utils.KindInvalidInput, "Invalid appointment time")
	errDoctorNotFound    = utils.NewAppError(utils.KindNotFound, "Doctor not found")
	errNoAvailability    = utils.NewAppError(utils.KindAvailabilityMissing, "Doctor availability not set")
	errDoctorUnavailable = utils.NewAppError(utils.KindDoctorUnavailable, "Doctor unavailable on this date")
	errOutsideHours      = utils.NewAppError(utils.KindOutsideWorkingHours, "Selected time is outside doctor's working hours")
	errSlotTaken         = utils.NewAppError(utils.KindSlotConflict, "Slot already booked")
	errInvalidStatus     = utils.NewAppError(utils.KindInvalidStatus, "Invalid status")
	errAlreadyFinal      = utils.NewAppError(utils.KindInvalidStatus, "Appointment is already completed or cancelled")
	errApptNotFound      = utils.NewAppError(utils.KindNotFound, "Appointment not found")
	errNotYourAppt       = utils.NewAppError(utils.KindForbidden, "Appointment belongs to another doctor")
)
