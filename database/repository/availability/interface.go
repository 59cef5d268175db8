package availabilityRepo

import (
	"context"

	"clinixsphere/models"
)

// AvailabilityRepository stores one weekly availability record per doctor.
type AvailabilityRepository interface {
	// Get returns the doctor's record, or nil with no error when none exists.
	Get(ctx context.Context, doctorID string) (*models.WeeklyAvailability, error)
	// Put replaces the doctor's record, creating it if needed.
	Put(ctx context.Context, availability *models.WeeklyAvailability) error
}
