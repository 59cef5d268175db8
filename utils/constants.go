// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "availability:"

// DefaultAvailabilityCacheTTL applies when AVAILABILITY_CACHE_TTL is unset.
const DefaultAvailabilityCacheTTL = 10 * time.Minute

// AppointmentDuration is the fixed length of every appointment.
const AppointmentDuration = 30 * time.Minute

// DateLayout is the calendar date format used for closed dates and day queries.
const DateLayout = "2006-01-02"
