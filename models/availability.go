package models

import "time"

// Slot is a local time-of-day window, both ends formatted "HH:mm".
type Slot struct {
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// Week maps each weekday key to the windows a doctor accepts bookings in.
type Week struct {
	Mon []Slot `bson:"mon" json:"mon"`
	Tue []Slot `bson:"tue" json:"tue"`
	Wed []Slot `bson:"wed" json:"wed"`
	Thu []Slot `bson:"thu" json:"thu"`
	Fri []Slot `bson:"fri" json:"fri"`
	Sat []Slot `bson:"sat" json:"sat"`
	Sun []Slot `bson:"sun" json:"sun"`
}

// Day returns the slots configured for the given weekday.
func (w Week) Day(d time.Weekday) []Slot {
	switch d {
	case time.Monday:
		return w.Mon
	case time.Tuesday:
		return w.Tue
	case time.Wednesday:
		return w.Wed
	case time.Thursday:
		return w.Thu
	case time.Friday:
		return w.Fri
	case time.Saturday:
		return w.Sat
	default:
		return w.Sun
	}
}

// Days lists every weekday with its slots, Monday first.
func (w Week) Days() map[time.Weekday][]Slot {
	return map[time.Weekday][]Slot{
		time.Monday:    w.Mon,
		time.Tuesday:   w.Tue,
		time.Wednesday: w.Wed,
		time.Thursday:  w.Thu,
		time.Friday:    w.Fri,
		time.Saturday:  w.Sat,
		time.Sunday:    w.Sun,
	}
}

// WeeklyAvailability is a doctor's recurring schedule plus closed dates.
// Timezone is an IANA name; empty means the clinic default.
type WeeklyAvailability struct {
	DoctorID    string    `bson:"doctorId" json:"doctorId"`
	Week        Week      `bson:"week" json:"week"`
	ClosedDates []string  `bson:"closedDates" json:"closedDates"`
	Timezone    string    `bson:"timezone,omitempty" json:"timezone,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsClosed reports whether date (YYYY-MM-DD) is a closed date.
func (a *WeeklyAvailability) IsClosed(date string) bool {
	for _, d := range a.ClosedDates {
		if d == date {
			return true
		}
	}
	return false
}

type SetAvailabilityRequest struct {
	Week        Week     `json:"week"`
	ClosedDates []string `json:"closedDates"`
	Timezone    string   `json:"timezone"`
}
