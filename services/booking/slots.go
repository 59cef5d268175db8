package booking

import (
	"time"

	"clinixsphere/models"
	"clinixsphere/utils"
)

// interval is a half-open [start, end) span of absolute time.
type interval struct {
	start time.Time
	end   time.Time
}

// slotInterval anchors slot to the local calendar day starting at day.
// Minutes are added through time.Date so DST days keep wall-clock meaning.
func slotInterval(slot models.Slot, day time.Time) (interval, bool) {
	from, err := utils.ParseClock(slot.Start)
	if err != nil {
		return interval{}, false
	}
	to, err := utils.ParseClock(slot.End)
	if err != nil || from >= to {
		return interval{}, false
	}
	y, m, d := day.Date()
	loc := day.Location()
	return interval{
		start: time.Date(y, m, d, 0, from, 0, 0, loc),
		end:   time.Date(y, m, d, 0, to, 0, 0, loc),
	}, true
}

// contains is closed on both ends: a request may start exactly at the slot
// start and end exactly at the slot end.
func contains(outer, inner interval) bool {
	return !inner.start.Before(outer.start) && !inner.end.After(outer.end)
}

// overlaps is half-open: back-to-back windows do not collide.
func overlaps(a, b interval) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}

// withinWorkingHours reports whether req fits entirely inside one of slots.
func withinWorkingHours(slots []models.Slot, day time.Time, req interval) bool {
	for _, s := range slots {
		window, ok := slotInterval(s, day)
		if ok && contains(window, req) {
			return true
		}
	}
	return false
}
