package entity

import (
	"fmt"
)

// TimeOfDay is minutes since midnight. Bookings carry time-of-day values
// on a civil date, so plain minute arithmetic is enough for overlap checks.
type TimeOfDay int

// ParseTimeOfDay parses a zero-padded "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid time %s: expected quoted HH:MM", s)
	}
	parsed, err := ParseTimeOfDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeSlot is a half-open interval [Start, End) on some date.
type TimeSlot struct {
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not overlap, and a zero-length slot never overlaps anything.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if s.Start >= s.End || other.Start >= other.End {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// OperatingHours is the fixed grid of bookable slot boundaries, from config.
type OperatingHours struct {
	Open        TimeOfDay
	Close       TimeOfDay
	SlotMinutes int
}

// ValidSlot reports whether the slot lies on the grid inside opening hours
// with End strictly after Start.
func (h OperatingHours) ValidSlot(s TimeSlot) bool {
	if s.End <= s.Start {
		return false
	}
	if s.Start < h.Open || s.End > h.Close {
		return false
	}
	step := TimeOfDay(h.SlotMinutes)
	if step <= 0 {
		return false
	}
	return (s.Start-h.Open)%step == 0 && (s.End-h.Open)%step == 0
}

// Slots enumerates the full grid of unit-length slots for one day.
func (h OperatingHours) Slots() []TimeSlot {
	step := TimeOfDay(h.SlotMinutes)
	if step <= 0 || h.Close <= h.Open {
		return nil
	}
	var slots []TimeSlot
	for start := h.Open; start+step <= h.Close; start += step {
		slots = append(slots, TimeSlot{Start: start, End: start + step})
	}
	return slots
}
