package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// slotCount is the number of HH:MM tokens in a serialized schedule:
// an open and a close time for each of the seven weekdays.
const slotCount = 14

// TimeOfDay is a wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String returns the zero-padded HH:MM form of the time.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// before reports whether t is strictly earlier than other.
func (t TimeOfDay) before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// DayHours holds the opening and closing time for one weekday.
// An all-zero pair is the closed-all-day sentinel.
type DayHours struct {
	Open  TimeOfDay
	Close TimeOfDay
}

// Closed reports whether the day uses the 00:00/00:00 closed sentinel.
func (d DayHours) Closed() bool {
	return d.Open == (TimeOfDay{}) && d.Close == (TimeOfDay{})
}

// Schedule is a weekly opening-hours table, Monday first.
type Schedule [7]DayHours

// Parse validates and decodes the serialized 14-slot opening-hours string.
// The expected form is 14 HH:MM tokens joined by '/', ordered Monday open,
// Monday close, Tuesday open, and so on through Sunday close. Hours must be
// in [0,23] and minutes in [0,59]. No cross-field checks are applied: a
// close time earlier than the open time of the same day is accepted.
func Parse(raw string) (Schedule, error) {
	var s Schedule

	tokens := strings.Split(raw, "/")
	if len(tokens) != slotCount {
		return s, fmt.Errorf("opening hours must contain %d time slots, got %d", slotCount, len(tokens))
	}

	for i, token := range tokens {
		tod, err := parseTimeOfDay(token)
		if err != nil {
			return Schedule{}, fmt.Errorf("slot %d: %w", i, err)
		}
		if i%2 == 0 {
			s[i/2].Open = tod
		} else {
			s[i/2].Close = tod
		}
	}

	return s, nil
}

// parseTimeOfDay decodes a single HH:MM token.
func parseTimeOfDay(token string) (TimeOfDay, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", token)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q", token)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q", token)
	}

	if hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour %d out of range [0,23]", hour)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute %d out of range [0,59]", minute)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String serializes the schedule back to its canonical 14-token wire form.
// Round-trips with Parse for canonical zero-padded input.
func (s Schedule) String() string {
	tokens := make([]string, 0, slotCount)
	for _, day := range s {
		tokens = append(tokens, day.Open.String(), day.Close.String())
	}
	return strings.Join(tokens, "/")
}

// OpenAt reports whether the schedule is open at the given instant.
//
// The weekday index is Monday-based. A day carrying the 00:00/00:00 sentinel
// is closed regardless of the time asked. Otherwise the time of day must fall
// inside [open, close], inclusive on both ends. The comparison is same-day
// only: a window whose close time is numerically earlier than its open time
// is empty and never matches.
func (s Schedule) OpenAt(at time.Time) bool {
	day := s[mondayIndex(at.Weekday())]
	if day.Closed() {
		return false
	}

	now := TimeOfDay{Hour: at.Hour(), Minute: at.Minute()}
	if now.before(day.Open) {
		return false
	}
	if day.Close.before(now) {
		return false
	}
	return true
}

// mondayIndex converts Go's Sunday-based weekday to a Monday=0 index.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
