package schedule

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time in minutes since midnight. EndOfDay (24:00) is
// the only value allowed at 24 hours.
type TimeOfDay int

const (
	// Midnight is 00:00.
	Midnight TimeOfDay = 0
	// EndOfDay is 24:00, the upper bound of every day profile.
	EndOfDay TimeOfDay = 24 * 60
)

// Clock builds a TimeOfDay from hour and minute.
func Clock(hour, minute int) TimeOfDay { return TimeOfDay(hour*60 + minute) }

// At returns the time of day of t, ignoring seconds.
func At(t time.Time) TimeOfDay { return Clock(t.Hour(), t.Minute()) }

// Hours returns t as decimal hours.
func (t TimeOfDay) Hours() float64 { return float64(t) / 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseTimeOfDay parses "H:MM", "HH:MM" or "HH:MM:00". Hour 24 is only
// accepted as 24:00.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	v := strings.TrimSpace(s)
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, &TimeFormatError{Value: s, Reason: "want hour:minute"}
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, &TimeFormatError{Value: s, Reason: "seconds must be 00"}
		}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &TimeFormatError{Value: s, Reason: "hour is not a number"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, &TimeFormatError{Value: s, Reason: "minute must be two digits"}
	}
	return checkClock(s, hour, minute)
}

// FromHours converts decimal hours (8.5 is 08:30) to a TimeOfDay, rounding
// to the nearest minute.
func FromHours(h float64) (TimeOfDay, error) {
	raw := strconv.FormatFloat(h, 'f', -1, 64)
	if math.IsNaN(h) || h < 0 {
		return 0, &TimeFormatError{Value: raw, Reason: "out of range"}
	}
	total := int(math.Round(h * 60))
	return checkClock(raw, total/60, total%60)
}

func checkClock(raw string, hour, minute int) (TimeOfDay, error) {
	switch {
	case hour < 0 || hour > 24:
		return 0, &TimeFormatError{Value: raw, Reason: "hour out of range"}
	case minute < 0 || minute > 59:
		return 0, &TimeFormatError{Value: raw, Reason: "minute out of range"}
	case hour == 24 && minute != 0:
		return 0, &TimeFormatError{Value: raw, Reason: "only 24:00 is allowed at hour 24"}
	}
	return Clock(hour, minute), nil
}

// MarshalText renders t as HH:MM.
func (t TimeOfDay) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText parses HH:MM.
func (t *TimeOfDay) UnmarshalText(b []byte) error {
	v, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
