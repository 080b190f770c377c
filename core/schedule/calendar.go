package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayMask is a set of weekdays, bit i set for time.Weekday(i).
type DayMask uint8

const (
	// Weekend is Saturday and Sunday.
	Weekend = DayMask(1<<time.Saturday | 1<<time.Sunday)
	// Weekdays is Monday to Friday.
	Weekdays = DayMask(1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday)
	// AllDays is every day of the week.
	AllDays = Weekend | Weekdays
)

var dayAbbrev = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MaskOf builds a DayMask from individual weekdays.
func MaskOf(days ...time.Weekday) DayMask {
	var m DayMask
	for _, d := range days {
		m |= 1 << d
	}
	return m
}

// Has reports whether d is in the mask.
func (m DayMask) Has(d time.Weekday) bool { return m&(1<<d) != 0 }

// Days lists the weekdays in the mask, Sunday first.
func (m DayMask) Days() []time.Weekday {
	var out []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if m.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String renders the mask as "Sun/Mon/...", the same format ParseDayMask reads.
func (m DayMask) String() string {
	names := make([]string, 0, 7)
	for _, d := range m.Days() {
		names = append(names, dayAbbrev[d])
	}
	return strings.Join(names, "/")
}

// ParseDayMask reads a "/" separated list of three-letter day names, for
// example "Sat/Sun". Names are case-insensitive.
func ParseDayMask(s string) (DayMask, error) {
	var m DayMask
	for _, part := range strings.Split(s, "/") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		found := false
		for i, abbrev := range dayAbbrev {
			if strings.EqualFold(name, abbrev) {
				m |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown day %q", name)
		}
	}
	if m == 0 {
		return 0, fmt.Errorf("no days in %q", s)
	}
	return m, nil
}

// MonthDay is a calendar date without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (d MonthDay) ordinal() int { return int(d.Month)*100 + d.Day }

func (d MonthDay) String() string { return fmt.Sprintf("%d/%d", d.Month, d.Day) }

// ParseMonthDay reads "M/D". February 29 is accepted.
func ParseMonthDay(s string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("invalid date %q: want month/day", s)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return MonthDay{}, fmt.Errorf("invalid month in %q", s)
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	// 2024 is a leap year, so February allows 29.
	last := time.Date(2024, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if err != nil || day < 1 || day > last {
		return MonthDay{}, fmt.Errorf("invalid day in %q", s)
	}
	return MonthDay{Month: time.Month(month), Day: day}, nil
}

// DateRange is an inclusive range of dates without a year. A range whose
// start is after its end wraps over the new year.
type DateRange struct {
	Start MonthDay
	End   MonthDay
}

// ParseDateRange reads "M/D-M/D", for example "12/1-2/28".
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("invalid date range %q: want start-end", s)
	}
	start, err := ParseMonthDay(parts[0])
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseMonthDay(parts[1])
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether the month and day of t fall in the range.
func (r DateRange) Contains(t time.Time) bool {
	x := MonthDay{Month: t.Month(), Day: t.Day()}.ordinal()
	s, e := r.Start.ordinal(), r.End.ordinal()
	if s <= e {
		return x >= s && x <= e
	}
	return x >= s || x <= e
}

func (r DateRange) String() string { return r.Start.String() + "-" + r.End.String() }

// MarshalText renders the mask as "Sun/Sat".
func (m DayMask) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText parses "Sun/Sat".
func (m *DayMask) UnmarshalText(b []byte) error {
	v, err := ParseDayMask(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText renders the range as "M/D-M/D".
func (r DateRange) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText parses "M/D-M/D".
func (r *DateRange) UnmarshalText(b []byte) error {
	v, err := ParseDateRange(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
