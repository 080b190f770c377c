package schedule

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Breakpoint means Value holds from the previous breakpoint (or 00:00) up
// to Until.
type Breakpoint struct {
	Until TimeOfDay `json:"until"`
	Value float64   `json:"value"`
}

// DayProfile is a piecewise-constant function over one day. Breakpoints are
// strictly increasing; a complete profile ends at EndOfDay.
type DayProfile struct {
	Name        string       `json:"name"`
	Breakpoints []Breakpoint `json:"breakpoints"`
}

// Complete reports whether the profile covers the whole day.
func (p DayProfile) Complete() bool {
	n := len(p.Breakpoints)
	return n > 0 && p.Breakpoints[n-1].Until == EndOfDay
}

// ValueAt returns the value active at t. ok is false when t lies past the
// last breakpoint of a partial profile.
func (p DayProfile) ValueAt(t TimeOfDay) (v float64, ok bool) {
	for _, bp := range p.Breakpoints {
		if t < bp.Until {
			return bp.Value, true
		}
	}
	return 0, false
}

// FullLoadHours integrates the profile over the day: the number of hours at
// value 1 that give the same total.
func (p DayProfile) FullLoadHours() float64 {
	if len(p.Breakpoints) == 0 {
		return 0
	}
	durations := make([]float64, len(p.Breakpoints))
	values := make([]float64, len(p.Breakpoints))
	prev := Midnight
	for i, bp := range p.Breakpoints {
		durations[i] = (bp.Until - prev).Hours()
		values[i] = bp.Value
		prev = bp.Until
	}
	return floats.Dot(durations, values)
}

type buildOptions struct {
	allowPartial bool
}

// BuildOption customises BuildProfile.
type BuildOption func(*buildOptions)

// AllowPartial accepts profiles that stop before 24:00.
func AllowPartial() BuildOption {
	return func(o *buildOptions) { o.allowPartial = true }
}

type parsedSegment struct {
	until TimeOfDay
	value float64
	row   int
}

// BuildProfile turns segments into a day profile. Segments are sorted by
// their To time; From is informational and gaps or overlaps are not
// checked. Two segments ending at the same time must carry the same value,
// in which case the duplicate is dropped.
func BuildProfile(name string, segments []Segment, opts ...BuildOption) (DayProfile, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	parsed := make([]parsedSegment, 0, len(segments))
	for _, s := range segments {
		until, err := ParseTimeOfDay(s.To)
		if err != nil {
			return DayProfile{}, fmt.Errorf("profile %q row %d: %w", name, s.Row, err)
		}
		if until == Midnight {
			return DayProfile{}, fmt.Errorf("profile %q row %d: %w", name, s.Row,
				&TimeFormatError{Value: s.To, Reason: "breakpoint must be after 00:00"})
		}
		parsed = append(parsed, parsedSegment{until: until, value: s.Value, row: s.Row})
	}
	slices.SortStableFunc(parsed, func(a, b parsedSegment) int { return int(a.until - b.until) })

	p := DayProfile{Name: name, Breakpoints: make([]Breakpoint, 0, len(parsed))}
	for _, s := range parsed {
		if n := len(p.Breakpoints); n > 0 && p.Breakpoints[n-1].Until == s.until {
			if prev := p.Breakpoints[n-1].Value; prev != s.value {
				return DayProfile{}, &ConflictingBreakpointError{Profile: name, At: s.until, Values: [2]float64{prev, s.value}}
			}
			continue
		}
		p.Breakpoints = append(p.Breakpoints, Breakpoint{Until: s.until, Value: s.value})
	}
	if !o.allowPartial && !p.Complete() {
		end := Midnight
		if n := len(p.Breakpoints); n > 0 {
			end = p.Breakpoints[n-1].Until
		}
		return DayProfile{}, &IncompleteProfileError{Profile: name, End: end}
	}
	return p, nil
}

// BuildHourProfile builds a complete profile from [hours, value] pairs,
// hours given as decimals (8.5 is 08:30).
func BuildHourProfile(name string, pairs [][]float64) (DayProfile, error) {
	segments := make([]Segment, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return DayProfile{}, fmt.Errorf("profile %q pair %d: want [hours, value]", name, i)
		}
		until, err := FromHours(pair[0])
		if err != nil {
			return DayProfile{}, fmt.Errorf("profile %q pair %d: %w", name, i, err)
		}
		segments = append(segments, Segment{To: until.String(), Value: pair[1], Row: i})
	}
	return BuildProfile(name, segments)
}
