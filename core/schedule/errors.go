package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MissingFieldError is returned when a schedule row lacks a required field.
type MissingFieldError struct {
	Row   int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// TimeFormatError is returned for a time-of-day that cannot be parsed or is
// outside 00:00..24:00.
type TimeFormatError struct {
	Value  string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Value, e.Reason)
}

// ConflictingBreakpointError is returned when two breakpoints of one profile
// end at the same time with different values.
type ConflictingBreakpointError struct {
	Profile string
	At      TimeOfDay
	Values  [2]float64
}

func (e *ConflictingBreakpointError) Error() string {
	return fmt.Sprintf("profile %q: conflicting values %g and %g at %s",
		e.Profile, e.Values[0], e.Values[1], e.At)
}

// IncompleteProfileError is returned when a profile does not reach 24:00.
type IncompleteProfileError struct {
	Profile string
	End     TimeOfDay
}

func (e *IncompleteProfileError) Error() string {
	return fmt.Sprintf("profile %q ends at %s, want %s", e.Profile, e.End, EndOfDay)
}

// UnknownDayTypeError is returned for a day-type label outside the
// dispatcher's vocabulary.
type UnknownDayTypeError struct {
	Label string
}

func (e *UnknownDayTypeError) Error() string {
	return fmt.Sprintf("unknown day type %q", e.Label)
}

// EmptyRulesetError is returned when a group has no default day profile.
type EmptyRulesetError struct {
	Key string
}

func (e *EmptyRulesetError) Error() string {
	return fmt.Sprintf("ruleset %q has no default day", e.Key)
}

// ErrorKind returns a stable label for err, suitable for metrics.
func ErrorKind(err error) string {
	var (
		mf *MissingFieldError
		tf *TimeFormatError
		cb *ConflictingBreakpointError
		ip *IncompleteProfileError
		ud *UnknownDayTypeError
		er *EmptyRulesetError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &mf):
		return "missing_field"
	case errors.As(err, &tf):
		return "time_format"
	case errors.As(err, &cb):
		return "conflicting_breakpoint"
	case errors.As(err, &ip):
		return "incomplete_profile"
	case errors.As(err, &ud):
		return "unknown_day_type"
	case errors.As(err, &er):
		return "empty_ruleset"
	default:
		return "other"
	}
}

// BatchError collects per-ruleset failures of a collect-mode compilation.
type BatchError struct {
	Errors map[string]error
}

// Keys returns the failed ruleset keys in sorted order.
func (e *BatchError) Keys() []string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *BatchError) Error() string {
	keys := e.Keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, e.Errors[k]))
	}
	return fmt.Sprintf("%d ruleset(s) failed: %s", len(keys), strings.Join(parts, "; "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, k := range e.Keys() {
		out = append(out, e.Errors[k])
	}
	return out
}
