package schedule

import (
	"fmt"
	"sort"
)

// RuleStrategy installs a day profile into a ruleset under construction.
// The set of strategies is closed: DefaultDay and OverrideRule.
type RuleStrategy interface {
	apply(b *rulesetBuilder, label string, p DayProfile)
}

// DefaultDay installs the profile as the ruleset's default day. A later
// default replaces an earlier one.
type DefaultDay struct{}

func (DefaultDay) apply(b *rulesetBuilder, label string, p DayProfile) {
	if b.defaultLabel != "" {
		b.overwritten = append(b.overwritten, b.defaultLabel)
	}
	b.rs.Default = p
	b.defaultLabel = label
}

// OverrideRule appends a rule applying the profile on Days, optionally
// limited to Dates.
type OverrideRule struct {
	Days  DayMask
	Dates *DateRange
}

func (o OverrideRule) apply(b *rulesetBuilder, _ string, p DayProfile) {
	var dates *DateRange
	if o.Dates != nil {
		d := *o.Dates
		dates = &d
	}
	b.rs.Rules = append(b.rs.Rules, ScheduleRule{
		Name:    p.Name + " Rule",
		Days:    o.Days,
		Dates:   dates,
		Profile: p,
	})
}

type rulesetBuilder struct {
	rs           Ruleset
	defaultLabel string
	overwritten  []string
}

func builtinDayTypes() map[string]RuleStrategy {
	return map[string]RuleStrategy{
		"weekdays": DefaultDay{},
		"default":  DefaultDay{},
		"weekend":  OverrideRule{Days: Weekend},
	}
}

// Dispatcher maps day-type labels to rule strategies. Labels outside the
// table are rejected.
type Dispatcher struct {
	table map[string]RuleStrategy
}

// NewDispatcher returns a dispatcher knowing weekdays, default and weekend.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{table: builtinDayTypes()}
}

// Register adds an override day type. Built-in and already registered
// labels cannot be redefined.
func (d *Dispatcher) Register(label string, rule OverrideRule) error {
	if label == "" {
		return fmt.Errorf("day type label is empty")
	}
	if _, ok := d.table[label]; ok {
		return fmt.Errorf("day type %q already defined", label)
	}
	if rule.Days == 0 {
		return fmt.Errorf("day type %q applies to no day", label)
	}
	d.table[label] = rule
	return nil
}

// Dispatch returns the strategy for label.
func (d *Dispatcher) Dispatch(label string) (RuleStrategy, error) {
	s, ok := d.table[label]
	if !ok {
		return nil, &UnknownDayTypeError{Label: label}
	}
	return s, nil
}

// Labels lists the known day-type labels in sorted order.
func (d *Dispatcher) Labels() []string {
	out := make([]string, 0, len(d.table))
	for l := range d.table {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
