package schedule

import (
	"errors"
	"fmt"
)

// DayDefinition is a labelled list of [hours, value] breakpoints, hours as
// decimals.
type DayDefinition struct {
	Label  string      `json:"label"`
	Values [][]float64 `json:"values"`
}

// ComplexRule is a rule of a complex schedule. Days uses the "Sun/Mon"
// format and Dates the "M/D-M/D" format; Dates may be empty.
type ComplexRule struct {
	Label  string      `json:"label"`
	Dates  string      `json:"dates"`
	Days   string      `json:"days"`
	Values [][]float64 `json:"values"`
}

// ComplexSchedule describes a ruleset directly, without going through the
// schedules sheet.
type ComplexSchedule struct {
	Name            string         `json:"name"`
	DefaultDay      *DayDefinition `json:"default_day"`
	Rules           []ComplexRule  `json:"rules"`
	WinterDesignDay [][]float64    `json:"winter_design_day"`
	SummerDesignDay [][]float64    `json:"summer_design_day"`
}

// AlwaysOn is the default day used when a complex schedule defines none.
func AlwaysOn() DayDefinition {
	return DayDefinition{Label: "always_on", Values: [][]float64{{24, 1}}}
}

// BuildComplex builds a ruleset from a complex schedule definition. Profiles
// are named "<name> <label>", rules "<name> <label> Rule" and design days
// "<name> Winter Design Day" / "<name> Summer Design Day".
func BuildComplex(cs ComplexSchedule) (Ruleset, error) {
	if cs.Name == "" {
		return Ruleset{}, errors.New("complex schedule: name is required")
	}
	def := AlwaysOn()
	if cs.DefaultDay != nil && len(cs.DefaultDay.Values) > 0 {
		def = *cs.DefaultDay
	}
	b := &rulesetBuilder{rs: Ruleset{Name: cs.Name}}

	p, err := BuildHourProfile(cs.Name+" "+def.Label, def.Values)
	if err != nil {
		return Ruleset{}, err
	}
	DefaultDay{}.apply(b, def.Label, p)

	for i, r := range cs.Rules {
		rule, err := complexRule(r)
		if err != nil {
			return Ruleset{}, fmt.Errorf("schedule %q rule %d: %w", cs.Name, i, err)
		}
		p, err := BuildHourProfile(cs.Name+" "+r.Label, r.Values)
		if err != nil {
			return Ruleset{}, err
		}
		rule.apply(b, r.Label, p)
	}

	if len(cs.WinterDesignDay) > 0 {
		p, err := BuildHourProfile(cs.Name+" Winter Design Day", cs.WinterDesignDay)
		if err != nil {
			return Ruleset{}, err
		}
		b.rs.WinterDesignDay = &p
	}
	if len(cs.SummerDesignDay) > 0 {
		p, err := BuildHourProfile(cs.Name+" Summer Design Day", cs.SummerDesignDay)
		if err != nil {
			return Ruleset{}, err
		}
		b.rs.SummerDesignDay = &p
	}
	return b.rs, nil
}

func complexRule(r ComplexRule) (OverrideRule, error) {
	if r.Label == "" {
		return OverrideRule{}, errors.New("label is required")
	}
	days, err := ParseDayMask(r.Days)
	if err != nil {
		return OverrideRule{}, err
	}
	rule := OverrideRule{Days: days}
	if r.Dates != "" {
		dates, err := ParseDateRange(r.Dates)
		if err != nil {
			return OverrideRule{}, err
		}
		rule.Dates = &dates
	}
	return rule, nil
}
