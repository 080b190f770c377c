package schedule

import (
	"fmt"
	"sort"
)

// DayTypeConfig declares an extra override day type.
type DayTypeConfig struct {
	Days  string `json:"days"`
	Dates string `json:"dates"`
}

// Config defines compilation settings.
type Config struct {
	// Mode is fail_fast (default) or collect.
	Mode         string                   `json:"mode"`
	AllowPartial bool                     `json:"allow_partial"`
	DayTypes     map[string]DayTypeConfig `json:"day_types"`
	Schedules    []ComplexSchedule        `json:"schedules"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Mode == "" {
		c.Mode = FailFast.String()
	}
}

// Validate checks the mode, the extra day types and the complex schedules.
func (c Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := c.Dispatcher(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Schedules))
	for _, s := range c.Schedules {
		if seen[s.Name] {
			return fmt.Errorf("schedule %q defined twice", s.Name)
		}
		seen[s.Name] = true
		if _, err := BuildComplex(s); err != nil {
			return err
		}
	}
	return nil
}

// Dispatcher returns the built-in dispatcher extended with DayTypes.
func (c Config) Dispatcher() (*Dispatcher, error) {
	d := NewDispatcher()
	labels := make([]string, 0, len(c.DayTypes))
	for l := range c.DayTypes {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, label := range labels {
		dt := c.DayTypes[label]
		rule, err := complexRule(ComplexRule{Label: label, Days: dt.Days, Dates: dt.Dates})
		if err != nil {
			return nil, fmt.Errorf("day type %q: %w", label, err)
		}
		if err := d.Register(label, rule); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Options returns compiler options matching the configuration.
func (c Config) Options() ([]Option, Mode, error) {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return nil, 0, err
	}
	d, err := c.Dispatcher()
	if err != nil {
		return nil, 0, err
	}
	return []Option{WithDispatcher(d), WithPartialProfiles(c.AllowPartial)}, mode, nil
}
