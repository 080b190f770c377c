package schedule

import (
	"sort"
	"time"
)

// ScheduleRule overrides the default day on the weekdays in Days, further
// restricted to Dates when set.
type ScheduleRule struct {
	Name    string     `json:"name"`
	Days    DayMask    `json:"days"`
	Dates   *DateRange `json:"dates,omitempty"`
	Profile DayProfile `json:"profile"`
}

// Applies reports whether the rule covers the date of t.
func (r ScheduleRule) Applies(t time.Time) bool {
	if !r.Days.Has(t.Weekday()) {
		return false
	}
	return r.Dates == nil || r.Dates.Contains(t)
}

// Ruleset is the compiled schedule of one (space type, category) pair.
type Ruleset struct {
	Name    string         `json:"name"`
	Default DayProfile     `json:"default"`
	Rules   []ScheduleRule `json:"rules,omitempty"`

	WinterDesignDay *DayProfile `json:"winter_design_day,omitempty"`
	SummerDesignDay *DayProfile `json:"summer_design_day,omitempty"`
}

// ProfileFor returns the profile active on the date of t: the first rule in
// order that applies, otherwise the default day.
func (rs Ruleset) ProfileFor(t time.Time) DayProfile {
	for _, r := range rs.Rules {
		if r.Applies(t) {
			return r.Profile
		}
	}
	return rs.Default
}

// ValueAt returns the scheduled value at t.
func (rs Ruleset) ValueAt(t time.Time) (float64, bool) {
	return rs.ProfileFor(t).ValueAt(At(t))
}

// AnnualFullLoadHours sums the daily full-load hours over every day of year.
func (rs Ruleset) AnnualFullLoadHours(year int) float64 {
	total := 0.0
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		total += rs.ProfileFor(day).FullLoadHours()
		day = day.AddDate(0, 0, 1)
	}
	return total
}

// Rulesets maps ruleset names to compiled rulesets.
type Rulesets map[string]Ruleset

// Names returns the ruleset names in sorted order.
func (r Rulesets) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sorted returns the rulesets ordered by name.
func (r Rulesets) Sorted() []Ruleset {
	out := make([]Ruleset, 0, len(r))
	for _, n := range r.Names() {
		out = append(out, r[n])
	}
	return out
}
