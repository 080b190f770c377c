// Package schedule compiles flat schedule rows into rulesets.
//
// Rows are grouped by "<space type without spaces>-<category>" and then by
// day type (GroupRows). Each day bucket becomes a piecewise-constant
// DayProfile (BuildProfile), which the Dispatcher installs either as the
// ruleset's default day (weekdays, default) or as an override rule (weekend
// and configured day types). Rules are matched first-to-last; the default
// day answers every date no rule covers.
package schedule
