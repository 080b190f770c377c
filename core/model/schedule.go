package model

// ScheduleRow is one line of the schedules sheet. Rows are read once and
// never mutated by the compiler.
type ScheduleRow struct {
	SpaceType string  `json:"space_type"`
	Category  string  `json:"schedule_category"` // Occupancy, Lighting, Equipment, Infiltration
	DayType   string  `json:"day_type"`          // weekdays, default, weekend, ...
	From      string  `json:"from"`              // informational only
	To        string  `json:"to"`                // HH:MM, 24:00 is end of day
	Value     float64 `json:"value"`
}

// ScheduleSet binds the schedule rulesets used by a space type. Each field
// except Name references a ruleset by its exact name.
type ScheduleSet struct {
	Name              string `json:"name"`
	HoursOfOperation  string `json:"hours_of_operation"`
	NumberOfPeople    string `json:"number_of_people"`
	Lighting          string `json:"lighting"`
	ElectricEquipment string `json:"electric_equipment"`
	Infiltration      string `json:"infiltration"`
}

// References lists the ruleset names the set points to, keyed by role.
func (s ScheduleSet) References() []Reference {
	return []Reference{
		{Role: "hours_of_operation", Name: s.HoursOfOperation},
		{Role: "number_of_people", Name: s.NumberOfPeople},
		{Role: "lighting", Name: s.Lighting},
		{Role: "electric_equipment", Name: s.ElectricEquipment},
		{Role: "infiltration", Name: s.Infiltration},
	}
}

// Reference is a named link from one model object to another.
type Reference struct {
	Role string
	Name string
}
