package model

// Workbook is the decoded library input. It is built once per run by the
// loader and passed explicitly; nothing caches it between runs.
type Workbook struct {
	Schedules    []ScheduleRow
	ScheduleSets []ScheduleSet
	People       []PeopleDefinition
	Lights       []LightsDefinition
	Equipment    []EquipmentDefinition
	Infiltration []Infiltration
	OutdoorAir   []OutdoorAir
	SpaceTypes   []SpaceType
}
