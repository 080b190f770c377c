package model

// PeopleDefinition is a row of the people sheet.
type PeopleDefinition struct {
	Name          string  `json:"description"`
	AreaPerPerson float64 `json:"area per person"` // m2 per person
}

// LightsDefinition is a row of the lights sheet.
type LightsDefinition struct {
	Name         string  `json:"description"`
	WattsPerArea float64 `json:"Adjusted IPD"` // W/m2
}

// EquipmentDefinition is a row of the equipment sheet.
type EquipmentDefinition struct {
	Name         string  `json:"description"`
	WattsPerArea float64 `json:"W/m2"`
}

// Infiltration is a row of the infiltration sheet. The rate applies while
// HVAC is off.
type Infiltration struct {
	Name              string  `json:"description"`
	AirChangesPerHour float64 `json:"hvac_off"`
}

// OutdoorAir is a row of the outdoor_air sheet.
type OutdoorAir struct {
	Name          string  `json:"description"`
	FlowPerPerson float64 `json:"L/s/person"`
}

// SpaceType is a row of the space_types sheet. Every field except Name
// references another object by exact name.
type SpaceType struct {
	Name         string `json:"name"`
	Lights       string `json:"lights"`
	Equipment    string `json:"equipment"`
	People       string `json:"people"`
	Infiltration string `json:"infiltration"`
	ScheduleSet  string `json:"schedule_set"`
	OutdoorAir   string `json:"outdoor_air"`
}
