package library

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kilianp07/auslib/core/model"
)

// Kind identifies an object kind in the building model.
type Kind string

const (
	KindRuleset      Kind = "schedule_ruleset"
	KindScheduleSet  Kind = "schedule_set"
	KindPeople       Kind = "people_definition"
	KindLights       Kind = "lights_definition"
	KindEquipment    Kind = "electric_equipment_definition"
	KindInfiltration Kind = "space_infiltration"
	KindOutdoorAir   Kind = "outdoor_air"
	KindSpaceType    Kind = "space_type"
)

var (
	// ErrNotFound is returned when no object of the kind has the name.
	ErrNotFound = errors.New("object not found")
	// ErrDuplicateName is returned when an object of the kind already has
	// the name.
	ErrDuplicateName = errors.New("duplicate object name")
)

// Handle references an object stored in the model.
type Handle struct {
	ID   uuid.UUID `json:"id"`
	Kind Kind      `json:"kind"`
	Name string    `json:"name"`
}

// Model is the building model the library is applied to. Names are unique
// per kind and looked up exactly.
type Model interface {
	Add(ctx context.Context, kind Kind, name string, payload any) (Handle, error)
	Lookup(ctx context.Context, kind Kind, name string) (Handle, error)
	List(ctx context.Context, kind Kind) ([]Handle, error)
}

// ScheduleSetObject is the stored form of a schedule set, with every ruleset
// reference resolved.
type ScheduleSetObject struct {
	Name      string            `json:"name"`
	Schedules map[string]Handle `json:"schedules"`
}

// SpaceTypeObject is the stored form of a space type.
type SpaceTypeObject struct {
	Name         string `json:"name"`
	Lights       Handle `json:"lights"`
	Equipment    Handle `json:"equipment"`
	People       Handle `json:"people"`
	Infiltration Handle `json:"infiltration"`
	ScheduleSet  Handle `json:"schedule_set"`
	OutdoorAir   Handle `json:"outdoor_air"`
}

func spaceTypeRefs(st model.SpaceType) []struct {
	kind Kind
	ref  model.Reference
} {
	return []struct {
		kind Kind
		ref  model.Reference
	}{
		{KindLights, model.Reference{Role: "lights", Name: st.Lights}},
		{KindEquipment, model.Reference{Role: "equipment", Name: st.Equipment}},
		{KindPeople, model.Reference{Role: "people", Name: st.People}},
		{KindInfiltration, model.Reference{Role: "infiltration", Name: st.Infiltration}},
		{KindScheduleSet, model.Reference{Role: "schedule_set", Name: st.ScheduleSet}},
		{KindOutdoorAir, model.Reference{Role: "outdoor_air", Name: st.OutdoorAir}},
	}
}
