package library_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/auslib/core/library"
	"github.com/kilianp07/auslib/core/metrics"
	"github.com/kilianp07/auslib/core/model"
	"github.com/kilianp07/auslib/core/schedule"
	"github.com/kilianp07/auslib/infra/modelstore"
)

func row(category, day, to string, value float64) model.ScheduleRow {
	return model.ScheduleRow{SpaceType: "Office", Category: category, DayType: day, From: "00:00", To: to, Value: value}
}

func workbook() *model.Workbook {
	return &model.Workbook{
		Schedules: []model.ScheduleRow{
			row("Occupancy", "weekdays", "08:00", 0),
			row("Occupancy", "weekdays", "18:00", 1),
			row("Occupancy", "weekdays", "24:00", 0),
			row("Occupancy", "weekend", "24:00", 0),
			row("Lighting", "default", "24:00", 0.5),
			row("Equipment", "default", "24:00", 0.3),
			row("Infiltration", "default", "24:00", 1),
		},
		ScheduleSets: []model.ScheduleSet{{
			Name:              "Office Set",
			HoursOfOperation:  "Office-Occupancy",
			NumberOfPeople:    "Office-Occupancy",
			Lighting:          "Office-Lighting",
			ElectricEquipment: "Office-Equipment",
			Infiltration:      "Office-Infiltration",
		}},
		People:       []model.PeopleDefinition{{Name: "office people", AreaPerPerson: 10}},
		Lights:       []model.LightsDefinition{{Name: "office lights", WattsPerArea: 4.5}},
		Equipment:    []model.EquipmentDefinition{{Name: "office equipment", WattsPerArea: 11}},
		Infiltration: []model.Infiltration{{Name: "office infiltration", AirChangesPerHour: 0.5}},
		OutdoorAir:   []model.OutdoorAir{{Name: "office oa", FlowPerPerson: 7.5}},
		SpaceTypes: []model.SpaceType{{
			Name:         "Office",
			Lights:       "office lights",
			Equipment:    "office equipment",
			People:       "office people",
			Infiltration: "office infiltration",
			ScheduleSet:  "Office Set",
			OutdoorAir:   "office oa",
		}},
	}
}

type captureSink struct {
	metrics.NopSink
	mu     sync.Mutex
	events []metrics.MaterializeEvent
}

func (c *captureSink) RecordMaterialize(ev metrics.MaterializeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func TestApply_MaterialisesEverything(t *testing.T) {
	ctx := context.Background()
	store := modelstore.NewMemory()
	sink := &captureSink{}
	rep, err := library.New(store, library.WithMetrics(sink)).Apply(ctx, workbook())
	require.NoError(t, err)
	assert.False(t, rep.Failed())
	assert.Equal(t, map[library.Kind]int{
		library.KindRuleset:      4,
		library.KindScheduleSet:  1,
		library.KindPeople:       1,
		library.KindLights:       1,
		library.KindEquipment:    1,
		library.KindInfiltration: 1,
		library.KindOutdoorAir:   1,
		library.KindSpaceType:    1,
	}, rep.Counts)
	assert.Len(t, sink.events, 11)

	var st library.SpaceTypeObject
	require.NoError(t, store.Decode(ctx, library.KindSpaceType, "Office", &st))
	set, err := store.Lookup(ctx, library.KindScheduleSet, "Office Set")
	require.NoError(t, err)
	assert.Equal(t, set, st.ScheduleSet)
	assert.Equal(t, "office oa", st.OutdoorAir.Name)

	var so library.ScheduleSetObject
	require.NoError(t, store.Decode(ctx, library.KindScheduleSet, "Office Set", &so))
	assert.Equal(t, "Office-Occupancy", so.Schedules["hours_of_operation"].Name)
	assert.Equal(t, so.Schedules["hours_of_operation"], so.Schedules["number_of_people"])
	assert.Len(t, so.Schedules, 5)

	var rs schedule.Ruleset
	require.NoError(t, store.Decode(ctx, library.KindRuleset, "Office-Occupancy", &rs))
	assert.Equal(t, "Office-Occupancy weekdays", rs.Default.Name)
	require.Len(t, rs.Rules, 1)
	assert.Equal(t, schedule.Weekend, rs.Rules[0].Days)
}

func TestApply_UnresolvedReferenceFailsFast(t *testing.T) {
	wb := workbook()
	wb.ScheduleSets[0].Lighting = "Office-Lights"
	rep, err := library.New(modelstore.NewMemory()).Apply(context.Background(), wb)
	require.Error(t, err)
	var ue *library.UnresolvedReferenceError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "lighting", ue.Role)
	assert.Equal(t, "Office-Lights", ue.Name)
	assert.ErrorIs(t, err, library.ErrNotFound)
	assert.Equal(t, 4, rep.Counts[library.KindRuleset])
	assert.Zero(t, rep.Counts[library.KindSpaceType])
}

func TestApply_EmptyReferenceIsUnresolved(t *testing.T) {
	wb := workbook()
	wb.SpaceTypes[0].OutdoorAir = ""
	_, err := library.New(modelstore.NewMemory()).Apply(context.Background(), wb)
	var ue *library.UnresolvedReferenceError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, library.KindOutdoorAir, ue.Kind)
}

func TestApply_DuplicateDefinition(t *testing.T) {
	wb := workbook()
	wb.People = append(wb.People, model.PeopleDefinition{Name: "office people", AreaPerPerson: 20})
	_, err := library.New(modelstore.NewMemory()).Apply(context.Background(), wb)
	assert.ErrorIs(t, err, library.ErrDuplicateName)
}

func TestApply_CollectModeSkipsDependents(t *testing.T) {
	wb := workbook()
	wb.Schedules = append(wb.Schedules, row("Lighting", "holiday", "24:00", 0))
	c := schedule.NewCompiler()
	rep, err := library.New(modelstore.NewMemory(), library.WithCompiler(c, schedule.Collect)).
		Apply(context.Background(), wb)
	require.NoError(t, err)
	assert.True(t, rep.Failed())

	require.Contains(t, rep.CompileErrors, "Office-Lighting")
	var ue *schedule.UnknownDayTypeError
	assert.True(t, errors.As(rep.CompileErrors["Office-Lighting"], &ue))

	assert.Equal(t, 3, rep.Counts[library.KindRuleset])
	assert.Contains(t, rep.Errors, "schedule_set/Office Set")
	assert.Contains(t, rep.Errors, "space_type/Office")
	assert.Equal(t, 1, rep.Counts[library.KindPeople])
}

func TestApply_FailFastCompileError(t *testing.T) {
	wb := workbook()
	wb.Schedules = append(wb.Schedules, row("Lighting", "holiday", "24:00", 0))
	rep, err := library.New(modelstore.NewMemory()).Apply(context.Background(), wb)
	var ue *schedule.UnknownDayTypeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "holiday", ue.Label)
	assert.Empty(t, rep.Counts)
}

func TestApply_ComplexSchedules(t *testing.T) {
	ctx := context.Background()
	store := modelstore.NewMemory()
	cs := schedule.ComplexSchedule{Name: "Always On"}
	rep, err := library.New(store, library.WithComplexSchedules([]schedule.ComplexSchedule{cs})).Apply(ctx, workbook())
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Counts[library.KindRuleset])

	var rs schedule.Ruleset
	require.NoError(t, store.Decode(ctx, library.KindRuleset, "Always On", &rs))
	assert.Equal(t, "Always On always_on", rs.Default.Name)
}

func TestCompile_ComplexNameClash(t *testing.T) {
	cs := schedule.ComplexSchedule{Name: "Office-Lighting"}
	_, err := library.New(modelstore.NewMemory(), library.WithComplexSchedules([]schedule.ComplexSchedule{cs})).
		Compile(workbook())
	assert.ErrorContains(t, err, "defined both")
}

func TestApply_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := schedule.NewCompiler()
	_, err := library.New(modelstore.NewMemory(), library.WithCompiler(c, schedule.Collect)).Apply(ctx, workbook())
	assert.ErrorIs(t, err, context.Canceled)
}
