package tabular

import (
	"fmt"

	"github.com/kilianp07/auslib/core/factory"
	"github.com/kilianp07/auslib/core/model"
)

// Decode converts raw sheet records into typed rows. The schedules sheet
// accepts schedule_type as an alias of schedule_category.
func Decode(raw map[string][]Record) (*model.Workbook, error) {
	d := &model.Workbook{}
	steps := []struct {
		sheet string
		out   any
	}{
		{SheetSchedules, &d.Schedules},
		{SheetScheduleSets, &d.ScheduleSets},
		{SheetPeople, &d.People},
		{SheetLights, &d.Lights},
		{SheetEquipment, &d.Equipment},
		{SheetInfiltration, &d.Infiltration},
		{SheetOutdoorAir, &d.OutdoorAir},
		{SheetSpaceTypes, &d.SpaceTypes},
	}
	for _, s := range steps {
		recs := raw[s.sheet]
		if s.sheet == SheetSchedules {
			recs = withCategoryAlias(recs)
		}
		if err := factory.Decode(recs, s.out); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", s.sheet, err)
		}
	}
	return d, nil
}

func withCategoryAlias(recs []Record) []Record {
	out := make([]Record, len(recs))
	for i, r := range recs {
		_, hasCategory := r["schedule_category"]
		alias, hasAlias := r["schedule_type"]
		if hasCategory || !hasAlias {
			out[i] = r
			continue
		}
		c := make(Record, len(r)+1)
		for k, v := range r {
			c[k] = v
		}
		c["schedule_category"] = alias
		out[i] = c
	}
	return out
}
