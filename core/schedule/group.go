package schedule

import (
	"fmt"
	"strings"

	"github.com/kilianp07/auslib/core/model"
	"github.com/kilianp07/auslib/internal/pathagg"
)

// Segment is one (from, to, value) entry of a day bucket. Row is the index
// of the source row, kept for diagnostics.
type Segment struct {
	From  string
	To    string
	Value float64
	Row   int
}

// DayBucket holds the segments of one day type, in input row order.
type DayBucket struct {
	DayType  string
	Segments []Segment
}

// Group is the input of one ruleset: all day buckets sharing a GroupKey,
// ordered by first appearance.
type Group struct {
	Key  string
	Days []DayBucket
}

// GroupKey returns the ruleset name for a space type and schedule category.
// Only spaces are removed from the space type; downstream lookups depend on
// this exact form.
func GroupKey(spaceType, category string) string {
	return strings.ReplaceAll(spaceType, " ", "") + "-" + category
}

type indexedRow struct {
	index int
	row   model.ScheduleRow
}

func rowPath(r indexedRow) ([]string, error) {
	required := []struct {
		field string
		value string
	}{
		{"space_type", r.row.SpaceType},
		{"schedule_category", r.row.Category},
		{"day_type", r.row.DayType},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, &MissingFieldError{Row: r.index, Field: f.field}
		}
	}
	return []string{GroupKey(r.row.SpaceType, r.row.Category), r.row.DayType}, nil
}

// GroupRows buckets rows by GroupKey and then by raw day type. Groups,
// day types and segments keep input order. The rows slice is not modified.
func GroupRows(rows []model.ScheduleRow) ([]Group, error) {
	indexed := make([]indexedRow, len(rows))
	for i, r := range rows {
		indexed[i] = indexedRow{index: i, row: r}
	}
	tree, err := pathagg.Aggregate(indexed, rowPath,
		func() DayBucket { return DayBucket{} },
		func(b DayBucket, r indexedRow) DayBucket {
			b.DayType = r.row.DayType
			b.Segments = append(b.Segments, Segment{
				From:  r.row.From,
				To:    r.row.To,
				Value: r.row.Value,
				Row:   r.index,
			})
			return b
		})
	if err != nil {
		return nil, fmt.Errorf("group schedules: %w", err)
	}
	keys := tree.Keys()
	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		g := Group{Key: key}
		for _, dayType := range tree.Keys(key) {
			bucket, _ := tree.Get(key, dayType)
			g.Days = append(g.Days, bucket)
		}
		groups = append(groups, g)
	}
	return groups, nil
}
