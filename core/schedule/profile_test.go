package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(to string, v float64) Segment { return Segment{To: to, Value: v} }

func TestBuildProfile_SortsByTo(t *testing.T) {
	p, err := BuildProfile("p", []Segment{seg("24:00", 0.1), seg("08:00", 0.1), seg("18:00", 0.9)})
	require.NoError(t, err)
	assert.Equal(t, []Breakpoint{
		{Until: Clock(8, 0), Value: 0.1},
		{Until: Clock(18, 0), Value: 0.9},
		{Until: EndOfDay, Value: 0.1},
	}, p.Breakpoints)
	assert.True(t, p.Complete())

	v, ok := p.ValueAt(Clock(7, 59))
	assert.True(t, ok)
	assert.Equal(t, 0.1, v)
	v, _ = p.ValueAt(Clock(8, 0))
	assert.Equal(t, 0.9, v)
	v, _ = p.ValueAt(Clock(23, 59))
	assert.Equal(t, 0.1, v)
}

func TestBuildProfile_SingleSegmentCoversDay(t *testing.T) {
	p, err := BuildProfile("always", []Segment{seg("24:00", 0.7)})
	require.NoError(t, err)
	require.Len(t, p.Breakpoints, 1)
	for _, at := range []TimeOfDay{Midnight, Clock(12, 0), Clock(23, 59)} {
		v, ok := p.ValueAt(at)
		assert.True(t, ok)
		assert.Equal(t, 0.7, v)
	}
	assert.InDelta(t, 24*0.7, p.FullLoadHours(), 1e-9)
}

func TestBuildProfile_Conflict(t *testing.T) {
	_, err := BuildProfile("p", []Segment{seg("09:00", 1), seg("24:00", 0), seg("09:00", 0.5)})
	var cb *ConflictingBreakpointError
	require.ErrorAs(t, err, &cb)
	assert.Equal(t, Clock(9, 0), cb.At)
	assert.Equal(t, [2]float64{1, 0.5}, cb.Values)
}

func TestBuildProfile_DuplicateSameValue(t *testing.T) {
	p, err := BuildProfile("p", []Segment{seg("09:00", 1), seg("09:00", 1), seg("24:00", 0)})
	require.NoError(t, err)
	assert.Len(t, p.Breakpoints, 2)
}

func TestBuildProfile_Incomplete(t *testing.T) {
	_, err := BuildProfile("p", []Segment{seg("09:00", 1), seg("18:00", 0)})
	var ip *IncompleteProfileError
	require.ErrorAs(t, err, &ip)
	assert.Equal(t, Clock(18, 0), ip.End)

	_, err = BuildProfile("empty", nil)
	require.ErrorAs(t, err, &ip)
	assert.Equal(t, Midnight, ip.End)

	p, err := BuildProfile("p", []Segment{seg("09:00", 1)}, AllowPartial())
	require.NoError(t, err)
	assert.False(t, p.Complete())
	_, ok := p.ValueAt(Clock(10, 0))
	assert.False(t, ok)
}

func TestBuildProfile_BadTimes(t *testing.T) {
	var tf *TimeFormatError
	_, err := BuildProfile("p", []Segment{seg("00:00", 1)})
	assert.ErrorAs(t, err, &tf)
	_, err = BuildProfile("p", []Segment{seg("9h", 1)})
	assert.ErrorAs(t, err, &tf)
	assert.Equal(t, "time_format", ErrorKind(err))
}

func TestFullLoadHours(t *testing.T) {
	p, err := BuildHourProfile("office", [][]float64{{8, 0}, {18, 1}, {24, 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, 10+3, p.FullLoadHours(), 1e-9)
	assert.Zero(t, DayProfile{}.FullLoadHours())
}

func TestBuildHourProfile_Errors(t *testing.T) {
	_, err := BuildHourProfile("p", [][]float64{{24}})
	assert.Error(t, err)
	_, err = BuildHourProfile("p", [][]float64{{30, 1}})
	assert.Error(t, err)
}
