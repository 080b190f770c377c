package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDayMask(t *testing.T) {
	m, err := ParseDayMask("Sat/sun")
	require.NoError(t, err)
	assert.Equal(t, Weekend, m)
	assert.Equal(t, "Sun/Sat", m.String())
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, m.Days())

	m, err = ParseDayMask("Mon/Tue/Wed/Thu/Fri")
	require.NoError(t, err)
	assert.Equal(t, Weekdays, m)
	assert.Equal(t, AllDays, m|Weekend)

	_, err = ParseDayMask("Mon/Funday")
	assert.Error(t, err)
	_, err = ParseDayMask("")
	assert.Error(t, err)
}

func TestMaskOf(t *testing.T) {
	m := MaskOf(time.Monday, time.Friday)
	assert.True(t, m.Has(time.Monday))
	assert.False(t, m.Has(time.Tuesday))
	assert.Equal(t, "Mon/Fri", m.String())
}

func TestDateRange(t *testing.T) {
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 12, 0, 0, 0, time.UTC) }

	r, err := ParseDateRange("6/1-8/31")
	require.NoError(t, err)
	assert.True(t, r.Contains(day(time.June, 1)))
	assert.True(t, r.Contains(day(time.August, 31)))
	assert.False(t, r.Contains(day(time.September, 1)))
	assert.Equal(t, "6/1-8/31", r.String())

	wrap, err := ParseDateRange("12/1-2/28")
	require.NoError(t, err)
	assert.True(t, wrap.Contains(day(time.December, 25)))
	assert.True(t, wrap.Contains(day(time.January, 10)))
	assert.False(t, wrap.Contains(day(time.March, 1)))

	_, err = ParseDateRange("2/29-3/1")
	assert.NoError(t, err)
	for _, bad := range []string{"1/1", "13/1-1/1", "1/32-2/1", "2/30-3/1", "a/b-c/d"} {
		_, err := ParseDateRange(bad)
		assert.Error(t, err, bad)
	}
}
