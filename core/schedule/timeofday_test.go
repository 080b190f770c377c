package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "09:00", want: Clock(9, 0)},
		{in: "9:30", want: Clock(9, 30)},
		{in: " 17:45 ", want: Clock(17, 45)},
		{in: "24:00", want: EndOfDay},
		{in: "08:15:00", want: Clock(8, 15)},
		{in: "00:00", want: Midnight},
		{in: "24:01", wantErr: true},
		{in: "25:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "12:5", wantErr: true},
		{in: "12", wantErr: true},
		{in: "ab:00", wantErr: true},
		{in: "08:15:30", wantErr: true},
		{in: "-1:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				var tf *TimeFormatError
				assert.ErrorAs(t, err, &tf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromHours(t *testing.T) {
	got, err := FromHours(8.5)
	require.NoError(t, err)
	assert.Equal(t, Clock(8, 30), got)

	got, err = FromHours(24)
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, got)

	_, err = FromHours(24.5)
	assert.Error(t, err)
	_, err = FromHours(-1)
	assert.Error(t, err)
}

func TestTimeOfDay_Text(t *testing.T) {
	assert.Equal(t, "07:05", Clock(7, 5).String())
	b, err := json.Marshal(Breakpoint{Until: EndOfDay, Value: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"until":"24:00","value":1}`, string(b))

	var bp Breakpoint
	require.NoError(t, json.Unmarshal([]byte(`{"until":"13:30","value":0.5}`), &bp))
	assert.Equal(t, Clock(13, 30), bp.Until)
}
