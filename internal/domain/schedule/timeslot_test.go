package schedule

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:30", want: 9*60 + 30},
		{in: "20:00", want: 20 * 60},
		{in: "23:30", want: 23*60 + 30},
		{in: "24:00", wantErr: true},
		{in: "9:30", wantErr: true},
		{in: "nonsense", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestTimeOfDayString_ZeroPadded(t *testing.T) {
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "09:05", TimeOfDay(9*60+5).String())
	assert.Equal(t, "23:30", TimeOfDay(23*60+30).String())
}

func TestTimeOfDay_OrderingMatchesMinutes(t *testing.T) {
	// The string form is only safe to compare because it is zero-padded;
	// the integer form is authoritative.
	a := TimeOfDay(9 * 60)
	b := TimeOfDay(10 * 60)
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, 60, b.Sub(a))
	assert.Less(t, a.String(), b.String())
}

func TestTimeOfDay_JSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(TimeOfDay(20*60 + 30))
	require.NoError(t, err)
	assert.Equal(t, `"20:30"`, string(raw))

	var back TimeOfDay
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, TimeOfDay(20*60+30), back)

	assert.Error(t, json.Unmarshal([]byte(`"25:00"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`1230`), &back))
}

func TestGrid_Slots(t *testing.T) {
	grid := DefaultGrid()
	slots := grid.Slots()

	require.Len(t, slots, 48)
	assert.Equal(t, TimeOfDay(0), slots[0])
	assert.Equal(t, TimeOfDay(23*60+30), slots[len(slots)-1])

	// Restartable: each call yields a fresh, identical sequence.
	again := grid.Slots()
	assert.Equal(t, slots, again)
	again[0] = TimeOfDay(99)
	assert.Equal(t, TimeOfDay(0), grid.Slots()[0])
}

func TestGrid_CustomStep(t *testing.T) {
	grid, err := NewGrid(60)
	require.NoError(t, err)
	assert.Equal(t, 24, grid.SlotCount())
	assert.True(t, grid.Aligned(TimeOfDay(10*60)))
	assert.False(t, grid.Aligned(TimeOfDay(10*60+30)))

	_, err = NewGrid(0)
	assert.Error(t, err)
	_, err = NewGrid(7)
	assert.Error(t, err)
}
