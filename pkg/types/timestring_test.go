package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecondsOfDay(t *testing.T) {
	tests := []struct {
		in      TimeString
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 9 * 3600, false},
		{"09:30:15", 9*3600 + 30*60 + 15, false},
		{"23:59:59", 86399, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:00:60", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := tt.in.SecondsOfDay()
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNewTimeStringFromSeconds_Normalizes(t *testing.T) {
	assert.Equal(t, TimeString("01:00:00"), NewTimeStringFromSeconds(25*3600))
	assert.Equal(t, TimeString("00:00:00"), NewTimeStringFromSeconds(SecondsPerDay))
	assert.Equal(t, TimeString("23:00:00"), NewTimeStringFromSeconds(-3600))
}

func TestAddMinutes_WrapsAroundMidnight(t *testing.T) {
	got, err := TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30:00"), got)
}

func TestComparisonsAndEqual(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59:59"))
	assert.True(t, TimeString("09:00").Equal("09:00:00"))
	assert.False(t, TimeString("09:00").Equal("09:00:01"))
}

func TestShortAndString(t *testing.T) {
	assert.Equal(t, "09:00:00", TimeString("09:00").String())
	assert.Equal(t, "09:30", TimeString("09:30:45").Short()[:5])
}

func TestScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:15:00")))
	assert.Equal(t, TimeString("10:15:00"), ts)

	require.NoError(t, ts.Scan("11:00"))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30:00"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestValue_RejectsInvalid(t *testing.T) {
	_, err := TimeString("25:00").Value()
	assert.Error(t, err)

	v, err := TimeString("08:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", v)
}
