package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid afternoon time", input: "15:00", want: TimeString("15:00")},
		{name: "valid morning time", input: "09:30", want: TimeString("09:30")},
		{name: "midnight", input: "00:00", want: TimeString("00:00")},
		{name: "end of day", input: "23:59", want: TimeString("23:59")},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "with seconds", input: "12:00:00", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "garbage", input: "noon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_HourMinute(t *testing.T) {
	ts := TimeString("15:45")
	assert.Equal(t, 15, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
}

func TestTimeString_Comparison(t *testing.T) {
	checkOut := TimeString("11:00")
	checkIn := TimeString("15:00")

	assert.True(t, checkOut.IsBefore(checkIn))
	assert.False(t, checkIn.IsBefore(checkOut))
	assert.True(t, checkIn.IsAfter(checkOut))
	assert.False(t, checkIn.IsBefore(checkIn))
	assert.False(t, checkIn.IsAfter(checkIn))
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 8, 10, 23, 50, 12, 999, time.UTC)

	got := TimeString("15:00").At(date)

	assert.Equal(t, time.Date(2025, 8, 10, 15, 0, 0, 0, time.UTC), got)
}

func TestTimeString_At_PreservesLocation(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	date := time.Date(2025, 8, 10, 0, 0, 0, 0, loc)

	got := TimeString("11:00").At(date)

	assert.Equal(t, 11, got.Hour())
	assert.Equal(t, loc, got.Location())
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   TimeString
		minutes int
		want    TimeString
		wantErr bool
	}{
		{name: "within the same hour", input: TimeString("15:00"), minutes: 30, want: TimeString("15:30")},
		{name: "crosses an hour", input: TimeString("15:45"), minutes: 30, want: TimeString("16:15")},
		{name: "crosses midnight", input: TimeString("23:30"), minutes: 45, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
