package sensors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(sensor, ts, air, surface, code, grip string) RawReading {
	return RawReading{
		ID:                     sensor + "-" + ts,
		SensorID:               sensor,
		LocationName:           "Loc " + sensor,
		Location:               Point{Type: "Point", Coordinates: [2]float64{-97.74, 30.27}},
		Timestamp:              ts,
		TempSurface:            surface,
		AirTempPrimary:         air,
		ConditionCodeDisplayed: code,
		GripText:               grip,
		RelativeHumidity:       "90.36",
	}
}

func intPtr(v int) *int { return &v }

func TestReduceLatestWins(t *testing.T) {
	in := []RawReading{
		raw("S1", "2025-05-05T13:14:34.000", "19.31", "19.87", "3", "FAIR"),
		raw("S1", "2025-05-05T13:00:00.000", "0", "0", "1", "GOOD"),
		raw("S1", "2025-05-05T13:20:00.000", "100", "0", "5", "POOR"),
	}

	out := Reduce(in, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-05-05T13:20:00.000", out[0].Timestamp)
	assert.Equal(t, intPtr(212), out[0].AirTempF)
	assert.Equal(t, intPtr(32), out[0].SurfaceTempF)
	assert.Equal(t, ConditionIce, out[0].Condition)
	assert.Equal(t, "POOR", out[0].GripText)
}

func TestReduceTieLaterEncounteredWins(t *testing.T) {
	in := []RawReading{
		raw("S1", "2025-05-05T13:14:34.000", "10", "10", "1", "GOOD"),
		raw("S1", "2025-05-05T13:14:34.000", "20", "20", "3", "FAIR"),
	}

	out := Reduce(in, time.UTC)
	require.Len(t, out, 1)
	assert.Equal(t, "FAIR", out[0].GripText)
	assert.Equal(t, ConditionWet, out[0].Condition)
	assert.Equal(t, intPtr(68), out[0].AirTempF)
}

func TestReduceOnePerSensor(t *testing.T) {
	in := []RawReading{
		raw("S2", "2025-05-05T13:01:00.000", "1", "1", "1", "GOOD"),
		raw("S1", "2025-05-05T13:02:00.000", "1", "1", "1", "GOOD"),
		raw("S3", "2025-05-05T13:03:00.000", "1", "1", "1", "GOOD"),
		raw("S2", "2025-05-05T13:04:00.000", "1", "1", "1", "GOOD"),
	}

	out := Reduce(in, time.UTC)
	require.Len(t, out, 3)
	assert.Equal(t, "S1", out[0].SensorID)
	assert.Equal(t, "S2", out[1].SensorID)
	assert.Equal(t, "S3", out[2].SensorID)
	assert.Equal(t, "2025-05-05T13:04:00.000", out[1].Timestamp)
}

func TestReduceIdempotent(t *testing.T) {
	in := []RawReading{
		raw("S1", "2025-05-05T13:01:00.000", "5", "6", "2", "GOOD"),
		raw("S2", "2025-05-05T13:02:00.000", "7", "8", "4", "POOR"),
	}

	first := Reduce(in, time.UTC)
	second := Reduce(in, time.UTC)
	assert.Equal(t, first, second)
	require.Len(t, first, len(in))
	for i, p := range first {
		assert.Equal(t, in[i].SensorID, p.SensorID)
		assert.Equal(t, in[i].Timestamp, p.Timestamp)
		assert.Equal(t, in[i].GripText, p.GripText)
	}
}

func TestReduceConvertsFields(t *testing.T) {
	out := Reduce([]RawReading{raw("S1", "2025-05-05T13:14:34.000", "19.31", "19.87", "99", "FAIR")}, time.UTC)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, "Loc S1", p.LocationName)
	assert.Equal(t, 30.27, p.Latitude)
	assert.Equal(t, -97.74, p.Longitude)
	assert.Equal(t, intPtr(67), p.AirTempF)
	assert.Equal(t, intPtr(68), p.SurfaceTempF)
	assert.Equal(t, ConditionUnknown, p.Condition)
}

func TestReduceMalformedTemperatureIsNil(t *testing.T) {
	out := Reduce([]RawReading{raw("S1", "2025-05-05T13:14:34.000", "n/a", "3", "1", "GOOD")}, time.UTC)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].AirTempF)
	assert.Equal(t, intPtr(37), out[0].SurfaceTempF)
}

func TestReduceUnparseableTimestamp(t *testing.T) {
	in := []RawReading{
		raw("S1", "2025-05-05T13:14:34.000", "1", "1", "1", "GOOD"),
		raw("S1", "yesterday", "1", "1", "1", "POOR"),
		raw("S2", "garbage", "1", "1", "1", "FAIR"),
	}

	out := Reduce(in, time.UTC)
	require.Len(t, out, 2)
	assert.Equal(t, "GOOD", out[0].GripText)
	assert.Equal(t, "FAIR", out[1].GripText)
}

func TestReduceEmpty(t *testing.T) {
	out := Reduce(nil, time.UTC)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestParseTimestamp(t *testing.T) {
	chicago := time.FixedZone("CDT", -5*3600)

	ts, ok := ParseTimestamp("2025-05-05T13:14:34.000", chicago)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 5, 18, 14, 34, 0, time.UTC), ts.UTC())

	ts, ok = ParseTimestamp("2025-05-05T13:14:34Z", chicago)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 5, 13, 14, 34, 0, time.UTC), ts.UTC())

	_, ok = ParseTimestamp("", nil)
	assert.False(t, ok)
}
