package sensors

import (
	"log/slog"
	"sort"
	"time"
)

// timestampLayouts are tried in order; the API normally emits the first one.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// ParseTimestamp parses an upstream timestamp. Floating timestamps are
// interpreted in loc (UTC when nil).
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// Reduce keeps the latest reading per sensor and converts it for display.
//
// On equal timestamps the reading encountered later in raw wins. A reading
// with an unparseable timestamp never replaces a stored one. The result is
// ordered by sensor id and has one element per distinct sensor.
func Reduce(raw []RawReading, loc *time.Location) []ProcessedReading {
	type latest struct {
		reading RawReading
		ts      time.Time
		valid   bool
	}

	bySensor := make(map[string]latest, len(raw))
	for _, r := range raw {
		ts, valid := ParseTimestamp(r.Timestamp, loc)

		cur, seen := bySensor[r.SensorID]
		if seen && (!valid || (cur.valid && ts.Before(cur.ts))) {
			continue
		}
		bySensor[r.SensorID] = latest{reading: r, ts: ts, valid: valid}
	}

	out := make([]ProcessedReading, 0, len(bySensor))
	for _, l := range bySensor {
		out = append(out, process(l.reading))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SensorID < out[j].SensorID
	})
	return out
}

func process(r RawReading) ProcessedReading {
	p := ProcessedReading{
		SensorID:     r.SensorID,
		LocationName: r.LocationName,
		Longitude:    r.Location.Coordinates[0],
		Latitude:     r.Location.Coordinates[1],
		Timestamp:    r.Timestamp,
		Condition:    ConditionFromCode(r.ConditionCodeDisplayed),
		GripText:     r.GripText,
	}

	if f, ok := CelsiusToFahrenheit(r.AirTempPrimary); ok {
		p.AirTempF = &f
	} else {
		slog.Warn("non-numeric air temperature", "sensor_id", r.SensorID, "value", r.AirTempPrimary)
	}
	if f, ok := CelsiusToFahrenheit(r.TempSurface); ok {
		p.SurfaceTempF = &f
	} else {
		slog.Warn("non-numeric surface temperature", "sensor_id", r.SensorID, "value", r.TempSurface)
	}

	return p
}
