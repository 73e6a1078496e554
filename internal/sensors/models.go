package sensors

import "time"

// Condition is the human readable road surface state.
type Condition string

const (
	ConditionUnknown       Condition = "Unknown"
	ConditionDry           Condition = "Dry"
	ConditionDamp          Condition = "Damp"
	ConditionWet           Condition = "Wet"
	ConditionSnow          Condition = "Snow"
	ConditionIce           Condition = "Ice"
	ConditionStandingWater Condition = "Standing Water"
	ConditionDeepSnow      Condition = "Deep Snow"
	ConditionBlackIce      Condition = "Black Ice"
	ConditionError         Condition = "Error"
)

// Point is a GeoJSON point. Coordinates are [longitude, latitude].
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// RawReading is one record as returned by the open-data API.
// Numeric values arrive string encoded.
type RawReading struct {
	ID                     string `json:"id"`
	SensorID               string `json:"sensor_id"`
	LocationName           string `json:"location_name"`
	Location               Point  `json:"location"`
	Timestamp              string `json:"timestamp"` // floating, e.g. 2025-05-05T13:14:34.000
	TempSurface            string `json:"temp_surface"`
	AirTempPrimary         string `json:"air_temp_primary"`
	ConditionCodeDisplayed string `json:"condition_code_displayed"`
	GripText               string `json:"grip_text"`
	RelativeHumidity       string `json:"relative_humidity"`
}

// ProcessedReading is the display-ready view of a sensor's latest reading.
// A nil temperature means the upstream value was not numeric.
type ProcessedReading struct {
	SensorID     string    `json:"sensor_id"`
	LocationName string    `json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Timestamp    string    `json:"timestamp"`
	AirTempF     *int      `json:"air_temp_f"`
	SurfaceTempF *int      `json:"surface_temp_f"`
	Condition    Condition `json:"condition"`
	GripText     string    `json:"grip_text"`
}

// Entry is the single cached result. Readings holds at most one reading per
// sensor and must be treated as read-only once stored.
type Entry struct {
	Bucket    string
	Readings  []ProcessedReading
	FetchedAt time.Time
}
