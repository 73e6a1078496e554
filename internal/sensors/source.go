package sensors

import (
	"context"
	"time"
)

// Source abstracts the upstream sensor-data API.
type Source interface {
	Name() string
	// Fetch returns raw readings with timestamps after since. An empty
	// result with a nil error means the upstream had nothing to report.
	Fetch(ctx context.Context, since time.Time) ([]RawReading, error)
}

// Store holds the single cached Entry.
type Store interface {
	Save(entry Entry)
	Latest() (Entry, error)
}
