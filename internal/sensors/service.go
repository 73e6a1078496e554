package sensors

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status describes where the readings of a Result came from.
type Status string

const (
	// StatusCached means the entry for the current bucket was reused.
	StatusCached Status = "cached"
	// StatusFresh means the upstream was queried and the cache updated.
	StatusFresh Status = "fresh"
	// StatusEmpty means the upstream answered with no rows.
	StatusEmpty Status = "empty"
	// StatusDegraded means the upstream call failed.
	StatusDegraded Status = "degraded"
)

// Result is what Get hands back to callers. Readings is never nil.
type Result struct {
	Bucket   string
	Readings []ProcessedReading
	Status   Status
}

const (
	defaultFetchWindow  = 15 * time.Minute
	defaultFetchTimeout = 30 * time.Second
)

var errNoSource = errors.New("no sensor source configured")

// Service is the bucketed cache in front of the upstream Source.
type Service struct {
	store  Store
	source Source

	now          func() time.Time
	bucketSize   time.Duration
	window       time.Duration
	fetchTimeout time.Duration
	loc          *time.Location
	logger       *slog.Logger

	group      singleflight.Group
	lastStatus atomic.Value // Status
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithBucketSize sets the cache validity window.
func WithBucketSize(d time.Duration) Option {
	return func(s *Service) { s.bucketSize = d }
}

// WithFetchWindow sets how far back a refresh asks the upstream for data.
func WithFetchWindow(d time.Duration) Option {
	return func(s *Service) { s.window = d }
}

// WithFetchTimeout bounds a single refresh.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) { s.fetchTimeout = d }
}

// WithLocation sets the zone floating upstream timestamps are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a new Service.
func NewService(store Store, source Source, opts ...Option) *Service {
	s := &Service{
		store:        store,
		source:       source,
		now:          time.Now,
		bucketSize:   DefaultBucketSize,
		window:       defaultFetchWindow,
		fetchTimeout: defaultFetchTimeout,
		loc:          time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get returns the readings for the current bucket, refreshing from the
// upstream when the stored entry belongs to another bucket. Upstream
// failures never surface as errors: the caller gets an empty Result and the
// stored entry is left untouched.
func (s *Service) Get(ctx context.Context) Result {
	now := s.now()
	bucket := BucketKey(now, s.bucketSize)

	if res, ok := s.cached(bucket); ok {
		return res
	}

	// Concurrent misses for one bucket share a single upstream call.
	v, _, _ := s.group.Do(bucket, func() (interface{}, error) {
		if res, ok := s.cached(bucket); ok {
			return res, nil
		}
		return s.refresh(ctx, now, bucket), nil
	})

	res := v.(Result)
	if res.Status != StatusCached {
		s.lastStatus.Store(res.Status)
	}
	return res
}

// Latest returns the stored entry regardless of its bucket.
func (s *Service) Latest() (Entry, error) {
	return s.store.Latest()
}

// CurrentBucket is the bucket key for the service clock's now.
func (s *Service) CurrentBucket() string {
	return BucketKey(s.now(), s.bucketSize)
}

// LastRefresh reports the outcome of the most recent upstream attempt.
func (s *Service) LastRefresh() (Status, bool) {
	st, ok := s.lastStatus.Load().(Status)
	return st, ok
}

func (s *Service) cached(bucket string) (Result, bool) {
	entry, err := s.store.Latest()
	if err != nil || entry.Bucket != bucket {
		return Result{}, false
	}
	return Result{Bucket: bucket, Readings: entry.Readings, Status: StatusCached}, true
}

func (s *Service) refresh(ctx context.Context, now time.Time, bucket string) Result {
	empty := func(st Status) Result {
		return Result{Bucket: bucket, Readings: []ProcessedReading{}, Status: st}
	}

	if s.source == nil {
		s.logger.Error("cannot refresh sensor cache", "bucket", bucket, "error", errNoSource)
		return empty(StatusDegraded)
	}

	// Shared by every caller waiting on this flight.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
	defer cancel()

	since := now.Add(-s.window)
	s.logger.Debug("refreshing sensor cache", "bucket", bucket, "source", s.source.Name(), "since", since)

	raw, err := s.source.Fetch(ctx, since)
	if err != nil {
		s.logger.Warn("sensor fetch failed; serving empty result", "bucket", bucket, "source", s.source.Name(), "error", err)
		return empty(StatusDegraded)
	}
	if len(raw) == 0 {
		s.logger.Warn("no sensor data returned from upstream", "bucket", bucket, "source", s.source.Name())
		return empty(StatusEmpty)
	}

	readings := Reduce(raw, s.loc)
	s.store.Save(Entry{
		Bucket:    bucket,
		Readings:  readings,
		FetchedAt: now.UTC(),
	})
	s.logger.Info("sensor cache refreshed", "bucket", bucket, "raw", len(raw), "sensors", len(readings))

	return Result{Bucket: bucket, Readings: readings, Status: StatusFresh}
}
