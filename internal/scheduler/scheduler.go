package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/road-conditions/internal/sensors"
)

// rolloverDelay keeps the job clear of the exact bucket boundary.
const rolloverDelay = 5 * time.Second

// Warmer is the part of sensors.Service the scheduler drives.
type Warmer interface {
	Get(ctx context.Context) sensors.Result
}

// Scheduler refreshes the sensor cache shortly after every bucket rollover
// so user requests rarely wait on the upstream.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	service    Warmer
	bucketSize time.Duration
	logger     *slog.Logger
}

// New creates a new Scheduler.
func New(bucketSize time.Duration, service Warmer, logger *slog.Logger) *Scheduler {
	if bucketSize <= 0 {
		bucketSize = sensors.DefaultBucketSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		service:    service,
		bucketSize: bucketSize,
		logger:     logger,
	}
}

// Start warms the cache once and schedules a warm-up per bucket.
func (s *Scheduler) Start() error {
	first := sensors.NextBucket(time.Now(), s.bucketSize).Add(rolloverDelay)

	_, err := s.scheduler.Every(s.bucketSize).StartAt(first).SingletonMode().Do(s.warm)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	go s.warm()

	s.logger.Info("scheduler: cache warm-up scheduled", "first", first, "every", s.bucketSize)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res := s.service.Get(ctx)
	s.logger.Info("scheduler: cache warm-up finished",
		"bucket", res.Bucket,
		"status", res.Status,
		"sensors", len(res.Readings),
	)
}
