package ingest

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler triggers ingestion cycles: one immediately at startup and then on
// a fixed cadence. Triggers that land while a cycle is still running are
// skipped to avoid duplicate network load.
type Scheduler struct {
	ingestor *Ingestor
	interval time.Duration
}

func NewScheduler(ingestor *Ingestor, interval time.Duration) *Scheduler {
	return &Scheduler{
		ingestor: ingestor,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.trigger(ctx)
		}
	}
}

func (s *Scheduler) trigger(ctx context.Context) {
	if _, ok := s.ingestor.TryRunCycle(ctx); !ok {
		slog.Debug("Ingestion cycle already in flight, skipping scheduled run")
	}
}
