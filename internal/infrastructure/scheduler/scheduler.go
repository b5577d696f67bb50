package scheduler

import (
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	SymbolsWarmupJob  = "symbols_warmup"
	DefaultJobTimeout = 30 * time.Second
)

// Refresher is satisfied by the symbol resolver
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler runs background jobs on cron specs
type Scheduler struct {
	cron       *cron.Cron
	jobTimeout time.Duration
}

func New(jobTimeout time.Duration) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = DefaultJobTimeout
	}
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		jobTimeout: jobTimeout,
	}
}

// AddSymbolsWarmup registers a job that refreshes the coin list snapshot on spec
func (s *Scheduler) AddSymbolsWarmup(spec string, refresher Refresher) error {
	if _, err := s.cron.AddFunc(spec, func() { s.RunSymbolsWarmup(refresher) }); err != nil {
		return fmt.Errorf("invalid warmup schedule %q: %w", spec, err)
	}
	logging.Info(context.Background(), "Symbols warm-up scheduled", logging.Fields{
		"job":      SymbolsWarmupJob,
		"schedule": spec,
	})
	return nil
}

// RunSymbolsWarmup ejecuta el job una vez
func (s *Scheduler) RunSymbolsWarmup(refresher Refresher) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	err := refresher.Refresh(ctx)
	metrics.RecordScheduledJob(SymbolsWarmupJob, err == nil)

	if err != nil {
		logging.Warn(ctx, "Symbols warm-up failed", logging.NewFieldBuilder().
			WithCustomField("job", SymbolsWarmupJob).
			WithError(err).
			WithDuration(time.Since(start)).
			Build())
		return
	}
	logging.Debug(ctx, "Symbols warm-up completed", logging.NewFieldBuilder().
		WithCustomField("job", SymbolsWarmupJob).
		WithDuration(time.Since(start)).
		Build())
}

func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or ctx, whichever comes first
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
