// Package scheduler triggers ingestion cycles on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hockey-db/hockey-db/internal/ingestion"
	"github.com/robfig/cron/v3"
)

// Runner executes one ingestion cycle.
type Runner interface {
	Run(ctx context.Context) (*ingestion.RunReport, error)
}

// Scheduler runs ingestion cycles on a cron schedule.
// It is stateless: each tick derives its own window from the stored checkpoint.
type Scheduler struct {
	schedule   string
	runner     Runner
	runOnStart bool
	cron       *cron.Cron
}

// New validates the schedule and creates a scheduler. Ticks that fire while a cycle
// is still running are skipped.
func New(schedule string, runner Runner, runOnStart bool) (*Scheduler, error) {
	if runner == nil {
		panic("scheduler: runner must not be nil")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	logger := slogLogger{}
	return &Scheduler{
		schedule:   schedule,
		runner:     runner,
		runOnStart: runOnStart,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}, nil
}

// Start schedules the cycle and blocks until ctx is cancelled. On return the
// in-flight cycle, if any, has finished.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.tick(ctx) }); err != nil {
		return fmt.Errorf("scheduling ingestion: %w", err)
	}

	slog.Info("[Scheduler] Starting ingestion scheduler",
		"schedule", s.schedule,
		"run_on_start", s.runOnStart,
	)

	if s.runOnStart {
		s.tick(ctx)
	}

	s.cron.Start()
	<-ctx.Done()

	slog.Info("[Scheduler] Stopping (context cancelled), waiting for running cycle")
	<-s.cron.Stop().Done()
	slog.Info("[Scheduler] Stopped")
	return nil
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	report, err := s.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Info("[Scheduler] Cycle interrupted by shutdown")
			return
		}
		phase := ingestion.PhaseIdle
		if report != nil {
			phase = report.Phase
		}
		slog.Error("[Scheduler] Ingestion cycle aborted", "phase", phase, "error", err)
		return
	}

	slog.Info("[Scheduler] Ingestion cycle complete",
		"run_id", report.RunID,
		"inserted", report.Inserted,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
}

// slogLogger adapts cron's logger to slog.
type slogLogger struct{}

func (slogLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("[Scheduler] cron: "+msg, keysAndValues...)
}

func (slogLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("[Scheduler] cron: "+msg, append(keysAndValues, "error", err)...)
}
