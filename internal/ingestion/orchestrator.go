package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hockey-db/hockey-db/internal/normalize"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
	"golang.org/x/sync/errgroup"
)

// ErrRunAborted is returned when a run cannot obtain its candidate set.
var ErrRunAborted = errors.New("ingestion run aborted")

// Run executes one ingestion cycle and returns its report.
//
// Only window determination and schedule enumeration abort a run; the report
// is still returned, with the phase it stopped in. Per-game failures are
// recorded in the report and never returned as an error.
//
// Concurrent calls share a single in-flight run and receive the same report.
func (s *Service) Run(ctx context.Context) (*RunReport, error) {
	v, err, shared := s.runs.Do("run", func() (interface{}, error) {
		return s.run(ctx)
	})
	report, _ := v.(*RunReport)
	if shared && report != nil {
		slog.Info("[Ingestion] Joined in-flight run", "run_id", report.RunID)
	}
	return report, err
}

func (s *Service) run(ctx context.Context) (*RunReport, error) {
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	now := s.nowFn()
	report := newRunReport(uuid.NewString(), now)
	log := slog.With("run_id", report.RunID)

	s.transition(log, report, PhaseDeterminingWindow)
	from, bootstrap, err := s.window(ctx, now)
	if err != nil {
		report.finish(s.nowFn())
		log.Error("[Ingestion] Run aborted", "phase", report.Phase, "error", err)
		return report, fmt.Errorf("%w: determine window: %w", ErrRunAborted, err)
	}
	report.WindowStart = from
	report.WindowEnd = now
	report.Bootstrap = bootstrap

	s.transition(log, report, PhaseEnumeratingGames)
	ids, err := s.source.ListCompletedGames(ctx, from, now)
	if err != nil {
		report.finish(s.nowFn())
		log.Error("[Ingestion] Run aborted", "phase", report.Phase, "error", err)
		return report, fmt.Errorf("%w: enumerate games: %w", ErrRunAborted, err)
	}
	report.Candidates = len(ids)
	log.Info("[Ingestion] Candidates enumerated",
		"window_start", from,
		"window_end", now,
		"bootstrap", bootstrap,
		"candidates", len(ids))

	s.transition(log, report, PhaseIngestingGames)
	s.ingestAll(ctx, log, ids, report)

	s.transition(log, report, PhaseDone)
	report.finish(s.nowFn())

	log.Info("[Ingestion] Run finished",
		"candidates", report.Candidates,
		"inserted", report.Inserted,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"events_inserted", report.EventsInserted,
		"players_inserted", report.PlayersInserted,
		"duration", report.FinishedAt.Sub(report.StartedAt))
	return report, nil
}

func (s *Service) transition(log *slog.Logger, report *RunReport, next Phase) {
	log.Debug("[Ingestion] Phase transition", "from", report.Phase, "to", next)
	report.Phase = next
}

// window returns the lower bound of the fetch window. Without a checkpoint it
// falls back to the bootstrap lookback, so older games are never backfilled.
func (s *Service) window(ctx context.Context, now time.Time) (time.Time, bool, error) {
	latest, ok, err := s.checkpoint.MostRecentEventTime(ctx)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ok {
		return now.Add(-s.cfg.BootstrapLookback), true, nil
	}
	return latest, false, nil
}

// ingestAll runs every candidate through the worker pool. Workers never return
// errors to the group, so one failing game cannot stop the others.
func (s *Service) ingestAll(ctx context.Context, log *slog.Logger, ids []int64, report *RunReport) {
	var g errgroup.Group
	g.SetLimit(s.cfg.WorkerCount)

	for _, id := range ids {
		g.Go(func() error {
			s.ingestGame(ctx, log, id, report)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) ingestGame(ctx context.Context, log *slog.Logger, id int64, report *RunReport) {
	log = log.With("game_id", id)

	gameCtx, cancel := context.WithTimeout(ctx, s.cfg.GameTimeout)
	defer cancel()

	feed, err := s.source.GetGame(gameCtx, id)
	if errors.Is(err, nhl.ErrGameNotFound) {
		log.Info("[Ingestion] Game not found at source, skipping")
		report.recordNotFound()
		return
	}
	if err != nil {
		s.fail(log, report, id, err)
		return
	}

	game, err := normalize.Game(feed)
	if err != nil {
		s.fail(log, report, id, err)
		return
	}
	if game.Game.ID != id {
		s.fail(log, report, id, &normalize.MalformedRecordError{
			GameID: id,
			Field:  "gamePk",
			Err:    fmt.Errorf("feed is for game %d", game.Game.ID),
		})
		return
	}

	res, err := s.writer.UpsertGame(gameCtx, game)
	if err != nil {
		s.fail(log, report, id, err)
		return
	}
	report.recordWrite(res)

	log.Debug("[Ingestion] Game ingested",
		"game_inserted", res.GameInserted,
		"events_inserted", res.EventsInserted,
		"events_skipped", res.EventsSkipped,
		"players_inserted", res.PlayersInserted)

	if s.notifier != nil && (res.GameInserted || res.EventsInserted > 0) {
		if err := s.notifier.GameIngested(gameCtx, id, res); err != nil {
			log.Warn("[Ingestion] Failed to publish ingested game", "error", err)
		}
	}
}

func (s *Service) fail(log *slog.Logger, report *RunReport, id int64, err error) {
	kind := classify(err)
	log.Error("[Ingestion] Game failed", "kind", kind, "error", err)
	report.recordFailure(id, err)
}
