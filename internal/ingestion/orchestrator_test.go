package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
	"github.com/hockey-db/hockey-db/internal/core/storage"
	ingestionmocks "github.com/hockey-db/hockey-db/internal/mocks/ingestion"
	storagemocks "github.com/hockey-db/hockey-db/internal/mocks/storage"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var runNow = time.Date(2022, 1, 2, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	source     *ingestionmocks.GameSource
	checkpoint *storagemocks.CheckpointReader
	writer     *storagemocks.GameWriter
	notifier   *ingestionmocks.Notifier
}

func newTestService(t *testing.T, cfg Config) (*Service, testDeps) {
	t.Helper()

	deps := testDeps{
		source:     ingestionmocks.NewGameSource(t),
		checkpoint: storagemocks.NewCheckpointReader(t),
		writer:     storagemocks.NewGameWriter(t),
		notifier:   ingestionmocks.NewNotifier(t),
	}
	svc := NewService(deps.source, deps.checkpoint, deps.writer, deps.notifier, cfg)
	svc.nowFn = func() time.Time { return runNow }
	return svc, deps
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int { return &v }
func timePtr(v time.Time) *time.Time { return &v }

// feedFor builds a minimal valid feed with one GOAL event for the given game.
func feedFor(id int64) *nhl.GameFeed {
	start := time.Date(2022, 1, 1, 0, 30, 0, 0, time.UTC)
	return &nhl.GameFeed{
		GamePk: int64Ptr(id),
		GameData: nhl.GameData{
			Game:     &nhl.GameInfo{Pk: id, Season: "20212022", Type: "R"},
			DateTime: &nhl.GameDateTime{DateTime: timePtr(start)},
			Teams: &nhl.Teams{
				Home: &nhl.TeamRef{ID: int64Ptr(22)},
				Away: &nhl.TeamRef{ID: int64Ptr(10)},
			},
			Venue: &nhl.Venue{Name: "Rogers Place"},
		},
		LiveData: nhl.LiveData{Plays: nhl.Plays{AllPlays: []nhl.Play{{
			Players: []nhl.PlayerRole{{Player: nhl.PlayerRef{ID: 8478402}, PlayerType: "Scorer"}},
			Result:  &nhl.PlayResult{EventTypeID: "GOAL"},
			About: &nhl.PlayAbout{
				EventIdx:   intPtr(0),
				Period:     intPtr(1),
				PeriodType: "REGULAR",
				PeriodTime: "05:23",
				DateTime:   timePtr(start.Add(19 * time.Minute)),
			},
		}}}},
	}
}

func gameWithID(id int64) interface{} {
	return mock.MatchedBy(func(g *hockey.NormalizedGame) bool { return g.Game.ID == id })
}

func TestService_Run_BootstrapWindowWithoutCheckpoint(t *testing.T) {
	svc, deps := newTestService(t, Config{})

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().
		ListCompletedGames(mock.Anything, runNow.Add(-24*time.Hour), runNow).
		Return([]int64{}, nil).
		Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseDone, report.Phase)
	require.True(t, report.Bootstrap)
	require.Equal(t, runNow.Add(-24*time.Hour), report.WindowStart)
	require.Equal(t, runNow, report.WindowEnd)
	require.Zero(t, report.Candidates)
	require.NotEmpty(t, report.RunID)
}

func TestService_Run_WindowStartsAtCheckpoint(t *testing.T) {
	svc, deps := newTestService(t, Config{BootstrapLookback: 72 * time.Hour})
	latest := time.Date(2022, 1, 1, 0, 30, 0, 0, time.UTC)

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(latest, true, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, latest, runNow).Return(nil, nil).Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.False(t, report.Bootstrap)
	require.Equal(t, latest, report.WindowStart)
}

func TestService_Run_CheckpointGameOnPreviousLocalDate(t *testing.T) {
	// The checkpoint game started 19:30 ET on 2022-01-01 (00:30Z on the 2nd). A later
	// game on the same local card, still live at the previous run, must be listed.
	var gotStart string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" {
			http.NotFound(w, r)
			return
		}
		gotStart = r.URL.Query().Get("startDate")
		body := `{"dates": []}`
		if gotStart <= "2022-01-01" {
			body = `{"dates": [{"date": "2022-01-01", "games": [
				{"gamePk": 2021020600, "status": {"abstractGameState": "Final", "detailedState": "Final"}},
				{"gamePk": 2021020601, "status": {"abstractGameState": "Final", "detailedState": "Final"}}
			]}]}`
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	checkpoint := storagemocks.NewCheckpointReader(t)
	writer := storagemocks.NewGameWriter(t)
	client := nhl.NewClient(nhl.ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	svc := NewService(client, checkpoint, writer, nil, Config{})
	svc.nowFn = func() time.Time { return runNow }

	latest := time.Date(2022, 1, 2, 0, 30, 0, 0, time.UTC)
	checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(latest, true, nil).Once()

	// Feeds are not served; both candidates end up as not-found skips.
	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2022-01-01", gotStart)
	require.Equal(t, 2, report.Candidates)
	require.Equal(t, 2, report.NotFound)
}

func TestService_Run_PartialFailureIsolation(t *testing.T) {
	svc, deps := newTestService(t, Config{})

	malformed := feedFor(5)
	malformed.GameData.Venue = nil

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().
		ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).
		Return([]int64{1, 2, 3, 4, 5}, nil).
		Once()

	deps.source.EXPECT().GetGame(mock.Anything, int64(1)).Return(feedFor(1), nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(2)).
		Return(nil, fmt.Errorf("fetch game 2: %w", nhl.ErrSourceUnavailable)).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(3)).
		Return(nil, fmt.Errorf("game 3: %w", nhl.ErrGameNotFound)).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(4)).Return(feedFor(4), nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(5)).Return(malformed, nil).Once()

	deps.writer.EXPECT().UpsertGame(mock.Anything, gameWithID(1)).
		Return(storage.WriteResult{GameInserted: true, EventsInserted: 1, PlayersInserted: 1}, nil).Once()
	deps.writer.EXPECT().UpsertGame(mock.Anything, gameWithID(4)).
		Return(storage.WriteResult{}, &storage.PersistenceError{GameID: 4, Op: "insert event 0", Err: errors.New("fk violation")}).Once()

	deps.notifier.EXPECT().
		GameIngested(mock.Anything, int64(1), storage.WriteResult{GameInserted: true, EventsInserted: 1, PlayersInserted: 1}).
		Return(nil).Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, PhaseDone, report.Phase)
	require.Equal(t, 5, report.Candidates)
	require.Equal(t, 1, report.Inserted)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, 1, report.NotFound)
	require.Equal(t, 3, report.Failed)
	require.Equal(t, 1, report.EventsInserted)
	require.Equal(t, 1, report.PlayersInserted)

	require.Len(t, report.Failures, 3)
	require.Equal(t, int64(2), report.Failures[0].GameID)
	require.Equal(t, KindSourceUnavailable, report.Failures[0].Kind)
	require.Equal(t, int64(4), report.Failures[1].GameID)
	require.Equal(t, KindPersistence, report.Failures[1].Kind)
	require.Equal(t, int64(5), report.Failures[2].GameID)
	require.Equal(t, KindMalformedRecord, report.Failures[2].Kind)
	require.Contains(t, report.Failures[2].Error, "gameData.venue.name")
}

func TestService_Run_AlreadyStoredGameIsSkipped(t *testing.T) {
	svc, deps := newTestService(t, Config{})

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(runNow.Add(-time.Hour), true, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).Return([]int64{7}, nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(7)).Return(feedFor(7), nil).Once()
	deps.writer.EXPECT().UpsertGame(mock.Anything, gameWithID(7)).
		Return(storage.WriteResult{EventsSkipped: 1}, nil).Once()
	// No notification for a game that created no rows.

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, report.Inserted)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, 0, report.NotFound)
	require.Equal(t, 1, report.EventsSkipped)
}

func TestService_Run_NotifierFailureDoesNotFailGame(t *testing.T) {
	svc, deps := newTestService(t, Config{})
	res := storage.WriteResult{GameInserted: true, EventsInserted: 1, PlayersInserted: 1}

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).Return([]int64{1}, nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(1)).Return(feedFor(1), nil).Once()
	deps.writer.EXPECT().UpsertGame(mock.Anything, gameWithID(1)).Return(res, nil).Once()
	deps.notifier.EXPECT().GameIngested(mock.Anything, int64(1), res).Return(errors.New("redis down")).Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Inserted)
	require.Zero(t, report.Failed)
}

func TestService_Run_FeedForAnotherGameIsMalformed(t *testing.T) {
	svc, deps := newTestService(t, Config{})

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).Return([]int64{1}, nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(1)).Return(feedFor(99), nil).Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, KindMalformedRecord, report.Failures[0].Kind)
}

func TestService_Run_Aborts(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(deps testDeps)
		wantPhase Phase
		wantErr   error
	}{
		{
			name: "checkpoint unreadable",
			setup: func(deps testDeps) {
				deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).
					Return(time.Time{}, false, errors.New("connection refused")).Once()
			},
			wantPhase: PhaseDeterminingWindow,
		},
		{
			name: "schedule unavailable",
			setup: func(deps testDeps) {
				deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
				deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("fetch schedule: %w", nhl.ErrSourceUnavailable)).Once()
			},
			wantPhase: PhaseEnumeratingGames,
			wantErr:   nhl.ErrSourceUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, deps := newTestService(t, Config{})
			tc.setup(deps)

			report, err := svc.Run(context.Background())
			require.ErrorIs(t, err, ErrRunAborted)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
			require.NotNil(t, report)
			require.Equal(t, tc.wantPhase, report.Phase)
			require.Zero(t, report.Inserted+report.Skipped+report.Failed)
		})
	}
}

func TestService_Run_WorkerPoolIngestsEveryCandidate(t *testing.T) {
	svc, deps := newTestService(t, Config{WorkerCount: 4})

	ids := make([]int64, 20)
	for i := range ids {
		ids[i] = int64(1000 + i)
	}

	var inFlight, maxInFlight atomic.Int32
	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).Return(ids, nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id int64) (*nhl.GameFeed, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				cur := maxInFlight.Load()
				if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return feedFor(id), nil
		}).
		Times(len(ids))
	deps.writer.EXPECT().UpsertGame(mock.Anything, mock.Anything).
		Return(storage.WriteResult{GameInserted: true}, nil).
		Times(len(ids))
	deps.notifier.EXPECT().GameIngested(mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Times(len(ids))

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(ids), report.Inserted)
	require.LessOrEqual(t, maxInFlight.Load(), int32(4))
}

func TestService_Run_GameTimeoutAppliesPerGame(t *testing.T) {
	svc, deps := newTestService(t, Config{GameTimeout: 20 * time.Millisecond})

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).Return([]int64{1, 2}, nil).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(1)).
		RunAndReturn(func(ctx context.Context, id int64) (*nhl.GameFeed, error) {
			<-ctx.Done()
			return nil, fmt.Errorf("%w: making request: %w", nhl.ErrSourceUnavailable, ctx.Err())
		}).Once()
	deps.source.EXPECT().GetGame(mock.Anything, int64(2)).Return(feedFor(2), nil).Once()
	deps.writer.EXPECT().UpsertGame(mock.Anything, gameWithID(2)).
		Return(storage.WriteResult{GameInserted: true}, nil).Once()
	deps.notifier.EXPECT().GameIngested(mock.Anything, int64(2), mock.Anything).Return(nil).Once()

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Inserted)
	require.Equal(t, 1, report.Failed)
	require.Equal(t, int64(1), report.Failures[0].GameID)
}

func TestService_Run_ConcurrentCallsShareOneRun(t *testing.T) {
	svc, deps := newTestService(t, Config{})

	entered := make(chan struct{})
	release := make(chan struct{})

	deps.checkpoint.EXPECT().MostRecentEventTime(mock.Anything).Return(time.Time{}, false, nil).Once()
	deps.source.EXPECT().ListCompletedGames(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, time.Time, time.Time) ([]int64, error) {
			close(entered)
			<-release
			return nil, nil
		}).Once()

	var wg sync.WaitGroup
	reports := make([]*RunReport, 2)
	run := func(i int) {
		defer wg.Done()
		r, err := svc.Run(context.Background())
		require.NoError(t, err)
		reports[i] = r
	}

	wg.Add(1)
	go run(0)
	<-entered

	wg.Add(1)
	go run(1)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Same(t, reports[0], reports[1])
}

func TestNewService_NilDependenciesPanic(t *testing.T) {
	source := ingestionmocks.NewGameSource(t)
	checkpoint := storagemocks.NewCheckpointReader(t)
	writer := storagemocks.NewGameWriter(t)

	require.Panics(t, func() { NewService(nil, checkpoint, writer, nil, Config{}) })
	require.Panics(t, func() { NewService(source, nil, writer, nil, Config{}) })
	require.Panics(t, func() { NewService(source, checkpoint, nil, nil, Config{}) })
	require.NotPanics(t, func() { NewService(source, checkpoint, writer, nil, Config{}) })
}

func TestClassify(t *testing.T) {
	require.Equal(t, KindCancelled, classify(context.DeadlineExceeded))
	require.Equal(t, KindUnknown, classify(errors.New("boom")))
	require.Equal(t, KindSourceUnavailable, classify(&nhl.StatusError{StatusCode: 503}))
	require.Equal(t, KindMalformedRecord,
		classify(fmt.Errorf("fetch game 1: %w: decoding feed: %w", nhl.ErrMalformedResponse, errors.New("readUint64"))))
}
