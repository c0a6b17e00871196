//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hockey-db/hockey-db/internal/core/storage/postgres"
	"github.com/hockey-db/hockey-db/internal/ingestion"
	"github.com/hockey-db/hockey-db/internal/projection"
	"github.com/hockey-db/hockey-db/internal/publisher"
	"github.com/hockey-db/hockey-db/internal/scheduler"
	"github.com/hockey-db/hockey-db/internal/server"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
	"github.com/hockey-db/hockey-db/internal/testhelpers"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const (
	storedGameID  = 2021020500
	missingGameID = 2021020501
	liveGameID    = 2021020502
	streamName    = "games.ingested"
)

// signallingRunner reports each finished scheduler cycle on done.
type signallingRunner struct {
	svc  *ingestion.Service
	done chan *ingestion.RunReport
}

func (r *signallingRunner) Run(ctx context.Context) (*ingestion.RunReport, error) {
	report, err := r.svc.Run(ctx)
	r.done <- report
	return report, err
}

type integrationHarness struct {
	baseURL       string
	client        *http.Client
	db            *sql.DB
	redis         *redis.Client
	feedRequests  *atomic.Int32
	cycles        chan *ingestion.RunReport
	cancel        context.CancelFunc
	serverDone    chan error
	schedulerDone chan error
}

func (h *integrationHarness) close(t *testing.T) {
	t.Helper()

	h.cancel()
	select {
	case <-h.serverDone:
	case <-time.After(5 * time.Second):
		t.Log("server shutdown timed out")
	}

	select {
	case <-h.schedulerDone:
	case <-time.After(5 * time.Second):
		t.Log("scheduler shutdown timed out")
	}
}

func TestPipeline_IngestReingestAndQuery(t *testing.T) {
	h := startHarness(t)
	defer h.close(t)

	// The scheduler's initial cycle stores the completed game.
	select {
	case first := <-h.cycles:
		require.NotNil(t, first)
		require.True(t, first.Bootstrap)
		require.Equal(t, 1, first.Inserted)
		require.Equal(t, 1, first.NotFound)
	case <-time.After(15 * time.Second):
		t.Fatal("initial scheduler cycle did not finish")
	}
	require.Equal(t, 1, countRows(t, h.db, "game"))
	require.Equal(t, 3, countRows(t, h.db, "event"))
	require.Equal(t, 5, countRows(t, h.db, "involved_player"))
	require.Equal(t, 2, countRows(t, h.db, "period"))
	require.Equal(t, 1, countRows(t, h.db, "arena"))

	// A triggered cycle over the same schedule changes nothing.
	status, body := post(t, h.client, h.baseURL+"/v1/runs")
	require.Equal(t, http.StatusOK, status, string(body))

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &report))
	require.Equal(t, "done", report["phase"])
	require.Equal(t, float64(2), report["candidates"])
	require.Equal(t, float64(0), report["inserted"])
	require.Equal(t, float64(2), report["skipped"])
	require.Equal(t, float64(1), report["not_found"])
	require.Equal(t, float64(0), report["failed"])
	require.Equal(t, false, report["bootstrap"])

	require.Equal(t, 1, countRows(t, h.db, "game"))
	require.Equal(t, 3, countRows(t, h.db, "event"))
	require.Equal(t, 5, countRows(t, h.db, "involved_player"))

	// Only the first ingestion announced new rows.
	n, err := h.redis.XLen(context.Background(), streamName).Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// The in-progress game was never fetched.
	require.Equal(t, int32(4), h.feedRequests.Load())

	status, body = get(t, h.client, fmt.Sprintf(
		"%s/v1/players/8478402/events?event_type=GOAL&start=%s&end=%s",
		h.baseURL, "2021-12-31T00:00:00Z", "2022-01-02T00:00:00Z"))
	require.Equal(t, http.StatusOK, status, string(body))

	var events struct {
		Events []struct {
			GameID     int64  `json:"game_id"`
			Type       string `json:"type"`
			PeriodTime string `json:"period_time"`
			Location   *struct {
				X int `json:"x"`
				Y int `json:"y"`
			} `json:"location"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events.Events, 1)
	require.Equal(t, int64(storedGameID), events.Events[0].GameID)
	require.Equal(t, "GOAL", events.Events[0].Type)
	require.Equal(t, "00:05:23", events.Events[0].PeriodTime)
	require.NotNil(t, events.Events[0].Location)
	require.Equal(t, 50, events.Events[0].Location.X)
	require.Equal(t, 10, events.Events[0].Location.Y)
}

func startHarness(t *testing.T) *integrationHarness {
	t.Helper()

	testDB := testhelpers.GetTestDB(t)
	testhelpers.ResetDB(t, testDB.DB)
	redisClient := testhelpers.GetTestRedis(t)

	feedRequests := &atomic.Int32{}
	source := newFakeNHL(t, feedRequests)

	adapter := postgres.NewAdapterFromDB(testDB.DB)
	client := nhl.NewClient(nhl.ClientConfig{BaseURL: source.URL, Timeout: 5 * time.Second})
	ingestionSvc := ingestion.NewService(client, adapter, adapter,
		publisher.NewStreamPublisher(redisClient, streamName),
		ingestion.Config{WorkerCount: 2, RunTimeout: 30 * time.Second, GameTimeout: 10 * time.Second})
	projectionSvc := projection.NewService(adapter)

	cycles := make(chan *ingestion.RunReport, 1)
	sched, err := scheduler.New("@every 1h", &signallingRunner{svc: ingestionSvc, done: cycles}, true)
	require.NoError(t, err)

	addr := fmt.Sprintf("127.0.0.1:%d", freePort(t))
	httpServer := server.New(addr, adapter, "release")
	ingestionSvc.RegisterRoutes(httpServer.Engine)
	projectionSvc.RegisterRoutes(httpServer.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	serverDone := make(chan error, 1)
	schedulerDone := make(chan error, 1)
	go func() { serverDone <- httpServer.Run(ctx) }()
	go func() { schedulerDone <- sched.Start(ctx) }()

	baseURL := "http://" + addr
	waitForHealthy(t, baseURL)

	return &integrationHarness{
		baseURL:       baseURL,
		client:        &http.Client{Timeout: 30 * time.Second},
		db:            testDB.DB,
		redis:         redisClient,
		feedRequests:  feedRequests,
		cycles:        cycles,
		cancel:        cancel,
		serverDone:    serverDone,
		schedulerDone: schedulerDone,
	}
}

// newFakeNHL serves a schedule with one stored, one vanished and one live game.
func newFakeNHL(t *testing.T, feedRequests *atomic.Int32) *httptest.Server {
	t.Helper()

	feed, err := os.ReadFile(filepath.Join(projectRoot(t), "internal", "normalize", "testdata", "feed_2021020500.json"))
	require.NoError(t, err)

	schedule := fmt.Sprintf(`{"dates": [{"date": "2022-01-01", "games": [
		{"gamePk": %d, "status": {"abstractGameState": "Final", "detailedState": "Final"}},
		{"gamePk": %d, "status": {"abstractGameState": "Final", "detailedState": "Final"}},
		{"gamePk": %d, "status": {"abstractGameState": "Live", "detailedState": "In Progress"}}
	]}]}`, storedGameID, missingGameID, liveGameID)

	mux := http.NewServeMux()
	mux.HandleFunc("/schedule", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, schedule)
	})
	mux.HandleFunc(fmt.Sprintf("/game/%d/feed/live", storedGameID), func(w http.ResponseWriter, _ *http.Request) {
		feedRequests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(feed)
	})
	mux.HandleFunc(fmt.Sprintf("/game/%d/feed/live", missingGameID), func(w http.ResponseWriter, _ *http.Request) {
		feedRequests.Add(1)
		http.Error(w, `{"message": "Game data couldn't be found"}`, http.StatusNotFound)
	})
	mux.HandleFunc(fmt.Sprintf("/game/%d/feed/live", liveGameID), func(w http.ResponseWriter, _ *http.Request) {
		t.Errorf("live game %d should not be fetched", liveGameID)
		http.Error(w, "unexpected", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func waitForHealthy(t *testing.T, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatalf("server did not become healthy at %s", baseURL)
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func post(t *testing.T, client *http.Client, endpoint string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, endpoint, nil)
	require.NoError(t, err)
	return do(t, client, req)
}

func get(t *testing.T, client *http.Client, endpoint string) (int, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	require.NoError(t, err)
	return do(t, client, req)
}

func do(t *testing.T, client *http.Client, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func freePort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func projectRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return root
}
