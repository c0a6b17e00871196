package ingestion

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hockey-db/hockey-db/internal/core/storage"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
	"golang.org/x/sync/singleflight"
)

const (
	defaultGameTimeout       = time.Minute
	defaultBootstrapLookback = 24 * time.Hour
)

// GameSource lists completed games and fetches their feeds.
type GameSource interface {
	ListCompletedGames(ctx context.Context, from, to time.Time) ([]int64, error)
	GetGame(ctx context.Context, id int64) (*nhl.GameFeed, error)
}

// Notifier is told about every game whose transaction created rows.
type Notifier interface {
	GameIngested(ctx context.Context, gameID int64, res storage.WriteResult) error
}

// Config tunes a Service. Zero values fall back to defaults.
type Config struct {
	WorkerCount       int
	RunTimeout        time.Duration // zero means no limit beyond the caller's context
	GameTimeout       time.Duration
	BootstrapLookback time.Duration
}

// Service runs ingestion cycles: window, enumerate, then ingest each game.
type Service struct {
	source     GameSource
	checkpoint storage.CheckpointReader
	writer     storage.GameWriter
	notifier   Notifier
	cfg        Config

	runs  singleflight.Group
	nowFn func() time.Time
}

// NewService creates an ingestion service. notifier may be nil.
func NewService(
	source GameSource,
	checkpoint storage.CheckpointReader,
	writer storage.GameWriter,
	notifier Notifier,
	cfg Config,
) *Service {
	if source == nil {
		panic("ingestion: source must not be nil")
	}
	if checkpoint == nil {
		panic("ingestion: checkpoint reader must not be nil")
	}
	if writer == nil {
		panic("ingestion: writer must not be nil")
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}
	if cfg.GameTimeout <= 0 {
		cfg.GameTimeout = defaultGameTimeout
	}
	if cfg.BootstrapLookback <= 0 {
		cfg.BootstrapLookback = defaultBootstrapLookback
	}

	return &Service{
		source:     source,
		checkpoint: checkpoint,
		writer:     writer,
		notifier:   notifier,
		cfg:        cfg,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/runs", s.TriggerRunHandler)
}
