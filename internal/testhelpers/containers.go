// Package testhelpers starts shared PostgreSQL and Redis containers for
// integration tests.
package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/hockey-db/hockey-db/internal/migrations"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"

	// DSNEnv points the tests at an existing database instead of a container.
	DSNEnv = "HOCKEYDB_TEST_DSN"
	// RedisURLEnv points the tests at an existing Redis instead of a container.
	RedisURLEnv = "HOCKEYDB_TEST_REDIS_URL"
)

// TestDB is a migrated PostgreSQL database shared by every test in the run.
type TestDB struct {
	Container testcontainers.Container // nil when DSNEnv is set
	DB        *sql.DB
	DSN       string
}

var (
	sharedTestDB     *TestDB
	sharedTestDBOnce sync.Once
	sharedTestDBErr  error

	sharedRedisURL     string
	sharedRedisURLOnce sync.Once
	sharedRedisURLErr  error
)

// GetTestDB returns the shared database with migrations applied.
// The container is created once and reused across all tests in the run.
func GetTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedTestDBOnce.Do(func() {
		sharedTestDB, sharedTestDBErr = setupTestDB()
	})

	if sharedTestDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedTestDBErr)
	}

	return sharedTestDB
}

func setupTestDB() (*TestDB, error) {
	ctx := context.Background()

	var container testcontainers.Container
	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		req := testcontainers.ContainerRequest{
			Image:        postgresImage,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "hockeydb_test",
				"POSTGRES_USER":     "hockeydb",
				"POSTGRES_PASSWORD": "test_password",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		}

		var err error
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to start postgres container: %w", err)
		}

		endpoint, err := container.PortEndpoint(ctx, "5432/tcp", "")
		if err != nil {
			return nil, fmt.Errorf("failed to get postgres endpoint: %w", err)
		}
		dsn = fmt.Sprintf("postgres://hockeydb:test_password@%s/hockeydb_test?sslmode=disable", endpoint)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection with retry
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.RunMigrations(db, true); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}, nil
}

// ResetDB empties every hockey table. Tests sharing the database call it first.
func ResetDB(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx,
		`TRUNCATE TABLE involved_player, event, period, game, arena RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}
}

// GetTestRedis returns a client on the shared Redis, flushed for this test.
func GetTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedRedisURLOnce.Do(func() {
		sharedRedisURL, sharedRedisURLErr = setupTestRedis()
	})

	if sharedRedisURLErr != nil {
		t.Fatalf("Failed to setup test redis: %v", sharedRedisURLErr)
	}

	opts, err := redis.ParseURL(sharedRedisURL)
	if err != nil {
		t.Fatalf("Failed to parse redis url: %v", err)
	}

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("Failed to flush test redis: %v", err)
	}
	return client
}

func setupTestRedis() (string, error) {
	if url := os.Getenv(RedisURLEnv); url != "" {
		return url, nil
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start redis container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		return "", fmt.Errorf("failed to get redis endpoint: %w", err)
	}
	return "redis://" + endpoint + "/0", nil
}
