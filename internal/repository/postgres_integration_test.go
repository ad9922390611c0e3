//go:build integration

package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/activity-roster/internal/config"
	"github.com/Shivanand-hulikatti/activity-roster/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway PostgreSQL container, applies the
// migrations and returns a pool connected to it.
func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Host: host, Port: port.Port(), User: "testuser", Password: "testpass", Name: "testdb",
		SSLMode: "disable", MaxConns: 10, MinConns: 1, MaxConnLifetime: time.Minute,
		MaxConnIdleTime: time.Minute, ConnectAttempts: 3,
	}
	pool, err := database.NewPool(ctx, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

func TestPostgresRepository_Integration(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, Seed().Names(), list.Names())

	chess, _ := list.Get("Chess Club")
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)

	require.NoError(t, repo.Signup(ctx, "Chess Club", "new.student@mergington.edu"))
	assert.ErrorIs(t, repo.Signup(ctx, "Chess Club", "new.student@mergington.edu"), ErrAlreadyRegistered)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	chess, _ = list.Get("Chess Club")
	assert.Equal(t, "new.student@mergington.edu", chess.Participants[len(chess.Participants)-1])

	require.NoError(t, repo.Unregister(ctx, "Chess Club", "new.student@mergington.edu"))
	assert.ErrorIs(t, repo.Unregister(ctx, "Chess Club", "new.student@mergington.edu"), ErrNotRegistered)
	assert.ErrorIs(t, repo.Unregister(ctx, "Fencing", "x@x.com"), ErrNotFound)
}

func TestPostgresRepository_IntegrationConcurrentCapacity(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewPostgresRepository(pool)
	ctx := context.Background()

	// Math Club holds 10 with 2 seeded participants.
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			results <- repo.Signup(ctx, "Math Club", fmt.Sprintf("student%d@mergington.edu", i))
		}(i)
	}

	var ok, full int
	for i := 0; i < 20; i++ {
		switch err := <-results; {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, ErrActivityFull):
			full++
		}
	}
	assert.Equal(t, 8, ok)
	assert.Equal(t, 12, full)
}
