package database

import (
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-itinerary-generator/config"
)

func TestNewDatabaseConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("missing host", func(t *testing.T) {
		_, err := NewDatabaseConfig(&config.Config{}, logger)
		assert.Error(t, err)
		_, err = NewDatabaseConfig(nil, logger)
		assert.Error(t, err)
	})

	t.Run("builds postgresql url", func(t *testing.T) {
		var cfg config.Config
		cfg.Repositories.Postgres.Host = "localhost"
		cfg.Repositories.Postgres.Port = "5432"
		cfg.Repositories.Postgres.Username = "trip"
		cfg.Repositories.Postgres.Password = "p@ss"
		cfg.Repositories.Postgres.DB = "itineraries"
		cfg.Repositories.Postgres.MAXCONWAITINGTIME = 10

		dbCfg, err := NewDatabaseConfig(&cfg, logger)
		require.NoError(t, err)

		u, err := url.Parse(dbCfg.ConnectionURL)
		require.NoError(t, err)
		assert.Equal(t, "postgresql", u.Scheme)
		assert.Equal(t, "localhost:5432", u.Host)
		assert.Equal(t, "/itineraries", u.Path)
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss", pw)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
		assert.Equal(t, "10", u.Query().Get("connect_timeout"))
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunMigrations_RejectsBadScheme(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
