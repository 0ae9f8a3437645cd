package helper

import (
	"hotel/config"
	"hotel/migrations"
	"io/fs"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "p@ss/word"
	cfg.DB.Postgres.Write.Name = "hotel"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	dsn, err := url.Parse(connectionString(cfg))
	require.NoError(t, err)

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "db:5432", dsn.Host)
	assert.Equal(t, "/test_hotel", dsn.Path)

	password, _ := dsn.User.Password()
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "disable", dsn.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", dsn.Query().Get("x-migrations-table"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrations.Postgres, migrations.PostgresDir)
	require.NoError(t, err)

	ups, downs := 0, 0

	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}

	assert.Equal(t, 5, ups)
	assert.Equal(t, ups, downs)
}

func TestRunnerRejectsUnknownAction(t *testing.T) {
	err := Runner(&config.Config{}, "sideways")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}
