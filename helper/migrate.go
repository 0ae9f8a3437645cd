package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"hotel/config"
	"hotel/migrations"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// connectionString targets the write node; schema changes never go to the replica.
func connectionString(config *config.Config) string {
	write := config.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if config.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     getDBName(config, write.Name),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, connectionString(config))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mig, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	return err
}

var actions = map[string]func(mig *migrate.Migrate) error{
	ActionUp:      func(mig *migrate.Migrate) error { return ignoreNoChange(mig.Up()) },
	ActionDown:    func(mig *migrate.Migrate) error { return ignoreNoChange(mig.Steps(-1)) },
	ActionStepUp:  func(mig *migrate.Migrate) error { return ignoreNoChange(mig.Steps(1)) },
	ActionDrop:    func(mig *migrate.Migrate) error { return ignoreNoChange(mig.Down()) },
	ActionVersion: func(*migrate.Migrate) error { return nil },
}

func Runner(config *config.Config, action string) error {
	run, ok := actions[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil {
		return fmt.Errorf("failed to run migration %s: %w", action, err)
	}

	return logVersion(mig, action)
}

func logVersion(mig *migrate.Migrate, action string) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Str("action", action).Msg("Database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migrations finished")

	return nil
}

// Force marks version as applied without running it. Used to clear a dirty state after
// fixing a migration that failed halfway.
func Force(config *config.Config, version int) error {
	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := mig.Force(version); err != nil {
		return fmt.Errorf("failed to force migration version %d: %w", version, err)
	}

	return logVersion(mig, "force")
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}
