package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"hotel/config"
	"hotel/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	DefaultSource = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

func migrationURL(cfg *config.Config) (string, error) {
	dsn, err := url.Parse(postgres.WriteDSN(cfg))
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	query := dsn.Query()
	query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	dsn.RawQuery = query.Encode()

	return dsn.String(), nil
}

// Runner applies action against the write database using migrations found at source.
func Runner(cfg *config.Config, source, action string) error {
	databaseURL, err := migrationURL(cfg)
	if err != nil {
		return err
	}

	mig, err := migrate.New(source, databaseURL)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migration completed successfully")

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, DefaultSource, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, DefaultSource, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, DefaultSource, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, DefaultSource, ActionDrop)
}
