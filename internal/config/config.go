package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"certsale/internal/config/configs"
	"certsale/internal/core/domain"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// The nested structs are tagged with envPrefix so their fields are parsed
// with the given prefix. See the individual types in the configs package
// for default values and options. Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Storage configs.Storage `envPrefix:"STORAGE_"`
	AMQP    configs.AMQP    `envPrefix:"AMQP_"`
	Metrics configs.Metrics `envPrefix:"METRICS_"`
	Ledger  configs.Ledger  `envPrefix:"LEDGER_"`
}

// Load reads an optional .env file from the working directory, then parses
// environment variables into a Config and validates it. Variables already
// set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "postgres", "bolt":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "bolt" && c.Storage.BoltPath == "" {
		return errors.New("STORAGE_BOLT_PATH is required for the bolt driver")
	}
	if c.AMQP.Enabled && c.AMQP.URL == "" {
		return errors.New("AMQP_URL is required when AMQP is enabled")
	}
	if _, err := c.Ledger.TokenAddresses(); err != nil {
		return err
	}
	if _, err := domain.ParseIdentity(c.Ledger.SeedOwner); err != nil {
		return fmt.Errorf("LEDGER_SEED_OWNER: %w", err)
	}
	return nil
}
