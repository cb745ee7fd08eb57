// Package config holds runtime configuration for the surveymesh server.
//
// Configuration is resolved once at startup: built-in defaults, then an
// optional .env file, then process environment variables. The validator
// thresholds live here as the single source of truth — no component
// hard-codes them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend selects the key-value store implementation.
type Backend string

const (
	// BackendBadger is the default embedded backend.
	BackendBadger Backend = "badger"
	// BackendSQLite stores the key namespace in a single SQLite table.
	BackendSQLite Backend = "sqlite"
)

// Config is the resolved server configuration.
type Config struct {
	// DataDir is the root directory for store instances.
	DataDir string

	// Backend selects the kv implementation for new instances.
	Backend Backend

	// MinAnswerLength is the trimmed length at or above which an answer
	// is classified VALID. Deployed variants have used 20 and 40; 40 is
	// the documented default.
	MinAnswerLength int

	// ScoreDivisor converts answer length into a score: length/ScoreDivisor.
	ScoreDivisor int

	// MaxScore caps the computed score.
	MaxScore int
}

// DefaultConfig returns the built-in defaults. DataDir resolves to
// ~/.surveymesh, falling back to the working directory when the home
// directory cannot be determined.
func DefaultConfig() Config {
	dataDir := ".surveymesh"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".surveymesh")
	}
	return Config{
		DataDir:         dataDir,
		Backend:         BackendBadger,
		MinAnswerLength: 40,
		ScoreDivisor:    20,
		MaxScore:        10,
	}
}

// Load resolves the effective configuration: defaults, then .env (if
// present), then SURVEYMESH_* environment variables.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is not an error

	cfg := DefaultConfig()

	if v := os.Getenv("SURVEYMESH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SURVEYMESH_BACKEND"); v != "" {
		switch Backend(v) {
		case BackendBadger, BackendSQLite:
			cfg.Backend = Backend(v)
		default:
			return Config{}, fmt.Errorf("config: unknown backend %q (want badger or sqlite)", v)
		}
	}

	var err error
	if cfg.MinAnswerLength, err = intEnv("SURVEYMESH_MIN_ANSWER_LENGTH", cfg.MinAnswerLength); err != nil {
		return Config{}, err
	}
	if cfg.ScoreDivisor, err = intEnv("SURVEYMESH_SCORE_DIVISOR", cfg.ScoreDivisor); err != nil {
		return Config{}, err
	}
	if cfg.MaxScore, err = intEnv("SURVEYMESH_MAX_SCORE", cfg.MaxScore); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// intEnv reads a positive integer from the environment, keeping the
// current value when the variable is unset.
func intEnv(name string, current int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return current, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %d", name, n)
	}
	return n, nil
}
