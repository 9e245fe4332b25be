// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppAdmin = "admin"
	AppVote  = "vote"

	StoreGoogle   = "google"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port            int
	App             string
	StoreType       string
	SheetID         string
	CredentialsFile string
	CredentialsJSON string
	DatabaseURL     string
	AdminKey        string
	VoteURL         string
	RefreshInterval time.Duration
	SessionTTL      time.Duration
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads flags, falls back to environment variables and validates
// the combination.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("classpoll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.App, "app", "", "Application role (admin or vote)")
	fs.StringVar(&cfg.StoreType, "store", "", "Spreadsheet backend (google, sqlite, postgres or memory)")
	fs.StringVar(&cfg.SheetID, "sheet", "", "Google spreadsheet id")
	fs.StringVar(&cfg.CredentialsFile, "credentials", "", "Service account JSON file")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL for sqlite or postgres backends")
	fs.StringVar(&cfg.VoteURL, "vote-url", "", "Public URL of the vote app, encoded in the admin QR code")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", 0, "Question refresh interval for the vote app")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle time before a participant session is dropped")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318
		}
	}

	cfg.App = orEnv(cfg.App, "APP", AppVote)
	if cfg.App != AppAdmin && cfg.App != AppVote {
		return Config{}, fmt.Errorf("unknown app %q (use admin or vote)", cfg.App)
	}

	cfg.StoreType = orEnv(cfg.StoreType, "STORE_TYPE", StoreGoogle)
	cfg.SheetID = orEnv(cfg.SheetID, "SHEET_ID", "")
	cfg.CredentialsFile = orEnv(cfg.CredentialsFile, "GOOGLE_APPLICATION_CREDENTIALS", "")
	cfg.CredentialsJSON = os.Getenv("GOOGLE_CREDENTIALS_JSON")
	cfg.DatabaseURL = orEnv(cfg.DatabaseURL, "DATABASE_URL", "")
	cfg.VoteURL = orEnv(cfg.VoteURL, "VOTE_URL", "")
	cfg.AdminKey = orEnv(cfg.AdminKey, "ADMIN_KEY", "")

	var err error
	if cfg.RefreshInterval, err = durationOrEnv(cfg.RefreshInterval, "refresh", "REFRESH_INTERVAL", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = durationOrEnv(cfg.SessionTTL, "session-ttl", "SESSION_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.StoreType {
	case StoreGoogle:
		if cfg.SheetID == "" {
			return Config{}, errors.New("spreadsheet id required (use -sheet or SHEET_ID env)")
		}
		if cfg.CredentialsFile == "" && cfg.CredentialsJSON == "" {
			return Config{}, errors.New("credentials required (use -credentials, GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS_JSON env)")
		}
	case StoreSQLite, StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	// Secrets - MUST be provided for the admin app
	if cfg.App == AppAdmin && cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	return cfg, nil
}

func orEnv(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

// durationOrEnv returns the flag value when set, else the env value, else
// fallback. Both sources must be positive.
func durationOrEnv(value time.Duration, flagName, key string, fallback time.Duration) (time.Duration, error) {
	if value < 0 {
		return 0, fmt.Errorf("invalid -%s flag: must be positive", flagName)
	}
	if value > 0 {
		return value, nil
	}
	env := os.Getenv(key)
	if env == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(env)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return d, nil
}
