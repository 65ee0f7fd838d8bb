package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DeadlineLayout is the layout of the DEADLINE setting (local wall clock, no zone).
const DeadlineLayout = "2006-01-02T15:04:05"

// DefaultDeadline closes nominations and community voting.
const DefaultDeadline = "2025-01-15T23:59:00"

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	IdentitySecret string
	IPHashSalt     string
	Deadline       time.Time
	RulesPath      string
	SessionTTL     time.Duration
}

// ParseFlags validates flags and falls back to the environment (and .env) for anything unset
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var deadline, sessionTTL string

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	fs := flag.NewFlagSet("fiesta-awwards", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySecret, "identity-secret", "", "Identity assertion secret (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	fs.StringVar(&deadline, "deadline", "", "Nomination and voting deadline, local time (2006-01-02T15:04:05)")
	fs.StringVar(&cfg.RulesPath, "rules", "", "Path to the rules YAML file")
	fs.StringVar(&sessionTTL, "session-ttl", "", "Session lifetime (e.g. 24h)")

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

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:fiesta.db"
	}

	// Secrets - MUST be provided
	if cfg.IdentitySecret == "" {
		cfg.IdentitySecret = os.Getenv("IDENTITY_SECRET")
	}
	if cfg.IdentitySecret == "" {
		return Config{}, errors.New("IDENTITY_SECRET required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	if deadline == "" {
		deadline = os.Getenv("DEADLINE")
	}
	if deadline == "" {
		deadline = DefaultDeadline
	}
	d, err := time.ParseInLocation(DeadlineLayout, deadline, time.Local)
	if err != nil {
		return Config{}, fmt.Errorf("invalid deadline %q: %w", deadline, err)
	}
	cfg.Deadline = d

	if cfg.RulesPath == "" {
		cfg.RulesPath = os.Getenv("RULES_PATH")
	}
	if cfg.RulesPath == "" {
		cfg.RulesPath = "rules.yaml"
	}

	if sessionTTL == "" {
		sessionTTL = os.Getenv("SESSION_TTL")
	}
	cfg.SessionTTL = 24 * time.Hour
	if sessionTTL != "" {
		ttl, err := time.ParseDuration(sessionTTL)
		if err != nil || ttl <= 0 {
			return Config{}, fmt.Errorf("invalid session TTL %q", sessionTTL)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}
