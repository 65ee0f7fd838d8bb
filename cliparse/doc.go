// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (godotenv), so every
setting below can live there during development.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite DSN or PostgreSQL connection string
  - DatabaseType: sqlite (default) or postgres
  - IdentitySecret: Secret the identity provider signs assertions with (required)
  - IPHashSalt: Salt for hashing voter IPs (required)
  - Deadline: End of nominations and community voting (default: 2025-01-15T23:59:00 local)
  - RulesPath: Rules/categories/jury YAML file (default: rules.yaml)
  - SessionTTL: Session lifetime (default: 24h)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-identity-secret  Identity assertion secret
	-ip-salt          IP hash salt
	-deadline         Deadline, local time
	-rules            Rules file path
	-session-ttl      Session lifetime

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	IDENTITY_SECRET → -identity-secret
	IP_HASH_SALT    → -ip-salt
	DEADLINE        → -deadline
	RULES_PATH      → -rules
	SESSION_TTL     → -session-ttl

CLI flags take precedence over environment variables.
*/
package cliparse
