// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnvFile reads an optional .env file, then ParseFlags returns a Config:

	_ = cliparse.LoadEnvFile(".env")
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p            PORT                            Server port (default 3318)
	-app          APP                             admin or vote (default vote)
	-store        STORE_TYPE                      google, sqlite, postgres, memory (default google)
	-sheet        SHEET_ID                        Google spreadsheet id
	-credentials  GOOGLE_APPLICATION_CREDENTIALS  Service account JSON file
	              GOOGLE_CREDENTIALS_JSON         Service account JSON inline
	-d            DATABASE_URL                    sqlite file or postgres URL
	-admin-key    ADMIN_KEY                       Admin key (required for admin)
	-vote-url     VOTE_URL                        URL encoded in the admin QR code
	-refresh      REFRESH_INTERVAL                Vote app refresh interval (default 3s)
	-session-ttl  SESSION_TTL                     Idle session lifetime (default 2h)

CLI flags take precedence over environment variables, which take precedence
over the .env file.

# Validation

ParseFlags returns an error if the chosen store is missing its settings:
google needs a spreadsheet id and credentials, sqlite and postgres need a
database URL. The admin app requires ADMIN_KEY.
*/
package cliparse
