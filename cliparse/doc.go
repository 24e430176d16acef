// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if it exists. It never
overrides variables that are already set.

# CLI Flags and Environment Variables

	-p                  PORT                 Server port (default 3318)
	-d                  DATABASE_URL         Database URL (required)
	-t                  DATABASE_TYPE        sqlite or postgres (default sqlite)
	-answers            ANSWERS_FILE         Answers YAML file (required)
	-allow-blank        ALLOW_BLANK_ANSWERS  Accept blank answers for empty references
	-unlock-secret      UNLOCK_SECRET        HMAC secret for unlock tokens (required)
	-upload-key-digest  UPLOAD_KEY_DIGEST    SHA-256 hex of the upload key (required)
	-unlock-rate        UNLOCK_RATE          Unlock attempts per minute per client (0 = unlimited)
	-blob               BLOB_BACKEND         local or gcs (default local)
	-blob-dir           BLOB_DIR             Local blob directory (default ./uploads)
	-public-url         PUBLIC_BASE_URL      Public URL prefix for local blobs
	-gcs-bucket         GCS_BUCKET           Bucket for the gcs backend
	-valkey             VALKEY_URL           Valkey URL for site state (empty = in-memory)
	-log-level          LOG_LEVEL            debug, info, warn, error
	-log-dir            LOG_DIR              Rotate logs into this directory
	-auto               CAROUSEL_INTERVAL    Auto-advance interval (default 5s)
	-resume             CAROUSEL_RESUME      Resume delay after manual navigation (default 6s)

CLI flags take precedence over environment variables.

# Secrets

Nothing secret lives in code. Lock-screen answers come from the answers file
(preferably as digests), and the upload key is configured as its digest.
*/
package cliparse
