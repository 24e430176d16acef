// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the keepsake API server.

Keepsake is a small private gift site: a lock screen of personal questions
guards a photo carousel, love notes and a shared music queue.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=keepsake.db ANSWERS_FILE=answers.yaml \
	UNLOCK_SECRET=... UPLOAD_KEY_DIGEST=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d keepsake.db -answers answers.yaml

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ANSWERS_FILE (-answers): YAML answers or digests for the lock screen
  - UNLOCK_SECRET (-unlock-secret): HMAC secret for unlock tokens
  - UPLOAD_KEY_DIGEST (-upload-key-digest): SHA-256 hex of the upload key

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BLOB_BACKEND (-blob): local or gcs (default: local)
  - GCS_BUCKET, GCS_CREDENTIALS_FILE: Cloud Storage settings
  - VALKEY_URL (-valkey): shared state for visits and panel position
  - SLIDES_FILE (-slides): static carousel slides
  - UNLOCK_RATE (-unlock-rate): unlock attempts per minute per client
  - LOG_LEVEL, LOG_DIR: logging

# Architecture

  - vault: Answer digests and verification
  - carousel: Slide state, auto-advance and transforms
  - gallery: Photos and notes over store and blob
  - playlist: Music queue with oEmbed titles
  - handlers, router, middleware: HTTP surface
  - store, db: Records in SQLite or PostgreSQL
  - blob: Local or Cloud Storage files
  - kv: Visit counter and panel position, in memory or Valkey
  - auth, cliparse, logging: Tokens, configuration and logs

See package documentation for each component.
*/
package main
