// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver by type, postgres (lib/pq) or sqlite (modernc.org/sqlite):

	conn, err := db.Open("sqlite", "file:keepsake.db")

SQLite connections are capped at one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - record: one row per stored item, grouped by collection (photos, notes,
    songs). The payload is JSON text.

# Indexes

  - record.(collection, created_at)
*/
package db
