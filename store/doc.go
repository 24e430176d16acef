// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store is the list storage behind photos, notes and songs. Records
// carry an opaque JSON payload; SQLStore keeps them in the record table.
package store
