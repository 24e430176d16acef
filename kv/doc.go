// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package kv persists small pieces of site state: the visit counter and the
// saved panel position. ValkeyStore is used when a Valkey URL is configured,
// MemoryStore otherwise.
package kv
