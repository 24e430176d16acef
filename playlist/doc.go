// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package playlist keeps the shared song queue.

Songs are YouTube links. Add extracts the video ID (watch?v=, youtu.be/,
embed/ and v/ forms), refuses duplicates, and looks the title up through a
TitleFetcher, falling back to DefaultTitle. The queue is persisted in the
songs collection and reloaded at start-up.

The play cursor wraps in both directions with Next and Prev. Current is -1
until something has been played.
*/
package playlist
