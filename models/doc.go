// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - UnlockRequest: answers (map[string]string)
  - GotoRequest: index
  - SwipeRequest: dx, dy, viewport_width
  - HoverRequest: entered
  - AddNoteRequest: date, title, text
  - AddSongRequest: url
  - PanelPosition: x, y (also returned as-is)

# Response Types

Types for JSON responses:

  - UnlockResponse: unlocked, token, message
  - SwipeResponse: direction, index
  - QueueResponse: songs, current
  - VisitsResponse: count
  - CountdownResponse: target, days, hours, minutes, seconds
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Photo: uploaded photo with its public URL
  - Note: timeline entry
  - Song: queued video

# Constants

Answer keys:

  - AnswerDate, AnswerColor, AnswerPlace
*/
package models
