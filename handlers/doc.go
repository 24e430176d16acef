// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the keepsake API.

# Handler Types

Each handler is a struct over the service it exposes:

  - LockHandler: Answer checks and unlock tokens
  - CarouselHandler: Carousel state, navigation, swipe and hover
  - PhotoHandler: Photo upload, listing and deletion
  - NoteHandler: Love notes
  - QueueHandler: Shared music queue
  - SiteHandler: Visit counter, panel position and countdown

Handlers are created via constructor functions:

	lockHandler := handlers.NewLockHandler(v, cfg)
	photoHandler := handlers.NewPhotoHandler(g)

# Lock Screen

	POST /unlock → Unlock (returns an unlock token on success)

A wrong answer is a 401 carrying {"unlocked": false}. The token goes in the
X-Unlock-Token header of every guarded request.

# Uploads

	POST   /photos      → Upload (multipart: file, caption, date)
	DELETE /photos/{id} → Delete

Writes require the X-Upload-Key header. A photo whose stored reference cannot
be mapped back to a storage path is left untouched and reported as 422.

# Errors

Domain errors map to status codes in one place, writeError. Anything it does
not recognise is logged and returned as a generic 500.
*/
package handlers
