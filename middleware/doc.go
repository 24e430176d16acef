// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms).

# Guards

Routes behind the lock screen need a valid unlock token:

	unlock := middleware.RequireUnlock(cfg.UnlockSecret, auth.UnlockTTL)
	mux.HandleFunc("GET /carousel", middleware.WithLogging(unlock(h.Get)))

Writes additionally need the upload key:

	upload := middleware.RequireUploadKey(cfg.UploadKeyDigest)

# Attempt Limiting

AttemptLimiter throttles unlock attempts per client using token buckets
from golang.org/x/time/rate. Clients are keyed by auth.HashIP.

	limiter := middleware.NewAttemptLimiter(5, salt)
	mux.HandleFunc("POST /unlock", limiter.Wrap(h.Unlock))

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Unlock-Token, X-Upload-Key.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.AddNoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
