// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/keepsake/blob"
	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/playlist"
	"github.com/danielhkuo/keepsake/store"
)

// writeError maps domain errors to status codes. Anything unrecognised is a
// collaborator failure and is logged with action before a generic 500.
func writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	case errors.Is(err, blob.ErrMalformedRef):
		slog.Warn("malformed storage reference", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, "Stored file reference is malformed; nothing was deleted")
	case errors.Is(err, gallery.ErrUnsupportedType):
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, gallery.ErrTooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, gallery.ErrEmpty),
		errors.Is(err, gallery.ErrInvalidDate),
		errors.Is(err, gallery.ErrMissingText),
		errors.Is(err, playlist.ErrInvalidURL):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, playlist.ErrIndex):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, playlist.ErrDuplicate),
		errors.Is(err, playlist.ErrEmpty):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "action", action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
