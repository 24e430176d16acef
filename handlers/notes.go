// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/models"
)

type NoteHandler struct {
	gallery *gallery.Service
}

func NewNoteHandler(g *gallery.Service) *NoteHandler {
	return &NoteHandler{gallery: g}
}

// List handles GET /notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.gallery.Notes())
}

// Create handles POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.AddNoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	note, err := h.gallery.AddNote(r.Context(), req)
	if err != nil {
		writeError(w, err, "add note")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, note)
}

// Delete handles DELETE /notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.gallery.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err, "delete note")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
