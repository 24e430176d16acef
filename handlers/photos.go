// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/middleware"
)

// multipart overhead allowed on top of the photo itself
const formOverhead = 1 << 20

type PhotoHandler struct {
	gallery *gallery.Service
}

func NewPhotoHandler(g *gallery.Service) *PhotoHandler {
	return &PhotoHandler{gallery: g}
}

// List handles GET /photos
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.gallery.Photos())
}

// Upload handles POST /photos (multipart: file, caption, date)
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > gallery.MaxPhotoBytes+formOverhead {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, gallery.ErrTooLarge.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, gallery.MaxPhotoBytes+formOverhead)
	if err := r.ParseMultipartForm(formOverhead); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, gallery.ErrTooLarge.Error())
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, gallery.MaxPhotoBytes+1))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	photo, err := h.gallery.AddPhoto(r.Context(), gallery.Upload{
		Filename: header.Filename,
		Data:     data,
		Caption:  r.FormValue("caption"),
		Date:     r.FormValue("date"),
	})
	if err != nil {
		writeError(w, err, "upload photo")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, photo)
}

// Delete handles DELETE /photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "photo id is required")
		return
	}

	if err := h.gallery.DeletePhoto(r.Context(), id); err != nil {
		writeError(w, err, "delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
