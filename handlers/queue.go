// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/playlist"
)

type QueueHandler struct {
	queue *playlist.Queue
}

func NewQueueHandler(q *playlist.Queue) *QueueHandler {
	return &QueueHandler{queue: q}
}

// Get handles GET /queue
func (h *QueueHandler) Get(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Add handles POST /queue
func (h *QueueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddSongRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	song, err := h.queue.Add(r.Context(), req.URL)
	if err != nil {
		writeError(w, err, "add song")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, song)
}

// Remove handles DELETE /queue/{index}
func (h *QueueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if err := h.queue.Remove(r.Context(), index); err != nil {
		writeError(w, err, "remove song")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Play handles POST /queue/play/{index}
func (h *QueueHandler) Play(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	if _, err := h.queue.PlayAt(index); err != nil {
		writeError(w, err, "play song")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Next handles POST /queue/next
func (h *QueueHandler) Next(w http.ResponseWriter, r *http.Request) {
	if _, err := h.queue.Next(); err != nil {
		writeError(w, err, "skip song")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Prev handles POST /queue/prev
func (h *QueueHandler) Prev(w http.ResponseWriter, r *http.Request) {
	if _, err := h.queue.Prev(); err != nil {
		writeError(w, err, "skip song")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Stop handles POST /queue/stop
func (h *QueueHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.queue.Stop()
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

// Clear handles DELETE /queue
func (h *QueueHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.Clear(r.Context()); err != nil {
		writeError(w, err, "clear queue")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.queue.Snapshot())
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return index, true
}
