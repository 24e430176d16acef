// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/danielhkuo/keepsake/kv"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/models"
)

type SiteHandler struct {
	state kv.Store
	now   func() time.Time
}

func NewSiteHandler(state kv.Store) *SiteHandler {
	return &SiteHandler{state: state, now: time.Now}
}

// RecordVisit handles POST /visits
func (h *SiteHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	n, err := h.state.Incr(r.Context(), kv.KeyVisits)
	if err != nil {
		slog.Error("failed to count visit", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to count visit")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.VisitsResponse{Count: n})
}

// GetVisits handles GET /visits
func (h *SiteHandler) GetVisits(w http.ResponseWriter, r *http.Request) {
	var n int64
	v, err := h.state.Get(r.Context(), kv.KeyVisits)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		slog.Error("failed to read visits", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read visits")
		return
	default:
		n, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			slog.Error("stored visit count is not a number", "value", v)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read visits")
			return
		}
	}
	middleware.JSONResponse(w, http.StatusOK, models.VisitsResponse{Count: n})
}

// GetPanelPosition handles GET /panel-position
func (h *SiteHandler) GetPanelPosition(w http.ResponseWriter, r *http.Request) {
	raw, err := h.state.Get(r.Context(), kv.KeyPanelPosition)
	if errors.Is(err, kv.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No saved position")
		return
	}
	if err != nil {
		slog.Error("failed to read panel position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read panel position")
		return
	}

	var pos models.PanelPosition
	if err := json.Unmarshal([]byte(raw), &pos); err != nil {
		slog.Error("stored panel position is corrupt", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read panel position")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pos)
}

// PutPanelPosition handles PUT /panel-position
func (h *SiteHandler) PutPanelPosition(w http.ResponseWriter, r *http.Request) {
	var pos models.PanelPosition
	if err := middleware.ParseJSONBody(r, &pos); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !finite(pos.X) || !finite(pos.Y) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "x and y must be finite")
		return
	}

	raw, err := json.Marshal(pos)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save panel position")
		return
	}
	if err := h.state.Set(r.Context(), kv.KeyPanelPosition, string(raw)); err != nil {
		slog.Error("failed to save panel position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save panel position")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, pos)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Countdown handles GET /countdown
func (h *SiteHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	target := NextValentine(now)
	d := target.Sub(now)

	middleware.JSONResponse(w, http.StatusOK, models.CountdownResponse{
		Target:  target,
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d/time.Hour) % 24,
		Minutes: int(d/time.Minute) % 60,
		Seconds: int(d/time.Second) % 60,
	})
}

// NextValentine returns the next February 14th, 00:00 in now's location,
// strictly after now.
func NextValentine(now time.Time) time.Time {
	target := time.Date(now.Year(), time.February, 14, 0, 0, 0, 0, now.Location())
	if !target.After(now) {
		target = target.AddDate(1, 0, 0)
	}
	return target
}
