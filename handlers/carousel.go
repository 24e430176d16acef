// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/models"
)

// CarouselHandler serves each visitor their own carousel, keyed by the
// unlock token they present.
type CarouselHandler struct {
	sessions *carousel.Registry
}

func NewCarouselHandler(sessions *carousel.Registry) *CarouselHandler {
	return &CarouselHandler{sessions: sessions}
}

// controller returns the caller's carousel, writing an error response when
// there is none.
func (h *CarouselHandler) controller(w http.ResponseWriter, r *http.Request) (*carousel.Controller, bool) {
	key := r.Header.Get(middleware.HeaderUnlockToken)
	if key == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unlock token required")
		return nil, false
	}
	ctrl := h.sessions.Acquire(key)
	if ctrl == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Shutting down")
		return nil, false
	}
	return ctrl, true
}

// Get handles GET /carousel
func (h *CarouselHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

// Next handles POST /carousel/next
func (h *CarouselHandler) Next(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	ctrl.Step(1)
	middleware.JSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

// Prev handles POST /carousel/prev
func (h *CarouselHandler) Prev(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}
	ctrl.Step(-1)
	middleware.JSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

// Goto handles POST /carousel/goto
func (h *CarouselHandler) Goto(w http.ResponseWriter, r *http.Request) {
	var req models.GotoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	ctrl.Jump(req.Index)
	middleware.JSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

// Swipe handles POST /carousel/swipe
func (h *CarouselHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	var req models.SwipeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ViewportWidth < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "viewport_width must not be negative")
		return
	}
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	dir := ctrl.Swipe(req.DX, req.DY, req.ViewportWidth)
	middleware.JSONResponse(w, http.StatusOK, models.SwipeResponse{
		Direction: dir.String(),
		Index:     ctrl.Index(),
	})
}

// Hover handles POST /carousel/hover
func (h *CarouselHandler) Hover(w http.ResponseWriter, r *http.Request) {
	var req models.HoverRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	ctrl, ok := h.controller(w, r)
	if !ok {
		return
	}

	if req.Entered {
		ctrl.HoverEnter()
	} else {
		ctrl.HoverLeave()
	}
	middleware.JSONResponse(w, http.StatusOK, ctrl.Snapshot())
}

// Leave handles DELETE /carousel. It stops the caller's carousel timers; the
// next carousel request starts a fresh one.
func (h *CarouselHandler) Leave(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get(middleware.HeaderUnlockToken)
	if key == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unlock token required")
		return
	}
	h.sessions.Release(key)
	w.WriteHeader(http.StatusNoContent)
}
