// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/keepsake/auth"
	"github.com/danielhkuo/keepsake/carousel"
	"github.com/danielhkuo/keepsake/cliparse"
	"github.com/danielhkuo/keepsake/gallery"
	"github.com/danielhkuo/keepsake/handlers"
	"github.com/danielhkuo/keepsake/kv"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/playlist"
	"github.com/danielhkuo/keepsake/vault"
)

// Deps are the services the routes are served from.
type Deps struct {
	Vault     *vault.Vault
	Carousels *carousel.Registry
	Gallery   *gallery.Service
	Queue     *playlist.Queue
	State     kv.Store

	// Uploads serves local blob files under /uploads/. Nil when blobs live
	// in a bucket.
	Uploads http.Handler

	// Limiter throttles POST /unlock. Nil disables throttling.
	Limiter *middleware.AttemptLimiter
}

func NewRouter(cfg cliparse.Config, deps Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	lockHandler := handlers.NewLockHandler(deps.Vault, cfg)
	carouselHandler := handlers.NewCarouselHandler(deps.Carousels)
	photoHandler := handlers.NewPhotoHandler(deps.Gallery)
	noteHandler := handlers.NewNoteHandler(deps.Gallery)
	queueHandler := handlers.NewQueueHandler(deps.Queue)
	siteHandler := handlers.NewSiteHandler(deps.State)

	unlocked := middleware.RequireUnlock(cfg.UnlockSecret, auth.UnlockTTL)
	uploader := middleware.RequireUploadKey(cfg.UploadKeyDigest)
	log := middleware.WithLogging

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Lock screen (public)
	unlock := lockHandler.Unlock
	if deps.Limiter != nil {
		unlock = deps.Limiter.Wrap(unlock)
	}
	mux.HandleFunc("POST /unlock", log(unlock))
	mux.HandleFunc("GET /countdown", log(siteHandler.Countdown))
	mux.HandleFunc("POST /visits", log(siteHandler.RecordVisit))
	mux.HandleFunc("GET /visits", log(siteHandler.GetVisits))
	mux.HandleFunc("GET /panel-position", log(siteHandler.GetPanelPosition))
	mux.HandleFunc("PUT /panel-position", log(siteHandler.PutPanelPosition))

	// Carousel, one per visitor (requires X-Unlock-Token)
	mux.HandleFunc("GET /carousel", log(unlocked(carouselHandler.Get)))
	mux.HandleFunc("DELETE /carousel", log(unlocked(carouselHandler.Leave)))
	mux.HandleFunc("POST /carousel/next", log(unlocked(carouselHandler.Next)))
	mux.HandleFunc("POST /carousel/prev", log(unlocked(carouselHandler.Prev)))
	mux.HandleFunc("POST /carousel/goto", log(unlocked(carouselHandler.Goto)))
	mux.HandleFunc("POST /carousel/swipe", log(unlocked(carouselHandler.Swipe)))
	mux.HandleFunc("POST /carousel/hover", log(unlocked(carouselHandler.Hover)))

	// Gallery (reads require X-Unlock-Token, writes require X-Upload-Key)
	mux.HandleFunc("GET /photos", log(unlocked(photoHandler.List)))
	mux.HandleFunc("POST /photos", log(uploader(photoHandler.Upload)))
	mux.HandleFunc("DELETE /photos/{id}", log(uploader(photoHandler.Delete)))
	mux.HandleFunc("GET /notes", log(unlocked(noteHandler.List)))
	mux.HandleFunc("POST /notes", log(uploader(noteHandler.Create)))
	mux.HandleFunc("DELETE /notes/{id}", log(uploader(noteHandler.Delete)))

	// Music queue (requires X-Unlock-Token)
	mux.HandleFunc("GET /queue", log(unlocked(queueHandler.Get)))
	mux.HandleFunc("POST /queue", log(unlocked(queueHandler.Add)))
	mux.HandleFunc("DELETE /queue", log(unlocked(queueHandler.Clear)))
	mux.HandleFunc("DELETE /queue/{index}", log(unlocked(queueHandler.Remove)))
	mux.HandleFunc("POST /queue/next", log(unlocked(queueHandler.Next)))
	mux.HandleFunc("POST /queue/prev", log(unlocked(queueHandler.Prev)))
	mux.HandleFunc("POST /queue/play/{index}", log(unlocked(queueHandler.Play)))
	mux.HandleFunc("POST /queue/stop", log(unlocked(queueHandler.Stop)))

	if deps.Uploads != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", deps.Uploads))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("keepsake API v1"))
	})

	return mux
}
