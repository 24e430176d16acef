// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/keepsake/auth"
	"github.com/danielhkuo/keepsake/cliparse"
	"github.com/danielhkuo/keepsake/middleware"
	"github.com/danielhkuo/keepsake/models"
	"github.com/danielhkuo/keepsake/vault"
)

type LockHandler struct {
	vault *vault.Vault
	cfg   cliparse.Config
	now   func() time.Time
}

func NewLockHandler(v *vault.Vault, cfg cliparse.Config) *LockHandler {
	return &LockHandler{vault: v, cfg: cfg, now: time.Now}
}

// Unlock handles POST /unlock
func (h *LockHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req models.UnlockRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// A wrong answer is an ordinary outcome, not an error
	if !h.vault.Verify(req.Answers) {
		slog.Info("unlock rejected", "client", auth.HashIP(middleware.GetClientIP(r), h.cfg.UnlockSecret))
		middleware.JSONResponse(w, http.StatusUnauthorized, models.UnlockResponse{
			Unlocked: false,
			Message:  "Those answers don't match. Try again.",
		})
		return
	}

	slog.Info("unlocked")
	middleware.JSONResponse(w, http.StatusOK, models.UnlockResponse{
		Unlocked: true,
		Token:    auth.GenerateUnlockToken(h.cfg.UnlockSecret, h.now()),
	})
}
