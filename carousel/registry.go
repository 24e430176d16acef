// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package carousel

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Registry owns one Controller per visitor session. Every controller shows
// the same slide list; SetSlides pushes a new list to all of them.
type Registry struct {
	opts Options
	idle time.Duration
	now  func() time.Time

	mu       sync.Mutex
	slides   []Slide
	sessions map[string]*session
	closed   bool
}

type session struct {
	ctrl     *Controller
	lastSeen time.Time
}

// NewRegistry creates an empty registry. Sessions unused for longer than
// idle are closed by Sweep. opts is applied to every controller created.
func NewRegistry(idle time.Duration, opts Options) *Registry {
	return &Registry{
		opts:     opts,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Acquire returns the controller for key, creating it with the current
// slides and auto-advance running when the session is new. It returns nil
// once the registry is closed.
func (r *Registry) Acquire(key string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	now := r.now()
	if s, ok := r.sessions[key]; ok {
		s.lastSeen = now
		return s.ctrl
	}

	c := New(r.slides, r.opts)
	c.StartAuto()
	r.sessions[key] = &session{ctrl: c, lastSeen: now}
	slog.Debug("carousel session opened", "sessions", len(r.sessions))
	return c
}

// Release closes and forgets the session for key. Unknown keys are ignored.
func (r *Registry) Release(key string) {
	r.mu.Lock()
	s, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if ok {
		s.ctrl.Close()
	}
}

// SetSlides replaces the slide list of every live session and of sessions
// created later.
func (r *Registry) SetSlides(slides []Slide) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slides = slices.Clone(slides)
	for _, s := range r.sessions {
		s.ctrl.SetSlides(r.slides)
	}
}

// Slides returns the slide list new sessions start with.
func (r *Registry) Slides() []Slide {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.slides)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than the idle limit and returns how
// many it closed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	now := r.now()
	var stale []*Controller
	for key, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.idle {
			stale = append(stale, s.ctrl)
			delete(r.sessions, key)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Close()
	}
	if len(stale) > 0 {
		slog.Debug("closed idle carousel sessions", "count", len(stale))
	}
	return len(stale)
}

// SweepEvery runs Sweep on every tick until ctx is done.
func (r *Registry) SweepEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close closes every session. Acquire returns nil afterwards.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*session)
	r.closed = true
	r.mu.Unlock()

	for _, s := range sessions {
		s.ctrl.Close()
	}
}
