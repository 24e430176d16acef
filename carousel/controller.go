// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package carousel

import (
	"slices"
	"sync"
	"time"
)

const (
	DefaultInterval    = 5 * time.Second
	DefaultResumeDelay = 6 * time.Second
)

// Slide is one carousel item. It has no identity beyond its position.
type Slide struct {
	Image   string `json:"image" yaml:"image"`
	Caption string `json:"caption" yaml:"caption"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The zero Options use the wall clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configure a Controller.
type Options struct {
	Interval    time.Duration
	ResumeDelay time.Duration
	Clock       Clock
	// OnChange is called, outside the controller lock, after the index or
	// slide list changes.
	OnChange func(index int)
}

// Controller owns the state of one carousel: the slides, the current index,
// the auto-advance timer and a pending resume.
//
// Each timer callback carries the generation it was scheduled under. Starting,
// stopping or superseding a timer bumps the generation, so a stale callback
// that fires late does nothing. This keeps at most one auto-advance timer and
// one resume live at any time.
type Controller struct {
	mu          sync.Mutex
	slides      []Slide
	index       int
	interval    time.Duration
	resumeDelay time.Duration
	clock       Clock
	onChange    func(int)

	auto      Timer
	autoGen   uint64
	resume    Timer
	resumeGen uint64
	closed    bool
}

// New creates a controller over slides. Auto-advance starts stopped.
func New(slides []Slide, opts Options) *Controller {
	c := &Controller{
		slides:      append([]Slide(nil), slides...),
		interval:    opts.Interval,
		resumeDelay: opts.ResumeDelay,
		clock:       opts.Clock,
		onChange:    opts.OnChange,
	}
	if c.interval <= 0 {
		c.interval = DefaultInterval
	}
	if c.resumeDelay <= 0 {
		c.resumeDelay = DefaultResumeDelay
	}
	if c.clock == nil {
		c.clock = wallClock{}
	}
	return c
}

// Index returns the current index.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.slides)
}

// Goto moves to i modulo the slide count, wrapping in both directions.
// It is a no-op with no slides.
func (c *Controller) Goto(i int) {
	c.mu.Lock()
	changed := c.gotoLocked(i)
	idx := c.index
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
}

// Next moves forward one slide.
func (c *Controller) Next() {
	c.mu.Lock()
	changed := c.gotoLocked(c.index + 1)
	idx := c.index
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
}

// Prev moves back one slide.
func (c *Controller) Prev() {
	c.mu.Lock()
	changed := c.gotoLocked(c.index - 1)
	idx := c.index
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
}

func (c *Controller) gotoLocked(i int) bool {
	n := len(c.slides)
	if n == 0 || c.closed {
		return false
	}
	c.index = ((i % n) + n) % n
	return true
}

// Jump is a user-driven Goto: it moves to i and pauses auto-advance, resuming
// after the grace delay. It returns the new index.
func (c *Controller) Jump(i int) int {
	c.mu.Lock()
	changed := c.gotoLocked(i)
	c.pauseThenResumeLocked()
	idx := c.index
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
	return idx
}

// Step is a user-driven move by delta slides with the same pause as Jump.
func (c *Controller) Step(delta int) int {
	c.mu.Lock()
	changed := c.gotoLocked(c.index + delta)
	c.pauseThenResumeLocked()
	idx := c.index
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
	return idx
}

// Swipe resolves a drag gesture and, if it is one, steps in its direction.
func (c *Controller) Swipe(dx, dy, viewportWidth float64) Direction {
	dir := ResolveSwipe(dx, dy, viewportWidth)
	switch dir {
	case Forward:
		c.Step(1)
	case Backward:
		c.Step(-1)
	}
	return dir
}

// StartAuto (re)starts the repeating auto-advance timer and drops any pending
// resume. Calling it repeatedly still leaves a single timer.
func (c *Controller) StartAuto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelResumeLocked()
	c.startAutoLocked()
}

// StopAuto cancels auto-advance. It is a no-op when already stopped.
func (c *Controller) StopAuto() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoLocked()
}

// PauseThenResume stops auto-advance now and schedules a single resume after
// the grace delay, replacing any resume already scheduled.
func (c *Controller) PauseThenResume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseThenResumeLocked()
}

// HoverEnter pauses as for manual navigation.
func (c *Controller) HoverEnter() {
	c.PauseThenResume()
}

// HoverLeave resumes auto-advance immediately.
func (c *Controller) HoverLeave() {
	c.StartAuto()
}

// Running reports whether the auto-advance timer is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto != nil
}

// ResumePending reports whether a resume is scheduled.
func (c *Controller) ResumePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resume != nil
}

func (c *Controller) startAutoLocked() {
	if c.closed {
		return
	}
	c.stopAutoLocked()
	gen := c.autoGen
	c.auto = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Controller) stopAutoLocked() {
	if c.auto != nil {
		c.auto.Stop()
		c.auto = nil
	}
	c.autoGen++
}

func (c *Controller) cancelResumeLocked() {
	if c.resume != nil {
		c.resume.Stop()
		c.resume = nil
	}
	c.resumeGen++
}

func (c *Controller) pauseThenResumeLocked() {
	if c.closed {
		return
	}
	c.stopAutoLocked()
	c.cancelResumeLocked()
	gen := c.resumeGen
	c.resume = c.clock.AfterFunc(c.resumeDelay, func() { c.resumeFired(gen) })
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.autoGen {
		c.mu.Unlock()
		return
	}
	changed := c.gotoLocked(c.index + 1)
	idx := c.index
	c.auto = c.clock.AfterFunc(c.interval, func() { c.tick(gen) })
	c.mu.Unlock()
	if changed {
		c.notify(idx)
	}
}

func (c *Controller) resumeFired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.resumeGen {
		return
	}
	c.resume = nil
	c.startAutoLocked()
}

// SetSlides replaces the slide list wholesale. The index is kept modulo the
// new length, or reset to 0 when the list is empty.
func (c *Controller) SetSlides(slides []Slide) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.slides = append([]Slide(nil), slides...)
	if n := len(c.slides); n == 0 {
		c.index = 0
	} else {
		c.index %= n
	}
	idx := c.index
	c.mu.Unlock()
	c.notify(idx)
}

// Close stops every timer. The controller ignores all calls afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopAutoLocked()
	c.cancelResumeLocked()
	c.closed = true
}

func (c *Controller) notify(idx int) {
	if c.onChange != nil {
		c.onChange(idx)
	}
}

// SlideView is a slide together with its computed transform.
type SlideView struct {
	Slide
	Position  int       `json:"position"`
	Active    bool      `json:"active"`
	Transform Transform `json:"transform"`
	CSS       string    `json:"css"`
}

// State is a consistent snapshot of the controller.
type State struct {
	Index         int         `json:"index"`
	Count         int         `json:"count"`
	Running       bool        `json:"running"`
	ResumePending bool        `json:"resume_pending"`
	Preload       []int       `json:"preload"`
	Slides        []SlideView `json:"slides"`
}

// Snapshot returns the current state with a transform for every slide.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Index:         c.index,
		Count:         len(c.slides),
		Running:       c.auto != nil,
		ResumePending: c.resume != nil,
		Preload:       c.preloadLocked(),
		Slides:        make([]SlideView, len(c.slides)),
	}
	for j, s := range c.slides {
		tr := TransformFor(j - c.index)
		st.Slides[j] = SlideView{
			Slide:     s,
			Position:  j,
			Active:    j == c.index,
			Transform: tr,
			CSS:       tr.CSS(),
		}
	}
	return st
}

// preloadLocked lists the current slide and its in-range neighbours, the
// images a client should fetch first.
func (c *Controller) preloadLocked() []int {
	n := len(c.slides)
	out := []int{}
	for _, i := range []int{c.index, c.index + 1, c.index - 1} {
		if i >= 0 && i < n && !slices.Contains(out, i) {
			out = append(out, i)
		}
	}
	return out
}
