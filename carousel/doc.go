// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package carousel manages the photo carousel: a circular index over an ordered
slide list, timed auto-advance, and the stacked 3D layout of each slide.

# Navigation

	c := carousel.New(slides, carousel.Options{})
	c.Next()      // wraps to 0 after the last slide
	c.Prev()      // wraps to the last slide before 0
	c.Goto(-1)    // ((i % n) + n) % n

With no slides every navigation call is a no-op.

User-driven moves (Step, Jump, Swipe, HoverEnter) stop auto-advance and
schedule one resume after ResumeDelay; a later user action replaces it.

# Auto-advance

	c.StartAuto() // one repeating timer, restarting is safe
	c.StopAuto()
	c.Close()     // cancels all timers; the controller is inert afterwards

# Sessions

Each visitor gets their own controller, so one visitor's navigation never
moves or pauses another's. A Registry hands them out by session key:

	reg := carousel.NewRegistry(auth.UnlockTTL, carousel.Options{})
	c := reg.Acquire(token) // created on first use, auto-advance running
	reg.SetSlides(slides)   // pushed to every live session
	go reg.SweepEvery(ctx, time.Minute)

Sessions idle longer than the limit are closed; Release closes one at once.

# Layout

TransformFor(offset) gives the z-order, scale, displacement, rotation and
opacity of a slide at a signed offset from the current one. Only slides within
two positions of the current one are visible. Snapshot returns the whole state
with a transform per slide.

# Gestures

ResolveSwipe turns a drag into Forward, Backward or None. The horizontal travel
must exceed max(40px, 10% of the viewport) and the vertical travel.
*/
package carousel
