// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/state.go
// Summary: Long-lived per-viewport scrollbar state: visibility, drag, render caches.
// Usage: One State per scrollable viewport, mutated on the UI goroutine only.

package scrollbar

import "time"

// InteractionStyle selects the thumb appearance.
type InteractionStyle int

const (
	StyleNormal InteractionStyle = iota
	StyleHovered
	StyleDragging
)

func (s InteractionStyle) String() string {
	switch s {
	case StyleHovered:
		return "hovered"
	case StyleDragging:
		return "dragging"
	default:
		return "normal"
	}
}

// State tracks visibility, the current drag and the cached visuals of one
// scrollbar. It is not safe for concurrent use.
type State struct {
	vis     Visibility
	timing  Timing
	palette Palette

	grabOffset float32

	track visualSlot
	thumb visualSlot

	fallbackLogged bool
}

// NewState returns a hidden scrollbar state.
func NewState(opts Options) *State {
	return &State{
		timing:  opts.Timing,
		palette: opts.Palette,
	}
}

// SetOptions replaces timing and palette. Cached visuals are dropped when
// the palette changes.
func (s *State) SetOptions(opts Options) {
	s.timing = opts.Timing
	if opts.Palette != s.palette {
		s.palette = opts.Palette
		s.Release()
	}
}

// Update advances fades and the idle timer to now.
func (s *State) Update(now time.Time) {
	s.vis = Step(s.vis, EventTick, now, s.timing)
}

// NoteActivity shows the scrollbar and restarts the idle countdown.
func (s *State) NoteActivity(now time.Time) {
	s.vis = Step(s.vis, EventActivity, now, s.timing)
}

// SetHovered records pointer hover over the scrollbar.
func (s *State) SetHovered(hovered bool, now time.Time) {
	if hovered == s.vis.Hovered {
		return
	}
	ev := EventHoverEnd
	if hovered {
		ev = EventHoverStart
	}
	s.vis = Step(s.vis, ev, now, s.timing)
}

// BeginDrag starts a thumb drag at pointer y. The grab point within the
// thumb is preserved for the rest of the drag.
func (s *State) BeginDrag(l Layout, y float32, now time.Time) {
	s.grabOffset = y - l.Thumb.Y
	s.vis = Step(s.vis, EventDragStart, now, s.timing)
}

// EndDrag finishes a drag and restarts the idle countdown from now.
func (s *State) EndDrag(now time.Time) {
	if !s.vis.Dragging {
		return
	}
	s.vis = Step(s.vis, EventDragEnd, now, s.timing)
}

// WantsFrame reports whether another frame is needed to settle.
func (s *State) WantsFrame(now time.Time) bool {
	return s.vis.WantsFrame(now)
}

// Alpha is the opacity computed by the last Update.
func (s *State) Alpha() float32 { return s.vis.Alpha }

// Phase is the current visibility phase.
func (s *State) Phase() Phase { return s.vis.Phase }

func (s *State) Hovered() bool  { return s.vis.Hovered }
func (s *State) Dragging() bool { return s.vis.Dragging }

// GrabOffset is the pointer-to-thumb-top distance recorded by BeginDrag.
func (s *State) GrabOffset() float32 { return s.grabOffset }

// Visibility returns a copy of the state machine value.
func (s *State) Visibility() Visibility { return s.vis }

// Style derives the thumb appearance from hover and drag.
func (s *State) Style() InteractionStyle {
	switch {
	case s.vis.Dragging:
		return StyleDragging
	case s.vis.Hovered:
		return StyleHovered
	default:
		return StyleNormal
	}
}

// Release frees cached visuals. The state stays usable; caches are rebuilt
// on the next Render.
func (s *State) Release() {
	s.track.release()
	s.thumb.release()
}
