// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/visibility.go
// Summary: Time-driven visibility state machine (hidden, fading in, visible, fading out).
// Usage: Step is a pure transition function; AlphaAt is a pure opacity projection.
// Notes: Time is always injected so the fades can be tested without a clock.

package scrollbar

import "time"

// Phase is a state of the visibility machine.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseFadingIn
	PhaseVisible
	PhaseFadingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseFadingIn:
		return "fading_in"
	case PhaseVisible:
		return "visible"
	case PhaseFadingOut:
		return "fading_out"
	default:
		return "unknown"
	}
}

// Event is an input to the visibility machine.
type Event int

const (
	// EventTick advances fades and checks the idle deadline.
	EventTick Event = iota
	EventActivity
	EventHoverStart
	EventHoverEnd
	EventDragStart
	EventDragEnd
)

// Timing configures the idle-hide delay and fade durations.
type Timing struct {
	IdleDelay time.Duration
	FadeIn    time.Duration
	FadeOut   time.Duration
}

// DefaultTiming returns the stock idle and fade durations.
func DefaultTiming() Timing {
	return Timing{
		IdleDelay: 1500 * time.Millisecond,
		FadeIn:    130 * time.Millisecond,
		FadeOut:   220 * time.Millisecond,
	}
}

// Visibility is the value-typed state of the machine.
type Visibility struct {
	Phase           Phase
	Alpha           float32
	PhaseStart      time.Time
	PhaseStartAlpha float32
	IdleDeadline    time.Time
	Hovered         bool
	Dragging        bool

	// PendingDraw is set when the bar starts showing and cleared once a
	// frame has been drawn (or the bar is hidden again).
	PendingDraw bool
}

// Step applies ev at time now and returns the next state.
func Step(v Visibility, ev Event, now time.Time, tm Timing) Visibility {
	switch ev {
	case EventActivity:
		v = v.activity(now, tm)
	case EventHoverStart:
		v.Hovered = true
		v = v.activity(now, tm)
	case EventHoverEnd:
		// Hover renews the deadline on every tick; hosts stop ticking while
		// hovered, so renew it here once. The phase is left alone.
		if v.Hovered {
			v.Hovered = false
			if !v.Dragging {
				v.IdleDeadline = now.Add(tm.IdleDelay)
			}
		}
	case EventDragStart:
		v.Dragging = true
		v = v.activity(now, tm)
	case EventDragEnd:
		v.Dragging = false
		v = v.activity(now, tm)
	case EventTick:
		v = v.tick(now, tm)
	}
	return v
}

// AlphaAt projects the opacity of v at time now without changing it.
func (v Visibility) AlphaAt(now time.Time, tm Timing) float32 {
	switch v.Phase {
	case PhaseFadingIn:
		t := v.progress(now, tm.FadeIn)
		if t >= 1 {
			return 1
		}
		return v.PhaseStartAlpha + (1-v.PhaseStartAlpha)*EaseOutCubic(t)
	case PhaseVisible:
		return 1
	case PhaseFadingOut:
		t := v.progress(now, tm.FadeOut)
		if t >= 1 {
			return 0
		}
		return v.PhaseStartAlpha * (1 - EaseInOutCubic(t))
	default:
		return 0
	}
}

// WantsFrame reports whether the host should schedule another frame.
func (v Visibility) WantsFrame(now time.Time) bool {
	if v.PendingDraw {
		return true
	}
	switch v.Phase {
	case PhaseFadingIn, PhaseFadingOut:
		return true
	case PhaseVisible:
		// While held by hover or drag the opacity is pinned and the next
		// change arrives as an input event. Otherwise the idle deadline
		// has to be polled.
		return !v.Hovered && !v.Dragging
	default:
		return false
	}
}

func (v Visibility) activity(now time.Time, tm Timing) Visibility {
	v.IdleDeadline = now.Add(tm.IdleDelay)
	if v.Phase == PhaseHidden || v.Phase == PhaseFadingOut {
		v = v.enter(PhaseFadingIn, now, tm)
	}
	return v
}

func (v Visibility) tick(now time.Time, tm Timing) Visibility {
	if v.Hovered || v.Dragging {
		v.IdleDeadline = now.Add(tm.IdleDelay)
		if v.Phase == PhaseHidden || v.Phase == PhaseFadingOut {
			v = v.enter(PhaseFadingIn, now, tm)
		}
	} else if v.Phase == PhaseVisible && !now.Before(v.IdleDeadline) && v.Alpha > 0 {
		v = v.enter(PhaseFadingOut, now, tm)
	}

	v.Alpha = v.AlphaAt(now, tm)
	switch v.Phase {
	case PhaseFadingIn:
		if v.progress(now, tm.FadeIn) >= 1 {
			v.Phase = PhaseVisible
			v.PhaseStart = now
			v.PhaseStartAlpha = 1
			v.Alpha = 1
		}
	case PhaseFadingOut:
		if v.progress(now, tm.FadeOut) >= 1 {
			v.Phase = PhaseHidden
			v.PhaseStart = now
			v.PhaseStartAlpha = 0
			v.Alpha = 0
			v.PendingDraw = false
		}
	case PhaseHidden:
		v.Alpha = 0
	case PhaseVisible:
		v.Alpha = 1
	}
	return v
}

// enter switches phase, starting the new phase from the alpha visible at
// now so that reversing mid-fade never jumps.
func (v Visibility) enter(p Phase, now time.Time, tm Timing) Visibility {
	alpha := v.AlphaAt(now, tm)
	if p == PhaseFadingIn && v.Phase == PhaseHidden {
		v.PendingDraw = true
	}
	v.Phase = p
	v.PhaseStart = now
	v.PhaseStartAlpha = alpha
	v.Alpha = alpha
	return v
}

func (v Visibility) progress(now time.Time, d time.Duration) float32 {
	if d <= 0 {
		return 1
	}
	return clampf(float32(now.Sub(v.PhaseStart))/float32(d), 0, 1)
}
