// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/component.go
// Summary: Component contract and the z-ordered Stack that drives it.
// Usage: The host owns one Stack; it forwards input, updates, renders and releases.

package ui

import (
	"sort"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelbar/internal/theming"
	"github.com/framegrace/texelbar/raster"
	"github.com/framegrace/texelbar/scrollbar"
)

// CellSink receives text cells. tcell.Screen satisfies it.
type CellSink interface {
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// Frame is everything a component may draw into during one render pass.
type Frame struct {
	Pixels raster.Surface
	Cells  CellSink
	// CellW and CellH are the pixel size of one text cell.
	CellW, CellH int
	Scale        float32
	Theme        theming.Theme
}

// Component is a drawable, interactive element of the UI.
type Component interface {
	ZIndex() int
	SetBounds(b scrollbar.Rect)
	// HandleInput reports whether the input was consumed.
	HandleInput(in Input, now time.Time) bool
	Update(now time.Time)
	WantsFrame(now time.Time) bool
	Render(f *Frame)
	Release()
}

// Stack keeps components ordered by ZIndex (ties keep insertion order).
// Input goes top-down, rendering bottom-up.
type Stack struct {
	items []Component
	// capture receives every pointer event between a consumed press and
	// the matching release.
	capture Component
}

// Add inserts c in z-order.
func (s *Stack) Add(c Component) {
	s.items = append(s.items, c)
	sort.SliceStable(s.items, func(i, j int) bool {
		return s.items[i].ZIndex() < s.items[j].ZIndex()
	})
}

// Remove releases and removes c.
func (s *Stack) Remove(c Component) {
	for i, it := range s.items {
		if it == c {
			c.Release()
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if s.capture == c {
		s.capture = nil
	}
}

// Len returns the number of components.
func (s *Stack) Len() int { return len(s.items) }

// HandleInput delivers in to the topmost component that consumes it.
func (s *Stack) HandleInput(in Input, now time.Time) bool {
	if p, ok := in.(Pointer); ok && s.capture != nil {
		target := s.capture
		if p.Kind == PointerRelease || p.Kind == PointerLeave {
			s.capture = nil
		}
		target.HandleInput(in, now)
		if p.Kind == PointerLeave {
			s.broadcastLeave(target, p, now)
		}
		return true
	}
	if p, ok := in.(Pointer); ok && p.Kind == PointerLeave {
		s.broadcastLeave(nil, p, now)
		return false
	}
	for i := len(s.items) - 1; i >= 0; i-- {
		c := s.items[i]
		if c.HandleInput(in, now) {
			if p, ok := in.(Pointer); ok && p.Kind == PointerPress {
				s.capture = c
			}
			return true
		}
	}
	return false
}

func (s *Stack) broadcastLeave(skip Component, p Pointer, now time.Time) {
	for _, c := range s.items {
		if c != skip {
			c.HandleInput(p, now)
		}
	}
}

// Update advances every component to now.
func (s *Stack) Update(now time.Time) {
	for _, c := range s.items {
		c.Update(now)
	}
}

// WantsFrame reports whether any component is animating.
func (s *Stack) WantsFrame(now time.Time) bool {
	for _, c := range s.items {
		if c.WantsFrame(now) {
			return true
		}
	}
	return false
}

// Render draws components bottom-up.
func (s *Stack) Render(f *Frame) {
	for _, c := range s.items {
		c.Render(f)
	}
}

// Release frees every component's resources.
func (s *Stack) Release() {
	for _, c := range s.items {
		c.Release()
	}
	s.capture = nil
}
