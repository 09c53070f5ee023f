// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/input.go
// Summary: Input values delivered to components, in pixel coordinates.

package ui

import "github.com/gdamore/tcell/v2"

// Input is a Pointer or a Key.
type Input interface {
	isInput()
}

// PointerKind classifies a pointer event.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerPress
	PointerRelease
	PointerWheel
	// PointerLeave is sent when the pointer leaves the host window.
	PointerLeave
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	case PointerWheel:
		return "wheel"
	case PointerLeave:
		return "leave"
	default:
		return "unknown"
	}
}

// Pointer is a mouse event in surface pixels.
type Pointer struct {
	Kind PointerKind
	X, Y float32
	// WheelDelta is in notches; positive scrolls toward the end.
	WheelDelta float32
}

// Key is a keyboard event.
type Key struct {
	Key  tcell.Key
	Rune rune
}

func (Pointer) isInput() {}
func (Key) isInput()     {}
