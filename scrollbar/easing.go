// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/easing.go
// Summary: Easing curves used by the visibility fades.

package scrollbar

// EasingFunc maps progress [0,1] to eased progress [0,1].
type EasingFunc func(t float32) float32

var (
	// EaseOutCubic - fast start, gentle landing. Used for fade-in.
	EaseOutCubic EasingFunc = func(t float32) float32 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - slow at both ends. Used for fade-out.
	EaseInOutCubic EasingFunc = func(t float32) float32 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)
