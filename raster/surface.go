// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: raster/surface.go
// Summary: Drawing contracts consumed by widgets that paint pixels.
// Usage: Widgets draw through Canvas; Surface adds off-screen buffers for caching.

package raster

import (
	"errors"
	"image"
	"image/color"
)

// ErrOffscreenTooLarge is returned when an off-screen buffer exceeds the
// surface's allocation limit.
var ErrOffscreenTooLarge = errors.New("raster: offscreen buffer too large")

// Canvas is the minimal set of primitives a widget may draw with.
// Colors are non-premultiplied; drawing blends source-over.
type Canvas interface {
	FillRoundedRect(r image.Rectangle, radius int, c color.NRGBA)
	StrokeRoundedRect(r image.Rectangle, radius int, c color.NRGBA)
	DrawLine(x0, y0, x1, y1 int, c color.NRGBA)
}

// Offscreen is a pixel buffer that can be drawn into once and composited
// many times.
type Offscreen interface {
	Canvas
	Size() (w, h int)
	Release()
}

// Surface is a render target that can allocate and composite off-screen
// buffers.
type Surface interface {
	Canvas
	NewOffscreen(w, h int) (Offscreen, error)
	// Blit composites src with its top-left corner at (x, y), scaling every
	// source alpha by alpha.
	Blit(src Offscreen, x, y int, alpha float32)
}
