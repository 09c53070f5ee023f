// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/geometry.go
// Summary: Pure geometry model mapping content metrics to track/thumb rectangles.
// Usage: Hosts build Metrics every frame and call ComputeLayout before hit-testing or drawing.

package scrollbar

import "math"

// Rect is an axis-aligned rectangle in device pixels.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Metrics describes the scrollable content along the vertical axis.
// Values are always normalized; build them with NewMetrics.
type Metrics struct {
	Total    float32
	Offset   float32
	Viewport float32
}

// NewMetrics clamps total and viewport to be non-negative and offset to
// [0, MaxOffset]. It is the only place inputs are normalized.
func NewMetrics(total, offset, viewport float32) Metrics {
	m := Metrics{
		Total:    maxf(0, total),
		Viewport: maxf(0, viewport),
	}
	m.Offset = clampf(offset, 0, m.MaxOffset())
	return m
}

// MaxOffset is the largest valid scroll offset.
func (m Metrics) MaxOffset() float32 {
	return maxf(0, m.Total-m.Viewport)
}

// IsScrollable reports whether the content overflows a non-empty viewport.
func (m Metrics) IsScrollable() bool {
	return m.Total > m.Viewport && m.Viewport > 0
}

// NormalizedOffset returns the offset as a fraction of MaxOffset.
func (m Metrics) NormalizedOffset() float32 {
	maxOffset := m.MaxOffset()
	if maxOffset <= 0 {
		return 0
	}
	return clampf(m.Offset/maxOffset, 0, 1)
}

// WithOffset returns a copy scrolled to offset, re-clamped.
func (m Metrics) WithOffset(offset float32) Metrics {
	return NewMetrics(m.Total, offset, m.Viewport)
}

// ScrollBy returns a copy scrolled by delta, re-clamped.
func (m Metrics) ScrollBy(delta float32) Metrics {
	return m.WithOffset(m.Offset + delta)
}

// Layout is the per-frame geometry of a visible scrollbar.
type Layout struct {
	Track       Rect
	Thumb       Rect
	ThumbTravel float32
}

// Geometry holds the logical (unscaled) dimensions of the scrollbar.
type Geometry struct {
	Width          float32
	RightMargin    float32
	VerticalMargin float32
	MinThumbHeight float32
}

// DefaultGeometry returns the stock scrollbar dimensions.
func DefaultGeometry() Geometry {
	return Geometry{
		Width:          10,
		RightMargin:    4,
		VerticalMargin: 14,
		MinThumbHeight: 28,
	}
}

// Scale converts a logical length to device pixels. Every scaled length in
// this package goes through here so fractional factors round the same way.
func Scale(v, factor float32) float32 {
	return float32(math.Round(float64(v * factor)))
}

// ComputeLayout places the scrollbar inside bounds using DefaultGeometry.
// ok is false when nothing should be drawn or hit-tested this frame.
func ComputeLayout(bounds Rect, scale float32, m Metrics) (Layout, bool) {
	return DefaultGeometry().Layout(bounds, scale, m)
}

// Layout places the scrollbar inside bounds at the given device scale.
func (g Geometry) Layout(bounds Rect, scale float32, m Metrics) (Layout, bool) {
	if !m.IsScrollable() || bounds.Empty() {
		return Layout{}, false
	}

	width := Scale(g.Width, scale)
	margin := Scale(g.RightMargin, scale)
	vmargin := Scale(g.VerticalMargin, scale)

	track := Rect{
		X: bounds.X + bounds.W - width - margin,
		Y: bounds.Y + vmargin,
		W: width,
		H: bounds.H - 2*vmargin,
	}
	if track.Empty() {
		return Layout{}, false
	}

	ratio := m.Viewport / m.Total
	minThumb := minf(Scale(g.MinThumbHeight, scale), track.H)
	thumbH := clampf(track.H*ratio, minThumb, track.H)
	travel := track.H - thumbH

	inset := Scale(1, scale)
	thumbW := maxf(2, track.W-2*inset)
	thumb := Rect{
		X: track.X + inset,
		Y: track.Y + travel*m.NormalizedOffset(),
		W: thumbW,
		H: thumbH,
	}

	return Layout{Track: track, Thumb: thumb, ThumbTravel: travel}, true
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
