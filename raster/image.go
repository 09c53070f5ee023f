// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: raster/image.go
// Summary: Software Surface backed by an in-memory NRGBA image.
// Usage: Used as the host back buffer and for every off-screen widget cache.

package raster

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
)

// Image is a software Surface and Offscreen. The zero value is unusable;
// build one with NewImage.
type Image struct {
	pix *image.NRGBA

	// maxOffscreen caps NewOffscreen allocations in pixels (0 = unlimited).
	maxOffscreen int
	allocations  int
}

// NewImage allocates a transparent w×h image.
func NewImage(w, h int) *Image {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Image{pix: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

// SetMaxOffscreenPixels limits the size of buffers returned by NewOffscreen.
func (m *Image) SetMaxOffscreenPixels(n int) {
	m.maxOffscreen = n
}

// Allocations returns how many off-screen buffers this surface has created.
func (m *Image) Allocations() int {
	return m.allocations
}

// Size implements Offscreen.
func (m *Image) Size() (int, int) {
	if m.pix == nil {
		return 0, 0
	}
	b := m.pix.Bounds()
	return b.Dx(), b.Dy()
}

// Bounds returns the image rectangle.
func (m *Image) Bounds() image.Rectangle {
	if m.pix == nil {
		return image.Rectangle{}
	}
	return m.pix.Bounds()
}

// Released reports whether Release has been called.
func (m *Image) Released() bool {
	return m.pix == nil
}

// Release implements Offscreen. Drawing into a released image is a no-op.
func (m *Image) Release() {
	m.pix = nil
}

// At returns the pixel at (x, y), transparent when out of range.
func (m *Image) At(x, y int) color.NRGBA {
	if m.pix == nil || !(image.Pt(x, y).In(m.pix.Bounds())) {
		return color.NRGBA{}
	}
	return m.pix.NRGBAAt(x, y)
}

// Clear overwrites every pixel with c.
func (m *Image) Clear(c color.NRGBA) {
	if m.pix == nil {
		return
	}
	b := m.pix.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.pix.SetNRGBA(x, y, c)
		}
	}
}

// Resize reallocates the image if the size changed. Contents are lost.
func (m *Image) Resize(w, h int) {
	if cw, ch := m.Size(); cw == w && ch == h && m.pix != nil {
		return
	}
	m.pix = NewImage(w, h).pix
}

// NewOffscreen implements Surface.
func (m *Image) NewOffscreen(w, h int) (Offscreen, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: invalid offscreen size %dx%d", w, h)
	}
	if m.maxOffscreen > 0 && w*h > m.maxOffscreen {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrOffscreenTooLarge)
	}
	m.allocations++
	return NewImage(w, h), nil
}

// Blit implements Surface.
func (m *Image) Blit(src Offscreen, x, y int, alpha float32) {
	if m.pix == nil || alpha <= 0 {
		return
	}
	img, ok := src.(*Image)
	if !ok {
		log.Printf("[RASTER] Blit: unsupported offscreen type %T", src)
		return
	}
	if img.pix == nil {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	sb := img.pix.Bounds()
	for sy := sb.Min.Y; sy < sb.Max.Y; sy++ {
		for sx := sb.Min.X; sx < sb.Max.X; sx++ {
			c := img.pix.NRGBAAt(sx, sy)
			if c.A == 0 {
				continue
			}
			c.A = uint8(math.Round(float64(c.A) * float64(alpha)))
			m.blend(x+sx-sb.Min.X, y+sy-sb.Min.Y, c)
		}
	}
}

// FillRoundedRect implements Canvas.
func (m *Image) FillRoundedRect(r image.Rectangle, radius int, c color.NRGBA) {
	r = r.Canon()
	h := r.Dy()
	if m.pix == nil || r.Empty() || c.A == 0 {
		return
	}
	radius = clampRadius(radius, r)
	for row := 0; row < h; row++ {
		inset := CornerInset(row, h, radius)
		m.hspan(r.Min.X+inset, r.Max.X-1-inset, r.Min.Y+row, c)
	}
}

// StrokeRoundedRect implements Canvas with a one pixel outline.
func (m *Image) StrokeRoundedRect(r image.Rectangle, radius int, c color.NRGBA) {
	r = r.Canon()
	h := r.Dy()
	if m.pix == nil || r.Empty() || c.A == 0 {
		return
	}
	radius = clampRadius(radius, r)
	for row := 0; row < h; row++ {
		y := r.Min.Y + row
		inset := CornerInset(row, h, radius)
		left, right := r.Min.X+inset, r.Max.X-1-inset
		if row == 0 || row == h-1 {
			m.hspan(left, right, y, c)
			continue
		}
		// Toward the nearer edge the curve moves inward; cover the horizontal
		// run up to the neighbouring row so corners have no gaps.
		near := row - 1
		if row >= h/2 {
			near = row + 1
		}
		run := CornerInset(near, h, radius) - inset
		if run < 1 {
			run = 1
		}
		if left+run-1 >= right-run+1 {
			m.hspan(left, right, y, c)
			continue
		}
		m.hspan(left, left+run-1, y, c)
		m.hspan(right-run+1, right, y, c)
	}
}

// DrawLine implements Canvas using Bresenham's algorithm.
func (m *Image) DrawLine(x0, y0, x1, y1 int, c color.NRGBA) {
	if m.pix == nil || c.A == 0 {
		return
	}
	if y0 == y1 {
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		m.hspan(x0, x1, y0, c)
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		m.blend(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (m *Image) hspan(x0, x1, y int, c color.NRGBA) {
	b := m.pix.Bounds()
	if y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if x1 >= b.Max.X {
		x1 = b.Max.X - 1
	}
	for x := x0; x <= x1; x++ {
		m.blend(x, y, c)
	}
}

// blend composites c over the pixel at (x, y), source-over.
func (m *Image) blend(x, y int, c color.NRGBA) {
	if !(image.Pt(x, y).In(m.pix.Bounds())) {
		return
	}
	if c.A == 255 {
		m.pix.SetNRGBA(x, y, c)
		return
	}
	d := m.pix.NRGBAAt(x, y)
	m.pix.SetNRGBA(x, y, Over(c, d))
}

// Over composites src over dst (both non-premultiplied).
func Over(src, dst color.NRGBA) color.NRGBA {
	sa := float64(src.A) / 255
	da := float64(dst.A) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return color.NRGBA{}
	}
	mix := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / outA
		return uint8(math.Round(math.Min(255, math.Max(0, v))))
	}
	return color.NRGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// CornerInset returns how far row (0-based, of h rows) is pulled in by a
// circular corner of the given radius: radius - sqrt(radius² - dy²) near the
// top and bottom edges, 0 elsewhere.
func CornerInset(row, h, radius int) int {
	if radius <= 0 {
		return 0
	}
	var dy float64
	switch {
	case row < radius:
		dy = float64(radius-row) - 0.5
	case row >= h-radius:
		dy = float64(row-(h-radius)) + 0.5
	default:
		return 0
	}
	r := float64(radius)
	if dy > r {
		dy = r
	}
	return int(math.Round(r - math.Sqrt(r*r-dy*dy)))
}

func clampRadius(radius int, r image.Rectangle) int {
	limit := r.Dx()
	if r.Dy() < limit {
		limit = r.Dy()
	}
	limit /= 2
	if radius > limit {
		radius = limit
	}
	if radius < 0 {
		radius = 0
	}
	return radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
