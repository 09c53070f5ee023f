// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/render.go
// Summary: Draws the track and thumb through cached off-screen visuals.
// Usage: Call Render once per frame after Update and ComputeLayout.
// Notes: Cached visuals are baked at full opacity; the fade alpha is applied at blit time.

package scrollbar

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/framegrace/texelbar/raster"
)

var (
	white      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	nearWhite  = color.NRGBA{R: 240, G: 244, B: 255, A: 40}
	glareColor = color.NRGBA{R: 255, G: 255, B: 255, A: 150}
)

// Render draws the scrollbar described by l into dst at the state's
// current opacity. It never fails: when an off-screen buffer cannot be
// allocated the visuals are painted directly into dst.
func Render(dst raster.Surface, l Layout, accent color.NRGBA, s *State) {
	s.vis.PendingDraw = false
	alpha := s.Alpha()
	if dst == nil || alpha <= 0 {
		return
	}
	s.renderTrack(dst, pixelRect(l.Track), alpha)
	s.renderThumb(dst, pixelRect(l.Thumb), accent, alpha)
}

func (s *State) renderTrack(dst raster.Surface, r image.Rectangle, alpha float32) {
	if r.Empty() {
		return
	}
	key := cacheKey{W: r.Dx(), H: r.Dy()}
	tex, ok := s.track.lookup(key)
	if !ok {
		var err error
		tex, err = s.track.regenerate(dst, key, r.Dx(), r.Dy(), func(c raster.Canvas) {
			paintTrack(c, image.Rect(0, 0, r.Dx(), r.Dy()), s.palette, 1)
		})
		if err != nil {
			s.noteFallback("track", err)
			paintTrack(dst, r, s.palette, alpha)
			return
		}
	}
	dst.Blit(tex, r.Min.X, r.Min.Y, alpha)
}

func (s *State) renderThumb(dst raster.Surface, r image.Rectangle, accent color.NRGBA, alpha float32) {
	if r.Empty() {
		return
	}
	// The glow extends one pixel past the thumb on every side.
	outer := r.Inset(-1)
	style := s.Style()
	key := cacheKey{W: r.Dx(), H: r.Dy(), Style: style, Accent: accent}
	tex, ok := s.thumb.lookup(key)
	if !ok {
		var err error
		tex, err = s.thumb.regenerate(dst, key, outer.Dx(), outer.Dy(), func(c raster.Canvas) {
			paintThumb(c, image.Rect(0, 0, outer.Dx(), outer.Dy()), accent, style, s.palette, 1)
		})
		if err != nil {
			s.noteFallback("thumb", err)
			paintThumb(dst, outer, accent, style, s.palette, alpha)
			return
		}
	}
	dst.Blit(tex, outer.Min.X, outer.Min.Y, alpha)
}

func (s *State) noteFallback(what string, err error) {
	if s.fallbackLogged {
		return
	}
	s.fallbackLogged = true
	log.Printf("[SCROLLBAR] %s cache unavailable, drawing uncached: %v", what, err)
}

func paintTrack(c raster.Canvas, r image.Rectangle, p Palette, f float32) {
	radius := r.Dx() / 2
	roundedGradient(c, r, radius, fade(p.TrackTop, f), fade(p.TrackBottom, f))
	c.StrokeRoundedRect(r, radius, fade(p.TrackBorder, f))
}

// paintThumb draws the layered thumb inside outer, which includes the
// one pixel glow margin.
func paintThumb(c raster.Canvas, outer image.Rectangle, accent color.NRGBA, style InteractionStyle, p Palette, f float32) {
	body := outer.Inset(1)
	if body.Empty() {
		return
	}
	radius := body.Dx() / 2

	glow := WithAlpha(Darken(accent, 0.45), 70)
	roundedGradient(c, outer, radius+1, fade(glow, f), fade(glow, f))

	boost := 0
	switch style {
	case StyleHovered:
		boost = int(p.HoverBoost)
	case StyleDragging:
		boost = int(p.HoverBoost) * 3 / 2
	}
	top := addAlpha(WithAlpha(Lighten(accent, 0.30), 190), boost)
	bottom := addAlpha(WithAlpha(Lighten(accent, 0.08), 190), boost)
	roundedGradient(c, body, radius, fade(top, f), fade(bottom, f))

	bandH := body.Dy() * 2 / 5
	if bandH < 1 {
		bandH = 1
	}
	band := image.Rect(body.Min.X+1, body.Min.Y+1, body.Max.X-1, body.Min.Y+1+bandH)
	roundedGradient(c, band, radius-1, fade(WithAlpha(white, 60), f), fade(WithAlpha(white, 0), f))

	paintSheen(c, body, fade(WithAlpha(white, 24), f))

	dot := image.Rect(body.Min.X+2, body.Min.Y+2, body.Min.X+4, body.Min.Y+4)
	if dot.In(body) {
		c.FillRoundedRect(dot, 1, fade(glareColor, f))
	}

	c.StrokeRoundedRect(body, radius, fade(WithAlpha(Darken(accent, 0.35), 220), f))
	if inner := body.Inset(1); !inner.Empty() {
		c.StrokeRoundedRect(inner, radius-1, fade(nearWhite, f))
	}
}

// paintSheen draws a diagonal band of parallel lines across the body.
func paintSheen(c raster.Canvas, body image.Rectangle, col color.NRGBA) {
	x0, x1 := body.Min.X+1, body.Max.X-2
	span := x1 - x0
	if span <= 0 {
		return
	}
	thickness := span / 2
	if thickness < 2 {
		thickness = 2
	}
	base := body.Min.Y + body.Dy()/3 + span
	for i := 0; i < thickness; i++ {
		yLow := base + i
		yHigh := yLow - span
		if yHigh <= body.Min.Y || yLow >= body.Max.Y-1 {
			continue
		}
		c.DrawLine(x0, yLow, x1, yHigh, col)
	}
}

// roundedGradient fills r with a vertical top→bottom gradient and circular
// corners, one horizontal line per row.
func roundedGradient(c raster.Canvas, r image.Rectangle, radius int, top, bottom color.NRGBA) {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	if limit := min(w, h) / 2; radius > limit {
		radius = limit
	}
	if radius < 0 {
		radius = 0
	}
	for row := 0; row < h; row++ {
		t := 0.0
		if h > 1 {
			t = float64(row) / float64(h-1)
		}
		col := LerpColor(top, bottom, t)
		if col.A == 0 {
			continue
		}
		inset := raster.CornerInset(row, h, radius)
		x0 := r.Min.X + inset
		x1 := r.Max.X - 1 - inset
		if x1 < x0 {
			continue
		}
		y := r.Min.Y + row
		c.DrawLine(x0, y, x1, y, col)
	}
}

func pixelRect(r Rect) image.Rectangle {
	x := int(math.Round(float64(r.X)))
	y := int(math.Round(float64(r.Y)))
	w := int(math.Round(float64(r.W)))
	h := int(math.Round(float64(r.H)))
	return image.Rect(x, y, x+w, y+h)
}
