// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/palette.go
// Summary: Track colors and accent-derived thumb shades.

package scrollbar

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the colors that do not depend on the accent.
type Palette struct {
	TrackTop    color.NRGBA
	TrackBottom color.NRGBA
	TrackBorder color.NRGBA

	// HoverBoost is added to the thumb body alpha while hovered. Dragging
	// adds half as much again.
	HoverBoost uint8
}

// DefaultPalette returns a translucent dark track.
func DefaultPalette() Palette {
	return Palette{
		TrackTop:    color.NRGBA{R: 30, G: 32, B: 44, A: 110},
		TrackBottom: color.NRGBA{R: 22, G: 24, B: 34, A: 140},
		TrackBorder: color.NRGBA{R: 255, G: 255, B: 255, A: 18},
		HoverBoost:  40,
	}
}

// Lighten blends c toward white in Lab space, preserving alpha.
func Lighten(c color.NRGBA, amount float64) color.NRGBA {
	return blendLab(c, colorful.Color{R: 1, G: 1, B: 1}, amount)
}

// Darken blends c toward black in Lab space, preserving alpha.
func Darken(c color.NRGBA, amount float64) color.NRGBA {
	return blendLab(c, colorful.Color{}, amount)
}

// LerpColor interpolates both color and alpha between a and b.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	mixed := toColorful(a).BlendRgb(toColorful(b), t)
	out := fromColorful(mixed, 0)
	out.A = uint8(math.Round(float64(a.A) + (float64(b.A)-float64(a.A))*t))
	return out
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

// addAlpha adds boost to the alpha channel, saturating at 255.
func addAlpha(c color.NRGBA, boost int) color.NRGBA {
	a := int(c.A) + boost
	if a > 255 {
		a = 255
	}
	if a < 0 {
		a = 0
	}
	c.A = uint8(a)
	return c
}

// fade scales the alpha channel by f.
func fade(c color.NRGBA, f float32) color.NRGBA {
	if f >= 1 {
		return c
	}
	if f <= 0 {
		c.A = 0
		return c
	}
	c.A = uint8(math.Round(float64(c.A) * float64(f)))
	return c
}

func blendLab(c color.NRGBA, target colorful.Color, amount float64) color.NRGBA {
	amount = math.Max(0, math.Min(1, amount))
	return fromColorful(toColorful(c).BlendLab(target, amount), c.A)
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
