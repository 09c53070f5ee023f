// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/theme.go
// Summary: Semantic colors resolved from the "theme" config section.
// Usage: Host and components read colors from a Theme value, never from config directly.

package theming

import (
	"image/color"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelbar/config"
)

const section = "theme"

// Theme holds the semantic colors used by the demo UI.
type Theme struct {
	Accent  tcell.Color
	Surface tcell.Color
	Text    tcell.Color
	Muted   tcell.Color
}

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Accent:  tcell.NewHexColor(0x8aadf4),
		Surface: tcell.NewHexColor(0x1e2030),
		Text:    tcell.NewHexColor(0xcad3f5),
		Muted:   tcell.NewHexColor(0x6e738d),
	}
}

// FromConfig resolves the theme section. Unknown names fall back to the
// default for that slot.
func FromConfig(cfg config.Config) Theme {
	t := Default()
	if cfg == nil {
		return t
	}
	t.Accent = lookup(cfg, "accent.primary", t.Accent)
	t.Surface = lookup(cfg, "bg.surface", t.Surface)
	t.Text = lookup(cfg, "text.primary", t.Text)
	t.Muted = lookup(cfg, "text.muted", t.Muted)
	return t
}

func lookup(cfg config.Config, key string, fallback tcell.Color) tcell.Color {
	raw := cfg.GetString(section, key, "")
	if raw == "" {
		return fallback
	}
	c := tcell.GetColor(raw)
	if c == tcell.ColorDefault || !c.Valid() {
		log.Printf("[THEME] Unknown color %q for %s, using default", raw, key)
		return fallback
	}
	return c
}

// AccentNRGBA returns the accent as an opaque pixel color.
func (t Theme) AccentNRGBA() color.NRGBA {
	return ToNRGBA(t.Accent)
}

// TextStyle is the style for primary text on the surface.
func (t Theme) TextStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Text).Background(t.Surface)
}

// MutedStyle is the style for secondary text on the surface.
func (t Theme) MutedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Muted).Background(t.Surface)
}

// ToNRGBA converts a terminal color to an opaque pixel color. Colors without
// an RGB value map to opaque black.
func ToNRGBA(c tcell.Color) color.NRGBA {
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
