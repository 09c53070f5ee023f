// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrollbar/options.go
// Summary: Explicit per-scrollbar configuration (geometry, timing, palette).
// Usage: Built once from the config store and passed to NewState and the layout call.

package scrollbar

import "github.com/framegrace/texelbar/config"

// Options bundles everything a scrollbar needs besides per-frame inputs.
type Options struct {
	Geometry Geometry
	Timing   Timing
	Palette  Palette
}

// DefaultOptions returns stock geometry, timing and palette.
func DefaultOptions() Options {
	return Options{
		Geometry: DefaultGeometry(),
		Timing:   DefaultTiming(),
		Palette:  DefaultPalette(),
	}
}

// OptionsFromConfig reads the "scrollbar" section, falling back to defaults
// for missing keys.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	const section = "scrollbar"

	g := &opts.Geometry
	g.Width = float32(cfg.GetFloat(section, "width", float64(g.Width)))
	g.RightMargin = float32(cfg.GetFloat(section, "right_margin", float64(g.RightMargin)))
	g.VerticalMargin = float32(cfg.GetFloat(section, "vertical_margin", float64(g.VerticalMargin)))
	g.MinThumbHeight = float32(cfg.GetFloat(section, "min_thumb", float64(g.MinThumbHeight)))

	tm := &opts.Timing
	tm.IdleDelay = cfg.GetMillis(section, "idle_hide_ms", tm.IdleDelay)
	tm.FadeIn = cfg.GetMillis(section, "fade_in_ms", tm.FadeIn)
	tm.FadeOut = cfg.GetMillis(section, "fade_out_ms", tm.FadeOut)

	boost := cfg.GetInt(section, "hover_boost", int(opts.Palette.HoverBoost))
	if boost < 0 {
		boost = 0
	} else if boost > 255 {
		boost = 255
	}
	opts.Palette.HoverBoost = uint8(boost)
	return opts
}
