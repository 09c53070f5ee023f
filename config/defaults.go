// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for every config section.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("scrollbar", Section{
		"idle_hide_ms":    1500,
		"fade_in_ms":      130,
		"fade_out_ms":     220,
		"width":           10.0,
		"right_margin":    4.0,
		"vertical_margin": 14.0,
		"min_thumb":       28.0,
		"hover_boost":     40,
	})
	cfg.RegisterDefaults("theme", Section{
		"accent.primary": "#8aadf4",
		"bg.surface":     "#1e2030",
		"text.primary":   "#cad3f5",
		"text.muted":     "#6e738d",
	})
	cfg.RegisterDefaults("host", Section{
		"frame_ms":    16,
		"wheel_lines": 3,
		"cell_pixels": "1x2",
		"pixel_scale": 0.3,
	})
	cfg.RegisterDefaults("scrollback", Section{
		"db_path":   "",
		"max_lines": 100000,
		"style":     "catppuccin-mocha",
	})
}
