// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scrollbar

import (
	"testing"
	"time"

	"github.com/framegrace/texelbar/config"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Config{
		"scrollbar": map[string]interface{}{
			"width":        6.0,
			"fade_in_ms":   float64(90),
			"idle_hide_ms": "2000",
			"hover_boost":  900,
		},
	}
	opts := OptionsFromConfig(cfg)
	if opts.Geometry.Width != 6 {
		t.Errorf("Width = %v, want 6", opts.Geometry.Width)
	}
	if opts.Geometry.MinThumbHeight != DefaultGeometry().MinThumbHeight {
		t.Errorf("MinThumbHeight = %v, want default", opts.Geometry.MinThumbHeight)
	}
	if opts.Timing.FadeIn != 90*time.Millisecond {
		t.Errorf("FadeIn = %v, want 90ms", opts.Timing.FadeIn)
	}
	if opts.Timing.IdleDelay != 2*time.Second {
		t.Errorf("IdleDelay = %v, want 2s", opts.Timing.IdleDelay)
	}
	if opts.Timing.FadeOut != DefaultTiming().FadeOut {
		t.Errorf("FadeOut = %v, want default", opts.Timing.FadeOut)
	}
	if opts.Palette.HoverBoost != 255 {
		t.Errorf("HoverBoost = %v, want clamped 255", opts.Palette.HoverBoost)
	}
}

func TestOptionsFromNilConfig(t *testing.T) {
	if got := OptionsFromConfig(nil); got != DefaultOptions() {
		t.Errorf("OptionsFromConfig(nil) = %+v, want defaults", got)
	}
}
