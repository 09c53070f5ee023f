// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelbar/config"
)

func TestFromConfig(t *testing.T) {
	cfg := config.Config{
		"theme": map[string]interface{}{
			"accent.primary": "#ff8800",
			"text.primary":   "red",
			"text.muted":     "not-a-color",
		},
	}
	th := FromConfig(cfg)
	if th.Accent != tcell.NewHexColor(0xff8800) {
		t.Errorf("Accent = %v, want #ff8800", th.Accent)
	}
	if th.Text != tcell.ColorRed {
		t.Errorf("Text = %v, want red", th.Text)
	}
	if th.Muted != Default().Muted {
		t.Errorf("Muted = %v, want default for unknown name", th.Muted)
	}
	if th.Surface != Default().Surface {
		t.Errorf("Surface = %v, want default for missing key", th.Surface)
	}
}

func TestToNRGBA(t *testing.T) {
	if got, want := ToNRGBA(tcell.NewRGBColor(10, 20, 30)), (color.NRGBA{R: 10, G: 20, B: 30, A: 255}); got != want {
		t.Errorf("ToNRGBA = %+v, want %+v", got, want)
	}
	if got := ToNRGBA(tcell.ColorDefault); got != (color.NRGBA{A: 255}) {
		t.Errorf("ToNRGBA(default) = %+v, want opaque black", got)
	}
	if got := FromConfig(nil).AccentNRGBA(); got != (color.NRGBA{R: 0x8a, G: 0xad, B: 0xf4, A: 255}) {
		t.Errorf("AccentNRGBA = %+v", got)
	}
}
