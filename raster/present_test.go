// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	scr.SetSize(w, h)
	t.Cleanup(scr.Fini)
	return scr
}

func TestPresentHalfBlocks(t *testing.T) {
	scr := newSimScreen(t, 4, 2)
	black := tcell.NewRGBColor(0, 0, 0)
	scr.SetContent(2, 0, 'x', nil, tcell.StyleDefault)

	img := NewImage(4, 4)
	img.FillRoundedRect(image.Rect(0, 0, 1, 1), 0, red)
	img.FillRoundedRect(image.Rect(1, 1, 2, 2), 0, color.NRGBA{G: 255, A: 255})
	img.FillRoundedRect(image.Rect(0, 2, 1, 4), 0, color.NRGBA{B: 255, A: 128})

	NewPresenter(black).Present(scr, img, 0, 0)

	tests := []struct {
		name   string
		x, y   int
		fg, bg tcell.Color
	}{
		{"top pixel only", 0, 0, tcell.NewRGBColor(255, 0, 0), black},
		{"bottom pixel only", 1, 0, black, tcell.NewRGBColor(0, 255, 0)},
		{"half alpha over black", 0, 1, tcell.NewRGBColor(0, 0, 128), tcell.NewRGBColor(0, 0, 128)},
	}
	for _, tt := range tests {
		r, _, style, _ := scr.GetContent(tt.x, tt.y)
		if r != HalfBlock {
			t.Errorf("%s: rune = %q, want %q", tt.name, r, HalfBlock)
		}
		fg, bg, _ := style.Decompose()
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("%s: fg/bg = %v/%v, want %v/%v", tt.name, fg, bg, tt.fg, tt.bg)
		}
	}

	if r, _, _, _ := scr.GetContent(2, 0); r != 'x' {
		t.Errorf("transparent cell overwritten with %q", r)
	}
}

func TestPresentUsesCellBackground(t *testing.T) {
	scr := newSimScreen(t, 2, 1)
	white := tcell.NewRGBColor(255, 255, 255)
	scr.SetContent(0, 0, 'a', nil, tcell.StyleDefault.Background(white))

	img := NewImage(1, 2)
	img.FillRoundedRect(image.Rect(0, 0, 1, 2), 0, color.NRGBA{A: 128})

	NewPresenter(tcell.NewRGBColor(0, 0, 0)).Present(scr, img, 0, 0)

	_, _, style, _ := scr.GetContent(0, 0)
	fg, _, _ := style.Decompose()
	want := tcell.NewRGBColor(127, 127, 127)
	if fg != want {
		t.Errorf("fg = %v, want %v", fg, want)
	}
}

func TestPresentAveragesLargeCells(t *testing.T) {
	scr := newSimScreen(t, 2, 1)
	black := tcell.NewRGBColor(0, 0, 0)

	img := NewImage(4, 4)
	// Left cell: top half fully red, bottom half one red pixel out of four.
	img.FillRoundedRect(image.Rect(0, 0, 2, 2), 0, red)
	img.FillRoundedRect(image.Rect(0, 3, 1, 4), 0, red)

	p := NewPresenter(black)
	p.SetCellSize(2, 4)
	p.Present(scr, img, 0, 0)

	r, _, style, _ := scr.GetContent(0, 0)
	if r != HalfBlock {
		t.Fatalf("rune = %q, want %q", r, HalfBlock)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("fg = %v, want red", fg)
	}
	if bg != tcell.NewRGBColor(63, 0, 0) {
		t.Errorf("bg = %v, want quarter red", bg)
	}
	if r, _, _, _ := scr.GetContent(1, 0); r == HalfBlock {
		t.Errorf("transparent right cell was drawn")
	}
}
