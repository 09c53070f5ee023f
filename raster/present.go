// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: raster/present.go
// Summary: Presents a pixel Image on a tcell screen using half-block cells.
// Usage: The host draws text cells first, then calls Present to overlay pixels.
// Notes: Each cell shows its upper half as fg and lower half as bg of a ▀ glyph.

package raster

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// HalfBlock is the glyph used for pixel cells.
const HalfBlock = '▀'

// CellWriter is the subset of tcell.Screen the presenter needs.
type CellWriter interface {
	GetContent(x, y int) (rune, []rune, tcell.Style, int)
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// Presenter composites an Image over the cells already on screen.
type Presenter struct {
	// Background is used under pixels whose cell has no explicit background.
	Background tcell.Color

	cellW, cellH int
}

// NewPresenter returns a presenter using bg for default-colored cells. A
// cell covers 1x2 pixels until SetCellSize says otherwise.
func NewPresenter(bg tcell.Color) *Presenter {
	return &Presenter{Background: bg, cellW: 1, cellH: 2}
}

// SetCellSize sets how many pixels one cell covers. The height must be even
// and at least 2; other values are ignored.
func (p *Presenter) SetCellSize(w, h int) {
	if w < 1 || h < 2 || h%2 != 0 {
		return
	}
	p.cellW, p.cellH = w, h
}

// Present overlays img with its top-left pixel at cell (col, row). Each
// half cell shows the average of the pixels it covers. Cells whose pixels
// are all fully transparent are left untouched.
func (p *Presenter) Present(scr CellWriter, img *Image, col, row int) {
	if img == nil || img.Released() {
		return
	}
	w, h := img.Size()
	half := p.cellH / 2
	for cy := 0; cy*p.cellH < h; cy++ {
		y := row + cy
		py := cy * p.cellH
		for cx := 0; cx*p.cellW < w; cx++ {
			px := cx * p.cellW
			top := average(img, px, py, px+p.cellW, py+half)
			bottom := average(img, px, py+half, px+p.cellW, py+p.cellH)
			if top.A == 0 && bottom.A == 0 {
				continue
			}
			x := col + cx
			_, _, style, _ := scr.GetContent(x, y)
			_, bg, _ := style.Decompose()
			if !bg.Valid() {
				bg = p.Background
			}
			base := fromTcell(bg)
			cell := tcell.StyleDefault.
				Foreground(toTcell(composite(top, base))).
				Background(toTcell(composite(bottom, base)))
			scr.SetContent(x, y, HalfBlock, nil, cell)
		}
	}
}

// average returns the premultiplied mean of the pixels in [x0,x1)x[y0,y1).
// Pixels outside the image count as transparent.
func average(img *Image, x0, y0, x1, y1 int) color.NRGBA {
	if x1-x0 == 1 && y1-y0 == 1 {
		return img.At(x0, y0)
	}
	var r, g, b, a, n uint32
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := img.At(x, y)
			r += uint32(c.R) * uint32(c.A)
			g += uint32(c.G) * uint32(c.A)
			b += uint32(c.B) * uint32(c.A)
			a += uint32(c.A)
			n++
		}
	}
	if a == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(r / a),
		G: uint8(g / a),
		B: uint8(b / a),
		A: uint8(a / n),
	}
}

// composite blends src over an opaque base color.
func composite(src color.NRGBA, base colorful.Color) colorful.Color {
	if src.A == 0 {
		return base
	}
	c := colorful.Color{R: float64(src.R) / 255, G: float64(src.G) / 255, B: float64(src.B) / 255}
	return base.BlendRgb(c, float64(src.A)/255)
}

func fromTcell(c tcell.Color) colorful.Color {
	if !c.Valid() {
		return colorful.Color{}
	}
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
