// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/scrollview.go
// Summary: Scrollable text viewport with an overlay scrollbar.
// Usage: Feed it a ContentSource (the scrollback store); the host forwards input and frames.
// Notes: Offsets and metrics are in lines; pointer coordinates are pixels.

package ui

import (
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelbar/internal/scrollback"
	"github.com/framegrace/texelbar/scrollbar"
)

// ContentSource provides the lines shown by a ScrollView.
type ContentSource interface {
	Count() int
	Window(offset, n int) ([]scrollback.Line, error)
}

// ScrollView shows a window of lines and owns the scrollbar for it.
type ScrollView struct {
	src   ContentSource
	opts  scrollbar.Options
	state *scrollbar.State

	bounds       scrollbar.Rect
	cellW, cellH int
	scale        float32
	z            int

	offset     float32
	total      int
	follow     bool
	wheelLines float32

	layout   scrollbar.Layout
	layoutOK bool

	// OnScroll is called with the new offset whenever the view scrolls.
	OnScroll func(offset float32)
}

// NewScrollView creates a view over src. The view follows the end of the
// content until the user scrolls away from it.
func NewScrollView(src ContentSource, opts scrollbar.Options) *ScrollView {
	return &ScrollView{
		src:        src,
		opts:       opts,
		state:      scrollbar.NewState(opts),
		cellW:      1,
		cellH:      2,
		scale:      1,
		follow:     true,
		wheelLines: 3,
	}
}

// SetOptions replaces the scrollbar options.
func (v *ScrollView) SetOptions(opts scrollbar.Options) {
	v.opts = opts
	v.state.SetOptions(opts)
	v.relayout()
}

// SetCellSize sets the pixel size of one text cell.
func (v *ScrollView) SetCellSize(w, h int) {
	if w > 0 {
		v.cellW = w
	}
	if h > 0 {
		v.cellH = h
	}
	v.relayout()
}

// SetScale sets the device scale used for scrollbar geometry.
func (v *ScrollView) SetScale(s float32) {
	if s > 0 {
		v.scale = s
	}
	v.relayout()
}

// SetWheelLines sets how many lines one wheel notch scrolls.
func (v *ScrollView) SetWheelLines(n int) {
	if n > 0 {
		v.wheelLines = float32(n)
	}
}

// SetZIndex sets the stacking order.
func (v *ScrollView) SetZIndex(z int) { v.z = z }

// ZIndex implements Component.
func (v *ScrollView) ZIndex() int { return v.z }

// SetBounds implements Component.
func (v *ScrollView) SetBounds(b scrollbar.Rect) {
	v.bounds = b
	v.relayout()
}

// Offset returns the first visible line (possibly fractional while dragging).
func (v *ScrollView) Offset() float32 { return v.offset }

// Metrics returns the current scroll metrics in lines.
func (v *ScrollView) Metrics() scrollbar.Metrics {
	return scrollbar.NewMetrics(float32(v.total), v.offset, float32(v.rows()))
}

// Layout returns the last computed scrollbar layout.
func (v *ScrollView) Layout() (scrollbar.Layout, bool) { return v.layout, v.layoutOK }

// Scrollbar exposes the scrollbar state.
func (v *ScrollView) Scrollbar() *scrollbar.State { return v.state }

func (v *ScrollView) rows() int {
	if v.cellH <= 0 || v.bounds.H <= 0 {
		return 0
	}
	return int(v.bounds.H) / v.cellH
}

func (v *ScrollView) relayout() {
	m := v.Metrics()
	if v.follow {
		m = m.WithOffset(m.MaxOffset())
	}
	v.offset = m.Offset
	v.layout, v.layoutOK = v.opts.Geometry.Layout(v.bounds, v.scale, m)
}

// ScrollTo moves to offset (clamped) and shows the scrollbar.
func (v *ScrollView) ScrollTo(offset float32, now time.Time) {
	m := v.Metrics().WithOffset(offset)
	v.follow = m.Offset >= m.MaxOffset()
	v.state.NoteActivity(now)
	if m.Offset == v.offset {
		return
	}
	v.offset = m.Offset
	v.relayout()
	if v.OnScroll != nil {
		v.OnScroll(v.offset)
	}
}

// ScrollBy moves by delta lines.
func (v *ScrollView) ScrollBy(delta float32, now time.Time) {
	v.ScrollTo(v.offset+delta, now)
}

// HandleInput implements Component.
func (v *ScrollView) HandleInput(in Input, now time.Time) bool {
	switch ev := in.(type) {
	case Pointer:
		return v.handlePointer(ev, now)
	case Key:
		return v.handleKey(ev, now)
	}
	return false
}

func (v *ScrollView) handlePointer(p Pointer, now time.Time) bool {
	v.syncTotal(now)
	hit := scrollbar.HitNone
	if v.layoutOK {
		hit = scrollbar.HitTest(v.layout, p.X, p.Y)
	}

	switch p.Kind {
	case PointerLeave:
		v.state.SetHovered(false, now)
		if v.state.Dragging() {
			v.state.EndDrag(now)
		}
		return false

	case PointerWheel:
		if !v.bounds.Contains(p.X, p.Y) {
			return false
		}
		v.ScrollBy(p.WheelDelta*v.wheelLines, now)
		return true

	case PointerMove:
		if v.state.Dragging() {
			v.ScrollTo(scrollbar.OffsetForDrag(v.state, v.layout, v.Metrics(), p.Y), now)
			return true
		}
		v.state.SetHovered(hit != scrollbar.HitNone, now)
		return hit != scrollbar.HitNone

	case PointerPress:
		switch hit {
		case scrollbar.HitThumb:
			v.state.BeginDrag(v.layout, p.Y, now)
			return true
		case scrollbar.HitTrack:
			v.ScrollTo(scrollbar.OffsetForTrackClick(v.layout, v.Metrics(), p.Y), now)
			return true
		}
		return false

	case PointerRelease:
		if v.state.Dragging() {
			v.state.EndDrag(now)
			v.state.SetHovered(hit != scrollbar.HitNone, now)
			// Settle on a whole line once the drag ends.
			v.ScrollTo(float32(math.Round(float64(v.offset))), now)
			return true
		}
		return false
	}
	return false
}

func (v *ScrollView) handleKey(k Key, now time.Time) bool {
	page := float32(v.rows())
	if page > 1 {
		page--
	}
	switch k.Key {
	case tcell.KeyPgUp:
		v.ScrollBy(-page, now)
	case tcell.KeyPgDn:
		v.ScrollBy(page, now)
	case tcell.KeyUp:
		v.ScrollBy(-1, now)
	case tcell.KeyDown:
		v.ScrollBy(1, now)
	case tcell.KeyHome:
		v.ScrollTo(0, now)
	case tcell.KeyEnd:
		v.ScrollTo(float32(v.total), now)
	default:
		return false
	}
	return true
}

// syncTotal picks up content growth. While following, the view stays at
// the end and the growth counts as scroll activity.
func (v *ScrollView) syncTotal(now time.Time) {
	n := v.src.Count()
	if n == v.total {
		return
	}
	v.total = n
	if v.follow {
		m := v.Metrics()
		if v.offset != m.MaxOffset() {
			v.offset = m.MaxOffset()
			v.state.NoteActivity(now)
			if v.OnScroll != nil {
				v.OnScroll(v.offset)
			}
		}
	}
	v.relayout()
}

// Update implements Component.
func (v *ScrollView) Update(now time.Time) {
	v.syncTotal(now)
	v.state.Update(now)
}

// WantsFrame implements Component.
func (v *ScrollView) WantsFrame(now time.Time) bool {
	return v.state.WantsFrame(now) || v.src.Count() != v.total
}

// Render implements Component.
func (v *ScrollView) Render(f *Frame) {
	v.renderText(f)
	if v.layoutOK && f.Pixels != nil {
		scrollbar.Render(f.Pixels, v.layout, f.Theme.AccentNRGBA(), v.state)
	}
}

func (v *ScrollView) renderText(f *Frame) {
	if f.Cells == nil || f.CellW <= 0 || f.CellH <= 0 {
		return
	}
	col0 := int(v.bounds.X) / f.CellW
	row0 := int(v.bounds.Y) / f.CellH
	cols := int(v.bounds.W) / f.CellW
	rows := v.rows()

	lines, err := v.src.Window(int(v.offset), rows)
	if err != nil {
		log.Printf("[SCROLLVIEW] Window(%d, %d) failed: %v", int(v.offset), rows, err)
		lines = nil
	}
	base := f.Theme.TextStyle()
	for r := 0; r < rows; r++ {
		var line scrollback.Line
		if r < len(lines) {
			line = lines[r]
		}
		drawLine(f.Cells, col0, row0+r, cols, line, base)
	}
}

// drawLine writes line into cols cells starting at (x, y), padding with
// blanks. Wide runes that do not fit are replaced by a blank.
func drawLine(dst CellSink, x, y, cols int, line scrollback.Line, base tcell.Style) {
	col := 0
	idx := 0
	span := 0
	for _, r := range line.Text {
		if col >= cols {
			break
		}
		for span < len(line.Spans) && line.Spans[span].End <= idx {
			span++
		}
		style := base
		if span < len(line.Spans) && line.Spans[span].Start <= idx {
			style = spanStyle(base, line.Spans[span])
		}
		w := runewidth.RuneWidth(r)
		switch {
		case w == 0:
			idx++
			continue
		case col+w > cols:
			dst.SetContent(x+col, y, ' ', nil, base)
			col++
			idx++
			continue
		}
		// tcell spans a wide rune over the following cell itself.
		dst.SetContent(x+col, y, r, nil, style)
		col += w
		idx++
	}
	for ; col < cols; col++ {
		dst.SetContent(x+col, y, ' ', nil, base)
	}
}

func spanStyle(base tcell.Style, s scrollback.Span) tcell.Style {
	st := base
	if s.HasColor {
		st = st.Foreground(tcell.NewHexColor(int32(s.Color)))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	return st
}

// Release implements Component.
func (v *ScrollView) Release() {
	v.state.Release()
}
