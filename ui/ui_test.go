// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelbar/internal/scrollback"
	"github.com/framegrace/texelbar/internal/theming"
	"github.com/framegrace/texelbar/raster"
	"github.com/framegrace/texelbar/scrollbar"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

const eps = 0.001

func approx(a, b float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}

type sliceSource struct{ lines []scrollback.Line }

func newSource(n int) *sliceSource {
	s := &sliceSource{}
	for i := 0; i < n; i++ {
		s.lines = append(s.lines, scrollback.Line{Text: fmt.Sprintf("line %03d", i)})
	}
	return s
}

func (s *sliceSource) Count() int { return len(s.lines) }

func (s *sliceSource) Window(offset, n int) ([]scrollback.Line, error) {
	if offset >= len(s.lines) {
		return nil, nil
	}
	end := offset + n
	if end > len(s.lines) {
		end = len(s.lines)
	}
	return s.lines[offset:end], nil
}

type cellGrid map[[2]int]rune

func (g cellGrid) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	g[[2]int{x, y}] = r
}

// newView returns a 240x400 px view with 10 px tall cells: 40 rows over 200 lines.
func newView(t *testing.T) (*ScrollView, *sliceSource) {
	t.Helper()
	src := newSource(200)
	v := NewScrollView(src, scrollbar.DefaultOptions())
	v.SetCellSize(1, 10)
	v.SetBounds(scrollbar.Rect{W: 240, H: 400})
	v.Update(t0)
	return v, src
}

func TestScrollViewFollowsEnd(t *testing.T) {
	v, src := newView(t)
	if v.Offset() != 160 {
		t.Fatalf("initial Offset = %v, want 160 (following the end)", v.Offset())
	}
	src.lines = append(src.lines, scrollback.Line{Text: "new"})
	if !v.WantsFrame(at(10)) {
		t.Errorf("WantsFrame = false after content growth")
	}
	v.Update(at(10))
	if v.Offset() != 161 {
		t.Errorf("Offset after growth = %v, want 161", v.Offset())
	}

	v.ScrollTo(10, at(20))
	src.lines = append(src.lines, scrollback.Line{Text: "newer"})
	v.Update(at(30))
	if v.Offset() != 10 {
		t.Errorf("Offset after growth while scrolled back = %v, want 10", v.Offset())
	}
}

func TestScrollViewWheelAndKeys(t *testing.T) {
	v, _ := newView(t)
	var scrolled []float32
	v.OnScroll = func(o float32) { scrolled = append(scrolled, o) }

	v.ScrollTo(0, t0)
	if !v.HandleInput(Pointer{Kind: PointerWheel, X: 50, Y: 50, WheelDelta: 2}, at(5)) {
		t.Fatal("wheel not consumed")
	}
	if v.Offset() != 6 {
		t.Errorf("Offset after wheel = %v, want 6", v.Offset())
	}
	if v.HandleInput(Pointer{Kind: PointerWheel, X: 500, Y: 50, WheelDelta: 1}, at(6)) {
		t.Errorf("wheel outside bounds consumed")
	}

	v.HandleInput(Key{Key: tcell.KeyPgDn}, at(10))
	if v.Offset() != 45 {
		t.Errorf("Offset after PgDn = %v, want 45", v.Offset())
	}
	v.HandleInput(Key{Key: tcell.KeyEnd}, at(11))
	if v.Offset() != 160 {
		t.Errorf("Offset after End = %v, want 160", v.Offset())
	}
	v.HandleInput(Key{Key: tcell.KeyHome}, at(12))
	if v.Offset() != 0 {
		t.Errorf("Offset after Home = %v, want 0", v.Offset())
	}
	if v.HandleInput(Key{Key: tcell.KeyRune, Rune: 'x'}, at(13)) {
		t.Errorf("unrelated key consumed")
	}
	if len(scrolled) != 5 {
		t.Errorf("OnScroll calls = %v, want 5", scrolled)
	}

	v.Update(at(13))
	if v.Scrollbar().Phase() == scrollbar.PhaseHidden {
		t.Errorf("scrollbar hidden after scrolling")
	}
}

func TestScrollViewTrackClick(t *testing.T) {
	v, _ := newView(t)
	v.ScrollTo(0, t0)
	l, ok := v.Layout()
	if !ok {
		t.Fatal("no layout")
	}
	x := l.Track.X + l.Track.W/2
	if !v.HandleInput(Pointer{Kind: PointerPress, X: x, Y: l.Track.Y + l.Track.H - 1}, at(5)) {
		t.Fatal("track press not consumed")
	}
	if v.Offset() != 160 {
		t.Errorf("Offset after bottom track click = %v, want 160", v.Offset())
	}
	if v.HandleInput(Pointer{Kind: PointerPress, X: 20, Y: 20}, at(6)) {
		t.Errorf("press on content consumed")
	}
}

func TestScrollViewThumbDrag(t *testing.T) {
	v, _ := newView(t)
	v.ScrollTo(0, t0)
	l, _ := v.Layout()
	x := l.Track.X + l.Track.W/2
	y := l.Thumb.Y + l.Thumb.H/2

	if !v.HandleInput(Pointer{Kind: PointerPress, X: x, Y: y}, at(5)) {
		t.Fatal("thumb press not consumed")
	}
	if !v.Scrollbar().Dragging() {
		t.Fatal("not dragging after thumb press")
	}

	// Pointer leaves the track sideways; the drag still follows y.
	v.HandleInput(Pointer{Kind: PointerMove, X: 10, Y: y + l.ThumbTravel/2}, at(10))
	if !approx(v.Offset(), 80) {
		t.Errorf("Offset mid-drag = %v, want 80", v.Offset())
	}
	v.HandleInput(Pointer{Kind: PointerRelease, X: 10, Y: y + l.ThumbTravel/2}, at(20))
	if v.Scrollbar().Dragging() {
		t.Errorf("still dragging after release")
	}
	if v.Offset() != 80 {
		t.Errorf("Offset after release = %v, want whole line 80", v.Offset())
	}
}

func TestScrollViewHover(t *testing.T) {
	v, _ := newView(t)
	l, _ := v.Layout()
	v.HandleInput(Pointer{Kind: PointerMove, X: l.Track.X + 1, Y: l.Track.Y + 1}, at(5))
	if !v.Scrollbar().Hovered() {
		t.Errorf("not hovered over track")
	}
	v.HandleInput(Pointer{Kind: PointerMove, X: 10, Y: 10}, at(6))
	if v.Scrollbar().Hovered() {
		t.Errorf("still hovered over content")
	}
	v.HandleInput(Pointer{Kind: PointerMove, X: l.Track.X + 1, Y: l.Track.Y + 1}, at(7))
	v.HandleInput(Pointer{Kind: PointerLeave}, at(8))
	if v.Scrollbar().Hovered() {
		t.Errorf("still hovered after leave")
	}
}

func TestScrollViewRender(t *testing.T) {
	v, _ := newView(t)
	v.ScrollTo(3, t0)
	v.Update(at(200))

	cells := cellGrid{}
	img := raster.NewImage(240, 400)
	f := &Frame{Pixels: img, Cells: cells, CellW: 1, CellH: 10, Scale: 1, Theme: theming.Default()}
	v.Render(f)

	want := "line 003"
	for i, r := range want {
		if got := cells[[2]int{i, 0}]; got != r {
			t.Fatalf("cell (%d,0) = %q, want %q", i, got, r)
		}
	}
	if got := cells[[2]int{239, 39}]; got != ' ' {
		t.Errorf("padding cell = %q, want blank", got)
	}
	l, _ := v.Layout()
	if c := img.At(int(l.Thumb.X+l.Thumb.W/2), int(l.Thumb.Y+l.Thumb.H/2)); c.A == 0 {
		t.Errorf("scrollbar thumb not drawn")
	}
}

func TestDrawLineSpansAndWideRunes(t *testing.T) {
	cells := cellGrid{}
	line := scrollback.Line{
		Text:  "a界b",
		Spans: []scrollback.Span{{Start: 1, End: 2, Color: 0xff0000, HasColor: true}},
	}
	drawLine(cells, 0, 0, 3, line, tcell.StyleDefault)
	if cells[[2]int{0, 0}] != 'a' || cells[[2]int{1, 0}] != '界' {
		t.Errorf("cells = %v", cells)
	}
	if _, ok := cells[[2]int{3, 0}]; ok {
		t.Errorf("wrote past the column limit")
	}

	narrow := cellGrid{}
	drawLine(narrow, 0, 0, 2, scrollback.Line{Text: "a界"}, tcell.StyleDefault)
	if narrow[[2]int{1, 0}] != ' ' {
		t.Errorf("wide rune at edge = %q, want blank", narrow[[2]int{1, 0}])
	}
}

type probe struct {
	name     string
	z        int
	consume  bool
	got      []PointerKind
	released bool
	log      *[]string
}

func (p *probe) ZIndex() int               { return p.z }
func (p *probe) SetBounds(scrollbar.Rect)  {}
func (p *probe) Update(time.Time)          {}
func (p *probe) WantsFrame(time.Time) bool { return false }
func (p *probe) Render(*Frame)             { *p.log = append(*p.log, p.name) }
func (p *probe) Release()                  { p.released = true }
func (p *probe) HandleInput(in Input, _ time.Time) bool {
	if ptr, ok := in.(Pointer); ok {
		p.got = append(p.got, ptr.Kind)
	}
	return p.consume
}

func TestStackOrderingAndCapture(t *testing.T) {
	var order []string
	top := &probe{name: "top", z: 10, log: &order}
	bottom := &probe{name: "bottom", z: 0, consume: true, log: &order}
	var s Stack
	s.Add(top)
	s.Add(bottom)

	s.Render(&Frame{})
	if len(order) != 2 || order[0] != "bottom" || order[1] != "top" {
		t.Errorf("render order = %v, want [bottom top]", order)
	}

	if !s.HandleInput(Pointer{Kind: PointerPress}, t0) {
		t.Fatal("press not consumed")
	}
	if len(top.got) != 1 || len(bottom.got) != 1 {
		t.Fatalf("press dispatch top=%v bottom=%v", top.got, bottom.got)
	}
	// Captured: the top component no longer sees pointer events.
	s.HandleInput(Pointer{Kind: PointerMove}, t0)
	s.HandleInput(Pointer{Kind: PointerRelease}, t0)
	if len(top.got) != 1 || len(bottom.got) != 3 {
		t.Errorf("capture dispatch top=%v bottom=%v", top.got, bottom.got)
	}
	// Released: normal top-down dispatch resumes.
	s.HandleInput(Pointer{Kind: PointerMove}, t0)
	if len(top.got) != 2 {
		t.Errorf("dispatch after release top=%v", top.got)
	}

	s.Remove(top)
	if !top.released || s.Len() != 1 {
		t.Errorf("Remove: released=%v len=%d", top.released, s.Len())
	}
	s.Release()
	if !bottom.released {
		t.Errorf("Release did not reach remaining component")
	}
}

func TestToastFades(t *testing.T) {
	toast := NewToast(DefaultToastTiming())
	if toast.WantsFrame(t0) {
		t.Fatal("idle toast wants frames")
	}
	toast.Show("hello", t0)
	toast.Update(at(200))
	if toast.Alpha() != 1 {
		t.Fatalf("Alpha = %v, want 1", toast.Alpha())
	}

	cells := cellGrid{}
	toast.SetBounds(scrollbar.Rect{W: 40, H: 100})
	toast.Render(&Frame{Cells: cells, CellW: 1, CellH: 10, Theme: theming.Default()})
	if cells[[2]int{2, 9}] != 'h' {
		t.Errorf("toast text not drawn at bottom row: %v", cells)
	}

	toast.Update(at(200 + 2000))
	toast.Update(at(200 + 2000 + 401))
	if toast.Alpha() != 0 || toast.WantsFrame(at(2601)) {
		t.Errorf("toast not hidden: alpha=%v", toast.Alpha())
	}
}

func TestScrollViewResizeKeepsFollowing(t *testing.T) {
	v, _ := newView(t)
	v.SetBounds(scrollbar.Rect{W: 240, H: 200})
	if v.Offset() != 180 {
		t.Errorf("following Offset after shrink = %v, want 180", v.Offset())
	}

	v.ScrollTo(50, at(5))
	v.SetBounds(scrollbar.Rect{W: 240, H: 400})
	if v.Offset() != 50 {
		t.Errorf("scrolled-back Offset after grow = %v, want 50", v.Offset())
	}
}

// runFrames drives v like the host loop: every 16ms, but only while it
// asks for a frame. It returns the number of frames drawn.
func runFrames(v *ScrollView, from, to int) int {
	f := &Frame{Pixels: raster.NewImage(240, 400), Cells: cellGrid{}, CellW: 1, CellH: 10, Scale: 1, Theme: theming.Default()}
	n := 0
	for ms := from; ms <= to; ms += 16 {
		if !v.WantsFrame(at(ms)) {
			continue
		}
		v.Update(at(ms))
		v.Render(f)
		n++
	}
	return n
}

func TestScrollViewHoverEndAfterIdleLoop(t *testing.T) {
	v, _ := newView(t)
	v.ScrollTo(0, t0)
	runFrames(v, 0, 384)

	l, _ := v.Layout()
	v.HandleInput(Pointer{Kind: PointerMove, X: l.Thumb.X + l.Thumb.W/2, Y: l.Thumb.Y + l.Thumb.H/2}, at(400))
	if !v.Scrollbar().Hovered() {
		t.Fatal("not hovered over the thumb")
	}
	if n := runFrames(v, 400, 5000); n > 1 {
		t.Errorf("%d frames while hovered, want at most 1", n)
	}

	v.HandleInput(Pointer{Kind: PointerMove, X: 10, Y: 10}, at(5000))
	v.Update(at(5000))
	if p := v.Scrollbar().Phase(); p != scrollbar.PhaseVisible || v.Scrollbar().Alpha() != 1 {
		t.Fatalf("right after hover end: phase=%v alpha=%v, want visible/1", p, v.Scrollbar().Alpha())
	}
	runFrames(v, 5016, 6484)
	if p := v.Scrollbar().Phase(); p != scrollbar.PhaseVisible {
		t.Errorf("Phase before the idle delay ran out = %v, want visible", p)
	}
	runFrames(v, 6500, 6500)
	if p := v.Scrollbar().Phase(); p != scrollbar.PhaseFadingOut {
		t.Errorf("Phase after the idle delay = %v, want fading_out", p)
	}
}
