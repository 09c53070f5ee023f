// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/toast.go
// Summary: Transient one-line message that fades in, lingers and fades out.
// Notes: Shares the scrollbar's visibility machine; only the timing differs.

package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelbar/internal/theming"
	"github.com/framegrace/texelbar/scrollbar"
)

// DefaultToastTiming keeps a message up for two seconds.
func DefaultToastTiming() scrollbar.Timing {
	return scrollbar.Timing{
		IdleDelay: 2 * time.Second,
		FadeIn:    120 * time.Millisecond,
		FadeOut:   400 * time.Millisecond,
	}
}

// Toast draws a message in the bottom-left corner of its bounds.
type Toast struct {
	timing scrollbar.Timing
	vis    scrollbar.Visibility
	text   string
	bounds scrollbar.Rect
}

// NewToast returns a hidden toast.
func NewToast(timing scrollbar.Timing) *Toast {
	return &Toast{timing: timing}
}

// Show replaces the message and restarts the idle countdown.
func (t *Toast) Show(text string, now time.Time) {
	t.text = text
	t.vis = scrollbar.Step(t.vis, scrollbar.EventActivity, now, t.timing)
}

// Text returns the current message.
func (t *Toast) Text() string { return t.text }

// Alpha returns the opacity computed by the last Update.
func (t *Toast) Alpha() float32 { return t.vis.Alpha }

// ZIndex implements Component; toasts stay above content.
func (t *Toast) ZIndex() int { return 100 }

// SetBounds implements Component.
func (t *Toast) SetBounds(b scrollbar.Rect) { t.bounds = b }

// HandleInput implements Component. Toasts never consume input.
func (t *Toast) HandleInput(Input, time.Time) bool { return false }

// Update implements Component.
func (t *Toast) Update(now time.Time) {
	t.vis = scrollbar.Step(t.vis, scrollbar.EventTick, now, t.timing)
}

// WantsFrame implements Component.
func (t *Toast) WantsFrame(now time.Time) bool {
	return t.vis.WantsFrame(now)
}

// Render implements Component.
func (t *Toast) Render(f *Frame) {
	t.vis.PendingDraw = false
	if t.vis.Alpha <= 0 || t.text == "" || f.Cells == nil || f.CellW <= 0 || f.CellH <= 0 {
		return
	}
	bg := theming.ToNRGBA(f.Theme.Surface)
	fg := theming.ToNRGBA(f.Theme.Text)
	mixed := scrollbar.LerpColor(bg, fg, float64(t.vis.Alpha))
	style := tcell.StyleDefault.
		Background(f.Theme.Surface).
		Foreground(tcell.NewRGBColor(int32(mixed.R), int32(mixed.G), int32(mixed.B)))

	x := int(t.bounds.X)/f.CellW + 1
	y := int(t.bounds.Y+t.bounds.H)/f.CellH - 1
	maxCols := int(t.bounds.W)/f.CellW - 2
	if maxCols <= 0 {
		return
	}
	msg := runewidth.Truncate(" "+t.text+" ", maxCols, "…")
	for _, r := range msg {
		f.Cells.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// Release implements Component.
func (t *Toast) Release() {}
