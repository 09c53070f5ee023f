// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/host/host.go
// Summary: Terminal host that drives the component stack on a tcell screen.
// Usage: main initialises the screen, builds a Host over a content source and calls Run.
// Notes: The loop sleeps on events while nothing animates and ticks at the
//   configured frame interval otherwise.

package hostruntime

import (
	"context"
	"image/color"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelbar/config"
	"github.com/framegrace/texelbar/internal/theming"
	"github.com/framegrace/texelbar/raster"
	"github.com/framegrace/texelbar/scrollbar"
	"github.com/framegrace/texelbar/ui"
)

// Options configures a Host.
type Options struct {
	FrameInterval time.Duration
	WheelLines    int
	// CellW and CellH are the pixel size of one terminal cell.
	CellW, CellH int
	// Scale multiplies the scrollbar geometry.
	Scale     float32
	Scrollbar scrollbar.Options
	Theme     theming.Theme
}

// DefaultOptions returns the built-in host configuration.
func DefaultOptions() Options {
	return Options{
		FrameInterval: 16 * time.Millisecond,
		WheelLines:    3,
		CellW:         1,
		CellH:         2,
		Scale:         0.3,
		Scrollbar:     scrollbar.DefaultOptions(),
		Theme:         theming.Default(),
	}
}

// OptionsFromConfig reads the host, scrollbar and theme sections.
func OptionsFromConfig(cfg config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	opts.FrameInterval = cfg.GetMillis("host", "frame_ms", opts.FrameInterval)
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultOptions().FrameInterval
	}
	if n := cfg.GetInt("host", "wheel_lines", opts.WheelLines); n > 0 {
		opts.WheelLines = n
	}
	w, h := cfg.GetSize("host", "cell_pixels", opts.CellW, opts.CellH)
	if h%2 != 0 {
		log.Printf("[HOST] cell_pixels %dx%d: height must be even, using %dx%d", w, h, opts.CellW, opts.CellH)
	} else {
		opts.CellW, opts.CellH = w, h
	}
	if s := cfg.GetFloat("host", "pixel_scale", float64(opts.Scale)); s > 0 {
		opts.Scale = float32(s)
	}
	opts.Scrollbar = scrollbar.OptionsFromConfig(cfg)
	opts.Theme = theming.FromConfig(cfg)
	return opts
}

// changeNotifier is implemented by sources that can signal new content.
type changeNotifier interface {
	Changed() <-chan struct{}
}

// Host owns the screen, the pixel back buffer and the component stack.
type Host struct {
	screen    tcell.Screen
	opts      Options
	stack     ui.Stack
	view      *ui.ScrollView
	toast     *ui.Toast
	back      *raster.Image
	presenter *raster.Presenter
	changed   <-chan struct{}
	panics    *PanicLogger
	ticker    *time.Ticker

	configChanged <-chan struct{}

	cols, rows int
	buttons    tcell.ButtonMask
	now        func() time.Time
}

// New builds a host showing src on screen. The screen must already be
// initialised; the caller keeps ownership of it.
func New(screen tcell.Screen, src ui.ContentSource, opts Options, panics *PanicLogger) *Host {
	if panics == nil {
		panics = NewPanicLogger("")
	}
	h := &Host{
		screen:    screen,
		opts:      opts,
		back:      raster.NewImage(0, 0),
		presenter: raster.NewPresenter(opts.Theme.Surface),
		panics:    panics,
		now:       time.Now,
	}
	h.presenter.SetCellSize(opts.CellW, opts.CellH)

	h.view = ui.NewScrollView(src, opts.Scrollbar)
	h.view.SetCellSize(opts.CellW, opts.CellH)
	h.view.SetScale(opts.Scale)
	h.view.SetWheelLines(opts.WheelLines)
	h.toast = ui.NewToast(ui.DefaultToastTiming())
	h.stack.Add(h.view)
	h.stack.Add(h.toast)

	if n, ok := src.(changeNotifier); ok {
		h.changed = n.Changed()
	}
	h.resize()
	return h
}

// Apply switches to new options without losing the scroll position.
func (h *Host) Apply(opts Options) {
	h.opts = opts
	h.presenter.Background = opts.Theme.Surface
	h.presenter.SetCellSize(opts.CellW, opts.CellH)
	h.view.SetOptions(opts.Scrollbar)
	h.view.SetCellSize(opts.CellW, opts.CellH)
	h.view.SetScale(opts.Scale)
	h.view.SetWheelLines(opts.WheelLines)
	if h.ticker != nil {
		h.ticker.Reset(opts.FrameInterval)
	}
	h.resize()
}

// WatchConfig makes Run reload the system config and apply it whenever
// changed fires.
func (h *Host) WatchConfig(changed <-chan struct{}) {
	h.configChanged = changed
}

func (h *Host) reloadConfig() {
	if err := config.Reload(); err != nil {
		log.Printf("[HOST] config reload: %v", err)
		h.Notify("config error, keeping previous settings")
		return
	}
	h.Apply(OptionsFromConfig(config.System()))
	h.Notify("config reloaded")
}

// View returns the scrolling text view.
func (h *Host) View() *ui.ScrollView { return h.view }

// Notify shows a transient message.
func (h *Host) Notify(text string) {
	h.toast.Show(text, h.now())
}

// Add places an extra component on the stack, sized to the screen.
func (h *Host) Add(c ui.Component) {
	c.SetBounds(h.bounds())
	h.stack.Add(c)
}

func (h *Host) bounds() scrollbar.Rect {
	return scrollbar.Rect{
		W: float32(h.cols * h.opts.CellW),
		H: float32(h.rows * h.opts.CellH),
	}
}

func (h *Host) resize() {
	h.cols, h.rows = h.screen.Size()
	h.back.Resize(h.cols*h.opts.CellW, h.rows*h.opts.CellH)
	b := h.bounds()
	h.view.SetBounds(b)
	h.toast.SetBounds(b)
	log.Printf("[HOST] resize %dx%d cells (%vx%v px)", h.cols, h.rows, b.W, b.H)
}

// Run enables mouse reporting and drives the frame loop until ctx is done
// or the user quits.
func (h *Host) Run(ctx context.Context) error {
	h.panics.OnPanic(h.screen.Fini)
	h.screen.EnableMouse()
	h.screen.EnableFocus()
	h.screen.HideCursor()
	defer h.stack.Release()

	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)
	h.panics.Go("host event poll", func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	})

	h.ticker = time.NewTicker(h.opts.FrameInterval)
	defer h.ticker.Stop()

	h.Frame()
	for {
		var tick <-chan time.Time
		if h.stack.WantsFrame(h.now()) {
			tick = h.ticker.C
		}
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
		case <-tick:
		case <-h.changed:
		case <-h.configChanged:
			h.reloadConfig()
		}
		h.Frame()
	}
}

// HandleEvent applies one screen event. It reports whether the user asked
// to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	now := h.now()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return true
		}
		h.stack.HandleInput(ui.Key{Key: ev.Key(), Rune: ev.Rune()}, now)
	case *tcell.EventMouse:
		for _, p := range h.translateMouse(ev) {
			h.stack.HandleInput(p, now)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			h.buttons = 0
			h.stack.HandleInput(ui.Pointer{Kind: ui.PointerLeave}, now)
		}
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return false
}

// translateMouse turns a tcell mouse report into pointer events at the
// pixel center of the reported cell.
func (h *Host) translateMouse(ev *tcell.EventMouse) []ui.Pointer {
	cx, cy := ev.Position()
	x := (float32(cx) + 0.5) * float32(h.opts.CellW)
	y := (float32(cy) + 0.5) * float32(h.opts.CellH)
	btn := ev.Buttons()

	var out []ui.Pointer
	switch {
	case btn&tcell.WheelUp != 0:
		out = append(out, ui.Pointer{Kind: ui.PointerWheel, X: x, Y: y, WheelDelta: -1})
	case btn&tcell.WheelDown != 0:
		out = append(out, ui.Pointer{Kind: ui.PointerWheel, X: x, Y: y, WheelDelta: 1})
	}

	pressed := btn & tcell.Button1
	switch {
	case pressed != 0 && h.buttons&tcell.Button1 == 0:
		out = append(out, ui.Pointer{Kind: ui.PointerPress, X: x, Y: y})
	case pressed == 0 && h.buttons&tcell.Button1 != 0:
		out = append(out, ui.Pointer{Kind: ui.PointerRelease, X: x, Y: y})
	case btn&(tcell.WheelUp|tcell.WheelDown) == 0:
		out = append(out, ui.Pointer{Kind: ui.PointerMove, X: x, Y: y})
	}
	h.buttons = btn &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	return out
}

// Frame updates every component, draws text and pixels, and shows the result.
func (h *Host) Frame() {
	now := h.now()
	h.stack.Update(now)
	h.back.Clear(color.NRGBA{})
	h.stack.Render(&ui.Frame{
		Pixels: h.back,
		Cells:  h.screen,
		CellW:  h.opts.CellW,
		CellH:  h.opts.CellH,
		Scale:  h.opts.Scale,
		Theme:  h.opts.Theme,
	})
	h.presenter.Present(h.screen, h.back, 0, 0)
	h.screen.Show()
}
