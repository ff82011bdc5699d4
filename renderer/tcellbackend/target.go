// Package tcellbackend presents frames in a terminal, one cell per pixel.
package tcellbackend

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/tensai/geom"
	"github.com/pthm-cable/tensai/graphics"
	"github.com/pthm-cable/tensai/renderer"
)

// PixelRune fills a cell that holds an opaque or translucent pixel.
const PixelRune = '█'

const eventBuffer = 100

// Target rasterizes into a software canvas sized to the terminal and copies
// it to the screen on Present. Fully transparent pixels leave the cell
// blank.
type Target struct {
	*renderer.Canvas

	screen    tcell.Screen
	events    chan tcell.Event
	done      chan struct{}
	closeOnce sync.Once
	forwarder sync.WaitGroup
}

var _ graphics.Target = (*Target)(nil)

// Open initializes the controlling terminal.
func Open() (*Target, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return New(screen)
}

// New initializes screen and sizes the canvas to it.
func New(screen tcell.Screen) (*Target, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	w, h := screen.Size()
	return &Target{
		Canvas: renderer.NewCanvas(w, h),
		screen: screen,
		done:   make(chan struct{}),
	}, nil
}

// Screen returns the underlying tcell screen.
func (t *Target) Screen() tcell.Screen { return t.screen }

// Close stops the event forwarder and restores the terminal. It is safe
// to call more than once.
func (t *Target) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
		t.forwarder.Wait()
	})
}

// Present copies the canvas into the terminal cells and shows them.
func (t *Target) Present() error {
	img := t.Canvas.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.RGBAAt(x, y)
			if p.A == 0 {
				t.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			fg := rgb(geom.RGBA(p.R, p.G, p.B, p.A))
			t.screen.SetContent(x, y, PixelRune, nil, tcell.StyleDefault.Foreground(fg))
		}
	}
	t.screen.Show()
	return t.Canvas.Present()
}

// Events starts forwarding terminal events on a buffered channel. The
// forwarder stops after Close.
func (t *Target) Events() <-chan tcell.Event {
	if t.events != nil {
		return t.events
	}
	t.events = make(chan tcell.Event, eventBuffer)
	t.forwarder.Add(1)
	go func() {
		defer t.forwarder.Done()
		defer close(t.events)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()
	return t.events
}

// HandleEvent applies resizes and reports whether ev asks to quit (Esc, q
// or Ctrl-C).
func (t *Target) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		t.Canvas.Resize(w, h)
		t.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			return ev.Rune() == 'q'
		}
	}
	return false
}

// rgb maps a pixel to a true-color terminal color, ignoring alpha.
func rgb(c geom.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
