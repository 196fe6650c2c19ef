// Package term shows a running simulation in a terminal using tcell. Each
// grid cell is two columns wide so cells look roughly square.
package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"epigrid/internal/core"
)

const (
	cellWidth  = 2
	panelGap   = 2
	frameDelay = 20 * time.Millisecond
)

// Viewer draws a sim onto a tcell screen and advances it at a fixed rate
// until the configured duration is reached.
type Viewer struct {
	screen   tcell.Screen
	sim      core.Sim
	duration int
	pace     *core.Pacer
	paused   bool

	// OnDay is called after every day the viewer advances.
	OnDay func(core.Sim)
}

// Open creates and initialises the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// New returns a viewer advancing sim by tps days per second.
func New(screen tcell.Screen, sim core.Sim, duration, tps int) *Viewer {
	return &Viewer{screen: screen, sim: sim, duration: duration, pace: core.NewPacer(tps)}
}

// Paused reports whether automatic advancing is suspended.
func (v *Viewer) Paused() bool { return v.paused }

// Advance steps the sim by one day unless the duration has been reached.
func (v *Viewer) Advance() bool {
	if v.sim.Day() >= v.duration {
		return false
	}
	v.sim.Step()
	if v.OnDay != nil {
		v.OnDay(v.sim)
	}
	return true
}

// HandleKey applies a key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			v.paused = !v.paused
			v.pace.Reset()
		case 'n':
			v.Advance()
		}
	}
	return false
}

// Draw renders the grid and the side panel into the screen's back buffer.
func (v *Viewer) Draw() {
	v.screen.Clear()
	view := v.sim.ColorView()
	for y, row := range view {
		for x, c := range row {
			st := tcell.StyleDefault.Background(toColor(c))
			for i := 0; i < cellWidth; i++ {
				v.screen.SetContent(x*cellWidth+i, y, ' ', nil, st)
			}
		}
	}

	px := v.sim.Size().W*cellWidth + panelGap
	y := 0
	status := ""
	switch {
	case v.sim.Day() >= v.duration:
		status = " (done)"
	case v.paused:
		status = " (paused)"
	}
	y = v.text(px, y, fmt.Sprintf("Day %d/%d%s", v.sim.Day(), v.duration, status), tcell.StyleDefault.Bold(true))
	y++
	for _, s := range v.sim.Breakdown() {
		v.screen.SetContent(px, y, ' ', nil, tcell.StyleDefault.Background(toColor(s.Color)))
		y = v.text(px+2, y, fmt.Sprintf("%-12s %6.2f%%", s.Label, s.Percent), tcell.StyleDefault)
	}
	if pp, ok := v.sim.(core.ParameterProvider); ok {
		y++
		for _, line := range pp.Parameters().Lines() {
			y = v.text(px, y, line, tcell.StyleDefault)
		}
	}
	y++
	v.text(px, y, "space pause  n step  q quit", tcell.StyleDefault.Dim(true))
}

// text writes s starting at (x, y) and returns the next row.
func (v *Viewer) text(x, y int, s string, st tcell.Style) int {
	for i, r := range []rune(s) {
		v.screen.SetContent(x+i, y, r, nil, st)
	}
	return y + 1
}

// Run processes input and advances the sim until a quit key is pressed or
// ctx is cancelled. The caller owns the screen and must call Fini.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameDelay)
	defer ticker.Stop()

	v.Draw()
	v.screen.Show()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			if !v.paused && v.pace.Due() {
				v.Advance()
			}
		}
		v.Draw()
		v.screen.Show()
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
