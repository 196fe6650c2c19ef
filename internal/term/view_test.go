package term

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"epigrid/internal/core"
	"epigrid/internal/sims/epidemic"
)

// centerSource seeds the middle cell and never triggers a transition.
type centerSource struct{}

func (centerSource) Float64() float64 { return 0.99 }
func (centerSource) IntN(n int) int   { return n / 2 }

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func newViewer(t *testing.T, screen tcell.Screen, duration int) (*Viewer, *epidemic.Engine) {
	t.Helper()
	e, err := epidemic.New(3, 3, 0.1, 0.1, 0.005, centerSource{})
	if err != nil {
		t.Fatal(err)
	}
	e.InfectRandomly(1)
	return New(screen, e, duration, 5), e
}

func background(screen tcell.Screen, x, y int) tcell.Color {
	_, _, st, _ := screen.GetContent(x, y)
	_, bg, _ := st.Decompose()
	return bg
}

func rowText(screen tcell.Screen, x, y, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawPaintsCellsTwoColumnsWide(t *testing.T) {
	screen := newScreen(t)
	v, _ := newViewer(t, screen, 5)
	v.Draw()

	red := toColor(epidemic.Infected.Color())
	green := toColor(epidemic.Susceptible.Color())
	if background(screen, 2, 1) != red || background(screen, 3, 1) != red {
		t.Fatal("infected center cell not drawn in red")
	}
	if background(screen, 0, 0) != green || background(screen, 5, 2) != green {
		t.Fatal("susceptible cells not drawn in green")
	}
	px := 3*cellWidth + panelGap
	if got := rowText(screen, px, 0, 7); got != "Day 0/5" {
		t.Fatalf("panel header = %q", got)
	}
}

func TestHandleKey(t *testing.T) {
	screen := newScreen(t)
	v, e := newViewer(t, screen, 5)

	if v.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !v.Paused() {
		t.Fatal("space should pause without quitting")
	}
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	if e.Day() != 1 {
		t.Fatalf("n should step once, day = %d", e.Day())
	}
	if !v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if !v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestAdvanceStopsAtDuration(t *testing.T) {
	screen := newScreen(t)
	v, e := newViewer(t, screen, 2)
	days, calls := 0, 0
	v.OnDay = func(core.Sim) { calls++ }
	for i := 0; i < 5; i++ {
		if v.Advance() {
			days++
		}
	}
	if days != 2 || calls != 2 || e.Day() != 2 {
		t.Fatalf("advanced %d days (%d callbacks), sim on day %d", days, calls, e.Day())
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t)
	v, _ := newViewer(t, screen, 5)
	v.paused = true
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run = %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t)
	v, _ := newViewer(t, screen, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := v.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
}
