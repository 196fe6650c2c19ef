package ui

import (
	"image"
	"strings"
	"testing"

	"epigrid/internal/report"
	"epigrid/internal/sims/epidemic"
)

type fixedSource struct{}

func (fixedSource) Float64() float64 { return 0.99 }
func (fixedSource) IntN(n int) int   { return 0 }

func newEngine(t *testing.T) *epidemic.Engine {
	t.Helper()
	e, err := epidemic.New(4, 4, 0.1, 0.2, 0.005, fixedSource{})
	if err != nil {
		t.Fatal(err)
	}
	e.InfectRandomly(1)
	return e
}

func TestLinesListSharesAndParameters(t *testing.T) {
	e := newEngine(t)
	lines := Lines(e, RunState{Duration: 10, Paused: true})

	if lines[0].Text != "Epidemic" {
		t.Fatalf("title = %q", lines[0].Text)
	}
	if lines[1].Text != "Day 0 / 10  paused" {
		t.Fatalf("day line = %q", lines[1].Text)
	}
	var swatches []Line
	joined := ""
	for _, l := range lines {
		if l.HasSwatch {
			swatches = append(swatches, l)
		}
		joined += l.Text + "\n"
	}
	if len(swatches) != int(epidemic.NumStatuses) {
		t.Fatalf("got %d swatch rows", len(swatches))
	}
	if swatches[1].Swatch != epidemic.Infected.Color() || !strings.HasPrefix(swatches[1].Text, "infected") {
		t.Fatalf("infected row = %+v", swatches[1])
	}
	if !strings.Contains(swatches[1].Text, "6.25%") {
		t.Fatalf("one of sixteen cells infected, row = %q", swatches[1].Text)
	}
	if !strings.Contains(joined, "Infection: 0.2") || !strings.Contains(joined, "l show plot") {
		t.Fatalf("missing parameter or key rows:\n%s", joined)
	}
}

func TestLinesMarkFinishedRun(t *testing.T) {
	e := newEngine(t)
	e.Step()
	lines := Lines(e, RunState{Duration: 1, PlotOn: true})
	if lines[1].Text != "Day 1 / 1  done" {
		t.Fatalf("day line = %q", lines[1].Text)
	}
}

func TestCurvesMapDaysAndPercentages(t *testing.T) {
	s := &report.Series{
		Labels: []string{"a"},
		Days:   []int{0, 5, 10},
		Values: [][]float64{{0, 50, 100}},
	}
	r := image.Rect(10, 20, 110, 220)
	got := Curves(s, r, 10)
	want := []Point{{10, 220}, {60, 120}, {110, 20}}
	if len(got) != 1 || len(got[0]) != 3 {
		t.Fatalf("curves = %v", got)
	}
	for i, p := range want {
		if got[0][i] != p {
			t.Fatalf("point %d = %v, want %v", i, got[0][i], p)
		}
	}
	if Curves(report.NewSeries(), r, 10) != nil {
		t.Fatal("empty series should have no curves")
	}
}

func TestPlotRectFitsPanel(t *testing.T) {
	r := PlotRect(400, 500)
	if r.Min.X != 400+panelPadding || r.Max.X != 400+PanelWidth-panelPadding {
		t.Fatalf("plot x range %v", r)
	}
	if r.Max.Y != 500-panelPadding || r.Dy() != PlotHeight-panelPadding {
		t.Fatalf("plot y range %v", r)
	}
	if MinHeight(10) != 2*panelPadding+10*lineHeight+PlotHeight {
		t.Fatal("MinHeight mismatch")
	}
}
