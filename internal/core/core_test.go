package core

import (
	"slices"
	"testing"
	"time"
)

func TestCountAroundClipsAtEdges(t *testing.T) {
	g := NewByteGrid(3, 3)
	g.Fill(1)

	cases := []struct {
		x, y int
		want int
	}{
		{0, 0, 3},
		{1, 0, 5},
		{2, 2, 3},
		{1, 1, 8},
		{0, 1, 5},
	}
	for _, tc := range cases {
		if got := g.CountAround(tc.x, tc.y, 1); got != tc.want {
			t.Fatalf("CountAround(%d,%d) = %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestCountAroundDoesNotWrap(t *testing.T) {
	g := NewByteGrid(4, 4)
	g.Set(3, 3, 1)
	if got := g.CountAround(0, 0, 1); got != 0 {
		t.Fatalf("corner (0,0) saw %d matches across the wrap, want 0", got)
	}
	if got := g.CountAround(2, 2, 1); got != 1 {
		t.Fatalf("CountAround(2,2) = %d, want 1", got)
	}
}

func TestByteGridCountAndFill(t *testing.T) {
	g := NewByteGrid(5, 2)
	if g.Count(0) != 10 {
		t.Fatalf("new grid should be zeroed, got %d zeros", g.Count(0))
	}
	g.Set(4, 1, 2)
	if g.At(4, 1) != 2 || g.Cells()[1*5+4] != 2 || g.Count(2) != 1 {
		t.Fatal("Set/At disagree with the row-major layout")
	}
	g.Fill(3)
	if g.Count(3) != 10 {
		t.Fatal("Fill should set every cell")
	}
}

func TestNewByteGridClampsSize(t *testing.T) {
	g := NewByteGrid(0, -3)
	if g.W != 1 || g.H != 1 || len(g.Cells()) != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.W, g.H)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	var xs, ys []float64
	for i := 0; i < 16; i++ {
		xs = append(xs, a.Float64())
		ys = append(ys, b.Float64())
	}
	if !slices.Equal(xs, ys) {
		t.Fatal("same seed produced different sequences")
	}
	for i := 0; i < 100; i++ {
		if v := a.IntN(3); v < 0 || v >= 3 {
			t.Fatalf("IntN(3) out of range: %d", v)
		}
	}
}

func TestPacerReleasesOneDayPerInterval(t *testing.T) {
	p := NewPacer(10)
	now := time.Unix(0, 0)
	p.now = func() time.Time { return now }

	if !p.Due() {
		t.Fatal("first call should be due")
	}
	now = now.Add(50 * time.Millisecond)
	if p.Due() {
		t.Fatal("half an interval should not be due")
	}
	now = now.Add(50 * time.Millisecond)
	if !p.Due() {
		t.Fatal("a full interval should be due")
	}
	if p.Interval() != 100*time.Millisecond {
		t.Fatalf("interval = %v, want 100ms", p.Interval())
	}
}

func TestPacerDoesNotBurstAfterStall(t *testing.T) {
	p := NewPacer(10)
	now := time.Unix(0, 0)
	p.now = func() time.Time { return now }
	p.Due()

	now = now.Add(time.Second)
	if !p.Due() {
		t.Fatal("stalled pacer should release a day")
	}
	if p.Due() {
		t.Fatal("a stall should not release more than one day")
	}

	p.Reset()
	now = now.Add(50 * time.Millisecond)
	if p.Due() {
		t.Fatal("reset should start a fresh interval")
	}
	p.SetRate(0)
	if p.Interval() != time.Second {
		t.Fatalf("non-positive rate interval = %v", p.Interval())
	}
}

func TestParameterSnapshotLines(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name: "Grid",
		Params: []Parameter{
			IntParam("Width", 10),
			FloatParam("Chance", 0.25),
		},
	}}}
	want := []string{"Grid", "  Width: 10", "  Chance: 0.25"}
	if got := snap.Lines(); !slices.Equal(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
}
