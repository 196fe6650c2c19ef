package epidemic

import (
	"image/color"

	"epigrid/internal/core"
)

// Engine advances an SIRD epidemic on a fixed grid, one day per Update.
//
// Every cell holds exactly one Status. An update evaluates the transition
// rule for all cells against the grid as it stood before the update began and
// then swaps the result in, so a neighbor that changes today still counts with
// its status from yesterday.
//
// Engine is not safe for concurrent use.
type Engine struct {
	w, h   int
	params Params
	seed   int64

	cur *core.ByteGrid
	nxt *core.ByteGrid
	day int

	rng core.Source
}

// New returns an engine of the given size with every cell Susceptible. Random
// draws come from src.
func New(width, height int, recovery, infection, death float64, src core.Source) (*Engine, error) {
	cfg := Config{
		Width:  width,
		Height: height,
		Params: Params{Recovery: recovery, Infection: infection, Death: death},
	}
	return newEngine(cfg, src)
}

// NewWithConfig returns an engine configured from cfg, seeded with cfg.Seed.
func NewWithConfig(cfg Config) (*Engine, error) {
	return newEngine(cfg, core.NewRNG(cfg.Seed))
}

func newEngine(cfg Config, src core.Source) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = core.NewRNG(cfg.Seed)
	}
	e := &Engine{
		w:      cfg.Width,
		h:      cfg.Height,
		params: cfg.Params,
		seed:   cfg.Seed,
		cur:    core.NewByteGrid(cfg.Width, cfg.Height),
		nxt:    core.NewByteGrid(cfg.Width, cfg.Height),
		rng:    src,
	}
	e.cur.Fill(uint8(Susceptible))
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "epidemic" }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Day reports how many updates have run.
func (e *Engine) Day() int { return e.day }

// Params returns the transition probabilities.
func (e *Engine) Params() Params { return e.params }

// InfectRandomly picks count cells uniformly at random, with replacement, and
// marks them Infected. Picking the same cell twice has no further effect.
func (e *Engine) InfectRandomly(count int) {
	for n := 0; n < count; n++ {
		x := e.rng.IntN(e.w)
		y := e.rng.IntN(e.h)
		e.cur.Set(x, y, uint8(Infected))
	}
}

// Update advances the simulation by one day.
func (e *Engine) Update() {
	src := e.cur.Cells()
	dst := e.nxt.Cells()
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			idx := y*e.w + x
			dst[idx] = uint8(e.nextStatus(Status(src[idx]), x, y))
		}
	}
	e.cur, e.nxt = e.nxt, e.cur
	e.day++
}

// Step implements core.Sim.
func (e *Engine) Step() { e.Update() }

func (e *Engine) nextStatus(s Status, x, y int) Status {
	switch s {
	case Infected:
		if e.rng.Float64() < e.params.Recovery {
			return Recovered
		}
		if e.rng.Float64() < e.params.Death {
			return Dead
		}
	case Susceptible:
		n := e.infectedAround(x, y)
		if n == 0 {
			return s
		}
		chance := min(float64(n)*e.params.Infection, 1)
		if e.rng.Float64() < chance {
			return Infected
		}
	}
	return s
}

// infectedAround counts Infected cells in the clipped Moore neighborhood of
// (x, y) on the current, pre-update grid.
func (e *Engine) infectedAround(x, y int) int {
	return e.cur.CountAround(x, y, uint8(Infected))
}

// Counts returns the number of cells holding each status.
func (e *Engine) Counts() [NumStatuses]int {
	var counts [NumStatuses]int
	for _, s := range Statuses {
		counts[s] = e.cur.Count(uint8(s))
	}
	return counts
}

// StatusPercentages returns 100*count/cells for every status.
func (e *Engine) StatusPercentages() map[Status]float64 {
	counts := e.Counts()
	total := float64(e.Size().Cells())
	out := make(map[Status]float64, NumStatuses)
	for _, s := range Statuses {
		out[s] = 100 * float64(counts[s]) / total
	}
	return out
}

// ColorView maps every cell to its status color, indexed [y][x].
func (e *Engine) ColorView() [][]color.RGBA {
	view := make([][]color.RGBA, e.h)
	for y := range view {
		row := make([]color.RGBA, e.w)
		for x := range row {
			row[x] = Status(e.cur.At(x, y)).Color()
		}
		view[y] = row
	}
	return view
}

// Breakdown implements core.Sim, listing statuses in display order.
func (e *Engine) Breakdown() []core.Share {
	pct := e.StatusPercentages()
	shares := make([]core.Share, 0, NumStatuses)
	for _, s := range Statuses {
		shares = append(shares, core.Share{Label: s.String(), Color: s.Color(), Percent: pct[s]})
	}
	return shares
}
