//go:build ebiten

package app

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"epigrid/internal/core"
	"epigrid/internal/render"
	"epigrid/internal/report"
	"epigrid/internal/ui"
)

const frameTPS = 60

var background = color.RGBA{R: 16, G: 16, B: 20, A: 255}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim      core.Sim
	series   *report.Series
	duration int

	painter *render.GridPainter
	hud     *ui.HUD
	plot    *ui.Plot
	pace    *core.Pacer

	scale    int
	paused   bool
	tickOnce bool
}

// New constructs a Game advancing sim cfg.TPS days per second up to
// cfg.Duration. Every day shown is recorded into series.
func New(sim core.Sim, cfg *Config, series *report.Series) *Game {
	size := sim.Size()
	series.Record(sim)
	return &Game{
		sim:      sim,
		series:   series,
		duration: cfg.Duration,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim),
		plot:     ui.NewPlot(series, cfg.Duration),
		pace:     core.NewPacer(cfg.TPS),
		scale:    cfg.Scale,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.pace.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.plot.Toggle()
	}

	due := g.pace.Due()
	if ((!g.paused && due) || g.tickOnce) && g.sim.Day() < g.duration {
		g.sim.Step()
		g.series.Record(g.sim)
	}
	g.tickOnce = false
	g.hud.Update(ui.RunState{Duration: g.duration, Paused: g.paused, PlotOn: g.plot.Visible()})
	return nil
}

// Draw renders the grid, the HUD panel and the plot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.painter.Blit(screen, g.sim.ColorView(), 0, 0, g.scale)
	w, h := g.Layout(0, 0)
	gridW := w - ui.PanelWidth
	g.hud.Draw(screen, gridW, h)
	g.plot.Draw(screen, ui.PlotRect(gridW, h))
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	lines := len(ui.Lines(g.sim, ui.RunState{Duration: g.duration}))
	return s.W*g.scale + ui.PanelWidth, max(s.H*g.scale, ui.MinHeight(lines))
}

// Run opens a window animating sim until it is closed.
func Run(sim core.Sim, cfg *Config, series *report.Series) error {
	game := New(sim, cfg, series)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("epigrid: " + sim.Name())
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(frameTPS)
	return runGame(game)
}

type imageView struct {
	img  *ebiten.Image
	w, h int
}

func (v *imageView) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (v *imageView) Draw(screen *ebiten.Image) { screen.DrawImage(v.img, nil) }

func (v *imageView) Layout(int, int) (int, int) { return v.w, v.h }

// ShowImage opens a window displaying img until it is closed.
func ShowImage(img image.Image, title string) error {
	b := img.Bounds()
	v := &imageView{img: ebiten.NewImageFromImage(img), w: b.Dx(), h: b.Dy()}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(v.w, v.h)
	return runGame(v)
}

func runGame(game ebiten.Game) error {
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
