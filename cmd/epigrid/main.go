// Command epigrid runs the epidemic grid simulation as a live animation, a
// video file or a static multi-panel report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"epigrid/internal/app"
	"epigrid/internal/render"
	"epigrid/internal/report"
	"epigrid/internal/sims/epidemic"
	"epigrid/internal/term"
)

func main() {
	cfg, err := app.Resolve(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("seed %d", cfg.ResolveSeed(time.Now()))

	sim, err := epidemic.NewWithConfig(cfg.EngineConfig())
	if err != nil {
		log.Fatalf("epidemic: %v", err)
	}
	sim.InfectRandomly(cfg.Cases)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	series := report.NewSeries()
	if err := run(ctx, cfg, sim, series); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("interrupted on day %d", sim.Day())
		} else {
			log.Fatal(err)
		}
	}
	if err := writeExtras(cfg, series); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *app.Config, sim *epidemic.Engine, series *report.Series) error {
	ext := strings.ToLower(filepath.Ext(cfg.File))
	switch {
	case cfg.Plot:
		return runPlot(cfg, sim, series, ext)
	case cfg.File != "":
		if ext != ".avi" {
			return fmt.Errorf("animation output must be an .avi file, got %q", cfg.File)
		}
		opts := report.DefaultVideoOptions()
		opts.Scale = cfg.Scale
		if err := report.WriteVideo(ctx, cfg.File, sim, cfg.Duration, series, opts); err != nil {
			return err
		}
		log.Printf("wrote %s (%d days)", cfg.File, sim.Day())
		return nil
	case cfg.View == app.ViewTerm:
		return runTerm(ctx, cfg, sim, series)
	default:
		return app.Run(sim, cfg, series)
	}
}

func runPlot(cfg *app.Config, sim *epidemic.Engine, series *report.Series, ext string) error {
	if cfg.File != "" && ext != ".png" {
		return fmt.Errorf("plot output must be a .png file, got %q", cfg.File)
	}
	layout := report.DefaultLayout()
	panels := report.CapturePanels(sim, cfg.Duration, layout, series)
	img, err := report.RenderPanels(panels, layout, report.PanelScale(sim.Size(), 160))
	if err != nil {
		return err
	}
	if cfg.File == "" {
		return app.ShowImage(img, "epigrid: "+sim.Name())
	}
	if err := render.SavePNG(cfg.File, img); err != nil {
		return err
	}
	log.Printf("wrote %s", cfg.File)
	return nil
}

func runTerm(ctx context.Context, cfg *app.Config, sim *epidemic.Engine, series *report.Series) error {
	screen, err := term.Open()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	series.Record(sim)
	v := term.New(screen, sim, cfg.Duration, cfg.TPS)
	v.OnDay = series.Record
	return v.Run(ctx)
}

func writeExtras(cfg *app.Config, series *report.Series) error {
	if cfg.CSV != "" {
		if err := series.SaveCSV(cfg.CSV); err != nil {
			return err
		}
		log.Printf("wrote %s", cfg.CSV)
	}
	if cfg.Chart != "" {
		opts := report.DefaultChartOptions()
		opts.MaxDay = cfg.Duration
		if err := series.SaveChart(cfg.Chart, opts); err != nil {
			return err
		}
		log.Printf("wrote %s", cfg.Chart)
	}
	return nil
}
