// Command epigrid-sweep runs replicated epidemic simulations across a range
// of infection probabilities and prints the mean outcome of each.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"epigrid/internal/sims/epidemic"
	"epigrid/internal/sweep"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

func (l kvList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return m
}

func main() {
	def := epidemic.DefaultConfig()
	size := flag.Int("size", def.Width, "grid width and height")
	duration := flag.Int("duration", 100, "maximum days per run")
	cases := flag.Int("cases", 2, "initial infections per run")
	recovery := flag.Float64("recovery", def.Params.Recovery, "daily recovery probability")
	death := flag.Float64("death", def.Params.Death, "daily death probability")
	infMin := flag.Float64("infection-min", 0.05, "smallest infection probability")
	infMax := flag.Float64("infection-max", 0.5, "largest infection probability")
	infStep := flag.Float64("infection-step", 0.05, "infection probability increment")
	replicates := flag.Int("replicates", 5, "runs per infection value")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", def.Seed, "seed of the first replicate")
	csvPath := flag.String("csv", "", "also write the results to this CSV file")
	var overrides kvList
	flag.Var(&overrides, "set", "engine override in key=value form, any key but infection (repeatable)")
	flag.Parse()

	cfg := def
	cfg.Width, cfg.Height = *size, *size
	cfg.Seed = *seed
	cfg.Params.Recovery = *recovery
	cfg.Params.Death = *death
	cfg, err := sweep.ApplyOverrides(cfg, overrides.Map())
	if err != nil {
		log.Fatal(err)
	}

	spec := sweep.Spec{
		Base:       cfg,
		Cases:      *cases,
		Duration:   *duration,
		Infections: sweep.InfectionRange(*infMin, *infMax, *infStep),
		Replicates: *replicates,
		Workers:    *workers,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Sweeping %d infection values x %d replicates on %dx%d (%d workers, %d days)\n",
		len(spec.Infections), spec.Replicates, cfg.Width, cfg.Height, spec.Workers, spec.Duration)
	start := time.Now()
	results, err := sweep.Run(ctx, spec)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Done in %s\n\n", time.Since(start).Round(time.Millisecond))

	if err := sweep.WriteTable(os.Stdout, results); err != nil {
		log.Fatal(err)
	}
	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := sweep.WriteCSV(f, results); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *csvPath)
	}
}
