// Package sweep runs many independent epidemic simulations across a range of
// infection probabilities and summarises their outcomes.
package sweep

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"epigrid/internal/sims/epidemic"
)

var (
	// ErrNoInfectionValues is returned when the requested range is empty.
	ErrNoInfectionValues = errors.New("sweep: no infection values in range")
	// ErrSweptKey is returned for overrides of the swept infection probability.
	ErrSweptKey = errors.New("sweep: infection is set by the sweep range")
)

// Spec describes a sweep. Each (infection value, replicate) pair runs on its
// own engine seeded with Base.Seed + replicate, so results do not depend on
// worker count or scheduling.
type Spec struct {
	Base       epidemic.Config
	Cases      int
	Duration   int
	Infections []float64
	Replicates int
	Workers    int
}

// Outcome is the result of one simulation run.
type Outcome struct {
	Infection float64
	Replicate int
	// Final holds the end-of-run percentage per status.
	Final [epidemic.NumStatuses]float64
	// PeakInfected is the highest infected percentage seen on any day.
	PeakInfected float64
	PeakDay      int
	// EndDay is the day the run stopped; runs stop early once nobody is infected.
	EndDay int
}

// Result aggregates the replicates for one infection value.
type Result struct {
	Infection        float64
	Runs             int
	MeanFinal        [epidemic.NumStatuses]float64
	MeanPeakInfected float64
	MeanPeakDay      float64
}

// ApplyOverrides applies key=value engine overrides to base. The infection
// probability cannot be overridden because every run takes it from the range.
func ApplyOverrides(base epidemic.Config, kv map[string]string) (epidemic.Config, error) {
	if v, ok := kv["infection"]; ok {
		return base, fmt.Errorf("%w: infection=%s", ErrSweptKey, v)
	}
	return epidemic.FromMap(base, kv)
}

// InfectionRange lists min, min+step, ... up to and including max, rounded to
// avoid float drift.
func InfectionRange(minV, maxV, step float64) []float64 {
	if step <= 0 || maxV < minV {
		return nil
	}
	var out []float64
	for i := 0; ; i++ {
		v := math.Round((minV+float64(i)*step)*1e9) / 1e9
		if v > maxV+1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

// Simulate runs a single engine for at most duration days.
func Simulate(cfg epidemic.Config, cases, duration int) (Outcome, error) {
	e, err := epidemic.NewWithConfig(cfg)
	if err != nil {
		return Outcome{}, err
	}
	e.InfectRandomly(cases)

	out := Outcome{Infection: cfg.Params.Infection}
	observe := func() bool {
		pct := e.StatusPercentages()
		if pct[epidemic.Infected] > out.PeakInfected {
			out.PeakInfected = pct[epidemic.Infected]
			out.PeakDay = e.Day()
		}
		return pct[epidemic.Infected] > 0
	}
	active := observe()
	for active && e.Day() < duration {
		e.Update()
		active = observe()
	}
	pct := e.StatusPercentages()
	for _, s := range epidemic.Statuses {
		out.Final[s] = pct[s]
	}
	out.EndDay = e.Day()
	return out, nil
}

// Run executes every replicate of every infection value, at most Workers at a
// time, and returns the per-value aggregates ordered by infection value.
func Run(ctx context.Context, spec Spec) ([]Result, error) {
	if len(spec.Infections) == 0 {
		return nil, ErrNoInfectionValues
	}
	replicates := max(spec.Replicates, 1)
	workers := max(spec.Workers, 1)

	outcomes := make([]Outcome, len(spec.Infections)*replicates)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, infection := range spec.Infections {
		for r := 0; r < replicates; r++ {
			slot := i*replicates + r
			cfg := spec.Base
			cfg.Params.Infection = infection
			cfg.Seed = spec.Base.Seed + int64(r)
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				out, err := Simulate(cfg, spec.Cases, spec.Duration)
				if err != nil {
					return fmt.Errorf("infection %.3f replicate %d: %w", cfg.Params.Infection, r, err)
				}
				out.Replicate = r
				outcomes[slot] = out
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate(outcomes, replicates), nil
}

func aggregate(outcomes []Outcome, replicates int) []Result {
	var results []Result
	for start := 0; start < len(outcomes); start += replicates {
		group := outcomes[start : start+replicates]
		res := Result{Infection: group[0].Infection, Runs: len(group)}
		for _, o := range group {
			for s := range o.Final {
				res.MeanFinal[s] += o.Final[s]
			}
			res.MeanPeakInfected += o.PeakInfected
			res.MeanPeakDay += float64(o.PeakDay)
		}
		n := float64(len(group))
		for s := range res.MeanFinal {
			res.MeanFinal[s] /= n
		}
		res.MeanPeakInfected /= n
		res.MeanPeakDay /= n
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Infection < results[j].Infection })
	return results
}

// WriteTable prints results as an aligned text table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "infection\truns\tsusceptible%\tinfected%\trecovered%\tdead%\tpeak infected%\tpeak day\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%.3f\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f\t\n",
			r.Infection, r.Runs,
			r.MeanFinal[epidemic.Susceptible], r.MeanFinal[epidemic.Infected],
			r.MeanFinal[epidemic.Recovered], r.MeanFinal[epidemic.Dead],
			r.MeanPeakInfected, r.MeanPeakDay)
	}
	return tw.Flush()
}

// WriteCSV writes one row per result with a header.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	header := []string{"infection", "runs"}
	for _, s := range epidemic.Statuses {
		header = append(header, s.String())
	}
	header = append(header, "peak_infected", "peak_day")
	if err := cw.Write(header); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for _, r := range results {
		row := []string{f(r.Infection), strconv.Itoa(r.Runs)}
		for _, v := range r.MeanFinal {
			row = append(row, f(v))
		}
		row = append(row, f(r.MeanPeakInfected), f(r.MeanPeakDay))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
