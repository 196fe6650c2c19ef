package sweep

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"math"
	"slices"
	"strings"
	"testing"

	"epigrid/internal/sims/epidemic"
)

func baseSpec() Spec {
	cfg := epidemic.DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	cfg.Seed = 7
	return Spec{
		Base:       cfg,
		Cases:      3,
		Duration:   40,
		Infections: []float64{0.3, 0.1, 0.2},
		Replicates: 3,
	}
}

func TestInfectionRange(t *testing.T) {
	got := InfectionRange(0.05, 0.25, 0.05)
	want := []float64{0.05, 0.1, 0.15, 0.2, 0.25}
	if !slices.Equal(got, want) {
		t.Fatalf("InfectionRange = %v, want %v", got, want)
	}
	if InfectionRange(0.5, 0.1, 0.1) != nil || InfectionRange(0, 1, 0) != nil {
		t.Fatal("empty ranges should be nil")
	}
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	spec := baseSpec()
	spec.Workers = 1
	serial, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	spec.Workers = 4
	parallel, err := Run(context.Background(), spec)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(serial, parallel) {
		t.Fatalf("results differ:\n%v\n%v", serial, parallel)
	}
	if len(serial) != 3 || serial[0].Infection != 0.1 || serial[2].Infection != 0.3 {
		t.Fatalf("results not ordered by infection: %+v", serial)
	}
	for _, r := range serial {
		if r.Runs != 3 {
			t.Fatalf("runs = %d", r.Runs)
		}
		sum := 0.0
		for _, v := range r.MeanFinal {
			sum += v
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("mean final percentages sum to %v", sum)
		}
	}
}

func TestRunErrors(t *testing.T) {
	spec := baseSpec()
	spec.Infections = nil
	if _, err := Run(context.Background(), spec); !errors.Is(err, ErrNoInfectionValues) {
		t.Fatalf("err = %v", err)
	}

	spec = baseSpec()
	spec.Infections = []float64{1.5}
	if _, err := Run(context.Background(), spec); !errors.Is(err, epidemic.ErrProbabilityRange) {
		t.Fatalf("err = %v, want ErrProbabilityRange", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, baseSpec()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	base := epidemic.DefaultConfig()
	cfg, err := ApplyOverrides(base, map[string]string{"recovery": "0.3", "size": "20"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params.Recovery != 0.3 || cfg.Width != 20 || cfg.Height != 20 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}

	cfg, err = ApplyOverrides(base, map[string]string{"infection": "0.9"})
	if !errors.Is(err, ErrSweptKey) {
		t.Fatalf("err = %v, want ErrSweptKey", err)
	}
	if cfg != base {
		t.Fatalf("rejected override changed the config: %+v", cfg)
	}

	if _, err := ApplyOverrides(base, map[string]string{"bogus": "1"}); !errors.Is(err, epidemic.ErrUnknownKey) {
		t.Fatalf("err = %v, want ErrUnknownKey", err)
	}
}

func TestSimulateStopsWhenNobodyInfected(t *testing.T) {
	cfg := epidemic.DefaultConfig()
	cfg.Width, cfg.Height = 5, 5
	cfg.Params = epidemic.Params{Recovery: 1, Infection: 0, Death: 0}
	out, err := Simulate(cfg, 2, 100)
	if err != nil {
		t.Fatal(err)
	}
	if out.EndDay != 1 {
		t.Fatalf("run should end after the single recovery day, ended on %d", out.EndDay)
	}
	if out.Final[epidemic.Infected] != 0 || out.PeakDay != 0 || out.PeakInfected <= 0 {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestWriteTableAndCSV(t *testing.T) {
	results := []Result{{Infection: 0.1, Runs: 2, MeanFinal: [4]float64{90, 0, 9, 1}, MeanPeakInfected: 4, MeanPeakDay: 6}}

	var table bytes.Buffer
	if err := WriteTable(&table, results); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(table.String(), "0.100") || !strings.Contains(table.String(), "90.00") {
		t.Fatalf("table missing values:\n%s", table.String())
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][2] != "susceptible" || rows[1][0] != "0.1000" {
		t.Fatalf("unexpected csv %v", rows)
	}
}
