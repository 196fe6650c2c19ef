// Package report turns simulation runs into artifacts: time series, CSV,
// line charts, multi-panel snapshots and video.
package report

import (
	"encoding/csv"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"

	"epigrid/internal/core"
)

// Series accumulates one percentage per population share per recorded day.
type Series struct {
	Labels []string
	Colors []color.RGBA
	Days   []int
	// Values[i][k] is the percentage of Labels[i] on Days[k].
	Values [][]float64
}

// NewSeries returns an empty series. Labels are taken from the first Record.
func NewSeries() *Series { return &Series{} }

// Len returns the number of recorded days.
func (s *Series) Len() int { return len(s.Days) }

// LastDay returns the most recently recorded day, or -1 when empty.
func (s *Series) LastDay() int {
	if len(s.Days) == 0 {
		return -1
	}
	return s.Days[len(s.Days)-1]
}

// Record appends the sim's current breakdown. Recording the same day twice is
// a no-op.
func (s *Series) Record(sim core.Sim) {
	day := sim.Day()
	if day == s.LastDay() {
		return
	}
	shares := sim.Breakdown()
	if s.Labels == nil {
		s.Labels = make([]string, len(shares))
		s.Colors = make([]color.RGBA, len(shares))
		s.Values = make([][]float64, len(shares))
		for i, sh := range shares {
			s.Labels[i] = sh.Label
			s.Colors[i] = sh.Color
		}
	}
	s.Days = append(s.Days, day)
	for i, sh := range shares {
		if i < len(s.Values) {
			s.Values[i] = append(s.Values[i], sh.Percent)
		}
	}
}

// WriteCSV writes a header row ("day" plus labels) and one row per day.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"day"}, s.Labels...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	row := make([]string, len(header))
	for k, day := range s.Days {
		row[0] = strconv.Itoa(day)
		for i := range s.Labels {
			row[i+1] = strconv.FormatFloat(s.Values[i][k], 'f', 4, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", day, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to path.
func (s *Series) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// advanceTo steps sim until it reaches day, recording every day into series
// when series is non-nil.
func advanceTo(sim core.Sim, day int, series *Series) {
	if series != nil {
		series.Record(sim)
	}
	for sim.Day() < day {
		sim.Step()
		if series != nil {
			series.Record(sim)
		}
	}
}
