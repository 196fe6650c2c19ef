package core

import (
	"fmt"
	"strconv"
)

// Parameter is a single labelled value exposed by a simulation.
type Parameter struct {
	Label string
	Value string
}

// ParameterGroup clusters related parameters under a heading.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that can describe their settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// Lines flattens the snapshot into "Label: value" rows with a header per group.
func (s ParameterSnapshot) Lines() []string {
	var lines []string
	for _, g := range s.Groups {
		lines = append(lines, g.Name)
		for _, p := range g.Params {
			lines = append(lines, fmt.Sprintf("  %s: %s", p.Label, p.Value))
		}
	}
	return lines
}

// IntParam builds an integer Parameter.
func IntParam(label string, value int) Parameter {
	return Parameter{Label: label, Value: strconv.Itoa(value)}
}

// Int64Param builds an integer Parameter from an int64.
func Int64Param(label string, value int64) Parameter {
	return Parameter{Label: label, Value: strconv.FormatInt(value, 10)}
}

// FloatParam builds a floating point Parameter using the shortest exact form.
func FloatParam(label string, value float64) Parameter {
	return Parameter{Label: label, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}
