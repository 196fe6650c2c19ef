//go:build !ebiten

package app

import (
	"image"

	"epigrid/internal/core"
	"epigrid/internal/report"
)

// Run reports that this binary was built without window support.
func Run(core.Sim, *Config, *report.Series) error { return ErrNoWindow }

// ShowImage reports that this binary was built without window support.
func ShowImage(image.Image, string) error { return ErrNoWindow }
