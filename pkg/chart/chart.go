// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package chart renders grouped bar charts comparing configurations per category.
package chart

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// tickLabelRotation is rotation of category labels in degrees.
	tickLabelRotation = 27
	// legendRoom scales the top of automatic y range.
	legendRoom = 1.25
)

// Range is a fixed value axis range.
type Range struct {
	Min float64
	Max float64
}

// Series is one bar per category, named in the legend.
type Series struct {
	Name   string
	Values []float64
}

// Chart is a grouped bar chart written to Path.
type Chart struct {
	Categories []string
	Series     []Series
	YLabel     string
	Path       string
	// YRange is optional, automatic when nil.
	YRange *Range
}

// Config holds rendering parameters. It is bound to flags with conf.Process.
type Config struct {
	Width    int    `help:"Chart width in pixels." default:"1120"`
	Height   int    `help:"Chart height in pixels." default:"352"`
	DPI      int    `help:"Chart resolution in dots per inch." default:"80"`
	FontSize int    `help:"Chart font size in points." default:"14"`
	Palette  string `help:"Chart palette: scarab or a qualitative ColorBrewer palette name." default:"scarab"`
	XLabel   string `help:"Chart category axis label." default:"Benchmarks"`

	flagPrefix string
}

// DefaultConfig returns rendering parameters used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Width:      1120,
		Height:     352,
		DPI:        80,
		FontSize:   14,
		Palette:    ScarabPalette,
		XLabel:     "Benchmarks",
		flagPrefix: "chart_",
	}
}

// Validate checks rendering parameters.
func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.Errorf("chart size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.DPI <= 0 {
		return errors.Errorf("chart DPI must be positive, got %d", cfg.DPI)
	}
	if cfg.FontSize <= 0 {
		return errors.Errorf("chart font size must be positive, got %d", cfg.FontSize)
	}
	return nil
}

// Validate checks that chart can be drawn.
func (c Chart) Validate() error {
	if c.Path == "" {
		return errors.New("no output path")
	}
	if len(c.Categories) == 0 {
		return errors.New("no categories")
	}
	if len(c.Series) == 0 {
		return errors.New("no series")
	}
	for _, series := range c.Series {
		if len(series.Values) != len(c.Categories) {
			return errors.Errorf("series %q has %d values, expected one per category (%d)",
				series.Name, len(series.Values), len(c.Categories))
		}
	}
	if c.YRange != nil && !(c.YRange.Min < c.YRange.Max) {
		return errors.Errorf("invalid y range %v:%v", c.YRange.Min, c.YRange.Max)
	}
	return nil
}

// Render draws the chart and writes it as PNG, replacing existing file.
func Render(c Chart, cfg Config) error {
	if err := c.Validate(); err != nil {
		return &RenderingError{Path: c.Path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return &RenderingError{Path: c.Path, Err: err}
	}

	colors, err := Colors(cfg.Palette, len(c.Series))
	if err != nil {
		return &RenderingError{Path: c.Path, Err: err}
	}

	p := newPlot(c, cfg)

	width, offsets := barGeometry(len(c.Series))
	legend := newColumnLegend(p.Legend.TextStyle)
	for i, series := range c.Series {
		bars := &groupedBars{
			values:    series.Values,
			width:     width,
			offset:    offsets[i],
			color:     colors[i],
			lineWidth: vg.Points(1),
			hatch:     hatchFor(i),
		}
		p.Add(bars)
		legend.add(series.Name, bars)
	}
	p.Add(legend)

	setRanges(p, c)

	if err := save(p, c.Path, cfg); err != nil {
		return &RenderingError{Path: c.Path, Err: err}
	}

	logrus.WithFields(logrus.Fields{
		"path":   c.Path,
		"series": len(c.Series),
	}).Debug("Chart rendered")
	return nil
}

func newPlot(c Chart, cfg Config) *plot.Plot {
	p := plot.New()
	fontSize := vg.Points(float64(cfg.FontSize))

	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Label.TextStyle.Font.Size = fontSize
	p.Y.Label.TextStyle.Font.Size = fontSize
	p.X.Tick.Label.Font.Size = fontSize
	p.Y.Tick.Label.Font.Size = fontSize
	p.Legend.TextStyle.Font.Size = fontSize

	ticks := make([]plot.Tick, len(c.Categories))
	for i, category := range c.Categories {
		ticks[i] = plot.Tick{Value: float64(i), Label: category}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = tickLabelRotation * math.Pi / 180
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YTop

	p.Add(plotter.NewGrid())
	return p
}

// setRanges fixes the category axis so groups are centered on ticks and
// applies the value range.
func setRanges(p *plot.Plot, c Chart) {
	p.X.Min = -0.5
	p.X.Max = float64(len(c.Categories)) - 0.5

	if c.YRange != nil {
		p.Y.Min, p.Y.Max = c.YRange.Min, c.YRange.Max
		return
	}

	p.Y.Min = math.Min(0, p.Y.Min)
	if p.Y.Max <= 0 {
		p.Y.Max = 1
	}
	p.Y.Max *= legendRoom
}

func save(p *plot.Plot, path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "cannot create output directory for %q", path)
	}

	width := vg.Length(float64(cfg.Width)/float64(cfg.DPI)) * vg.Inch
	height := vg.Length(float64(cfg.Height)/float64(cfg.DPI)) * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(cfg.DPI))
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %q", path)
	}

	if _, err = (vgimg.PngCanvas{Canvas: canvas}).WriteTo(file); err != nil {
		file.Close()
		return errors.Wrapf(err, "cannot write %q", path)
	}
	return errors.Wrapf(file.Close(), "cannot close %q", path)
}
