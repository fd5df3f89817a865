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

package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	// defaultBarWidth is the bar width in category units.
	defaultBarWidth = 0.18
	// maxGroupWidth bounds the width of all bars of one category.
	maxGroupWidth = 0.9
	// hatchUnit is divided by hatch density to get spacing of hatch lines.
	hatchUnit = 9
)

// hatch describes diagonal line fill of a bar.
type hatch struct {
	// forward lines rise to the right (/), otherwise they fall (\).
	forward bool
	// density is number of lines per hatch unit.
	density int
}

// hatchFor returns "///" for even series positions and "\\" for odd ones.
func hatchFor(position int) hatch {
	if position%2 == 0 {
		return hatch{forward: true, density: 3}
	}
	return hatch{forward: false, density: 2}
}

func (h hatch) spacing() vg.Length {
	return vg.Points(hatchUnit) / vg.Length(h.density)
}

// segments returns hatch lines clipped to rect.
func (h hatch) segments(rect vg.Rectangle) [][]vg.Point {
	w := rect.Max.X - rect.Min.X
	ht := rect.Max.Y - rect.Min.Y
	if w <= 0 || ht <= 0 {
		return nil
	}

	step := h.spacing()
	var lines [][]vg.Point
	for d := -ht + step/2; d < w; d += step {
		tMin := vg.Length(math.Max(float64(-d), 0))
		tMax := vg.Length(math.Min(float64(w-d), float64(ht)))
		if tMin >= tMax {
			continue
		}

		from := vg.Point{X: rect.Min.X + d + tMin}
		to := vg.Point{X: rect.Min.X + d + tMax}
		if h.forward {
			from.Y, to.Y = rect.Min.Y+tMin, rect.Min.Y+tMax
		} else {
			from.Y, to.Y = rect.Max.Y-tMin, rect.Max.Y-tMax
		}
		lines = append(lines, []vg.Point{from, to})
	}
	return lines
}

// groupedBars draws one outlined and hatched bar per value. Bar i is placed at
// category i shifted by offset; both width and offset are in category units.
type groupedBars struct {
	values []float64
	width  float64
	offset float64

	color     color.Color
	lineWidth vg.Length
	hatch     hatch
}

// barGeometry returns width and per series offsets centering the group on the category.
func barGeometry(series int) (width float64, offsets []float64) {
	width = defaultBarWidth
	if float64(series)*width > maxGroupWidth {
		width = maxGroupWidth / float64(series)
	}

	offsets = make([]float64, series)
	for i := range offsets {
		offsets[i] = (float64(i) - float64(series-1)/2) * width
	}
	return width, offsets
}

func (b *groupedBars) lineStyle() draw.LineStyle {
	return draw.LineStyle{Color: b.color, Width: b.lineWidth}
}

// Plot implements the plot.Plotter interface.
func (b *groupedBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	style := b.lineStyle()

	for i, value := range b.values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}

		center := float64(i) + b.offset
		rect := vg.Rectangle{
			Min: vg.Point{X: trX(center - b.width/2), Y: trY(math.Min(0, value))},
			Max: vg.Point{X: trX(center + b.width/2), Y: trY(math.Max(0, value))},
		}

		for _, line := range b.hatch.segments(rect) {
			c.StrokeLines(style, c.ClipLinesY(line)...)
		}

		outline := []vg.Point{
			{X: rect.Min.X, Y: rect.Min.Y},
			{X: rect.Min.X, Y: rect.Max.Y},
			{X: rect.Max.X, Y: rect.Max.Y},
			{X: rect.Max.X, Y: rect.Min.Y},
			{X: rect.Min.X, Y: rect.Min.Y},
		}
		c.StrokeLines(style, c.ClipLinesY(outline)...)
	}
}

// DataRange implements the plot.DataRanger interface.
func (b *groupedBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = -0.5, float64(len(b.values))-0.5
	for _, value := range b.values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		ymin = math.Min(ymin, value)
		ymax = math.Max(ymax, value)
	}
	return xmin, xmax, ymin, ymax
}

// Thumbnail fulfills the plot.Thumbnailer interface.
func (b *groupedBars) Thumbnail(c *draw.Canvas) {
	style := b.lineStyle()
	for _, line := range b.hatch.segments(c.Rectangle) {
		c.StrokeLines(style, line)
	}
	c.StrokeLines(style, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Min.Y},
	})
}
