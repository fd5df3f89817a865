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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const legendColumns = 2

type legendEntry struct {
	name  string
	thumb plot.Thumbnailer
}

// columnLegend draws entries in columns at the top left corner of the data area.
// Entries fill a column top to bottom before moving to the next one.
type columnLegend struct {
	entries   []legendEntry
	columns   int
	textStyle text.Style

	thumbWidth vg.Length
	padding    vg.Length
	background color.Color
	border     draw.LineStyle
}

func newColumnLegend(textStyle text.Style) *columnLegend {
	textStyle.XAlign = text.XLeft
	textStyle.YAlign = text.YCenter
	return &columnLegend{
		columns:    legendColumns,
		textStyle:  textStyle,
		thumbWidth: vg.Points(20),
		padding:    vg.Points(4),
		background: color.White,
		border:     draw.LineStyle{Color: color.Gray{Y: 192}, Width: vg.Points(0.5)},
	}
}

func (l *columnLegend) add(name string, thumb plot.Thumbnailer) {
	l.entries = append(l.entries, legendEntry{name: name, thumb: thumb})
}

func (l *columnLegend) rows() int {
	if len(l.entries) == 0 {
		return 0
	}
	return (len(l.entries) + l.columns - 1) / l.columns
}

// cell returns row and column of i-th entry.
func (l *columnLegend) cell(i int) (row, column int) {
	rows := l.rows()
	return i % rows, i / rows
}

// Plot implements the plot.Plotter interface.
func (l *columnLegend) Plot(c draw.Canvas, _ *plot.Plot) {
	rows := l.rows()
	if rows == 0 {
		return
	}

	rowHeight := l.textStyle.Height("M") + l.padding
	columnWidths := make([]vg.Length, l.columns)
	for i, entry := range l.entries {
		_, column := l.cell(i)
		width := l.thumbWidth + l.padding + l.textStyle.Width(entry.name) + 2*l.padding
		if width > columnWidths[column] {
			columnWidths[column] = width
		}
	}

	var totalWidth vg.Length
	for _, width := range columnWidths {
		totalWidth += width
	}

	box := vg.Rectangle{
		Min: vg.Point{X: c.Min.X + l.padding, Y: c.Max.Y - l.padding - vg.Length(rows)*rowHeight - l.padding},
		Max: vg.Point{X: c.Min.X + l.padding + totalWidth, Y: c.Max.Y - l.padding},
	}
	corners := []vg.Point{
		box.Min,
		{X: box.Min.X, Y: box.Max.Y},
		box.Max,
		{X: box.Max.X, Y: box.Min.Y},
	}
	c.FillPolygon(l.background, corners)
	c.StrokeLines(l.border, append(corners, box.Min))

	for i, entry := range l.entries {
		row, column := l.cell(i)

		left := box.Min.X + l.padding
		for j := 0; j < column; j++ {
			left += columnWidths[j]
		}
		top := box.Max.Y - l.padding - vg.Length(row)*rowHeight

		thumb := draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: left, Y: top - rowHeight + l.padding/2},
				Max: vg.Point{X: left + l.thumbWidth, Y: top - l.padding/2},
			},
		}
		entry.thumb.Thumbnail(&thumb)

		c.FillText(l.textStyle, vg.Point{X: left + l.thumbWidth + l.padding, Y: top - rowHeight/2}, entry.name)
	}
}
