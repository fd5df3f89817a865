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
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/palette/brewer"
)

// ScarabPalette is the default palette of simulation reports.
const ScarabPalette = "scarab"

// minBrewerSize is the smallest size of ColorBrewer qualitative palettes.
const minBrewerSize = 3

var scarabColors = []string{
	"#800000", "#911eb4", "#4363d8", "#f58231", "#3cb44b", "#46f0f0",
	"#f032e6", "#bcf60c", "#fabebe", "#e6beff", "#e6194b", "#000075",
	"#800000", "#9a6324", "#808080", "#ffffff", "#000000",
}

// Colors returns n colors of the named palette. It fails when the palette has
// fewer than n colors.
func Colors(name string, n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, errors.Errorf("number of colors must be positive, got %d", n)
	}

	if name == "" || name == ScarabPalette {
		if n > len(scarabColors) {
			return nil, errors.Errorf("palette %q has %d colors, %d series requested", ScarabPalette, len(scarabColors), n)
		}
		colors := make([]color.Color, n)
		for i := range colors {
			c, err := parseHexColor(scarabColors[i])
			if err != nil {
				return nil, err
			}
			colors[i] = c
		}
		return colors, nil
	}

	size := n
	if size < minBrewerSize {
		size = minBrewerSize
	}
	palette, err := brewer.GetPalette(brewer.TypeQualitative, name, size)
	if err != nil {
		return nil, errors.Wrapf(err, "palette %q cannot provide %d colors", name, n)
	}
	return palette.Colors()[:n], nil
}

// CheckPalette verifies that the named palette can color n series.
func CheckPalette(name string, n int) error {
	_, err := Colors(name, n)
	return err
}

func parseHexColor(hex string) (color.Color, error) {
	value, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return nil, errors.Errorf("invalid color %q", hex)
	}
	return color.RGBA{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value), A: 0xff}, nil
}
