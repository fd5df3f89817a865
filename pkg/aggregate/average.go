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

package aggregate

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Average selects how the trailing Avg entry is computed.
type Average string

// Supported averages.
const (
	Arithmetic Average = "arithmetic"
	Geometric  Average = "geometric"
)

// ParseAverage converts name to Average. Empty name means Arithmetic.
func ParseAverage(name string) (Average, error) {
	switch Average(strings.ToLower(strings.TrimSpace(name))) {
	case "", Arithmetic:
		return Arithmetic, nil
	case Geometric:
		return Geometric, nil
	}
	return "", errors.Errorf("unknown average %q, expected %q or %q", name, Arithmetic, Geometric)
}

// finite returns values without NaN and infinities.
func finite(values []float64) stats.Float64Data {
	data := stats.Float64Data{}
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		data = append(data, value)
	}
	return data
}

// mean of finite values, NaN when none remain.
func mean(average Average, data stats.Float64Data) (float64, error) {
	if data.Len() == 0 {
		return math.NaN(), nil
	}

	switch average {
	case Geometric:
		lowest, err := stats.Min(data)
		if err != nil {
			return math.NaN(), errors.Wrap(err, "geometric mean failed")
		}
		if lowest < 0 {
			return math.NaN(), errors.Errorf("geometric mean of negative value %v", lowest)
		}
		// stats.GeometricMean restarts its product on zero entries.
		if lowest == 0 {
			return 0, nil
		}
		value, err := stats.GeometricMean(data)
		if err != nil {
			return math.NaN(), errors.Wrap(err, "geometric mean failed")
		}
		return value, nil
	default:
		value, err := stats.Mean(data)
		if err != nil {
			return math.NaN(), errors.Wrap(err, "mean failed")
		}
		return value, nil
	}
}
