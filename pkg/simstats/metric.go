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

package simstats

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Metric identifies one of the derived per-cell metrics.
type Metric int

// Metrics in report order.
const (
	IPC Metric = iota
	Branch
	Dcache
	Icache
)

// Metrics lists every metric in report order.
var Metrics = []Metric{IPC, Branch, Dcache, Icache}

var metricNames = map[Metric]string{
	IPC:    "IPC",
	Branch: "Branch",
	Dcache: "Dcache",
	Icache: "Icache",
}

func (m Metric) String() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// ParseMetric returns metric for given name (case sensitive, as printed by String).
func ParseMetric(name string) (Metric, error) {
	for metric, metricName := range metricNames {
		if metricName == name {
			return metric, nil
		}
	}
	return 0, errors.Errorf("unknown metric %q", name)
}

// Sample holds derived metrics of one (workload, configuration) cell.
// Degenerate ratios are NaN.
type Sample struct {
	IPC             float64
	BranchMissRatio float64
	DcacheMissRatio float64
	IcacheMissRatio float64
}

// MissingSample marks a cell without data.
func MissingSample() Sample {
	return Sample{
		IPC:             math.NaN(),
		BranchMissRatio: math.NaN(),
		DcacheMissRatio: math.NaN(),
		IcacheMissRatio: math.NaN(),
	}
}

// Value returns given metric of the sample.
func (s Sample) Value(m Metric) float64 {
	switch m {
	case IPC:
		return s.IPC
	case Branch:
		return s.BranchMissRatio
	case Dcache:
		return s.DcacheMissRatio
	case Icache:
		return s.IcacheMissRatio
	}
	panic(fmt.Sprintf("unknown metric %d", int(m)))
}
