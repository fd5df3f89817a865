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

package visualization

import (
	"fmt"
	"io"
	"math"

	"github.com/itemiral/lab3/pkg/aggregate"
	"github.com/itemiral/lab3/pkg/simstats"
	"github.com/shopspring/decimal"
)

const summaryPrecision = 4

// FormatValue prints metric value with fixed precision. Degenerate values are NaN.
func FormatValue(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(value).StringFixed(summaryPrecision)
}

// NewSummaryTable returns table with one row per configuration holding average of every metric.
func NewSummaryTable(result *aggregate.Result) *Table {
	headers := []string{"Configuration"}
	for _, metric := range simstats.Metrics {
		headers = append(headers, metric.String())
	}

	data := [][]string{}
	for _, configuration := range result.Configurations {
		row := []string{configuration}
		for _, metric := range simstats.Metrics {
			row = append(row, FormatValue(result.Series[metric].Avg(configuration)))
		}
		data = append(data, row)
	}

	return NewTable(headers, data)
}

// DrawSummary prints experiment metadata, the list of benchmarks and the average table.
func DrawSummary(w io.Writer, metadata *ExperimentMetadata, result *aggregate.Result) {
	fmt.Fprintf(w, "\n%s\n", metadata)

	workloads := result.Categories[:len(result.Categories)-1]
	fmt.Fprintf(w, "Benchmarks (%d):\n", len(workloads))
	NewList(workloads, " - ").Print(w)

	fmt.Fprintf(w, "Averages (%s):\n", aggregate.AvgCategory)
	NewSummaryTable(result).Draw(w)
}
