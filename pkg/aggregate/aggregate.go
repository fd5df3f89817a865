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

// Package aggregate drives metric extraction over all cells of an experiment
// and builds per-metric series with a trailing average entry.
package aggregate

import (
	"io"
	"math"

	"github.com/itemiral/lab3/pkg/descriptor"
	"github.com/itemiral/lab3/pkg/simstats"
	"github.com/itemiral/lab3/pkg/utils/err_collection"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"
)

// AvgCategory is the category label of the trailing mean entry.
const AvgCategory = "Avg"

// Options tune the aggregation.
type Options struct {
	// SkipMissing turns data availability errors into NaN cells with a warning.
	SkipMissing bool
	Average     Average
	// Progress receives a progress bar over all cells when set.
	Progress io.Writer
}

// Series holds one metric for every configuration.
// Every value slice has one entry per workload followed by the average.
type Series struct {
	Metric         simstats.Metric
	Configurations []string
	Values         map[string][]float64
}

// Avg returns trailing average entry of given configuration.
func (s *Series) Avg(configuration string) float64 {
	values := s.Values[configuration]
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

// Result of the aggregation.
type Result struct {
	// Categories are workloads in descriptor order followed by AvgCategory.
	Categories     []string
	Configurations []string
	Series         map[simstats.Metric]*Series
	// Skipped gathers cells replaced with NaN in skip mode.
	Skipped []error
}

// accumulator collects values of one configuration.
type accumulator struct {
	values map[simstats.Metric]stats.Float64Data
}

func newAccumulator(workloads int) accumulator {
	acc := accumulator{values: map[simstats.Metric]stats.Float64Data{}}
	for _, metric := range simstats.Metrics {
		acc.values[metric] = make(stats.Float64Data, 0, workloads+1)
	}
	return acc
}

func (acc accumulator) add(sample simstats.Sample) accumulator {
	for _, metric := range simstats.Metrics {
		acc.values[metric] = append(acc.values[metric], sample.Value(metric))
	}
	return acc
}

// Aggregate extracts every (configuration, workload) cell in descriptor order
// and returns four series with the average appended.
func Aggregate(d *descriptor.Descriptor, extractor simstats.Extractor, opts Options) (*Result, error) {
	if d == nil {
		return nil, errors.New("no experiment descriptor")
	}
	if opts.Average == "" {
		opts.Average = Arithmetic
	}

	result := &Result{
		Categories:     append(append([]string{}, d.Workloads...), AvgCategory),
		Configurations: append([]string{}, d.Configurations...),
		Series:         map[simstats.Metric]*Series{},
	}
	for _, metric := range simstats.Metrics {
		result.Series[metric] = &Series{
			Metric:         metric,
			Configurations: result.Configurations,
			Values:         map[string][]float64{},
		}
	}

	var bar *pb.ProgressBar
	if opts.Progress != nil {
		bar = pb.New(len(d.Configurations) * len(d.Workloads))
		bar.Output = opts.Progress
		bar.ShowTimeLeft = false
		bar.SetWidth(80)
		bar.Start()
		defer bar.Finish()
	}

	var skipped errcollection.ErrorCollection
	for _, configuration := range d.Configurations {
		acc := newAccumulator(len(d.Workloads))
		if bar != nil {
			bar.Prefix(configuration + " ")
		}

		for _, workload := range d.Workloads {
			sample, err := extractCell(extractor, workload, configuration, opts, &skipped)
			if err != nil {
				return nil, err
			}
			acc = acc.add(sample)
			if bar != nil {
				bar.Increment()
			}
		}

		for _, metric := range simstats.Metrics {
			values := acc.values[metric]
			avg, err := average(opts.Average, metric, configuration, values)
			if err != nil {
				return nil, err
			}
			result.Series[metric].Values[configuration] = append(values, avg)
		}
	}

	result.Skipped = skipped.Errors()
	if len(result.Skipped) > 0 {
		logrus.Warnf("Skipped %d cell(s) with missing data: %v", len(result.Skipped), skipped.GetErrIfAny())
	}
	return result, nil
}

func extractCell(extractor simstats.Extractor, workload, configuration string,
	opts Options, skipped *errcollection.ErrorCollection) (simstats.Sample, error) {

	sample, err := extractor.Extract(workload, configuration)
	if err == nil {
		return sample, nil
	}

	if opts.SkipMissing && simstats.IsDataAvailabilityError(err) {
		logrus.WithFields(logrus.Fields{
			"workload":      workload,
			"configuration": configuration,
		}).Warnf("Skipping cell: %v", err)
		skipped.Add(err)
		return simstats.MissingSample(), nil
	}

	return simstats.Sample{}, errors.Wrapf(err, "cannot extract workload %q configuration %q", workload, configuration)
}

func average(avg Average, metric simstats.Metric, configuration string, values []float64) (float64, error) {
	data := finite(values)
	if excluded := len(values) - data.Len(); excluded > 0 {
		logrus.WithFields(logrus.Fields{
			"metric":        metric.String(),
			"configuration": configuration,
		}).Warnf("%d of %d value(s) excluded from %s average", excluded, len(values), avg)
	}

	value, err := mean(avg, data)
	if err != nil {
		return math.NaN(), errors.Wrapf(err, "cannot average %s of configuration %q", metric, configuration)
	}
	return value, nil
}
