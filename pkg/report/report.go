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

// Package report runs the whole pipeline: it loads the experiment descriptor,
// aggregates simulator statistics and renders one chart per metric.
package report

import (
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/itemiral/lab3/pkg/aggregate"
	"github.com/itemiral/lab3/pkg/chart"
	"github.com/itemiral/lab3/pkg/descriptor"
	"github.com/itemiral/lab3/pkg/simstats"
	"github.com/itemiral/lab3/pkg/visualization"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Output file and axis label of every metric chart, in rendering order.
var charts = []struct {
	metric simstats.Metric
	file   string
	label  string
}{
	{simstats.IPC, "IPC.png", "IPC"},
	{simstats.Branch, "Branch.png", "Branch Misprediction Ratio"},
	{simstats.Dcache, "Dcache.png", "Dcache Miss Ratio"},
	{simstats.Icache, "Icache.png", "Icache Miss Ratio"},
}

// Config of a report run.
type Config struct {
	OutputDir      string
	DescriptorPath string
	SimulationPath string

	SkipMissing bool
	Average     aggregate.Average
	// YRanges fixes value axis of selected metrics.
	YRanges map[simstats.Metric]chart.Range
	Chart   chart.Config

	// Summary receives the summary table, nothing is printed when nil.
	Summary io.Writer
	// Progress receives the extraction progress bar when set.
	Progress io.Writer
}

// Run generates the report. The first error aborts the run.
func Run(cfg Config) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	log := logrus.WithField("run", s.Name)

	d, err := descriptor.Load(cfg.DescriptorPath)
	if err != nil {
		return err
	}
	log.Infof("Experiment %q: %d workload(s), %d configuration(s)",
		d.Experiment, len(d.Workloads), len(d.Configurations))

	if err := chart.CheckPalette(cfg.Chart.Palette, len(d.Configurations)); err != nil {
		return errors.Wrap(err, "too many configurations for chart palette")
	}

	extractor := simstats.NewFileExtractor(cfg.SimulationPath, d.Experiment)
	result, err := aggregate.Aggregate(d, extractor, aggregate.Options{
		SkipMissing: cfg.SkipMissing,
		Average:     cfg.Average,
		Progress:    cfg.Progress,
	})
	if err != nil {
		return err
	}

	for _, c := range charts {
		series := result.Series[c.metric]
		log.WithField("metric", c.metric.String()).Debugf("Series: %v", series.Values)

		metricChart := chart.Chart{
			Categories: result.Categories,
			YLabel:     c.label,
			Path:       filepath.Join(cfg.OutputDir, c.file),
		}
		for _, configuration := range series.Configurations {
			metricChart.Series = append(metricChart.Series, chart.Series{Name: configuration, Values: series.Values[configuration]})
		}
		if yRange, ok := cfg.YRanges[c.metric]; ok {
			metricChart.YRange = &yRange
		}

		if err := chart.Render(metricChart, cfg.Chart); err != nil {
			return err
		}
		log.WithField("path", metricChart.Path).Info("Chart written")
	}

	if cfg.Summary != nil {
		visualization.DrawSummary(cfg.Summary, visualization.NewExperimentMetadata(d.Experiment, s.UUID), result)
	}
	return nil
}

// ParseYRange parses "Metric=min:max", e.g. "IPC=0:3".
func ParseYRange(value string) (simstats.Metric, chart.Range, error) {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return 0, chart.Range{}, errors.Errorf("y range %q is not in Metric=min:max form", value)
	}

	metric, err := simstats.ParseMetric(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, chart.Range{}, errors.Wrapf(err, "y range %q", value)
	}

	bounds := strings.SplitN(parts[1], ":", 2)
	if len(bounds) != 2 {
		return 0, chart.Range{}, errors.Errorf("y range %q is not in Metric=min:max form", value)
	}
	lower, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
	if err != nil {
		return 0, chart.Range{}, errors.Wrapf(err, "y range %q has invalid minimum", value)
	}
	upper, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
	if err != nil {
		return 0, chart.Range{}, errors.Wrapf(err, "y range %q has invalid maximum", value)
	}
	if !(lower < upper) {
		return 0, chart.Range{}, errors.Errorf("y range %q is empty", value)
	}

	return metric, chart.Range{Min: lower, Max: upper}, nil
}

// ParseYRanges parses every value with ParseYRange. Later values override earlier ones.
func ParseYRanges(values []string) (map[simstats.Metric]chart.Range, error) {
	ranges := map[simstats.Metric]chart.Range{}
	for _, value := range values {
		metric, yRange, err := ParseYRange(value)
		if err != nil {
			return nil, err
		}
		ranges[metric] = yRange
	}
	return ranges, nil
}
