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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/itemiral/lab3/pkg/aggregate"
	"github.com/itemiral/lab3/pkg/chart"
	"github.com/itemiral/lab3/pkg/conf"
	"github.com/itemiral/lab3/pkg/report"
	"github.com/itemiral/lab3/pkg/utils/errutil"
	"github.com/sirupsen/logrus"
)

const (
	// exUsage is EX_USAGE from sysexits.h.
	exUsage = 64

	timestampFormat = "2006-01-02 15:04:05.000"
)

var (
	outputDirFlag      = conf.NewStringFlag("output_dir", "Directory where IPC, Branch, Dcache and Icache charts are written.", "")
	descriptorFlag     = conf.NewStringFlag("descriptor_name", "Experiment descriptor (JSON with workloads_list, configurations and experiment).", "")
	simulationPathFlag = conf.NewStringFlag("simulation_path", "Root directory of simulation results.", "")

	skipMissingFlag = conf.NewBoolFlag("skip_missing", "Skip cells with missing statistics with a warning instead of aborting.", false)
	averageFlag     = conf.NewStringFlag("average", "Average appended to every series: arithmetic or geometric.", string(aggregate.Arithmetic))
	yLimFlag        = conf.NewSliceFlag("ylim", "Fixed value range of a chart as Metric=min:max, e.g. IPC=0:3. Can be repeated.")
	summaryFlag     = conf.NewBoolFlag("summary", "Print table with averages of every configuration.", true)
	progressFlag    = conf.NewBoolFlag("progress", "Show progress bar of statistics extraction on stderr.", false)
)

func init() {
	outputDirFlag.Short('o').Required()
	descriptorFlag.Short('d').Required()
	simulationPathFlag.Short('s').Required()
}

func usageError(err error) {
	logrus.Errorf("Cannot parse flags: %q", err.Error())
	os.Exit(exUsage)
}

func main() {
	conf.SetAppName("simplot")
	conf.SetHelp(`simplot aggregates statistics of performance simulations (IPC, branch misprediction,
D-cache and I-cache miss ratios) of every workload and configuration listed in the experiment
descriptor, and renders grouped bar charts comparing configurations with an average bar.`)

	// Register chart flags, values are fetched after parsing.
	chartConfig := chart.DefaultConfig()
	errutil.CheckWithContext(conf.Process(&chartConfig), "Cannot register chart flags")

	if err := conf.ParseFlags(); err != nil {
		usageError(err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: timestampFormat})
	logrus.SetLevel(conf.LogLevel())

	if conf.DumpConfigFlag.Value() {
		fmt.Println(conf.DumpConfig())
		os.Exit(0)
	}

	errutil.CheckWithContext(conf.Process(&chartConfig), "Cannot read chart flags")
	logrus.WithFields(flagFields()).Debug("Configuration")

	average, err := aggregate.ParseAverage(averageFlag.Value())
	if err != nil {
		usageError(err)
	}
	yRanges, err := report.ParseYRanges(yLimFlag.Value())
	if err != nil {
		usageError(err)
	}

	var summary, progress io.Writer
	if summaryFlag.Value() {
		summary = os.Stdout
	}
	if progressFlag.Value() {
		progress = os.Stderr
	}

	errutil.Check(report.Run(report.Config{
		OutputDir:      outputDirFlag.Value(),
		DescriptorPath: descriptorFlag.Value(),
		SimulationPath: simulationPathFlag.Value(),
		SkipMissing:    skipMissingFlag.Value(),
		Average:        average,
		YRanges:        yRanges,
		Chart:          chartConfig,
		Summary:        summary,
		Progress:       progress,
	}))
}

func flagFields() logrus.Fields {
	fields := logrus.Fields{}
	for name, value := range conf.GetFlags() {
		fields[name] = value
	}
	return fields
}
