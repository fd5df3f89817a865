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
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Statistics files written by the simulator for every cell.
const (
	MemoryStatsFile = "memory.stat.0.csv"
	BranchStatsFile = "bp.stat.0.csv"
)

// Counter names recognized in statistics files.
const (
	PeriodicIPCCounter      = "Periodic IPC"
	IcacheHitCounter        = "ICACHE_HIT_ONPATH_count"
	IcacheMissCounter       = "ICACHE_MISS_ONPATH_count"
	DcacheHitCounter        = "DCACHE_HIT_ONPATH_count"
	DcacheMissCounter       = "DCACHE_MISS_ONPATH_count"
	BranchCorrectCounter    = "BP_ON_PATH_CORRECT_count"
	BranchMispredictCounter = "BP_ON_PATH_MISPREDICT_count"
	fieldDelimiter          = ","
	maxLineLength           = 1024 * 1024
)

var (
	memoryCounters = []string{
		PeriodicIPCCounter,
		IcacheHitCounter,
		IcacheMissCounter,
		DcacheHitCounter,
		DcacheMissCounter,
	}
	branchCounters = []string{
		BranchCorrectCounter,
		BranchMispredictCounter,
	}

	// ErrCounterNotObserved is the cause of DataAvailabilityError for a counter absent from its file.
	ErrCounterNotObserved = errors.New("counter never observed")
)

// Extractor derives the metrics of a single (workload, configuration) cell.
type Extractor interface {
	Extract(workload, configuration string) (Sample, error)
}

// FileExtractor reads simulator statistics laid out as
// <root>/<workload>/<experiment>/<configuration>/{memory,bp}.stat.0.csv.
type FileExtractor struct {
	root       string
	experiment string
}

// NewFileExtractor returns extractor reading cells of experiment below root.
func NewFileExtractor(root, experiment string) *FileExtractor {
	return &FileExtractor{root: root, experiment: experiment}
}

// CellDir returns directory holding statistics of the cell.
func (e *FileExtractor) CellDir(workload, configuration string) string {
	return filepath.Join(e.root, workload, e.experiment, configuration)
}

// Extract implements Extractor.
func (e *FileExtractor) Extract(workload, configuration string) (Sample, error) {
	dir := e.CellDir(workload, configuration)
	log := logrus.WithFields(logrus.Fields{
		"workload":      workload,
		"configuration": configuration,
	})

	memory, err := scanCounters(filepath.Join(dir, MemoryStatsFile), memoryCounters)
	if err != nil {
		return Sample{}, withCell(err, workload, configuration)
	}

	branch, err := scanCounters(filepath.Join(dir, BranchStatsFile), branchCounters)
	if err != nil {
		return Sample{}, withCell(err, workload, configuration)
	}

	ipc, _ := memory[PeriodicIPCCounter].Float64()
	sample := Sample{
		IPC:             ipc,
		BranchMissRatio: missRatio(log, Branch, branch[BranchCorrectCounter], branch[BranchMispredictCounter]),
		DcacheMissRatio: missRatio(log, Dcache, memory[DcacheHitCounter], memory[DcacheMissCounter]),
		IcacheMissRatio: missRatio(log, Icache, memory[IcacheHitCounter], memory[IcacheMissCounter]),
	}

	log.WithField("sample", sample).Debug("Cell extracted")
	return sample, nil
}

// missRatio returns miss / (hit + miss) or NaN when both are zero.
func missRatio(log *logrus.Entry, metric Metric, hit, miss decimal.Decimal) float64 {
	total := hit.Add(miss)
	if total.IsZero() {
		log.WithField("metric", metric.String()).Warn("Zero denominator in miss ratio, using NaN")
		return math.NaN()
	}

	ratio, _ := miss.Div(total).Float64()
	return ratio
}

func withCell(err error, workload, configuration string) error {
	if dataErr, ok := err.(*DataAvailabilityError); ok {
		dataErr.Workload = workload
		dataErr.Configuration = configuration
	}
	return err
}

// scanCounters reads whole file and returns last observed value of every wanted counter.
// All wanted counters must be present.
func scanCounters(path string, wanted []string) (map[string]decimal.Decimal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataAvailabilityError{Path: path, Err: err}
	}
	defer file.Close()

	isWanted := make(map[string]bool, len(wanted))
	for _, name := range wanted {
		isWanted[name] = true
	}

	values := make(map[string]decimal.Decimal, len(wanted))
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Split(scanner.Text(), fieldDelimiter)
		name := strings.TrimSpace(fields[0])
		if !isWanted[name] {
			continue
		}

		if len(fields) < 2 {
			return nil, &DataAvailabilityError{
				Path:    path,
				Counter: name,
				Line:    lineNumber,
				Err:     errors.New("missing value"),
			}
		}

		value, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, &DataAvailabilityError{
				Path:    path,
				Counter: name,
				Line:    lineNumber,
				Err:     errors.Wrap(err, "invalid value"),
			}
		}
		// Last occurrence wins.
		values[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, &DataAvailabilityError{Path: path, Line: lineNumber, Err: err}
	}

	for _, name := range wanted {
		if _, ok := values[name]; !ok {
			return nil, &DataAvailabilityError{Path: path, Counter: name, Err: ErrCounterNotObserved}
		}
	}

	return values, nil
}
