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
	"bytes"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/itemiral/lab3/pkg/descriptor"
	"github.com/itemiral/lab3/pkg/simstats"
	"github.com/itemiral/lab3/pkg/simstats/mocks"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"
	"pgregory.net/rapid"
)

func sampleWithIPC(ipc float64) simstats.Sample {
	return simstats.Sample{IPC: ipc, BranchMissRatio: ipc / 10, DcacheMissRatio: 0.5, IcacheMissRatio: 0.25}
}

func TestAggregate(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("While aggregating an experiment with two workloads and two configurations", t, func() {
		d := &descriptor.Descriptor{
			Workloads:      []string{"a", "b"},
			Configurations: []string{"C1", "C2"},
			Experiment:     "exp",
		}
		extractor := &mocks.Extractor{}

		Convey("Series hold per workload values followed by the mean", func() {
			extractor.On("Extract", "a", "C1").Return(sampleWithIPC(1.0), nil).Once()
			extractor.On("Extract", "b", "C1").Return(sampleWithIPC(3.0), nil).Once()
			extractor.On("Extract", "a", "C2").Return(sampleWithIPC(2.0), nil).Once()
			extractor.On("Extract", "b", "C2").Return(sampleWithIPC(2.0), nil).Once()

			result, err := Aggregate(d, extractor, Options{})
			So(err, ShouldBeNil)
			extractor.AssertExpectations(t)

			So(result.Categories, ShouldResemble, []string{"a", "b", AvgCategory})
			So(result.Configurations, ShouldResemble, []string{"C1", "C2"})
			So(result.Series, ShouldHaveLength, 4)

			ipc := result.Series[simstats.IPC]
			So(ipc.Values["C1"], ShouldResemble, []float64{1.0, 3.0, 2.0})
			So(ipc.Values["C2"], ShouldResemble, []float64{2.0, 2.0, 2.0})
			So(ipc.Avg("C1"), ShouldEqual, 2.0)

			So(result.Series[simstats.Branch].Values["C1"][2], ShouldAlmostEqual, 0.2, 1e-9)
			So(result.Series[simstats.Dcache].Values["C2"], ShouldResemble, []float64{0.5, 0.5, 0.5})
			So(result.Skipped, ShouldBeEmpty)

			Convey("Cells are visited configuration by configuration in descriptor order", func() {
				visited := []string{}
				for _, call := range extractor.Calls {
					visited = append(visited, fmt.Sprintf("%s/%s", call.Arguments.String(1), call.Arguments.String(0)))
				}
				So(visited, ShouldResemble, []string{"C1/a", "C1/b", "C2/a", "C2/b"})
			})
		})

		Convey("Geometric average can be selected", func() {
			extractor.On("Extract", "a", mock.Anything).Return(sampleWithIPC(1.0), nil)
			extractor.On("Extract", "b", mock.Anything).Return(sampleWithIPC(4.0), nil)

			result, err := Aggregate(d, extractor, Options{Average: Geometric})
			So(err, ShouldBeNil)
			So(result.Series[simstats.IPC].Avg("C1"), ShouldAlmostEqual, 2.0, 1e-9)
		})

		Convey("Geometric average of a series holding zero is zero", func() {
			noMispredicts := sampleWithIPC(1.0)
			noMispredicts.BranchMissRatio = 0
			mispredicts := sampleWithIPC(2.0)
			mispredicts.BranchMissRatio = 0.16
			extractor.On("Extract", "a", mock.Anything).Return(noMispredicts, nil)
			extractor.On("Extract", "b", mock.Anything).Return(mispredicts, nil)

			result, err := Aggregate(d, extractor, Options{Average: Geometric})
			So(err, ShouldBeNil)
			So(result.Series[simstats.Branch].Values["C1"], ShouldResemble, []float64{0, 0.16, 0})
			So(result.Series[simstats.IPC].Avg("C2"), ShouldAlmostEqual, math.Sqrt(2), 1e-9)
		})

		Convey("Progress bar counts every cell when a writer is given", func() {
			extractor.On("Extract", mock.Anything, mock.Anything).Return(sampleWithIPC(1.0), nil)
			progress := &bytes.Buffer{}

			_, err := Aggregate(d, extractor, Options{Progress: progress})
			So(err, ShouldBeNil)
			So(progress.String(), ShouldContainSubstring, "4 / 4")
			So(progress.String(), ShouldContainSubstring, "C2")
		})

		Convey("Degenerate ratios are excluded from the mean", func() {
			degenerate := sampleWithIPC(4.0)
			degenerate.DcacheMissRatio = math.NaN()
			extractor.On("Extract", "a", mock.Anything).Return(sampleWithIPC(1.0), nil)
			extractor.On("Extract", "b", mock.Anything).Return(degenerate, nil)

			result, err := Aggregate(d, extractor, Options{})
			So(err, ShouldBeNil)

			dcache := result.Series[simstats.Dcache].Values["C1"]
			So(dcache, ShouldHaveLength, 3)
			So(math.IsNaN(dcache[1]), ShouldBeTrue)
			So(dcache[2], ShouldEqual, 0.5)
		})

		Convey("Missing data aborts the run by default", func() {
			missing := &simstats.DataAvailabilityError{Workload: "b", Configuration: "C1", Path: "/x", Err: os.ErrNotExist}
			extractor.On("Extract", "a", "C1").Return(sampleWithIPC(1.0), nil)
			extractor.On("Extract", "b", "C1").Return(simstats.Sample{}, missing)

			result, err := Aggregate(d, extractor, Options{})
			So(result, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(errors.Cause(err), ShouldEqual, os.ErrNotExist)
			So(err.Error(), ShouldContainSubstring, `workload "b" configuration "C1"`)
			extractor.AssertNotCalled(t, "Extract", "a", "C2")
		})

		Convey("Skip mode replaces the missing cell with NaN and averages the rest", func() {
			missing := &simstats.DataAvailabilityError{Workload: "b", Configuration: "C1", Path: "/x", Err: os.ErrNotExist}
			extractor.On("Extract", "a", mock.Anything).Return(sampleWithIPC(1.0), nil)
			extractor.On("Extract", "b", "C1").Return(simstats.Sample{}, missing)
			extractor.On("Extract", "b", "C2").Return(sampleWithIPC(3.0), nil)

			result, err := Aggregate(d, extractor, Options{SkipMissing: true})
			So(err, ShouldBeNil)
			So(result.Skipped, ShouldHaveLength, 1)

			c1 := result.Series[simstats.IPC].Values["C1"]
			So(c1[0], ShouldEqual, 1.0)
			So(math.IsNaN(c1[1]), ShouldBeTrue)
			So(c1[2], ShouldEqual, 1.0)
			So(result.Series[simstats.IPC].Values["C2"], ShouldResemble, []float64{1.0, 3.0, 2.0})
		})

		Convey("Skip mode does not swallow other errors", func() {
			extractor.On("Extract", "a", mock.Anything).Return(simstats.Sample{}, errors.New("boom"))

			_, err := Aggregate(d, extractor, Options{SkipMissing: true})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEndWith, "boom")
		})

		Convey("Average is NaN when no value is usable", func() {
			extractor.On("Extract", mock.Anything, mock.Anything).Return(simstats.MissingSample(), nil)

			result, err := Aggregate(d, extractor, Options{})
			So(err, ShouldBeNil)
			So(math.IsNaN(result.Series[simstats.IPC].Avg("C2")), ShouldBeTrue)
		})

		Convey("Nil descriptor is rejected", func() {
			_, err := Aggregate(nil, extractor, Options{})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestParseAverage(t *testing.T) {
	Convey("Averages are parsed by name", t, func() {
		for name, expected := range map[string]Average{"": Arithmetic, "arithmetic": Arithmetic, "Geometric": Geometric} {
			average, err := ParseAverage(name)
			So(err, ShouldBeNil)
			So(average, ShouldEqual, expected)
		}

		_, err := ParseAverage("harmonic")
		So(err, ShouldNotBeNil)
	})
}

func TestGeometricMean(t *testing.T) {
	Convey("Geometric mean", t, func() {
		Convey("Is zero when any value is zero", func() {
			value, err := mean(Geometric, finite([]float64{0, 0.16}))
			So(err, ShouldBeNil)
			So(value, ShouldEqual, 0)

			value, err = mean(Geometric, finite([]float64{0.5, 0, 2, 8}))
			So(err, ShouldBeNil)
			So(value, ShouldEqual, 0)
		})

		Convey("Rejects negative values", func() {
			value, err := mean(Geometric, finite([]float64{1, -4}))
			So(err, ShouldNotBeNil)
			So(math.IsNaN(value), ShouldBeTrue)
		})

		Convey("Matches the n-th root of the product", func() {
			value, err := mean(Geometric, finite([]float64{2, 8, math.NaN()}))
			So(err, ShouldBeNil)
			So(value, ShouldAlmostEqual, 4.0, 1e-9)
		})
	})
}

// tableExtractor serves samples from memory.
type tableExtractor map[string]simstats.Sample

func (e tableExtractor) Extract(workload, configuration string) (simstats.Sample, error) {
	return e[configuration+"/"+workload], nil
}

func TestAggregateProperties(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	rapid.Check(t, func(t *rapid.T) {
		workloads := rapid.IntRange(1, 6).Draw(t, "workloads")
		configurations := rapid.IntRange(1, 4).Draw(t, "configurations")

		d := &descriptor.Descriptor{Experiment: "exp"}
		for i := 0; i < workloads; i++ {
			d.Workloads = append(d.Workloads, fmt.Sprintf("w%d", i))
		}
		for i := 0; i < configurations; i++ {
			d.Configurations = append(d.Configurations, fmt.Sprintf("c%d", i))
		}

		extractor := tableExtractor{}
		for _, configuration := range d.Configurations {
			for _, workload := range d.Workloads {
				extractor[configuration+"/"+workload] = simstats.Sample{
					IPC:             rapid.Float64Range(0.01, 8).Draw(t, "ipc"),
					BranchMissRatio: rapid.Float64Range(0, 1).Draw(t, "branch"),
					DcacheMissRatio: rapid.Float64Range(0, 1).Draw(t, "dcache"),
					IcacheMissRatio: rapid.Float64Range(0, 1).Draw(t, "icache"),
				}
			}
		}

		result, err := Aggregate(d, extractor, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Series) != len(simstats.Metrics) {
			t.Fatalf("expected %d series, got %d", len(simstats.Metrics), len(result.Series))
		}

		for _, metric := range simstats.Metrics {
			series := result.Series[metric]
			if len(series.Values) != configurations {
				t.Fatalf("%s: expected %d configurations, got %d", metric, configurations, len(series.Values))
			}
			for _, configuration := range d.Configurations {
				values := series.Values[configuration]
				if len(values) != workloads+1 {
					t.Fatalf("%s/%s: expected %d values, got %d", metric, configuration, workloads+1, len(values))
				}

				sum := 0.0
				for i, workload := range d.Workloads {
					expected := extractor[configuration+"/"+workload].Value(metric)
					if values[i] != expected {
						t.Fatalf("%s/%s: entry %d is %v, expected %v", metric, configuration, i, values[i], expected)
					}
					sum += values[i]
				}
				if mean := sum / float64(workloads); math.Abs(values[workloads]-mean) > 1e-9 {
					t.Fatalf("%s/%s: avg %v, expected %v", metric, configuration, values[workloads], mean)
				}
			}
		}
	})
}
