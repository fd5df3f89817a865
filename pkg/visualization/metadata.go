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

// ExperimentMetadata encodes the metadata which is related to a report run.
type ExperimentMetadata struct {
	experimentName string
	runID          string
}

// NewExperimentMetadata is the ExperimentMetadata constructor.
func NewExperimentMetadata(name, runID string) *ExperimentMetadata {
	return &ExperimentMetadata{
		name,
		runID,
	}
}

// String returns a printable string with all experiment metadata.
func (metadata *ExperimentMetadata) String() string {
	return "Experiment: " + metadata.experimentName + "\nRun id: " + metadata.runID
}
