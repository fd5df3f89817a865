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

package mocks

import (
	"github.com/itemiral/lab3/pkg/simstats"
	"github.com/stretchr/testify/mock"
)

// Extractor mock
type Extractor struct {
	mock.Mock
}

// Extract provides a mock function with given fields: workload, configuration
func (_m *Extractor) Extract(workload string, configuration string) (simstats.Sample, error) {
	ret := _m.Called(workload, configuration)

	var r0 simstats.Sample
	if rf, ok := ret.Get(0).(func(string, string) simstats.Sample); ok {
		r0 = rf(workload, configuration)
	} else {
		r0 = ret.Get(0).(simstats.Sample)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(string, string) error); ok {
		r1 = rf(workload, configuration)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
