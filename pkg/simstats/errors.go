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
	"bytes"
	"fmt"
)

// DataAvailabilityError reports a cell whose statistics are missing or incomplete.
type DataAvailabilityError struct {
	Workload      string
	Configuration string
	Path          string
	// Counter is empty when the whole file is unavailable.
	Counter string
	// Line is 1-based, zero when not related to a particular line.
	Line int
	Err  error
}

func (e *DataAvailabilityError) Error() string {
	buffer := &bytes.Buffer{}
	fmt.Fprintf(buffer, "no data for workload %q configuration %q", e.Workload, e.Configuration)
	if e.Counter != "" {
		fmt.Fprintf(buffer, " counter %q", e.Counter)
	}
	fmt.Fprintf(buffer, " in %q", e.Path)
	if e.Line > 0 {
		fmt.Fprintf(buffer, " line %d", e.Line)
	}
	if e.Err != nil {
		fmt.Fprintf(buffer, ": %v", e.Err)
	}
	return buffer.String()
}

// Cause implements causer from github.com/pkg/errors.
func (e *DataAvailabilityError) Cause() error {
	return e.Err
}

// Unwrap supports errors.Is and errors.As from the standard library.
func (e *DataAvailabilityError) Unwrap() error {
	return e.Err
}

// IsDataAvailabilityError tells whether err (or its cause chain) is a DataAvailabilityError.
func IsDataAvailabilityError(err error) bool {
	for err != nil {
		if _, ok := err.(*DataAvailabilityError); ok {
			return true
		}
		causer, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = causer.Cause()
	}
	return false
}
