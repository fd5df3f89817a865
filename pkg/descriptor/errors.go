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

package descriptor

import (
	"fmt"
)

// ConfigurationInputError is returned when the descriptor is missing or malformed.
type ConfigurationInputError struct {
	Path   string
	Reason string
	Err    error
}

func newConfigurationInputError(path, reason string, err error) *ConfigurationInputError {
	return &ConfigurationInputError{Path: path, Reason: reason, Err: err}
}

func (e *ConfigurationInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("descriptor %q: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("descriptor %q: %s: %v", e.Path, e.Reason, e.Err)
}

// Cause implements causer from github.com/pkg/errors.
func (e *ConfigurationInputError) Cause() error {
	return e.Err
}

// Unwrap supports errors.Is and errors.As from the standard library.
func (e *ConfigurationInputError) Unwrap() error {
	return e.Err
}
