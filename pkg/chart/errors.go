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

package chart

import (
	"fmt"
)

// RenderingError is returned when a chart cannot be drawn or written.
type RenderingError struct {
	Path string
	Err  error
}

func (e *RenderingError) Error() string {
	return fmt.Sprintf("cannot render chart %q: %v", e.Path, e.Err)
}

// Cause implements causer from github.com/pkg/errors.
func (e *RenderingError) Cause() error {
	return e.Err
}

// Unwrap supports errors.Is and errors.As from the standard library.
func (e *RenderingError) Unwrap() error {
	return e.Err
}
