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

// Package descriptor loads the experiment descriptor: the list of workloads,
// the configurations they were simulated under and the experiment name.
package descriptor

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Descriptor describes one simulation experiment. It is read only once loaded.
type Descriptor struct {
	// Workloads in document order, e.g. "spec2017/gcc".
	Workloads []string
	// Configurations are the keys of the "configurations" object in document order.
	Configurations []string
	// Experiment is a path segment below every workload directory.
	Experiment string
}

// document mirrors the descriptor file.
type document struct {
	Workloads      []string       `json:"workloads_list"`
	Configurations configurations `json:"configurations"`
	Experiment     string         `json:"experiment"`
}

// configurations keeps object keys in document order and ignores values.
type configurations []string

// UnmarshalJSON implements json.Unmarshaler.
func (c *configurations) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*c = nil
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("configurations must be an object")
	}

	seen := map[string]bool{}
	keys := []string{}
	for decoder.More() {
		token, err = decoder.Token()
		if err != nil {
			return err
		}
		key := token.(string)
		if seen[key] {
			return errors.Errorf("configuration %q defined more than once", key)
		}
		seen[key] = true
		keys = append(keys, key)

		// Skip the value.
		var value json.RawMessage
		if err = decoder.Decode(&value); err != nil {
			return err
		}
	}

	*c = keys
	return nil
}

// Load reads and validates the descriptor stored at path.
// On any failure it returns nil and a *ConfigurationInputError.
func Load(path string) (*Descriptor, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newConfigurationInputError(path, "file not found", err)
		}
		return nil, newConfigurationInputError(path, "cannot read file", err)
	}

	return Parse(path, data)
}

// Parse decodes descriptor contents. Path is used for error reporting only.
func Parse(path string, data []byte) (*Descriptor, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, newConfigurationInputError(path, "malformed descriptor", err)
	}

	d := &Descriptor{
		Workloads:      doc.Workloads,
		Configurations: []string(doc.Configurations),
		Experiment:     doc.Experiment,
	}
	if err := d.Validate(); err != nil {
		return nil, newConfigurationInputError(path, "invalid descriptor", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":           path,
		"workloads":      len(d.Workloads),
		"configurations": len(d.Configurations),
		"experiment":     d.Experiment,
	}).Debug("Descriptor loaded")

	return d, nil
}

// Validate checks that the descriptor can drive a report.
func (d *Descriptor) Validate() error {
	if len(d.Workloads) == 0 {
		return errors.New("workloads_list is empty")
	}
	if len(d.Configurations) == 0 {
		return errors.New("configurations is empty")
	}
	if strings.TrimSpace(d.Experiment) == "" {
		return errors.New("experiment is empty")
	}
	for i, workload := range d.Workloads {
		if strings.TrimSpace(workload) == "" {
			return errors.Errorf("workload #%d is empty", i)
		}
	}
	for i, configuration := range d.Configurations {
		if strings.TrimSpace(configuration) == "" {
			return errors.Errorf("configuration #%d is empty", i)
		}
	}
	return nil
}
