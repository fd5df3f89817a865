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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

const validDescriptor = `{
	"experiment": "exp1",
	"workloads_list": ["spec2017/gcc", "spec2017/mcf"],
	"configurations": {
		"zeta": {"params": "--fdip_enable 1"},
		"alpha": null,
		"mid": "anything"
	},
	"unknown_field": 42
}`

func writeDescriptor(dir, content string) string {
	path := filepath.Join(dir, "descriptor.def")
	err := ioutil.WriteFile(path, []byte(content), 0644)
	So(err, ShouldBeNil)
	return path
}

func TestLoad(t *testing.T) {
	Convey("While loading experiment descriptor", t, func() {
		dir, err := ioutil.TempDir("", "descriptor")
		So(err, ShouldBeNil)
		defer os.RemoveAll(dir)

		Convey("Valid descriptor is loaded with configurations in document order", func() {
			d, err := Load(writeDescriptor(dir, validDescriptor))
			So(err, ShouldBeNil)
			So(d, ShouldNotBeNil)
			So(d.Workloads, ShouldResemble, []string{"spec2017/gcc", "spec2017/mcf"})
			So(d.Configurations, ShouldResemble, []string{"zeta", "alpha", "mid"})
			So(d.Experiment, ShouldEqual, "exp1")
		})

		Convey("Missing file yields no descriptor and file not found error", func() {
			path := filepath.Join(dir, "missing.def")
			d, err := Load(path)
			So(d, ShouldBeNil)
			So(err, ShouldNotBeNil)

			inputErr, ok := err.(*ConfigurationInputError)
			So(ok, ShouldBeTrue)
			So(inputErr.Path, ShouldEqual, path)
			So(inputErr.Reason, ShouldEqual, "file not found")
			So(err.Error(), ShouldContainSubstring, path)
			So(os.IsNotExist(errors.Cause(err)), ShouldBeTrue)
		})

		Convey("Malformed JSON yields parse error with reason", func() {
			d, err := Load(writeDescriptor(dir, `{"workloads_list": [`))
			So(d, ShouldBeNil)
			So(err, ShouldHaveSameTypeAs, &ConfigurationInputError{})
			So(err.(*ConfigurationInputError).Reason, ShouldEqual, "malformed descriptor")
			So(err.(*ConfigurationInputError).Err, ShouldNotBeNil)
		})

		Convey("Wrong structure is a parse error", func() {
			_, err := Load(writeDescriptor(dir, `{"workloads_list": "a", "configurations": {"C1": 1}, "experiment": "e"}`))
			So(err, ShouldNotBeNil)

			_, err = Load(writeDescriptor(dir, `{"workloads_list": ["a"], "configurations": ["C1"], "experiment": "e"}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "configurations must be an object")
		})

		Convey("Duplicated configuration keys are rejected", func() {
			_, err := Load(writeDescriptor(dir, `{"workloads_list": ["a"], "configurations": {"C1": 1, "C1": 2}, "experiment": "e"}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, `configuration "C1" defined more than once`)
		})

		Convey("Incomplete descriptors are invalid", func() {
			for _, content := range []string{
				`{"workloads_list": [], "configurations": {"C1": 1}, "experiment": "e"}`,
				`{"workloads_list": ["a"], "configurations": {}, "experiment": "e"}`,
				`{"workloads_list": ["a"], "configurations": null, "experiment": "e"}`,
				`{"workloads_list": ["a"], "configurations": {"C1": 1}}`,
				`{"workloads_list": [""], "configurations": {"C1": 1}, "experiment": "e"}`,
				`{"workloads_list": ["a"], "configurations": {" ": 1}, "experiment": "e"}`,
			} {
				d, err := Load(writeDescriptor(dir, content))
				So(d, ShouldBeNil)
				So(err, ShouldNotBeNil)
				So(err.(*ConfigurationInputError).Reason, ShouldEqual, "invalid descriptor")
			}
		})
	})
}
