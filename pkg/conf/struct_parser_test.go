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

package conf

import (
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/alecthomas/kingpin.v2"
)

func TestNameFromFieldName(t *testing.T) {
	testData := map[string]string{
		"StringArg":      "string_arg",
		"string_arg":     "string_arg",
		"STRINGARG":      "stringarg",
		"STRING_ARG":     "string_arg",
		"StringARG":      "string_arg",
		"String1Arg":     "string_1_arg",
		"chart_FontSize": "chart_font_size",
		"chart_XLabel":   "chart_x_label",
	}

	for fieldName, expectedResult := range testData {
		Convey(fmt.Sprintf("I should get the name = %q from field name = %q", expectedResult, fieldName), t, func() {
			So(nameFromFieldName(fieldName), ShouldEqual, expectedResult)
		})
	}
}

type correctTestConfig struct {
	StringArg         string `help:"test string" default:"default_string"`
	RequiredStringArg string `help:"test required string" required:"true"`
	ExcludedStringArg string
	RenamedArg        string `help:"test renamed" name:"Other"`

	IntArg         int      `help:"test int" default:"2"`
	BoolArg        bool     `help:"test bool" default:"true"`
	StringSliceArg []string `help:"test slice"`

	flagPrefix string
}

func setEnvFromFieldName(fieldName, value string) error {
	flagID := nameFromFieldName(fieldName)
	flag := definedFlags[flagID]
	if flag == nil {
		return errors.Errorf("no flag is defined with id: %s", flagID)
	}

	return os.Setenv(flag.envName(), value)
}

// clearFlags drops already defined flags so struct tests start clean.
func clearFlags() {
	for _, flag := range definedFlags {
		flag.clear()
	}
	definedFlags = map[string]flagType{}

	app = kingpin.New("test", "No help available")
}

func TestStructTagFlags(t *testing.T) {
	clearFlags()
	defer clearFlags()

	Convey("When a struct exposes fields by using struct tags", t, func() {
		config := &correctTestConfig{flagPrefix: "test_"}

		So(Process(config), ShouldBeNil)

		Convey("After registration they should have tag default values", func() {
			So(config.StringArg, ShouldEqual, "default_string")
			So(config.RequiredStringArg, ShouldEqual, "")
			So(config.ExcludedStringArg, ShouldEqual, "")
			So(config.IntArg, ShouldEqual, 2)
			So(config.BoolArg, ShouldBeTrue)
			So(config.StringSliceArg, ShouldResemble, []string{})
			So(definedFlags, ShouldContainKey, "test_other")
		})

		Convey("Parsing fails until the required flag is provided", func() {
			err := ParseEnv()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEndWith, "required flag --test_required_string_arg not provided")

			So(setEnvFromFieldName("test_RequiredStringArg", "custom_string"), ShouldBeNil)
			So(setEnvFromFieldName("test_StringArg", "custom"), ShouldBeNil)
			So(setEnvFromFieldName("test_IntArg", "4324"), ShouldBeNil)
			So(setEnvFromFieldName("test_BoolArg", "false"), ShouldBeNil)
			So(setEnvFromFieldName("test_StringSliceArg", "A,B"), ShouldBeNil)
			// Not exposed.
			So(setEnvFromFieldName("test_ExcludedStringArg", "custom_string"), ShouldNotBeNil)

			So(ParseEnv(), ShouldBeNil)
			So(Process(config), ShouldBeNil)

			So(config.RequiredStringArg, ShouldEqual, "custom_string")
			So(config.StringArg, ShouldEqual, "custom")
			So(config.IntArg, ShouldEqual, 4324)
			So(config.BoolArg, ShouldBeFalse)
			So(config.StringSliceArg, ShouldResemble, []string{"A", "B"})
			So(config.ExcludedStringArg, ShouldEqual, "")
		})
	})
}

type testConfigWithWrongIntDefault struct {
	IntArg int `help:"test int" default:"not an Int"`
}

type testConfigWithWrongBoolDefault struct {
	BoolArg bool `help:"test bool" default:"not a Bool"`
}

type testConfigWithWrongSliceType struct {
	StringSliceArg []int `help:"test slice"`
}

type testConfigWithUnsupportedType struct {
	FloatArg float64 `help:"this flag should not be supported"`
}

type testConfigWithoutHelp struct {
	StringArg string `default:"x"`
}

func TestIncorrectStructTags(t *testing.T) {
	Convey("While using Conf flags", t, func() {
		clearFlags()
		defer clearFlags()

		Convey("Not parsable int default is an error", func() {
			err := Process(&testConfigWithWrongIntDefault{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "wrong default value for int flag")
		})

		Convey("Not parsable bool default is an error", func() {
			err := Process(&testConfigWithWrongBoolDefault{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "wrong default value for bool flag")
		})

		Convey("Slices other than []string are not supported", func() {
			err := Process(&testConfigWithWrongSliceType{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "[]int type not supported for a slice flag")
		})

		Convey("Unsupported types are rejected", func() {
			err := Process(&testConfigWithUnsupportedType{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "float64 type not supported for a flag")
		})

		Convey("Tags without help are rejected", func() {
			So(Process(&testConfigWithoutHelp{}), ShouldNotBeNil)
		})

		Convey("Only pointers to struct are accepted", func() {
			So(Process(testConfigWithoutHelp{}), ShouldNotBeNil)
			value := 1
			So(Process(&value), ShouldNotBeNil)
		})
	})
}
