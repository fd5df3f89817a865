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
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/pkg/errors"
)

const (
	// Tag for specifying the help description of the field. [Required]
	helpTag = "help"
	// Tag for specifying default value for field. [Optional]
	defaultTag = "default"
	// Tag for overriding the name of the field. [Optional]
	nameTag = "name"
	// Tag for specifying that the flag is required. [Optional]
	requiredTag = "required"
	// Special field name indicating prefix for all flags in struct.
	prefixFieldName = "flagPrefix"
)

// Process parses given struct and exposes flags for fields with config struct tags.
// Run it before parsing to register flags and after parsing to fetch their values.
// Fields without tags are left untouched.
func Process(data interface{}) error {
	s := &structProcessor{
		data: reflect.ValueOf(data),
	}
	return s.process()
}

func getStringFromField(field reflect.Value) string {
	if field.IsValid() && field.Kind() == reflect.String {
		return field.String()
	}
	return ""
}

type structProcessor struct {
	data       reflect.Value
	typeOfData reflect.Type
}

func (s *structProcessor) validate() error {
	if s.data.Kind() != reflect.Ptr {
		return errors.Errorf("argument needs to be a pointer to struct, got %s", s.data.Kind())
	}

	if s.data.Elem().Kind() != reflect.Struct {
		return errors.Errorf("argument needs to be a pointer to struct, got pointer to %s", s.data.Elem().Kind())
	}

	return nil
}

func (s *structProcessor) process() error {
	if err := s.validate(); err != nil {
		return err
	}

	dataValue := s.data.Elem()
	s.typeOfData = dataValue.Type()

	prefix := getStringFromField(dataValue.FieldByName(prefixFieldName))

	for i := 0; i < dataValue.NumField(); i++ {
		field := dataValue.Field(i)
		if !field.CanSet() {
			continue
		}

		f := &fieldProcessor{
			prefix:      prefix,
			field:       field,
			fieldStruct: s.typeOfData.Field(i),
		}
		if err := f.process(); err != nil {
			return errors.Wrapf(err, "field %s", f.fieldStruct.Name)
		}
	}
	return nil
}

// nameFromFieldName turns e.g. "chart_FontSize" into "chart_font_size".
func nameFromFieldName(name string) string {
	words := camelcase.Split(name)
	wordsToUse := []string{}
	for _, word := range words {
		if word == "_" {
			continue
		}
		wordsToUse = append(wordsToUse, strings.ToLower(strings.Trim(word, "_")))
	}

	return strings.Join(wordsToUse, "_")
}

type fieldProcessor struct {
	prefix      string
	field       reflect.Value
	fieldStruct reflect.StructField
}

func (f *fieldProcessor) isAnyTagSpecified() bool {
	for _, tag := range []string{nameTag, defaultTag, requiredTag, helpTag} {
		if f.fieldStruct.Tag.Get(tag) != "" {
			return true
		}
	}
	return false
}

func (f *fieldProcessor) getHelpMessage() (string, error) {
	help := f.fieldStruct.Tag.Get(helpTag)
	if help == "" && f.isAnyTagSpecified() {
		return "", errors.New("required help tag is missing")
	}
	return help, nil
}

func (f *fieldProcessor) getFlagName() string {
	name := f.fieldStruct.Tag.Get(nameTag)
	if name == "" {
		name = f.fieldStruct.Name
	}
	return nameFromFieldName(f.prefix + name)
}

func (f *fieldProcessor) process() error {
	help, err := f.getHelpMessage()
	if err != nil {
		return err
	}
	if help == "" {
		// Not a config field.
		return nil
	}

	name := f.getFlagName()
	defaultValue := f.fieldStruct.Tag.Get(defaultTag)

	var flagClause *cliAndEnvFlag

	switch f.field.Kind() {
	case reflect.String:
		flag := NewStringFlag(name, help, defaultValue)
		f.field.SetString(flag.Value())
		flagClause = flag.cliAndEnvFlag
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var defaultIntValue int
		if defaultValue != "" {
			defaultIntValue, err = strconv.Atoi(defaultValue)
			if err != nil {
				return errors.Wrap(err, "wrong default value for int flag")
			}
		}

		flag := NewIntFlag(name, help, defaultIntValue)
		f.field.SetInt(int64(flag.Value()))
		flagClause = flag.cliAndEnvFlag
	case reflect.Bool:
		var defaultBoolValue bool
		if defaultValue != "" {
			defaultBoolValue, err = strconv.ParseBool(defaultValue)
			if err != nil {
				return errors.Wrap(err, "wrong default value for bool flag")
			}
		}

		flag := NewBoolFlag(name, help, defaultBoolValue)
		f.field.SetBool(flag.Value())
		flagClause = flag.cliAndEnvFlag
	case reflect.Slice:
		if f.field.Type() != reflect.TypeOf([]string(nil)) {
			return errors.Errorf("%s type not supported for a slice flag", f.field.Type())
		}

		var defaultSliceValue StringListValue
		if defaultValue != "" {
			_ = defaultSliceValue.Set(defaultValue)
		}

		flag := NewSliceFlag(name, help, defaultSliceValue...)
		f.field.Set(reflect.ValueOf(append([]string{}, flag.Value()...)))
		flagClause = flag.cliAndEnvFlag
	default:
		return errors.Errorf("%s type not supported for a flag", f.field.Type())
	}

	if f.fieldStruct.Tag.Get(requiredTag) == "true" {
		flagClause.Required()
	}

	return nil
}
