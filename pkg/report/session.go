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

package report

import (
	"time"

	"github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
)

// session identifies one report run in logs and in the summary.
type session struct {
	UUID string
	Name string
}

func newSession() (session, error) {
	s, err := uuid.NewV4()
	if err != nil {
		return session{}, errors.Wrap(err, "cannot generate run id")
	}
	return session{
		UUID: s.String(),
		Name: time.Now().Format("2006-01-02T15h04m05s_") + s.String(),
	}, nil
}
