// Copyright 2018 Google LLC
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

package dicom

import "github.com/sirupsen/logrus"

// log carries the warnings the streaming layer recovers from (odd value
// lengths, broken group lengths, unexpected elements inside fragments).
// Fatal conditions are returned as errors, never logged.
var log = logrus.StandardLogger().WithField("pkg", "dicom")

// SetLogger redirects the package's warnings to the given logrus logger.
func SetLogger(logger *logrus.Logger) {
	log = logger.WithField("pkg", "dicom")
}
