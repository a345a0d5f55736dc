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

import "errors"

// Errors returned by the streaming and dataset layers. Fatal stream errors
// terminate the part stream; parts already emitted remain valid.
var (
	// ErrNotDicom is returned when the start of the input matches no DICOM
	// encoding (no preamble and no parsable first element).
	ErrNotDicom = errors.New("not a DICOM stream")

	// ErrImplicitBigEndianNotSupported is returned when autodetection finds
	// a stream that could only be implicit VR big endian, a combination the
	// standard does not define.
	ErrImplicitBigEndianNotSupported = errors.New("implicit VR big endian encoding not supported")

	// ErrTruncated is returned when the upstream closes in the middle of an
	// element header or another required read.
	ErrTruncated = errors.New("DICOM stream truncated")

	// ErrBufferOverflow is returned by the collect flow when buffered parts
	// exceed the configured maximum buffer size.
	ErrBufferOverflow = errors.New("collect buffer overflow")

	// ErrInvalidPath is returned by Elements mutators when the shape of a
	// tag path does not match the structure it addresses.
	ErrInvalidPath = errors.New("invalid tag path")

	// ErrUnknownKeyword is returned when a keyword has no corresponding tag
	// in the data dictionary.
	ErrUnknownKeyword = errors.New("unknown keyword")
)
