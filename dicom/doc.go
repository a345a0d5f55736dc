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

// Package dicom is a streaming codec for the DICOM file format as specified
// in [http://dicom.nema.org/medical/dicom/current/output/pdf/part05.pdf].
//
// The package has two levels of abstraction. The low level API is the part
// stream: Parser reads bytes incrementally and emits Part values (preamble,
// element headers, value chunks, sequence, item and fragment markers) such
// that the concatenated raw bytes of all parts reproduce the input exactly.
// Part streams can be transformed, for instance with Collect, which gathers
// a whitelisted subset of elements while buffering the stream.
//
// The high level API is the Elements data set: an immutable, tag ordered
// tree of value elements, sequences and fragments with typed getters and
// setters and tag path addressing. SinkElements aggregates a part stream
// into Elements, and Elements.ToBytes serializes a data set back to the
// wire, mirroring the parse grammar so that parsing a serialized data set
// yields the original.
package dicom
