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

import "io"

// dicomMagic follows the 128 byte preamble of a DICOM part 10 file
const dicomMagic = "DICM"

// Part is one structural piece of a DICOM byte stream. Concatenating the
// Bytes of every part in emission order reproduces the parsed input exactly.
type Part interface {
	// Bytes returns the raw bytes this part covers in the input
	Bytes() []byte
}

// PartIterator is a pull based stream of parts. Next returns io.EOF when the
// stream is exhausted.
type PartIterator interface {
	Next() (Part, error)
}

// PreamblePart is the 128 byte preamble plus the DICM magic
type PreamblePart struct {
	ByteData []byte
}

// Bytes returns the raw preamble bytes
func (p *PreamblePart) Bytes() []byte { return p.ByteData }

// HeaderPart is the header of a data element with a plain value field
type HeaderPart struct {
	TagValue    Tag
	VR          *VR
	ValueLength uint32

	// FMI is true for headers inside the File Meta Information group
	FMI        bool
	BigEndian  bool
	ExplicitVR bool
	ByteData   []byte
}

// Bytes returns the raw header bytes
func (p *HeaderPart) Bytes() []byte { return p.ByteData }

// ValueChunk carries up to chunk size bytes of a value field. The chunk
// after which the value is complete has Last set.
type ValueChunk struct {
	BigEndian bool
	ByteData  []byte
	Last      bool
}

// Bytes returns the chunk bytes
func (p *ValueChunk) Bytes() []byte { return p.ByteData }

// SequencePart is the header of a sequence (SQ) element
type SequencePart struct {
	TagValue       Tag
	SequenceLength uint32
	BigEndian      bool
	ExplicitVR     bool
	ByteData       []byte
}

// Bytes returns the raw header bytes
func (p *SequencePart) Bytes() []byte { return p.ByteData }

// ItemPart is an item header inside a sequence or inside encapsulated pixel
// data. Index is 1-based.
type ItemPart struct {
	Index      int
	ItemLength uint32
	BigEndian  bool
	ByteData   []byte
}

// Bytes returns the raw item header bytes
func (p *ItemPart) Bytes() []byte { return p.ByteData }

// ItemDelimitationPart ends an indeterminate length item
type ItemDelimitationPart struct {
	Index     int
	BigEndian bool
	ByteData  []byte
}

// Bytes returns the raw delimitation bytes
func (p *ItemDelimitationPart) Bytes() []byte { return p.ByteData }

// SequenceDelimitationPart ends an indeterminate length sequence or the
// fragments of encapsulated pixel data
type SequenceDelimitationPart struct {
	BigEndian bool
	ByteData  []byte
}

// Bytes returns the raw delimitation bytes
func (p *SequenceDelimitationPart) Bytes() []byte { return p.ByteData }

// FragmentsPart is the header of a pixel data element in encapsulated
// format (undefined length, non-SQ VR)
type FragmentsPart struct {
	TagValue    Tag
	ValueLength uint32
	VR          *VR
	BigEndian   bool
	ExplicitVR  bool
	ByteData    []byte
}

// Bytes returns the raw header bytes
func (p *FragmentsPart) Bytes() []byte { return p.ByteData }

// DeflatedChunk carries compressed bytes of a deflated transfer syntax when
// the parser is not inflating itself
type DeflatedChunk struct {
	BigEndian bool
	ByteData  []byte

	// NoWrap is true for raw deflate streams without the zlib wrapper
	NoWrap bool
}

// Bytes returns the compressed bytes
func (p *DeflatedChunk) Bytes() []byte { return p.ByteData }

// UnknownPart covers bytes the parser consumed but could not classify, such
// as unexpected elements inside fragments
type UnknownPart struct {
	BigEndian bool
	ByteData  []byte
}

// Bytes returns the raw bytes
func (p *UnknownPart) Bytes() []byte { return p.ByteData }

// ElementsPart is the synthetic part the collect flow emits, holding the
// elements accumulated up to the stop condition
type ElementsPart struct {
	Label    string
	Elements Elements
}

// Bytes of an ElementsPart is empty; the part covers no input bytes
func (p *ElementsPart) Bytes() []byte { return nil }

// slicePartIterator iterates over a fixed slice of parts
type slicePartIterator struct {
	parts []Part
	pos   int
}

// NewPartIterator returns a PartIterator over the given parts
func NewPartIterator(parts []Part) PartIterator {
	return &slicePartIterator{parts: parts}
}

func (it *slicePartIterator) Next() (Part, error) {
	if it.pos >= len(it.parts) {
		return nil, io.EOF
	}
	p := it.parts[it.pos]
	it.pos++
	return p, nil
}

// CollectParts drains a part iterator into a slice
func CollectParts(it PartIterator) ([]Part, error) {
	var parts []Part
	for {
		p, err := it.Next()
		if err == io.EOF {
			return parts, nil
		}
		if err != nil {
			return parts, err
		}
		parts = append(parts, p)
	}
}
