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

import (
	"bytes"
	"encoding/binary"
)

// dcmWriter accumulates the wire encoding of data elements
type dcmWriter struct {
	bytes.Buffer
}

func (dw *dcmWriter) Tag(order binary.ByteOrder, tag Tag) {
	dw.UInt16(order, tag.GroupNumber())
	dw.UInt16(order, tag.ElementNumber())
}

func (dw *dcmWriter) UInt16(order binary.ByteOrder, v uint16) {
	buf := make([]byte, 2)
	order.PutUint16(buf, v)
	dw.Write(buf)
}

func (dw *dcmWriter) UInt32(order binary.ByteOrder, v uint32) {
	buf := make([]byte, 4)
	order.PutUint32(buf, v)
	dw.Write(buf)
}

// headerBytes serializes an element header. Item and delimitation tags use the
// implicit style 8 byte header regardless of the VR encoding; explicit VR
// headers are 8 or 12 bytes depending on the VR.
func headerBytes(tag Tag, vr *VR, length uint32, bigEndian, explicitVR bool) []byte {
	order := byteOrder(bigEndian)
	var dw dcmWriter
	dw.Tag(order, tag)
	if isItemLike(tag) || !explicitVR || vr == nil {
		dw.UInt32(order, length)
		return dw.Bytes()
	}
	dw.WriteString(vr.Name)
	if vr.headerLength == longHeader {
		dw.UInt16(order, 0)
		dw.UInt32(order, length)
	} else {
		dw.UInt16(order, uint16(length))
	}
	return dw.Bytes()
}

// ToBytes serializes the value element, header plus value field
func (e *ValueElement) ToBytes() []byte {
	header := headerBytes(e.tag, e.vr, e.Length(), e.bigEndian, e.explicitVR)
	return append(header, e.value.Bytes...)
}

// toBytes serializes an item, including its delimitation when indeterminate
func (i Item) toBytes(explicitVR bool) []byte {
	var dw dcmWriter
	order := byteOrder(i.bigEndian)
	dw.Tag(order, ItemTag)
	dw.UInt32(order, i.length)
	dw.Write(i.elements.toBytesAll())
	if i.Indeterminate() {
		dw.Tag(order, ItemDelimitationItemTag)
		dw.UInt32(order, 0)
	}
	return dw.Bytes()
}

// ToBytes serializes the sequence, its items and delimitations
func (s *Sequence) ToBytes() []byte {
	var dw dcmWriter
	dw.Write(headerBytes(s.tag, SQVR, s.length, s.bigEndian, s.explicitVR))
	for _, item := range s.items {
		dw.Write(item.toBytes(s.explicitVR))
	}
	if s.Indeterminate() {
		order := byteOrder(s.bigEndian)
		dw.Tag(order, SequenceDelimitationItemTag)
		dw.UInt32(order, 0)
	}
	return dw.Bytes()
}

// ToBytes serializes the encapsulated pixel data element: header, offset
// table item when present, fragment items, sequence delimitation
func (f *Fragments) ToBytes() []byte {
	var dw dcmWriter
	order := byteOrder(f.bigEndian)
	dw.Write(headerBytes(f.tag, f.vr, UndefinedLength, f.bigEndian, f.explicitVR))
	if f.offsets != nil {
		dw.Tag(order, ItemTag)
		dw.UInt32(order, uint32(4*len(f.offsets)))
		for _, offset := range f.offsets {
			dw.UInt32(order, uint32(offset))
		}
	}
	for _, fragment := range f.fragments {
		dw.Tag(order, ItemTag)
		dw.UInt32(order, fragment.Length())
		dw.Write(fragment.value.Bytes)
	}
	dw.Tag(order, SequenceDelimitationItemTag)
	dw.UInt32(order, 0)
	return dw.Bytes()
}

// toBytesAll serializes every element of the data set in tag order
func (e Elements) toBytesAll() []byte {
	var dw dcmWriter
	for _, elem := range e.data {
		dw.Write(elem.ToBytes())
	}
	return dw.Bytes()
}

// ToBytes serializes the data set, optionally preceded by the 128 byte
// preamble and the DICM magic
func (e Elements) ToBytes(withPreamble bool) []byte {
	var dw dcmWriter
	if withPreamble {
		dw.Write(make([]byte, 128))
		dw.WriteString(dicomMagic)
	}
	dw.Write(e.toBytesAll())
	return dw.Bytes()
}

// ToParts renders the data set as the part stream the parser would emit for
// its serialized bytes. Value element headers of group 0002 are marked as
// File Meta Information.
func (e Elements) ToParts(withPreamble bool) []Part {
	var parts []Part
	if withPreamble {
		preamble := make([]byte, 132)
		copy(preamble[128:], dicomMagic)
		parts = append(parts, &PreamblePart{ByteData: preamble})
	}
	for _, elem := range e.data {
		parts = append(parts, elementParts(elem)...)
	}
	return parts
}

func elementParts(elem ElementSet) []Part {
	switch el := elem.(type) {
	case *ValueElement:
		header := headerBytes(el.tag, el.vr, el.Length(), el.bigEndian, el.explicitVR)
		parts := []Part{&HeaderPart{
			TagValue: el.tag, VR: el.vr, ValueLength: el.Length(),
			FMI: el.tag.IsFileMetaInformation(), BigEndian: el.bigEndian,
			ExplicitVR: el.explicitVR, ByteData: header,
		}}
		if el.Length() == 0 {
			return parts
		}
		return append(parts, &ValueChunk{BigEndian: el.bigEndian, ByteData: el.value.Bytes, Last: true})
	case *Sequence:
		header := headerBytes(el.tag, SQVR, el.length, el.bigEndian, el.explicitVR)
		parts := []Part{&SequencePart{
			TagValue: el.tag, SequenceLength: el.length, BigEndian: el.bigEndian,
			ExplicitVR: el.explicitVR, ByteData: header,
		}}
		order := byteOrder(el.bigEndian)
		for i, item := range el.items {
			parts = append(parts, &ItemPart{
				Index: i + 1, ItemLength: item.length, BigEndian: el.bigEndian,
				ByteData: headerBytes(ItemTag, nil, item.length, el.bigEndian, el.explicitVR),
			})
			for _, nested := range item.elements.data {
				parts = append(parts, elementParts(nested)...)
			}
			if item.Indeterminate() {
				var dw dcmWriter
				dw.Tag(order, ItemDelimitationItemTag)
				dw.UInt32(order, 0)
				parts = append(parts, &ItemDelimitationPart{Index: i + 1, BigEndian: el.bigEndian, ByteData: dw.Bytes()})
			}
		}
		if el.Indeterminate() {
			var dw dcmWriter
			dw.Tag(order, SequenceDelimitationItemTag)
			dw.UInt32(order, 0)
			parts = append(parts, &SequenceDelimitationPart{BigEndian: el.bigEndian, ByteData: dw.Bytes()})
		}
		return parts
	case *Fragments:
		header := headerBytes(el.tag, el.vr, UndefinedLength, el.bigEndian, el.explicitVR)
		parts := []Part{&FragmentsPart{
			TagValue: el.tag, ValueLength: UndefinedLength, VR: el.vr,
			BigEndian: el.bigEndian, ExplicitVR: el.explicitVR, ByteData: header,
		}}
		order := byteOrder(el.bigEndian)
		index := 0
		if el.offsets != nil {
			var dw dcmWriter
			for _, offset := range el.offsets {
				dw.UInt32(order, uint32(offset))
			}
			index++
			parts = append(parts, &ItemPart{
				Index: index, ItemLength: uint32(dw.Len()), BigEndian: el.bigEndian,
				ByteData: headerBytes(ItemTag, nil, uint32(dw.Len()), el.bigEndian, el.explicitVR),
			})
			parts = append(parts, &ValueChunk{BigEndian: el.bigEndian, ByteData: dw.Bytes(), Last: true})
		}
		for _, fragment := range el.fragments {
			index++
			parts = append(parts, &ItemPart{
				Index: index, ItemLength: fragment.Length(), BigEndian: el.bigEndian,
				ByteData: headerBytes(ItemTag, nil, fragment.Length(), el.bigEndian, el.explicitVR),
			})
			parts = append(parts, &ValueChunk{BigEndian: el.bigEndian, ByteData: fragment.value.Bytes, Last: true})
		}
		var dw dcmWriter
		dw.Tag(order, SequenceDelimitationItemTag)
		dw.UInt32(order, 0)
		return append(parts, &SequenceDelimitationPart{BigEndian: el.bigEndian, ByteData: dw.Bytes()})
	default:
		return nil
	}
}
