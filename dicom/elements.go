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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ElementSet is an entry of a data set: a plain value element, a sequence of
// items, or encapsulated fragments.
type ElementSet interface {
	Tag() Tag
	VR() *VR
	BigEndian() bool
	ExplicitVR() bool

	// ToBytes serializes the element including its header, items and
	// delimitations, in its own byte order and VR encoding
	ToBytes() []byte
}

// ValueElement is a data element with a plain value field
type ValueElement struct {
	tag        Tag
	vr         *VR
	value      Value
	bigEndian  bool
	explicitVR bool
}

// NewValueElement creates a value element. The value is padded to even
// length with the padding byte of the VR.
func NewValueElement(tag Tag, vr *VR, value Value, bigEndian, explicitVR bool) *ValueElement {
	return &ValueElement{tag, vr, value.EnsurePadding(vr), bigEndian, explicitVR}
}

// Tag returns the element tag
func (e *ValueElement) Tag() Tag { return e.tag }

// VR returns the value representation
func (e *ValueElement) VR() *VR { return e.vr }

// BigEndian is true when the value field is big endian encoded
func (e *ValueElement) BigEndian() bool { return e.bigEndian }

// ExplicitVR is true when the element serializes with an explicit VR header
func (e *ValueElement) ExplicitVR() bool { return e.explicitVR }

// Value returns the raw value field
func (e *ValueElement) Value() Value { return e.value }

// Length returns the value field length in bytes, always even
func (e *ValueElement) Length() uint32 { return uint32(e.value.Length()) }

func (e *ValueElement) String() string {
	return fmt.Sprintf("%s %s [%d] %s", e.tag, e.vr, e.value.Length(), KeywordOf(e.tag))
}

// Item is one item of a sequence
type Item struct {
	elements  Elements
	length    uint32
	bigEndian bool
}

// NewItem creates an item holding the given data set. An explicit length
// item records the serialized byte length of its elements; an indeterminate
// item serializes with a trailing item delimitation.
func NewItem(elements Elements, indeterminate bool, bigEndian bool) Item {
	length := uint32(UndefinedLength)
	if !indeterminate {
		length = uint32(len(elements.toBytesAll()))
	}
	return Item{elements, length, bigEndian}
}

// Elements returns the data set of the item
func (i Item) Elements() Elements { return i.elements }

// Length returns the item length, UndefinedLength for indeterminate items
func (i Item) Length() uint32 { return i.length }

// Indeterminate is true when the item serializes with a delimitation instead
// of an up-front length
func (i Item) Indeterminate() bool { return i.length == UndefinedLength }

// Sequence is a data element holding a list of items
type Sequence struct {
	tag        Tag
	length     uint32
	items      []Item
	bigEndian  bool
	explicitVR bool
}

// NewSequence creates a sequence. Pass UndefinedLength for an indeterminate
// length sequence, which serializes with a trailing sequence delimitation.
func NewSequence(tag Tag, length uint32, items []Item, bigEndian, explicitVR bool) *Sequence {
	return &Sequence{tag, length, items, bigEndian, explicitVR}
}

// Tag returns the sequence tag
func (s *Sequence) Tag() Tag { return s.tag }

// VR of a sequence is always SQ
func (s *Sequence) VR() *VR { return SQVR }

// BigEndian is true when the sequence contents are big endian encoded
func (s *Sequence) BigEndian() bool { return s.bigEndian }

// ExplicitVR is true when the sequence serializes with an explicit VR header
func (s *Sequence) ExplicitVR() bool { return s.explicitVR }

// Length returns the sequence length, UndefinedLength when indeterminate
func (s *Sequence) Length() uint32 { return s.length }

// Indeterminate is true when the sequence serializes with a delimitation
func (s *Sequence) Indeterminate() bool { return s.length == UndefinedLength }

// Items returns the items of the sequence
func (s *Sequence) Items() []Item { return s.items }

// Size returns the number of items
func (s *Sequence) Size() int { return len(s.items) }

// Item returns the 1-based item with the given index
func (s *Sequence) Item(index int) (Item, bool) {
	if index < 1 || index > len(s.items) {
		return Item{}, false
	}
	return s.items[index-1], true
}

// AddItem returns a new sequence with the item's data set appended. An
// indeterminate sequence gains an indeterminate item; an explicit length
// sequence gains an explicit length item and grows its recorded length by
// the serialized item length.
func (s *Sequence) AddItem(elements Elements) *Sequence {
	item := NewItem(elements, s.Indeterminate(), s.bigEndian)
	items := append(append([]Item{}, s.items...), item)
	length := s.length
	if !s.Indeterminate() {
		length += uint32(len(item.toBytes(s.explicitVR)))
	}
	return &Sequence{s.tag, length, items, s.bigEndian, s.explicitVR}
}

func (s *Sequence) String() string {
	return fmt.Sprintf("%s SQ [%d items] %s", s.tag, len(s.items), KeywordOf(s.tag))
}

// Fragment is one fragment of encapsulated pixel data
type Fragment struct {
	bigEndian bool
	value     Value
}

// NewFragment creates a fragment over raw bytes
func NewFragment(value Value, bigEndian bool) Fragment {
	return Fragment{bigEndian, value}
}

// Value returns the fragment bytes
func (f Fragment) Value() Value { return f.value }

// Length returns the fragment length in bytes
func (f Fragment) Length() uint32 { return uint32(f.value.Length()) }

// Fragments is a pixel data element in encapsulated format: an optional
// basic offset table followed by byte fragments, framed with item tags. See
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
type Fragments struct {
	tag        Tag
	vr         *VR
	offsets    []int64 // nil when no offset table item was present
	fragments  []Fragment
	bigEndian  bool
	explicitVR bool
}

// NewFragments creates an encapsulated pixel data element
func NewFragments(tag Tag, vr *VR, offsets []int64, fragments []Fragment, bigEndian, explicitVR bool) *Fragments {
	return &Fragments{tag, vr, offsets, fragments, bigEndian, explicitVR}
}

// Tag returns the element tag
func (f *Fragments) Tag() Tag { return f.tag }

// VR returns the value representation, typically OB or OW
func (f *Fragments) VR() *VR { return f.vr }

// BigEndian is true when fragment data is big endian encoded
func (f *Fragments) BigEndian() bool { return f.bigEndian }

// ExplicitVR is true when the element serializes with an explicit VR header
func (f *Fragments) ExplicitVR() bool { return f.explicitVR }

// Offsets returns the basic offset table, nil when no offset table item was
// present and empty but non-nil when it was present and empty
func (f *Fragments) Offsets() []int64 { return f.offsets }

// Fragments returns the data fragments, excluding the offset table
func (f *Fragments) Fragments() []Fragment { return f.fragments }

// AddFragment returns a new Fragments with one more fragment. The first
// fragment added becomes the basic offset table, its bytes split into 4 byte
// unsigned integers.
func (f *Fragments) AddFragment(fragment Fragment) *Fragments {
	if f.offsets == nil && len(f.fragments) == 0 {
		b := fragment.value.Bytes
		order := byteOrder(fragment.bigEndian)
		offsets := make([]int64, len(b)/4)
		for i := range offsets {
			offsets[i] = int64(order.Uint32(b[4*i:]))
		}
		return &Fragments{f.tag, f.vr, offsets, f.fragments, f.bigEndian, f.explicitVR}
	}
	fragments := append(append([]Fragment{}, f.fragments...), fragment)
	return &Fragments{f.tag, f.vr, f.offsets, fragments, f.bigEndian, f.explicitVR}
}

// FrameCount returns the number of image frames: 0 when there is neither an
// offset table nor fragments, 1 when fragments are present without an offset
// table, and the size of the offset table otherwise.
func (f *Fragments) FrameCount() int {
	if f.offsets == nil {
		if len(f.fragments) == 0 {
			return 0
		}
		return 1
	}
	return len(f.offsets)
}

// FrameIterator concatenates the fragment bytes and splits them at the
// offset table boundaries, yielding one byte slice per frame
func (f *Fragments) FrameIterator() [][]byte {
	var all []byte
	for _, fragment := range f.fragments {
		all = append(all, fragment.value.Bytes...)
	}
	count := f.FrameCount()
	if count == 0 {
		return nil
	}
	if count == 1 {
		return [][]byte{all}
	}
	frames := make([][]byte, 0, count)
	for i, offset := range f.offsets {
		end := int64(len(all))
		if i+1 < len(f.offsets) {
			end = f.offsets[i+1]
		}
		if offset < 0 || offset > end || end > int64(len(all)) {
			frames = append(frames, nil)
			continue
		}
		frames = append(frames, all[offset:end])
	}
	return frames
}

func (f *Fragments) String() string {
	return fmt.Sprintf("%s %s [%d fragments] %s", f.tag, f.vr, len(f.fragments), KeywordOf(f.tag))
}

// Elements is a data set: a list of element sets strictly ordered by tag,
// together with the character sets and timezone offset the data set itself
// declares. All mutating methods return a new Elements, leaving the receiver
// untouched.
type Elements struct {
	data          []ElementSet
	characterSets CharacterSets
	zoneOffset    *time.Location
}

// EmptyElements returns a data set with no elements, the default character
// repertoire and the UTC zone
func EmptyElements() Elements {
	return Elements{}
}

// NewElements builds a data set from element sets in any order
func NewElements(elements ...ElementSet) Elements {
	e := EmptyElements()
	for _, elem := range elements {
		e = e.Set(elem)
	}
	return e
}

// CharacterSets returns the active character sets of the data set
func (e Elements) CharacterSets() CharacterSets {
	return e.characterSets
}

// ZoneOffset returns the timezone the data set declares, or UTC
func (e Elements) ZoneOffset() *time.Location {
	if e.zoneOffset == nil {
		return time.UTC
	}
	return e.zoneOffset
}

// Size returns the number of elements at the top level
func (e Elements) Size() int {
	return len(e.data)
}

// IsEmpty is true when the data set has no elements
func (e Elements) IsEmpty() bool {
	return len(e.data) == 0
}

// Data returns the elements in tag order. The returned slice must not be
// modified.
func (e Elements) Data() []ElementSet {
	return e.data
}

// Head returns the first element in tag order
func (e Elements) Head() (ElementSet, bool) {
	if len(e.data) == 0 {
		return nil, false
	}
	return e.data[0], true
}

// Get returns the element with the given tag
func (e Elements) Get(tag Tag) (ElementSet, bool) {
	i := sort.Search(len(e.data), func(i int) bool { return e.data[i].Tag() >= tag })
	if i < len(e.data) && e.data[i].Tag() == tag {
		return e.data[i], true
	}
	return nil, false
}

// Contains is true when an element with the tag exists
func (e Elements) Contains(tag Tag) bool {
	_, ok := e.Get(tag)
	return ok
}

// ContainsPath is true when the path resolves to an element
func (e Elements) ContainsPath(path *TagPath) bool {
	_, ok := e.GetAtPath(path)
	return ok
}

// Set inserts the element at its tag position, replacing any element with
// the same tag. Setting SpecificCharacterSet and TimezoneOffsetFromUTC also
// updates the data set's character sets and zone offset.
func (e Elements) Set(elem ElementSet) Elements {
	i := sort.Search(len(e.data), func(i int) bool { return e.data[i].Tag() >= elem.Tag() })
	data := make([]ElementSet, 0, len(e.data)+1)
	data = append(data, e.data[:i]...)
	data = append(data, elem)
	if i < len(e.data) && e.data[i].Tag() == elem.Tag() {
		data = append(data, e.data[i+1:]...)
	} else {
		data = append(data, e.data[i:]...)
	}
	out := Elements{data, e.characterSets, e.zoneOffset}
	if ve, ok := elem.(*ValueElement); ok {
		switch elem.Tag() {
		case SpecificCharacterSetTag:
			out.characterSets = NewCharacterSets(ve.value.ToStrings(CSVR, ve.bigEndian, DefaultCharacterSet)...)
		case TimezoneOffsetFromUTCTag:
			if zone, ok := parseZoneOffset(ve.value.ToSingleString(SHVR, ve.bigEndian, DefaultCharacterSet)); ok {
				out.zoneOffset = zone
			}
		}
	}
	return out
}

// Remove returns a data set without the element with the given tag
func (e Elements) Remove(tag Tag) Elements {
	i := sort.Search(len(e.data), func(i int) bool { return e.data[i].Tag() >= tag })
	if i >= len(e.data) || e.data[i].Tag() != tag {
		return e
	}
	data := make([]ElementSet, 0, len(e.data)-1)
	data = append(data, e.data[:i]...)
	data = append(data, e.data[i+1:]...)
	return Elements{data, e.characterSets, e.zoneOffset}
}

// Filter returns a data set with the elements the predicate accepts
func (e Elements) Filter(pred func(ElementSet) bool) Elements {
	data := make([]ElementSet, 0, len(e.data))
	for _, elem := range e.data {
		if pred(elem) {
			data = append(data, elem)
		}
	}
	return Elements{data, e.characterSets, e.zoneOffset}
}

// Sorted returns a data set with elements sorted by tag. Data sets built
// through Set are always sorted; this restores the invariant for data sets
// assembled by other means.
func (e Elements) Sorted() Elements {
	data := append([]ElementSet{}, e.data...)
	sort.SliceStable(data, func(i, j int) bool { return data[i].Tag() < data[j].Tag() })
	return Elements{data, e.characterSets, e.zoneOffset}
}

func parseZoneOffset(s string) (*time.Location, bool) {
	if len(s) < 5 {
		return nil, false
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, false
	}
	hours, err1 := strconv.Atoi(s[1:3])
	minutes, err2 := strconv.Atoi(s[3:5])
	if err1 != nil || err2 != nil {
		return nil, false
	}
	return time.FixedZone(s[:5], sign*(hours*3600+minutes*60)), true
}

func (e Elements) String() string {
	lines := make([]string, 0, len(e.data))
	for _, elem := range e.data {
		lines = append(lines, fmt.Sprint(elem))
	}
	return strings.Join(lines, "\n")
}
