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
	"time"
)

// Typed getters. Single-value getters return the first value of
// multi-valued elements.

// GetValueElement returns the value element with the given tag
func (e Elements) GetValueElement(tag Tag) (*ValueElement, bool) {
	elem, ok := e.Get(tag)
	if !ok {
		return nil, false
	}
	ve, ok := elem.(*ValueElement)
	return ve, ok
}

// GetValue returns the raw value of the element with the given tag
func (e Elements) GetValue(tag Tag) (Value, bool) {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return Value{}, false
	}
	return ve.value, true
}

// GetBytes returns the raw value bytes of the element with the given tag
func (e Elements) GetBytes(tag Tag) ([]byte, bool) {
	v, ok := e.GetValue(tag)
	if !ok {
		return nil, false
	}
	return v.Bytes, true
}

// GetStrings returns the string values of the element with the given tag
func (e Elements) GetStrings(tag Tag) []string {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToStrings(ve.vr, ve.bigEndian, e.characterSets)
}

// GetString returns the first string value of the element with the given tag
func (e Elements) GetString(tag Tag) (string, bool) {
	strs := e.GetStrings(tag)
	if len(strs) == 0 {
		return "", false
	}
	return strs[0], true
}

// GetSingleString returns the complete, unsplit string value
func (e Elements) GetSingleString(tag Tag) (string, bool) {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return "", false
	}
	return ve.value.ToSingleString(ve.vr, ve.bigEndian, e.characterSets), true
}

// GetShorts returns the 16 bit integer values of the element
func (e Elements) GetShorts(tag Tag) []int16 {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToShorts(ve.vr, ve.bigEndian)
}

// GetShort returns the first 16 bit integer value of the element
func (e Elements) GetShort(tag Tag) (int16, bool) {
	shorts := e.GetShorts(tag)
	if len(shorts) == 0 {
		return 0, false
	}
	return shorts[0], true
}

// GetInts returns the 32 bit integer values of the element
func (e Elements) GetInts(tag Tag) []int32 {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToInts(ve.vr, ve.bigEndian)
}

// GetInt returns the first 32 bit integer value of the element
func (e Elements) GetInt(tag Tag) (int32, bool) {
	ints := e.GetInts(tag)
	if len(ints) == 0 {
		return 0, false
	}
	return ints[0], true
}

// GetLongs returns the 64 bit integer values of the element
func (e Elements) GetLongs(tag Tag) []int64 {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToLongs(ve.vr, ve.bigEndian)
}

// GetLong returns the first 64 bit integer value of the element
func (e Elements) GetLong(tag Tag) (int64, bool) {
	longs := e.GetLongs(tag)
	if len(longs) == 0 {
		return 0, false
	}
	return longs[0], true
}

// GetFloats returns the 32 bit floating point values of the element
func (e Elements) GetFloats(tag Tag) []float32 {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToFloats(ve.vr, ve.bigEndian)
}

// GetFloat returns the first 32 bit floating point value of the element
func (e Elements) GetFloat(tag Tag) (float32, bool) {
	floats := e.GetFloats(tag)
	if len(floats) == 0 {
		return 0, false
	}
	return floats[0], true
}

// GetDoubles returns the 64 bit floating point values of the element
func (e Elements) GetDoubles(tag Tag) []float64 {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToDoubles(ve.vr, ve.bigEndian)
}

// GetDouble returns the first 64 bit floating point value of the element
func (e Elements) GetDouble(tag Tag) (float64, bool) {
	doubles := e.GetDoubles(tag)
	if len(doubles) == 0 {
		return 0, false
	}
	return doubles[0], true
}

// GetDates returns the date values of the element
func (e Elements) GetDates(tag Tag) []time.Time {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToDates(ve.vr)
}

// GetDate returns the first date value of the element
func (e Elements) GetDate(tag Tag) (time.Time, bool) {
	dates := e.GetDates(tag)
	if len(dates) == 0 {
		return time.Time{}, false
	}
	return dates[0], true
}

// GetTimes returns the time of day values of the element
func (e Elements) GetTimes(tag Tag) []time.Time {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToTimes(ve.vr)
}

// GetTime returns the first time of day value of the element
func (e Elements) GetTime(tag Tag) (time.Time, bool) {
	times := e.GetTimes(tag)
	if len(times) == 0 {
		return time.Time{}, false
	}
	return times[0], true
}

// GetDateTimes returns the timestamp values of the element, using the data
// set's zone offset for values without an explicit offset
func (e Elements) GetDateTimes(tag Tag) []time.Time {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToDateTimes(ve.vr, e.ZoneOffset())
}

// GetDateTime returns the first timestamp value of the element
func (e Elements) GetDateTime(tag Tag) (time.Time, bool) {
	times := e.GetDateTimes(tag)
	if len(times) == 0 {
		return time.Time{}, false
	}
	return times[0], true
}

// GetPersonNames returns the person name values of the element
func (e Elements) GetPersonNames(tag Tag) []PersonName {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return nil
	}
	return ve.value.ToPersonNames(ve.vr, e.characterSets)
}

// GetPersonName returns the first person name value of the element
func (e Elements) GetPersonName(tag Tag) (PersonName, bool) {
	names := e.GetPersonNames(tag)
	if len(names) == 0 {
		return PersonName{}, false
	}
	return names[0], true
}

// GetURI returns the URI value of the element
func (e Elements) GetURI(tag Tag) (string, bool) {
	ve, ok := e.GetValueElement(tag)
	if !ok {
		return "", false
	}
	return ve.value.ToURI(ve.vr), true
}

// GetSequence returns the sequence with the given tag
func (e Elements) GetSequence(tag Tag) (*Sequence, bool) {
	elem, ok := e.Get(tag)
	if !ok {
		return nil, false
	}
	s, ok := elem.(*Sequence)
	return s, ok
}

// GetItem returns the 1-based item of the sequence with the given tag
func (e Elements) GetItem(tag Tag, index int) (Item, bool) {
	s, ok := e.GetSequence(tag)
	if !ok {
		return Item{}, false
	}
	return s.Item(index)
}

// GetNested returns the data set of the 1-based item of the sequence with
// the given tag
func (e Elements) GetNested(tag Tag, index int) (Elements, bool) {
	item, ok := e.GetItem(tag, index)
	if !ok {
		return Elements{}, false
	}
	return item.elements, true
}

// GetFragments returns the encapsulated pixel data element with the given tag
func (e Elements) GetFragments(tag Tag) (*Fragments, bool) {
	elem, ok := e.Get(tag)
	if !ok {
		return nil, false
	}
	f, ok := elem.(*Fragments)
	return f, ok
}

// GetByKeyword returns the element with the given dictionary keyword
func (e Elements) GetByKeyword(keyword string) (ElementSet, error) {
	tag, err := TagOf(keyword)
	if err != nil {
		return nil, err
	}
	elem, ok := e.Get(tag)
	if !ok {
		return nil, fmt.Errorf("no element %s in data set", keyword)
	}
	return elem, nil
}

// Typed setters. The VR is looked up in the dictionary; elements are stored
// little endian with explicit VR.

// SetElement is an alias of Set for symmetry with the path based mutators
func (e Elements) SetElement(elem ElementSet) Elements {
	return e.Set(elem)
}

func (e Elements) setValue(tag Tag, value Value) Elements {
	vr := VROf(tag)
	return e.Set(NewValueElement(tag, vr, value, false, true))
}

// SetString sets a single string value on the element with the given tag
func (e Elements) SetString(tag Tag, s string) Elements {
	return e.setValue(tag, ValueFromString(VROf(tag), s))
}

// SetStrings sets a multi-valued string on the element with the given tag
func (e Elements) SetStrings(tag Tag, strs []string) Elements {
	return e.setValue(tag, ValueFromStrings(VROf(tag), strs))
}

// SetShort sets a 16 bit integer value
func (e Elements) SetShort(tag Tag, v int16) Elements {
	return e.SetShorts(tag, []int16{v})
}

// SetShorts sets 16 bit integer values
func (e Elements) SetShorts(tag Tag, v []int16) Elements {
	return e.setValue(tag, ValueFromShorts(VROf(tag), v, false))
}

// SetInt sets a 32 bit integer value
func (e Elements) SetInt(tag Tag, v int32) Elements {
	return e.SetInts(tag, []int32{v})
}

// SetInts sets 32 bit integer values
func (e Elements) SetInts(tag Tag, v []int32) Elements {
	return e.setValue(tag, ValueFromInts(VROf(tag), v, false))
}

// SetLong sets a 64 bit integer value
func (e Elements) SetLong(tag Tag, v int64) Elements {
	return e.SetLongs(tag, []int64{v})
}

// SetLongs sets 64 bit integer values
func (e Elements) SetLongs(tag Tag, v []int64) Elements {
	return e.setValue(tag, ValueFromLongs(VROf(tag), v, false))
}

// SetFloat sets a 32 bit floating point value
func (e Elements) SetFloat(tag Tag, v float32) Elements {
	return e.SetFloats(tag, []float32{v})
}

// SetFloats sets 32 bit floating point values
func (e Elements) SetFloats(tag Tag, v []float32) Elements {
	return e.setValue(tag, ValueFromFloats(VROf(tag), v, false))
}

// SetDouble sets a 64 bit floating point value
func (e Elements) SetDouble(tag Tag, v float64) Elements {
	return e.SetDoubles(tag, []float64{v})
}

// SetDoubles sets 64 bit floating point values
func (e Elements) SetDoubles(tag Tag, v []float64) Elements {
	return e.setValue(tag, ValueFromDoubles(VROf(tag), v, false))
}

// SetDate sets a date value
func (e Elements) SetDate(tag Tag, d time.Time) Elements {
	return e.setValue(tag, ValueFromDate(d))
}

// SetTime sets a time of day value
func (e Elements) SetTime(tag Tag, t time.Time) Elements {
	return e.setValue(tag, ValueFromTime(t))
}

// SetDateTime sets a timestamp value
func (e Elements) SetDateTime(tag Tag, t time.Time) Elements {
	return e.setValue(tag, ValueFromDateTime(t))
}

// SetPersonName sets a person name value
func (e Elements) SetPersonName(tag Tag, name PersonName) Elements {
	return e.setValue(tag, ValueFromPersonName(name))
}

// SetURI sets a URI value
func (e Elements) SetURI(tag Tag, uri string) Elements {
	return e.setValue(tag, ValueFromString(VROf(tag), uri))
}

// SetBytes sets raw value bytes
func (e Elements) SetBytes(tag Tag, b []byte) Elements {
	return e.setValue(tag, NewValue(b).EnsurePadding(VROf(tag)))
}

// Path based access. An item path is a chain of item nodes, each naming a
// sequence tag and a 1-based item index; the implied navigation always
// alternates sequence, then item. Paths of any other shape fail with
// ErrInvalidPath.

func itemPathNodes(path *TagPath) ([]*TagPath, error) {
	nodes := path.nodes()
	for _, n := range nodes {
		if n.kind != tagPathItem {
			return nil, fmt.Errorf("expected item path, got %v: %w", path, ErrInvalidPath)
		}
	}
	return nodes, nil
}

// GetNestedAtPath returns the data set addressed by a chain of item nodes
func (e Elements) GetNestedAtPath(itemPath *TagPath) (Elements, bool) {
	nodes, err := itemPathNodes(itemPath)
	if err != nil {
		return Elements{}, false
	}
	nested := e
	for _, n := range nodes {
		var ok bool
		nested, ok = nested.GetNested(n.tag, n.item)
		if !ok {
			return Elements{}, false
		}
	}
	return nested, true
}

// GetAtPath returns the element set addressed by a path ending in a tag or
// sequence node, with any leading item nodes resolved as nesting
func (e Elements) GetAtPath(path *TagPath) (ElementSet, bool) {
	if path.IsEmpty() {
		return nil, false
	}
	nested, ok := e.GetNestedAtPath(path.Previous())
	if !ok {
		return nil, false
	}
	return nested.Get(path.Tag())
}

// GetStringAtPath returns the first string value of the element at the path
func (e Elements) GetStringAtPath(path *TagPath) (string, bool) {
	if path.IsEmpty() {
		return "", false
	}
	nested, ok := e.GetNestedAtPath(path.Previous())
	if !ok {
		return "", false
	}
	return nested.GetString(path.Tag())
}

// updateNestedAtPath rewrites the data set addressed by an item path through
// the update function, recomputing explicit item and sequence lengths along
// the way
func (e Elements) updateNestedAtPath(nodes []*TagPath, update func(Elements) (Elements, error)) (Elements, error) {
	if len(nodes) == 0 {
		return update(e)
	}
	head := nodes[0]
	s, ok := e.GetSequence(head.tag)
	if !ok {
		return Elements{}, fmt.Errorf("no sequence %s in data set: %w", head.tag, ErrInvalidPath)
	}
	item, ok := s.Item(head.item)
	if !ok {
		return Elements{}, fmt.Errorf("no item %d in sequence %s: %w", head.item, head.tag, ErrInvalidPath)
	}
	nested, err := item.elements.updateNestedAtPath(nodes[1:], update)
	if err != nil {
		return Elements{}, err
	}
	items := append([]Item{}, s.items...)
	items[head.item-1] = NewItem(nested, item.Indeterminate(), item.bigEndian)
	return e.Set(rebuiltSequence(s, items)), nil
}

func rebuiltSequence(s *Sequence, items []Item) *Sequence {
	length := uint32(UndefinedLength)
	if !s.Indeterminate() {
		length = 0
		for _, item := range items {
			length += uint32(len(item.toBytes(s.explicitVR)))
		}
	}
	return &Sequence{s.tag, length, items, s.bigEndian, s.explicitVR}
}

// SetAtPath sets the element inside the data set addressed by a chain of
// item nodes. An empty path sets at the top level.
func (e Elements) SetAtPath(itemPath *TagPath, elem ElementSet) (Elements, error) {
	nodes, err := itemPathNodes(itemPath)
	if err != nil {
		return Elements{}, err
	}
	return e.updateNestedAtPath(nodes, func(nested Elements) (Elements, error) {
		return nested.Set(elem), nil
	})
}

// SetNestedAtPath replaces the data set addressed by a chain of item nodes
func (e Elements) SetNestedAtPath(itemPath *TagPath, nested Elements) (Elements, error) {
	nodes, err := itemPathNodes(itemPath)
	if err != nil {
		return Elements{}, err
	}
	if len(nodes) == 0 {
		return Elements{}, fmt.Errorf("empty item path: %w", ErrInvalidPath)
	}
	return e.updateNestedAtPath(nodes[:len(nodes)-1], func(parent Elements) (Elements, error) {
		last := nodes[len(nodes)-1]
		s, ok := parent.GetSequence(last.tag)
		if !ok {
			return Elements{}, fmt.Errorf("no sequence %s in data set: %w", last.tag, ErrInvalidPath)
		}
		item, ok := s.Item(last.item)
		if !ok {
			return Elements{}, fmt.Errorf("no item %d in sequence %s: %w", last.item, last.tag, ErrInvalidPath)
		}
		items := append([]Item{}, s.items...)
		items[last.item-1] = NewItem(nested, item.Indeterminate(), item.bigEndian)
		return parent.Set(rebuiltSequence(s, items)), nil
	})
}

// AddItemAtPath appends an item holding the given data set to the sequence
// addressed by the path. The path's last node names the sequence; any
// leading nodes must be item nodes.
func (e Elements) AddItemAtPath(sequencePath *TagPath, nested Elements) (Elements, error) {
	if sequencePath.IsEmpty() {
		return Elements{}, fmt.Errorf("empty sequence path: %w", ErrInvalidPath)
	}
	if sequencePath.kind == tagPathItem {
		return Elements{}, fmt.Errorf("expected sequence path, got item path %v: %w", sequencePath, ErrInvalidPath)
	}
	nodes, err := itemPathNodes(sequencePath.Previous())
	if err != nil {
		return Elements{}, err
	}
	return e.updateNestedAtPath(nodes, func(parent Elements) (Elements, error) {
		s, ok := parent.GetSequence(sequencePath.Tag())
		if !ok {
			return Elements{}, fmt.Errorf("no sequence %s in data set: %w", sequencePath.Tag(), ErrInvalidPath)
		}
		return parent.Set(s.AddItem(nested)), nil
	})
}

// RemoveAtPath removes the element, item or sequence the path addresses
func (e Elements) RemoveAtPath(path *TagPath) (Elements, error) {
	if path.IsEmpty() {
		return e, nil
	}
	nodes, err := itemPathNodes(path.Previous())
	if err != nil {
		return Elements{}, err
	}
	return e.updateNestedAtPath(nodes, func(parent Elements) (Elements, error) {
		switch path.kind {
		case tagPathTag, tagPathSequence:
			return parent.Remove(path.Tag()), nil
		default:
			s, ok := parent.GetSequence(path.Tag())
			if !ok {
				return Elements{}, fmt.Errorf("no sequence %s in data set: %w", path.Tag(), ErrInvalidPath)
			}
			if _, ok := s.Item(path.item); !ok {
				return Elements{}, fmt.Errorf("no item %d in sequence %s: %w", path.item, path.Tag(), ErrInvalidPath)
			}
			items := append([]Item{}, s.items[:path.item-1]...)
			items = append(items, s.items[path.item:]...)
			return parent.Set(rebuiltSequence(s, items)), nil
		}
	})
}
