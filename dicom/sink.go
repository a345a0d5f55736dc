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
	"io"
	"time"
)

// elementsBuilder accumulates element sets in stream order and tracks the
// character set and timezone side effects of the elements it sees
type elementsBuilder struct {
	data          []ElementSet
	characterSets CharacterSets
	zoneOffset    *time.Location
}

func newElementsBuilder() *elementsBuilder {
	return &elementsBuilder{}
}

// newNestedBuilder creates a builder for an item's data set, inheriting the
// character sets and zone offset of the enclosing data set
func (b *elementsBuilder) newNestedBuilder() *elementsBuilder {
	return &elementsBuilder{characterSets: b.characterSets, zoneOffset: b.zoneOffset}
}

func (b *elementsBuilder) add(elem ElementSet) {
	b.data = append(b.data, elem)
	if ve, ok := elem.(*ValueElement); ok {
		switch elem.Tag() {
		case SpecificCharacterSetTag:
			b.characterSets = NewCharacterSets(ve.value.ToStrings(CSVR, ve.bigEndian, DefaultCharacterSet)...)
		case TimezoneOffsetFromUTCTag:
			if zone, ok := parseZoneOffset(ve.value.ToSingleString(SHVR, ve.bigEndian, DefaultCharacterSet)); ok {
				b.zoneOffset = zone
			}
		}
	}
}

func (b *elementsBuilder) build() Elements {
	return Elements{b.data, b.characterSets, b.zoneOffset}.Sorted()
}

// sinkFrame is one sequence being assembled
type sinkFrame struct {
	tag        Tag
	length     uint32
	items      []Item
	itemLength uint32
	bigEndian  bool
	explicitVR bool
}

// elementsSink assembles element events back into a data set, the reverse
// of parsing. It keeps one builder per nesting depth and one frame per open
// sequence.
type elementsSink struct {
	builders  []*elementsBuilder
	sequences []*sinkFrame
	fragments *Fragments
}

func newElementsSink() *elementsSink {
	return &elementsSink{builders: []*elementsBuilder{newElementsBuilder()}}
}

func (s *elementsSink) topBuilder() *elementsBuilder {
	return s.builders[len(s.builders)-1]
}

func (s *elementsSink) push(ev elementEvent) {
	switch e := ev.(type) {
	case valueElementEvent:
		s.topBuilder().add(NewValueElement(e.tag, e.vr, e.value, e.bigEndian, e.explicitVR))
	case fragmentsStartEvent:
		s.fragments = NewFragments(e.tag, e.vr, nil, nil, e.bigEndian, e.explicitVR)
	case fragmentEvent:
		if s.fragments != nil {
			s.fragments = s.fragments.AddFragment(NewFragment(e.value, e.bigEndian))
		}
	case sequenceStartEvent:
		s.sequences = append(s.sequences, &sinkFrame{
			tag: e.tag, length: e.length, bigEndian: e.bigEndian, explicitVR: e.explicitVR,
		})
	case itemStartEvent:
		if len(s.sequences) == 0 {
			log.Warn("item outside sequence, ignoring")
			return
		}
		top := s.sequences[len(s.sequences)-1]
		top.itemLength = e.length
		s.builders = append(s.builders, s.topBuilder().newNestedBuilder())
	case itemEndEvent:
		if len(s.sequences) == 0 || len(s.builders) < 2 {
			log.Warn("item delimitation outside item, ignoring")
			return
		}
		nested := s.topBuilder().build()
		s.builders = s.builders[:len(s.builders)-1]
		top := s.sequences[len(s.sequences)-1]
		top.items = append(top.items, NewItem(nested, top.itemLength == UndefinedLength, top.bigEndian))
	case sequenceEndEvent:
		if s.fragments != nil {
			s.topBuilder().add(s.fragments)
			s.fragments = nil
			return
		}
		if len(s.sequences) == 0 {
			log.Warn("sequence delimitation outside sequence, ignoring")
			return
		}
		top := s.sequences[len(s.sequences)-1]
		s.sequences = s.sequences[:len(s.sequences)-1]
		s.topBuilder().add(NewSequence(top.tag, top.length, top.items, top.bigEndian, top.explicitVR))
	}
}

func (s *elementsSink) elements() Elements {
	return s.builders[0].build()
}

// SinkElements aggregates a part stream into a data set
func SinkElements(it PartIterator) (Elements, error) {
	flow := &elementFlow{}
	sink := newElementsSink()
	for {
		part, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Elements{}, err
		}
		events, _ := flow.push(part)
		for _, ev := range events {
			sink.push(ev.event)
		}
	}
	for _, ev := range flow.flush() {
		sink.push(ev.event)
	}
	return sink.elements(), nil
}

// ParseElements parses a DICOM stream directly into a data set
func ParseElements(r io.Reader, opts ...ParseOption) (Elements, error) {
	return SinkElements(NewParser(r, opts...))
}
