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

// The element flow collapses the part stream one step: value chunks merge
// into complete values, and the ends of explicit length sequences and items,
// which have no delimitation parts on the wire, are synthesized from byte
// positions. Its events are the input of the element sink and the collect
// flow's accumulator.

type elementEvent interface{}

// valueElementEvent is a complete data element with its value
type valueElementEvent struct {
	tag        Tag
	vr         *VR
	value      Value
	bigEndian  bool
	explicitVR bool
}

// sequenceStartEvent opens a sequence, length is UndefinedLength when
// indeterminate
type sequenceStartEvent struct {
	tag        Tag
	length     uint32
	bigEndian  bool
	explicitVR bool
}

// itemStartEvent opens a sequence item
type itemStartEvent struct {
	index     int
	length    uint32
	bigEndian bool
}

// itemEndEvent closes an item, by delimitation or by reaching the end of an
// explicit length item
type itemEndEvent struct{}

// sequenceEndEvent closes a sequence or the fragments of encapsulated pixel
// data
type sequenceEndEvent struct{}

// fragmentsStartEvent opens encapsulated pixel data
type fragmentsStartEvent struct {
	tag        Tag
	vr         *VR
	bigEndian  bool
	explicitVR bool
}

// fragmentEvent is one complete fragment item
type fragmentEvent struct {
	value     Value
	bigEndian bool
}

// locatedEvent pairs an event with the tag path where it occurred
type locatedEvent struct {
	event elementEvent
	path  *TagPath
}

// flowFrame is one open sequence while traversing the part stream
type flowFrame struct {
	tag        Tag
	parentItem *TagPath
	itemIndex  int

	// seqEnd and itemEnd are stream positions where the explicit length
	// sequence or item ends, -1 while indeterminate or closed
	seqEnd   int64
	itemEnd  int64
	itemOpen bool
}

func (f *flowFrame) seqPath() *TagPath {
	if f.parentItem == nil {
		return TagPathFromSequence(f.tag)
	}
	return f.parentItem.ThenSequence(f.tag)
}

func (f *flowFrame) itemPath() *TagPath {
	if f.parentItem == nil {
		return TagPathFromItem(f.tag, f.itemIndex)
	}
	return f.parentItem.ThenItem(f.tag, f.itemIndex)
}

// elementFlow converts parts pushed in stream order into element events
type elementFlow struct {
	pos    int64
	frames []*flowFrame

	// pending value element
	header     *HeaderPart
	headerPath *TagPath
	value      []byte

	// pending fragments
	inFragments  bool
	fragPath     *TagPath
	fragPending  bool
	fragBigEnd   bool
	fragmentData []byte
}

// contextItem returns the path of the innermost open item, or nil at the
// top level
func (f *elementFlow) contextItem() *TagPath {
	for i := len(f.frames) - 1; i >= 0; i-- {
		if f.frames[i].itemOpen {
			return f.frames[i].itemPath()
		}
	}
	return nil
}

func (f *elementFlow) pathOf(tag Tag) *TagPath {
	if item := f.contextItem(); item != nil {
		return item.ThenTag(tag)
	}
	return TagPathFromTag(tag)
}

// closeExpired synthesizes end events for explicit length items and
// sequences whose byte range has been consumed
func (f *elementFlow) closeExpired() []locatedEvent {
	var events []locatedEvent
	for len(f.frames) > 0 {
		top := f.frames[len(f.frames)-1]
		if top.itemOpen && top.itemEnd >= 0 && f.pos >= top.itemEnd {
			events = append(events, locatedEvent{itemEndEvent{}, top.itemPath()})
			top.itemOpen = false
			continue
		}
		if !top.itemOpen && top.seqEnd >= 0 && f.pos >= top.seqEnd {
			events = append(events, locatedEvent{sequenceEndEvent{}, top.seqPath()})
			f.frames = f.frames[:len(f.frames)-1]
			continue
		}
		break
	}
	return events
}

// push feeds the next part of the stream. It returns the events the part
// completes and the tag path where the part sits in the stream.
func (f *elementFlow) push(part Part) ([]locatedEvent, *TagPath) {
	start := f.pos
	f.pos += int64(len(part.Bytes()))

	if chunk, ok := part.(*ValueChunk); ok {
		return f.pushChunk(chunk)
	}

	events := f.closeExpired()
	var partPath *TagPath
	switch p := part.(type) {
	case *HeaderPart:
		path := f.pathOf(p.TagValue)
		partPath = path
		if p.ValueLength == 0 {
			events = append(events, locatedEvent{
				valueElementEvent{p.TagValue, p.VR, EmptyValue(), p.BigEndian, p.ExplicitVR}, path})
		} else {
			f.header, f.headerPath, f.value = p, path, nil
		}
	case *SequencePart:
		frame := &flowFrame{tag: p.TagValue, parentItem: f.contextItem(), seqEnd: -1, itemEnd: -1}
		if p.SequenceLength != UndefinedLength {
			frame.seqEnd = start + int64(len(p.ByteData)) + int64(p.SequenceLength)
		}
		path := frame.seqPath()
		partPath = path
		f.frames = append(f.frames, frame)
		events = append(events, locatedEvent{
			sequenceStartEvent{p.TagValue, p.SequenceLength, p.BigEndian, p.ExplicitVR}, path})
	case *ItemPart:
		if f.inFragments {
			partPath = f.fragPath
			if p.ItemLength == 0 {
				events = append(events, locatedEvent{fragmentEvent{EmptyValue(), p.BigEndian}, f.fragPath})
			} else {
				f.fragPending, f.fragBigEnd, f.fragmentData = true, p.BigEndian, nil
			}
			break
		}
		if len(f.frames) == 0 {
			log.Warn("item outside sequence or fragments, ignoring")
			break
		}
		top := f.frames[len(f.frames)-1]
		top.itemIndex++
		top.itemOpen = true
		top.itemEnd = -1
		if p.ItemLength != UndefinedLength {
			top.itemEnd = start + int64(len(p.ByteData)) + int64(p.ItemLength)
		}
		partPath = top.itemPath()
		events = append(events, locatedEvent{
			itemStartEvent{top.itemIndex, p.ItemLength, p.BigEndian}, top.itemPath()})
	case *ItemDelimitationPart:
		if len(f.frames) == 0 {
			log.Warn("item delimitation outside sequence, ignoring")
			break
		}
		top := f.frames[len(f.frames)-1]
		partPath = top.itemPath()
		if top.itemOpen {
			events = append(events, locatedEvent{itemEndEvent{}, top.itemPath()})
			top.itemOpen = false
		}
	case *SequenceDelimitationPart:
		if f.inFragments {
			partPath = f.fragPath
			events = append(events, locatedEvent{sequenceEndEvent{}, f.fragPath})
			f.inFragments = false
			break
		}
		if len(f.frames) == 0 {
			log.Warn("sequence delimitation outside sequence, ignoring")
			break
		}
		top := f.frames[len(f.frames)-1]
		partPath = top.seqPath()
		if top.itemOpen {
			events = append(events, locatedEvent{itemEndEvent{}, top.itemPath()})
			top.itemOpen = false
		}
		events = append(events, locatedEvent{sequenceEndEvent{}, top.seqPath()})
		f.frames = f.frames[:len(f.frames)-1]
	case *FragmentsPart:
		f.inFragments = true
		f.fragPath = f.pathOf(p.TagValue)
		partPath = f.fragPath
		events = append(events, locatedEvent{
			fragmentsStartEvent{p.TagValue, p.VR, p.BigEndian, p.ExplicitVR}, f.fragPath})
	}
	return events, partPath
}

func (f *elementFlow) pushChunk(chunk *ValueChunk) ([]locatedEvent, *TagPath) {
	switch {
	case f.fragPending:
		f.fragmentData = append(f.fragmentData, chunk.ByteData...)
		if chunk.Last {
			f.fragPending = false
			return []locatedEvent{{fragmentEvent{NewValue(f.fragmentData), f.fragBigEnd}, f.fragPath}}, f.fragPath
		}
		return nil, f.fragPath
	case f.header != nil:
		f.value = append(f.value, chunk.ByteData...)
		path := f.headerPath
		if chunk.Last {
			h, value := f.header, f.value
			f.header, f.headerPath, f.value = nil, nil, nil
			return []locatedEvent{{
				valueElementEvent{h.TagValue, h.VR, NewValue(value), h.BigEndian, h.ExplicitVR}, path}}, path
		}
		return nil, path
	default:
		log.Warn("value chunk without preceding header, ignoring")
		return nil, nil
	}
}

// flush completes the flow at end of input, closing anything left open
func (f *elementFlow) flush() []locatedEvent {
	var events []locatedEvent
	if f.header != nil {
		// truncated value: keep what arrived
		events = append(events, locatedEvent{
			valueElementEvent{f.header.TagValue, f.header.VR, NewValue(f.value), f.header.BigEndian, f.header.ExplicitVR},
			f.headerPath})
		f.header = nil
	}
	for i := len(f.frames) - 1; i >= 0; i-- {
		top := f.frames[i]
		if top.itemOpen {
			events = append(events, locatedEvent{itemEndEvent{}, top.itemPath()})
		}
		events = append(events, locatedEvent{sequenceEndEvent{}, top.seqPath()})
	}
	f.frames = nil
	if f.inFragments {
		events = append(events, locatedEvent{sequenceEndEvent{}, f.fragPath})
		f.inFragments = false
	}
	return events
}
