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
	"io"
)

// CollectPredicate selects stream positions by their tag path
type CollectPredicate func(*TagPath) bool

// Collect buffers the incoming parts while assembling the elements whose
// tag paths satisfy the collect predicate. When stop fires on a top level
// element, or the stream ends, the flow emits an ElementsPart holding the
// assembled elements, then the buffered parts in arrival order, and passes
// everything after through untouched.
//
// maxBufferSize caps the buffered bytes; exceeding it fails the stream with
// ErrBufferOverflow. Zero means unbounded. SpecificCharacterSet is always
// collected so multi byte values decode correctly during assembly.
func Collect(source PartIterator, collect, stop CollectPredicate, label string, maxBufferSize int) PartIterator {
	return &collectIterator{
		source:        source,
		collect:       collect,
		stop:          stop,
		label:         label,
		maxBufferSize: maxBufferSize,
		flow:          &elementFlow{},
		sink:          newElementsSink(),
	}
}

// CollectFromTagPaths is the whitelist form of Collect: elements on or
// below the whitelisted paths are assembled, and the flow stops at the
// first top level tag beyond the largest whitelisted root tag.
func CollectFromTagPaths(source PartIterator, whitelist TagTree, label string, maxBufferSize int) PartIterator {
	maxHead, any := whitelist.MaxHeadTag()
	collect := func(path *TagPath) bool {
		return whitelist.Matches(path)
	}
	stop := func(path *TagPath) bool {
		return !any || (path.IsRoot() && path.Tag() > maxHead)
	}
	return Collect(source, collect, stop, label, maxBufferSize)
}

// CollectFromTags is the tag whitelist form of CollectFromTagPaths
func CollectFromTags(source PartIterator, tags []Tag, label string, maxBufferSize int) PartIterator {
	return CollectFromTagPaths(source, TagTreeFromTags(tags...), label, maxBufferSize)
}

type collectIterator struct {
	source        PartIterator
	collect, stop CollectPredicate
	label         string
	maxBufferSize int

	flow *elementFlow
	sink *elementsSink

	buffered     []Part
	bufferedSize int
	queue        []Part
	released     bool
	err          error
}

func (it *collectIterator) Next() (Part, error) {
	for {
		if len(it.queue) > 0 {
			part := it.queue[0]
			it.queue = it.queue[1:]
			return part, nil
		}
		if it.err != nil {
			return nil, it.err
		}
		if it.released {
			return it.source.Next()
		}

		part, err := it.source.Next()
		if err == io.EOF {
			it.release()
			continue
		}
		if err != nil {
			it.err = err
			return nil, err
		}

		events, path := it.flow.push(part)

		if isElementStart(part) && path.IsRoot() && it.stop(path) {
			it.release()
			it.queue = append(it.queue, part)
			continue
		}

		it.buffered = append(it.buffered, part)
		it.bufferedSize += len(part.Bytes())
		if it.maxBufferSize > 0 && it.bufferedSize > it.maxBufferSize {
			it.err = fmt.Errorf("collect buffer exceeds %d bytes: %w", it.maxBufferSize, ErrBufferOverflow)
			return nil, it.err
		}
		it.feed(events)
	}
}

// isElementStart is true for parts that begin a new element, the positions
// where the stop condition is evaluated
func isElementStart(part Part) bool {
	switch part.(type) {
	case *HeaderPart, *SequencePart, *FragmentsPart:
		return true
	default:
		return false
	}
}

func (it *collectIterator) feed(events []locatedEvent) {
	for _, ev := range events {
		if it.collect(ev.path) || isSpecificCharacterSet(ev.path) {
			it.sink.push(ev.event)
		}
	}
}

func isSpecificCharacterSet(path *TagPath) bool {
	return path.IsRoot() && path.Tag() == SpecificCharacterSetTag
}

// release emits the assembled elements followed by the buffered parts and
// switches to pass-through
func (it *collectIterator) release() {
	it.feed(it.flow.flush())
	it.queue = append(it.queue, &ElementsPart{Label: it.label, Elements: it.sink.elements()})
	it.queue = append(it.queue, it.buffered...)
	it.buffered = nil
	it.bufferedSize = 0
	it.released = true
}
