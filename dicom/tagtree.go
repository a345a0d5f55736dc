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

// TagTree is a set of tag paths used to express selections over the tag
// hierarchy, for instance the whitelist of the collect flow. A path in the
// tree selects itself and the whole subtree below it.
type TagTree struct {
	paths []*TagPath
}

// NewTagTree builds a tree from the given paths
func NewTagTree(paths ...*TagPath) TagTree {
	kept := make([]*TagPath, 0, len(paths))
	for _, p := range paths {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return TagTree{kept}
}

// TagTreeFromTags builds a tree of root-level tag paths
func TagTreeFromTags(tags ...Tag) TagTree {
	paths := make([]*TagPath, len(tags))
	for i, t := range tags {
		paths[i] = TagPathFromTag(t)
	}
	return TagTree{paths}
}

// IsEmpty is true for a tree with no paths
func (t TagTree) IsEmpty() bool {
	return len(t.paths) == 0
}

// Matches is true when any path in the tree selects the given stream path:
// either the tree path is a trunk of it (the stream is inside a selected
// subtree) or the stream path is a trunk of the tree path (the stream is on
// the way towards a selected node).
func (t TagTree) Matches(path *TagPath) bool {
	for _, p := range t.paths {
		if path.HasTrunk(p) || path.IsTrunkOf(p) {
			return true
		}
	}
	return false
}

// MaxHeadTag returns the largest root-level tag among the tree's paths and
// whether the tree has any paths at all
func (t TagTree) MaxHeadTag() (Tag, bool) {
	if len(t.paths) == 0 {
		return 0, false
	}
	max := t.paths[0].Head().Tag()
	for _, p := range t.paths[1:] {
		if head := p.Head().Tag(); head > max {
			max = head
		}
	}
	return max, true
}
