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
	"strconv"
	"strings"
)

type pathKind int

const (
	// tagPathTag points at a data element
	tagPathTag pathKind = iota

	// tagPathSequence points at a sequence as a whole
	tagPathSequence

	// tagPathItem points at one item of a sequence
	tagPathItem
)

// TagPath is a pointer into the tag hierarchy of a data set: a chain of
// sequence tags and 1-based item indices ending in a tag, a sequence or an
// item. A nil *TagPath is the empty path. Paths are persistent: extending a
// path shares its prefix, and Previous is constant time.
type TagPath struct {
	prev *TagPath
	kind pathKind
	tag  Tag
	item int
}

// EmptyTagPath is the empty path, pointing at the root data set
var EmptyTagPath *TagPath

// TagPathFromTag creates a root path pointing at the element with the given tag
func TagPathFromTag(tag Tag) *TagPath {
	return &TagPath{nil, tagPathTag, tag, 0}
}

// TagPathFromSequence creates a root path pointing at the sequence with the
// given tag
func TagPathFromSequence(tag Tag) *TagPath {
	return &TagPath{nil, tagPathSequence, tag, 0}
}

// TagPathFromItem creates a root path pointing at item (1-based) of the
// sequence with the given tag
func TagPathFromItem(tag Tag, item int) *TagPath {
	return &TagPath{nil, tagPathItem, tag, item}
}

// ThenTag extends an item path with a pointer to a contained element
func (p *TagPath) ThenTag(tag Tag) *TagPath {
	return &TagPath{p, tagPathTag, tag, 0}
}

// ThenSequence extends an item path with a pointer to a contained sequence
func (p *TagPath) ThenSequence(tag Tag) *TagPath {
	return &TagPath{p, tagPathSequence, tag, 0}
}

// ThenItem extends an item path with a pointer to item (1-based) of a
// contained sequence
func (p *TagPath) ThenItem(tag Tag, item int) *TagPath {
	return &TagPath{p, tagPathItem, tag, item}
}

// IsEmpty is true for the empty path
func (p *TagPath) IsEmpty() bool {
	return p == nil
}

// IsRoot is true for paths of depth one
func (p *TagPath) IsRoot() bool {
	return p != nil && p.prev == nil
}

// Previous returns the path pointing at the enclosing structure, or the
// empty path
func (p *TagPath) Previous() *TagPath {
	if p == nil {
		return nil
	}
	return p.prev
}

// Tag returns the tag of the last path node
func (p *TagPath) Tag() Tag {
	if p == nil {
		return 0
	}
	return p.tag
}

// Item returns the 1-based item index of the last path node, or 0 when the
// node is not an item
func (p *TagPath) Item() int {
	if p == nil {
		return 0
	}
	return p.item
}

// Depth returns the number of nodes in the path
func (p *TagPath) Depth() int {
	n := 0
	for q := p; q != nil; q = q.prev {
		n++
	}
	return n
}

// Head returns the root node of the path as a path of depth one
func (p *TagPath) Head() *TagPath {
	nodes := p.nodes()
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0].asRoot()
}

func (p *TagPath) asRoot() *TagPath {
	return &TagPath{nil, p.kind, p.tag, p.item}
}

// nodes returns the path nodes in root-to-leaf order
func (p *TagPath) nodes() []*TagPath {
	depth := p.Depth()
	nodes := make([]*TagPath, depth)
	for q := p; q != nil; q = q.prev {
		depth--
		nodes[depth] = q
	}
	return nodes
}

// Equals compares paths node by node
func (p *TagPath) Equals(other *TagPath) bool {
	for p != nil && other != nil {
		if p.kind != other.kind || p.tag != other.tag || p.item != other.item {
			return false
		}
		p, other = p.prev, other.prev
	}
	return p == nil && other == nil
}

// matchesNode is true when a node of this path can stand for a node of a
// concrete stream path. A plain tag node acts as a wildcard for sequence and
// item nodes with the same tag, so that whitelisting a tag covers the whole
// subtree below it.
func matchesNode(pattern, node *TagPath) bool {
	if pattern.tag != node.tag {
		return false
	}
	if pattern.kind == tagPathTag || node.kind == tagPathTag {
		return true
	}
	if pattern.kind == tagPathItem && node.kind == tagPathItem {
		return pattern.item == node.item
	}
	return true
}

// HasTrunk is true when trunk, node for node, forms the beginning of this
// path. The empty path is a trunk of every path.
func (p *TagPath) HasTrunk(trunk *TagPath) bool {
	trunkNodes := trunk.nodes()
	nodes := p.nodes()
	if len(trunkNodes) > len(nodes) {
		return false
	}
	for i, t := range trunkNodes {
		if !matchesNode(t, nodes[i]) {
			return false
		}
	}
	return true
}

// IsTrunkOf is true when this path forms the beginning of other
func (p *TagPath) IsTrunkOf(other *TagPath) bool {
	return other.HasTrunk(p)
}

func (p *TagPath) String() string {
	nodes := p.nodes()
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		switch n.kind {
		case tagPathItem:
			parts[i] = fmt.Sprintf("%s[%d]", n.tag, n.item)
		case tagPathSequence:
			parts[i] = fmt.Sprintf("%s[*]", n.tag)
		default:
			parts[i] = n.tag.String()
		}
	}
	return strings.Join(parts, ".")
}

// ParseTagPath parses the string form produced by String, e.g.
// "(0008,1110)[1].(0020,000D)". Keywords from the dictionary are accepted in
// place of (gggg,eeee) tag literals.
func ParseTagPath(s string) (*TagPath, error) {
	if s == "" {
		return EmptyTagPath, nil
	}
	var path *TagPath
	for _, part := range strings.Split(s, ".") {
		tagStr := part
		index := ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("parsing tag path node %q: %w", part, ErrInvalidPath)
			}
			tagStr, index = part[:i], part[i+1:len(part)-1]
		}
		tag, err := parseTagLiteral(tagStr)
		if err != nil {
			return nil, err
		}
		switch {
		case index == "":
			if path == nil {
				path = TagPathFromTag(tag)
			} else {
				path = path.ThenTag(tag)
			}
		case index == "*":
			if path == nil {
				path = TagPathFromSequence(tag)
			} else {
				path = path.ThenSequence(tag)
			}
		default:
			item, err := strconv.Atoi(index)
			if err != nil || item < 1 {
				return nil, fmt.Errorf("parsing item index %q: %w", index, ErrInvalidPath)
			}
			if path == nil {
				path = TagPathFromItem(tag, item)
			} else {
				path = path.ThenItem(tag, item)
			}
		}
	}
	return path, nil
}

func parseTagLiteral(s string) (Tag, error) {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) == 11 && s[5] == ',' {
		group, err1 := strconv.ParseUint(s[1:5], 16, 16)
		element, err2 := strconv.ParseUint(s[6:10], 16, 16)
		if err1 == nil && err2 == nil {
			return Tag(uint32(group)<<16 | uint32(element)), nil
		}
		return 0, fmt.Errorf("parsing tag literal %q: %w", s, ErrInvalidPath)
	}
	return TagOf(s)
}
