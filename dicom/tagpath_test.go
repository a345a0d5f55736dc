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
	"errors"
	"testing"
)

func TestTagPathNavigation(t *testing.T) {
	path := TagPathFromItem(ReferencedStudySequenceTag, 2).ThenTag(StudyInstanceUIDTag)

	if path.Depth() != 2 {
		t.Errorf("Depth() => %d, want 2", path.Depth())
	}
	if path.Tag() != StudyInstanceUIDTag {
		t.Errorf("Tag() => %v, want (0020,000D)", path.Tag())
	}
	prev := path.Previous()
	if prev.Tag() != ReferencedStudySequenceTag || prev.Item() != 2 {
		t.Errorf("Previous() => (%v, %d), want ((0008,1110), 2)", prev.Tag(), prev.Item())
	}
	if head := path.Head(); !head.IsRoot() || head.Tag() != ReferencedStudySequenceTag {
		t.Errorf("Head() => %v, want the root item node", head)
	}
	if EmptyTagPath.Depth() != 0 || !EmptyTagPath.IsEmpty() {
		t.Errorf("empty path => (%d, %v)", EmptyTagPath.Depth(), EmptyTagPath.IsEmpty())
	}
}

func TestTagPathEquality(t *testing.T) {
	a := TagPathFromItem(ReferencedStudySequenceTag, 1).ThenTag(StudyDateTag)
	b := TagPathFromItem(ReferencedStudySequenceTag, 1).ThenTag(StudyDateTag)
	c := TagPathFromItem(ReferencedStudySequenceTag, 2).ThenTag(StudyDateTag)

	if !a.Equals(b) {
		t.Errorf("equal paths compare unequal")
	}
	if a.Equals(c) {
		t.Errorf("paths with different item indices compare equal")
	}
	if a.Equals(EmptyTagPath) || !EmptyTagPath.Equals(nil) {
		t.Errorf("empty path comparison broken")
	}
}

func TestTagPathTrunks(t *testing.T) {
	deep := TagPathFromItem(ReferencedStudySequenceTag, 1).ThenTag(StudyInstanceUIDTag)

	testCases := []struct {
		name    string
		trunk   *TagPath
		isTrunk bool
	}{
		{"tag node covers the subtree", TagPathFromTag(ReferencedStudySequenceTag), true},
		{"matching item node", TagPathFromItem(ReferencedStudySequenceTag, 1), true},
		{"other item index", TagPathFromItem(ReferencedStudySequenceTag, 2), false},
		{"full path", deep, true},
		{"other tag", TagPathFromTag(PatientNameTag), false},
		{"empty", EmptyTagPath, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := deep.HasTrunk(tc.trunk); got != tc.isTrunk {
				t.Fatalf("HasTrunk(%v) => %v, want %v", tc.trunk, got, tc.isTrunk)
			}
			if got := tc.trunk.IsTrunkOf(deep); got != tc.isTrunk {
				t.Fatalf("IsTrunkOf(%v) => %v, want %v", deep, got, tc.isTrunk)
			}
		})
	}
}

func TestTagPathStringRoundTrip(t *testing.T) {
	testCases := []string{
		"(0008,0020)",
		"(0008,1110)[1].(0020,000D)",
		"(0008,1110)[*]",
		"(0008,1110)[2].(0008,9215)[1].(0008,0020)",
	}

	for _, s := range testCases {
		t.Run(s, func(t *testing.T) {
			path, err := ParseTagPath(s)
			if err != nil {
				t.Fatalf("ParseTagPath(%q) => %v, want <nil>", s, err)
			}
			if got := path.String(); got != s {
				t.Fatalf("String() => %q, want %q", got, s)
			}
		})
	}
}

func TestParseTagPathKeywordsAndErrors(t *testing.T) {
	path, err := ParseTagPath("PatientName")
	if err != nil || path.Tag() != PatientNameTag {
		t.Errorf("ParseTagPath(PatientName) => (%v, %v), want ((0010,0010), <nil>)", path, err)
	}

	for _, s := range []string{"(0008,1110)[x]", "(0008,1110)[0]", "(00081110)", "NoSuchKeyword"} {
		if _, err := ParseTagPath(s); err == nil {
			t.Errorf("ParseTagPath(%q) => <nil>, want error", s)
		}
	}
	if _, err := ParseTagPath("(0008,1110)[0]"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("zero item index => %v, want %v", err, ErrInvalidPath)
	}
}

func TestTagTree(t *testing.T) {
	tree := NewTagTree(
		TagPathFromTag(StudyDateTag),
		TagPathFromItem(ReferencedStudySequenceTag, 1).ThenTag(StudyInstanceUIDTag),
	)

	if tree.IsEmpty() {
		t.Fatalf("IsEmpty() => true, want false")
	}
	if max, ok := tree.MaxHeadTag(); !ok || max != ReferencedStudySequenceTag {
		t.Errorf("MaxHeadTag() => (%v, %v), want ((0008,1110), true)", max, ok)
	}

	testCases := []struct {
		name string
		path *TagPath
		want bool
	}{
		{"whitelisted leaf", TagPathFromTag(StudyDateTag), true},
		{"on the way to a leaf", TagPathFromSequence(ReferencedStudySequenceTag), true},
		{"inside whitelisted item", TagPathFromItem(ReferencedStudySequenceTag, 1), true},
		{"the leaf itself", TagPathFromItem(ReferencedStudySequenceTag, 1).ThenTag(StudyInstanceUIDTag), true},
		{"sibling tag", TagPathFromTag(PatientNameTag), false},
		{"other item", TagPathFromItem(ReferencedStudySequenceTag, 2).ThenTag(StudyInstanceUIDTag), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tree.Matches(tc.path); got != tc.want {
				t.Fatalf("Matches(%v) => %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}
