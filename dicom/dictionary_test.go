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

func TestVROf(t *testing.T) {
	testCases := []struct {
		name string
		tag  Tag
		want *VR
	}{
		{"dictionary entry", StudyDateTag, DAVR},
		{"group length", Tag(0x00080000), ULVR},
		{"private group length", Tag(0x00090000), ULVR},
		{"private creator", Tag(0x00090010), LOVR},
		{"private element", Tag(0x00091001), UNVR},
		{"source image IDs wildcard", Tag(0x00203105), CSVR},
		{"curve data repeating group", Tag(0x50023000), OBVR},
		{"overlay rows repeating group", Tag(0x60020010), USVR},
		{"retired 7Fxx group", Tag(0x7F120010), OWVR},
		{"pixel data is not masked", PixelDataTag, OWVR},
		{"unknown tag", Tag(0x00991234), UNVR},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VROf(tc.tag); got != tc.want {
				t.Fatalf("VROf(%v) => %v, want %v", tc.tag, got, tc.want)
			}
		})
	}
}

func TestVMOf(t *testing.T) {
	if got := VMOf(StudyDateTag); !got.IsSingle() {
		t.Errorf("VMOf(StudyDate) => %v, want single", got)
	}
	if got := VMOf(Tag(0x00200032)); got.Min() != 3 {
		t.Errorf("VMOf(ImagePositionPatient).Min() => %d, want 3", got.Min())
	}
	got := VMOf(Tag(0x00991234))
	if max, bounded := got.Max(); got.Min() != 1 || bounded {
		t.Errorf("VMOf(unknown) => (%d, %d, %v), want one to many", got.Min(), max, bounded)
	}
}

func TestKeywords(t *testing.T) {
	if got := KeywordOf(PatientNameTag); got != "PatientName" {
		t.Errorf("KeywordOf(_) => %q, want PatientName", got)
	}
	if got := KeywordOf(Tag(0x00991234)); got != "" {
		t.Errorf("KeywordOf(unknown) => %q, want empty", got)
	}

	tag, err := TagOf("PatientName")
	if err != nil || tag != PatientNameTag {
		t.Errorf("TagOf(PatientName) => (%v, %v), want ((0010,0010), <nil>)", tag, err)
	}
	if _, err := TagOf("NoSuchKeyword"); !errors.Is(err, ErrUnknownKeyword) {
		t.Errorf("TagOf(NoSuchKeyword) => %v, want %v", err, ErrUnknownKeyword)
	}
}

func TestDictionaryTablesAreSorted(t *testing.T) {
	for _, table := range [][]dictEntry{dictTableLow, dictTableHigh} {
		for i := 1; i < len(table); i++ {
			if table[i-1].tag >= table[i].tag {
				t.Errorf("table entries %v and %v out of order", table[i-1].tag, table[i].tag)
			}
		}
	}
	for _, e := range dictTableLow {
		if e.tag >= dictSplitTag {
			t.Errorf("entry %v belongs in the high table", e.tag)
		}
	}
	for _, e := range dictTableHigh {
		if e.tag < dictSplitTag {
			t.Errorf("entry %v belongs in the low table", e.tag)
		}
	}
}
