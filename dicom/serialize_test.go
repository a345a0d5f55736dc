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
	"testing"
)

func TestHeaderBytes(t *testing.T) {
	testCases := []struct {
		name       string
		tag        Tag
		vr         *VR
		length     uint32
		bigEndian  bool
		explicitVR bool
		want       []byte
	}{
		{
			"explicit short header",
			StudyDateTag, DAVR, 8, false, true,
			[]byte{0x08, 0x00, 0x20, 0x00, 'D', 'A', 0x08, 0x00},
		},
		{
			"explicit long header",
			PixelDataTag, OBVR, 6, false, true,
			[]byte{0xE0, 0x7F, 0x10, 0x00, 'O', 'B', 0x00, 0x00, 0x06, 0x00, 0x00, 0x00},
		},
		{
			"implicit header",
			StudyDateTag, DAVR, 8, false, false,
			[]byte{0x08, 0x00, 0x20, 0x00, 0x08, 0x00, 0x00, 0x00},
		},
		{
			"big endian explicit header",
			StudyDateTag, DAVR, 8, true, true,
			[]byte{0x00, 0x08, 0x00, 0x20, 'D', 'A', 0x00, 0x08},
		},
		{
			"item header is always implicit style",
			ItemTag, nil, UndefinedLength, false, true,
			[]byte{0xFE, 0xFF, 0x00, 0xE0, 0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := headerBytes(tc.tag, tc.vr, tc.length, tc.bigEndian, tc.explicitVR)
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("headerBytes(_) => % X, want % X", got, tc.want)
			}
		})
	}
}

func TestToBytesWithPreamble(t *testing.T) {
	e := EmptyElements().SetString(StudyDateTag, "20200101")

	b := e.ToBytes(true)
	if len(b) != 132+16 {
		t.Fatalf("len => %d, want %d", len(b), 132+16)
	}
	if !bytes.Equal(b[:128], make([]byte, 128)) {
		t.Errorf("preamble is not all zero")
	}
	if string(b[128:132]) != "DICM" {
		t.Errorf("magic => %q, want DICM", b[128:132])
	}
	if !bytes.Equal(b[132:], concatBytes(studyDateBytes)) {
		t.Errorf("dataset bytes => % X, want % X", b[132:], studyDateBytes)
	}
}

func TestToPartsMatchesToBytes(t *testing.T) {
	nested := EmptyElements().SetString(StudyInstanceUIDTag, "1.2.3")
	e := EmptyElements().
		SetString(StudyDateTag, "20200101").
		Set(NewSequence(ReferencedStudySequenceTag, UndefinedLength,
			[]Item{NewItem(nested, true, false)}, false, true)).
		Set(NewFragments(PixelDataTag, OBVR, []int64{0},
			[]Fragment{NewFragment(NewValue([]byte{1, 2, 3, 4, 5, 6}), false)}, false, true))

	var fromParts []byte
	for _, p := range e.ToParts(false) {
		fromParts = append(fromParts, p.Bytes()...)
	}
	// value chunks carry the value bytes separately from the headers
	if !bytes.Equal(fromParts, e.ToBytes(false)) {
		t.Fatalf("ToParts bytes differ from ToBytes:\ngot  % X\nwant % X", fromParts, e.ToBytes(false))
	}
}

func TestSerializedSequencesParse(t *testing.T) {
	nested := EmptyElements().SetString(StudyInstanceUIDTag, "1.2.3")
	explicit := NewSequence(DerivationCodeSequenceTag, 0, nil, false, true).AddItem(nested).AddItem(nested)

	e := EmptyElements().Set(explicit)
	parsed, err := ParseElements(bytes.NewReader(e.ToBytes(false)))
	if err != nil {
		t.Fatalf("ParseElements(_) => %v, want <nil>", err)
	}
	seq, ok := parsed.GetSequence(DerivationCodeSequenceTag)
	if !ok || seq.Size() != 2 {
		t.Fatalf("parsed sequence => (%v, %v), want 2 items", seq, ok)
	}
	for i := 1; i <= 2; i++ {
		inner, ok := parsed.GetNested(DerivationCodeSequenceTag, i)
		if !ok {
			t.Fatalf("no item %d", i)
		}
		if got, _ := inner.GetString(StudyInstanceUIDTag); got != "1.2.3" {
			t.Errorf("item %d UID => %q, want 1.2.3", i, got)
		}
	}
}
