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
	"reflect"
	"testing"
	"time"
)

func TestElementsSetKeepsTagOrder(t *testing.T) {
	e := EmptyElements().
		SetString(PatientNameTag, "Doe^John").
		SetString(StudyDateTag, "20200101").
		SetString(ModalityTag, "CT")

	var tags []Tag
	for _, elem := range e.Data() {
		tags = append(tags, elem.Tag())
	}
	want := []Tag{StudyDateTag, ModalityTag, PatientNameTag}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("tags => %v, want %v", tags, want)
	}
}

func TestElementsSetReplaces(t *testing.T) {
	e := EmptyElements().
		SetString(StudyDateTag, "20200101").
		SetString(StudyDateTag, "20210202")

	if e.Size() != 1 {
		t.Fatalf("Size() => %d, want 1", e.Size())
	}
	if got, _ := e.GetString(StudyDateTag); got != "20210202" {
		t.Errorf("StudyDate => %q, want 20210202", got)
	}
}

func TestElementsValueSemantics(t *testing.T) {
	original := EmptyElements().SetString(StudyDateTag, "20200101")
	modified := original.SetString(PatientNameTag, "Doe^John").Remove(StudyDateTag)

	if original.Size() != 1 || !original.Contains(StudyDateTag) {
		t.Errorf("original was modified: %v", original)
	}
	if modified.Size() != 1 || modified.Contains(StudyDateTag) {
		t.Errorf("modified => %v, want only PatientName", modified)
	}
}

func TestElementsCharacterSetSideEffect(t *testing.T) {
	e := EmptyElements().SetString(SpecificCharacterSetTag, "ISO_IR 100")

	latin1 := e.CharacterSets()
	if got := latin1.Decode(PNVR, []byte{'M', 0xFC, 'l', 'l', 'e', 'r'}); got != "Müller" {
		t.Errorf("Decode(_) => %q, want Müller", got)
	}
}

func TestElementsZoneOffsetSideEffect(t *testing.T) {
	e := EmptyElements().SetString(TimezoneOffsetFromUTCTag, "+0100")

	_, offset := time.Date(2020, 1, 1, 0, 0, 0, 0, e.ZoneOffset()).Zone()
	if offset != 3600 {
		t.Errorf("zone offset => %d seconds, want 3600", offset)
	}
}

func TestElementsTypedAccess(t *testing.T) {
	e := EmptyElements().
		SetShorts(RowsTag, []int16{512}).
		SetStrings(SpecificCharacterSetTag, []string{"", "ISO 2022 IR 100"}).
		SetString(StudyDateTag, "20200101").
		SetPersonName(PatientNameTag, PersonName{Alphabetic: ComponentGroup{FamilyName: "Doe", GivenName: "John"}})

	if got, _ := e.GetShort(RowsTag); got != 512 {
		t.Errorf("GetShort(Rows) => %d, want 512", got)
	}
	if got, _ := e.GetDate(StudyDateTag); !got.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("GetDate(StudyDate) => %v, want 2020-01-01", got)
	}
	name, ok := e.GetPersonName(PatientNameTag)
	if !ok || name.Alphabetic.FamilyName != "Doe" || name.Alphabetic.GivenName != "John" {
		t.Errorf("GetPersonName(_) => %v, want Doe^John", name)
	}
	if got := e.GetStrings(SpecificCharacterSetTag); !reflect.DeepEqual(got, []string{"", "ISO 2022 IR 100"}) {
		t.Errorf("GetStrings(SpecificCharacterSet) => %v", got)
	}
}

func TestElementsStoredValuesAreEven(t *testing.T) {
	e := EmptyElements().
		SetString(StudyInstanceUIDTag, "1.2.3").
		SetString(PatientNameTag, "Doe").
		SetLongs(RowsTag, []int64{3})

	for _, elem := range e.Data() {
		ve := elem.(*ValueElement)
		if ve.Length()%2 != 0 {
			t.Errorf("element %v has odd length %d", ve.Tag(), ve.Length())
		}
	}
	// UI pads with NUL, text VRs with space
	if got, _ := e.GetBytes(StudyInstanceUIDTag); got[5] != 0x00 {
		t.Errorf("UI padding byte => %02X, want 00", got[5])
	}
	if got, _ := e.GetBytes(PatientNameTag); got[3] != ' ' {
		t.Errorf("PN padding byte => %02X, want 20", got[3])
	}
}

func TestSequenceAddItem(t *testing.T) {
	nested := EmptyElements().SetString(StudyInstanceUIDTag, "1.2.3")

	indeterminate := NewSequence(ReferencedStudySequenceTag, UndefinedLength, nil, false, true).AddItem(nested)
	if !indeterminate.Indeterminate() {
		t.Errorf("adding to indeterminate sequence => length %08X, want FFFFFFFF", indeterminate.Length())
	}
	if item, _ := indeterminate.Item(1); !item.Indeterminate() {
		t.Errorf("item of indeterminate sequence has explicit length %d", item.Length())
	}

	explicit := NewSequence(ReferencedStudySequenceTag, 0, nil, false, true)
	grown := explicit.AddItem(nested)
	item, _ := grown.Item(1)
	wantLength := uint32(len(item.toBytes(true)))
	if grown.Length() != wantLength {
		t.Errorf("explicit sequence length => %d, want %d", grown.Length(), wantLength)
	}
	if item.Length() != uint32(len(nested.toBytesAll())) {
		t.Errorf("explicit item length => %d, want %d", item.Length(), len(nested.toBytesAll()))
	}
}

func TestElementsPathAccess(t *testing.T) {
	nested := EmptyElements().SetString(StudyInstanceUIDTag, "1.2.3")
	e := EmptyElements().Set(
		NewSequence(ReferencedStudySequenceTag, UndefinedLength,
			[]Item{NewItem(nested, true, false)}, false, true))

	itemPath := TagPathFromItem(ReferencedStudySequenceTag, 1)

	got, ok := e.GetNestedAtPath(itemPath)
	if !ok || !reflect.DeepEqual(got, nested) {
		t.Fatalf("GetNestedAtPath(_) => (%v, %v), want the nested elements", got, ok)
	}
	if got, _ := e.GetStringAtPath(itemPath.ThenTag(StudyInstanceUIDTag)); got != "1.2.3" {
		t.Errorf("GetStringAtPath(_) => %q, want 1.2.3", got)
	}

	updated, err := e.SetAtPath(itemPath, NewValueElement(StudyDateTag, DAVR, NewValue([]byte("20200101")), false, true))
	if err != nil {
		t.Fatalf("SetAtPath(_) => %v, want <nil>", err)
	}
	inner, _ := updated.GetNestedAtPath(itemPath)
	if got, _ := inner.GetString(StudyDateTag); got != "20200101" {
		t.Errorf("nested StudyDate after SetAtPath => %q, want 20200101", got)
	}

	removed, err := updated.RemoveAtPath(itemPath.ThenTag(StudyDateTag))
	if err != nil {
		t.Fatalf("RemoveAtPath(_) => %v, want <nil>", err)
	}
	inner, _ = removed.GetNestedAtPath(itemPath)
	if inner.Contains(StudyDateTag) {
		t.Errorf("StudyDate still present after RemoveAtPath")
	}
}

func TestElementsAddItemAtPath(t *testing.T) {
	e := EmptyElements().Set(
		NewSequence(ReferencedStudySequenceTag, UndefinedLength, nil, false, true))
	nested := EmptyElements().SetString(StudyInstanceUIDTag, "1.2.3")

	updated, err := e.AddItemAtPath(TagPathFromSequence(ReferencedStudySequenceTag), nested)
	if err != nil {
		t.Fatalf("AddItemAtPath(_) => %v, want <nil>", err)
	}
	seq, _ := updated.GetSequence(ReferencedStudySequenceTag)
	if seq.Size() != 1 {
		t.Fatalf("sequence size => %d, want 1", seq.Size())
	}
}

func TestElementsInvalidPaths(t *testing.T) {
	e := EmptyElements().SetString(StudyDateTag, "20200101")

	testCases := []struct {
		name string
		run  func() error
	}{
		{
			"set at tag path",
			func() error {
				_, err := e.SetAtPath(TagPathFromTag(StudyDateTag),
					NewValueElement(PatientNameTag, PNVR, EmptyValue(), false, true))
				return err
			},
		},
		{
			"add item at item path",
			func() error {
				_, err := e.AddItemAtPath(TagPathFromItem(ReferencedStudySequenceTag, 1), EmptyElements())
				return err
			},
		},
		{
			"set nested at missing sequence",
			func() error {
				_, err := e.SetNestedAtPath(TagPathFromItem(ReferencedStudySequenceTag, 1), EmptyElements())
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalidPath) {
				t.Fatalf("got %v, want %v", err, ErrInvalidPath)
			}
		})
	}
}

func TestFragmentsFrames(t *testing.T) {
	testCases := []struct {
		name      string
		fragments *Fragments
		count     int
		frames    [][]byte
	}{
		{
			"no offsets, no fragments",
			NewFragments(PixelDataTag, OBVR, nil, nil, false, true),
			0,
			nil,
		},
		{
			"fragments without offset table",
			NewFragments(PixelDataTag, OBVR, nil,
				[]Fragment{NewFragment(NewValue([]byte{1, 2}), false)}, false, true),
			1,
			[][]byte{{1, 2}},
		},
		{
			"two frames",
			NewFragments(PixelDataTag, OBVR, []int64{0, 2},
				[]Fragment{
					NewFragment(NewValue([]byte{1, 2}), false),
					NewFragment(NewValue([]byte{3, 4}), false),
				}, false, true),
			2,
			[][]byte{{1, 2}, {3, 4}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fragments.FrameCount(); got != tc.count {
				t.Errorf("FrameCount() => %d, want %d", got, tc.count)
			}
			if got := tc.fragments.FrameIterator(); !reflect.DeepEqual(got, tc.frames) {
				t.Errorf("FrameIterator() => %v, want %v", got, tc.frames)
			}
		})
	}
}

func TestFragmentsFirstFragmentBecomesOffsets(t *testing.T) {
	f := NewFragments(PixelDataTag, OBVR, nil, nil, false, true).
		AddFragment(NewFragment(NewValue([]byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00}), false)).
		AddFragment(NewFragment(NewValue([]byte{1, 2, 3}), false))

	if got := f.Offsets(); !reflect.DeepEqual(got, []int64{0, 16}) {
		t.Errorf("Offsets() => %v, want [0 16]", got)
	}
	if len(f.Fragments()) != 1 {
		t.Errorf("Fragments() => %d fragments, want 1", len(f.Fragments()))
	}
}
