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
	"reflect"
	"testing"
	"time"
)

func TestValueToStrings(t *testing.T) {
	testCases := []struct {
		name  string
		value []byte
		vr    *VR
		want  []string
	}{
		{"single padded", []byte("CT "), CSVR, []string{"CT"}},
		{"multi valued", []byte(`ORIGINAL\PRIMARY`), CSVR, []string{"ORIGINAL", "PRIMARY"}},
		{"UI strips trailing NUL", []byte("1.2.3\x00"), UIVR, []string{"1.2.3"}},
		{"UT keeps leading space", []byte(" text "), UTVR, []string{" text"}},
		{"empty", nil, CSVR, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewValue(tc.value).ToStrings(tc.vr, false, DefaultCharacterSet)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ToStrings(_) => %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValueNumbers(t *testing.T) {
	if got := NewValue([]byte{0x02, 0x01}).ToShorts(USVR, false); !reflect.DeepEqual(got, []int16{0x0102}) {
		t.Errorf("little endian ToShorts(_) => %v, want [258]", got)
	}
	if got := NewValue([]byte{0x02, 0x01}).ToShorts(USVR, true); !reflect.DeepEqual(got, []int16{0x0201}) {
		t.Errorf("big endian ToShorts(_) => %v, want [513]", got)
	}
	if got := NewValue([]byte{0xCA, 0x00, 0x00, 0x00}).ToInts(ULVR, false); !reflect.DeepEqual(got, []int32{202}) {
		t.Errorf("ToInts(_) => %v, want [202]", got)
	}
	if got := NewValue([]byte(`1\2\3 `)).ToInts(ISVR, false); !reflect.DeepEqual(got, []int32{1, 2, 3}) {
		t.Errorf("IS ToInts(_) => %v, want [1 2 3]", got)
	}
	if got := NewValue([]byte("1.5\\2.5")).ToDoubles(DSVR, false); !reflect.DeepEqual(got, []float64{1.5, 2.5}) {
		t.Errorf("DS ToDoubles(_) => %v, want [1.5 2.5]", got)
	}
	if got := NewValue([]byte("bogus")).ToInts(ISVR, false); len(got) != 0 {
		t.Errorf("malformed IS ToInts(_) => %v, want empty", got)
	}
}

func TestValueDatesAndTimes(t *testing.T) {
	if got := NewValue([]byte("20200101")).ToDates(DAVR); len(got) != 1 ||
		!got[0].Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ToDates(_) => %v, want 2020-01-01", got)
	}
	if got := NewValue([]byte("2020.01.01")).ToDates(DAVR); len(got) != 1 {
		t.Errorf("legacy date form not parsed: %v", got)
	}
	if got := NewValue([]byte("not-a-date")).ToDates(DAVR); len(got) != 0 {
		t.Errorf("malformed date => %v, want empty", got)
	}

	times := NewValue([]byte("101530.250000")).ToTimes(TMVR)
	if len(times) != 1 || times[0].Hour() != 10 || times[0].Minute() != 15 ||
		times[0].Second() != 30 || times[0].Nanosecond() != 250000000 {
		t.Errorf("ToTimes(_) => %v, want 10:15:30.25", times)
	}

	zone := time.FixedZone("+0100", 3600)
	withOffset := NewValue([]byte("20200101103000+0200")).ToDateTimes(DTVR, zone)
	if len(withOffset) != 1 {
		t.Fatalf("ToDateTimes(_) => %v, want one value", withOffset)
	}
	if _, offset := withOffset[0].Zone(); offset != 7200 {
		t.Errorf("explicit offset => %d, want 7200", offset)
	}
	withFallback := NewValue([]byte("20200101103000")).ToDateTimes(DTVR, zone)
	if len(withFallback) != 1 {
		t.Fatalf("ToDateTimes(_) => %v, want one value", withFallback)
	}
	if _, offset := withFallback[0].Zone(); offset != 3600 {
		t.Errorf("fallback offset => %d, want 3600", offset)
	}
}

func TestValuePersonNames(t *testing.T) {
	names := NewValue([]byte("Yamada^Tarou=山田^太郎=やまだ^たろう")).ToPersonNames(PNVR, DefaultCharacterSet)
	if len(names) != 1 {
		t.Fatalf("ToPersonNames(_) => %d names, want 1", len(names))
	}
	name := names[0]
	if name.Alphabetic.FamilyName != "Yamada" || name.Alphabetic.GivenName != "Tarou" {
		t.Errorf("alphabetic group => %v", name.Alphabetic)
	}
	if name.Ideographic.FamilyName != "山田" {
		t.Errorf("ideographic family name => %q, want 山田", name.Ideographic.FamilyName)
	}
	if name.Phonetic.GivenName != "たろう" {
		t.Errorf("phonetic given name => %q, want たろう", name.Phonetic.GivenName)
	}

	full := NewValue([]byte("Adams^John^Quincy^Rev.^B.A.")).ToPersonNames(PNVR, DefaultCharacterSet)[0]
	want := ComponentGroup{"Adams", "John", "Quincy", "Rev.", "B.A."}
	if full.Alphabetic != want {
		t.Errorf("components => %v, want %v", full.Alphabetic, want)
	}
}

func TestValuePadding(t *testing.T) {
	testCases := []struct {
		name string
		vr   *VR
		in   string
		want []byte
	}{
		{"UI pads with NUL", UIVR, "1.2.3", []byte("1.2.3\x00")},
		{"CS even length is not padded", CSVR, "CT", []byte("CT")},
		{"PN pads with space", PNVR, "Doe", []byte("Doe ")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValueFromString(tc.vr, tc.in)
			if !reflect.DeepEqual(got.Bytes, tc.want) {
				t.Fatalf("ValueFromString(%v, %q) => %v, want %v", tc.vr, tc.in, got.Bytes, tc.want)
			}
		})
	}
}

func TestValueConstructorsRoundTrip(t *testing.T) {
	shorts := ValueFromShorts(USVR, []int16{1, 2, 3}, false)
	if got := shorts.ToShorts(USVR, false); !reflect.DeepEqual(got, []int16{1, 2, 3}) {
		t.Errorf("shorts => %v, want [1 2 3]", got)
	}
	bigEndian := ValueFromInts(SLVR, []int32{-5}, true)
	if got := bigEndian.ToInts(SLVR, true); !reflect.DeepEqual(got, []int32{-5}) {
		t.Errorf("big endian ints => %v, want [-5]", got)
	}
	doubles := ValueFromDoubles(FDVR, []float64{0.25}, false)
	if got := doubles.ToDoubles(FDVR, false); !reflect.DeepEqual(got, []float64{0.25}) {
		t.Errorf("doubles => %v, want [0.25]", got)
	}
	text := ValueFromLongs(ISVR, []int64{7}, false)
	if got := text.ToLongs(ISVR, false); !reflect.DeepEqual(got, []int64{7}) {
		t.Errorf("IS longs => %v, want [7]", got)
	}
	date := ValueFromDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	if string(date.Bytes) != "20200101" {
		t.Errorf("date bytes => %q, want 20200101", date.Bytes)
	}
}
