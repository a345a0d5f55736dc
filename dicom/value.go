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
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is the raw value field of a data element. Interpretation of the
// bytes is a function of the VR, the byte order and the active character
// sets, all of which are supplied at conversion time. Conversions are total:
// malformed values yield empty results, never errors.
type Value struct {
	Bytes []byte
}

// EmptyValue returns a Value with no bytes
func EmptyValue() Value {
	return Value{}
}

// NewValue wraps raw bytes. The caller is responsible for even length
// padding, see EnsurePadding.
func NewValue(b []byte) Value {
	return Value{b}
}

// Length returns the number of value bytes
func (v Value) Length() int {
	return len(v.Bytes)
}

// EnsurePadding returns a Value padded to even length with the padding byte
// of the VR
func (v Value) EnsurePadding(vr *VR) Value {
	if len(v.Bytes)%2 == 0 {
		return v
	}
	padded := make([]byte, len(v.Bytes)+1)
	copy(padded, v.Bytes)
	padded[len(v.Bytes)] = vr.PaddingByte()
	return Value{padded}
}

func byteOrder(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// multi-valued string VRs separate values with a backslash
const multiValueDelimiter = "\\"

func (v Value) splitStrings(vr *VR, cs CharacterSets) []string {
	if len(v.Bytes) == 0 {
		return nil
	}
	s := cs.Decode(vr, v.Bytes)
	var strs []string
	if vr == UTVR || vr == STVR || vr == LTVR || vr == URVR {
		// no value multiplicity for the long text VRs
		strs = []string{s}
	} else {
		strs = strings.Split(s, multiValueDelimiter)
	}
	for i, s := range strs {
		strs[i] = trimPadding(s, vr)
	}
	return strs
}

func trimPadding(s string, vr *VR) string {
	isPadding := func(r rune) bool { return r == ' ' }
	if vr == UIVR {
		isPadding = func(r rune) bool { return r == 0x00 || r == ' ' }
	}
	if vr == UTVR || vr == STVR || vr == LTVR || vr == URVR {
		return strings.TrimRightFunc(s, isPadding)
	}
	return strings.TrimFunc(s, isPadding)
}

// ToStrings interprets the value as a (possibly multi-valued) string
func (v Value) ToStrings(vr *VR, bigEndian bool, cs CharacterSets) []string {
	switch vr.kind {
	case textVR, numberTextVR, uniqueIdentifierVR:
		return v.splitStrings(vr, cs)
	case numberBinaryVR:
		switch vr {
		case FLVR, FDVR:
			doubles := v.ToDoubles(vr, bigEndian)
			strs := make([]string, len(doubles))
			for i, d := range doubles {
				strs[i] = strconv.FormatFloat(d, 'g', -1, 64)
			}
			return strs
		default:
			longs := v.ToLongs(vr, bigEndian)
			strs := make([]string, len(longs))
			for i, l := range longs {
				strs[i] = strconv.FormatInt(l, 10)
			}
			return strs
		}
	case tagVR:
		tags := v.ToTags(bigEndian)
		strs := make([]string, len(tags))
		for i, t := range tags {
			strs[i] = t.String()
		}
		return strs
	default:
		return nil
	}
}

// ToSingleString interprets the value as one string, without splitting on
// the multi-value delimiter
func (v Value) ToSingleString(vr *VR, bigEndian bool, cs CharacterSets) string {
	strs := v.ToStrings(vr, bigEndian, cs)
	if len(strs) == 0 {
		return ""
	}
	if len(strs) == 1 {
		return strs[0]
	}
	return strings.Join(strs, multiValueDelimiter)
}

// ToShorts interprets the value as 16 bit signed integers
func (v Value) ToShorts(vr *VR, bigEndian bool) []int16 {
	switch vr.kind {
	case numberBinaryVR:
		if vr != SSVR && vr != USVR {
			longs := v.ToLongs(vr, bigEndian)
			shorts := make([]int16, len(longs))
			for i, l := range longs {
				shorts[i] = int16(l)
			}
			return shorts
		}
		order := byteOrder(bigEndian)
		shorts := make([]int16, len(v.Bytes)/2)
		for i := range shorts {
			shorts[i] = int16(order.Uint16(v.Bytes[2*i:]))
		}
		return shorts
	case numberTextVR:
		longs := v.ToLongs(vr, bigEndian)
		shorts := make([]int16, len(longs))
		for i, l := range longs {
			shorts[i] = int16(l)
		}
		return shorts
	default:
		return nil
	}
}

// ToInts interprets the value as 32 bit signed integers. For the binary
// number VRs the result has one entry per value of the VR (4 bytes for SL
// and UL, 2 for SS and US, 8 for SV and UV); for the number string VRs
// (IS, DS) one entry per parsable string value.
func (v Value) ToInts(vr *VR, bigEndian bool) []int32 {
	longs := v.ToLongs(vr, bigEndian)
	ints := make([]int32, len(longs))
	for i, l := range longs {
		ints[i] = int32(l)
	}
	return ints
}

// ToLongs interprets the value as 64 bit signed integers
func (v Value) ToLongs(vr *VR, bigEndian bool) []int64 {
	order := byteOrder(bigEndian)
	switch vr {
	case SSVR:
		longs := make([]int64, len(v.Bytes)/2)
		for i := range longs {
			longs[i] = int64(int16(order.Uint16(v.Bytes[2*i:])))
		}
		return longs
	case USVR:
		longs := make([]int64, len(v.Bytes)/2)
		for i := range longs {
			longs[i] = int64(order.Uint16(v.Bytes[2*i:]))
		}
		return longs
	case SLVR:
		longs := make([]int64, len(v.Bytes)/4)
		for i := range longs {
			longs[i] = int64(int32(order.Uint32(v.Bytes[4*i:])))
		}
		return longs
	case ULVR:
		longs := make([]int64, len(v.Bytes)/4)
		for i := range longs {
			longs[i] = int64(order.Uint32(v.Bytes[4*i:]))
		}
		return longs
	case SVVR, UVVR:
		longs := make([]int64, len(v.Bytes)/8)
		for i := range longs {
			longs[i] = int64(order.Uint64(v.Bytes[8*i:]))
		}
		return longs
	case ISVR, DSVR:
		var longs []int64
		for _, s := range v.splitStrings(vr, DefaultCharacterSet) {
			if l, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				longs = append(longs, l)
			} else if d, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				longs = append(longs, int64(d))
			}
		}
		return longs
	default:
		return nil
	}
}

// ToFloats interprets the value as 32 bit floating point numbers
func (v Value) ToFloats(vr *VR, bigEndian bool) []float32 {
	doubles := v.ToDoubles(vr, bigEndian)
	floats := make([]float32, len(doubles))
	for i, d := range doubles {
		floats[i] = float32(d)
	}
	return floats
}

// ToDoubles interprets the value as 64 bit floating point numbers
func (v Value) ToDoubles(vr *VR, bigEndian bool) []float64 {
	order := byteOrder(bigEndian)
	switch vr {
	case FLVR:
		doubles := make([]float64, len(v.Bytes)/4)
		for i := range doubles {
			doubles[i] = float64(math.Float32frombits(order.Uint32(v.Bytes[4*i:])))
		}
		return doubles
	case FDVR:
		doubles := make([]float64, len(v.Bytes)/8)
		for i := range doubles {
			doubles[i] = math.Float64frombits(order.Uint64(v.Bytes[8*i:]))
		}
		return doubles
	case DSVR, ISVR:
		var doubles []float64
		for _, s := range v.splitStrings(vr, DefaultCharacterSet) {
			if d, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				doubles = append(doubles, d)
			}
		}
		return doubles
	case SSVR, USVR, SLVR, ULVR, SVVR, UVVR:
		longs := v.ToLongs(vr, bigEndian)
		doubles := make([]float64, len(longs))
		for i, l := range longs {
			doubles[i] = float64(l)
		}
		return doubles
	default:
		return nil
	}
}

// ToTags interprets the value as attribute tags (VR AT)
func (v Value) ToTags(bigEndian bool) []Tag {
	order := byteOrder(bigEndian)
	tags := make([]Tag, len(v.Bytes)/4)
	for i := range tags {
		group := order.Uint16(v.Bytes[4*i:])
		element := order.Uint16(v.Bytes[4*i+2:])
		tags[i] = Tag(uint32(group)<<16 | uint32(element))
	}
	return tags
}

// ToDates interprets the value as dates (VR DA). Both the standard form
// YYYYMMDD and the legacy form YYYY.MM.DD are accepted; anything else is
// dropped.
func (v Value) ToDates(vr *VR) []time.Time {
	var dates []time.Time
	for _, s := range v.splitStrings(vr, DefaultCharacterSet) {
		if d, ok := parseDate(s); ok {
			dates = append(dates, d)
		}
	}
	return dates
}

// ToTimes interprets the value as times of day (VR TM), HHMMSS with optional
// fraction and shorter legal forms (HH, HHMM).
func (v Value) ToTimes(vr *VR) []time.Time {
	var times []time.Time
	for _, s := range v.splitStrings(vr, DefaultCharacterSet) {
		if t, ok := parseTime(s); ok {
			times = append(times, t)
		}
	}
	return times
}

// ToDateTimes interprets the value as timestamps (VR DT). Values without an
// explicit offset use the supplied zone.
func (v Value) ToDateTimes(vr *VR, zone *time.Location) []time.Time {
	if zone == nil {
		zone = time.UTC
	}
	var times []time.Time
	for _, s := range v.splitStrings(vr, DefaultCharacterSet) {
		if t, ok := parseDateTime(s, zone); ok {
			times = append(times, t)
		}
	}
	return times
}

// ToPersonNames interprets the value as person names (VR PN)
func (v Value) ToPersonNames(vr *VR, cs CharacterSets) []PersonName {
	var names []PersonName
	for _, s := range v.splitStrings(vr, cs) {
		names = append(names, parsePersonName(s))
	}
	return names
}

// ToURI interprets the value as a URI (VR UR)
func (v Value) ToURI(vr *VR) string {
	strs := v.splitStrings(vr, DefaultCharacterSet)
	if len(strs) == 0 {
		return ""
	}
	return strs[0]
}

// PersonName is a DICOM person name, split into its component groups and
// name components per
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2.1
type PersonName struct {
	Alphabetic  ComponentGroup
	Ideographic ComponentGroup
	Phonetic    ComponentGroup
}

// ComponentGroup is one writing system's rendition of a person name
type ComponentGroup struct {
	FamilyName string
	GivenName  string
	MiddleName string
	Prefix     string
	Suffix     string
}

func parsePersonName(s string) PersonName {
	groups := strings.SplitN(s, "=", 3)
	var name PersonName
	targets := []*ComponentGroup{&name.Alphabetic, &name.Ideographic, &name.Phonetic}
	for i, group := range groups {
		components := strings.SplitN(group, "^", 5)
		fields := []*string{
			&targets[i].FamilyName, &targets[i].GivenName, &targets[i].MiddleName,
			&targets[i].Prefix, &targets[i].Suffix,
		}
		for j, c := range components {
			*fields[j] = strings.TrimRight(c, " ")
		}
	}
	return name
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"20060102", "2006.01.02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"150405.999999", "150405", "1504", "15"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateTime(s string, zone *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"20060102150405.999999-0700", "20060102150405-0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range []string{
		"20060102150405.999999", "20060102150405", "200601021504", "2006010215", "20060102", "200601", "2006",
	} {
		if t, err := time.ParseInLocation(layout, s, zone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Value constructors. Each encodes typed values into the wire form of the
// VR and pads the result to even length.

// ValueFromString encodes a single string value
func ValueFromString(vr *VR, s string) Value {
	return ValueFromStrings(vr, []string{s})
}

// ValueFromStrings encodes a multi-valued string, joining values with the
// multi-value delimiter
func ValueFromStrings(vr *VR, strs []string) Value {
	return NewValue([]byte(strings.Join(strs, multiValueDelimiter))).EnsurePadding(vr)
}

// ValueFromShorts encodes 16 bit signed integers
func ValueFromShorts(vr *VR, shorts []int16, bigEndian bool) Value {
	longs := make([]int64, len(shorts))
	for i, s := range shorts {
		longs[i] = int64(s)
	}
	return ValueFromLongs(vr, longs, bigEndian)
}

// ValueFromInts encodes 32 bit signed integers
func ValueFromInts(vr *VR, ints []int32, bigEndian bool) Value {
	longs := make([]int64, len(ints))
	for i, n := range ints {
		longs[i] = int64(n)
	}
	return ValueFromLongs(vr, longs, bigEndian)
}

// ValueFromLongs encodes 64 bit signed integers into the binary or string
// form of the VR
func ValueFromLongs(vr *VR, longs []int64, bigEndian bool) Value {
	order := byteOrder(bigEndian)
	var b []byte
	switch vr {
	case SSVR, USVR:
		b = make([]byte, 2*len(longs))
		for i, l := range longs {
			order.PutUint16(b[2*i:], uint16(l))
		}
	case SLVR, ULVR:
		b = make([]byte, 4*len(longs))
		for i, l := range longs {
			order.PutUint32(b[4*i:], uint32(l))
		}
	case SVVR, UVVR:
		b = make([]byte, 8*len(longs))
		for i, l := range longs {
			order.PutUint64(b[8*i:], uint64(l))
		}
	default:
		strs := make([]string, len(longs))
		for i, l := range longs {
			strs[i] = strconv.FormatInt(l, 10)
		}
		return ValueFromStrings(vr, strs)
	}
	return NewValue(b).EnsurePadding(vr)
}

// ValueFromFloats encodes 32 bit floating point numbers
func ValueFromFloats(vr *VR, floats []float32, bigEndian bool) Value {
	if vr == FLVR {
		order := byteOrder(bigEndian)
		b := make([]byte, 4*len(floats))
		for i, f := range floats {
			order.PutUint32(b[4*i:], math.Float32bits(f))
		}
		return NewValue(b)
	}
	doubles := make([]float64, len(floats))
	for i, f := range floats {
		doubles[i] = float64(f)
	}
	return ValueFromDoubles(vr, doubles, bigEndian)
}

// ValueFromDoubles encodes 64 bit floating point numbers
func ValueFromDoubles(vr *VR, doubles []float64, bigEndian bool) Value {
	order := byteOrder(bigEndian)
	switch vr {
	case FDVR:
		b := make([]byte, 8*len(doubles))
		for i, d := range doubles {
			order.PutUint64(b[8*i:], math.Float64bits(d))
		}
		return NewValue(b)
	case FLVR:
		b := make([]byte, 4*len(doubles))
		for i, d := range doubles {
			order.PutUint32(b[4*i:], math.Float32bits(float32(d)))
		}
		return NewValue(b)
	default:
		strs := make([]string, len(doubles))
		for i, d := range doubles {
			strs[i] = strconv.FormatFloat(d, 'g', -1, 64)
		}
		return ValueFromStrings(vr, strs)
	}
}

// ValueFromDate encodes a date in the standard DA form
func ValueFromDate(d time.Time) Value {
	return ValueFromString(DAVR, d.Format("20060102"))
}

// ValueFromTime encodes a time of day in the standard TM form
func ValueFromTime(t time.Time) Value {
	return ValueFromString(TMVR, t.Format("150405.000000"))
}

// ValueFromDateTime encodes a timestamp in the standard DT form including
// the zone offset
func ValueFromDateTime(t time.Time) Value {
	return ValueFromString(DTVR, t.Format("20060102150405.000000-0700"))
}

// ValueFromPersonName encodes a person name
func ValueFromPersonName(name PersonName) Value {
	groups := []ComponentGroup{name.Alphabetic, name.Ideographic, name.Phonetic}
	groupStrs := make([]string, 0, 3)
	for _, g := range groups {
		groupStrs = append(groupStrs, strings.TrimRight(
			strings.Join([]string{g.FamilyName, g.GivenName, g.MiddleName, g.Prefix, g.Suffix}, "^"), "^"))
	}
	s := strings.Join(groupStrs, "=")
	return ValueFromString(PNVR, strings.TrimRight(s, "="))
}
