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
)

// vrType is to group common encodings together
type vrType int

const (
	// textVR is for value fields that will be interpreted as simple text with space padding
	textVR vrType = iota

	// numberBinaryVR is for value fields that are parsed as binary numbers
	numberBinaryVR

	// numberTextVR is for numbers stored as decimal or integer strings (DS, IS)
	numberTextVR

	// bulkDataVR groups sequences of binary numbers
	bulkDataVR

	// uniqueIdentifierVR is for VR: UI. It has null padding
	uniqueIdentifierVR

	// sequenceVR is for VR: SQ
	sequenceVR

	// tagVR is for tags. Distinct from numberBinaryVR due to little endian byte ordering
	tagVR
)

// UndefinedLength as specified
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.1
const UndefinedLength = 0xffffffff

// VR models the DICOM Value representations (VR)
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
type VR struct {
	// Name represents the 2-character VR Code
	Name string

	kind vrType

	// headerLength is the explicit VR header length in bytes, 8 or 12. The
	// VRs with 12 byte headers store their value length in a 32 bit field
	// preceded by 2 reserved bytes, see
	// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.1.2
	headerLength int

	// paddingByte pads odd length values to even length
	paddingByte byte
}

// HeaderLength returns the explicit VR header length in bytes (8 or 12)
func (vr *VR) HeaderLength() int {
	return vr.headerLength
}

// PaddingByte returns the byte used to pad values of this VR to even length
func (vr *VR) PaddingByte() byte {
	return vr.paddingByte
}

func (vr *VR) String() string {
	return vr.Name
}

const (
	shortHeader = 8
	longHeader  = 12

	spacePadding = byte(0x20)
	nullPadding  = byte(0x00)
)

var vrLookupMap = map[string]*VR{}

func newVR(text string, vrType vrType, headerLength int, paddingByte byte) *VR {
	vr := &VR{text, vrType, headerLength, paddingByte}
	vrLookupMap[vr.Name] = vr

	return vr
}

func lookupVRByName(name string) (*VR, error) {
	r, ok := vrLookupMap[name]
	if !ok {
		return nil, fmt.Errorf("unknown vr name: %v", name)
	}
	return r, nil
}

// tryVRCode returns the VR for a raw 2 byte code from an explicit VR header,
// or nil when the bytes name no known VR. Used by encoding autodetection.
func tryVRCode(b0, b1 byte) *VR {
	if b0 < 'A' || b0 > 'Z' || b1 < 'A' || b1 > 'Z' {
		return nil
	}
	return vrLookupMap[string([]byte{b0, b1})]
}

// VR list obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
var (
	// textual VRs
	CSVR = newVR("CS", textVR, shortHeader, spacePadding)
	SHVR = newVR("SH", textVR, shortHeader, spacePadding)
	LOVR = newVR("LO", textVR, shortHeader, spacePadding)
	STVR = newVR("ST", textVR, shortHeader, spacePadding)
	LTVR = newVR("LT", textVR, shortHeader, spacePadding)
	ASVR = newVR("AS", textVR, shortHeader, spacePadding)

	// person name
	PNVR = newVR("PN", textVR, shortHeader, spacePadding)

	// application entity
	AEVR = newVR("AE", textVR, shortHeader, spacePadding)

	// dates/time VR
	DAVR = newVR("DA", textVR, shortHeader, spacePadding)
	TMVR = newVR("TM", textVR, shortHeader, spacePadding)
	DTVR = newVR("DT", textVR, shortHeader, spacePadding)

	// textual numbers
	ISVR = newVR("IS", numberTextVR, shortHeader, spacePadding)
	DSVR = newVR("DS", numberTextVR, shortHeader, spacePadding)

	// binary numbers
	SSVR = newVR("SS", numberBinaryVR, shortHeader, nullPadding)
	USVR = newVR("US", numberBinaryVR, shortHeader, nullPadding)
	SLVR = newVR("SL", numberBinaryVR, shortHeader, nullPadding)
	ULVR = newVR("UL", numberBinaryVR, shortHeader, nullPadding)
	SVVR = newVR("SV", numberBinaryVR, longHeader, nullPadding)
	UVVR = newVR("UV", numberBinaryVR, longHeader, nullPadding)
	FLVR = newVR("FL", numberBinaryVR, shortHeader, nullPadding)
	FDVR = newVR("FD", numberBinaryVR, shortHeader, nullPadding)

	// large binary sequences
	OBVR = newVR("OB", bulkDataVR, longHeader, nullPadding)
	ODVR = newVR("OD", bulkDataVR, longHeader, nullPadding)
	OLVR = newVR("OL", bulkDataVR, longHeader, nullPadding)
	OVVR = newVR("OV", bulkDataVR, longHeader, nullPadding)
	OWVR = newVR("OW", bulkDataVR, longHeader, nullPadding)
	OFVR = newVR("OF", bulkDataVR, longHeader, nullPadding)

	// unlimited char
	UCVR = newVR("UC", textVR, longHeader, spacePadding)

	// unknown
	UNVR = newVR("UN", bulkDataVR, longHeader, nullPadding)

	// URL
	URVR = newVR("UR", textVR, longHeader, spacePadding)

	// unlimited text
	UTVR = newVR("UT", textVR, longHeader, spacePadding)

	// attribute tag
	ATVR = newVR("AT", tagVR, shortHeader, nullPadding)

	// unique identifier
	UIVR = newVR("UI", uniqueIdentifierVR, shortHeader, nullPadding)

	// sequence
	SQVR = newVR("SQ", sequenceVR, longHeader, nullPadding)
)
