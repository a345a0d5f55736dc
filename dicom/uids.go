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

// list of transfer syntaxes obtained from
// http://dicom.nema.org/medical/dicom/current/output/html/part06.html#chapter_A
const (
	// ImplicitVRLittleEndianUID is the Implicit VR Little Endian UID
	ImplicitVRLittleEndianUID = "1.2.840.10008.1.2"
	// ExplicitVRLittleEndianUID is the Explicit VR Little Endian UID
	ExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1"
	// ExplicitVRBigEndianUID is the retired Explicit VR Big Endian UID
	ExplicitVRBigEndianUID = "1.2.840.10008.1.2.2"
	// DeflatedExplicitVRLittleEndianUID is the Deflated Explicit VR Little Endian UID
	DeflatedExplicitVRLittleEndianUID = "1.2.840.10008.1.2.1.99"
	// JPIPReferencedUID is the JPIP Referenced UID
	JPIPReferencedUID = "1.2.840.10008.1.2.4.94"
	// JPIPReferencedDeflateUID is the JPIP Referenced Deflate UID
	JPIPReferencedDeflateUID = "1.2.840.10008.1.2.4.95"
	// JPEGBaselineUID is the JPEG Baseline (Process 1) transfer syntax UID
	JPEGBaselineUID = "1.2.840.10008.1.2.4.50"
)

// transferSyntax captures the dataset encoding properties a transfer syntax
// UID declares
type transferSyntax struct {
	bigEndian  bool
	explicitVR bool
	deflated   bool
}

// lookupTransferSyntax maps a transfer syntax UID to its encoding properties.
// Any unrecognized syntax is explicit VR little endian according to PS3.5 A.4
// http://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_A.4
func lookupTransferSyntax(uid string) transferSyntax {
	switch uid {
	case ImplicitVRLittleEndianUID:
		return transferSyntax{bigEndian: false, explicitVR: false}
	case ExplicitVRBigEndianUID:
		return transferSyntax{bigEndian: true, explicitVR: true}
	case DeflatedExplicitVRLittleEndianUID, JPIPReferencedDeflateUID:
		return transferSyntax{bigEndian: false, explicitVR: true, deflated: true}
	default:
		return transferSyntax{bigEndian: false, explicitVR: true}
	}
}

// isDeflatedTransferSyntax is true for the transfer syntaxes whose dataset
// portion is deflate compressed
func isDeflatedTransferSyntax(uid string) bool {
	return uid == DeflatedExplicitVRLittleEndianUID || uid == JPIPReferencedDeflateUID
}
