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

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// lookupEncodingByTerm maps Specific Character Set defined terms to
// encodings. A nil encoding means the default repertoire (7 bit ASCII,
// decoded as-is). See
// http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html
var lookupEncodingByTerm = map[string]encoding.Encoding{
	"":                nil,
	"ISO_IR 6":        nil,
	"ISO 2022 IR 6":   nil,
	"ISO_IR 100":      charmap.ISO8859_1,
	"ISO 2022 IR 100": charmap.ISO8859_1,
	"ISO_IR 101":      charmap.ISO8859_2,
	"ISO 2022 IR 101": charmap.ISO8859_2,
	"ISO_IR 109":      charmap.ISO8859_3,
	"ISO 2022 IR 109": charmap.ISO8859_3,
	"ISO_IR 110":      charmap.ISO8859_4,
	"ISO 2022 IR 110": charmap.ISO8859_4,
	"ISO_IR 144":      charmap.ISO8859_5,
	"ISO 2022 IR 144": charmap.ISO8859_5,
	"ISO_IR 127":      charmap.ISO8859_6,
	"ISO 2022 IR 127": charmap.ISO8859_6,
	"ISO_IR 126":      charmap.ISO8859_7,
	"ISO 2022 IR 126": charmap.ISO8859_7,
	"ISO_IR 138":      charmap.ISO8859_8,
	"ISO 2022 IR 138": charmap.ISO8859_8,
	"ISO_IR 148":      charmap.ISO8859_9,
	"ISO 2022 IR 148": charmap.ISO8859_9,
	"ISO_IR 13":       japanese.ShiftJIS,
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO_IR 166":      charmap.Windows874,
	"ISO 2022 IR 166": charmap.Windows874,
	"ISO 2022 IR 87":  japanese.ISO2022JP,
	"ISO 2022 IR 159": japanese.ISO2022JP,
	"ISO 2022 IR 149": korean.EUCKR,
	"ISO 2022 IR 58":  simplifiedchinese.GBK,
	"ISO_IR 192":      encoding.Nop,
	"GB18030":         simplifiedchinese.GB18030,
	"GBK":             simplifiedchinese.GBK,
}

// CharacterSets holds the Specific Character Set (0008,0005) of a data set
// and decodes text values accordingly. The zero value is the default
// repertoire.
type CharacterSets struct {
	terms []string
}

// DefaultCharacterSet is the default repertoire (ISO-IR 6, 7 bit ASCII)
var DefaultCharacterSet = CharacterSets{}

// NewCharacterSets returns the CharacterSets described by the given Specific
// Character Set defined terms. Unknown terms are dropped with a warning; when
// nothing usable remains the default repertoire is returned.
func NewCharacterSets(terms ...string) CharacterSets {
	kept := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := lookupEncodingByTerm[term]; !ok {
			log.Warnf("unsupported specific character set %q, ignoring", term)
			continue
		}
		kept = append(kept, term)
	}
	return CharacterSets{kept}
}

// isExtended is true when code extension techniques (ISO 2022 escape
// sequences) may occur inside values
func (cs CharacterSets) isExtended() bool {
	for _, term := range cs.terms {
		if len(term) >= 8 && term[:8] == "ISO 2022" {
			return true
		}
	}
	return len(cs.terms) > 1
}

func (cs CharacterSets) initialEncoding() encoding.Encoding {
	if len(cs.terms) == 0 {
		return nil
	}
	return lookupEncodingByTerm[cs.terms[0]]
}

// Decode decodes raw value bytes into a string. VRs other than the text VRs
// are decoded with the default repertoire regardless of the character sets.
func (cs CharacterSets) Decode(vr *VR, b []byte) string {
	if vr.kind != textVR || len(b) == 0 {
		return decodeWith(nil, b)
	}
	if !cs.isExtended() {
		return decodeWith(cs.initialEncoding(), b)
	}
	return cs.decodeExtended(b)
}

// decodeExtended decodes bytes that may switch the active G0/G1 code elements
// through ISO 2022 escape sequences. Each escape designates a new character
// set for the bytes that follow it, up to the next escape.
func (cs CharacterSets) decodeExtended(b []byte) string {
	var out bytes.Buffer
	active := cs.initialEncoding()
	for len(b) > 0 {
		esc := bytes.IndexByte(b, 0x1B)
		if esc < 0 {
			out.WriteString(decodeWith(active, b))
			break
		}
		out.WriteString(decodeWith(active, b[:esc]))
		b = b[esc:]

		enc, seqLen, keepEscape := designatedEncoding(b)
		if seqLen == 0 {
			// not a recognized designation, pass the escape through
			out.WriteByte(b[0])
			b = b[1:]
			continue
		}
		active = enc
		if keepEscape {
			// the iso-2022-jp decoder interprets the escape itself, so
			// leave it in place and let it carry into the next segment
			next := len(b)
			if i := bytes.IndexByte(b[1:], 0x1B); i >= 0 {
				next = i + 1
			}
			out.WriteString(decodeWith(active, b[:next]))
			active = nil
			b = b[next:]
			continue
		}
		b = b[seqLen:]
	}
	return out.String()
}

// designatedEncoding interprets an ISO 2022 designation escape sequence at
// the start of b. It returns the designated encoding, the length of the
// escape sequence and whether the escape bytes must be retained for the
// decoder. A zero length means the sequence was not recognized.
func designatedEncoding(b []byte) (encoding.Encoding, int, bool) {
	if len(b) < 3 || b[0] != 0x1B {
		return nil, 0, false
	}
	switch {
	case b[1] == 0x28 && b[2] == 0x42: // G0: ISO-IR 6
		return nil, 3, false
	case b[1] == 0x28 && b[2] == 0x4A: // G0: JIS X 0201 romaji
		return japanese.ShiftJIS, 3, false
	case b[1] == 0x29 && b[2] == 0x49: // G1: JIS X 0201 katakana
		return japanese.ShiftJIS, 3, false
	case b[1] == 0x24 && b[2] == 0x42: // G0: JIS X 0208 kanji
		return japanese.ISO2022JP, 3, true
	case b[1] == 0x24 && len(b) >= 4 && b[2] == 0x28 && b[3] == 0x44: // G0: JIS X 0212
		return japanese.ISO2022JP, 4, true
	case b[1] == 0x24 && len(b) >= 4 && b[2] == 0x29 && b[3] == 0x43: // G1: KS X 1001
		return korean.EUCKR, 4, false
	case b[1] == 0x24 && len(b) >= 4 && b[2] == 0x29 && b[3] == 0x41: // G1: GB 2312
		return simplifiedchinese.GBK, 4, false
	case b[1] == 0x2D:
		// G1 designations of the ISO 8859 family
		latin := map[byte]encoding.Encoding{
			0x41: charmap.ISO8859_1,
			0x42: charmap.ISO8859_2,
			0x43: charmap.ISO8859_3,
			0x44: charmap.ISO8859_4,
			0x46: charmap.ISO8859_7,
			0x47: charmap.ISO8859_6,
			0x48: charmap.ISO8859_8,
			0x4C: charmap.ISO8859_5,
			0x4D: charmap.ISO8859_9,
			0x54: charmap.Windows874,
		}
		if enc, ok := latin[b[2]]; ok {
			return enc, 3, false
		}
	}
	return nil, 0, false
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	if enc == nil || enc == encoding.Nop {
		return string(b)
	}
	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		// decoders are total: fall back to the raw bytes
		return string(b)
	}
	return string(decoded)
}
