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
	"compress/flate"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
)

// DefaultChunkSize caps the size of value and deflated chunks emitted by
// the parser
const DefaultChunkSize = 8192

// ParseOption configures a Parser
type ParseOption func(*parserConfig)

type parserConfig struct {
	chunkSize int
	inflate   bool
}

// WithChunkSize sets the maximum number of bytes per emitted value chunk
func WithChunkSize(n int) ParseOption {
	return func(cfg *parserConfig) {
		cfg.chunkSize = n
	}
}

// WithoutInflate makes the parser emit DeflatedChunk parts for deflated
// transfer syntaxes instead of inflating and parsing the dataset
func WithoutInflate() ParseOption {
	return func(cfg *parserConfig) {
		cfg.inflate = false
	}
}

// Parser is an incremental DICOM parser. It consumes bytes from a reader on
// demand and emits the part stream of the input: preamble, element headers,
// value chunks and sequence, item and fragment markers.
type Parser struct {
	br    *byteReader
	cfg   parserConfig
	state parserState
	queue []Part
	inner *Parser
	done  bool
	err   error
}

// NewParser creates a Parser over the reader. The parser autodetects the
// encoding of the input, with and without preamble and File Meta
// Information.
func NewParser(r io.Reader, opts ...ParseOption) *Parser {
	cfg := parserConfig{chunkSize: DefaultChunkSize, inflate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Parser{br: newByteReader(r), cfg: cfg, state: &atBeginning{}}
}

// newDatasetParser creates a parser that starts directly inside a dataset,
// used to continue parsing inflated bytes of a deflated transfer syntax
func newDatasetParser(r io.Reader, cfg parserConfig, ds datasetState) *Parser {
	return &Parser{br: newByteReader(r), cfg: cfg, state: &inDatasetHeader{ds}}
}

// Next returns the next part of the stream, or io.EOF when the input is
// exhausted. Fatal errors terminate the stream; parts emitted before the
// error remain valid.
func (p *Parser) Next() (Part, error) {
	for {
		if len(p.queue) > 0 {
			part := p.queue[0]
			p.queue = p.queue[1:]
			return part, nil
		}
		if p.inner != nil {
			part, err := p.inner.Next()
			if err == io.EOF {
				p.inner = nil
				p.done = true
				continue
			}
			return part, err
		}
		if p.err != nil {
			return nil, p.err
		}
		if p.done {
			return nil, io.EOF
		}
		parts, next, err := p.state.parse(p)
		p.queue = append(p.queue, parts...)
		switch {
		case err == io.EOF:
			p.done = true
		case err != nil:
			p.err = err
		default:
			p.state = next
		}
	}
}

// Parse parses the whole input into its part stream
func Parse(r io.Reader, opts ...ParseOption) ([]Part, error) {
	return CollectParts(NewParser(r, opts...))
}

// parserState is one state of the parse state machine. parse consumes input
// and returns parts to emit together with the next state. Returning io.EOF
// completes the stream.
type parserState interface {
	parse(p *Parser) ([]Part, parserState, error)
}

// datasetState carries the active encoding while inside the dataset
type datasetState struct {
	bigEndian  bool
	explicitVR bool
	itemIndex  int
}

// fmiState tracks progress through the File Meta Information group
type fmiState struct {
	tsuid      string
	bigEndian  bool
	explicitVR bool

	// fmiEndPos is the stream position where the group length element says
	// the FMI ends, or -1 while unknown
	fmiEndPos int64
}

// streamInfo is the outcome of encoding autodetection
type streamInfo struct {
	fmi        bool
	bigEndian  bool
	explicitVR bool
}

// atBeginning recognizes the preamble and autodetects the encoding
type atBeginning struct{}

func (s *atBeginning) parse(p *Parser) ([]Part, parserState, error) {
	var parts []Part

	available, err := p.br.fill(132)
	if err != nil {
		return nil, nil, err
	}
	if available == 0 {
		return nil, nil, io.EOF
	}
	if available >= 132 && string(p.br.peek(132)[128:132]) == dicomMagic {
		preamble, err := p.br.take(132)
		if err != nil {
			return nil, nil, err
		}
		parts = append(parts, &PreamblePart{ByteData: preamble})
	}

	available, err = p.br.fill(8)
	if err != nil {
		return parts, nil, err
	}
	if available == 0 && len(parts) > 0 {
		// preamble only
		return parts, nil, io.EOF
	}
	if available < 8 {
		return parts, nil, fmt.Errorf("%d bytes at start of stream: %w", available, ErrNotDicom)
	}

	info, err := detectStreamInfo(p.br.peek(8))
	if err != nil {
		return parts, nil, err
	}
	if info.fmi {
		if !info.explicitVR {
			log.Warn("implicit VR in File Meta Information")
		}
		return parts, &inFmiHeader{fmiState{
			bigEndian:  info.bigEndian,
			explicitVR: info.explicitVR,
			fmiEndPos:  -1,
		}}, nil
	}
	return parts, &inDatasetHeader{datasetState{
		bigEndian:  info.bigEndian,
		explicitVR: info.explicitVR,
	}}, nil
}

// detectStreamInfo inspects the first 8 bytes of a dataset, trying little
// endian before big endian interpretations
func detectStreamInfo(b []byte) (streamInfo, error) {
	for _, assumeBigEndian := range []bool{false, true} {
		order := byteOrder(assumeBigEndian)
		tag := Tag(uint32(order.Uint16(b[0:2]))<<16 | uint32(order.Uint16(b[2:4])))
		if vr := tryVRCode(b[4], b[5]); vr != nil {
			if tag.IsFileMetaInformation() {
				if assumeBigEndian {
					log.Warn("big endian File Meta Information, reading as little endian")
				}
				// FMI is always explicit VR little endian
				return streamInfo{fmi: true, bigEndian: false, explicitVR: true}, nil
			}
			return streamInfo{fmi: false, bigEndian: assumeBigEndian, explicitVR: true}, nil
		}
		if length := int32(order.Uint32(b[4:8])); length >= 0 {
			if assumeBigEndian {
				return streamInfo{}, ErrImplicitBigEndianNotSupported
			}
			return streamInfo{fmi: tag.IsFileMetaInformation(), bigEndian: false, explicitVR: false}, nil
		}
	}
	return streamInfo{}, ErrNotDicom
}

// elementHeader is the outcome of reading one element header
type elementHeader struct {
	tag         Tag
	vr          *VR
	headerLen   int
	valueLength uint32
	raw         []byte
}

// readHeader reads one element header in the given encoding. Item and
// delimitation tags carry no VR and always use 8 byte headers. Returns
// io.EOF when the stream ends cleanly before the header.
func readHeader(br *byteReader, bigEndian, explicitVR bool) (elementHeader, error) {
	available, err := br.fill(8)
	if err != nil {
		return elementHeader{}, err
	}
	if available == 0 {
		return elementHeader{}, io.EOF
	}
	if available < 8 {
		return elementHeader{}, fmt.Errorf("%d bytes of element header: %w", available, ErrTruncated)
	}

	order := byteOrder(bigEndian)
	b := br.peek(8)
	header := elementHeader{
		tag:       Tag(uint32(order.Uint16(b[0:2]))<<16 | uint32(order.Uint16(b[2:4]))),
		headerLen: 8,
	}
	switch {
	case isItemLike(header.tag):
		header.valueLength = order.Uint32(b[4:8])
	case explicitVR:
		header.vr = tryVRCode(b[4], b[5])
		if header.vr == nil {
			log.Warnf("unknown VR code %q in %s, reading as UN", string(b[4:6]), header.tag)
			header.vr = UNVR
		}
		if header.vr.headerLength == longHeader {
			if err := br.ensure(12); err != nil {
				return elementHeader{}, err
			}
			b = br.peek(12)
			header.headerLen = 12
			header.valueLength = order.Uint32(b[8:12])
		} else {
			header.valueLength = uint32(order.Uint16(b[6:8]))
		}
	default:
		header.vr = VROf(header.tag)
		header.valueLength = order.Uint32(b[4:8])
	}

	if header.valueLength != UndefinedLength && header.valueLength%2 != 0 {
		log.Warnf("odd value length %d of %s", header.valueLength, header.tag)
	}
	header.raw, err = br.take(header.headerLen)
	return header, err
}

// inFmiHeader reads File Meta Information elements, tracking the declared
// group length and capturing the transfer syntax UID
type inFmiHeader struct {
	fmi fmiState
}

func (s *inFmiHeader) parse(p *Parser) ([]Part, parserState, error) {
	fmi := s.fmi

	// inspect the tag before consuming the header: a non-FMI element means
	// the group length was wrong and the dataset has begun
	if available, err := p.br.fill(8); err != nil {
		return nil, nil, err
	} else if available >= 2 {
		order := byteOrder(fmi.bigEndian)
		if available < 8 || order.Uint16(p.br.peek(2)) != 0x0002 {
			log.Warn("expected File Meta Information element, moving to dataset")
			return nil, endOfFmi(p, fmi), nil
		}
	}

	header, err := readHeader(p.br, fmi.bigEndian, fmi.explicitVR)
	if err != nil {
		return nil, nil, err
	}

	switch header.tag {
	case FileMetaInformationGroupLengthTag:
		if header.valueLength < 4 {
			log.Warnf("group length value of %d bytes, ignoring", header.valueLength)
			break
		}
		if err := p.br.ensure(int(header.valueLength)); err != nil {
			return nil, nil, err
		}
		order := byteOrder(fmi.bigEndian)
		groupLength := order.Uint32(p.br.peek(4))
		fmi.fmiEndPos = p.br.bytesRead() + int64(header.valueLength) + int64(groupLength)
	case TransferSyntaxUIDTag:
		if header.valueLength < 1024 {
			if err := p.br.ensure(int(header.valueLength)); err != nil {
				return nil, nil, err
			}
			fmi.tsuid = strings.TrimRight(string(p.br.peek(int(header.valueLength))), " \x00")
		} else {
			log.Warnf("transfer syntax UID length %d is too long, skipping", header.valueLength)
		}
	}

	parts := []Part{&HeaderPart{
		TagValue:    header.tag,
		VR:          header.vr,
		ValueLength: header.valueLength,
		FMI:         true,
		BigEndian:   fmi.bigEndian,
		ExplicitVR:  fmi.explicitVR,
		ByteData:    header.raw,
	}}

	next := func(p *Parser) (parserState, error) {
		return afterFmiValue(p, fmi), nil
	}
	if header.valueLength == 0 {
		state, err := next(p)
		return parts, state, err
	}
	return parts, &inValue{bytesLeft: header.valueLength, bigEndian: fmi.bigEndian, next: next}, nil
}

// afterFmiValue decides, after an FMI value has been consumed, whether more
// FMI follows or the dataset begins
func afterFmiValue(p *Parser, fmi fmiState) parserState {
	nextIsFmi := false
	if available, err := p.br.fill(2); err == nil && available >= 2 {
		order := byteOrder(fmi.bigEndian)
		nextIsFmi = order.Uint16(p.br.peek(2)) == 0x0002
	}

	switch {
	case fmi.fmiEndPos < 0:
		// no group length seen: treat everything up to the first non-FMI
		// tag as File Meta Information
		if nextIsFmi {
			return &inFmiHeader{fmi}
		}
		log.Warn("missing File Meta Information group length")
		return endOfFmi(p, fmi)
	case p.br.bytesRead() >= fmi.fmiEndPos:
		if nextIsFmi {
			log.Warn("declared File Meta Information group length is too short")
			return &inFmiHeader{fmi}
		}
		return endOfFmi(p, fmi)
	default:
		if !nextIsFmi {
			log.Warn("declared File Meta Information group length is too long")
			return endOfFmi(p, fmi)
		}
		return &inFmiHeader{fmi}
	}
}

// endOfFmi switches to the dataset encoding the transfer syntax UID
// declares, entering deflated parsing when called for
func endOfFmi(p *Parser, fmi fmiState) parserState {
	tsuid := fmi.tsuid
	if tsuid == "" {
		log.Warn("missing transfer syntax UID, assuming Explicit VR Little Endian")
		tsuid = ExplicitVRLittleEndianUID
	}
	syntax := lookupTransferSyntax(tsuid)
	ds := datasetState{bigEndian: syntax.bigEndian, explicitVR: syntax.explicitVR}

	if !syntax.deflated {
		return &inDatasetHeader{ds}
	}

	// sniff the zlib header to distinguish wrapped from raw deflate
	nowrap := true
	if available, err := p.br.fill(2); err == nil && available >= 2 {
		b := p.br.peek(2)
		nowrap = !(b[0] == 0x78 && b[1] == 0x9C)
	}

	if !p.cfg.inflate {
		return &inDeflatedData{nowrap: nowrap}
	}

	compressed := io.MultiReader(bytes.NewReader(p.br.remainingData()), p.br.r)
	var inflated io.Reader
	if nowrap {
		inflated = flate.NewReader(compressed)
	} else {
		zr, err := zlib.NewReader(compressed)
		if err != nil {
			log.Warnf("opening zlib stream: %v, reading as raw deflate", err)
			inflated = flate.NewReader(compressed)
		} else {
			inflated = zr
		}
	}
	p.inner = newDatasetParser(inflated, p.cfg, ds)
	return &finished{}
}

// inDatasetHeader reads dataset element headers and dispatches on their kind
type inDatasetHeader struct {
	ds datasetState
}

func (s *inDatasetHeader) parse(p *Parser) ([]Part, parserState, error) {
	ds := s.ds
	header, err := readHeader(p.br, ds.bigEndian, ds.explicitVR)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case header.tag == ItemTag:
		ds.itemIndex++
		part := &ItemPart{Index: ds.itemIndex, ItemLength: header.valueLength, BigEndian: ds.bigEndian, ByteData: header.raw}
		return []Part{part}, &inDatasetHeader{ds}, nil
	case header.tag == ItemDelimitationItemTag:
		part := &ItemDelimitationPart{Index: ds.itemIndex, BigEndian: ds.bigEndian, ByteData: header.raw}
		return []Part{part}, &inDatasetHeader{ds}, nil
	case header.tag == SequenceDelimitationItemTag:
		part := &SequenceDelimitationPart{BigEndian: ds.bigEndian, ByteData: header.raw}
		return []Part{part}, &inDatasetHeader{ds}, nil
	case header.vr == SQVR || (header.vr == UNVR && header.valueLength == UndefinedLength):
		part := &SequencePart{
			TagValue:       header.tag,
			SequenceLength: header.valueLength,
			BigEndian:      ds.bigEndian,
			ExplicitVR:     ds.explicitVR,
			ByteData:       header.raw,
		}
		next := datasetState{bigEndian: ds.bigEndian, explicitVR: ds.explicitVR}
		if header.vr == UNVR {
			// the contents of an UN sequence are implicit VR little endian
			next.explicitVR = false
			next.bigEndian = false
		}
		return []Part{part}, &inDatasetHeader{next}, nil
	case header.valueLength == UndefinedLength:
		part := &FragmentsPart{
			TagValue:    header.tag,
			ValueLength: header.valueLength,
			VR:          header.vr,
			BigEndian:   ds.bigEndian,
			ExplicitVR:  ds.explicitVR,
			ByteData:    header.raw,
		}
		return []Part{part}, &inFragments{ds: ds}, nil
	default:
		part := &HeaderPart{
			TagValue:    header.tag,
			VR:          header.vr,
			ValueLength: header.valueLength,
			BigEndian:   ds.bigEndian,
			ExplicitVR:  ds.explicitVR,
			ByteData:    header.raw,
		}
		if header.valueLength == 0 {
			return []Part{part}, &inDatasetHeader{ds}, nil
		}
		next := func(p *Parser) (parserState, error) {
			return &inDatasetHeader{ds}, nil
		}
		return []Part{part}, &inValue{bytesLeft: header.valueLength, bigEndian: ds.bigEndian, next: next}, nil
	}
}

// inValue emits chunks of a value field, at most chunk size bytes each
type inValue struct {
	bytesLeft uint32
	bigEndian bool
	next      func(p *Parser) (parserState, error)
}

func (s *inValue) parse(p *Parser) ([]Part, parserState, error) {
	want := int(s.bytesLeft)
	if want > p.cfg.chunkSize {
		want = p.cfg.chunkSize
	}
	available, err := p.br.fill(want)
	if err != nil {
		return nil, nil, err
	}
	if available < want {
		// upstream closed inside the value: emit what remains as a final
		// chunk and complete
		chunk, err := p.br.take(available)
		if err != nil {
			return nil, nil, err
		}
		return []Part{&ValueChunk{BigEndian: s.bigEndian, ByteData: chunk, Last: true}}, nil, io.EOF
	}
	chunk, err := p.br.take(want)
	if err != nil {
		return nil, nil, err
	}
	s.bytesLeft -= uint32(want)
	if s.bytesLeft > 0 {
		part := &ValueChunk{BigEndian: s.bigEndian, ByteData: chunk, Last: false}
		return []Part{part}, s, nil
	}
	part := &ValueChunk{BigEndian: s.bigEndian, ByteData: chunk, Last: true}
	state, err := s.next(p)
	return []Part{part}, state, err
}

// inFragments reads the items of encapsulated pixel data
type inFragments struct {
	ds            datasetState
	fragmentIndex int
}

func (s *inFragments) parse(p *Parser) ([]Part, parserState, error) {
	header, err := readHeader(p.br, s.ds.bigEndian, s.ds.explicitVR)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case header.tag == ItemTag && header.valueLength > 0:
		index := s.fragmentIndex + 1
		part := &ItemPart{Index: index, ItemLength: header.valueLength, BigEndian: s.ds.bigEndian, ByteData: header.raw}
		next := func(p *Parser) (parserState, error) {
			return &inFragments{ds: s.ds, fragmentIndex: index}, nil
		}
		return []Part{part}, &inValue{bytesLeft: header.valueLength, bigEndian: s.ds.bigEndian, next: next}, nil
	case header.tag == ItemTag:
		index := s.fragmentIndex + 1
		part := &ItemPart{Index: index, ItemLength: 0, BigEndian: s.ds.bigEndian, ByteData: header.raw}
		return []Part{part}, &inFragments{ds: s.ds, fragmentIndex: index}, nil
	case header.tag == SequenceDelimitationItemTag:
		part := &SequenceDelimitationPart{BigEndian: s.ds.bigEndian, ByteData: header.raw}
		return []Part{part}, &inDatasetHeader{s.ds}, nil
	default:
		log.Warnf("unexpected element %s inside fragments", header.tag)
		value, err := p.br.take(int(header.valueLength))
		if err != nil {
			return nil, nil, err
		}
		part := &UnknownPart{BigEndian: s.ds.bigEndian, ByteData: append(header.raw, value...)}
		return []Part{part}, s, nil
	}
}

// inDeflatedData passes the compressed dataset bytes through in chunks when
// the parser is configured not to inflate
type inDeflatedData struct {
	nowrap bool
}

func (s *inDeflatedData) parse(p *Parser) ([]Part, parserState, error) {
	available, err := p.br.fill(p.cfg.chunkSize)
	if err != nil {
		return nil, nil, err
	}
	if available == 0 {
		return nil, nil, io.EOF
	}
	n := available
	if n > p.cfg.chunkSize {
		n = p.cfg.chunkSize
	}
	chunk, err := p.br.take(n)
	if err != nil {
		return nil, nil, err
	}
	return []Part{&DeflatedChunk{ByteData: chunk, NoWrap: s.nowrap}}, s, nil
}

// finished is the terminal state
type finished struct{}

func (s *finished) parse(p *Parser) ([]Part, parserState, error) {
	return nil, nil, io.EOF
}
