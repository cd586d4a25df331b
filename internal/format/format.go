// Package format defines the on-disk envelope shared by all dictionary
// artifacts.
//
// Every artifact starts with a fixed 32-byte header:
//
//	offset size field
//	0      4    magic "HNKN"
//	4      2    version
//	6      1    kind
//	7      1    compression
//	8      8    raw size
//	16     8    payload size
//	24     4    CRC32C of the payload
//	28     4    reserved
//
// The payload follows the header, compressed according to the header.
package format

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/henkan/internal/compress"
	"github.com/klauspost/crc32"
)

const (
	// Magic identifies henkan artifacts (ASCII: "HNKN").
	Magic = 0x484E4B4E
	// Version is the current envelope version.
	Version = 1
	// HeaderSize is the encoded size of Header.
	HeaderSize = 32
)

// Kind identifies the artifact stored in an envelope.
type Kind uint8

const (
	KindReadingTrie Kind = iota + 1
	KindWordTrie
	KindTokens
	KindPOS
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindReadingTrie:
		return "reading-trie"
	case KindWordTrie:
		return "word-trie"
	case KindTokens:
		return "tokens"
	case KindPOS:
		return "pos"
	case KindConnection:
		return "connection"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

var (
	ErrInvalidMagic     = errors.New("format: invalid magic number")
	ErrInvalidVersion   = errors.New("format: unsupported version")
	ErrKindMismatch     = errors.New("format: unexpected artifact kind")
	ErrTruncated        = errors.New("format: truncated artifact")
	ErrChecksumMismatch = errors.New("format: checksum mismatch")
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Header is the fixed envelope header.
type Header struct {
	Magic       uint32
	Version     uint16
	Kind        Kind
	Compression compress.Type
	RawSize     uint64
	PayloadSize uint64
	Checksum    uint32
}

// MarshalBinary encodes the header in little-endian order.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	buf[6] = byte(h.Kind)
	buf[7] = byte(h.Compression)
	binary.LittleEndian.PutUint64(buf[8:], h.RawSize)
	binary.LittleEndian.PutUint64(buf[16:], h.PayloadSize)
	binary.LittleEndian.PutUint32(buf[24:], h.Checksum)
	return buf, nil
}

// ReadHeader parses and validates the header at the start of data.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrTruncated
	}
	h := Header{
		Magic:       binary.LittleEndian.Uint32(data[0:]),
		Version:     binary.LittleEndian.Uint16(data[4:]),
		Kind:        Kind(data[6]),
		Compression: compress.Type(data[7]),
		RawSize:     binary.LittleEndian.Uint64(data[8:]),
		PayloadSize: binary.LittleEndian.Uint64(data[16:]),
		Checksum:    binary.LittleEndian.Uint32(data[24:]),
	}
	if h.Magic != Magic {
		return Header{}, ErrInvalidMagic
	}
	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	return h, nil
}

// Encode wraps raw in an envelope of the given kind. When compression does
// not shrink raw, the payload is stored uncompressed.
func Encode(kind Kind, raw []byte, c compress.Type) ([]byte, error) {
	payload, ok, err := compress.Compress(raw, c)
	if err != nil {
		return nil, fmt.Errorf("format: compress %s: %w", kind, err)
	}
	if !ok {
		c = compress.None
	}

	h := Header{
		Magic:       Magic,
		Version:     Version,
		Kind:        kind,
		Compression: c,
		RawSize:     uint64(len(raw)),
		PayloadSize: uint64(len(payload)),
		Checksum:    crc32.Checksum(payload, castagnoli),
	}
	hdr, _ := h.MarshalBinary()

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, hdr...)
	return append(out, payload...), nil
}

// Decode verifies the envelope in data and returns the raw artifact bytes.
// For uncompressed payloads the result aliases data.
func Decode(data []byte, want Kind) ([]byte, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	if h.Kind != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, h.Kind, want)
	}
	payload := data[HeaderSize:]
	if uint64(len(payload)) < h.PayloadSize {
		return nil, ErrTruncated
	}
	payload = payload[:h.PayloadSize]
	if crc32.Checksum(payload, castagnoli) != h.Checksum {
		return nil, ErrChecksumMismatch
	}
	raw, err := compress.Decompress(payload, h.Compression, int(h.RawSize))
	if err != nil {
		return nil, fmt.Errorf("format: decompress %s: %w", h.Kind, err)
	}
	return raw, nil
}
