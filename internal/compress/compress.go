// Package compress wraps the block codecs used for dictionary artifacts.
package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type defines the compression algorithm used.
type Type uint8

const (
	// None stores data as is.
	None Type = 0
	// LZ4 is fast to decode and suits artifacts loaded at startup.
	LZ4 Type = 1
	// Zstd gives a better ratio for artifacts fetched from remote stores.
	Zstd Type = 2
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType maps a name produced by String back to a Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("compress: unknown type %q", name)
	}
}

// ErrSizeMismatch is returned when decoded data does not have the expected size.
var ErrSizeMismatch = errors.New("compress: decompressed size mismatch")

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compress encodes data with t. It reports false when the result would not
// be smaller, in which case data is returned unchanged and should be stored
// with None.
func Compress(data []byte, t Type) ([]byte, bool, error) {
	if len(data) == 0 {
		return data, false, nil
	}

	var out []byte
	switch t {
	case None:
		return data, false, nil
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, false, err
		}
		if n == 0 {
			return data, false, nil
		}
		out = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		out = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, false, fmt.Errorf("compress: unknown type %d", t)
	}

	if len(out) >= len(data) {
		return data, false, nil
	}
	return out, true, nil
}

// Decompress decodes data produced by Compress into a buffer of rawSize bytes.
func Decompress(data []byte, t Type, rawSize int) ([]byte, error) {
	switch t {
	case None:
		if len(data) != rawSize {
			return nil, ErrSizeMismatch
		}
		return data, nil
	case LZ4:
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if n != rawSize {
			return nil, ErrSizeMismatch
		}
		return out, nil
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, make([]byte, 0, rawSize))
		if err != nil {
			return nil, err
		}
		if len(out) != rawSize {
			return nil, ErrSizeMismatch
		}
		return out, nil
	default:
		return nil, fmt.Errorf("compress: unknown type %d", t)
	}
}
