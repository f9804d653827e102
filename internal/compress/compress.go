// Package compress provides the lossless byte compressors used by the
// PGN codec. Every compressor reports corrupted input as ErrCorrupt.
package compress

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrCorrupt indicates input that is not a valid compressed stream.
var ErrCorrupt = stderrors.New("corrupt compressed data")

// ErrUnknown indicates an unsupported compressor name.
var ErrUnknown = stderrors.New("unknown compressor")

// Compressor is a lossless, deterministic byte compressor.
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Names of the supported compressors.
const (
	Zlib = "zlib"
	Zstd = "zstd"
	LZ4  = "lz4"
	// Auto selects a compressor from the stream's magic bytes. It is only
	// meaningful when decompressing.
	Auto = "auto"
)

// Names returns the supported compressor names.
func Names() []string {
	return []string{Zlib, Zstd, LZ4}
}

// ByName returns the named compressor.
func ByName(name string) (Compressor, error) {
	switch strings.ToLower(name) {
	case Zlib, "":
		return zlibCompressor{}, nil
	case Zstd:
		return zstdCompressor{}, nil
	case LZ4:
		return lz4Compressor{}, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknown)
	}
}

// Default returns the zlib compressor.
func Default() Compressor {
	return zlibCompressor{}
}

// Detect identifies the compressor that produced data from its magic
// bytes, falling back to zlib.
func Detect(data []byte) Compressor {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return zstdCompressor{}
	case bytes.HasPrefix(data, lz4Magic):
		return lz4Compressor{}
	default:
		return zlibCompressor{}
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// readAll drains r and closes it when possible, classifying any failure as
// corruption.
func readAll(name string, r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if c, ok := r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", name, err, ErrCorrupt)
	}
	return out, nil
}

// zlib: RFC 1950 streams at the default level.

type zlibCompressor struct{}

func (zlibCompressor) Name() string { return Zlib }

func (zlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (zlibCompressor) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib: %v: %w", err, ErrCorrupt)
	}
	return readAll("zlib", r)
}

// zstd: a shared encoder and decoder, both safe for concurrent use.

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

type zstdCompressor struct{}

func (zstdCompressor) Name() string { return Zstd }

func (zstdCompressor) Compress(data []byte) ([]byte, error) {
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (zstdCompressor) Decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %v: %w", err, ErrCorrupt)
	}
	return out, nil
}

// lz4: framed streams, which carry their own magic number and checksum.

type lz4Compressor struct{}

func (lz4Compressor) Name() string { return LZ4 }

func (lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) Decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, lz4Magic) {
		return nil, fmt.Errorf("lz4: missing frame magic: %w", ErrCorrupt)
	}
	return readAll("lz4", lz4.NewReader(bytes.NewReader(data)))
}
