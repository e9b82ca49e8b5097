// Package seriescodec packs float64 time series into compact, self-describing
// blobs for storage. A blob is a two byte header (format version, compression)
// followed by the compressed little-endian IEEE-754 values.
package seriescodec

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression names a blob compression algorithm.
type Compression string

const (
	CompressNone    Compression = "none"
	CompressDeflate Compression = "deflate"
	CompressSnappy  Compression = "snappy"
	CompressZstd    Compression = "zstd"
	CompressBrotli  Compression = "brotli"
	CompressLZ4     Compression = "lz4"
)

const formatVersion byte = 1

var (
	ErrCorruptBlob        = errors.New("seriescodec: corrupt blob")
	ErrUnknownCompression = errors.New("seriescodec: unknown compression")
)

var compressionIDs = map[Compression]byte{
	CompressNone:    0,
	CompressDeflate: 1,
	CompressSnappy:  2,
	CompressZstd:    3,
	CompressBrotli:  4,
	CompressLZ4:     5,
}

// ParseCompression maps a configured name to a Compression. The empty string and
// "gzip" are accepted aliases for none and deflate.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return CompressNone, nil
	case "gzip", "gz":
		return CompressDeflate, nil
	default:
		if _, ok := compressionIDs[c]; ok {
			return c, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Compressions lists every supported algorithm.
func Compressions() []Compression {
	return []Compression{CompressNone, CompressDeflate, CompressSnappy, CompressZstd, CompressBrotli, CompressLZ4}
}

// EncodeFloats packs values with compression c.
func EncodeFloats(values []float64, c Compression) ([]byte, error) {
	id, ok := compressionIDs[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}

	raw := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}

	body, err := compressData(raw, c)
	if err != nil {
		return nil, fmt.Errorf("seriescodec: %s compression failed: %w", c, err)
	}

	out := make([]byte, 0, len(body)+2)
	out = append(out, formatVersion, id)
	return append(out, body...), nil
}

// DecodeFloats unpacks a blob produced by EncodeFloats.
func DecodeFloats(blob []byte) ([]float64, error) {
	if len(blob) < 2 || blob[0] != formatVersion {
		return nil, ErrCorruptBlob
	}
	c, ok := compressionFromID(blob[1])
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownCompression, blob[1])
	}

	raw, err := decompressData(blob[2:], c)
	if err != nil {
		return nil, fmt.Errorf("seriescodec: %s decompression failed: %w", c, err)
	}
	if len(raw)%8 != 0 {
		return nil, ErrCorruptBlob
	}

	values := make([]float64, len(raw)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}

// CompressionOf reports the algorithm recorded in a blob header.
func CompressionOf(blob []byte) (Compression, error) {
	if len(blob) < 2 || blob[0] != formatVersion {
		return "", ErrCorruptBlob
	}
	c, ok := compressionFromID(blob[1])
	if !ok {
		return "", fmt.Errorf("%w: id %d", ErrUnknownCompression, blob[1])
	}
	return c, nil
}

func compressionFromID(id byte) (Compression, bool) {
	for c, v := range compressionIDs {
		if v == id {
			return c, true
		}
	}
	return "", false
}

func compressData(data []byte, c Compression) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch c {
	case CompressDeflate:
		w = gzip.NewWriter(&b)
	case CompressSnappy:
		w = snappy.NewBufferedWriter(&b)
	case CompressZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case CompressBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case CompressLZ4:
		w = lz4.NewWriter(&b)
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompressData(data []byte, c Compression) ([]byte, error) {
	var b bytes.Buffer
	var r io.Reader

	switch c {
	case CompressDeflate:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case CompressSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case CompressZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case CompressBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case CompressLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}

	if _, err := io.Copy(&b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
