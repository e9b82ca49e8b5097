// Package parquetstore persists closed sessions as Parquet files. Each session is
// a <id>.parquet file of point rows plus a <id>.json header holding the metadata
// and analysis. When an object sink is configured both files are mirrored to S3
// and sessions missing locally are read back from the bucket.
package parquetstore

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/tensilerig/pkg/internal/codec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
	parquet "github.com/parquet-go/parquet-go"
)

const (
	pointsExt = ".parquet"
	headerExt = ".json"
)

// Store implements types.SessionStore on a directory of Parquet files.
type Store struct {
	componentMetadata types.ComponentMetadata
	dir               string
	compression       seriescodec.Compression
	objects           *s3client.S3Client

	headerEncoder *codec.JSONEncoder[sessionHeader]
	headerDecoder *codec.JSONDecoder[sessionHeader]

	// mu serialises SaveSession so the existence check and the write are atomic.
	mu sync.Mutex

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// Open prepares dir, creating it when needed.
func Open(dir string, options ...types.Option[*Store]) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("parquetstore: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	s := &Store{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PARQUET_STORE",
		},
		dir:           dir,
		compression:   seriescodec.CompressZstd,
		headerEncoder: codec.NewIndentedJSONEncoder[sessionHeader](),
		headerDecoder: codec.NewJSONDecoder[sessionHeader](),
		loggers:       make([]types.Logger, 0),
	}
	for _, opt := range options {
		opt(s)
	}

	s.NotifyLoggers(types.InfoLevel, "session store opened",
		"component", s.componentMetadata,
		"event", "Open",
		"result", "SUCCESS",
		"dir", dir,
		"compression", string(s.compression),
		"object_sink", s.objects != nil,
	)
	return s, nil
}

// Close releases nothing; files are closed after every operation.
func (s *Store) Close() error { return nil }

func (s *Store) writerCompression() parquet.WriterOption {
	switch s.compression {
	case seriescodec.CompressNone:
		return parquet.Compression(&parquet.Uncompressed)
	case seriescodec.CompressDeflate:
		return parquet.Compression(&parquet.Gzip)
	case seriescodec.CompressSnappy:
		return parquet.Compression(&parquet.Snappy)
	case seriescodec.CompressBrotli:
		return parquet.Compression(&parquet.Brotli)
	case seriescodec.CompressLZ4:
		return parquet.Compression(&parquet.Lz4Raw)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

func validID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("parquetstore: invalid session id %q", id)
	}
	return nil
}
