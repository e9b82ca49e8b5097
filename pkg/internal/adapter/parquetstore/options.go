package parquetstore

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithCompression sets the Parquet page codec.
func WithCompression(c seriescodec.Compression) types.Option[*Store] {
	return func(s *Store) {
		if c != "" {
			s.compression = c
		}
	}
}

// WithObjectSink mirrors every saved session to the bucket behind client.
func WithObjectSink(client *s3client.S3Client) types.Option[*Store] {
	return func(s *Store) {
		s.objects = client
	}
}

func WithLogger(l ...types.Logger) types.Option[*Store] {
	return func(s *Store) {
		s.ConnectLogger(l...)
	}
}
