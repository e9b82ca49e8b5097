package sqlitestore

import (
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithCompression sets the codec used for new series blobs. Existing blobs keep
// the codec recorded in their header.
func WithCompression(c seriescodec.Compression) types.Option[*Store] {
	return func(s *Store) {
		if c != "" {
			s.compression = c
		}
	}
}

func WithLogger(l ...types.Logger) types.Option[*Store] {
	return func(s *Store) {
		s.ConnectLogger(l...)
	}
}
