package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/parquetstore"
	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/s3client"
	"github.com/joeydtaylor/tensilerig/pkg/internal/adapter/sqlitestore"
	"github.com/joeydtaylor/tensilerig/pkg/internal/config"
	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// OpenStore opens the session store named by storage.driver. The none driver
// returns a nil store; the rig then runs without persistence.
func OpenStore(ctx context.Context, s config.StorageSettings, loggers ...types.Logger) (types.SessionStore, error) {
	compression, err := seriescodec.ParseCompression(s.Compression)
	if err != nil {
		return nil, types.NewConfigurationError("storage.compression", err.Error())
	}

	switch strings.ToLower(s.Driver) {
	case config.DriverNone:
		return nil, nil
	case config.DriverSQLite:
		store, err := sqlitestore.Open(ctx, s.Path,
			sqlitestore.WithCompression(compression),
			sqlitestore.WithLogger(loggers...),
		)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverParquet:
		opts := []types.Option[*parquetstore.Store]{
			parquetstore.WithCompression(compression),
			parquetstore.WithLogger(loggers...),
		}
		if s.S3.Bucket != "" {
			sink, err := NewObjectSink(ctx, s.S3, loggers...)
			if err != nil {
				return nil, err
			}
			opts = append(opts, parquetstore.WithObjectSink(sink))
		}
		store, err := parquetstore.Open(s.Path, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, types.NewConfigurationError("storage.driver", fmt.Sprintf("unknown driver %q", s.Driver))
	}
}

// NewObjectSink builds the S3 client used to mirror parquet sessions.
func NewObjectSink(ctx context.Context, s config.S3Settings, loggers ...types.Logger) (*s3client.S3Client, error) {
	cli, err := s3client.NewAWSClient(ctx, s3client.ClientConfig{
		Region:          s.Region,
		Endpoint:        s.Endpoint,
		AccessKeyID:     s.AccessKeyID,
		SecretAccessKey: s.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}
	return s3client.NewS3Client(cli, s.Bucket,
		s3client.WithPrefix(s.Prefix),
		s3client.WithLogger(loggers...),
	), nil
}
