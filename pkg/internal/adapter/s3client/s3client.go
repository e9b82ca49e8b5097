// Package s3client uploads and fetches stored session objects in an S3 bucket.
package s3client

import (
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"
)

// S3Client writes whole objects under a key prefix. It does not batch; each
// Put is one PutObject call.
type S3Client struct {
	componentMetadata types.ComponentMetadata

	loggers     []types.Logger
	loggersLock sync.Mutex

	cli    *s3.Client
	bucket string
	prefix string

	// "" | "AES256" | "aws:kms"
	sseMode string
	kmsKey  string

	listPageSize int32
}

// NewS3Client binds cli to bucket and applies options.
func NewS3Client(cli *s3.Client, bucket string, options ...types.Option[*S3Client]) *S3Client {
	a := &S3Client{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "S3_CLIENT",
		},
		loggers:      make([]types.Logger, 0),
		cli:          cli,
		bucket:       bucket,
		listPageSize: 1000,
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}
