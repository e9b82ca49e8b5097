package s3client

import (
	"strings"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// WithPrefix scopes every key under prefix. A trailing slash is added when missing.
func WithPrefix(prefix string) types.Option[*S3Client] {
	return func(a *S3Client) {
		prefix = strings.TrimLeft(prefix, "/")
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		a.prefix = prefix
	}
}

// WithSSE sets server-side encryption: "AES256" or "aws:kms" with an optional key id.
func WithSSE(mode, kmsKey string) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.sseMode = mode
		a.kmsKey = kmsKey
	}
}

// WithListPageSize sets the ListObjectsV2 page size.
func WithListPageSize(n int32) types.Option[*S3Client] {
	return func(a *S3Client) {
		if n > 0 {
			a.listPageSize = n
		}
	}
}

func WithLogger(l ...types.Logger) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.ConnectLogger(l...)
	}
}

func WithComponentMetadata(name, id string) types.Option[*S3Client] {
	return func(a *S3Client) {
		a.SetComponentMetadata(name, id)
	}
}
