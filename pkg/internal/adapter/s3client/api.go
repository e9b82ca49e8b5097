package s3client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	s3api "github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
)

// ErrObjectNotFound is returned by Get for a missing key.
var ErrObjectNotFound = errors.New("s3client: object not found")

// Key returns the full object key for name.
func (a *S3Client) Key(name string) string {
	return a.prefix + strings.TrimLeft(name, "/")
}

func (a *S3Client) Bucket() string { return a.bucket }

// Put uploads body as the object name, honouring the configured SSE mode.
func (a *S3Client) Put(ctx context.Context, name string, body []byte, contentType string) error {
	if a.cli == nil || a.bucket == "" {
		return fmt.Errorf("s3client: Put requires client and bucket")
	}
	key := a.Key(name)
	put := &s3api.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	}

	switch strings.ToLower(a.sseMode) {
	case "aes256":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	case "aws:kms":
		put.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		if a.kmsKey != "" {
			put.SSEKMSKeyId = aws.String(a.kmsKey)
		}
	}

	if _, err := a.cli.PutObject(ctx, put); err != nil {
		a.NotifyLoggers(types.ErrorLevel, "object upload failed",
			"component", a.componentMetadata,
			"event", "Put",
			"result", "FAILURE",
			"bucket", a.bucket,
			"key", key,
			"error", err,
		)
		return err
	}

	a.NotifyLoggers(types.InfoLevel, "object uploaded",
		"component", a.componentMetadata,
		"event", "Put",
		"result", "SUCCESS",
		"bucket", a.bucket,
		"key", key,
		"bytes", len(body),
	)
	return nil
}

// Get downloads the object name.
func (a *S3Client) Get(ctx context.Context, name string) ([]byte, error) {
	if a.cli == nil || a.bucket == "" {
		return nil, fmt.Errorf("s3client: Get requires client and bucket")
	}
	key := a.Key(name)
	out, err := a.cli.GetObject(ctx, &s3api.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// List returns the names (keys without the prefix) of every object under the prefix.
func (a *S3Client) List(ctx context.Context) ([]string, error) {
	if a.cli == nil || a.bucket == "" {
		return nil, fmt.Errorf("s3client: List requires client and bucket")
	}
	p := s3api.NewListObjectsV2Paginator(a.cli, &s3api.ListObjectsV2Input{
		Bucket:  aws.String(a.bucket),
		Prefix:  aws.String(a.prefix),
		MaxKeys: aws.Int32(a.listPageSize),
	})

	var names []string
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if name := strings.TrimPrefix(key, a.prefix); name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func isNotFound(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == 404
}
