package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

const s3Scheme = "s3://"

// IsS3URI reports whether the path refers to an object in S3 rather than the
// local filesystem.
func IsS3URI(p string) bool {
	return strings.HasPrefix(p, s3Scheme)
}

// ParseS3URI splits an s3://bucket/key URI into bucket and key.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !IsS3URI(uri) {
		return "", "", fmt.Errorf("not an s3 URI: %s", uri)
	}
	rest := strings.TrimPrefix(uri, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 URI %s: expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}

// ObjectStore is the subset of the S3 API the fetcher needs. Satisfied by
// *s3.Client and by fakes in tests.
type ObjectStore interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Fetcher downloads resource configs from S3 so the rest of the orchestrator
// only ever sees local paths.
type Fetcher struct {
	store ObjectStore
}

// NewFetcher creates a Fetcher using the ambient AWS credential chain.
// endpoint overrides the S3 endpoint when non-empty (S3-compatible stores).
func NewFetcher(ctx context.Context, region, endpoint, accessKey, secretKey string) (*Fetcher, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	if accessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &Fetcher{store: client}, nil
}

// NewFetcherWithStore creates a Fetcher around an existing store, used by
// tests.
func NewFetcherWithStore(store ObjectStore) *Fetcher {
	return &Fetcher{store: store}
}

// Fetch downloads the object behind the URI into destDir and returns the
// local path. found is false when the object does not exist; any other
// failure is returned as an error.
func (f *Fetcher) Fetch(ctx context.Context, uri, destDir string) (localPath string, found bool, err error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return "", false, err
	}

	out, err := f.store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to fetch %s: %w", uri, err)
	}
	defer func() { _ = out.Body.Close() }()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(out.Body); err != nil {
		return "", false, fmt.Errorf("failed to read object body: %w", err)
	}

	localPath = filepath.Join(destDir, path.Base(key))
	if err := os.WriteFile(localPath, buf.Bytes(), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write fetched config: %w", err)
	}

	return localPath, true, nil
}

// isNoSuchKey checks whether the error means the object is absent. Typed S3
// errors are checked first, with a fallback on API error codes for
// S3-compatible services that do not return the exact SDK types.
func isNoSuchKey(err error) bool {
	var nsk *s3types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var nsb *s3types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NoSuchBucket" || code == "NotFound" || code == "404"
	}

	return false
}
