package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"aquiestoy/internal/utils"
	"aquiestoy/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage handles object uploads to the public case-image bucket.
type S3Storage struct {
	client  *s3.Client
	bucket  string
	region  string
	timeout time.Duration
}

func NewS3Storage(client *s3.Client, bucket, region string, timeout time.Duration) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		region:  region,
		timeout: timeout,
	}
}

// Upload stores the object under key and returns its public URL. The store
// does not retry; callers decide what a failed upload means for the rest of
// their sequence.
func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if key == "" {
		return "", &types.StorageError{Key: key, Err: fmt.Errorf("empty object key")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &types.StorageError{Key: key, Err: err}
	}

	return s.PublicURL(key), nil
}

// Delete removes the object under key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return &types.StorageError{Key: key, Err: fmt.Errorf("empty object key")}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &types.StorageError{Key: key, Err: err}
	}

	return nil
}

// PublicURL builds the bucket-hosted address for an object key.
func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// ObjectKey builds the deterministic key for a caso image slot. The layout is
// load-bearing: existing objects were written under it, so it must not change.
func (s *S3Storage) ObjectKey(casoID int64, slot int, filename string) string {
	return ObjectKey(casoID, slot, filename)
}

func ObjectKey(casoID int64, slot int, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("cases/case_%d/image_%d_%s.%s", casoID, slot, utils.NanoID(), ext)
}
