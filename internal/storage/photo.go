// Package storage adapts a blob bucket into the photo store the member
// service expects.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets, used by tests
)

type PhotoBucket struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// OpenPhotoBucket opens the bucket named by the URL (file:// or mem://).
// Public URLs are built by joining the configured base with the object key.
func OpenPhotoBucket(ctx context.Context, bucketURL, publicBaseURL string) (*PhotoBucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("blob.OpenBucket -> %w", err)
	}

	return &PhotoBucket{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (b *PhotoBucket) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	writer, err := b.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("b.bucket.NewWriter -> %w", err)
	}

	if _, err = io.Copy(writer, body); err != nil {
		writer.Close()
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	if err = writer.Close(); err != nil {
		return "", fmt.Errorf("writer.Close -> %w", err)
	}

	return b.publicBaseURL + "/" + key, nil
}

func (b *PhotoBucket) Close() error {
	return b.bucket.Close()
}
