package storage

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
)

// Bucket is a Sink backed by a gocloud.dev blob bucket.
//
// The bucket is addressed by URL; which schemes are usable depends on
// the drivers the binary imports (the commands register file://,
// mem:// and s3://).
type Bucket struct {
	bucket *blob.Bucket
}

// OpenBucket opens the bucket behind a URL like "file:///data/tracklogs"
// or "s3://my-bucket?region=eu-central-1".
func OpenBucket(ctx context.Context, urlstr string) (*Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("open bucket %s: %w", urlstr, err)
	}
	return &Bucket{bucket: bucket}, nil
}

// Save writes content under fileName as the blob key.
func (b *Bucket) Save(ctx context.Context, fileName string, content []byte) error {
	return b.bucket.WriteAll(ctx, fileName, content, nil)
}

// Close releases the bucket's resources.
func (b *Bucket) Close() error {
	return b.bucket.Close()
}
