// Package storage persists downloaded track logs.
//
// Two sinks are provided behind one interface:
//   - Dir writes into a local directory, creating it on demand
//   - Bucket writes into any gocloud.dev blob bucket (file://, s3://, mem://)
//
// The download manager only sees the Sink interface, so where track
// logs end up is purely a configuration matter:
//
//	var sink storage.Sink
//	if settings.BucketURL != "" {
//	    sink, err = storage.OpenBucket(ctx, settings.BucketURL)
//	} else {
//	    sink = storage.NewDir(settings.DownloadsPath)
//	}
//	err = sink.Save(ctx, "comp42-task7-1-Jane_Doe-99.igc", content)
package storage

import (
	"context"
	"os"
	"path/filepath"
)

// Sink saves one track log under a filename.
//
// Save overwrites silently; the filename scheme makes collisions
// deliberate re-downloads, not accidents.
type Sink interface {
	Save(ctx context.Context, fileName string, content []byte) error
}

// Dir is a Sink backed by a local directory.
type Dir struct {
	path string
}

// NewDir creates a Sink that writes into path. The directory is
// created on first save, parents included.
func NewDir(path string) *Dir {
	return &Dir{path: path}
}

// Save writes content to {dir}/{fileName} with mode 0644.
func (d *Dir) Save(ctx context.Context, fileName string, content []byte) error {
	if err := os.MkdirAll(d.path, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.path, fileName), content, 0644)
}

// Path returns the directory track logs are saved into.
func (d *Dir) Path() string {
	return d.path
}
