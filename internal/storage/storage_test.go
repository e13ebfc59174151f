package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"
)

func TestDir_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tracklogs", "nested")
	sink := NewDir(dir)

	content := []byte("AXXX\nHFPLTPILOTINCHARGE:Jane Doe\nB record")
	if err := sink.Save(context.Background(), "comp42-task7-1-Jane_Doe-99.igc", content); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "comp42-task7-1-Jane_Doe-99.igc"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("saved content = %q, want %q", got, content)
	}
}

func TestDir_Save_Overwrites(t *testing.T) {
	sink := NewDir(t.TempDir())

	if err := sink.Save(context.Background(), "a.igc", []byte("first")); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if err := sink.Save(context.Background(), "a.igc", []byte("second")); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(sink.Path(), "a.igc"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("saved content = %q, want %q", got, "second")
	}
}

func TestBucket_SaveAndReadBack(t *testing.T) {
	ctx := context.Background()

	bucket, err := blob.OpenBucket(ctx, "mem://")
	if err != nil {
		t.Fatalf("OpenBucket failed: %v", err)
	}
	defer bucket.Close()

	sink := &Bucket{bucket: bucket}
	content := []byte("AXXX\nHFPLTPILOTINCHARGE:Max Muster\nB record")
	if err := sink.Save(ctx, "comp42-task1-2-Max_Muster-104.igc", content); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := bucket.ReadAll(ctx, "comp42-task1-2-Max_Muster-104.igc")
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("read back %q, want %q", got, content)
	}
}

func TestOpenBucket_BadURL(t *testing.T) {
	_, err := OpenBucket(context.Background(), "bogus://nope")
	if err == nil {
		t.Fatal("expected error for unregistered scheme")
	}
}
