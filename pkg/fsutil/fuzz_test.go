package fsutil_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/ixtext/pkg/fsutil"
)

func FuzzWriteAtomicRoundTrip(f *testing.F) {
	f.Add([]byte(""), int64(0))
	f.Add([]byte("Hello\n"), int64(6))
	f.Add([]byte("<b>Hi</b> there\n"), int64(4))
	f.Add([]byte("\x00\x01\x02\x03"), int64(-1))
	f.Add(make([]byte, 1024), int64(1000))

	f.Fuzz(func(t *testing.T, content []byte, limit int64) {
		path := filepath.Join(t.TempDir(), "scene.txt")
		ctx := context.Background()

		if err := fsutil.WriteAtomic(ctx, path, content, 0644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, info, err := fsutil.ReadFile(ctx, path, limit)
		if limit > 0 && int64(len(content)) > limit {
			if !errors.Is(err, fsutil.ErrTooLarge) {
				t.Fatalf("expected ErrTooLarge for %d bytes with limit %d, got %v", len(content), limit, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}

		if !bytes.Equal(got, content) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}

		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat after round trip: %v", err)
		}
	})
}
